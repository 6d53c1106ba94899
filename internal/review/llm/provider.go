package llm

import "context"

// Provider is the compliance reviewer capability. The instruction embeds
// the document name, its text and the desired JSON shape as natural
// language; the response is free-form text the caller must parse
// defensively.
type Provider interface {
	Review(ctx context.Context, instruction string) (string, error)
}
