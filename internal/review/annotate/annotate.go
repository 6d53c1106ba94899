package annotate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
)

const highlightColor = "yellow"

// Apply re-parses the document's original bytes and places one visible
// remark per issue, in issue order. The remark lands as a highlighted run
// at the end of the first paragraph containing the issue's snippet; when no
// paragraph matches (an empty snippet matches nothing) it becomes a new
// highlighted paragraph at the end of the document. Issues are placed
// independently, so several may land on one paragraph or each spawn a
// trailing paragraph. The input slice is never written to; the annotated
// copy comes back in a fresh buffer.
func Apply(raw []byte, review reviewModel.ReviewResult) ([]byte, error) {
	doc, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx: %w", err)
	}

	for _, issue := range review.Issues {
		snippet := lookupSnippet(issue)
		remark := fmt.Sprintf("[Suggestion: %s]", issue.Suggestion)

		found := false
		if snippet != "" {
			for _, item := range doc.Document.Body.Items {
				para, ok := item.(*docx.Paragraph)
				if !ok {
					continue
				}
				if strings.Contains(strings.ToLower(para.String()), snippet) {
					para.AddText(" " + remark).Highlight(highlightColor)
					found = true
					break
				}
			}
		}
		if !found {
			doc.AddParagraph().AddText(remark).Highlight(highlightColor)
		}
	}

	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("failed to serialize docx: %w", err)
	}
	return out.Bytes(), nil
}

// lookupSnippet is the issue's section, or failing that the first 50
// characters of its description, lower-cased.
func lookupSnippet(issue reviewModel.Issue) string {
	if issue.Section != "" {
		return strings.ToLower(issue.Section)
	}
	desc := issue.Issue
	// Trim on a rune boundary so multi-byte text stays valid UTF-8.
	if runes := []rune(desc); len(runes) > 50 {
		desc = string(runes[:50])
	}
	return strings.ToLower(desc)
}
