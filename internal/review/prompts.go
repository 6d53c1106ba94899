package review

import (
	"fmt"
	"strings"
)

// buildReviewInstruction embeds the document, its retrieved reference
// context and the wanted JSON shape into one natural-language instruction.
// This is a soft contract: the parser on the way back assumes nothing.
func buildReviewInstruction(docName string, docText string, contextChunks []string) string {
	var b strings.Builder
	b.WriteString("Review the document for ADGM compliance issues.\n")
	b.WriteString("Output JSON only with fields: document, issues:[{section, issue, severity, suggestion}].\n")
	fmt.Fprintf(&b, "Document name: %s\n", docName)

	if len(contextChunks) > 0 {
		b.WriteString("\nReference context:\n")
		b.WriteString(strings.Join(contextChunks, "\n"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nContent:\n%s", docText)
	return b.String()
}
