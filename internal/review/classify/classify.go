package classify

import (
	"strings"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/checklist"
)

// Classify maps extracted text to a document type label by substring
// matching against the keyword table. Labels are tried in declared order
// and the first one with any matching keyword wins, so a text containing
// keywords for several types always resolves the same way. No match
// returns the unknown sentinel.
func Classify(text string) string {
	lowered := strings.ToLower(text)
	for _, entry := range checklist.DocTypeKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lowered, keyword) {
				return entry.Label
			}
		}
	}
	return checklist.UnknownDocumentType
}
