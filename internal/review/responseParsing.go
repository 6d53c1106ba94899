package review

import (
	"encoding/json"
	"strings"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
)

// extractReviewJSON scans free-form reviewer output for the first balanced
// JSON object and parses just that span. The depth counter tracks string
// and escape state, so a brace inside a quoted value does not skew the
// span. Everything that can go wrong - no opening brace, an unterminated
// object, invalid JSON inside the span - degrades to an empty map. Callers
// treat an empty map as "no issues found", never as an error.
func extractReviewJSON(text string) map[string]json.RawMessage {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return map[string]json.RawMessage{}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				var parsed map[string]json.RawMessage
				if err := json.Unmarshal([]byte(text[start:i+1]), &parsed); err != nil {
					return map[string]json.RawMessage{}
				}
				return parsed
			}
		}
	}
	return map[string]json.RawMessage{}
}

// parseReviewResponse coerces raw reviewer output into a ReviewResult. The
// reviewer is asked for a specific JSON shape but nothing guarantees it
// complies, so every field is defaulted: a missing or malformed issues
// array becomes zero issues for the document.
func parseReviewResponse(docName string, response string) reviewModel.ReviewResult {
	parsed := extractReviewJSON(response)

	result := reviewModel.ReviewResult{Document: docName, Issues: []reviewModel.Issue{}}
	if raw, ok := parsed["document"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil && name != "" {
			result.Document = name
		}
	}
	raw, ok := parsed["issues"]
	if !ok {
		return result
	}
	var issues []reviewModel.Issue
	if err := json.Unmarshal(raw, &issues); err == nil && issues != nil {
		result.Issues = issues
	}
	return result
}
