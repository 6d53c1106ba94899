package review

import (
	"testing"
)

func TestExtractReviewJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys int
	}{
		{
			name:     "Bare_Object",
			input:    `{"document":"Articles of Association","issues":[]}`,
			wantKeys: 2,
		},
		{
			name:     "Object_Wrapped_In_Prose",
			input:    "Sure! Here is the review:\n```json\n{\"document\":\"x\",\"issues\":[]}\n```\nLet me know.",
			wantKeys: 2,
		},
		{
			name:     "Brace_Inside_String_Value",
			input:    `{"document":"clause {4.2} of the AoA","issues":[]}`,
			wantKeys: 2,
		},
		{
			name:     "Escaped_Quote_Inside_String",
			input:    `{"document":"the \"company\"","issues":[]}`,
			wantKeys: 2,
		},
		{
			name:     "No_Opening_Brace",
			input:    "I could not find any issues.",
			wantKeys: 0,
		},
		{
			name:     "Unterminated_Object",
			input:    `{"document":"x","issues":[`,
			wantKeys: 0,
		},
		{
			name:     "Invalid_JSON_In_Span",
			input:    `{document: x}`,
			wantKeys: 0,
		},
		{
			name:     "Empty_Input",
			input:    "",
			wantKeys: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := extractReviewJSON(tt.input)
			if parsed == nil {
				t.Fatal("extractReviewJSON returned nil, want empty map")
			}
			if len(parsed) != tt.wantKeys {
				t.Errorf("got %d keys, want %d", len(parsed), tt.wantKeys)
			}
		})
	}
}

func TestParseReviewResponse(t *testing.T) {
	response := `Here you go:
{"document":"Articles of Association","issues":[
  {"section":"Clause 4","issue":"Jurisdiction clause cites UAE federal courts","severity":"High","suggestion":"Refer to ADGM Courts instead"},
  {"section":"Clause 9","issue":"No UBO disclosure","severity":"Medium","suggestion":"Add a UBO disclosure clause"}
]}`

	result := parseReviewResponse("fallback name", response)

	if result.Document != "Articles of Association" {
		t.Errorf("Document = %q", result.Document)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(result.Issues))
	}
	if result.Issues[0].Section != "Clause 4" || result.Issues[0].Severity != "High" {
		t.Errorf("first issue mismatch: %+v", result.Issues[0])
	}
	if result.Issues[1].Suggestion != "Add a UBO disclosure clause" {
		t.Errorf("second issue mismatch: %+v", result.Issues[1])
	}
}

func TestParseReviewResponse_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"Free_Text", "The document looks broadly compliant."},
		{"Empty", ""},
		{"Missing_Issues_Field", `{"document":"x"}`},
		{"Null_Issues", `{"document":"x","issues":null}`},
		{"Wrong_Issues_Type", `{"document":"x","issues":"none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseReviewResponse("Memorandum of Association", tt.response)

			if result.Issues == nil {
				t.Error("Issues must never be nil")
			}
			if len(result.Issues) != 0 {
				t.Errorf("got %d issues, want 0", len(result.Issues))
			}
		})
	}
}

func TestParseReviewResponse_DocumentFallback(t *testing.T) {
	// The reviewer omitted the document field; the classified name stands.
	result := parseReviewResponse("UBO Declaration Form", `{"issues":[]}`)
	if result.Document != "UBO Declaration Form" {
		t.Errorf("Document = %q; want the caller-supplied name", result.Document)
	}

	// An empty document string is as good as omitted.
	result = parseReviewResponse("UBO Declaration Form", `{"document":"","issues":[]}`)
	if result.Document != "UBO Declaration Form" {
		t.Errorf("Document = %q; want the caller-supplied name", result.Document)
	}
}
