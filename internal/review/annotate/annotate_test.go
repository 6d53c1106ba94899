package annotate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/reviewModel"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, text := range paragraphs {
		w.AddParagraph().AddText(text)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("failed to build test docx: %v", err)
	}
	return buf.Bytes()
}

func paragraphTexts(t *testing.T, raw []byte) []string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("failed to parse docx: %v", err)
	}
	var texts []string
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			texts = append(texts, para.String())
		}
	}
	return texts
}

func TestApply_RemarkOnMatchingParagraph(t *testing.T) {
	raw := buildDocx(t,
		"ARTICLES OF ASSOCIATION",
		"Section 2: Directors and their duties",
		"Section 3: Shares",
	)

	review := reviewModel.ReviewResult{
		Document: "Articles of Association",
		Issues: []reviewModel.Issue{
			{
				Section:    "Section 2",
				Issue:      "Director duties omit ADGM regulatory obligations",
				Severity:   "High",
				Suggestion: "Reference ADGM Companies Regulations duties",
			},
		},
	}

	annotated, err := Apply(raw, review)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	before := paragraphTexts(t, raw)
	after := paragraphTexts(t, annotated)

	if len(after) != len(before) {
		t.Errorf("paragraph count changed: %d -> %d", len(before), len(after))
	}

	remark := "[Suggestion: Reference ADGM Companies Regulations duties]"
	found := false
	for _, text := range after {
		if strings.Contains(text, "Section 2") && strings.Contains(text, remark) {
			found = true
		}
		if !strings.Contains(text, "Section 2") && strings.Contains(text, remark) {
			t.Errorf("remark landed on the wrong paragraph: %q", text)
		}
	}
	if !found {
		t.Errorf("remark not placed on the matching paragraph; paragraphs: %q", after)
	}
}

func TestApply_FallbackParagraph(t *testing.T) {
	raw := buildDocx(t, "Short document body")

	review := reviewModel.ReviewResult{
		Issues: []reviewModel.Issue{
			{
				Section:    "Clause 99",
				Issue:      "Missing clause entirely",
				Suggestion: "Add the missing clause",
			},
		},
	}

	annotated, err := Apply(raw, review)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	before := paragraphTexts(t, raw)
	after := paragraphTexts(t, annotated)

	if len(after) != len(before)+1 {
		t.Fatalf("expected one trailing paragraph, got %d -> %d", len(before), len(after))
	}
	last := after[len(after)-1]
	if !strings.Contains(last, "[Suggestion: Add the missing clause]") {
		t.Errorf("trailing paragraph = %q", last)
	}
}

func TestApply_SnippetFallsBackToIssueText(t *testing.T) {
	raw := buildDocx(t,
		"The jurisdiction clause cites UAE federal courts instead of the ADGM Courts.",
	)

	review := reviewModel.ReviewResult{
		Issues: []reviewModel.Issue{
			{
				// No section; the first 50 chars of the description must be
				// used to locate the paragraph.
				Issue:      "The jurisdiction clause cites UAE federal courts instead of ADGM Courts",
				Suggestion: "Use ADGM Courts",
			},
		},
	}

	annotated, err := Apply(raw, review)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	after := paragraphTexts(t, annotated)
	if len(after) != 1 {
		t.Fatalf("expected the remark inline, got %d paragraphs", len(after))
	}
	if !strings.Contains(after[0], "[Suggestion: Use ADGM Courts]") {
		t.Errorf("paragraph = %q", after[0])
	}
}

func TestApply_SnippetMultiByteIssueText(t *testing.T) {
	// The accented rune sits across the 50-character cut point; the
	// snippet must stay valid UTF-8 so the paragraph still matches.
	text := "The resolution names the appointed secretary as Célia Haddad."
	raw := buildDocx(t, text)

	review := reviewModel.ReviewResult{
		Issues: []reviewModel.Issue{
			{
				Issue:      text,
				Suggestion: "Spell the secretary's name as registered",
			},
		},
	}

	annotated, err := Apply(raw, review)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	after := paragraphTexts(t, annotated)
	if len(after) != 1 {
		t.Fatalf("expected the remark inline, got %d paragraphs: %q", len(after), after)
	}
	if !strings.Contains(after[0], "[Suggestion: Spell the secretary's name as registered]") {
		t.Errorf("paragraph = %q", after[0])
	}
}

func TestApply_NoIssues(t *testing.T) {
	raw := buildDocx(t, "Clean document")
	original := make([]byte, len(raw))
	copy(original, raw)

	annotated, err := Apply(raw, reviewModel.ReviewResult{Issues: []reviewModel.Issue{}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !bytes.Equal(raw, original) {
		t.Error("input slice was mutated")
	}

	after := paragraphTexts(t, annotated)
	if len(after) != 1 || !strings.Contains(after[0], "Clean document") {
		t.Errorf("content changed with no issues: %q", after)
	}
}

func TestApply_InvalidBytes(t *testing.T) {
	if _, err := Apply([]byte("junk"), reviewModel.ReviewResult{}); err == nil {
		t.Error("Expected error for invalid docx bytes")
	}
}
