package classify

import (
	"testing"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/checklist"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Articles_Full_Phrase",
			text:     "ARTICLES OF ASSOCIATION of Example Holdings Ltd",
			expected: checklist.ArticlesOfAssociation,
		},
		{
			name:     "Articles_Abbreviation",
			text:     "This AoA governs the internal affairs of the company.",
			expected: checklist.ArticlesOfAssociation,
		},
		{
			name:     "Memorandum",
			text:     "Memorandum of Association dated 1 January 2025",
			expected: checklist.MemorandumOfAssociation,
		},
		{
			name:     "Incorporation_Application",
			text:     "incorporation application form for a private company",
			expected: checklist.IncorporationApplication,
		},
		{
			name:     "UBO_Declaration",
			text:     "UBO Declaration in respect of the ultimate beneficial owner",
			expected: checklist.UBODeclaration,
		},
		{
			name:     "Register_Of_Members",
			text:     "Register of Members maintained under the regulations",
			expected: checklist.RegisterMembersDirectors,
		},
		{
			name:     "Register_Of_Directors",
			text:     "REGISTER OF DIRECTORS as at the date hereof",
			expected: checklist.RegisterMembersDirectors,
		},
		{
			name:     "No_Match",
			text:     "Employment contract between the company and the employee",
			expected: checklist.UnknownDocumentType,
		},
		{
			name:     "Empty_Text",
			text:     "",
			expected: checklist.UnknownDocumentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.expected {
				t.Errorf("Classify() = %q; want %q", got, tt.expected)
			}
		})
	}
}

// A text matching several entries must always resolve to the first entry
// in declaration order, no matter where the keywords sit in the text.
func TestClassify_Precedence(t *testing.T) {
	text := "Memorandum of Association referencing the Articles of Association"
	if got := Classify(text); got != checklist.ArticlesOfAssociation {
		t.Errorf("Classify() = %q; want %q", got, checklist.ArticlesOfAssociation)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "register of members and register of directors with a memorandum"
	first := Classify(text)
	for i := 0; i < 50; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify() varied between runs: %q vs %q", got, first)
		}
	}
}
