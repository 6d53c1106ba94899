package audit

import (
	"testing"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/checklist"
)

func TestFirstMissing_AllPresent(t *testing.T) {
	required, _ := checklist.Required(checklist.DefaultProcess)

	// Detection order should not matter, only presence.
	detected := []string{
		checklist.RegisterMembersDirectors,
		checklist.UBODeclaration,
		checklist.IncorporationApplication,
		checklist.MemorandumOfAssociation,
		checklist.ArticlesOfAssociation,
	}

	if missing, absent := FirstMissing(detected, required); absent {
		t.Errorf("Expected nothing missing, got %q", missing)
	}
}

func TestFirstMissing_ReportsEarliest(t *testing.T) {
	required, _ := checklist.Required(checklist.DefaultProcess)

	// Both the memorandum and the UBO declaration are absent; the earlier
	// checklist entry must be the one reported.
	detected := []string{
		checklist.ArticlesOfAssociation,
		checklist.IncorporationApplication,
		checklist.RegisterMembersDirectors,
	}

	missing, absent := FirstMissing(detected, required)
	if !absent {
		t.Fatal("Expected a missing document")
	}
	if missing != checklist.MemorandumOfAssociation {
		t.Errorf("FirstMissing() = %q; want %q", missing, checklist.MemorandumOfAssociation)
	}
}

func TestFirstMissing_DuplicatesDoNotMask(t *testing.T) {
	required := []string{"A", "B"}
	detected := []string{"A", "A", "A"}

	missing, absent := FirstMissing(detected, required)
	if !absent || missing != "B" {
		t.Errorf("FirstMissing() = %q, %v; want %q, true", missing, absent, "B")
	}
}

func TestFirstMissing_EmptyDetected(t *testing.T) {
	required, _ := checklist.Required(checklist.DefaultProcess)

	missing, absent := FirstMissing(nil, required)
	if !absent {
		t.Fatal("Expected a missing document for an empty detected set")
	}
	if missing != required[0] {
		t.Errorf("FirstMissing() = %q; want first checklist entry %q", missing, required[0])
	}
}

func TestFirstMissing_UnknownTypeDoesNotSatisfy(t *testing.T) {
	required := []string{checklist.ArticlesOfAssociation}
	detected := []string{checklist.UnknownDocumentType}

	if _, absent := FirstMissing(detected, required); !absent {
		t.Error("An unclassified document must not satisfy a checklist entry")
	}
}
