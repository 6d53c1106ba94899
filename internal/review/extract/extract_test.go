package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
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

func TestText(t *testing.T) {
	raw := buildDocx(t,
		"ARTICLES OF ASSOCIATION",
		"Section 1: Name and registered office",
		"Section 2: Directors and their duties",
	)

	text, err := Text(raw)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	expected := "ARTICLES OF ASSOCIATION\nSection 1: Name and registered office\nSection 2: Directors and their duties"
	if text != expected {
		t.Errorf("Text() = %q; want %q", text, expected)
	}
}

func TestText_SkipsWhitespaceParagraphs(t *testing.T) {
	raw := buildDocx(t, "Title", "   ", "Body")

	text, err := Text(raw)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	if strings.Contains(text, "\n\n") {
		t.Errorf("blank paragraph left a blank line: %q", text)
	}
	if text != "Title\nBody" {
		t.Errorf("Text() = %q; want %q", text, "Title\nBody")
	}
}

func TestText_InvalidBytes(t *testing.T) {
	if _, err := Text([]byte("not a zip archive")); err == nil {
		t.Error("Expected error for invalid docx bytes")
	}
}
