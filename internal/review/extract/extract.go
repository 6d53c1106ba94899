package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// Text flattens a candidate .docx into plain text: every non-empty body
// paragraph in document order, then every non-empty table cell row-major in
// table order. Whitespace-only entries are skipped entirely rather than
// left as blank lines. Table cells deliberately come after all paragraphs;
// true interleaving is not reconstructed.
func Text(raw []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}

	var parts []string
	var tables []*docx.Table
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(it.String()); text != "" {
				parts = append(parts, text)
			}
		case *docx.Table:
			tables = append(tables, it)
		}
	}
	for _, table := range tables {
		parts = append(parts, cellTexts(table)...)
	}
	return strings.Join(parts, "\n"), nil
}

func cellTexts(table *docx.Table) []string {
	var parts []string
	for _, row := range table.TableRows {
		for _, cell := range row.TableCells {
			var cellParts []string
			for _, para := range cell.Paragraphs {
				if text := strings.TrimSpace(para.String()); text != "" {
					cellParts = append(cellParts, text)
				}
			}
			if len(cellParts) > 0 {
				parts = append(parts, strings.Join(cellParts, "\n"))
			}
		}
	}
	return parts
}
