package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/contentmodel/internal/model"
)

// CSVParser handles CSV files. The file becomes one table whose first row is
// a header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*model.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	b := newBuilder()
	if len(records) == 0 {
		return b.doc, nil
	}

	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}

	table := model.NewTable(0, model.Format{model.KeyBorderCollapse: "true"})
	b.addBlock(table)
	for i, rec := range records {
		header := i == 0
		row := model.NewTableRow(nil)
		table.Rows = append(table.Rows, row)
		for j := 0; j < width; j++ {
			cell := model.NewTableCell(false, false, header, nil)
			row.Cells = append(row.Cells, cell)
			if j >= len(rec) || rec[j] == "" {
				continue
			}
			b.groups = append(b.groups, cell)
			b.openParagraph(nil, nil)
			if header {
				b.withFormat(model.KeyFontWeight, "bold", func() { b.addText(rec[j]) })
			} else {
				b.addText(rec[j])
			}
			b.pop()
		}
	}
	b.para = nil
	return b.doc, nil
}
