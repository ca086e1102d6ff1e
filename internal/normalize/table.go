package normalize

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
)

// DefaultCellWidth is the width given to columns that have none.
const DefaultCellWidth = 120.0

// NormalizeTable makes table rectangular and renderable. Empty rows are
// removed, short rows are padded, cells in the first row or column never span,
// empty cells get a line break, and every column gets a width.
func NormalizeTable(t *model.Table, defaultSegmentFormat model.Format) {
	t.Format.Set(model.KeyBorderCollapse, "true")
	t.Format.Set(model.KeyUseBorderBox, "true")

	t.Rows = slices.DeleteFunc(t.Rows, func(row *model.TableRow) bool {
		return row == nil || len(row.Cells) == 0
	})

	columns := 0
	for _, row := range t.Rows {
		columns = max(columns, len(row.Cells))
	}

	for r, row := range t.Rows {
		for len(row.Cells) < columns {
			row.Cells = append(row.Cells, model.NewTableCell(false, false, false, nil))
		}
		for c, cell := range row.Cells {
			if cell == nil {
				cell = model.NewTableCell(false, false, false, nil)
				row.Cells[c] = cell
			}
			if r == 0 {
				cell.SpanAbove = false
			}
			if c == 0 {
				cell.SpanLeft = false
			}
			cell.Format.Set(model.KeyUseBorderBox, "true")
			if len(cell.Blocks) == 0 {
				p := model.NewParagraph(false, nil, defaultSegmentFormat, nil)
				p.Segments = append(p.Segments, model.NewBr(defaultSegmentFormat))
				model.AddBlock(cell, p)
			}
		}
	}

	for len(t.Widths) < columns {
		t.Widths = append(t.Widths, DefaultCellWidth)
	}
	if len(t.Widths) > columns {
		t.Widths = t.Widths[:columns]
	}
}
