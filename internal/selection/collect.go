// Package selection walks a content model and reports what is selected in it.
package selection

import "github.com/dgallion1/contentmodel/internal/model"

// ListFormatHolderMode controls when a list item's format holder is reported.
type ListFormatHolderMode int

const (
	// AllSegments reports the holder when every segment of the item is selected.
	AllSegments ListFormatHolderMode = iota
	// AnySegment reports the holder when any segment of the item is selected.
	AnySegment
	// Never omits the holder.
	Never
)

// TableCellMode controls how content under selected table cells is reported.
type TableCellMode int

const (
	// Include walks into selected cells and reports their content.
	Include TableCellMode = iota
	// IgnoreForTable reports a fully selected table as a single block.
	IgnoreForTable
	// IgnoreForTableOrCell also skips content of individually selected cells.
	IgnoreForTableOrCell
)

// GeneralElementMode controls how selected general elements are reported.
type GeneralElementMode int

const (
	// ContentOnly reports the content of a selected general element.
	ContentOnly GeneralElementMode = iota
	// GeneralElementOnly reports the element itself.
	GeneralElementOnly
	// Both reports the element and its content.
	Both
)

// Options tunes IterateSelections. The zero value is the default behavior.
type Options struct {
	IncludeListFormatHolder            ListFormatHolderMode
	ContentUnderSelectedTableCell      TableCellMode
	ContentUnderSelectedGeneralElement GeneralElementMode
}

// TableContext locates a callback inside a table.
type TableContext struct {
	Table                *model.Table
	RowIndex             int
	ColIndex             int
	IsWholeTableSelected bool
}

// Cell returns the cell the context points at.
func (tc *TableContext) Cell() *model.TableCell {
	if tc == nil || tc.RowIndex < 0 || tc.RowIndex >= len(tc.Table.Rows) {
		return nil
	}
	cells := tc.Table.Rows[tc.RowIndex].Cells
	if tc.ColIndex < 0 || tc.ColIndex >= len(cells) {
		return nil
	}
	return cells[tc.ColIndex]
}

// Callback receives one selected run. path is innermost-first and holds live
// references into the tree. block is nil for a selected table cell (path[0] is
// the cell) and for a list format holder. Returning true stops the walk.
type Callback func(path []model.BlockGroup, table *TableContext, block model.Block, segments []model.Segment) bool

// Selection is one collected run.
type Selection struct {
	Path     []model.BlockGroup
	Table    *TableContext
	Block    model.Block
	Segments []model.Segment
}

// Paragraph returns the paragraph owning the run, or nil.
func (s Selection) Paragraph() *model.Paragraph {
	p, _ := s.Block.(*model.Paragraph)
	return p
}

// IterateSelections walks root in document order and calls cb for every
// selected run.
func IterateSelections(root model.BlockGroup, cb Callback, opts *Options) {
	var o Options
	if opts != nil {
		o = *opts
	}
	iterate([]model.BlockGroup{root}, cb, &o, nil, false)
}

func iterate(path []model.BlockGroup, cb Callback, o *Options, table *TableContext, treatAllAsSelected bool) bool {
	parent := path[0]
	hasSelected := false
	hasUnselected := false

	for _, block := range parent.Group().Blocks {
		switch b := block.(type) {
		case *model.Paragraph:
			var segments []model.Segment
			for _, seg := range b.Segments {
				selected := treatAllAsSelected || seg.Base().IsSelected
				if gs, ok := seg.(*model.GeneralSegment); ok {
					handleContent := o.ContentUnderSelectedGeneralElement != GeneralElementOnly || !selected
					handleElement := o.ContentUnderSelectedGeneralElement != ContentOnly || len(gs.Blocks) == 0
					if selected && handleElement {
						segments = append(segments, seg)
					}
					if handleContent && iterate(prepend(gs, path), cb, o, table, selected) {
						return true
					}
				} else if selected {
					segments = append(segments, seg)
				}

				if selected {
					hasSelected = true
				} else {
					hasUnselected = true
				}
			}
			if len(segments) > 0 && cb(path, table, b, segments) {
				return true
			}

		case *model.Table:
			if iterateTable(path, cb, o, b, treatAllAsSelected) {
				return true
			}

		case *model.Divider:
			if (treatAllAsSelected || b.IsSelected) && cb(path, table, b, nil) {
				return true
			}

		case *model.GeneralBlock:
			selected := treatAllAsSelected || b.IsSelected
			handleContent := o.ContentUnderSelectedGeneralElement != GeneralElementOnly || !selected
			handleElement := o.ContentUnderSelectedGeneralElement != ContentOnly || len(b.Blocks) == 0
			if selected && handleElement && cb(path, table, b, nil) {
				return true
			}
			if handleContent && iterate(prepend(b, path), cb, o, table, selected) {
				return true
			}

		case model.BlockGroup:
			if iterate(prepend(b, path), cb, o, table, treatAllAsSelected) {
				return true
			}
		}
	}

	if item, ok := parent.(*model.ListItem); ok &&
		o.IncludeListFormatHolder != Never &&
		hasSelected &&
		(!hasUnselected || o.IncludeListFormatHolder == AnySegment) &&
		item.FormatHolder != nil {
		if cb(path, table, nil, []model.Segment{item.FormatHolder}) {
			return true
		}
	}
	return false
}

func iterateTable(path []model.BlockGroup, cb Callback, o *Options, t *model.Table, treatAllAsSelected bool) bool {
	whole := treatAllAsSelected || isWholeTableSelected(t)

	if whole && o.ContentUnderSelectedTableCell != Include {
		return cb(path, nil, t, nil)
	}

	for r, row := range t.Rows {
		for c, cell := range row.Cells {
			if cell == nil {
				continue
			}
			tc := &TableContext{Table: t, RowIndex: r, ColIndex: c, IsWholeTableSelected: whole}
			cellPath := prepend(cell, path)
			selected := treatAllAsSelected || cell.IsSelected
			if selected && cb(cellPath, tc, nil, nil) {
				return true
			}
			if !selected || o.ContentUnderSelectedTableCell != IgnoreForTableOrCell {
				if iterate(cellPath, cb, o, tc, selected) {
					return true
				}
			}
		}
	}
	return false
}

func isWholeTableSelected(t *model.Table) bool {
	hasCell := false
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			if cell == nil || !cell.IsSelected {
				return false
			}
			hasCell = true
		}
	}
	return hasCell
}

func prepend(group model.BlockGroup, path []model.BlockGroup) []model.BlockGroup {
	out := make([]model.BlockGroup, 0, len(path)+1)
	out = append(out, group)
	return append(out, path...)
}

// CollectSelections returns every selected run in document order. A leading
// run made only of a caret at the end of its paragraph, or a trailing run made
// only of a caret at the start of its paragraph, is dropped when other runs
// exist.
func CollectSelections(root model.BlockGroup, opts *Options) []Selection {
	var out []Selection
	IterateSelections(root, func(path []model.BlockGroup, table *TableContext, block model.Block, segments []model.Segment) bool {
		out = append(out, Selection{Path: path, Table: table, Block: block, Segments: segments})
		return false
	}, opts)
	return removeUnmeaningfulSelections(out)
}

func removeUnmeaningfulSelections(selections []Selection) []Selection {
	if len(selections) > 1 && isOnlyMarkerSelected(selections[0], true) {
		selections = selections[1:]
	}
	if len(selections) > 1 && isOnlyMarkerSelected(selections[len(selections)-1], false) {
		selections = selections[:len(selections)-1]
	}
	return selections
}

// isOnlyMarkerSelected reports whether the run is a lone marker sitting at the
// end (atEnd) or start of its paragraph.
func isOnlyMarkerSelected(s Selection, atEnd bool) bool {
	p := s.Paragraph()
	if p == nil || len(s.Segments) != 1 || len(p.Segments) == 0 {
		return false
	}
	seg := s.Segments[0]
	if seg.SegmentType() != model.SegmentSelectionMarker {
		return false
	}
	if atEnd {
		return seg == p.Segments[len(p.Segments)-1]
	}
	return seg == p.Segments[0]
}
