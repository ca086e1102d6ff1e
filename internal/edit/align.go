package edit

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

// Alignment is a horizontal alignment as the user names it.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Direction is a block's text direction.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// textAlignFor maps a visual alignment onto the logical start/end value stored
// in the model, which flips under rtl.
func textAlignFor(a Alignment, format model.Format) string {
	rtl := format.Get(model.KeyDirection) == string(DirectionRTL)
	switch a {
	case AlignLeft:
		if rtl {
			return "end"
		}
		return "start"
	case AlignRight:
		if rtl {
			return "start"
		}
		return "end"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return ""
	}
}

// SetModelAlignment aligns the selected blocks. Wholly selected tables are
// positioned through their margins and their content is left alone. List
// items update both the item and its deepest level.
func SetModelAlignment(doc *model.Document, alignment Alignment) bool {
	if textAlignFor(alignment, nil) == "" {
		return false
	}

	var tables []*model.Table
	for _, s := range selection.CollectSelections(doc, &selection.Options{ContentUnderSelectedTableCell: selection.IgnoreForTable}) {
		if t, ok := s.Block.(*model.Table); ok && s.Table == nil {
			tables = append(tables, t)
			alignTable(t, alignment)
		}
	}

	changed := len(tables) > 0
	for _, ob := range selection.GetOperationalBlocks(doc, listItemTypes, tableCellTypes, false) {
		if insideTables(ob.Path, tables) {
			continue
		}
		switch b := ob.Block.(type) {
		case *model.Table:
			if slices.Contains(tables, b) {
				continue
			}
		case *model.ListItem:
			value := textAlignFor(alignment, b.Format)
			b.Format.Set(model.KeyTextAlign, value)
			if level := b.LastLevel(); level != nil {
				level.Format.Set(model.KeyTextAlign, value)
			}
			changed = true
			continue
		}
		format := ob.Block.BlockFormat()
		format.Set(model.KeyTextAlign, textAlignFor(alignment, *format))
		changed = true
	}
	return changed
}

func alignTable(t *model.Table, alignment Alignment) {
	left, right := "", ""
	rtl := t.Format.Get(model.KeyDirection) == string(DirectionRTL)
	switch {
	case alignment == AlignCenter:
		left, right = "auto", "auto"
	case (alignment == AlignRight) != rtl:
		left = "auto"
	}
	t.Format.Set(model.KeyMarginLeft, left)
	t.Format.Set(model.KeyMarginRight, right)
	if left == "" {
		t.Format.Delete(model.KeyMarginLeft)
	}
	if right == "" {
		t.Format.Delete(model.KeyMarginRight)
	}
}

// insideTables reports whether path runs through a cell of one of tables.
func insideTables(path []model.BlockGroup, tables []*model.Table) bool {
	if len(tables) == 0 {
		return false
	}
	for _, g := range path {
		cell, ok := g.(*model.TableCell)
		if !ok {
			continue
		}
		for _, t := range tables {
			for _, row := range t.Rows {
				if slices.Contains(row.Cells, cell) {
					return true
				}
			}
		}
	}
	return false
}

// SetModelDirection sets the text direction of the selected blocks. A list
// item carries the change to every item of its thread, and block margins and
// paddings swap sides to follow the new direction.
func SetModelDirection(doc *model.Document, direction Direction) bool {
	if direction != DirectionLTR && direction != DirectionRTL {
		return false
	}

	changed := false
	seen := map[*model.ListItem]bool{}
	for _, ob := range selection.GetOperationalBlocks(doc, listItemTypes, tableCellTypes, false) {
		item, ok := ob.Block.(*model.ListItem)
		if !ok {
			internalSetDirection(ob.Block.BlockFormat(), direction)
			changed = true
			continue
		}
		if seen[item] {
			continue
		}
		for _, it := range FindListItemsInSameThread(doc, item) {
			seen[it] = true
			for _, level := range it.Levels {
				level.Format.Set(model.KeyDirection, string(direction))
			}
			internalSetDirection(&it.Format, direction)
			for _, b := range it.Blocks {
				internalSetDirection(b.BlockFormat(), direction)
			}
		}
		seen[item] = true
		changed = true
	}
	return changed
}

// internalSetDirection sets direction and, when it flips, mirrors the
// horizontal margins and paddings.
func internalSetDirection(format *model.Format, direction Direction) {
	was := format.Get(model.KeyDirection)
	if was == "" {
		was = string(DirectionLTR)
	}
	format.Set(model.KeyDirection, string(direction))
	if was == string(direction) {
		return
	}
	swapKeys(*format, model.KeyMarginLeft, model.KeyMarginRight)
	swapKeys(*format, model.KeyPaddingLeft, model.KeyPaddingRight)
}

func swapKeys(f model.Format, a, b string) {
	va, okA := f[a]
	vb, okB := f[b]
	delete(f, a)
	delete(f, b)
	if okA {
		f[b] = va
	}
	if okB {
		f[a] = vb
	}
}
