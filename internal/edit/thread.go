package edit

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
)

// FindListItemsInSameThread returns, in document order, the list items that
// share a numbering sequence with item at item's depth. Ordered threads run
// across interrupting blocks; unordered threads do not. An item whose levels
// carry a start number override begins a new thread.
func FindListItemsInSameThread(group model.BlockGroup, item *model.ListItem) []*model.ListItem {
	var items []*model.ListItem
	collectListItems(group, &items)
	return filterThread(items, item)
}

// collectListItems linearizes the list items under group. A nil entry marks
// any boundary between items: another block, or entering or leaving a group.
func collectListItems(group model.BlockGroup, items *[]*model.ListItem) {
	for _, block := range group.Group().Blocks {
		switch b := block.(type) {
		case *model.ListItem:
			*items = append(*items, b)
		case *model.Paragraph:
			pushBoundary(items)
			for _, seg := range b.Segments {
				if gs, ok := seg.(*model.GeneralSegment); ok {
					collectListItems(gs, items)
					pushBoundary(items)
				}
			}
		case *model.Table:
			pushBoundary(items)
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					if cell == nil {
						continue
					}
					collectListItems(cell, items)
					pushBoundary(items)
				}
			}
		case model.BlockGroup:
			pushBoundary(items)
			collectListItems(b, items)
			pushBoundary(items)
		default:
			pushBoundary(items)
		}
	}
}

func pushBoundary(items *[]*model.ListItem) {
	if n := len(*items); n == 0 || (*items)[n-1] != nil {
		*items = append(*items, nil)
	}
}

func filterThread(items []*model.ListItem, current *model.ListItem) []*model.ListItem {
	index := slices.Index(items, current)
	if index < 0 {
		return nil
	}

	depth := len(current.Levels)
	ordered := false
	if last := current.LastLevel(); last != nil {
		ordered = last.ListType == model.ListOrdered
	}

	var before []*model.ListItem
	for i := index; i >= 0; i-- {
		it := items[i]
		if it == nil {
			if ordered {
				continue
			}
			break
		}
		override := hasStartNumberOverride(it, depth)
		if compatible(current, it) {
			before = append(before, it)
			if override {
				break
			}
		} else if !ordered || override {
			break
		}
	}
	slices.Reverse(before)

	result := before
	for i := index + 1; i < len(items); i++ {
		it := items[i]
		if it == nil {
			if ordered {
				continue
			}
			break
		}
		override := hasStartNumberOverride(it, depth)
		if compatible(current, it) && !override {
			result = append(result, it)
		} else if !ordered || override {
			break
		}
	}
	return result
}

func hasStartNumberOverride(item *model.ListItem, depth int) bool {
	levels := item.Levels[:min(depth, len(item.Levels))]
	return slices.ContainsFunc(levels, func(l *model.ListLevel) bool { return l.StartNumberOverride != nil })
}

// compatible reports whether other is at least as deep as current and agrees
// with it on the list type of every shared level.
func compatible(current, other *model.ListItem) bool {
	if len(current.Levels) > len(other.Levels) {
		return false
	}
	for i, level := range current.Levels {
		if level.ListType != other.Levels[i].ListType {
			return false
		}
	}
	return true
}
