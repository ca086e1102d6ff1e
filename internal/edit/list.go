package edit

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

// SetListType turns the selection into a list of listType. When every
// selected list item already has that type at its deepest level, the deepest
// level is removed instead. Bare blocks are wrapped in new list items.
func SetListType(doc *model.Document, listType model.ListType) bool {
	// No stop types: list items are found across table cells too.
	blocks := selection.GetOperationalBlocks(doc, listItemTypes, nil, false)

	alreadyInType := true
	for _, ob := range blocks {
		if item, ok := ob.Block.(*model.ListItem); ok {
			last := item.LastLevel()
			if last == nil || last.ListType != listType {
				alreadyInType = false
			}
		} else if !shouldIgnoreBlock(ob.Block) {
			alreadyInType = false
		}
	}

	for i, ob := range blocks {
		if item, ok := ob.Block.(*model.ListItem); ok {
			setItemListType(item, listType, alreadyInType)
			continue
		}

		if ob.Parent == nil {
			continue
		}
		index := model.IndexOfBlock(ob.Parent, ob.Block)
		if index < 0 || (len(blocks) > 1 && shouldIgnoreBlock(ob.Block)) {
			continue
		}

		parent := ob.Parent.Group()
		var prev model.Block
		if index > 0 {
			prev = parent.Blocks[index-1]
		}
		item := newListItemFor(ob.Block, listType, i == 0 && !isOrderedListItem(prev))
		parent.Blocks[index] = item
	}
	return len(blocks) > 0
}

func setItemListType(item *model.ListItem, listType model.ListType, alreadyInType bool) {
	var level *model.ListLevel
	if n := len(item.Levels); n > 0 {
		level = item.Levels[n-1]
		item.Levels = item.Levels[:n-1]
	}

	switch {
	case !alreadyInType && level != nil:
		level.ListType = listType
		item.Levels = append(item.Levels, level)
	case !alreadyInType:
		item.Levels = append(item.Levels, model.NewListLevel(listType, nil, nil))
	case len(item.Blocks) == 1:
		// The item is about to be unwrapped; its paragraph needs its own element.
		model.SetParagraphNotImplicit(item.Blocks[0])
	}
}

func newListItemFor(block model.Block, listType model.ListType, restart bool) *model.ListItem {
	format := *block.BlockFormat()
	levelFormat := model.Format{
		model.KeyMarginBlockStart: "0px",
		model.KeyMarginBlockEnd:   "0px",
	}
	for _, key := range []string{model.KeyDirection, model.KeyTextAlign} {
		if v, ok := format[key]; ok {
			levelFormat[key] = v
		}
	}

	var start *int
	if restart {
		start = model.Ptr(1)
	}

	holder := model.Format{}
	if p, ok := block.(*model.Paragraph); ok {
		if len(p.Segments) > 0 {
			segFormat := p.Segments[0].Base().Format
			for _, key := range []string{model.KeyFontFamily, model.KeyFontSize, model.KeyTextColor} {
				if v, ok := segFormat[key]; ok {
					holder[key] = v
				}
			}
		}
		// A lone paragraph in a list item renders without its own wrapper.
		p.IsImplicit = true
	}

	item := model.NewListItem([]*model.ListLevel{model.NewListLevel(listType, levelFormat, start)}, holder)
	model.AddBlock(item, block)
	return item
}

// shouldIgnoreBlock reports whether block can be left out of a multi-block
// list conversion: empty paragraphs and non-table blocks can, tables cannot.
func shouldIgnoreBlock(block model.Block) bool {
	switch b := block.(type) {
	case *model.Table:
		return false
	case *model.Paragraph:
		return !slices.ContainsFunc(b.Segments, func(seg model.Segment) bool {
			t := seg.SegmentType()
			return t != model.SegmentBr && t != model.SegmentSelectionMarker
		})
	default:
		return true
	}
}

func isOrderedListItem(block model.Block) bool {
	item, ok := block.(*model.ListItem)
	return ok && len(item.Levels) > 0 && item.Levels[0].ListType == model.ListOrdered
}

// SetListStartNumber sets the start number of the first selected list item.
func SetListStartNumber(doc *model.Document, value int) bool {
	item := selection.GetFirstSelectedListItem(doc)
	if item == nil {
		return false
	}
	level := item.LastLevel()
	if level == nil {
		return false
	}
	level.StartNumberOverride = model.Ptr(value)
	return true
}

// ListStyle carries the list-style-type to apply per list type. Empty values
// leave the corresponding levels untouched.
type ListStyle struct {
	OrderedStyleType   string `json:"orderedStyleType,omitempty" yaml:"orderedStyleType,omitempty"`
	UnorderedStyleType string `json:"unorderedStyleType,omitempty" yaml:"unorderedStyleType,omitempty"`
}

// SetListStyle applies style to the level of the first selected list item and
// to the same level of every item in its numbering thread.
func SetListStyle(doc *model.Document, style ListStyle) bool {
	item := selection.GetFirstSelectedListItem(doc)
	if item == nil || len(item.Levels) == 0 {
		return false
	}
	depth := len(item.Levels) - 1

	changed := false
	for _, it := range FindListItemsInSameThread(doc, item) {
		if depth >= len(it.Levels) {
			continue
		}
		level := it.Levels[depth]
		styleType := style.UnorderedStyleType
		if level.ListType == model.ListOrdered {
			styleType = style.OrderedStyleType
		}
		if styleType == "" {
			continue
		}
		level.Format.Set(model.KeyListStyleType, styleType)
		changed = true
	}
	return changed
}
