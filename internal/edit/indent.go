// Package edit implements the structural mutations of a content model. Every
// mutator acts on the current selection and reports whether it changed the
// tree; the caller normalizes afterwards.
package edit

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

var (
	listItemTypes  = []model.BlockGroupType{model.GroupListItem}
	tableCellTypes = []model.BlockGroupType{model.GroupTableCell}
)

// IndentDirection selects Indent or Outdent in SetModelIndentation.
type IndentDirection string

const (
	IndentIncrease IndentDirection = "indent"
	IndentDecrease IndentDirection = "outdent"
)

// SetModelIndentation indents or outdents the selection.
func SetModelIndentation(doc *model.Document, dir IndentDirection) bool {
	if dir == IndentDecrease {
		return Outdent(doc)
	}
	return Indent(doc)
}

// Indent nests selected list items one level deeper and wraps other selected
// blocks in quotes. Consecutive blocks under the same parent share one quote.
func Indent(doc *model.Document) bool {
	blocks := selection.GetOperationalBlocks(doc, listItemTypes, tableCellTypes, false)

	var pending *model.Quote
	changed := false

	for _, ob := range blocks {
		if item, ok := ob.Block.(*model.ListItem); ok {
			item.Levels = append(item.Levels, newNestedLevel(item.LastLevel()))
			pending = nil
			changed = true
			continue
		}
		if ob.Parent == nil {
			continue
		}

		index := model.IndexOfBlock(ob.Parent, ob.Block)
		if index < 0 {
			continue
		}

		parent := ob.Parent.Group()
		if pending != nil && index > 0 && parent.Blocks[index-1] == model.Block(pending) {
			parent.Blocks = slices.Delete(parent.Blocks, index, index+1)
		} else {
			pending = model.NewQuote(nil, nil)
			parent.Blocks[index] = pending
		}
		model.AddBlock(pending, ob.Block)
		changed = true
	}
	return changed
}

// newNestedLevel derives a deeper level from last. The new level starts an
// unnumbered sub-list, so overrides and list styles are not inherited.
func newNestedLevel(last *model.ListLevel) *model.ListLevel {
	if last == nil {
		return model.NewListLevel(model.ListUnordered, nil, nil)
	}
	level := model.NewListLevel(last.ListType, last.Format, nil)
	level.Format.Delete(model.KeyListStyleType)
	return level
}

// Outdent pops the deepest level of selected list items and moves selected
// blocks out of their enclosing quote, splitting the quote when the block is
// not its first child. Quotes left empty are removed.
func Outdent(doc *model.Document) bool {
	blocks := selection.GetOperationalBlocks(doc, listItemTypes, tableCellTypes, false)

	// A split moves the tail of a quote into a new quote; later blocks still
	// carry the old quote in their path.
	tails := map[*model.Quote]*model.Quote{}
	changed := false

	for _, ob := range blocks {
		if item, ok := ob.Block.(*model.ListItem); ok {
			if n := len(item.Levels); n > 0 {
				item.Levels = item.Levels[:n-1]
				changed = true
			}
			continue
		}

		if len(ob.Path) < 2 {
			continue
		}
		quote, ok := ob.Path[0].(*model.Quote)
		if !ok {
			continue
		}
		for quote != nil && model.IndexOfBlock(quote, ob.Block) < 0 {
			quote = tails[quote]
		}
		if quote == nil {
			continue
		}

		grand := ob.Path[1]
		quoteIndex := model.IndexOfBlock(grand, quote)
		if quoteIndex < 0 {
			continue
		}
		if outdentFromQuote(grand, quoteIndex, quote, ob.Block, tails) {
			changed = true
		}
	}
	return changed
}

func outdentFromQuote(grand model.BlockGroup, quoteIndex int, quote *model.Quote, block model.Block, tails map[*model.Quote]*model.Quote) bool {
	g := grand.Group()
	blockIndex := model.IndexOfBlock(quote, block)
	model.SetParagraphNotImplicit(block)

	if blockIndex == 0 {
		quote.Blocks = slices.Delete(quote.Blocks, 0, 1)
		g.Blocks = slices.Insert(g.Blocks, quoteIndex, block)
		quoteIndex++
	} else {
		tail := slices.Clone(quote.Blocks[blockIndex+1:])
		quote.Blocks = slices.Delete(quote.Blocks, blockIndex, len(quote.Blocks))
		g.Blocks = slices.Insert(g.Blocks, quoteIndex+1, block)
		if len(tail) > 0 {
			next := model.NewQuote(quote.Format, quote.QuoteSegmentFormat)
			next.Blocks = tail
			g.Blocks = slices.Insert(g.Blocks, quoteIndex+2, model.Block(next))
			if old, ok := tails[quote]; ok {
				tails[next] = old
			}
			tails[quote] = next
		}
	}

	if len(quote.Blocks) == 0 {
		g.Blocks = slices.Delete(g.Blocks, quoteIndex, quoteIndex+1)
	}
	return true
}
