package edit

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

// ToggleModelBlockQuote wraps the selected blocks in quotes, or unwraps them
// when every selected block already sits in a quote. Selected list items are
// wrapped whole. A new quote merges with an adjacent quote of the same format.
func ToggleModelBlockQuote(doc *model.Document, format, segmentFormat model.Format) bool {
	blocks := selection.GetOperationalBlocks(doc,
		[]model.BlockGroupType{model.GroupQuote, model.GroupListItem},
		tableCellTypes,
		true)

	allQuotes := !slices.ContainsFunc(blocks, func(ob selection.OperationalBlock) bool {
		_, ok := ob.Block.(*model.Quote)
		return !ok
	})

	if allQuotes {
		for _, ob := range blocks {
			if q, ok := ob.Block.(*model.Quote); ok && ob.Parent != nil {
				model.UnwrapBlock(ob.Parent, q)
			}
		}
		return len(blocks) > 0
	}

	canMerge := func(b model.Block) bool {
		q, ok := b.(*model.Quote)
		return ok && model.SameFormat(q.Format, format) && model.SameFormat(q.QuoteSegmentFormat, segmentFormat)
	}
	create := func() model.GroupBlock { return model.NewQuote(format, segmentFormat) }

	var wrapped []wrapResult
	for _, ob := range blocks {
		if _, ok := ob.Block.(*model.Quote); ok {
			continue
		}
		wrapped = wrapBlockStep1(wrapped, ob.Parent, ob.Block, create, canMerge)
	}
	wrapBlockStep2(wrapped, canMerge)
	return len(blocks) > 0
}

type wrapResult struct {
	parent  model.BlockGroup
	wrapper model.GroupBlock
}

// wrapBlockStep1 moves block into a wrapper at its position, reusing the
// previous sibling when canMerge accepts it.
func wrapBlockStep1(results []wrapResult, parent model.BlockGroup, block model.Block, create func() model.GroupBlock, canMerge func(model.Block) bool) []wrapResult {
	index := model.IndexOfBlock(parent, block)
	if index < 0 {
		return results
	}
	g := parent.Group()
	g.Blocks = slices.Delete(g.Blocks, index, index+1)

	var wrapper model.GroupBlock
	if index > 0 && canMerge(g.Blocks[index-1]) {
		wrapper = g.Blocks[index-1].(model.GroupBlock)
	} else {
		wrapper = create()
		g.Blocks = slices.Insert(g.Blocks, index, model.Block(wrapper))
	}

	model.SetParagraphNotImplicit(block)
	model.AddBlock(wrapper, block)
	return append(results, wrapResult{parent: parent, wrapper: wrapper})
}

// wrapBlockStep2 merges each wrapper with the following sibling when canMerge
// accepts it.
func wrapBlockStep2(results []wrapResult, canMerge func(model.Block) bool) {
	for _, r := range results {
		g := r.parent.Group()
		index := model.IndexOfBlock(r.parent, r.wrapper)
		if index < 0 || index+1 >= len(g.Blocks) || !canMerge(g.Blocks[index+1]) {
			continue
		}
		next := g.Blocks[index+1].(model.GroupBlock)
		for _, b := range r.wrapper.Group().Blocks {
			model.SetParagraphNotImplicit(b)
		}
		wg := r.wrapper.Group()
		wg.Blocks = append(wg.Blocks, next.Group().Blocks...)
		g.Blocks = slices.Delete(g.Blocks, index+1, index+2)
	}
}
