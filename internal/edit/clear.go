package edit

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/normalize"
	"github.com/dgallion1/contentmodel/internal/selection"
)

type pathAndBlock struct {
	path  []model.BlockGroup
	block model.Block
}

type tableToClear struct {
	table *model.Table
	whole bool
}

// ClearModelFormat removes formatting from the selection. A lone caret is
// widened to its word and loses its list context. When several blocks or a
// whole block are selected, block formats, list levels and enclosing
// containers are cleared too. Selected segments are reset to
// defaultSegmentFormat (the document's default when nil) and touched tables
// are reset and normalized.
func ClearModelFormat(doc *model.Document, defaultSegmentFormat model.Format) bool {
	if defaultSegmentFormat == nil {
		defaultSegmentFormat = doc.Format
	}

	var (
		blocks   []pathAndBlock
		segments []model.Segment
		tables   []tableToClear
	)

	selection.IterateSelections(doc, func(path []model.BlockGroup, tc *selection.TableContext, block model.Block, segs []model.Segment) bool {
		segments = append(segments, segs...)
		if block != nil {
			blocks = append(blocks, pathAndBlock{path: path, block: block})
		} else if tc != nil {
			if cell := tc.Cell(); cell != nil && cell.IsSelected {
				cell.IsHeader = false
				cell.Dataset = nil
				cell.Format = keepOnly(cell.Format, model.KeyUseBorderBox)
			}
			if !slices.ContainsFunc(tables, func(t tableToClear) bool { return t.table == tc.Table }) {
				tables = append(tables, tableToClear{table: tc.Table, whole: tc.IsWholeTableSelected})
			}
		}
		return false
	}, &selection.Options{IncludeListFormatHolder: selection.Never})

	switch {
	case len(blocks) == 1 && len(segments) == 1 && segments[0].SegmentType() == model.SegmentSelectionMarker:
		segments = selection.AdjustWordSelection(doc, segments[0])
		clearListFormat(blocks[0].path)
	case len(blocks) > 1 || slices.ContainsFunc(blocks, func(pb pathAndBlock) bool { return isWholeBlockSelected(pb.block) }):
		// Reverse order keeps the indexes of earlier blocks valid.
		for i := len(blocks) - 1; i >= 0; i-- {
			pb := blocks[i]
			clearBlockFormat(pb.path, pb.block)
			clearListFormat(pb.path)
			clearContainerFormat(pb.path, pb.block)
		}
	}

	for _, seg := range segments {
		base := seg.Base()
		base.Format = defaultSegmentFormat.Clone()
		if base.Link != nil {
			base.Link.Format.Delete(model.KeyTextColor)
		}
		base.Code = nil
	}

	for _, t := range tables {
		if t.whole {
			t.table.Format = keepOnly(t.table.Format, model.KeyUseBorderBox, model.KeyBorderCollapse)
			t.table.Dataset = nil
		}
		normalize.NormalizeTable(t.table, defaultSegmentFormat)
	}

	return len(blocks) > 0 || len(segments) > 0 || len(tables) > 0
}

func keepOnly(f model.Format, keys ...string) model.Format {
	out := model.Format{}
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}

func isWholeBlockSelected(block model.Block) bool {
	p, ok := block.(*model.Paragraph)
	if !ok {
		return true
	}
	return len(p.Segments) > 0 && !slices.ContainsFunc(p.Segments, func(s model.Segment) bool { return !s.Base().IsSelected })
}

func clearBlockFormat(path []model.BlockGroup, block model.Block) {
	switch b := block.(type) {
	case *model.Divider:
		parent := path[0].Group()
		if i := slices.Index(parent.Blocks, block); i >= 0 {
			parent.Blocks = slices.Delete(parent.Blocks, i, i+1)
		}
	case *model.Paragraph:
		b.Format = model.Format{}
		b.Decorator = nil
	}
}

func clearListFormat(path []model.BlockGroup) {
	i := selection.GetClosestAncestorBlockGroupIndex(path, listItemTypes, tableCellTypes)
	if i < 0 {
		return
	}
	if item, ok := path[i].(*model.ListItem); ok {
		item.Levels = []*model.ListLevel{}
	}
}

// clearContainerFormat lifts block out of its enclosing quote or format
// container, splitting the container around it.
func clearContainerFormat(path []model.BlockGroup, block model.Block) {
	i := selection.GetClosestAncestorBlockGroupIndex(path,
		[]model.BlockGroupType{model.GroupQuote, model.GroupFormatContainer},
		tableCellTypes)
	if i < 0 || i >= len(path)-1 {
		return
	}

	container, ok := path[i].(model.GroupBlock)
	if !ok {
		return
	}
	parent := path[i+1].Group()
	containerIndex := slices.Index(parent.Blocks, model.Block(container))
	cg := container.Group()
	blockIndex := slices.Index(cg.Blocks, block)
	if containerIndex < 0 || blockIndex < 0 {
		return
	}

	tail := slices.Clone(cg.Blocks[blockIndex+1:])
	cg.Blocks = slices.Delete(cg.Blocks, blockIndex, len(cg.Blocks))
	model.SetParagraphNotImplicit(block)

	insert := []model.Block{block}
	if len(tail) > 0 {
		next := cloneContainer(container)
		next.Group().Blocks = tail
		insert = append(insert, next)
	}
	parent.Blocks = slices.Insert(parent.Blocks, containerIndex+1, insert...)
	if len(cg.Blocks) == 0 {
		parent.Blocks = slices.Delete(parent.Blocks, containerIndex, containerIndex+1)
	}
}

func cloneContainer(container model.GroupBlock) model.GroupBlock {
	switch c := container.(type) {
	case *model.Quote:
		return model.NewQuote(c.Format, c.QuoteSegmentFormat)
	case *model.FormatContainer:
		return model.NewFormatContainer(c.TagName, c.Format)
	default:
		return nil
	}
}
