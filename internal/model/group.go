package model

import "slices"

// GroupBlock is a block group that can also sit in a block list.
type GroupBlock interface {
	Block
	BlockGroup
}

// AddBlock appends block to group.
func AddBlock(group BlockGroup, block Block) {
	g := group.Group()
	g.Blocks = append(g.Blocks, block)
}

// AddSegment appends seg to the last paragraph of group, creating an implicit
// paragraph when the last block is not one. A selected marker is dropped when
// the paragraph already ends in a selected segment, and a selected segment
// replaces a selected marker right before it.
func AddSegment(group BlockGroup, seg Segment, blockFormat, segmentFormat Format) *Paragraph {
	g := group.Group()
	var p *Paragraph
	if n := len(g.Blocks); n > 0 {
		p, _ = g.Blocks[n-1].(*Paragraph)
	}
	if p == nil {
		p = NewParagraph(true, blockFormat, segmentFormat, nil)
		AddBlock(group, p)
	}

	var last Segment
	if n := len(p.Segments); n > 0 {
		last = p.Segments[n-1]
	}

	if seg.SegmentType() == SegmentSelectionMarker {
		if last == nil || !last.Base().IsSelected || !seg.Base().IsSelected {
			p.Segments = append(p.Segments, seg)
		}
		return p
	}

	if seg.Base().IsSelected && last != nil && last.SegmentType() == SegmentSelectionMarker && last.Base().IsSelected {
		p.Segments = p.Segments[:len(p.Segments)-1]
	}
	p.Segments = append(p.Segments, seg)
	return p
}

// IndexOfBlock returns the position of block among group's children, or -1.
func IndexOfBlock(group BlockGroup, block Block) int {
	if group == nil || block == nil {
		return -1
	}
	return slices.Index(group.Group().Blocks, block)
}

// IndexOfSegment returns the position of seg in p, or -1.
func IndexOfSegment(p *Paragraph, seg Segment) int {
	if p == nil || seg == nil {
		return -1
	}
	return slices.Index(p.Segments, seg)
}

// UnwrapBlock replaces child inside parent with child's own blocks. Unwrapped
// paragraphs become explicit since they lose their wrapper.
func UnwrapBlock(parent BlockGroup, child GroupBlock) bool {
	index := IndexOfBlock(parent, child)
	if index < 0 {
		return false
	}
	children := child.Group().Blocks
	for _, b := range children {
		SetParagraphNotImplicit(b)
	}
	pg := parent.Group()
	pg.Blocks = slices.Replace(pg.Blocks, index, index+1, children...)
	child.Group().Blocks = nil
	return true
}

// SetParagraphNotImplicit clears IsImplicit when block is a paragraph.
func SetParagraphNotImplicit(block Block) {
	if p, ok := block.(*Paragraph); ok {
		p.IsImplicit = false
	}
}

// IsBlockGroupOfType reports whether block is a block group of type t.
func IsBlockGroupOfType(block Block, t BlockGroupType) bool {
	g, ok := block.(BlockGroup)
	return ok && g.BlockGroupType() == t
}

// IsBlockEmpty reports whether block carries nothing worth keeping.
func IsBlockEmpty(block Block) bool {
	switch b := block.(type) {
	case *Paragraph:
		return len(b.Segments) == 0
	case *Table:
		for _, row := range b.Rows {
			if len(row.Cells) > 0 {
				return false
			}
		}
		return true
	case *Divider, *GeneralBlock:
		return false
	case BlockGroup:
		return IsBlockGroupEmpty(b)
	default:
		return false
	}
}

// IsBlockGroupEmpty reports whether a wrapper group has no non-empty children.
// Document, TableCell and General groups are never considered empty.
func IsBlockGroupEmpty(group BlockGroup) bool {
	switch group.BlockGroupType() {
	case GroupListItem, GroupQuote, GroupFormatContainer:
		for _, b := range group.Group().Blocks {
			if !IsBlockEmpty(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
