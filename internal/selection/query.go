package selection

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
)

// SegmentAndParagraph is a selected segment with its owner. Paragraph is nil
// when Segment is a list item's format holder.
type SegmentAndParagraph struct {
	Segment   model.Segment
	Paragraph *model.Paragraph
	Path      []model.BlockGroup
}

// GetSelectedSegmentsAndParagraphs lists every selected segment in document
// order. With includingFormatHolder, format holders of fully selected list
// items are reported as well.
func GetSelectedSegmentsAndParagraphs(root model.BlockGroup, includingFormatHolder bool) []SegmentAndParagraph {
	opts := &Options{IncludeListFormatHolder: Never}
	if includingFormatHolder {
		opts.IncludeListFormatHolder = AllSegments
	}

	var out []SegmentAndParagraph
	IterateSelections(root, func(path []model.BlockGroup, _ *TableContext, block model.Block, segments []model.Segment) bool {
		if len(segments) == 0 {
			return false
		}
		if block == nil {
			if item, ok := path[0].(*model.ListItem); ok && includingFormatHolder && len(segments) == 1 && segments[0] == model.Segment(item.FormatHolder) {
				out = append(out, SegmentAndParagraph{Segment: segments[0], Path: path})
			}
			return false
		}
		if p, ok := block.(*model.Paragraph); ok {
			for _, seg := range segments {
				out = append(out, SegmentAndParagraph{Segment: seg, Paragraph: p, Path: path})
			}
		}
		return false
	}, opts)
	return out
}

// GetSelectedSegments lists the selected segments only.
func GetSelectedSegments(root model.BlockGroup, includingFormatHolder bool) []model.Segment {
	pairs := GetSelectedSegmentsAndParagraphs(root, includingFormatHolder)
	out := make([]model.Segment, 0, len(pairs))
	for _, sp := range pairs {
		out = append(out, sp.Segment)
	}
	return out
}

// GetSelectedParagraphs lists each paragraph holding a meaningful selection once.
func GetSelectedParagraphs(root model.BlockGroup) []*model.Paragraph {
	var out []*model.Paragraph
	for _, s := range CollectSelections(root, &Options{IncludeListFormatHolder: Never}) {
		if p := s.Paragraph(); p != nil && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// GetFirstSelectedListItem returns the list item around the first selection
// that sits in one, without crossing table cells.
func GetFirstSelectedListItem(root model.BlockGroup) *model.ListItem {
	for _, ob := range GetOperationalBlocks(root, []model.BlockGroupType{model.GroupListItem}, []model.BlockGroupType{model.GroupTableCell}, false) {
		if item, ok := ob.Block.(*model.ListItem); ok {
			return item
		}
	}
	return nil
}

// GetFirstSelectedTable returns the first table that is selected or holds the
// selection, and the path to its parent group.
func GetFirstSelectedTable(root model.BlockGroup) (*model.Table, []model.BlockGroup) {
	for _, s := range CollectSelections(root, &Options{IncludeListFormatHolder: Never}) {
		if t, ok := s.Block.(*model.Table); ok {
			return t, s.Path
		}
		if s.Table == nil {
			continue
		}
		cell := s.Table.Cell()
		for i, g := range s.Path {
			if g == model.BlockGroup(cell) {
				return s.Table.Table, s.Path[i+1:]
			}
		}
	}
	return nil, nil
}

// HasSelectionInBlockGroup reports whether anything under group is selected.
func HasSelectionInBlockGroup(group model.BlockGroup) bool {
	if cell, ok := group.(*model.TableCell); ok && cell.IsSelected {
		return true
	}
	if gb, ok := group.(*model.GeneralBlock); ok && gb.IsSelected {
		return true
	}
	for _, b := range group.Group().Blocks {
		if HasSelectionInBlock(b) {
			return true
		}
	}
	return false
}

// HasSelectionInBlock reports whether anything in block is selected.
func HasSelectionInBlock(block model.Block) bool {
	switch b := block.(type) {
	case *model.Paragraph:
		return slices.ContainsFunc(b.Segments, HasSelectionInSegment)
	case *model.Table:
		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				if cell != nil && HasSelectionInBlockGroup(cell) {
					return true
				}
			}
		}
		return false
	case *model.Divider:
		return b.IsSelected
	case model.BlockGroup:
		return HasSelectionInBlockGroup(b)
	default:
		return false
	}
}

// HasSelectionInSegment reports whether seg or anything inside it is selected.
func HasSelectionInSegment(seg model.Segment) bool {
	if seg.Base().IsSelected {
		return true
	}
	if gs, ok := seg.(*model.GeneralSegment); ok {
		return HasSelectionInBlockGroup(gs)
	}
	return false
}
