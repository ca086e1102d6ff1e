package selection

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/contentmodel/internal/model"
)

// AdjustWordSelection expands a collapsed caret to the word around it. Text
// segments at the word boundaries are split so the word is made of whole
// segments, and the returned slice holds the word's segments plus marker in
// document order. When the caret sits at the start or end of a word, or is not
// found, only marker is returned and the tree is left untouched.
func AdjustWordSelection(root model.BlockGroup, marker model.Segment) []model.Segment {
	var para *model.Paragraph
	IterateSelections(root, func(_ []model.BlockGroup, _ *TableContext, block model.Block, segments []model.Segment) bool {
		if p, ok := block.(*model.Paragraph); ok && len(segments) == 1 && segments[0] == marker {
			para = p
		}
		return true
	}, nil)
	if para == nil {
		return []model.Segment{marker}
	}

	idx := model.IndexOfSegment(para, marker)

	// Count the text segments forming the word on each side of the caret and
	// note where a boundary segment has to be split.
	leftCount, leftSplit, leftOffset := 0, -1, 0
	for i := idx - 1; i >= 0; i-- {
		text, ok := para.Segments[i].(*model.Text)
		if !ok {
			break
		}
		found := findDelimiter(text.Text, false)
		if found < 0 {
			leftCount++
			continue
		}
		if found < len(text.Text) {
			leftCount++
			leftSplit, leftOffset = i, found
		}
		break
	}
	if leftCount == 0 {
		return []model.Segment{marker}
	}

	rightCount, rightSplit, rightOffset := 0, -1, 0
	for i := idx + 1; i < len(para.Segments); i++ {
		text, ok := para.Segments[i].(*model.Text)
		if !ok {
			break
		}
		found := findDelimiter(text.Text, true)
		if found < 0 {
			rightCount++
			continue
		}
		if found > 0 {
			rightCount++
			rightSplit, rightOffset = i, found
		}
		break
	}
	if rightCount == 0 {
		return []model.Segment{marker}
	}

	if rightSplit >= 0 {
		para.Segments = splitText(para.Segments, para.Segments[rightSplit].(*model.Text), rightSplit, rightOffset)
	}
	start := idx - leftCount
	if leftSplit >= 0 {
		para.Segments = splitText(para.Segments, para.Segments[leftSplit].(*model.Text), leftSplit, leftOffset)
		start++
		idx++
	}
	return slices.Clone(para.Segments[start : idx+rightCount+1])
}

// findDelimiter returns the byte offset of the first word delimiter scanning
// forward, or the offset just past the last delimiter scanning backward. It
// returns -1 when text has none.
func findDelimiter(text string, forward bool) int {
	if forward {
		for i, r := range text {
			if isWordDelimiter(r) {
				return i
			}
		}
		return -1
	}
	for end := len(text); end > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:end])
		if isWordDelimiter(r) {
			return end
		}
		end -= size
	}
	return -1
}

func isWordDelimiter(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// splitText cuts text at offset: a new segment holding the head is inserted at
// index and text keeps the tail.
func splitText(segments []model.Segment, text *model.Text, index, offset int) []model.Segment {
	head := model.NewText(text.Text[:offset], text.Format, text.Link, text.Code)
	head.IsSelected = text.IsSelected
	text.Text = text.Text[offset:]
	segments = append(segments, nil)
	copy(segments[index+1:], segments[index:])
	segments[index] = head
	return segments
}

// AdjustSegmentSelection widens the selection of the first and last selected
// paragraphs. When the outermost selected segment satisfies first, neighbors
// for which sibling(neighbor, outermost) holds are selected too, moving
// outward until one does not.
func AdjustSegmentSelection(root model.BlockGroup, first func(model.Segment) bool, sibling func(target, ref model.Segment) bool) bool {
	paragraphs := GetSelectedParagraphs(root)
	if len(paragraphs) == 0 {
		return false
	}
	changed := expandSelection(paragraphs[0], first, sibling, true)
	changed = expandSelection(paragraphs[len(paragraphs)-1], first, sibling, false) || changed
	return changed
}

func expandSelection(p *model.Paragraph, first func(model.Segment) bool, sibling func(target, ref model.Segment) bool, backward bool) bool {
	start := -1
	for i, seg := range p.Segments {
		if seg.Base().IsSelected {
			start = i
			if backward {
				break
			}
		}
	}
	if start < 0 || !first(p.Segments[start]) {
		return false
	}

	ref := p.Segments[start]
	step := 1
	if backward {
		step = -1
	}
	changed := false
	for i := start + step; i >= 0 && i < len(p.Segments); i += step {
		seg := p.Segments[i]
		if !sibling(seg, ref) {
			break
		}
		if !seg.Base().IsSelected {
			seg.Base().IsSelected = true
			changed = true
		}
	}
	return changed
}
