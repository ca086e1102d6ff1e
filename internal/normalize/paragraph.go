package normalize

import (
	"maps"
	"slices"
	"strings"

	"github.com/dgallion1/contentmodel/internal/model"
)

const nbsp = '\u00a0'

// NormalizeParagraph fixes trailing line breaks, collapses white space unless
// the paragraph preserves it, and drops or merges redundant segments.
func NormalizeParagraph(p *model.Paragraph) {
	preserved := isWhiteSpacePreserved(p.Format[model.KeyWhiteSpace])
	if !preserved {
		collapseWhiteSpace(p)
	}
	removeEmptySegments(p)
	removeEmptyLinks(p)
	fixTrailingBr(p)
	mergeTextSegments(p)
	if !preserved {
		for _, seg := range p.Segments {
			if t, ok := seg.(*model.Text); ok {
				t.Text = replaceInnerNbsp(t.Text)
			}
		}
	}
}

// fixTrailingBr keeps an explicit paragraph renderable: a caret on an empty
// line gets a Br after it, and a single Br ending a line of content is dropped.
func fixTrailingBr(p *model.Paragraph) {
	n := len(p.Segments)
	if p.IsImplicit || n == 0 {
		return
	}

	last := p.Segments[n-1]
	var secondLast model.Segment
	if n > 1 {
		secondLast = p.Segments[n-2]
	}

	switch {
	case last.SegmentType() == model.SegmentSelectionMarker &&
		(secondLast == nil || secondLast.SegmentType() == model.SegmentBr):
		p.Segments = append(p.Segments, model.NewBr(last.Base().Format))
	case n > 1 && last.SegmentType() == model.SegmentBr:
		var content []model.Segment
		for _, seg := range p.Segments {
			if seg.SegmentType() != model.SegmentSelectionMarker {
				content = append(content, seg)
			}
		}
		// Two or more trailing breaks are intentional empty lines.
		if len(content) > 1 && content[len(content)-2].SegmentType() != model.SegmentBr {
			p.Segments = p.Segments[:n-1]
		}
	}
}

func isWhiteSpacePreserved(ws string) bool {
	return strings.HasPrefix(ws, "pre") || ws == "break-spaces"
}

// collapseWhiteSpace applies CSS white-space: normal to the paragraph's text.
// Runs of spaces collapse to one, and spaces at the start or end of a line are
// removed. A line ends at a Br or at the end of the paragraph. A trailing space
// directly before the caret becomes a non-breaking space instead.
func collapseWhiteSpace(p *model.Paragraph) {
	ignoreLeading := true
	var lastText *model.Text
	var lastInline model.Segment
	caretAfterText := false

	endLine := func() {
		if lastText != nil && lastInline == model.Segment(lastText) {
			if caretAfterText && strings.HasSuffix(lastText.Text, " ") {
				lastText.Text = strings.TrimSuffix(lastText.Text, " ") + string(nbsp)
			} else {
				lastText.Text = strings.TrimRight(lastText.Text, " ")
			}
		}
		ignoreLeading = true
		lastText = nil
		lastInline = nil
		caretAfterText = false
	}

	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case *model.Br:
			endLine()
		case *model.SelectionMarker:
			if lastText != nil && lastInline == model.Segment(lastText) {
				caretAfterText = true
			}
		case *model.Image, *model.GeneralSegment:
			lastInline = seg
			ignoreLeading = false
			caretAfterText = false
		case *model.Text:
			s.Text = collapseSpaces(s.Text)
			if ignoreLeading {
				s.Text = strings.TrimLeft(s.Text, " ")
			}
			if s.Text == "" {
				continue
			}
			ignoreLeading = strings.HasSuffix(s.Text, " ")
			lastText = s
			lastInline = s
			caretAfterText = false
		}
	}
	endLine()
}

func collapseSpaces(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}
	return b.String()
}

// replaceInnerNbsp turns a non-breaking space standing alone between two
// visible characters into a regular space.
func replaceInnerNbsp(text string) string {
	if !strings.ContainsRune(text, nbsp) {
		return text
	}
	runes := []rune(text)
	for i := 1; i < len(runes)-1; i++ {
		if runes[i] == nbsp && isVisible(runes[i-1]) && isVisible(runes[i+1]) {
			runes[i] = ' '
		}
	}
	return string(runes)
}

func isVisible(r rune) bool {
	return r != ' ' && r != nbsp
}

// removeEmptyLinks drops the link of a selection marker that no linked
// neighbor with the same target supports.
func removeEmptyLinks(p *model.Paragraph) {
	for i, seg := range p.Segments {
		m, ok := seg.(*model.SelectionMarker)
		if !ok || m.Link == nil {
			continue
		}
		href := m.Link.Href()
		keep := false
		if i > 0 && p.Segments[i-1].Base().Link != nil && p.Segments[i-1].Base().Link.Href() == href {
			keep = true
		}
		if i+1 < len(p.Segments) && p.Segments[i+1].Base().Link != nil && p.Segments[i+1].Base().Link.Href() == href {
			keep = true
		}
		if !keep {
			m.Link = nil
		}
	}
}

func removeEmptySegments(p *model.Paragraph) {
	p.Segments = slices.DeleteFunc(p.Segments, func(seg model.Segment) bool {
		switch s := seg.(type) {
		case *model.Text:
			return s.Text == ""
		case *model.Image:
			return s.Src == ""
		default:
			return false
		}
	})
}

func mergeTextSegments(p *model.Paragraph) {
	out := p.Segments[:0]
	var prev *model.Text
	for _, seg := range p.Segments {
		t, ok := seg.(*model.Text)
		if ok && prev != nil && canMerge(prev, t) {
			prev.Text += t.Text
			continue
		}
		out = append(out, seg)
		prev = nil
		if ok {
			prev = t
		}
	}
	clear(p.Segments[len(out):])
	p.Segments = out
}

func canMerge(a, b *model.Text) bool {
	return a.IsSelected == b.IsSelected &&
		maps.Equal(a.Format, b.Format) &&
		sameLink(a.Link, b.Link) &&
		sameCode(a.Code, b.Code)
}

func sameLink(a, b *model.Link) bool {
	if a == nil || b == nil {
		return a == b
	}
	return maps.Equal(a.Format, b.Format) && maps.Equal(a.Dataset, b.Dataset)
}

func sameCode(a, b *model.Code) bool {
	if a == nil || b == nil {
		return a == b
	}
	return maps.Equal(a.Format, b.Format)
}
