package edit

import (
	"slices"
	"strings"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

// LinkOptions describes a link to insert.
type LinkOptions struct {
	URL    string `json:"url" yaml:"url"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

var linkSchemes = []string{"http://", "https://", "mailto:", "tel:", "ftp://", "file://", "#", "/"}

// normalizeURL prefixes a scheme-less address with https://.
func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	lower := strings.ToLower(url)
	for _, scheme := range linkSchemes {
		if strings.HasPrefix(lower, scheme) {
			return url
		}
	}
	return "https://" + url
}

// InsertLink links the selected text and images. A caret inside an existing
// link first widens to the whole link. When the selection is collapsed, or
// opts.Text differs from the selected text, the selection is replaced by a new
// linked text segment.
func InsertLink(doc *model.Document, opts LinkOptions) bool {
	if strings.TrimSpace(opts.URL) == "" {
		return false
	}
	url := normalizeURL(opts.URL)

	selection.AdjustSegmentSelection(doc,
		func(s model.Segment) bool { return s.Base().IsSelected && s.Base().Link != nil },
		func(target, ref model.Segment) bool {
			return target.Base().Link != nil && target.Base().Link.Href() == ref.Base().Link.Href()
		})

	segments := selection.GetSelectedSegments(doc, false)
	if len(segments) == 0 {
		return false
	}

	var original strings.Builder
	for _, seg := range segments {
		if t, ok := seg.(*model.Text); ok {
			original.WriteString(t.Text)
		}
	}
	text := opts.Text
	if text == "" {
		text = original.String()
	}

	link := model.NewLink(url, opts.Title, opts.Target)
	hasContent := slices.ContainsFunc(segments, func(s model.Segment) bool {
		return s.SegmentType() != model.SegmentSelectionMarker
	})

	if hasContent && text == original.String() {
		for _, seg := range segments {
			switch seg.SegmentType() {
			case model.SegmentText, model.SegmentImage:
				seg.Base().Link = model.CloneLink(link)
			default:
				seg.Base().Link = nil
			}
		}
		return true
	}

	if text == "" {
		text = url
	}
	return InsertSegment(doc, model.NewText(text, segments[0].Base().Format, link, nil))
}

// RemoveLink strips links from the selection. A caret inside a link widens to
// the whole link first.
func RemoveLink(doc *model.Document) bool {
	selection.AdjustSegmentSelection(doc,
		func(s model.Segment) bool { return s.Base().IsSelected && s.Base().Link != nil },
		func(target, ref model.Segment) bool {
			return !target.Base().IsSelected && target.Base().Link != nil && target.Base().Link.Href() == ref.Base().Link.Href()
		})

	changed := false
	for _, seg := range selection.GetSelectedSegments(doc, false) {
		if seg.Base().Link != nil {
			seg.Base().Link = nil
			changed = true
		}
	}
	return changed
}

// InsertSegment replaces the selected segments with seg and leaves a caret
// right after it. The selection must lie within one paragraph.
func InsertSegment(doc *model.Document, seg model.Segment) bool {
	pairs := selection.GetSelectedSegmentsAndParagraphs(doc, false)
	if len(pairs) == 0 {
		return false
	}
	p := pairs[0].Paragraph
	for _, sp := range pairs {
		if sp.Paragraph != p {
			return false
		}
	}

	index := model.IndexOfSegment(p, pairs[0].Segment)
	if index < 0 {
		return false
	}
	p.Segments = slices.DeleteFunc(p.Segments, func(s model.Segment) bool {
		return slices.ContainsFunc(pairs, func(sp selection.SegmentAndParagraph) bool { return sp.Segment == s })
	})

	seg.Base().IsSelected = false
	caret := model.NewSelectionMarker(seg.Base().Format)
	p.Segments = slices.Insert(p.Segments, min(index, len(p.Segments)), seg, model.Segment(caret))
	return true
}
