package edit

import (
	"strconv"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

// SegmentFormatter describes one inline style. HasStyle may be nil for
// setters that always apply.
type SegmentFormatter struct {
	Apply               func(seg model.Segment, p *model.Paragraph, on bool)
	HasStyle            func(seg model.Segment, p *model.Paragraph) bool
	IncludeFormatHolder bool
}

// FormatSegments applies f to the selected segments. The style is switched
// off only when every selected segment already has it. A lone caret is first
// widened to the word around it; if it sits outside a word the caret itself
// is formatted so the next typed text picks the style up.
func FormatSegments(doc *model.Document, f SegmentFormatter) bool {
	pairs := selection.GetSelectedSegmentsAndParagraphs(doc, f.IncludeFormatHolder)
	if len(pairs) == 0 {
		return false
	}

	if len(pairs) == 1 && pairs[0].Segment.SegmentType() == model.SegmentSelectionMarker && pairs[0].Paragraph != nil {
		p := pairs[0].Paragraph
		word := selection.AdjustWordSelection(doc, pairs[0].Segment)
		if len(word) > 1 {
			pairs = pairs[:0]
			for _, seg := range word {
				pairs = append(pairs, selection.SegmentAndParagraph{Segment: seg, Paragraph: p})
			}
		}
	}

	on := true
	if f.HasStyle != nil {
		all := true
		for _, sp := range pairs {
			if !f.HasStyle(sp.Segment, sp.Paragraph) {
				all = false
				break
			}
		}
		on = !all
	}

	for _, sp := range pairs {
		f.Apply(sp.Segment, sp.Paragraph, on)
	}
	return true
}

// ToggleBold toggles bold. Text in a bold heading counts as bold.
func ToggleBold(doc *model.Document) bool {
	return FormatSegments(doc, SegmentFormatter{
		IncludeFormatHolder: true,
		HasStyle: func(seg model.Segment, p *model.Paragraph) bool {
			if w, ok := seg.Base().Format[model.KeyFontWeight]; ok {
				return isBold(w)
			}
			return p != nil && p.Decorator != nil && isBold(p.Decorator.Format.Get(model.KeyFontWeight))
		},
		Apply: func(seg model.Segment, _ *model.Paragraph, on bool) {
			value := "normal"
			if on {
				value = "bold"
			}
			seg.Base().Format.Set(model.KeyFontWeight, value)
		},
	})
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

func toggleFlag(key string) SegmentFormatter {
	return SegmentFormatter{
		IncludeFormatHolder: true,
		HasStyle: func(seg model.Segment, _ *model.Paragraph) bool {
			return seg.Base().Format.Get(key) == "true"
		},
		Apply: func(seg model.Segment, _ *model.Paragraph, on bool) {
			seg.Base().Format.Set(key, strconv.FormatBool(on))
		},
	}
}

// ToggleItalic toggles italic.
func ToggleItalic(doc *model.Document) bool {
	return FormatSegments(doc, toggleFlag(model.KeyItalic))
}

// ToggleUnderline toggles underline.
func ToggleUnderline(doc *model.Document) bool {
	return FormatSegments(doc, toggleFlag(model.KeyUnderline))
}

// ToggleStrikethrough toggles strikethrough.
func ToggleStrikethrough(doc *model.Document) bool {
	return FormatSegments(doc, toggleFlag(model.KeyStrikethrough))
}

func setValue(key, value string) SegmentFormatter {
	return SegmentFormatter{
		IncludeFormatHolder: true,
		Apply: func(seg model.Segment, _ *model.Paragraph, _ bool) {
			base := seg.Base()
			if value == "" {
				base.Format.Delete(key)
			} else {
				base.Format.Set(key, value)
			}
		},
	}
}

// SetTextColor sets the text color. Links carry their own color, so it is
// applied there as well. An empty color removes it.
func SetTextColor(doc *model.Document, color string) bool {
	f := setValue(model.KeyTextColor, color)
	apply := f.Apply
	f.Apply = func(seg model.Segment, p *model.Paragraph, on bool) {
		apply(seg, p, on)
		if link := seg.Base().Link; link != nil {
			if color == "" {
				link.Format.Delete(model.KeyTextColor)
			} else {
				link.Format.Set(model.KeyTextColor, color)
			}
		}
	}
	return FormatSegments(doc, f)
}

// SetFontSize sets the font size, e.g. "12pt".
func SetFontSize(doc *model.Document, size string) bool {
	return FormatSegments(doc, setValue(model.KeyFontSize, size))
}

// SetFontFamily sets the font family.
func SetFontFamily(doc *model.Document, family string) bool {
	return FormatSegments(doc, setValue(model.KeyFontFamily, family))
}
