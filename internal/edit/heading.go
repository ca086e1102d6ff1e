package edit

import (
	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/selection"
)

// SetHeadingLevel turns the selected paragraphs into headings of level 1 to 6.
// Level 0 turns headings back into plain paragraphs.
func SetHeadingLevel(doc *model.Document, level int) bool {
	if level < 0 || level > 6 {
		return false
	}
	paragraphs := selection.GetSelectedParagraphs(doc)
	for _, p := range paragraphs {
		if level == 0 {
			if model.HeadingLevel(p.Decorator) > 0 {
				p.Decorator = nil
			}
			continue
		}
		p.Decorator = model.NewHeadingDecorator(level)
		// The decorator now owns size and weight.
		for _, seg := range p.Segments {
			seg.Base().Format.Delete(model.KeyFontSize)
			seg.Base().Format.Delete(model.KeyFontWeight)
		}
	}
	return len(paragraphs) > 0
}
