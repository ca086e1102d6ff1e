// Package normalize restores content model invariants after an edit.
package normalize

import (
	"slices"

	"github.com/dgallion1/contentmodel/internal/model"
)

// NormalizeContentModel cleans group in place, innermost blocks first. List
// items without levels are unwrapped into their parent, nested groups and
// table cells are normalized recursively, paragraphs are normalized, and blocks
// left empty are removed.
func NormalizeContentModel(group model.BlockGroup) {
	g := group.Group()
	for i := len(g.Blocks) - 1; i >= 0; i-- {
		block := g.Blocks[i]

		switch b := block.(type) {
		case *model.ListItem:
			if len(b.Levels) == 0 {
				// Revisit the unwrapped children on the next iterations.
				n := len(b.Blocks)
				model.UnwrapBlock(group, b)
				i += n
				continue
			}
			NormalizeContentModel(b)
		case *model.Paragraph:
			for _, seg := range b.Segments {
				if gs, ok := seg.(*model.GeneralSegment); ok {
					NormalizeContentModel(gs)
				}
			}
			NormalizeParagraph(b)
		case *model.Table:
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					if cell != nil {
						NormalizeContentModel(cell)
					}
				}
			}
		case model.BlockGroup:
			NormalizeContentModel(b)
		}

		if model.IsBlockEmpty(block) {
			g.Blocks = slices.Delete(g.Blocks, i, i+1)
		}
	}
}
