// Package doctree builds the heading outline of a content model.
package doctree

import (
	"strings"

	"github.com/dgallion1/contentmodel/internal/model"
)

// DocTree is the outline of a document.
type DocTree struct {
	Words      int        `json:"words"`
	IntroWords int        `json:"intro_words"` // Words before the first heading
	Children   []*DocNode `json:"sections"`    // Top-level sections
}

// DocNode is a recursive section in the outline.
type DocNode struct {
	Title      string     `json:"title"`
	Level      int        `json:"level"`
	Breadcrumb []string   `json:"breadcrumb"` // Heading hierarchy ending with Title
	Words      int        `json:"words"`      // Body words directly under this heading
	Children   []*DocNode `json:"sections,omitempty"`
}

type stackEntry struct {
	node  *DocNode
	level int
}

// Build walks the paragraphs of doc in document order, nesting each heading
// under the closest preceding heading of a lower level.
func Build(doc *model.Document) *DocTree {
	tree := &DocTree{}
	root := &DocNode{}
	stack := []stackEntry{{node: root, level: 0}}

	walkGroup(doc, func(p *model.Paragraph) {
		text := ParagraphText(p)
		words := CountWords(text)
		tree.Words += words

		level := model.HeadingLevel(p.Decorator)
		if level == 0 {
			top := stack[len(stack)-1].node
			if top == root {
				tree.IntroWords += words
			} else {
				top.Words += words
			}
			return
		}

		// Pop stack until we find a parent with a lower level.
		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node

		title := strings.Join(strings.Fields(text), " ")
		node := &DocNode{
			Title:      title,
			Level:      level,
			Breadcrumb: append(append([]string{}, parent.Breadcrumb...), title),
		}
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: level})
	})

	tree.Children = root.Children
	return tree
}

func walkGroup(group model.BlockGroup, fn func(*model.Paragraph)) {
	for _, block := range group.Group().Blocks {
		switch b := block.(type) {
		case *model.Paragraph:
			fn(b)
		case *model.Table:
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					walkGroup(cell, fn)
				}
			}
		case model.BlockGroup:
			walkGroup(b, fn)
		}
	}
}

// ParagraphText returns the text of p. Line breaks read as spaces and
// non-text segments are skipped.
func ParagraphText(p *model.Paragraph) string {
	var sb strings.Builder
	for _, seg := range p.Segments {
		switch s := seg.(type) {
		case *model.Text:
			sb.WriteString(s.Text)
		case *model.Br:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
