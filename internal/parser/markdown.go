package parser

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/contentmodel/internal/model"
)

// MarkdownParser handles Markdown files using goldmark, with GFM tables and
// strikethrough.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*model.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	root := md.Parser().Parse(text.NewReader(src))

	w := &mdWalker{b: newBuilder(), src: src}
	w.blocks(root)
	return w.b.doc, nil
}

type mdWalker struct {
	b   *builder
	src []byte
}

func (w *mdWalker) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
}

func (w *mdWalker) block(n ast.Node) {
	b := w.b
	switch node := n.(type) {
	case *ast.Heading:
		b.openParagraph(nil, model.NewHeadingDecorator(node.Level))
		w.inlines(node)
		b.closeParagraph()

	case *ast.Paragraph:
		b.openParagraph(nil, nil)
		w.inlines(node)
		b.closeParagraph()

	case *ast.TextBlock:
		// Tight list items hold text without a paragraph of their own.
		w.inlines(node)
		b.closeParagraph()

	case *ast.Blockquote:
		b.push(model.NewQuote(quoteFormat, nil))
		w.blocks(node)
		b.pop()

	case *ast.List:
		listType := model.ListUnordered
		if node.IsOrdered() {
			listType = model.ListOrdered
		}
		b.openList(listType, node.Start)
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			if b.openListItem() == nil {
				break
			}
			w.blocks(item)
			b.closeListItem()
		}
		b.closeList()

	case *ast.ThematicBreak:
		b.addBlock(model.NewDivider("hr", nil))

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.codeBlock(n)

	case *ast.HTMLBlock:
		lines := n.Lines()
		var sb strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(w.src))
		}
		b.openParagraph(nil, nil)
		b.addText(sb.String())
		b.closeParagraph()

	case *east.Table:
		w.table(node)

	default:
		if n.Type() == ast.TypeBlock {
			w.blocks(n)
		}
	}
}

// codeBlock keeps the lines of a code block verbatim inside a pre container.
func (w *mdWalker) codeBlock(n ast.Node) {
	b := w.b
	b.push(model.NewFormatContainer("pre", nil))
	b.openParagraph(model.Format{model.KeyWhiteSpace: "pre"}, nil)
	b.withCode(func() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(w.src)), "\r\n")
			if i > 0 {
				b.addBr()
			}
			b.addText(line)
		}
	})
	b.pop()
}

func (w *mdWalker) table(t *east.Table) {
	b := w.b
	table := model.NewTable(0, nil)
	b.addBlock(table)

	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		_, isHeader := row.(*east.TableHeader)
		r := model.NewTableRow(nil)
		table.Rows = append(table.Rows, r)
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cell := model.NewTableCell(false, false, isHeader, nil)
			if tc, ok := c.(*east.TableCell); ok {
				if align := tableAlign(tc.Alignment); align != "" {
					cell.Format[model.KeyTextAlign] = align
				}
			}
			r.Cells = append(r.Cells, cell)

			b.groups = append(b.groups, cell)
			b.para = nil
			if isHeader {
				b.withFormat(model.KeyFontWeight, "bold", func() { w.inlines(c) })
			} else {
				w.inlines(c)
			}
			b.pop()
		}
	}
}

func tableAlign(a east.Alignment) string {
	switch a {
	case east.AlignLeft:
		return "start"
	case east.AlignRight:
		return "end"
	case east.AlignCenter:
		return "center"
	default:
		return ""
	}
}

func (w *mdWalker) inlines(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.inline(n)
	}
}

func (w *mdWalker) inline(n ast.Node) {
	b := w.b
	switch node := n.(type) {
	case *ast.Text:
		b.addText(string(node.Segment.Value(w.src)))
		switch {
		case node.HardLineBreak():
			b.addBr()
		case node.SoftLineBreak():
			b.addText(" ")
		}

	case *ast.String:
		b.addText(string(node.Value))

	case *ast.Emphasis:
		key, value := model.KeyItalic, "true"
		if node.Level >= 2 {
			key, value = model.KeyFontWeight, "bold"
		}
		b.withFormat(key, value, func() { w.inlines(node) })

	case *east.Strikethrough:
		b.withFormat(model.KeyStrikethrough, "true", func() { w.inlines(node) })

	case *ast.CodeSpan:
		b.withCode(func() { w.inlines(node) })

	case *ast.Link:
		b.withLink(model.NewLink(string(node.Destination), string(node.Title), ""), func() { w.inlines(node) })

	case *ast.AutoLink:
		url := string(node.URL(w.src))
		if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		b.withLink(model.NewLink(url, "", ""), func() { b.addText(string(node.Label(w.src))) })

	case *ast.Image:
		b.addImage(string(node.Destination), plainText(node, w.src), string(node.Title))

	case *ast.RawHTML:
		// Inline HTML is dropped; its text content is not part of the markup.

	default:
		w.inlines(n)
	}
}

// plainText concatenates the text under n.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
