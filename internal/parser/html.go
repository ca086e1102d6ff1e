package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/contentmodel/internal/model"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	w := &htmlWalker{b: newBuilder()}
	if body := findBody(root); body != nil {
		w.children(body)
	} else {
		w.children(root)
	}
	return w.b.doc, nil
}

type htmlWalker struct {
	b *builder
}

func (w *htmlWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

// inlineStyles maps inline tags onto the segment format they set.
var inlineStyles = map[atom.Atom][2]string{
	atom.B:      {model.KeyFontWeight, "bold"},
	atom.Strong: {model.KeyFontWeight, "bold"},
	atom.I:      {model.KeyItalic, "true"},
	atom.Em:     {model.KeyItalic, "true"},
	atom.U:      {model.KeyUnderline, "true"},
	atom.S:      {model.KeyStrikethrough, "true"},
	atom.Strike: {model.KeyStrikethrough, "true"},
	atom.Del:    {model.KeyStrikethrough, "true"},
}

func (w *htmlWalker) node(n *html.Node) {
	b := w.b
	switch n.Type {
	case html.TextNode:
		b.addText(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	if style, ok := inlineStyles[n.DataAtom]; ok {
		b.withFormat(style[0], style[1], func() { w.children(n) })
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Template, atom.Noscript:
		return

	case atom.P, atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer, atom.Nav, atom.Aside:
		b.openParagraph(blockFormat(n), nil)
		w.children(n)
		b.closeParagraph()

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		b.openParagraph(blockFormat(n), model.NewHeadingDecorator(level))
		w.children(n)
		b.closeParagraph()

	case atom.Blockquote:
		b.push(model.NewQuote(quoteFormat, nil))
		w.children(n)
		b.pop()

	case atom.Pre:
		b.push(model.NewFormatContainer("pre", nil))
		b.openParagraph(model.Format{model.KeyWhiteSpace: "pre"}, nil)
		w.preText(n)
		b.pop()

	case atom.Ul, atom.Ol:
		listType := model.ListUnordered
		start := 1
		if n.DataAtom == atom.Ol {
			listType = model.ListOrdered
			if v, err := strconv.Atoi(attr(n, "start")); err == nil {
				start = v
			}
		}
		b.openList(listType, start)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Li {
				w.listItem(c)
			}
		}
		b.closeList()

	case atom.Li:
		// A stray item outside a list reads as a paragraph.
		b.openParagraph(nil, nil)
		w.children(n)
		b.closeParagraph()

	case atom.Table:
		w.table(n)

	case atom.Hr:
		b.addBlock(model.NewDivider("hr", nil))

	case atom.Br:
		b.addBr()

	case atom.Img:
		b.addImage(attr(n, "src"), attr(n, "alt"), attr(n, "title"))

	case atom.A:
		href := attr(n, "href")
		if href == "" {
			w.children(n)
			return
		}
		b.withLink(model.NewLink(href, attr(n, "title"), attr(n, "target")), func() { w.children(n) })

	case atom.Code, atom.Kbd, atom.Samp:
		b.withCode(func() { w.children(n) })

	default:
		w.children(n)
	}
}

func (w *htmlWalker) listItem(li *html.Node) {
	b := w.b
	if b.openListItem() == nil {
		return
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
	b.closeListItem()
}

func (w *htmlWalker) preText(n *html.Node) {
	b := w.b
	b.withCode(func() {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				switch {
				case c.Type == html.TextNode:
					lines := strings.Split(c.Data, "\n")
					for i, line := range lines {
						if i > 0 {
							b.addBr()
						}
						b.addText(line)
					}
				case c.Type == html.ElementNode && c.DataAtom == atom.Br:
					b.addBr()
				default:
					walk(c)
				}
			}
		}
		walk(n)
	})
}

func (w *htmlWalker) table(n *html.Node) {
	b := w.b
	table := model.NewTable(0, nil)
	b.addBlock(table)

	var rows func(*html.Node)
	rows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead, atom.Tbody, atom.Tfoot:
				rows(c)
			case atom.Tr:
				table.Rows = append(table.Rows, w.row(c))
			}
		}
	}
	rows(n)
	b.para = nil
}

func (w *htmlWalker) row(tr *html.Node) *model.TableRow {
	b := w.b
	row := model.NewTableRow(nil)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		cell := model.NewTableCell(false, false, c.DataAtom == atom.Th, blockFormat(c))
		row.Cells = append(row.Cells, cell)

		b.groups = append(b.groups, cell)
		b.para = nil
		w.children(c)
		b.pop()

		// Spanned positions become cells that merge into their left neighbor.
		if span, err := strconv.Atoi(attr(c, "colspan")); err == nil {
			for i := 1; i < span; i++ {
				row.Cells = append(row.Cells, model.NewTableCell(true, false, cell.IsHeader, nil))
			}
		}
	}
	return row
}

// blockFormat reads the block properties the model keeps from an element.
func blockFormat(n *html.Node) model.Format {
	f := model.Format{}
	if align := attr(n, "align"); align != "" {
		f[model.KeyTextAlign] = align
	}
	if dir := attr(n, "dir"); dir == "rtl" || dir == "ltr" {
		f[model.KeyDirection] = dir
	}
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "text-align":
			f[model.KeyTextAlign] = value
		case "direction":
			f[model.KeyDirection] = value
		case "margin-left":
			f[model.KeyMarginLeft] = value
		case "margin-right":
			f[model.KeyMarginRight] = value
		case "padding-left":
			f[model.KeyPaddingLeft] = value
		case "padding-right":
			f[model.KeyPaddingRight] = value
		case "white-space":
			f[model.KeyWhiteSpace] = value
		}
	}
	return f
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
