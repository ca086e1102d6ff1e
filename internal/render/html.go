// Package render turns a content model back into HTML.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/contentmodel/internal/model"
)

// HTML writes doc as an HTML fragment. Selection markers produce no output.
func HTML(w io.Writer, doc *model.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	parent := root
	if decl := declarations(doc.Format, segmentProps); decl != "" {
		parent = element("div", attribute("style", decl))
		root.AppendChild(parent)
	}
	blocks(parent, doc.Blocks)

	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// String renders doc to a string.
func String(doc *model.Document) (string, error) {
	var sb strings.Builder
	if err := HTML(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, a := range attrs {
		if a.Val != "" {
			n.Attr = append(n.Attr, a)
		}
	}
	return n
}

func attribute(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// listFrame is an open ol/ul while consecutive list items are rendered.
type listFrame struct {
	node     *html.Node
	listType model.ListType
}

func blocks(parent *html.Node, list []model.Block) {
	var stack []listFrame
	for _, block := range list {
		item, ok := block.(*model.ListItem)
		if !ok {
			stack = stack[:0]
			blockNode(parent, block)
			continue
		}
		stack = listItem(parent, stack, item)
	}
}

// listItem renders item into the open lists, opening and closing ol/ul
// elements so that the list nesting matches the item's levels.
func listItem(parent *html.Node, stack []listFrame, item *model.ListItem) []listFrame {
	levels := item.Levels
	depth := 0
	for depth < len(stack) && depth < len(levels) && stack[depth].listType == levels[depth].ListType {
		depth++
	}
	continued := depth == len(levels)
	stack = stack[:depth]

	for i := depth; i < len(levels); i++ {
		level := levels[i]
		tag := "ul"
		if level.ListType == model.ListOrdered {
			tag = "ol"
		}
		list := element(tag, attribute("style", declarations(level.Format, listProps)))
		if level.ListType == model.ListOrdered && level.StartNumberOverride != nil && *level.StartNumberOverride != 1 {
			list.Attr = append(list.Attr, attribute("start", strconv.Itoa(*level.StartNumberOverride)))
		}

		host := parent
		if i > 0 {
			host = stack[i-1].node
			if li := host.LastChild; li != nil && li.DataAtom == atom.Li {
				host = li
			}
		}
		host.AppendChild(list)
		stack = append(stack, listFrame{node: list, listType: level.ListType})
	}

	if len(stack) == 0 {
		// No levels: the item is a plain container.
		blocks(parent, item.Blocks)
		return stack
	}

	style := declarations(item.Format, blockProps)
	if item.FormatHolder != nil {
		style = joinDecl(style, declarations(item.FormatHolder.Format, segmentProps))
	}
	li := element("li", attribute("style", style))
	// A restart inside an open list is carried by the item itself.
	if last := item.LastLevel(); continued && last.ListType == model.ListOrdered && last.StartNumberOverride != nil {
		li.Attr = append(li.Attr, attribute("value", strconv.Itoa(*last.StartNumberOverride)))
	}
	stack[len(stack)-1].node.AppendChild(li)
	blocks(li, item.Blocks)
	return stack
}

func blockNode(parent *html.Node, block model.Block) {
	switch b := block.(type) {
	case *model.Paragraph:
		paragraph(parent, b)
	case *model.Table:
		table(parent, b)
	case *model.Divider:
		tag := b.TagName
		if tag == "" {
			tag = "hr"
		}
		parent.AppendChild(element(tag, attribute("style", declarations(b.Format, blockProps))))
	case *model.Quote:
		style := joinDecl(declarations(b.Format, blockProps), declarations(b.QuoteSegmentFormat, segmentProps))
		n := element("blockquote", attribute("style", style))
		parent.AppendChild(n)
		blocks(n, b.Blocks)
	case *model.FormatContainer:
		n := element(tagOr(b.TagName, "div"), attribute("style", declarations(b.Format, blockProps)))
		parent.AppendChild(n)
		blocks(n, b.Blocks)
	case *model.GeneralBlock:
		n := element(tagOr(b.TagName, "div"), attribute("style", declarations(b.Format, blockProps)))
		parent.AppendChild(n)
		blocks(n, b.Blocks)
	}
}

func paragraph(parent *html.Node, p *model.Paragraph) {
	style := declarations(p.Format, blockProps)
	host := parent
	switch {
	case p.Decorator != nil:
		style = joinDecl(declarations(p.Decorator.Format, segmentProps), style)
		host = element(tagOr(p.Decorator.TagName, "div"), attribute("style", style))
		parent.AppendChild(host)
	case !p.IsImplicit || style != "":
		host = element("div", attribute("style", style))
		parent.AppendChild(host)
	}
	segments(host, p.Segments)
}

func segments(parent *html.Node, segs []model.Segment) {
	var anchor *html.Node
	var anchorLink *model.Link

	for _, seg := range segs {
		n := segment(seg)
		if n == nil {
			continue
		}
		base := seg.Base()
		if base.Code != nil {
			code := element("code", attribute("style", declarations(base.Code.Format, segmentProps)))
			code.AppendChild(n)
			n = code
		}
		if base.Link == nil {
			anchor, anchorLink = nil, nil
			parent.AppendChild(n)
			continue
		}
		// Adjacent segments with the same link share one anchor.
		if anchor == nil || !model.SameFormat(anchorLink.Format, base.Link.Format) {
			anchorLink = base.Link
			anchor = element("a",
				attribute("href", base.Link.Href()),
				attribute("title", base.Link.Format[model.KeyAnchorTitle]),
				attribute("target", base.Link.Format[model.KeyTarget]),
			)
			parent.AppendChild(anchor)
		}
		anchor.AppendChild(n)
	}
}

func segment(seg model.Segment) *html.Node {
	style := declarations(seg.Base().Format, segmentProps)
	switch s := seg.(type) {
	case *model.Text:
		if style == "" {
			return textNode(s.Text)
		}
		span := element("span", attribute("style", style))
		span.AppendChild(textNode(s.Text))
		return span
	case *model.Image:
		return element("img",
			attribute("src", s.Src),
			attribute("alt", s.Alt),
			attribute("title", s.Title),
			attribute("style", style),
		)
	case *model.Br:
		return element("br")
	case *model.GeneralSegment:
		n := element(tagOr(s.TagName, "span"), attribute("style", style))
		blocks(n, s.Blocks)
		return n
	default:
		return nil
	}
}

func table(parent *html.Node, t *model.Table) {
	n := element("table", attribute("style", declarations(t.Format, tableProps)))
	parent.AppendChild(n)
	body := element("tbody")
	n.AppendChild(body)

	for r, row := range t.Rows {
		style := declarations(row.Format, blockProps)
		if row.Height > 0 {
			style = joinDecl("height: "+formatPx(row.Height), style)
		}
		tr := element("tr", attribute("style", style))
		body.AppendChild(tr)

		for c, cell := range row.Cells {
			if cell == nil || cell.SpanLeft || cell.SpanAbove {
				continue
			}
			tag := "td"
			if cell.IsHeader {
				tag = "th"
			}
			cellStyle := declarations(cell.Format, tableProps)
			if r == 0 && c < len(t.Widths) && t.Widths[c] > 0 {
				cellStyle = joinDecl("width: "+formatPx(t.Widths[c]), cellStyle)
			}
			td := element(tag, attribute("style", cellStyle))
			if span := colSpan(row, c); span > 1 {
				td.Attr = append(td.Attr, attribute("colspan", strconv.Itoa(span)))
			}
			if span := rowSpan(t, r, c); span > 1 {
				td.Attr = append(td.Attr, attribute("rowspan", strconv.Itoa(span)))
			}
			tr.AppendChild(td)
			blocks(td, cell.Blocks)
		}
	}
}

func colSpan(row *model.TableRow, c int) int {
	n := 1
	for i := c + 1; i < len(row.Cells) && row.Cells[i] != nil && row.Cells[i].SpanLeft; i++ {
		n++
	}
	return n
}

func rowSpan(t *model.Table, r, c int) int {
	n := 1
	for i := r + 1; i < len(t.Rows); i++ {
		cells := t.Rows[i].Cells
		if c >= len(cells) || cells[c] == nil || !cells[c].SpanAbove {
			break
		}
		n++
	}
	return n
}

func tagOr(tag, fallback string) string {
	if tag == "" {
		return fallback
	}
	return strings.ToLower(tag)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
