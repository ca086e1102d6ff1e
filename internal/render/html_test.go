package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/contentmodel/internal/model"
)

func implicit(segs ...model.Segment) *model.Paragraph {
	p := model.NewParagraph(true, nil, nil, nil)
	p.Segments = append(p.Segments, segs...)
	return p
}

func item(text string, types ...model.ListType) *model.ListItem {
	var levels []*model.ListLevel
	for _, t := range types {
		levels = append(levels, model.NewListLevel(t, nil, nil))
	}
	li := model.NewListItem(levels, nil)
	model.AddBlock(li, implicit(model.NewText(text, nil, nil, nil)))
	return li
}

func render(t *testing.T, doc *model.Document) string {
	t.Helper()
	out, err := String(doc)
	require.NoError(t, err)
	return out
}

func TestHTML_ParagraphSegments(t *testing.T) {
	doc := model.NewDocument(nil)
	p := model.NewParagraph(false, nil, nil, nil)
	p.Segments = append(p.Segments,
		model.NewText("Hello ", nil, nil, nil),
		model.NewText("world", model.Format{model.KeyFontWeight: "bold"}, nil, nil),
		model.NewSelectionMarker(nil),
	)
	model.AddBlock(doc, p)

	assert.Equal(t, `<div>Hello <span style="font-weight: bold">world</span></div>`, render(t, doc))
}

func TestHTML_EscapesText(t *testing.T) {
	doc := model.NewDocument(nil)
	model.AddBlock(doc, implicit(model.NewText("<b>&", nil, nil, nil)))

	assert.Equal(t, "&lt;b&gt;&amp;", render(t, doc))
}

func TestHTML_NestedLists(t *testing.T) {
	doc := model.NewDocument(nil)
	model.AddBlock(doc, item("a", model.ListUnordered))
	model.AddBlock(doc, item("b", model.ListUnordered))
	model.AddBlock(doc, item("c", model.ListUnordered, model.ListOrdered))
	model.AddBlock(doc, implicit(model.NewText("after", nil, nil, nil)))
	model.AddBlock(doc, item("d", model.ListUnordered))

	assert.Equal(t,
		`<ul><li>a</li><li>b<ol><li>c</li></ol></li></ul>after<ul><li>d</li></ul>`,
		render(t, doc))
}

func TestHTML_ListRestart(t *testing.T) {
	doc := model.NewDocument(nil)
	first := item("a", model.ListOrdered)
	first.Levels[0].StartNumberOverride = model.Ptr(1)
	second := item("b", model.ListOrdered)
	second.Levels[0].StartNumberOverride = model.Ptr(5)
	model.AddBlock(doc, first)
	model.AddBlock(doc, second)

	assert.Equal(t, `<ol><li>a</li><li value="5">b</li></ol>`, render(t, doc))

	doc = model.NewDocument(nil)
	third := item("c", model.ListOrdered)
	third.Levels[0].StartNumberOverride = model.Ptr(3)
	model.AddBlock(doc, third)
	assert.Equal(t, `<ol start="3"><li>c</li></ol>`, render(t, doc))
}

func TestHTML_AdjacentLinksShareAnchor(t *testing.T) {
	doc := model.NewDocument(nil)
	link := model.NewLink("https://example.com", "", "_blank")
	model.AddBlock(doc, implicit(
		model.NewText("click ", nil, link, nil),
		model.NewText("here", model.Format{model.KeyFontWeight: "bold"}, link, nil),
		model.NewText(" now", nil, nil, nil),
	))

	assert.Equal(t,
		`<a href="https://example.com" target="_blank">click <span style="font-weight: bold">here</span></a> now`,
		render(t, doc))
}

func TestHTML_InlineFormats(t *testing.T) {
	doc := model.NewDocument(model.Format{model.KeyFontFamily: "Arial"})
	model.AddBlock(doc, implicit(
		model.NewText("x", model.Format{model.KeyItalic: "true", model.KeyUnderline: "true", model.KeyStrikethrough: "true"}, nil, nil),
		model.NewText("y", nil, nil, &model.Code{}),
		model.NewBr(nil),
		model.NewImage("a.png", nil),
	))

	out := render(t, doc)
	assert.Contains(t, out, `<div style="font-family: Arial">`)
	assert.Contains(t, out, `font-style: italic; text-decoration: underline line-through`)
	assert.Contains(t, out, `<code>y</code>`)
	assert.Contains(t, out, `<br/>`)
	assert.Contains(t, out, `<img src="a.png"/>`)
}

func TestHTML_QuoteAndHeading(t *testing.T) {
	doc := model.NewDocument(nil)
	quote := model.NewQuote(model.Format{model.KeyBorderLeft: "3px solid"}, nil)
	model.AddBlock(quote, implicit(model.NewText("q", nil, nil, nil)))
	model.AddBlock(doc, quote)

	h := model.NewParagraph(false, nil, nil, model.NewHeadingDecorator(2))
	h.Segments = append(h.Segments, model.NewText("T", nil, nil, nil))
	model.AddBlock(doc, h)
	model.AddBlock(doc, model.NewDivider("hr", nil))

	out := render(t, doc)
	assert.Contains(t, out, `<blockquote style="border-left: 3px solid">q</blockquote>`)
	assert.Contains(t, out, `<h2 style="font-size: 1.5em; font-weight: bold">T</h2>`)
	assert.Contains(t, out, `<hr/>`)
}

func TestHTML_TableSpans(t *testing.T) {
	doc := model.NewDocument(nil)
	table := model.NewTable(0, nil)
	head := model.NewTableRow(nil)
	h := model.NewTableCell(false, false, true, nil)
	model.AddBlock(h, implicit(model.NewText("H", nil, nil, nil)))
	head.Cells = append(head.Cells, h, model.NewTableCell(true, false, true, nil))

	body := model.NewTableRow(nil)
	a := model.NewTableCell(false, false, false, nil)
	model.AddBlock(a, implicit(model.NewText("1", nil, nil, nil)))
	body.Cells = append(body.Cells, a, model.NewTableCell(false, false, false, nil))
	table.Rows = append(table.Rows, head, body)
	model.AddBlock(doc, table)

	assert.Equal(t,
		`<table><tbody><tr><th colspan="2">H</th></tr><tr><td>1</td><td></td></tr></tbody></table>`,
		render(t, doc))
}
