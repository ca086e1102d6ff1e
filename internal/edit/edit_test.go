package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/normalize"
)

func txt(s string, selected bool) *model.Text {
	t := model.NewText(s, nil, nil, nil)
	t.IsSelected = selected
	return t
}

func para(segs ...model.Segment) *model.Paragraph {
	p := model.NewParagraph(false, nil, nil, nil)
	p.Segments = append(p.Segments, segs...)
	return p
}

func docOf(blocks ...model.Block) *model.Document {
	doc := model.NewDocument(nil)
	for _, b := range blocks {
		model.AddBlock(doc, b)
	}
	return doc
}

func listItem(listType model.ListType, start *int, blocks ...model.Block) *model.ListItem {
	item := model.NewListItem([]*model.ListLevel{model.NewListLevel(listType, nil, start)}, nil)
	for _, b := range blocks {
		model.AddBlock(item, b)
	}
	return item
}

func TestIndent_WrapsParagraphInQuote(t *testing.T) {
	p1, p2, p3 := para(txt("one", false)), para(txt("two", true)), para(txt("three", false))
	doc := docOf(p1, p2, p3)

	require.True(t, Indent(doc))
	require.Len(t, doc.Blocks, 3)
	assert.Same(t, p1, doc.Blocks[0])
	q, ok := doc.Blocks[1].(*model.Quote)
	require.True(t, ok, "expected quote, got %T", doc.Blocks[1])
	require.Len(t, q.Blocks, 1)
	assert.Same(t, p2, q.Blocks[0])
	assert.Same(t, p3, doc.Blocks[2])
}

func TestIndent_ConsecutiveBlocksShareQuote(t *testing.T) {
	p1, p2 := para(txt("one", true)), para(txt("two", true))
	doc := docOf(p1, p2)

	require.True(t, Indent(doc))
	require.Len(t, doc.Blocks, 1)
	q := doc.Blocks[0].(*model.Quote)
	assert.Equal(t, []model.Block{p1, p2}, q.Blocks)
}

func TestOutdent_UndoesIndent(t *testing.T) {
	p1, p2, p3 := para(txt("one", false)), para(txt("two", true)), para(txt("three", false))
	doc := docOf(p1, p2, p3)

	require.True(t, Indent(doc))
	require.True(t, Outdent(doc))
	assert.Equal(t, []model.Block{p1, p2, p3}, doc.Blocks)
}

func TestOutdent_SplitsQuote(t *testing.T) {
	a, b, c := para(txt("a", false)), para(txt("b", true)), para(txt("c", false))
	q := model.NewQuote(model.Format{model.KeyBorderLeft: "3px solid"}, nil)
	q.Blocks = []model.Block{a, b, c}
	doc := docOf(q)

	require.True(t, SetModelIndentation(doc, IndentDecrease))
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, []model.Block{a}, doc.Blocks[0].(*model.Quote).Blocks)
	assert.Same(t, b, doc.Blocks[1])
	tail := doc.Blocks[2].(*model.Quote)
	assert.Equal(t, []model.Block{c}, tail.Blocks)
	assert.Equal(t, "3px solid", tail.Format.Get(model.KeyBorderLeft))
}

func TestIndent_ListItemGainsLevel(t *testing.T) {
	item := listItem(model.ListOrdered, model.Ptr(4), para(txt("x", true)))
	item.Levels[0].Format = model.Format{model.KeyListStyleType: "lower-alpha"}
	doc := docOf(item)

	require.True(t, Indent(doc))
	require.Len(t, item.Levels, 2)
	assert.Equal(t, model.ListOrdered, item.Levels[1].ListType)
	assert.False(t, item.Levels[1].Format.Has(model.KeyListStyleType))
	assert.Nil(t, item.Levels[1].StartNumberOverride)
	require.NotNil(t, item.Levels[0].StartNumberOverride)
	assert.Equal(t, 4, *item.Levels[0].StartNumberOverride)

	require.True(t, Outdent(doc))
	assert.Len(t, item.Levels, 1)
}

func TestSetListType_TogglesOff(t *testing.T) {
	p := para(txt("item", true))
	p.IsImplicit = true
	item := listItem(model.ListOrdered, nil, p)
	doc := docOf(item)

	require.True(t, SetListType(doc, model.ListOrdered))
	assert.Empty(t, item.Levels)
	assert.False(t, p.IsImplicit)

	require.True(t, SetListType(doc, model.ListOrdered))
	require.Len(t, item.Levels, 1)
	assert.Equal(t, model.ListOrdered, item.Levels[0].ListType)
}

func TestSetListType_ChangesType(t *testing.T) {
	item := listItem(model.ListOrdered, nil, para(txt("item", true)))
	doc := docOf(item)

	require.True(t, SetListType(doc, model.ListUnordered))
	require.Len(t, item.Levels, 1)
	assert.Equal(t, model.ListUnordered, item.Levels[0].ListType)
}

func TestSetListType_WrapsParagraphs(t *testing.T) {
	p1, p2 := para(txt("one", true)), para(txt("two", true))
	p1.Format = model.Format{model.KeyTextAlign: "center"}
	doc := docOf(p1, p2)

	require.True(t, SetListType(doc, model.ListOrdered))
	require.Len(t, doc.Blocks, 2)

	first := doc.Blocks[0].(*model.ListItem)
	second := doc.Blocks[1].(*model.ListItem)
	require.Len(t, first.Levels, 1)
	require.NotNil(t, first.Levels[0].StartNumberOverride)
	assert.Equal(t, 1, *first.Levels[0].StartNumberOverride)
	assert.Equal(t, "center", first.Levels[0].Format.Get(model.KeyTextAlign))
	assert.Nil(t, second.Levels[0].StartNumberOverride)
	assert.True(t, p1.IsImplicit)
	assert.Same(t, p2, second.Blocks[0])
}

func TestSetListType_ContinuesPreviousOrderedList(t *testing.T) {
	prev := listItem(model.ListOrdered, model.Ptr(1), para(txt("one", false)))
	p := para(txt("two", true))
	doc := docOf(prev, p)

	require.True(t, SetListType(doc, model.ListOrdered))
	require.Len(t, doc.Blocks, 2)
	assert.Same(t, prev, doc.Blocks[0])

	item, ok := doc.Blocks[1].(*model.ListItem)
	require.True(t, ok)
	require.Len(t, item.Levels, 1)
	assert.Equal(t, model.ListOrdered, item.Levels[0].ListType)
	assert.Nil(t, item.Levels[0].StartNumberOverride)

	// An unordered item before the paragraph does not continue the numbering.
	prev = listItem(model.ListUnordered, nil, para(txt("one", false)))
	doc = docOf(prev, para(txt("two", true)))
	require.True(t, SetListType(doc, model.ListOrdered))
	item = doc.Blocks[1].(*model.ListItem)
	require.NotNil(t, item.Levels[0].StartNumberOverride)
	assert.Equal(t, 1, *item.Levels[0].StartNumberOverride)
}

func TestSetListStartNumber(t *testing.T) {
	item := listItem(model.ListOrdered, nil, para(txt("x", true)))
	doc := docOf(item)

	require.True(t, SetListStartNumber(doc, 5))
	require.NotNil(t, item.Levels[0].StartNumberOverride)
	assert.Equal(t, 5, *item.Levels[0].StartNumberOverride)

	assert.False(t, SetListStartNumber(docOf(para(txt("y", true))), 3))
}

func TestFindListItemsInSameThread(t *testing.T) {
	i1 := listItem(model.ListOrdered, nil, para(txt("1", false)))
	i2 := listItem(model.ListOrdered, model.Ptr(1), para(txt("2", false)))
	i3 := listItem(model.ListOrdered, model.Ptr(2), para(txt("3", false)))
	doc := docOf(i1, i2, i3)

	assert.Equal(t, []*model.ListItem{i2}, FindListItemsInSameThread(doc, i2))
	assert.Equal(t, []*model.ListItem{i1}, FindListItemsInSameThread(doc, i1))
}

func TestFindListItemsInSameThread_OrderedSpansParagraphs(t *testing.T) {
	i1 := listItem(model.ListOrdered, nil, para(txt("1", false)))
	i2 := listItem(model.ListOrdered, nil, para(txt("2", false)))
	u1 := listItem(model.ListUnordered, nil, para(txt("a", false)))
	u2 := listItem(model.ListUnordered, nil, para(txt("b", false)))
	doc := docOf(i1, para(txt("break", false)), i2, u1, para(txt("break", false)), u2)

	assert.Equal(t, []*model.ListItem{i1, i2}, FindListItemsInSameThread(doc, i2))
	assert.Equal(t, []*model.ListItem{u1}, FindListItemsInSameThread(doc, u1))
}

func TestSetListStyle_AppliesToThread(t *testing.T) {
	i1 := listItem(model.ListOrdered, nil, para(txt("1", true)))
	i2 := listItem(model.ListOrdered, nil, para(txt("2", false)))
	doc := docOf(i1, i2)

	require.True(t, SetListStyle(doc, ListStyle{OrderedStyleType: "upper-roman"}))
	assert.Equal(t, "upper-roman", i1.Levels[0].Format.Get(model.KeyListStyleType))
	assert.Equal(t, "upper-roman", i2.Levels[0].Format.Get(model.KeyListStyleType))

	assert.False(t, SetListStyle(doc, ListStyle{UnorderedStyleType: "square"}))
}

func TestToggleModelBlockQuote_MergesNeighbors(t *testing.T) {
	a, p, c := para(txt("a", false)), para(txt("p", true)), para(txt("c", false))
	q1, q2 := model.NewQuote(nil, nil), model.NewQuote(nil, nil)
	model.AddBlock(q1, a)
	model.AddBlock(q2, c)
	doc := docOf(q1, p, q2)

	require.True(t, ToggleModelBlockQuote(doc, nil, nil))
	require.Len(t, doc.Blocks, 1)
	assert.Same(t, q1, doc.Blocks[0])
	assert.Equal(t, []model.Block{a, p, c}, q1.Blocks)
}

func TestToggleModelBlockQuote_Unwraps(t *testing.T) {
	p := para(txt("p", true))
	q := model.NewQuote(nil, nil)
	model.AddBlock(q, p)
	doc := docOf(q)

	require.True(t, ToggleModelBlockQuote(doc, nil, nil))
	assert.Equal(t, []model.Block{p}, doc.Blocks)
}

func TestToggleModelBlockQuote_DifferentFormatDoesNotMerge(t *testing.T) {
	a, p := para(txt("a", false)), para(txt("p", true))
	q1 := model.NewQuote(model.Format{model.KeyBorderLeft: "1px"}, nil)
	model.AddBlock(q1, a)
	doc := docOf(q1, p)

	require.True(t, ToggleModelBlockQuote(doc, model.Format{model.KeyBorderLeft: "3px"}, nil))
	require.Len(t, doc.Blocks, 2)
	q2 := doc.Blocks[1].(*model.Quote)
	assert.Equal(t, []model.Block{p}, q2.Blocks)
}

func TestClearModelFormat_WholeParagraph(t *testing.T) {
	seg := txt("bold", true)
	seg.Format = model.Format{model.KeyFontWeight: "bold"}
	p := para(seg)
	p.Format = model.Format{model.KeyTextAlign: "center"}
	p.Decorator = model.NewParagraphDecorator("h1", nil)
	doc := docOf(p)

	require.True(t, ClearModelFormat(doc, model.Format{model.KeyFontFamily: "Arial"}))
	assert.Empty(t, p.Format)
	assert.Nil(t, p.Decorator)
	assert.Equal(t, model.Format{model.KeyFontFamily: "Arial"}, seg.Format)
}

func TestClearModelFormat_SplitsQuote(t *testing.T) {
	p1, p2 := para(txt("one", true)), para(txt("two", false))
	q := model.NewQuote(nil, nil)
	q.Blocks = []model.Block{p1, p2}
	doc := docOf(q)

	require.True(t, ClearModelFormat(doc, nil))
	require.Len(t, doc.Blocks, 2)
	assert.Same(t, p1, doc.Blocks[0])
	tail := doc.Blocks[1].(*model.Quote)
	assert.Equal(t, []model.Block{p2}, tail.Blocks)
}

func TestClearModelFormat_CaretClearsWordAndList(t *testing.T) {
	left, right := txt("wo", false), txt("rd rest", false)
	left.Format = model.Format{model.KeyItalic: "true"}
	right.Format = model.Format{model.KeyItalic: "true"}
	marker := model.NewSelectionMarker(nil)
	p := para(left, marker, right)
	item := listItem(model.ListUnordered, nil, p)
	doc := docOf(item)

	require.True(t, ClearModelFormat(doc, nil))
	assert.Empty(t, item.Levels)
	require.Len(t, p.Segments, 4)
	assert.Empty(t, left.Format)
	assert.Equal(t, "rd", p.Segments[2].(*model.Text).Text)
	assert.Empty(t, p.Segments[2].Base().Format)
	assert.Equal(t, " rest", p.Segments[3].(*model.Text).Text)
	assert.Equal(t, "true", p.Segments[3].Base().Format.Get(model.KeyItalic))
}

func TestInsertLink_LinksSelectedText(t *testing.T) {
	hello, world := txt("hello ", false), txt("world", true)
	doc := docOf(para(hello, world))

	require.True(t, InsertLink(doc, LinkOptions{URL: "example.com", Title: "t"}))
	require.NotNil(t, world.Link)
	assert.Equal(t, "https://example.com", world.Link.Href())
	assert.Equal(t, "t", world.Link.Format.Get(model.KeyAnchorTitle))
	assert.Nil(t, hello.Link)

	require.True(t, RemoveLink(doc))
	assert.Nil(t, world.Link)
}

func TestInsertLink_CollapsedInsertsText(t *testing.T) {
	ab := txt("ab", false)
	p := para(ab, model.NewSelectionMarker(nil))
	doc := docOf(p)

	require.True(t, InsertLink(doc, LinkOptions{URL: "mailto:a@b.c"}))
	require.Len(t, p.Segments, 3)
	inserted := p.Segments[1].(*model.Text)
	assert.Equal(t, "mailto:a@b.c", inserted.Text)
	assert.Equal(t, "mailto:a@b.c", inserted.Link.Href())
	assert.False(t, inserted.IsSelected)
	assert.Equal(t, model.SegmentSelectionMarker, p.Segments[2].SegmentType())
}

func TestInsertLink_EmptyURL(t *testing.T) {
	doc := docOf(para(txt("x", true)))
	assert.False(t, InsertLink(doc, LinkOptions{URL: "  "}))
}

func TestRemoveLink_CaretWidensToLink(t *testing.T) {
	link := model.NewLink("https://a.b", "", "")
	left := model.NewText("lin", nil, link, nil)
	right := model.NewText("k", nil, link, nil)
	marker := model.NewSelectionMarker(nil)
	marker.Link = model.CloneLink(link)
	doc := docOf(para(txt("x ", false), left, marker, right))

	require.True(t, RemoveLink(doc))
	assert.Nil(t, left.Link)
	assert.Nil(t, right.Link)
}

func TestSetModelAlignment(t *testing.T) {
	ltr, rtl := para(txt("a", true)), para(txt("b", true))
	rtl.Format = model.Format{model.KeyDirection: "rtl"}
	doc := docOf(ltr, rtl)

	require.True(t, SetModelAlignment(doc, AlignLeft))
	assert.Equal(t, "start", ltr.Format.Get(model.KeyTextAlign))
	assert.Equal(t, "end", rtl.Format.Get(model.KeyTextAlign))

	assert.False(t, SetModelAlignment(doc, Alignment("diagonal")))
}

func TestSetModelAlignment_WholeTable(t *testing.T) {
	inner := para(txt("cell", false))
	cell := model.NewTableCell(false, false, false, nil)
	cell.IsSelected = true
	model.AddBlock(cell, inner)
	table := model.NewTable(1, nil)
	table.Rows[0].Cells = append(table.Rows[0].Cells, cell)
	doc := docOf(table)

	require.True(t, SetModelAlignment(doc, AlignCenter))
	assert.Equal(t, "auto", table.Format.Get(model.KeyMarginLeft))
	assert.Equal(t, "auto", table.Format.Get(model.KeyMarginRight))
	assert.False(t, inner.Format.Has(model.KeyTextAlign))
}

func TestSetModelAlignment_ListItem(t *testing.T) {
	item := listItem(model.ListOrdered, nil, para(txt("x", true)))
	doc := docOf(item)

	require.True(t, SetModelAlignment(doc, AlignRight))
	assert.Equal(t, "end", item.Format.Get(model.KeyTextAlign))
	assert.Equal(t, "end", item.Levels[0].Format.Get(model.KeyTextAlign))
}

func TestSetModelDirection_SwapsMargins(t *testing.T) {
	p := para(txt("a", true))
	p.Format = model.Format{model.KeyMarginLeft: "10px", model.KeyPaddingRight: "2px"}
	doc := docOf(p)

	require.True(t, SetModelDirection(doc, DirectionRTL))
	assert.Equal(t, model.Format{
		model.KeyDirection:   "rtl",
		model.KeyMarginRight: "10px",
		model.KeyPaddingLeft: "2px",
	}, p.Format)

	require.True(t, SetModelDirection(doc, DirectionRTL))
	assert.Equal(t, "10px", p.Format.Get(model.KeyMarginRight))
}

func TestSetModelDirection_ListThread(t *testing.T) {
	i1 := listItem(model.ListOrdered, nil, para(txt("1", true)))
	i2 := listItem(model.ListOrdered, nil, para(txt("2", false)))
	doc := docOf(i1, i2)

	require.True(t, SetModelDirection(doc, DirectionRTL))
	assert.Equal(t, "rtl", i2.Levels[0].Format.Get(model.KeyDirection))
	assert.Equal(t, "rtl", i2.Format.Get(model.KeyDirection))
}

func TestToggleBold(t *testing.T) {
	a, b := txt("a", true), txt("b", true)
	a.Format = model.Format{model.KeyFontWeight: "700"}
	doc := docOf(para(a, b))

	require.True(t, ToggleBold(doc))
	assert.Equal(t, "bold", a.Format.Get(model.KeyFontWeight))
	assert.Equal(t, "bold", b.Format.Get(model.KeyFontWeight))

	require.True(t, ToggleBold(doc))
	assert.Equal(t, "normal", a.Format.Get(model.KeyFontWeight))
	assert.Equal(t, "normal", b.Format.Get(model.KeyFontWeight))
}

func TestToggleBold_HeadingCountsAsBold(t *testing.T) {
	seg := txt("title", true)
	p := para(seg)
	p.Decorator = model.NewParagraphDecorator("h1", model.Format{model.KeyFontWeight: "bold"})
	doc := docOf(p)

	require.True(t, ToggleBold(doc))
	assert.Equal(t, "normal", seg.Format.Get(model.KeyFontWeight))
}

func TestToggleItalic_CaretExpandsToWord(t *testing.T) {
	left, right := txt("hel", false), txt("lo world", false)
	p := para(left, model.NewSelectionMarker(nil), right)
	doc := docOf(p)

	require.True(t, ToggleItalic(doc))
	require.Len(t, p.Segments, 4)
	assert.Equal(t, "true", left.Format.Get(model.KeyItalic))
	assert.Equal(t, "lo", p.Segments[2].(*model.Text).Text)
	assert.Equal(t, "true", p.Segments[2].Base().Format.Get(model.KeyItalic))
	assert.Same(t, right, p.Segments[3])
	assert.Equal(t, " world", right.Text)
	assert.False(t, right.Format.Has(model.KeyItalic))
}

func TestToggleFlags(t *testing.T) {
	seg := txt("x", true)
	doc := docOf(para(seg))

	require.True(t, ToggleUnderline(doc))
	require.True(t, ToggleStrikethrough(doc))
	assert.Equal(t, "true", seg.Format.Get(model.KeyUnderline))
	assert.Equal(t, "true", seg.Format.Get(model.KeyStrikethrough))

	require.True(t, ToggleUnderline(doc))
	assert.Equal(t, "false", seg.Format.Get(model.KeyUnderline))
}

func TestSetTextColor_AlsoColorsLink(t *testing.T) {
	seg := model.NewText("x", nil, model.NewLink("https://a.b", "", ""), nil)
	seg.IsSelected = true
	doc := docOf(para(seg))

	require.True(t, SetTextColor(doc, "red"))
	assert.Equal(t, "red", seg.Format.Get(model.KeyTextColor))
	assert.Equal(t, "red", seg.Link.Format.Get(model.KeyTextColor))

	require.True(t, SetTextColor(doc, ""))
	assert.False(t, seg.Format.Has(model.KeyTextColor))
	assert.False(t, seg.Link.Format.Has(model.KeyTextColor))
}

func TestSetFontSizeAndFamily(t *testing.T) {
	seg := txt("x", true)
	doc := docOf(para(seg))

	require.True(t, SetFontSize(doc, "14pt"))
	require.True(t, SetFontFamily(doc, "Georgia"))
	assert.Equal(t, "14pt", seg.Format.Get(model.KeyFontSize))
	assert.Equal(t, "Georgia", seg.Format.Get(model.KeyFontFamily))

	assert.False(t, SetFontSize(docOf(para(txt("y", false))), "10pt"))
}

func TestSetHeadingLevel(t *testing.T) {
	seg := txt("title", true)
	seg.Format = model.Format{model.KeyFontSize: "30px", model.KeyTextColor: "blue"}
	p := para(seg)
	doc := docOf(p)

	require.True(t, SetHeadingLevel(doc, 2))
	require.NotNil(t, p.Decorator)
	assert.Equal(t, "h2", p.Decorator.TagName)
	assert.Equal(t, "1.5em", p.Decorator.Format.Get(model.KeyFontSize))
	assert.Equal(t, model.Format{model.KeyTextColor: "blue"}, seg.Format)

	require.True(t, SetHeadingLevel(doc, 0))
	assert.Nil(t, p.Decorator)

	assert.False(t, SetHeadingLevel(doc, 7))
}

func TestToggleBold_CaretKeepsTypedSpace(t *testing.T) {
	hello := txt("hello ", false)
	marker := model.NewSelectionMarker(nil)
	p := para(hello, marker)
	doc := docOf(p)

	require.True(t, ToggleBold(doc))
	normalize.NormalizeContentModel(doc)

	require.Len(t, p.Segments, 2)
	assert.Equal(t, "hello\u00a0", hello.Text)
	assert.Same(t, marker, p.Segments[1])
	assert.Equal(t, "bold", marker.Format.Get(model.KeyFontWeight))
}
