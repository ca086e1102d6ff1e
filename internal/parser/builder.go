package parser

import (
	"golang.org/x/text/unicode/norm"

	"github.com/dgallion1/contentmodel/internal/model"
)

// Quote format used for imported block quotes.
var quoteFormat = model.Format{
	model.KeyBorderLeft:   "3px solid #C8C8C8",
	model.KeyPaddingLeft:  "10px",
	model.KeyMarginTop:    "1em",
	model.KeyMarginBottom: "1em",
}

var codeFormat = model.Format{model.KeyFontFamily: "monospace"}

// builder assembles a content model while an importer walks its source.
// Segments land in the open paragraph, or in a new implicit paragraph of the
// innermost group when none is open.
type builder struct {
	doc    *model.Document
	groups []model.BlockGroup
	para   *model.Paragraph

	format model.Format
	link   *model.Link
	code   *model.Code

	// List state: levels of the open lists, and the depth of groups the
	// outermost list was opened at.
	levels    []*model.ListLevel
	listDepth int
	listStart []bool
}

func newBuilder() *builder {
	doc := model.NewDocument(nil)
	return &builder{
		doc:    doc,
		groups: []model.BlockGroup{doc},
		format: model.Format{},
	}
}

func (b *builder) group() model.BlockGroup {
	return b.groups[len(b.groups)-1]
}

// addBlock appends block to the innermost group and closes the open paragraph.
func (b *builder) addBlock(block model.Block) {
	b.para = nil
	model.AddBlock(b.group(), block)
}

// push opens g as the innermost group.
func (b *builder) push(g model.GroupBlock) {
	b.addBlock(g)
	b.groups = append(b.groups, g)
}

// pop closes the innermost group.
func (b *builder) pop() {
	b.para = nil
	if len(b.groups) > 1 {
		b.groups = b.groups[:len(b.groups)-1]
	}
}

// openParagraph starts an explicit paragraph.
func (b *builder) openParagraph(format model.Format, decorator *model.ParagraphDecorator) *model.Paragraph {
	p := model.NewParagraph(false, format, nil, decorator)
	b.addBlock(p)
	b.para = p
	return p
}

func (b *builder) closeParagraph() {
	b.para = nil
}

func (b *builder) addSegment(seg model.Segment) {
	if b.para == nil {
		b.para = model.NewParagraph(true, nil, nil, nil)
		model.AddBlock(b.group(), b.para)
	}
	b.para.Segments = append(b.para.Segments, seg)
}

// addText appends text with the current format, link and code. Text is
// stored in NFC.
func (b *builder) addText(text string) {
	if text == "" {
		return
	}
	b.addSegment(model.NewText(norm.NFC.String(text), b.format, b.link, b.code))
}

func (b *builder) addBr() {
	b.addSegment(model.NewBr(b.format))
}

func (b *builder) addImage(src, alt, title string) {
	img := model.NewImage(src, b.format)
	img.Alt = norm.NFC.String(alt)
	img.Title = title
	img.Link = model.CloneLink(b.link)
	b.addSegment(img)
}

// withFormat runs fn with key set in the current segment format.
func (b *builder) withFormat(key, value string, fn func()) {
	old, had := b.format[key]
	b.format[key] = value
	fn()
	if had {
		b.format[key] = old
	} else {
		delete(b.format, key)
	}
}

func (b *builder) withLink(link *model.Link, fn func()) {
	old := b.link
	b.link = link
	fn()
	b.link = old
}

func (b *builder) withCode(fn func()) {
	old := b.code
	b.code = &model.Code{Format: codeFormat.Clone()}
	fn()
	b.code = old
}

// openList starts a list level. start is the first number of an ordered list.
func (b *builder) openList(listType model.ListType, start int) {
	if len(b.levels) == 0 {
		b.listDepth = len(b.groups)
	}
	var override *int
	if listType == model.ListOrdered {
		override = model.Ptr(start)
	}
	b.levels = append(b.levels, model.NewListLevel(listType, nil, override))
	b.listStart = append(b.listStart, true)
}

func (b *builder) closeList() {
	if len(b.levels) == 0 {
		return
	}
	b.levels = b.levels[:len(b.levels)-1]
	b.listStart = b.listStart[:len(b.listStart)-1]
	b.groups = b.groups[:b.listDepth]
	b.para = nil
}

// openListItem starts an item at the current list depth. Items of nested
// lists become siblings of their parents, carrying one more level. It returns
// nil outside a list.
func (b *builder) openListItem() *model.ListItem {
	if len(b.levels) == 0 {
		return nil
	}
	b.groups = b.groups[:b.listDepth]
	levels := b.levels
	item := model.NewListItem(levels, b.format)
	last := len(levels) - 1
	if b.listStart[last] {
		b.listStart[last] = false
	} else {
		item.Levels[last].StartNumberOverride = nil
	}
	// Only the deepest level carries a restart.
	for i := 0; i < last; i++ {
		item.Levels[i].StartNumberOverride = nil
	}
	b.push(item)
	return item
}

func (b *builder) closeListItem() {
	if len(b.levels) > 0 {
		b.groups = b.groups[:b.listDepth]
	}
	b.para = nil
}
