package model

import (
	"maps"
	"strconv"
)

// NewDocument creates an empty document. defaultFormat becomes the document's
// default segment format.
func NewDocument(defaultFormat Format) *Document {
	doc := &Document{BlockGroupBase: BlockGroupBase{Blocks: []Block{}}}
	if len(defaultFormat) > 0 {
		doc.Format = defaultFormat.Clone()
	}
	return doc
}

// NewParagraph creates an empty paragraph.
func NewParagraph(isImplicit bool, blockFormat, segmentFormat Format, decorator *ParagraphDecorator) *Paragraph {
	p := &Paragraph{
		Segments:   []Segment{},
		IsImplicit: isImplicit,
		Format:     blockFormat.Clone(),
	}
	if len(segmentFormat) > 0 {
		p.SegmentFormat = segmentFormat.Clone()
	}
	if decorator != nil {
		p.Decorator = NewParagraphDecorator(decorator.TagName, decorator.Format)
	}
	return p
}

// NewParagraphDecorator creates a decorator for tag (lower-cased by the caller).
func NewParagraphDecorator(tagName string, format Format) *ParagraphDecorator {
	return &ParagraphDecorator{TagName: tagName, Format: format.Clone()}
}

// NewText creates a text segment.
func NewText(text string, format Format, link *Link, code *Code) *Text {
	t := &Text{Text: text}
	t.Format = format.Clone()
	t.Link = CloneLink(link)
	if code != nil {
		t.Code = &Code{Format: code.Format.Clone()}
	}
	return t
}

// NewImage creates an image segment.
func NewImage(src string, format Format) *Image {
	img := &Image{Src: src}
	img.Format = format.Clone()
	return img
}

// NewBr creates a line break.
func NewBr(format Format) *Br {
	br := &Br{}
	br.Format = format.Clone()
	return br
}

// NewSelectionMarker creates a selected marker.
func NewSelectionMarker(format Format) *SelectionMarker {
	m := &SelectionMarker{}
	m.IsSelected = true
	m.Format = format.Clone()
	return m
}

// NewLink creates a link pointing at href.
func NewLink(href, title, target string) *Link {
	link := &Link{Format: Format{KeyHref: href, KeyUnderline: "true"}}
	if title != "" {
		link.Format[KeyAnchorTitle] = title
	}
	if target != "" {
		link.Format[KeyTarget] = target
	}
	return link
}

// NewQuote creates an empty quote.
func NewQuote(format, quoteSegmentFormat Format) *Quote {
	return &Quote{
		BlockGroupBase:     BlockGroupBase{Blocks: []Block{}},
		Format:             format.Clone(),
		QuoteSegmentFormat: quoteSegmentFormat.Clone(),
	}
}

// NewFormatContainer creates an empty format container, e.g. for blockquote or pre.
func NewFormatContainer(tagName string, format Format) *FormatContainer {
	return &FormatContainer{
		BlockGroupBase: BlockGroupBase{Blocks: []Block{}},
		TagName:        tagName,
		Format:         format.Clone(),
	}
}

// NewListLevel creates a list level. Use Ptr to pass a start number.
func NewListLevel(listType ListType, format Format, startNumberOverride *int) *ListLevel {
	level := &ListLevel{ListType: listType, Format: format.Clone()}
	if startNumberOverride != nil {
		level.StartNumberOverride = Ptr(*startNumberOverride)
	}
	return level
}

// NewListItem creates a list item holding copies of levels. formatHolderFormat
// is the segment format of the list marker.
func NewListItem(levels []*ListLevel, formatHolderFormat Format) *ListItem {
	item := &ListItem{
		BlockGroupBase: BlockGroupBase{Blocks: []Block{}},
		Levels:         make([]*ListLevel, 0, len(levels)),
		FormatHolder:   &SelectionMarker{},
		Format:         Format{},
	}
	item.FormatHolder.Format = formatHolderFormat.Clone()
	for _, l := range levels {
		item.Levels = append(item.Levels, CloneListLevel(l))
	}
	return item
}

// CloneListLevel returns a deep copy of level.
func CloneListLevel(level *ListLevel) *ListLevel {
	out := NewListLevel(level.ListType, level.Format, level.StartNumberOverride)
	out.Dataset = maps.Clone(level.Dataset)
	return out
}

// NewTable creates a table with rowCount empty rows.
func NewTable(rowCount int, format Format) *Table {
	t := &Table{Rows: make([]*TableRow, 0, rowCount), Format: format.Clone()}
	for range rowCount {
		t.Rows = append(t.Rows, NewTableRow(nil))
	}
	return t
}

// NewTableRow creates an empty row.
func NewTableRow(format Format) *TableRow {
	return &TableRow{Format: format.Clone(), Cells: []*TableCell{}}
}

// NewTableCell creates an empty cell.
func NewTableCell(spanLeft, spanAbove, isHeader bool, format Format) *TableCell {
	return &TableCell{
		BlockGroupBase: BlockGroupBase{Blocks: []Block{}},
		Format:         format.Clone(),
		SpanLeft:       spanLeft,
		SpanAbove:      spanAbove,
		IsHeader:       isHeader,
	}
}

// NewDivider creates a divider, typically "hr".
func NewDivider(tagName string, format Format) *Divider {
	return &Divider{TagName: tagName, Format: format.Clone()}
}

// NewGeneralBlock creates an opaque block element.
func NewGeneralBlock(tagName string) *GeneralBlock {
	return &GeneralBlock{
		BlockGroupBase: BlockGroupBase{Blocks: []Block{}},
		TagName:        tagName,
		Format:         Format{},
	}
}

// NewGeneralSegment creates an opaque inline element.
func NewGeneralSegment(tagName string, format Format) *GeneralSegment {
	g := &GeneralSegment{
		BlockGroupBase: BlockGroupBase{Blocks: []Block{}},
		TagName:        tagName,
		BlockFormat:    Format{},
	}
	g.Format = format.Clone()
	return g
}

// CloneLink returns a deep copy of link, or nil.
func CloneLink(link *Link) *Link {
	if link == nil {
		return nil
	}
	return &Link{Format: link.Format.Clone(), Dataset: maps.Clone(link.Dataset)}
}

// Font sizes of h1 through h6.
var headingFontSizes = [...]string{"2em", "1.5em", "1.17em", "1em", "0.83em", "0.67em"}

// NewHeadingDecorator returns the decorator of an h1 to h6 heading, or nil
// when level is out of range.
func NewHeadingDecorator(level int) *ParagraphDecorator {
	if level < 1 || level > len(headingFontSizes) {
		return nil
	}
	return NewParagraphDecorator("h"+strconv.Itoa(level), Format{
		KeyFontWeight: "bold",
		KeyFontSize:   headingFontSizes[level-1],
	})
}

// HeadingLevel returns the level of a heading decorator, or 0.
func HeadingLevel(d *ParagraphDecorator) int {
	if d == nil || len(d.TagName) != 2 || (d.TagName[0] != 'h' && d.TagName[0] != 'H') {
		return 0
	}
	if n := int(d.TagName[1] - '0'); n >= 1 && n <= len(headingFontSizes) {
		return n
	}
	return 0
}
