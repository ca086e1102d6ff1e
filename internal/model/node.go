package model

// BlockType discriminates the block variants that can sit in a group's block list.
type BlockType string

const (
	BlockTypeParagraph  BlockType = "Paragraph"
	BlockTypeTable      BlockType = "Table"
	BlockTypeDivider    BlockType = "Divider"
	BlockTypeBlockGroup BlockType = "BlockGroup"
)

// BlockGroupType discriminates containers that own a list of blocks.
type BlockGroupType string

const (
	GroupDocument        BlockGroupType = "Document"
	GroupListItem        BlockGroupType = "ListItem"
	GroupQuote           BlockGroupType = "Quote"
	GroupFormatContainer BlockGroupType = "FormatContainer"
	GroupGeneral         BlockGroupType = "General"
	GroupTableCell       BlockGroupType = "TableCell"
)

// SegmentType discriminates the leaves of a paragraph.
type SegmentType string

const (
	SegmentText            SegmentType = "Text"
	SegmentImage           SegmentType = "Image"
	SegmentSelectionMarker SegmentType = "SelectionMarker"
	SegmentGeneral         SegmentType = "General"
	SegmentBr              SegmentType = "Br"
)

// ListType is the numbering kind of one list level.
type ListType string

const (
	ListOrdered   ListType = "OL"
	ListUnordered ListType = "UL"
)

// Block is a unit of content inside a block group. Paragraphs, tables and
// dividers are blocks, and so are the groups that can be nested (list item,
// quote, format container, general). Document and TableCell are groups but
// never blocks.
type Block interface {
	BlockType() BlockType
	BlockFormat() *Format
}

// BlockGroup is any node that owns an ordered list of blocks.
type BlockGroup interface {
	BlockGroupType() BlockGroupType
	Group() *BlockGroupBase
}

// Segment is a leaf of a paragraph.
type Segment interface {
	SegmentType() SegmentType
	Base() *SegmentBase
}

// BlockGroupBase holds the children of a block group. Membership in Blocks is
// ownership: a block belongs to exactly one group.
type BlockGroupBase struct {
	Blocks []Block `json:"blocks"`
}

func (g *BlockGroupBase) Group() *BlockGroupBase { return g }

// SegmentBase carries the fields every segment kind shares.
type SegmentBase struct {
	IsSelected bool   `json:"isSelected,omitempty"`
	Format     Format `json:"format,omitempty"`
	Link       *Link  `json:"link,omitempty"`
	Code       *Code  `json:"code,omitempty"`
}

func (s *SegmentBase) Base() *SegmentBase { return s }

// Link decorates a segment with a hyperlink.
type Link struct {
	Format  Format            `json:"format"`
	Dataset map[string]string `json:"dataset,omitempty"`
}

// Href returns the link target.
func (l *Link) Href() string {
	if l == nil {
		return ""
	}
	return l.Format[KeyHref]
}

// Code marks a segment as inline code.
type Code struct {
	Format Format `json:"format,omitempty"`
}

// Document is the root of a content model tree.
type Document struct {
	BlockGroupBase
	// Format is the default segment format of the document.
	Format Format `json:"format,omitempty"`
}

func (d *Document) BlockGroupType() BlockGroupType { return GroupDocument }

// ListLevel describes one nesting depth of a list item, outermost first.
type ListLevel struct {
	ListType ListType `json:"listType"`
	// StartNumberOverride marks the first item of a new numbering thread.
	StartNumberOverride *int              `json:"startNumberOverride,omitempty"`
	Format              Format            `json:"format,omitempty"`
	Dataset             map[string]string `json:"dataset,omitempty"`
}

// ListItem is one entry of a (possibly nested) list. An item with no levels is
// a plain container and gets unwrapped by normalization.
type ListItem struct {
	BlockGroupBase
	Levels       []*ListLevel     `json:"levels"`
	FormatHolder *SelectionMarker `json:"formatHolder"`
	Format       Format           `json:"format,omitempty"`
}

func (l *ListItem) BlockType() BlockType           { return BlockTypeBlockGroup }
func (l *ListItem) BlockGroupType() BlockGroupType { return GroupListItem }
func (l *ListItem) BlockFormat() *Format           { return &l.Format }

// LastLevel returns the deepest level, or nil when the item has none.
func (l *ListItem) LastLevel() *ListLevel {
	if len(l.Levels) == 0 {
		return nil
	}
	return l.Levels[len(l.Levels)-1]
}

// Quote is a block quote / indentation wrapper.
type Quote struct {
	BlockGroupBase
	Format             Format `json:"format,omitempty"`
	QuoteSegmentFormat Format `json:"quoteSegmentFormat,omitempty"`
}

func (q *Quote) BlockType() BlockType           { return BlockTypeBlockGroup }
func (q *Quote) BlockGroupType() BlockGroupType { return GroupQuote }
func (q *Quote) BlockFormat() *Format           { return &q.Format }

// FormatContainer wraps blocks in a formatting element such as blockquote or pre.
type FormatContainer struct {
	BlockGroupBase
	TagName string `json:"tagName"`
	Format  Format `json:"format,omitempty"`
}

func (c *FormatContainer) BlockType() BlockType           { return BlockTypeBlockGroup }
func (c *FormatContainer) BlockGroupType() BlockGroupType { return GroupFormatContainer }
func (c *FormatContainer) BlockFormat() *Format           { return &c.Format }

// GeneralBlock is an opaque embedded element whose children are still modeled.
type GeneralBlock struct {
	BlockGroupBase
	TagName    string `json:"tagName,omitempty"`
	IsSelected bool   `json:"isSelected,omitempty"`
	Format     Format `json:"format,omitempty"`
}

func (g *GeneralBlock) BlockType() BlockType           { return BlockTypeBlockGroup }
func (g *GeneralBlock) BlockGroupType() BlockGroupType { return GroupGeneral }
func (g *GeneralBlock) BlockFormat() *Format           { return &g.Format }

// TableCell is a cell of a table row.
type TableCell struct {
	BlockGroupBase
	Format     Format            `json:"format,omitempty"`
	SpanLeft   bool              `json:"spanLeft,omitempty"`
	SpanAbove  bool              `json:"spanAbove,omitempty"`
	IsHeader   bool              `json:"isHeader,omitempty"`
	IsSelected bool              `json:"isSelected,omitempty"`
	Dataset    map[string]string `json:"dataset,omitempty"`
}

func (c *TableCell) BlockGroupType() BlockGroupType { return GroupTableCell }

// ParagraphDecorator is the element a paragraph renders with, e.g. h1.
type ParagraphDecorator struct {
	TagName string `json:"tagName"`
	Format  Format `json:"format,omitempty"`
}

// Paragraph is a run of segments. Implicit paragraphs have no wrapper element
// of their own.
type Paragraph struct {
	Segments      []Segment           `json:"segments"`
	IsImplicit    bool                `json:"isImplicit,omitempty"`
	Decorator     *ParagraphDecorator `json:"decorator,omitempty"`
	Format        Format              `json:"format,omitempty"`
	SegmentFormat Format              `json:"segmentFormat,omitempty"`
}

func (p *Paragraph) BlockType() BlockType { return BlockTypeParagraph }
func (p *Paragraph) BlockFormat() *Format { return &p.Format }

// TableRow is one row of a table.
type TableRow struct {
	Height float64      `json:"height,omitempty"`
	Format Format       `json:"format,omitempty"`
	Cells  []*TableCell `json:"cells"`
}

// Table is a grid of cells.
type Table struct {
	Rows    []*TableRow       `json:"rows"`
	Widths  []float64         `json:"widths,omitempty"`
	Format  Format            `json:"format,omitempty"`
	Dataset map[string]string `json:"dataset,omitempty"`
}

func (t *Table) BlockType() BlockType { return BlockTypeTable }
func (t *Table) BlockFormat() *Format { return &t.Format }

// Divider is a horizontal rule or similar separator.
type Divider struct {
	TagName    string `json:"tagName"`
	IsSelected bool   `json:"isSelected,omitempty"`
	Format     Format `json:"format,omitempty"`
}

func (d *Divider) BlockType() BlockType { return BlockTypeDivider }
func (d *Divider) BlockFormat() *Format { return &d.Format }

// Text is a run of text.
type Text struct {
	SegmentBase
	Text string `json:"text"`
}

func (t *Text) SegmentType() SegmentType { return SegmentText }

// Image is an inline image.
type Image struct {
	SegmentBase
	Src   string `json:"src"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

func (i *Image) SegmentType() SegmentType { return SegmentImage }

// SelectionMarker is a zero-width segment marking a caret or a selection boundary.
type SelectionMarker struct {
	SegmentBase
}

func (m *SelectionMarker) SegmentType() SegmentType { return SegmentSelectionMarker }

// Br is a line break.
type Br struct {
	SegmentBase
}

func (b *Br) SegmentType() SegmentType { return SegmentBr }

// GeneralSegment is an opaque inline element that owns blocks of its own.
type GeneralSegment struct {
	SegmentBase
	BlockGroupBase
	TagName     string `json:"tagName,omitempty"`
	BlockFormat Format `json:"blockFormat,omitempty"`
}

func (g *GeneralSegment) SegmentType() SegmentType       { return SegmentGeneral }
func (g *GeneralSegment) BlockGroupType() BlockGroupType { return GroupGeneral }
