package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownNodeType is returned when decoding meets a discriminant it does not know.
var ErrUnknownNodeType = errors.New("unknown node type")

// nodeHeader carries the discriminants written next to every node.
type nodeHeader struct {
	BlockType      BlockType      `json:"blockType,omitempty"`
	BlockGroupType BlockGroupType `json:"blockGroupType,omitempty"`
	SegmentType    SegmentType    `json:"segmentType,omitempty"`
}

// DecodeDocument parses a JSON-encoded document.
func DecodeDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func decodeBlock(raw json.RawMessage) (Block, error) {
	var h nodeHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, err
	}

	var block Block
	switch h.BlockType {
	case BlockTypeParagraph:
		block = &Paragraph{}
	case BlockTypeTable:
		block = &Table{}
	case BlockTypeDivider:
		block = &Divider{}
	case BlockTypeBlockGroup:
		switch h.BlockGroupType {
		case GroupListItem:
			block = &ListItem{}
		case GroupQuote:
			block = &Quote{}
		case GroupFormatContainer:
			block = &FormatContainer{}
		case GroupGeneral:
			block = &GeneralBlock{}
		default:
			return nil, fmt.Errorf("%w: block group %q", ErrUnknownNodeType, h.BlockGroupType)
		}
	default:
		return nil, fmt.Errorf("%w: block %q", ErrUnknownNodeType, h.BlockType)
	}

	if err := json.Unmarshal(raw, block); err != nil {
		return nil, err
	}
	return block, nil
}

func decodeBlocks(raws []json.RawMessage) ([]Block, error) {
	blocks := make([]Block, 0, len(raws))
	for i, raw := range raws {
		b, err := decodeBlock(raw)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func decodeSegment(raw json.RawMessage) (Segment, error) {
	var h nodeHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, err
	}

	var seg Segment
	switch h.SegmentType {
	case SegmentText:
		seg = &Text{}
	case SegmentImage:
		seg = &Image{}
	case SegmentSelectionMarker:
		seg = &SelectionMarker{}
	case SegmentBr:
		seg = &Br{}
	case SegmentGeneral:
		seg = &GeneralSegment{}
	default:
		return nil, fmt.Errorf("%w: segment %q", ErrUnknownNodeType, h.SegmentType)
	}

	if err := json.Unmarshal(raw, seg); err != nil {
		return nil, err
	}
	return seg, nil
}

// Document

func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockGroupType: GroupDocument}, (*alias)(d)})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	d.Blocks = blocks
	return nil
}

// Block groups

func (l *ListItem) MarshalJSON() ([]byte, error) {
	type alias ListItem
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeBlockGroup, BlockGroupType: GroupListItem}, (*alias)(l)})
}

func (l *ListItem) UnmarshalJSON(data []byte) error {
	type alias ListItem
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	l.Blocks = blocks
	if l.FormatHolder == nil {
		l.FormatHolder = &SelectionMarker{}
	}
	return nil
}

func (q *Quote) MarshalJSON() ([]byte, error) {
	type alias Quote
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeBlockGroup, BlockGroupType: GroupQuote}, (*alias)(q)})
}

func (q *Quote) UnmarshalJSON(data []byte) error {
	type alias Quote
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	q.Blocks = blocks
	return nil
}

func (c *FormatContainer) MarshalJSON() ([]byte, error) {
	type alias FormatContainer
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeBlockGroup, BlockGroupType: GroupFormatContainer}, (*alias)(c)})
}

func (c *FormatContainer) UnmarshalJSON(data []byte) error {
	type alias FormatContainer
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	c.Blocks = blocks
	return nil
}

func (g *GeneralBlock) MarshalJSON() ([]byte, error) {
	type alias GeneralBlock
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeBlockGroup, BlockGroupType: GroupGeneral}, (*alias)(g)})
}

func (g *GeneralBlock) UnmarshalJSON(data []byte) error {
	type alias GeneralBlock
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	g.Blocks = blocks
	return nil
}

func (c *TableCell) MarshalJSON() ([]byte, error) {
	type alias TableCell
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockGroupType: GroupTableCell}, (*alias)(c)})
}

func (c *TableCell) UnmarshalJSON(data []byte) error {
	type alias TableCell
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	c.Blocks = blocks
	return nil
}

// Blocks

func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeParagraph}, (*alias)(p)})
}

func (p *Paragraph) UnmarshalJSON(data []byte) error {
	type alias Paragraph
	aux := struct {
		*alias
		Segments []json.RawMessage `json:"segments"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Segments = make([]Segment, 0, len(aux.Segments))
	for i, raw := range aux.Segments {
		seg, err := decodeSegment(raw)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		p.Segments = append(p.Segments, seg)
	}
	return nil
}

func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeTable}, (*alias)(t)})
}

func (d *Divider) MarshalJSON() ([]byte, error) {
	type alias Divider
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{BlockType: BlockTypeDivider}, (*alias)(d)})
}

// Segments

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{SegmentType: SegmentText}, (*alias)(t)})
}

func (i *Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{SegmentType: SegmentImage}, (*alias)(i)})
}

func (m *SelectionMarker) MarshalJSON() ([]byte, error) {
	type alias SelectionMarker
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{SegmentType: SegmentSelectionMarker}, (*alias)(m)})
}

func (b *Br) MarshalJSON() ([]byte, error) {
	type alias Br
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{SegmentType: SegmentBr}, (*alias)(b)})
}

func (g *GeneralSegment) MarshalJSON() ([]byte, error) {
	type alias GeneralSegment
	return json.Marshal(struct {
		nodeHeader
		*alias
	}{nodeHeader{SegmentType: SegmentGeneral, BlockGroupType: GroupGeneral}, (*alias)(g)})
}

func (g *GeneralSegment) UnmarshalJSON(data []byte) error {
	type alias GeneralSegment
	aux := struct {
		*alias
		Blocks []json.RawMessage `json:"blocks"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	g.Blocks = blocks
	return nil
}
