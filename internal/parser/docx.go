package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/contentmodel/internal/model"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*model.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "contentmodel-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	w := &docxWalker{b: newBuilder(), file: doc}
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			w.paragraph(it)
		case *docx.Table:
			w.closeLists()
			w.table(it)
		}
	}
	w.closeLists()
	return w.b.doc, nil
}

type docxWalker struct {
	b    *builder
	file *docx.Docx

	// numID of the open list, so a change of numbering starts a new list.
	numID string
}

func (w *docxWalker) paragraph(para *docx.Paragraph) {
	b := w.b
	props := para.Properties

	numID, depth := docxNumbering(props)
	if depth < 0 {
		w.closeLists()
	} else {
		if numID != w.numID {
			w.closeLists()
			w.numID = numID
		}
		for len(b.levels) > depth+1 {
			b.closeList()
		}
		for len(b.levels) < depth+1 {
			b.openList(docxListType(props), 1)
		}
		b.openListItem()
	}

	b.openParagraph(docxBlockFormat(props), model.NewHeadingDecorator(docxHeadingLevel(para)))
	w.runs(para.Children)
	b.closeParagraph()

	if depth >= 0 {
		b.closeListItem()
	}
}

func (w *docxWalker) closeLists() {
	for len(w.b.levels) > 0 {
		w.b.closeList()
	}
	w.numID = ""
}

func (w *docxWalker) runs(children []interface{}) {
	for _, child := range children {
		switch c := child.(type) {
		case *docx.Run:
			w.run(c)
		case *docx.Hyperlink:
			target, err := w.file.ReferTarget(c.ID)
			if err != nil || target == "" {
				w.run(&c.Run)
				continue
			}
			w.b.withLink(model.NewLink(target, "", ""), func() { w.run(&c.Run) })
		}
	}
}

func (w *docxWalker) run(run *docx.Run) {
	b := w.b
	saved := b.format
	b.format = saved.Clone()
	applyRunProperties(b.format, run.RunProperties)
	defer func() { b.format = saved }()

	for _, rc := range run.Children {
		switch t := rc.(type) {
		case *docx.Text:
			b.addText(t.Text)
		case *docx.Tab:
			b.addText("\t")
		case *docx.BarterRabbet:
			b.addBr()
		}
	}
}

func (w *docxWalker) table(t *docx.Table) {
	b := w.b
	table := model.NewTable(0, nil)
	b.addBlock(table)

	for _, tr := range t.TableRows {
		row := model.NewTableRow(nil)
		table.Rows = append(table.Rows, row)
		for _, tc := range tr.TableCells {
			cell := model.NewTableCell(false, false, false, nil)
			row.Cells = append(row.Cells, cell)

			b.groups = append(b.groups, cell)
			b.para = nil
			for _, p := range tc.Paragraphs {
				w.paragraph(p)
			}
			w.closeLists()
			for _, nested := range tc.Tables {
				w.table(nested)
			}
			b.pop()
		}
	}
	b.para = nil
}

func applyRunProperties(f model.Format, rp *docx.RunProperties) {
	if rp == nil {
		return
	}
	if rp.Bold != nil {
		f[model.KeyFontWeight] = "bold"
	}
	if rp.Italic != nil {
		f[model.KeyItalic] = "true"
	}
	if rp.Underline != nil && rp.Underline.Val != "none" {
		f[model.KeyUnderline] = "true"
	}
	if rp.Strike != nil && rp.Strike.Val != "false" && rp.Strike.Val != "0" {
		f[model.KeyStrikethrough] = "true"
	}
	if rp.Color != nil && rp.Color.Val != "" && rp.Color.Val != "auto" {
		f[model.KeyTextColor] = "#" + rp.Color.Val
	}
	if rp.Size != nil {
		// Sizes are in half points.
		if n, err := strconv.Atoi(rp.Size.Val); err == nil && n > 0 {
			f[model.KeyFontSize] = strconv.FormatFloat(float64(n)/2, 'f', -1, 64) + "pt"
		}
	}
	if rp.Fonts != nil && rp.Fonts.ASCII != "" {
		f[model.KeyFontFamily] = rp.Fonts.ASCII
	}
}

func docxBlockFormat(props *docx.ParagraphProperties) model.Format {
	f := model.Format{}
	if props == nil || props.Justification == nil {
		return f
	}
	switch props.Justification.Val {
	case "left", "start":
		f[model.KeyTextAlign] = "start"
	case "right", "end":
		f[model.KeyTextAlign] = "end"
	case "center":
		f[model.KeyTextAlign] = "center"
	case "both", "distribute":
		f[model.KeyTextAlign] = "justify"
	}
	return f
}

// docxNumbering returns the numbering id and depth of a list paragraph, or a
// depth of -1 for other paragraphs. List styles without explicit numbering
// count as depth 0.
func docxNumbering(props *docx.ParagraphProperties) (string, int) {
	if props == nil {
		return "", -1
	}
	if np := props.NumProperties; np != nil && np.NumID != nil && np.NumID.Val != "0" {
		depth := 0
		if np.Ilvl != nil {
			if n, err := strconv.Atoi(np.Ilvl.Val); err == nil && n >= 0 {
				depth = n
			}
		}
		return np.NumID.Val, depth
	}
	if props.Style != nil && strings.HasPrefix(strings.ToLower(props.Style.Val), "list") {
		return "style:" + props.Style.Val, 0
	}
	return "", -1
}

func docxListType(props *docx.ParagraphProperties) model.ListType {
	if props != nil && props.Style != nil {
		style := strings.ToLower(props.Style.Val)
		if strings.Contains(style, "number") {
			return model.ListOrdered
		}
	}
	return model.ListUnordered
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}
