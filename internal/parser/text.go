package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/contentmodel/internal/model"
)

// TextParser handles plain text files. Blank lines separate paragraphs and
// line breaks inside a paragraph are kept as Br segments.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*model.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	b := newBuilder()
	addTextParagraphs(b, sb.String())
	return b.doc, nil
}

// addTextParagraphs splits text on blank lines into explicit paragraphs.
func addTextParagraphs(b *builder, text string) {
	var lines []string
	flush := func() {
		if len(lines) == 0 {
			return
		}
		b.openParagraph(nil, nil)
		for i, line := range lines {
			if i > 0 {
				b.addBr()
			}
			b.addText(line)
		}
		b.closeParagraph()
		lines = lines[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	flush()
}
