package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/contentmodel/internal/model"
)

func TestMarkdownParser_HeadingsAndParagraphs(t *testing.T) {
	input := `# Title

Intro text
continues here.

## Section A
`
	doc, err := Import(strings.NewReader(input), "doc.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}

	h1 := mustParagraph(t, doc.Blocks[0])
	if h1.Decorator == nil || h1.Decorator.TagName != "h1" {
		t.Fatalf("expected h1 decorator, got %+v", h1.Decorator)
	}
	if got := paragraphText(h1); got != "Title" {
		t.Errorf("expected %q, got %q", "Title", got)
	}

	intro := mustParagraph(t, doc.Blocks[1])
	if intro.Decorator != nil {
		t.Errorf("expected no decorator, got %+v", intro.Decorator)
	}
	if got := paragraphText(intro); got != "Intro text continues here." {
		t.Errorf("expected soft break as space, got %q", got)
	}

	h2 := mustParagraph(t, doc.Blocks[2])
	if model.HeadingLevel(h2.Decorator) != 2 {
		t.Errorf("expected heading level 2, got %d", model.HeadingLevel(h2.Decorator))
	}
}

func TestMarkdownParser_InlineFormats(t *testing.T) {
	input := "Some **bold** and *it* and ~~gone~~ and `code` [docs](https://example.com \"Docs\")."

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "inline.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	para := mustParagraph(t, doc.Blocks[0])

	find := func(text string) *model.Text {
		for _, seg := range para.Segments {
			if tx, ok := seg.(*model.Text); ok && tx.Text == text {
				return tx
			}
		}
		t.Fatalf("segment %q not found", text)
		return nil
	}

	if got := find("bold").Format[model.KeyFontWeight]; got != "bold" {
		t.Errorf("expected bold, got %q", got)
	}
	if got := find("it").Format[model.KeyItalic]; got != "true" {
		t.Errorf("expected italic, got %q", got)
	}
	if got := find("gone").Format[model.KeyStrikethrough]; got != "true" {
		t.Errorf("expected strikethrough, got %q", got)
	}
	if find("code").Code == nil {
		t.Error("expected code span to carry code")
	}
	if find("Some ").Format[model.KeyFontWeight] != "" {
		t.Error("expected format to be restored after emphasis")
	}

	link := find("docs").Link
	if link.Href() != "https://example.com" {
		t.Errorf("expected href %q, got %q", "https://example.com", link.Href())
	}
	if got := link.Format[model.KeyAnchorTitle]; got != "Docs" {
		t.Errorf("expected title %q, got %q", "Docs", got)
	}
}

func TestMarkdownParser_NestedLists(t *testing.T) {
	input := "3. one\n4. two\n   - nested\n"

	doc, err := Import(strings.NewReader(input), "list.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 list items, got %d", len(doc.Blocks))
	}

	first := mustListItem(t, doc.Blocks[0])
	if len(first.Levels) != 1 || first.Levels[0].ListType != model.ListOrdered {
		t.Fatalf("expected one ordered level, got %+v", first.Levels)
	}
	if first.Levels[0].StartNumberOverride == nil || *first.Levels[0].StartNumberOverride != 3 {
		t.Errorf("expected first item to start at 3")
	}

	second := mustListItem(t, doc.Blocks[1])
	if second.Levels[0].StartNumberOverride != nil {
		t.Error("expected second item to continue numbering")
	}

	nested := mustListItem(t, doc.Blocks[2])
	if len(nested.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(nested.Levels))
	}
	if nested.Levels[1].ListType != model.ListUnordered {
		t.Errorf("expected inner level UL, got %s", nested.Levels[1].ListType)
	}
	if got := paragraphText(mustParagraph(t, nested.Blocks[0])); got != "nested" {
		t.Errorf("expected %q, got %q", "nested", got)
	}
}

func TestMarkdownParser_CodeBlockAndQuote(t *testing.T) {
	input := "```\nGET /api/users\nPOST /api/users\n```\n\n> quoted\n\n---\n"

	doc, err := Import(strings.NewReader(input), "api.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}

	pre, ok := doc.Blocks[0].(*model.FormatContainer)
	if !ok || pre.TagName != "pre" {
		t.Fatalf("expected pre container, got %T", doc.Blocks[0])
	}
	code := mustParagraph(t, pre.Blocks[0])
	if got := paragraphText(code); got != "GET /api/users\nPOST /api/users" {
		t.Errorf("expected code lines, got %q", got)
	}

	quote, ok := doc.Blocks[1].(*model.Quote)
	if !ok {
		t.Fatalf("expected quote, got %T", doc.Blocks[1])
	}
	if got := paragraphText(mustParagraph(t, quote.Blocks[0])); got != "quoted" {
		t.Errorf("expected %q, got %q", "quoted", got)
	}

	if _, ok := doc.Blocks[2].(*model.Divider); !ok {
		t.Errorf("expected divider, got %T", doc.Blocks[2])
	}
}

func TestMarkdownParser_Table(t *testing.T) {
	input := "| a | b |\n|:--|--:|\n| 1 | 2 |\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "table.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, ok := doc.Blocks[0].(*model.Table)
	if !ok {
		t.Fatalf("expected table, got %T", doc.Blocks[0])
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	head := table.Rows[0].Cells
	if !head[0].IsHeader || !head[1].IsHeader {
		t.Error("expected header cells")
	}
	if got := head[0].Format[model.KeyTextAlign]; got != "start" {
		t.Errorf("expected start alignment, got %q", got)
	}
	if got := table.Rows[1].Cells[1].Format[model.KeyTextAlign]; got != "end" {
		t.Errorf("expected end alignment, got %q", got)
	}
	if table.Rows[1].Cells[0].IsHeader {
		t.Error("expected body cell")
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(doc.Blocks))
	}
}
