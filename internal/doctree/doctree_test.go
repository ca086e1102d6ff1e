package doctree

import (
	"strings"
	"testing"

	"github.com/dgallion1/contentmodel/internal/model"
)

func heading(level int, text string) *model.Paragraph {
	p := model.NewParagraph(false, nil, nil, model.NewHeadingDecorator(level))
	p.Segments = append(p.Segments, model.NewText(text, nil, nil, nil))
	return p
}

func para(text string) *model.Paragraph {
	p := model.NewParagraph(false, nil, nil, nil)
	p.Segments = append(p.Segments, model.NewText(text, nil, nil, nil))
	return p
}

func TestBuild_NestsHeadings(t *testing.T) {
	doc := model.NewDocument(nil)
	for _, b := range []model.Block{
		para("intro words here"),
		heading(1, "Results"),
		para("one two"),
		heading(2, "Revenue"),
		para("three"),
		heading(3, "Q4"),
		heading(2, "Costs"),
		heading(1, "Outlook"),
		para("four five six seven"),
	} {
		model.AddBlock(doc, b)
	}

	tree := Build(doc)

	if tree.IntroWords != 3 {
		t.Errorf("intro words = %d, want 3", tree.IntroWords)
	}
	// 3 intro + 10 heading + 7 body
	if tree.Words != 18 {
		t.Errorf("words = %d, want 18", tree.Words)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(tree.Children))
	}

	results := tree.Children[0]
	if results.Title != "Results" || results.Words != 2 {
		t.Errorf("unexpected first section: %+v", results)
	}
	if len(results.Children) != 2 {
		t.Fatalf("expected 2 subsections, got %d", len(results.Children))
	}
	revenue := results.Children[0]
	if revenue.Words != 1 || len(revenue.Children) != 1 {
		t.Errorf("unexpected revenue section: %+v", revenue)
	}
	q4 := revenue.Children[0]
	if got := strings.Join(q4.Breadcrumb, " > "); got != "Results > Revenue > Q4" {
		t.Errorf("breadcrumb = %q", got)
	}
	if results.Children[1].Title != "Costs" {
		t.Errorf("expected Costs, got %q", results.Children[1].Title)
	}
	if tree.Children[1].Words != 4 {
		t.Errorf("outlook words = %d, want 4", tree.Children[1].Words)
	}
}

func TestBuild_SkippedLevels(t *testing.T) {
	doc := model.NewDocument(nil)
	model.AddBlock(doc, heading(3, "Deep"))
	model.AddBlock(doc, heading(1, "Top"))

	tree := Build(doc)
	if len(tree.Children) != 2 {
		t.Fatalf("expected both headings at top level, got %d", len(tree.Children))
	}
	if tree.Children[0].Level != 3 || tree.Children[1].Level != 1 {
		t.Errorf("unexpected levels %d, %d", tree.Children[0].Level, tree.Children[1].Level)
	}
}

func TestBuild_WalksNestedGroups(t *testing.T) {
	doc := model.NewDocument(nil)
	model.AddBlock(doc, heading(1, "Title"))

	quote := model.NewQuote(nil, nil)
	model.AddBlock(quote, para("quoted text"))
	model.AddBlock(doc, quote)

	table := model.NewTable(1, nil)
	cell := model.NewTableCell(false, false, false, nil)
	model.AddBlock(cell, para("cell"))
	table.Rows[0].Cells = append(table.Rows[0].Cells, cell)
	model.AddBlock(doc, table)

	tree := Build(doc)
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 section, got %d", len(tree.Children))
	}
	if tree.Children[0].Words != 3 {
		t.Errorf("words = %d, want 3", tree.Children[0].Words)
	}
}

func TestParagraphText_BrIsSpace(t *testing.T) {
	p := para("a")
	p.Segments = append(p.Segments, model.NewBr(nil), model.NewText("b", nil, nil, nil), model.NewImage("x.png", nil))
	if got := ParagraphText(p); got != "a b" {
		t.Errorf("got %q", got)
	}
}

func TestBuild_Empty(t *testing.T) {
	tree := Build(model.NewDocument(nil))
	if tree.Words != 0 || len(tree.Children) != 0 {
		t.Errorf("expected empty outline, got %+v", tree)
	}
}
