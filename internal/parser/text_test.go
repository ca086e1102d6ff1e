package parser

import (
	"strings"
	"testing"
)

func TestTextParser_Paragraphs(t *testing.T) {
	input := "Line one\nline two\n\n\nSecond paragraph.\n"

	doc, err := Import(strings.NewReader(input), "notes.txt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Blocks))
	}

	first := mustParagraph(t, doc.Blocks[0])
	if first.IsImplicit {
		t.Error("expected explicit paragraph")
	}
	if got := paragraphText(first); got != "Line one\nline two" {
		t.Errorf("expected %q, got %q", "Line one\nline two", got)
	}
	if got := paragraphText(mustParagraph(t, doc.Blocks[1])); got != "Second paragraph." {
		t.Errorf("expected %q, got %q", "Second paragraph.", got)
	}
}

func TestTextParser_CRLF(t *testing.T) {
	doc, err := Import(strings.NewReader("a\r\nb\r\n\r\nc"), "win.txt", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Blocks))
	}
	if got := paragraphText(mustParagraph(t, doc.Blocks[0])); got != "a\nb" {
		t.Errorf("expected %q, got %q", "a\nb", got)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("\n\n  \n"), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks for blank input, got %d", len(doc.Blocks))
	}
}
