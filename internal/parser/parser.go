// Package parser imports documents of several formats into content models.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/normalize"
)

// Parser converts raw document bytes into a content model.
type Parser interface {
	Parse(r io.Reader, filename string) (*model.Document, error)
}

// Options tune Import.
type Options struct {
	// DefaultFormat becomes the document's default segment format.
	DefaultFormat     model.Format
	FallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Import parses r with the parser for filename and returns a normalized
// document.
func Import(r io.Reader, filename string, opts Options) (*model.Document, error) {
	p, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*PDFParser); ok {
		pdf.FallbackPdftotext = opts.FallbackPdftotext
	}

	doc, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}
	if len(doc.Format) == 0 && len(opts.DefaultFormat) > 0 {
		doc.Format = opts.DefaultFormat.Clone()
	}
	normalize.NormalizeContentModel(doc)
	return doc, nil
}
