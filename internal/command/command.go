// Package command exposes the edit operations by name, with JSON arguments,
// for the HTTP API and the CLI.
package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dgallion1/contentmodel/internal/edit"
	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/normalize"
)

// ErrUnknownCommand is returned by Lookup for names not in the registry.
var ErrUnknownCommand = errors.New("unknown command")

// Mutator changes a document and reports whether it did.
type Mutator func(doc *model.Document) bool

// Command is a named edit operation.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	bind func(args json.RawMessage) (Mutator, error)
}

// Bind decodes args and returns the mutator they select. Empty args decode
// to the zero value.
func (c Command) Bind(args json.RawMessage) (Mutator, error) {
	m, err := c.bind(args)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", c.Name, err)
	}
	return m, nil
}

// Lookup returns the command registered under name.
func Lookup(name string) (Command, error) {
	c, ok := registry[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return c, nil
}

// Names lists the registered command names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every command sorted by name.
func All() []Command {
	out := make([]Command, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

func decode[T any](args json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		return v, nil
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode args: %w", err)
	}
	return v, nil
}

// noArgs registers an operation that takes no arguments.
func noArgs(fn func(*model.Document) bool) func(json.RawMessage) (Mutator, error) {
	return func(args json.RawMessage) (Mutator, error) {
		if _, err := decode[struct{}](args); err != nil {
			return nil, err
		}
		return fn, nil
	}
}

// withArgs registers an operation whose arguments decode into T.
func withArgs[T any](validate func(T) error, fn func(*model.Document, T) bool) func(json.RawMessage) (Mutator, error) {
	return func(args json.RawMessage) (Mutator, error) {
		v, err := decode[T](args)
		if err != nil {
			return nil, err
		}
		if validate != nil {
			if err := validate(v); err != nil {
				return nil, err
			}
		}
		return func(doc *model.Document) bool { return fn(doc, v) }, nil
	}
}

type listTypeArgs struct {
	ListType model.ListType `json:"listType"`
}

type startNumberArgs struct {
	Value int `json:"value"`
}

type alignmentArgs struct {
	Alignment edit.Alignment `json:"alignment"`
}

type directionArgs struct {
	Direction edit.Direction `json:"direction"`
}

type quoteArgs struct {
	Format        model.Format `json:"format,omitempty"`
	SegmentFormat model.Format `json:"segmentFormat,omitempty"`
}

type clearArgs struct {
	SegmentFormat model.Format `json:"segmentFormat,omitempty"`
}

type valueArgs struct {
	Value string `json:"value"`
}

type headingArgs struct {
	Level int `json:"level"`
}

func requireValue(a valueArgs) error {
	if a.Value == "" {
		return errors.New("value is required")
	}
	return nil
}

var registry = map[string]Command{}

func register(name, description string, bind func(json.RawMessage) (Mutator, error)) {
	registry[name] = Command{Name: name, Description: description, bind: bind}
}

func init() {
	register("indent", "Nest selected list items or wrap blocks in a quote",
		noArgs(edit.Indent))
	register("outdent", "Un-nest selected list items or lift blocks out of a quote",
		noArgs(edit.Outdent))
	register("setListType", "Toggle the selection into an OL or UL list",
		withArgs(func(a listTypeArgs) error {
			if a.ListType != model.ListOrdered && a.ListType != model.ListUnordered {
				return fmt.Errorf("listType must be %q or %q", model.ListOrdered, model.ListUnordered)
			}
			return nil
		}, func(doc *model.Document, a listTypeArgs) bool { return edit.SetListType(doc, a.ListType) }))
	register("setListStartNumber", "Set the start number of the selected list item",
		withArgs(func(a startNumberArgs) error {
			if a.Value < 0 {
				return errors.New("value must not be negative")
			}
			return nil
		}, func(doc *model.Document, a startNumberArgs) bool { return edit.SetListStartNumber(doc, a.Value) }))
	register("setListStyle", "Set the list-style-type of the selected list thread",
		withArgs(nil, edit.SetListStyle))
	register("setAlignment", "Align the selected blocks",
		withArgs(nil, func(doc *model.Document, a alignmentArgs) bool { return edit.SetModelAlignment(doc, a.Alignment) }))
	register("setDirection", "Set the text direction of the selected blocks",
		withArgs(nil, func(doc *model.Document, a directionArgs) bool { return edit.SetModelDirection(doc, a.Direction) }))
	register("toggleBlockQuote", "Wrap the selection in a quote, or unwrap it",
		withArgs(nil, func(doc *model.Document, a quoteArgs) bool {
			return edit.ToggleModelBlockQuote(doc, a.Format, a.SegmentFormat)
		}))
	register("clearFormat", "Remove formatting from the selection",
		withArgs(nil, func(doc *model.Document, a clearArgs) bool { return edit.ClearModelFormat(doc, a.SegmentFormat) }))
	register("insertLink", "Link the selection, or insert linked text at the caret",
		withArgs(func(a edit.LinkOptions) error {
			if a.URL == "" {
				return errors.New("url is required")
			}
			return nil
		}, edit.InsertLink))
	register("removeLink", "Remove links from the selection",
		noArgs(edit.RemoveLink))
	register("toggleBold", "Toggle bold", noArgs(edit.ToggleBold))
	register("toggleItalic", "Toggle italic", noArgs(edit.ToggleItalic))
	register("toggleUnderline", "Toggle underline", noArgs(edit.ToggleUnderline))
	register("toggleStrikethrough", "Toggle strikethrough", noArgs(edit.ToggleStrikethrough))
	register("setTextColor", "Set the text color; an empty value removes it",
		withArgs(nil, func(doc *model.Document, a valueArgs) bool { return edit.SetTextColor(doc, a.Value) }))
	register("setFontSize", "Set the font size",
		withArgs(requireValue, func(doc *model.Document, a valueArgs) bool { return edit.SetFontSize(doc, a.Value) }))
	register("setFontFamily", "Set the font family",
		withArgs(requireValue, func(doc *model.Document, a valueArgs) bool { return edit.SetFontFamily(doc, a.Value) }))
	register("setHeadingLevel", "Make the selected paragraphs headings; level 0 removes the heading",
		withArgs(func(a headingArgs) error {
			if a.Level < 0 || a.Level > 6 {
				return errors.New("level must be between 0 and 6")
			}
			return nil
		}, func(doc *model.Document, a headingArgs) bool { return edit.SetHeadingLevel(doc, a.Level) }))
	register("normalize", "Normalize the document",
		noArgs(func(doc *model.Document) bool {
			normalize.NormalizeContentModel(doc)
			return true
		}))
}
