package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/contentmodel/internal/command"
	"github.com/dgallion1/contentmodel/internal/model"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func selectedModel(t *testing.T) string {
	t.Helper()
	doc := model.NewDocument(nil)
	p := model.NewParagraph(false, nil, nil, nil)
	txt := model.NewText("hello", nil, nil, nil)
	txt.IsSelected = true
	p.Segments = append(p.Segments, txt)
	model.AddBlock(doc, p)
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

func TestCommands(t *testing.T) {
	out, err := run(t, "", "commands")
	require.NoError(t, err)
	assert.Contains(t, out, "indent")
	assert.Contains(t, out, "toggleBlockQuote")
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody\n"), 0o600))

	out, err := run(t, "", "import", path)
	require.NoError(t, err)

	doc, err := model.DecodeDocument([]byte(out))
	require.NoError(t, err)
	assert.Len(t, doc.Blocks, 2)
}

func TestApply_Stdin(t *testing.T) {
	out, err := run(t, selectedModel(t), "apply", "toggleBold")
	require.NoError(t, err)
	assert.Contains(t, out, `"fontWeight": "bold"`)
}

func TestApply_YAMLArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(selectedModel(t)), 0o600))

	out, err := run(t, "", "apply", "setListType", "--model", path, "--args", "listType: OL")
	require.NoError(t, err)

	doc, err := model.DecodeDocument([]byte(out))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	item, ok := doc.Blocks[0].(*model.ListItem)
	require.True(t, ok)
	assert.Equal(t, model.ListOrdered, item.LastLevel().ListType)
}

func TestApply_Errors(t *testing.T) {
	_, err := run(t, selectedModel(t), "apply", "explode")
	assert.True(t, errors.Is(err, command.ErrUnknownCommand))

	_, err = run(t, selectedModel(t), "apply", "setListType", "--args", `{"listType": "XX"}`)
	assert.Error(t, err)

	_, err = run(t, "not json", "apply", "indent")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out, err := run(t, selectedModel(t), "render")
	require.NoError(t, err)
	assert.Equal(t, "<div>hello</div>\n", out)
}

func TestArgsJSON(t *testing.T) {
	raw, err := argsJSON("value: 3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":3}`, string(raw))

	raw, err = argsJSON("")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestOutline(t *testing.T) {
	doc := model.NewDocument(nil)
	for _, h := range []struct {
		level int
		text  string
	}{{1, "Intro"}, {2, "Details"}} {
		p := model.NewParagraph(false, nil, nil, model.NewHeadingDecorator(h.level))
		p.Segments = append(p.Segments, model.NewText(h.text, nil, nil, nil))
		model.AddBlock(doc, p)
	}
	body := model.NewParagraph(false, nil, nil, nil)
	body.Segments = append(body.Segments, model.NewText("some body text", nil, nil, nil))
	model.AddBlock(doc, body)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	out, err := run(t, string(data), "outline")
	require.NoError(t, err)
	assert.Equal(t, "h1 Intro (0)\n  h2 Details (3)\n5 words\n", out)
}
