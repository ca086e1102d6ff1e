package render

import (
	"strings"

	"github.com/dgallion1/contentmodel/internal/model"
)

// cssProp maps a format key onto a CSS property.
type cssProp struct {
	key  string
	name string
}

var blockProps = []cssProp{
	{model.KeyDirection, "direction"},
	{model.KeyTextAlign, "text-align"},
	{model.KeyMarginTop, "margin-top"},
	{model.KeyMarginRight, "margin-right"},
	{model.KeyMarginBottom, "margin-bottom"},
	{model.KeyMarginLeft, "margin-left"},
	{model.KeyPaddingLeft, "padding-left"},
	{model.KeyPaddingRight, "padding-right"},
	{model.KeyBorderLeft, "border-left"},
	{model.KeyLineHeight, "line-height"},
	{model.KeyWhiteSpace, "white-space"},
	{model.KeyBackgroundColor, "background-color"},
}

var segmentProps = []cssProp{
	{model.KeyFontFamily, "font-family"},
	{model.KeyFontSize, "font-size"},
	{model.KeyFontWeight, "font-weight"},
	{model.KeyTextColor, "color"},
	{model.KeyBackgroundColor, "background-color"},
}

var listProps = []cssProp{
	{model.KeyDirection, "direction"},
	{model.KeyTextAlign, "text-align"},
	{model.KeyListStyleType, "list-style-type"},
	{model.KeyMarginBlockStart, "margin-block-start"},
	{model.KeyMarginBlockEnd, "margin-block-end"},
	{model.KeyMarginLeft, "margin-left"},
	{model.KeyMarginRight, "margin-right"},
	{model.KeyPaddingLeft, "padding-left"},
	{model.KeyPaddingRight, "padding-right"},
}

var tableProps = append(append([]cssProp{}, blockProps...), cssProp{model.KeyFontWeight, "font-weight"})

// declarations renders the properties of f found in props as an inline style.
// Boolean format keys become their CSS equivalents.
func declarations(f model.Format, props []cssProp) string {
	if len(f) == 0 {
		return ""
	}
	var decls []string
	for _, p := range props {
		if v := f[p.key]; v != "" {
			decls = append(decls, p.name+": "+v)
		}
	}

	if f[model.KeyItalic] == "true" {
		decls = append(decls, "font-style: italic")
	}
	var deco []string
	if f[model.KeyUnderline] == "true" {
		deco = append(deco, "underline")
	}
	if f[model.KeyStrikethrough] == "true" {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		decls = append(decls, "text-decoration: "+strings.Join(deco, " "))
	}
	if f[model.KeyBorderCollapse] == "true" {
		decls = append(decls, "border-collapse: collapse")
	}
	if f[model.KeyUseBorderBox] == "true" {
		decls = append(decls, "box-sizing: border-box")
	}
	return strings.Join(decls, "; ")
}

func joinDecl(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
