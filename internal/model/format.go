package model

// Format is a bag of CSS-like properties. A missing key means the property
// is inherited.
type Format map[string]string

// Well-known format keys.
const (
	// Block format.
	KeyTextAlign    = "textAlign"
	KeyDirection    = "direction"
	KeyMarginLeft   = "marginLeft"
	KeyMarginRight  = "marginRight"
	KeyMarginTop    = "marginTop"
	KeyMarginBottom = "marginBottom"
	KeyPaddingLeft  = "paddingLeft"
	KeyPaddingRight = "paddingRight"
	KeyLineHeight   = "lineHeight"
	KeyWhiteSpace   = "whiteSpace"
	KeyBorderLeft   = "borderLeft"

	// Segment format.
	KeyFontFamily       = "fontFamily"
	KeyFontSize         = "fontSize"
	KeyFontWeight       = "fontWeight"
	KeyItalic           = "italic"
	KeyUnderline        = "underline"
	KeyStrikethrough    = "strikethrough"
	KeyTextColor        = "textColor"
	KeyBackgroundColor  = "backgroundColor"
	KeySuperOrSubScript = "superOrSubScriptSequence"

	// Link format.
	KeyHref        = "href"
	KeyAnchorTitle = "anchorTitle"
	KeyTarget      = "target"

	// List format.
	KeyListStyleType    = "listStyleType"
	KeyMarginBlockStart = "marginBlockStart"
	KeyMarginBlockEnd   = "marginBlockEnd"

	// Table format.
	KeyBorderCollapse = "borderCollapse"
	KeyUseBorderBox   = "useBorderBox"
)

// Clone returns a copy that shares no storage with f. Cloning nil yields an
// empty, writable format.
func (f Format) Clone() Format {
	out := make(Format, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Get returns the value for key, or "" when unset.
func (f Format) Get(key string) string {
	return f[key]
}

// Has reports whether key is set.
func (f Format) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Set assigns key, allocating the map when needed.
func (f *Format) Set(key, value string) {
	if *f == nil {
		*f = Format{}
	}
	(*f)[key] = value
}

// Delete removes key.
func (f Format) Delete(key string) {
	delete(f, key)
}

// SameFormat reports whether two formats are structurally equal: identical key
// sets whose values compare equal, with nil and empty alike. It decides whether two
// adjacent wrapper nodes may be merged.
func SameFormat(a, b Format) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || va != vb {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to v. Handy for ListLevel.StartNumberOverride.
func Ptr[T any](v T) *T {
	return &v
}
