// Package style resolves the inline style attributes of the supported
// markup subset: span-level styling (color, background-color, font-size,
// font-family) and paragraph-level alignment (text-align, margin-left).
package style

import (
	"log"
	"strconv"
	"strings"
)

// Style property names recognized on span and paragraph/list tags.
const (
	PropertyColor           = "color"
	PropertyBackgroundColor = "background-color"
	PropertyFontSize        = "font-size"
	PropertyFontFamily      = "font-family"
	PropertyMarginLeft      = "margin-left"
	PropertyTextAlign       = "text-align"
)

type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignRight
	AlignCenter
)

func (a TextAlignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	}
	return "left"
}

// AlignmentStyle is the paragraph-scope styling derived from a style
// attribute: horizontal alignment and a left margin in pixels.
type AlignmentStyle struct {
	Alignment  TextAlignment
	MarginLeft int
}

// ParseProperties splits a style attribute ("key: value; key: value") into
// a map of trimmed keys and values. The last occurrence of a duplicate key
// wins; entries without a colon are skipped.
func ParseProperties(styleAttr string) map[string]string {
	properties := make(map[string]string)
	for _, entry := range strings.Split(styleAttr, ";") {
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		properties[key] = strings.TrimSpace(value)
	}
	return properties
}

// ParsePixels parses a pixel length value (e.g. "100px" or "100").
func ParsePixels(value string) (int, bool) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseTextAlignment parses a text-align value, case-insensitively.
func ParseTextAlignment(value string) (TextAlignment, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center":
		return AlignCenter, true
	}
	return AlignLeft, false
}

// ResolveAlignment derives the paragraph alignment and left margin from a
// style attribute. Malformed values are logged and skipped, leaving the
// defaults (left, 0) in place.
func ResolveAlignment(styleAttr string) AlignmentStyle {
	result := AlignmentStyle{Alignment: AlignLeft}
	if styleAttr == "" {
		return result
	}
	for key, value := range ParseProperties(styleAttr) {
		switch key {
		case PropertyMarginLeft:
			if px, ok := ParsePixels(value); ok {
				result.MarginLeft = px
			} else {
				log.Printf("style: ignoring invalid margin-left %q", value)
			}
		case PropertyTextAlign:
			if alignment, ok := ParseTextAlignment(value); ok {
				result.Alignment = alignment
			} else {
				log.Printf("style: ignoring invalid text-align %q", value)
			}
		}
	}
	return result
}

// FontFamily returns the usable family name from a font-family value: the
// first comma-separated entry, unquoted. Fallback fonts are discarded.
func FontFamily(value string) string {
	family, _, _ := strings.Cut(value, ",")
	return strings.Trim(strings.TrimSpace(family), "'\"")
}
