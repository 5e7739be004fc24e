package painter

import (
	"image/color"
	"strconv"
	"strings"
)

// ColorResolver turns a CSS color string into a drawable color. Resolving
// is the resolver's concern entirely, including any caching.
type ColorResolver interface {
	Resolve(spec string) (color.Color, bool)
}

// colorCache is the default ColorResolver: named colors, #rgb/#rrggbb hex
// and rgb(r,g,b) notation, with one parse per distinct string.
type colorCache struct {
	cache map[string]color.Color
}

// NewColorCache returns the default caching color resolver.
func NewColorCache() ColorResolver {
	return &colorCache{cache: make(map[string]color.Color)}
}

var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"pink":    {255, 192, 203, 255},
	"brown":   {165, 42, 42, 255},
	"lime":    {0, 255, 0, 255},
	"navy":    {0, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"maroon":  {128, 0, 0, 255},
	"olive":   {128, 128, 0, 255},
	"silver":  {192, 192, 192, 255},
}

func (c *colorCache) Resolve(spec string) (color.Color, bool) {
	key := strings.ToLower(strings.TrimSpace(spec))
	if cached, ok := c.cache[key]; ok {
		return cached, true
	}
	parsed, ok := parseColor(key)
	if !ok {
		return nil, false
	}
	c.cache[key] = parsed
	return parsed, true
}

func parseColor(spec string) (color.Color, bool) {
	if named, ok := namedColors[spec]; ok {
		return named, true
	}
	if strings.HasPrefix(spec, "#") {
		return parseHexColor(spec[1:])
	}
	if strings.HasPrefix(spec, "rgb(") && strings.HasSuffix(spec, ")") {
		return parseRGBColor(spec[4 : len(spec)-1])
	}
	return nil, false
}

func parseHexColor(hex string) (color.Color, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return nil, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.RGBA{uint8(n >> 16), uint8(n >> 8), uint8(n), 255}, true
}

func parseRGBColor(args string) (color.Color, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, false
	}
	var channels [3]uint8
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return nil, false
		}
		channels[i] = uint8(n)
	}
	return color.RGBA{channels[0], channels[1], channels[2], 255}, true
}
