package painter

import (
	"image"
	"image/color"
	"unicode/utf8"
)

// fakeSurface is a Surface with fixed metrics: every rune is charWidth
// wide, every font charHeight tall. It records draw calls so tests can
// assert layout decisions without a real rasterizer.
const (
	charWidth  = 10
	charHeight = 16
	charAscent = 12
)

type drawnText struct {
	text       string
	x, y       int
	font       FontData
	foreground color.Color
	background color.Color
	opaque     bool
}

type drawnLine struct {
	x1, y1, x2, y2 int
}

type fakeSurface struct {
	font       FontData
	foreground color.Color
	background color.Color

	texts []drawnText
	lines []drawnLine
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		font:       FontData{Family: "test", Size: 12},
		foreground: color.Black,
		background: color.White,
	}
}

func (f *fakeSurface) TextExtent(s string) image.Point {
	return image.Pt(utf8.RuneCountInString(s)*charWidth, charHeight)
}

func (f *fakeSurface) Ascent() int     { return charAscent }
func (f *fakeSurface) FontHeight() int { return charHeight }

func (f *fakeSurface) Font() FontData     { return f.font }
func (f *fakeSurface) SetFont(d FontData) { f.font = d }

func (f *fakeSurface) Foreground() color.Color     { return f.foreground }
func (f *fakeSurface) SetForeground(c color.Color) { f.foreground = c }
func (f *fakeSurface) Background() color.Color     { return f.background }
func (f *fakeSurface) SetBackground(c color.Color) { f.background = c }

func (f *fakeSurface) DrawText(s string, x, y int, drawBackground bool) {
	f.texts = append(f.texts, drawnText{
		text:       s,
		x:          x,
		y:          y,
		font:       f.font,
		foreground: f.foreground,
		background: f.background,
		opaque:     drawBackground,
	})
}

func (f *fakeSurface) DrawLine(x1, y1, x2, y2 int) {
	f.lines = append(f.lines, drawnLine{x1, y1, x2, y2})
}

func (f *fakeSurface) ResetAntialias() {}

func (f *fakeSurface) DPI() int { return 96 }

func (f *fakeSurface) drawnStrings() []string {
	var out []string
	for _, t := range f.texts {
		out = append(out, t.text)
	}
	return out
}
