package painter

import (
	"image"
	"image/color"
)

// FontData describes the font the surface should use for subsequent
// measurement and drawing. Size is in points.
type FontData struct {
	Family string
	Size   int
	Bold   bool
	Italic bool
}

// Surface is the drawing and font-metrics capability the painter operates
// on. Implementations own the current font and colors the way an
// immediate-mode graphics context does; the painter mutates them through
// instructions and relies on well-formed markup to restore them.
//
// Measure-only passes still call every method except the Draw* ones.
type Surface interface {
	// TextExtent returns the advance width and line height (ascent plus
	// descent) of s in the current font.
	TextExtent(s string) image.Point
	// Ascent returns the baseline offset of the current font.
	Ascent() int
	// FontHeight returns ascent plus descent of the current font.
	FontHeight() int

	Font() FontData
	SetFont(f FontData)

	Foreground() color.Color
	SetForeground(c color.Color)
	Background() color.Color
	SetBackground(c color.Color)

	// DrawText draws s with its top-left corner at (x, y), filling the
	// text's bounding box with the background color first when
	// drawBackground is set.
	DrawText(s string, x, y int, drawBackground bool)
	DrawLine(x1, y1, x2, y2 int)

	// ResetAntialias restores the surface's default antialiasing setting.
	ResetAntialias()

	// DPI reports the horizontal resolution used to convert pixel font
	// sizes to point sizes.
	DPI() int
}
