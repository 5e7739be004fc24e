// Package render provides a painter.Surface drawing into an in-memory
// image through a gg context, with truetype font loading and face caching.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"richtext/pkg/painter"
)

// FontFiles holds the font file paths for one family. Missing styles fall
// back along bold-italic -> bold/italic -> regular.
type FontFiles struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// Path returns the file for the given style combination.
func (ff FontFiles) Path(bold, italic bool) string {
	if bold && italic && ff.BoldItalic != "" {
		return ff.BoldItalic
	}
	if bold && ff.Bold != "" {
		return ff.Bold
	}
	if italic && ff.Italic != "" {
		return ff.Italic
	}
	return ff.Regular
}

type faceKey struct {
	path string
	size int
}

// ImageSurface implements painter.Surface over a gg drawing context.
// Fonts are parsed once per file and faces cached per size. Not safe for
// concurrent use.
type ImageSurface struct {
	ctx *gg.Context
	dpi int

	defaultFamily string
	families      map[string]FontFiles
	parsed        map[string]*truetype.Font
	faces         map[faceKey]font.Face

	fontData painter.FontData
	metrics  font.Metrics

	foreground color.Color
	background color.Color
}

const defaultFontSize = 12

// NewImageSurface creates a white surface of the given pixel size using the
// given font family as the default. The regular face is loaded eagerly so
// font problems surface here instead of mid-paint.
func NewImageSurface(width, height int, family string, files FontFiles) (*ImageSurface, error) {
	ctx := gg.NewContext(width, height)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()

	s := &ImageSurface{
		ctx:           ctx,
		dpi:           72,
		defaultFamily: strings.ToLower(family),
		families:      map[string]FontFiles{strings.ToLower(family): files},
		parsed:        make(map[string]*truetype.Font),
		faces:         make(map[faceKey]font.Face),
		foreground:    color.Black,
		background:    color.White,
	}
	face, err := s.face(files.Regular, defaultFontSize)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", files.Regular, err)
	}
	s.apply(face, painter.FontData{Family: family, Size: defaultFontSize})
	return s, nil
}

// RegisterFamily makes a font family resolvable by name. Unregistered
// families fall back to the default family.
func (s *ImageSurface) RegisterFamily(name string, files FontFiles) {
	s.families[strings.ToLower(name)] = files
}

// SetDPI sets the resolution used both for face sizing and for the pixel to
// point conversion of font-size styles. The default is 72, mapping HTML
// pixel sizes 1:1 onto point sizes.
func (s *ImageSurface) SetDPI(dpi int) {
	s.dpi = dpi
	s.SetFont(s.fontData)
}

// Image returns the backing image.
func (s *ImageSurface) Image() image.Image { return s.ctx.Image() }

func (s *ImageSurface) DPI() int { return s.dpi }

func (s *ImageSurface) Font() painter.FontData { return s.fontData }

// SetFont switches the active face. An unloadable font is logged and the
// previous face kept, so a bad font-family style does not abort painting.
func (s *ImageSurface) SetFont(f painter.FontData) {
	files, ok := s.families[strings.ToLower(f.Family)]
	if !ok {
		files = s.families[s.defaultFamily]
	}
	size := f.Size
	if size <= 0 {
		size = defaultFontSize
	}
	face, err := s.face(files.Path(f.Bold, f.Italic), size)
	if err != nil {
		log.Printf("render: keeping current font: %v", err)
		s.fontData = f
		return
	}
	s.apply(face, f)
}

func (s *ImageSurface) apply(face font.Face, f painter.FontData) {
	s.ctx.SetFontFace(face)
	s.metrics = face.Metrics()
	s.fontData = f
}

func (s *ImageSurface) face(path string, size int) (font.Face, error) {
	key := faceKey{path: path, size: size}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}
	parsed, ok := s.parsed[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		parsed, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		s.parsed[path] = parsed
	}
	face := truetype.NewFace(parsed, &truetype.Options{
		Size: float64(size),
		DPI:  float64(s.dpi),
	})
	s.faces[key] = face
	return face, nil
}

func (s *ImageSurface) Ascent() int { return s.metrics.Ascent.Ceil() }

func (s *ImageSurface) FontHeight() int {
	return (s.metrics.Ascent + s.metrics.Descent).Ceil()
}

func (s *ImageSurface) TextExtent(text string) image.Point {
	width, _ := s.ctx.MeasureString(text)
	return image.Pt(int(math.Ceil(width)), s.FontHeight())
}

func (s *ImageSurface) Foreground() color.Color { return s.foreground }

func (s *ImageSurface) SetForeground(c color.Color) { s.foreground = c }

func (s *ImageSurface) Background() color.Color { return s.background }

func (s *ImageSurface) SetBackground(c color.Color) { s.background = c }

// DrawText draws text with its top-left corner at (x, y). With
// drawBackground set the text's box is filled with the background color
// first.
func (s *ImageSurface) DrawText(text string, x, y int, drawBackground bool) {
	if drawBackground {
		width, _ := s.ctx.MeasureString(text)
		s.ctx.SetColor(s.background)
		s.ctx.DrawRectangle(float64(x), float64(y), width, float64(s.FontHeight()))
		s.ctx.Fill()
	}
	s.ctx.SetColor(s.foreground)
	s.ctx.DrawString(text, float64(x), float64(y+s.Ascent()))
}

func (s *ImageSurface) DrawLine(x1, y1, x2, y2 int) {
	s.ctx.SetColor(s.foreground)
	s.ctx.SetLineWidth(1)
	s.ctx.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	s.ctx.Stroke()
}

// ResetAntialias restores default antialiasing. gg rasterizes antialiased
// unconditionally, so there is nothing to restore.
func (s *ImageSurface) ResetAntialias() {}
