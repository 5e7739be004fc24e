// Command richtextview shows a rendered rich text fragment in a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"richtext/pkg/painter"
	"richtext/pkg/render"
)

var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

func findDefaultFont() string {
	for _, path := range defaultFontPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func main() {
	width := flag.Int("w", 800, "canvas width in pixels")
	height := flag.Int("h", 600, "canvas height in pixels")
	wrap := flag.Bool("wrap", true, "enable word wrapping")
	fontPath := flag.String("font", findDefaultFont(), "regular font file (TTF)")
	boldPath := flag.String("bold", "", "bold font file (TTF)")
	italicPath := flag.String("italic", "", "italic font file (TTF)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: richtextview [flags] <input.html>")
		os.Exit(1)
	}
	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no font found, pass one with -font")
		os.Exit(1)
	}

	html, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	surface, err := render.NewImageSurface(*width, *height, "default", render.FontFiles{
		Regular: *fontPath,
		Bold:    *boldPath,
		Italic:  *italicPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := painter.New(*wrap)
	if err := p.PaintHTML(string(html), surface, image.Rect(0, 0, *width, *height)); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	size := p.PreferredSize()

	a := app.New()
	w := a.NewWindow("richtext viewer")
	w.Resize(fyne.NewSize(float32(*width), float32(*height)))

	img := canvas.NewImageFromImage(surface.Image())
	img.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel(fmt.Sprintf("%s (preferred size %dx%d)", flag.Arg(0), size.X, size.Y))

	w.SetContent(container.NewBorder(nil, status, nil, nil, container.NewScroll(img)))
	w.ShowAndRun()
}
