// Command richtext renders a rich text HTML fragment to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

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
	output := flag.String("o", "output.png", "output PNG file path")
	wrap := flag.Bool("wrap", true, "enable word wrapping")
	space := flag.Int("space", 5, "paragraph spacing in pixels")
	fontPath := flag.String("font", findDefaultFont(), "regular font file (TTF)")
	boldPath := flag.String("bold", "", "bold font file (TTF)")
	italicPath := flag.String("italic", "", "italic font file (TTF)")
	boldItalicPath := flag.String("bolditalic", "", "bold italic font file (TTF)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: richtext [flags] <input.html>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
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
		Regular:    *fontPath,
		Bold:       *boldPath,
		Italic:     *italicPath,
		BoldItalic: *boldItalicPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := painter.New(*wrap)
	p.SetParagraphSpace(*space)

	bounds := image.Rect(0, 0, *width, *height)
	fmt.Fprintf(os.Stderr, "Rendering %dx%d...\n", *width, *height)
	if err := p.PaintHTML(string(html), surface, bounds); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	size := p.PreferredSize()
	fmt.Fprintf(os.Stderr, "Preferred size: %dx%d\n", size.X, size.Y)

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, surface.Image()); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)
}
