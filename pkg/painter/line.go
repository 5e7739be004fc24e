package painter

import "image"

// Line is one visual row: an ordered sequence of paint instructions plus
// the widths and height accumulated while the engine built it. Lines are
// created by the layout engine and read-only once the render pass runs.
type Line struct {
	instructions []Instruction

	contentWidth        int
	trimmedContentWidth int
	lineHeight          int
}

func (l *Line) add(instruction Instruction) {
	l.instructions = append(l.instructions, instruction)
}

// ContentWidth is the width of the line's text including trailing
// whitespace.
func (l *Line) ContentWidth() int { return l.contentWidth }

// TrimmedContentWidth is the width of the line's text excluding trailing
// whitespace; wrap decisions and alignment use this value.
func (l *Line) TrimmedContentWidth() int { return l.trimmedContentWidth }

// LineHeight is the tallest font extent seen on the line.
func (l *Line) LineHeight() int { return l.lineHeight }

func (l *Line) increaseContentWidth(w int)        { l.contentWidth += w }
func (l *Line) increaseTrimmedContentWidth(w int) { l.trimmedContentWidth += w }

func (l *Line) updateLineHeight(h int) {
	if h > l.lineHeight {
		l.lineHeight = h
	}
}

// Paint executes the line's instructions in order.
func (l *Line) Paint(s Surface, area image.Rectangle) {
	for _, instruction := range l.instructions {
		instruction.Paint(s, area)
	}
}
