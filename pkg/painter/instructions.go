package painter

import (
	"image"
	"image/color"
	"strings"

	"richtext/pkg/style"
)

// textInstruction draws one run of text at the current pointer and advances
// it. Underline and strikethrough decoration is applied here, driven by the
// state flags; in measure-only mode only the pointer moves.
type textInstruction struct {
	state *State
	text  string
}

func newTextInstruction(state *State, text string) *textInstruction {
	return &textInstruction{state: state, text: text}
}

func (t *textInstruction) Text() string { return t.text }

// TextLength is the advance width of the run including trailing whitespace.
func (t *textInstruction) TextLength(s Surface) int {
	return s.TextExtent(t.text).X
}

// TrimmedTextLength is the advance width of the run with trailing
// whitespace removed.
func (t *textInstruction) TrimmedTextLength(s Surface) int {
	return s.TextExtent(rtrim(t.text)).X
}

func (t *textInstruction) Paint(s Surface, area image.Rectangle) {
	extent := s.TextExtent(t.text)
	st := t.state
	if st.rendering {
		s.DrawText(t.text, st.pointer.X, st.pointer.Y, st.backgroundActive())
		if st.underlineActive {
			y := st.pointer.Y + s.Ascent() + 1
			s.DrawLine(st.pointer.X, y, st.pointer.X+extent.X, y)
		}
		if st.strikethroughActive {
			y := st.pointer.Y + extent.Y/2
			s.DrawLine(st.pointer.X, y, st.pointer.X+extent.X, y)
		}
	}
	st.pointer.X += extent.X
}

// paragraphInstruction opens a paragraph: it activates the line the engine
// created, adds the paragraph spacing above it and installs the paragraph's
// alignment and left margin.
type paragraphInstruction struct {
	state     *State
	alignment style.AlignmentStyle
	space     int
}

func (p *paragraphInstruction) Paint(s Surface, area image.Rectangle) {
	st := p.state
	st.activateNextLine()
	st.increaseY(p.space)
	st.alignment = p.alignment.Alignment
	st.marginLeft = p.alignment.MarginLeft
	st.calculateX(area.Dx())
}

// resetParagraphInstruction closes a paragraph: it advances the vertical
// pointer past the last line plus the paragraph spacing, counts the
// paragraph and restores margin and alignment.
type resetParagraphInstruction struct {
	state *State
	space int
}

func (p *resetParagraphInstruction) Paint(s Surface, area image.Rectangle) {
	st := p.state
	st.increaseY(st.currentLineHeight)
	st.increaseY(p.space)
	st.currentLineHeight = 0
	st.increaseParagraphCount()
	st.marginLeft = 0
	st.alignment = style.AlignLeft
	st.resetX()
}

// newLineInstruction starts the next visual row.
type newLineInstruction struct {
	state *State
}

func (n *newLineInstruction) Paint(s Surface, area image.Rectangle) {
	n.state.activateNextLine()
	n.state.calculateX(area.Dx())
}

// implicitParagraphInstruction opens the line the engine creates when
// content appears with no enclosing block tag, so bare top-level text
// behaves like a paragraph.
type implicitParagraphInstruction struct {
	state *State
	space int
}

func (i *implicitParagraphInstruction) Paint(s Surface, area image.Rectangle) {
	i.state.activateNextLine()
	i.state.increaseY(i.space)
	i.state.increaseParagraphCount()
}

// boldInstruction and italicInstruction toggle the font style bits. They
// are idempotent: setting an already-set bit changes nothing, so no scope
// stack is needed.
type boldInstruction struct {
	state  *State
	active bool
}

func (b *boldInstruction) ApplyFont(s Surface) {
	f := s.Font()
	f.Bold = b.active
	s.SetFont(f)
}

func (b *boldInstruction) Paint(s Surface, area image.Rectangle) {
	b.ApplyFont(s)
	b.state.boldActive = b.active
}

type italicInstruction struct {
	state  *State
	active bool
}

func (i *italicInstruction) ApplyFont(s Surface) {
	f := s.Font()
	f.Italic = i.active
	s.SetFont(f)
}

func (i *italicInstruction) Paint(s Surface, area image.Rectangle) {
	i.ApplyFont(s)
	i.state.italicActive = i.active
}

// spanStyleInstruction applies the color/background/font overrides a span
// tag carries. The span element records what was set so the matching reset
// restores exactly those categories.
type spanStyleInstruction struct {
	state *State
	span  *spanElement

	foreground color.Color
	background color.Color
	fontFamily string
	fontSize   int
}

func (i *spanStyleInstruction) ApplyFont(s Surface) {
	if !i.span.font {
		return
	}
	f := s.Font()
	i.span.previousFont = f
	if i.fontFamily != "" {
		f.Family = i.fontFamily
	}
	if i.fontSize > 0 {
		f.Size = i.fontSize
	}
	s.SetFont(f)
}

func (i *spanStyleInstruction) Paint(s Surface, area image.Rectangle) {
	st := i.state
	if i.span.color {
		st.pushForeground(s.Foreground())
		s.SetForeground(i.foreground)
	}
	if i.span.backgroundColor {
		st.pushBackground(s.Background())
		s.SetBackground(i.background)
	}
	i.ApplyFont(s)
}

// resetSpanStyleInstruction undoes a spanStyleInstruction, parameterized by
// the span element so only the categories that span set are restored.
type resetSpanStyleInstruction struct {
	state *State
	span  *spanElement
}

func (i *resetSpanStyleInstruction) ApplyFont(s Surface) {
	if i.span.font {
		s.SetFont(i.span.previousFont)
	}
}

func (i *resetSpanStyleInstruction) Paint(s Surface, area image.Rectangle) {
	st := i.state
	if i.span.color {
		s.SetForeground(st.popForeground())
	}
	if i.span.backgroundColor {
		s.SetBackground(st.popBackground())
	}
	i.ApplyFont(s)
}

// listInstruction opens a list level: it activates the line the engine
// created, adds paragraph spacing above the outermost list, pushes the
// indentation level and installs the list's alignment and margin.
type listInstruction struct {
	state     *State
	indent    int
	ordered   bool
	alignment style.AlignmentStyle
	space     int
}

func (l *listInstruction) Paint(s Surface, area image.Rectangle) {
	st := l.state
	st.activateNextLine()
	if st.ListDepth() == 0 {
		st.increaseY(l.space)
	}
	st.pushList(l.indent, l.ordered)
	st.alignment = l.alignment.Alignment
	st.marginLeft = l.alignment.MarginLeft
	st.calculateX(area.Dx())
}

// rtrim removes trailing breakable whitespace. Non-breaking spaces are
// content and stay.
func rtrim(s string) string {
	return strings.TrimRight(s, " \t")
}
