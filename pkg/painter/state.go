package painter

import (
	"image"
	"image/color"

	"richtext/pkg/style"
)

// listLevel is one open list: its gutter indentation and, for ordered
// lists, the running 1-based item number.
type listLevel struct {
	indent  int
	ordered bool
	number  int
}

// State is the cursor/style/list context threaded through one layout
// invocation. It is created fresh per call, mutated exclusively by
// instruction execution and the engine's line bookkeeping, and never shared
// across invocations.
type State struct {
	startingPoint image.Point
	pointer       image.Point
	rendering     bool

	marginLeft int
	alignment  style.TextAlignment

	boldActive          bool
	italicActive        bool
	underlineActive     bool
	strikethroughActive bool

	lists          []listLevel
	paragraphCount int

	lines             []*Line
	lineIndex         int
	currentLine       *Line
	currentLineHeight int

	previousForegrounds []color.Color
	previousBackgrounds []color.Color
}

func newState(origin image.Point, rendering bool) *State {
	return &State{
		startingPoint: origin,
		pointer:       origin,
		rendering:     rendering,
		alignment:     style.AlignLeft,
	}
}

func (st *State) Rendering() bool { return st.rendering }

func (st *State) Pointer() image.Point { return st.pointer }

// setLines hands the finished line list to the state so instructions can
// walk it during the render pass.
func (st *State) setLines(lines []*Line) {
	st.lines = lines
	st.lineIndex = 0
	st.currentLine = nil
	st.currentLineHeight = 0
}

// activateNextLine advances the vertical pointer past the active line and
// makes the next line in the list current, resetting the horizontal pointer
// to the text margin.
func (st *State) activateNextLine() {
	st.increaseY(st.currentLineHeight)
	if st.lineIndex < len(st.lines) {
		st.currentLine = st.lines[st.lineIndex]
		st.lineIndex++
		st.currentLineHeight = st.currentLine.LineHeight()
	} else {
		st.currentLine = nil
		st.currentLineHeight = 0
	}
	st.resetX()
}

// resetX moves the horizontal pointer to the start of the text area:
// the left bound plus margin and any list indentation.
func (st *State) resetX() {
	st.pointer.X = st.startingPoint.X + st.marginLeft + st.listIndent()
}

// calculateX positions the horizontal pointer for the active line according
// to the current text alignment, using the line's trimmed content width so
// trailing whitespace does not shift centered or right-aligned rows.
func (st *State) calculateX(areaWidth int) {
	base := st.startingPoint.X + st.marginLeft + st.listIndent()
	available := areaWidth - st.marginLeft - st.listIndent()
	trimmed := 0
	if st.currentLine != nil {
		trimmed = st.currentLine.TrimmedContentWidth()
	}
	switch st.alignment {
	case style.AlignRight:
		st.pointer.X = base + available - trimmed
	case style.AlignCenter:
		st.pointer.X = base + (available-trimmed)/2
	default:
		st.pointer.X = base
	}
}

func (st *State) increaseY(dy int) { st.pointer.Y += dy }

func (st *State) ParagraphCount() int { return st.paragraphCount }

func (st *State) increaseParagraphCount() { st.paragraphCount++ }

// List bookkeeping.

func (st *State) ListDepth() int { return len(st.lists) }

func (st *State) pushList(indent int, ordered bool) {
	st.lists = append(st.lists, listLevel{indent: indent, ordered: ordered, number: 1})
}

// popList removes the innermost list level.
func (st *State) popList() {
	if len(st.lists) > 0 {
		st.lists = st.lists[:len(st.lists)-1]
	}
}

func (st *State) listIndent() int {
	total := 0
	for _, l := range st.lists {
		total += l.indent
	}
	return total
}

func (st *State) orderedList() bool {
	if len(st.lists) == 0 {
		return false
	}
	return st.lists[len(st.lists)-1].ordered
}

func (st *State) currentListNumber() int {
	if len(st.lists) == 0 {
		return 0
	}
	return st.lists[len(st.lists)-1].number
}

func (st *State) increaseCurrentListNumber() {
	if len(st.lists) > 0 {
		st.lists[len(st.lists)-1].number++
	}
}

// Span color bookkeeping. The previous colors are stacked so nested spans
// restore exactly the color of the enclosing scope.

func (st *State) pushForeground(c color.Color) { st.previousForegrounds = append(st.previousForegrounds, c) }

func (st *State) popForeground() color.Color {
	c := st.previousForegrounds[len(st.previousForegrounds)-1]
	st.previousForegrounds = st.previousForegrounds[:len(st.previousForegrounds)-1]
	return c
}

func (st *State) pushBackground(c color.Color) { st.previousBackgrounds = append(st.previousBackgrounds, c) }

func (st *State) popBackground() color.Color {
	c := st.previousBackgrounds[len(st.previousBackgrounds)-1]
	st.previousBackgrounds = st.previousBackgrounds[:len(st.previousBackgrounds)-1]
	return c
}

// backgroundActive reports whether a span background color is in effect, in
// which case text runs draw with an opaque background.
func (st *State) backgroundActive() bool { return len(st.previousBackgrounds) > 0 }
