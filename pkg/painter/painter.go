// Package painter lays out and paints a constrained subset of HTML, as
// produced by WYSIWYG editors, onto a 2D drawing surface. Processing is a
// two-phase pipeline: the markup event stream is first compiled into lines
// of deferred paint instructions (computing word wrap against the available
// width), then the lines are executed in order against the surface. A
// measure-only pass runs the same pipeline with drawing suppressed, so the
// preferred content size is computed from identical layout decisions.
package painter

import (
	"fmt"
	"image"
	"log"
	"regexp"
	"strconv"
	"strings"

	"richtext/pkg/markup"
	"richtext/pkg/style"
)

// Supported tags.
const (
	TagParagraph     = "p"
	TagSpan          = "span"
	TagStrong        = "strong"
	TagEmphasis      = "em"
	TagUnderline     = "u"
	TagStrikethrough = "s"
	TagUnorderedList = "ul"
	TagOrderedList   = "ol"
	TagListItem      = "li"
	TagLineBreak     = "br"
)

// bullets are the unordered-list markers by nesting depth; deeper lists
// reuse the last one.
var bullets = []string{"•", " ◦", "▪"}

const nonBreakingSpace = " "

// controlCharacters matches line breaks and tabs, which carry no meaning in
// the markup and are stripped before tokenizing.
var controlCharacters = regexp.MustCompile(`\n\r|\r\n|\n|\r|\t`)

const (
	fakeRootStart = "<root>"
	fakeRootEnd   = "</root>"
)

const defaultParagraphSpace = 5

// Painter parses rich text markup and renders it to a Surface. It works
// well with HTML generated by ckeditor-style editors. A Painter is not safe
// for concurrent use; each invocation builds fresh per-call state.
type Painter struct {
	wordWrap       bool
	paragraphSpace int
	wordSplit      *regexp.Regexp
	entityReplacer markup.EntityReplacer
	colors         ColorResolver

	preferredSize image.Point
}

// New creates a Painter. wordWrap controls whether text runs are split to
// fit the available width.
func New(wordWrap bool) *Painter {
	return &Painter{
		wordWrap:       wordWrap,
		paragraphSpace: defaultParagraphSpace,
		wordSplit:      regexp.MustCompile(`\s`),
		entityReplacer: markup.DefaultEntityReplacer(),
		colors:         NewColorCache(),
	}
}

// SetParagraphSpace sets the spacing applied above and below a paragraph,
// in pixels. Between two paragraphs twice this value accumulates.
func (p *Painter) SetParagraphSpace(space int) { p.paragraphSpace = space }

// ParagraphSpace returns the spacing applied above and below a paragraph.
func (p *Painter) ParagraphSpace() int { return p.paragraphSpace }

// SetWordSplitPattern sets the regular expression that determines word
// boundaries for wrapping. The boundary match stays attached to the token
// before it. The default is `\s`.
func (p *Painter) SetWordSplitPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid word split pattern: %w", err)
	}
	p.wordSplit = re
	return nil
}

// SetEntityReplacer sets the replacer used to resolve entity references in
// the markup.
func (p *Painter) SetEntityReplacer(r markup.EntityReplacer) { p.entityReplacer = r }

// SetColorResolver sets the resolver used for color and background-color
// style values.
func (p *Painter) SetColorResolver(r ColorResolver) { p.colors = r }

// PreferredSize returns the content size computed by the last successful
// PaintHTML or PreCalculate call.
func (p *Painter) PreferredSize() image.Point { return p.preferredSize }

// PreCalculate processes the markup to compute the preferred size without
// drawing. Layout decisions are identical to a real paint pass; only the
// surface draw calls are skipped. wrapping overrides the painter's
// word-wrap setting for this calculation.
func (p *Painter) PreCalculate(html string, s Surface, bounds image.Rectangle, wrapping bool) error {
	original := p.wordWrap
	p.wordWrap = wrapping
	defer func() { p.wordWrap = original }()
	return p.paint(html, s, bounds, false)
}

// PaintHTML processes the markup and paints the result to the surface.
func (p *Painter) PaintHTML(html string, s Surface, bounds image.Rectangle) error {
	return p.paint(html, s, bounds, true)
}

// openList tracks one list level during the build phase: the indentation to
// restore to the available width and the style scope opened by the list tag.
type openList struct {
	indent int
	span   *spanElement
}

func (p *Painter) paint(html string, s Surface, bounds image.Rectangle, render bool) error {
	state := newState(bounds.Min, render)

	var spanStack []*spanElement
	var lines []*Line

	// only the tags carry structure, so control characters are noise
	cleaned := controlCharacters.ReplaceAllString(html, "")

	// the input is a fragment, not a document; wrap it in a synthetic root
	// so the tokenizer sees balanced markup
	cleaned = fakeRootStart + cleaned + fakeRootEnd

	s.ResetAntialias()

	availableWidth := bounds.Dx()
	var listStack []openList
	listOpened := false

	tokenizer := markup.NewTokenizer(cleaned)
	var currentLine *Line

events:
	for {
		event, err := tokenizer.Next()
		if err != nil {
			// structural failure: nothing is rendered, the preferred size
			// keeps the value of the last successful call
			return fmt.Errorf("parsing rich text: %w", err)
		}

		switch event.Type {
		case markup.EventEOF:
			break events

		case markup.EventStartTag:
			switch event.Name {
			case TagParagraph:
				currentLine = createNewLine(&lines)
				alignment := style.ResolveAlignment(event.Attributes["style"])
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&paragraphInstruction{state: state, alignment: alignment, space: p.paragraphSpace})

				availableWidth -= alignment.MarginLeft

			case TagLineBreak:
				currentLine = createNewLine(&lines)
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&newLineInstruction{state: state})

			case TagSpan:
				styleInstruction, span := p.resolveSpanStyle(event.Attributes["style"], state, s)
				spanStack = append(spanStack, span)
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state, styleInstruction)

			case TagStrong:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&boldInstruction{state: state, active: true})

			case TagEmphasis:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&italicInstruction{state: state, active: true})

			case TagUnderline:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.underlineActive = true
					}))

			case TagStrikethrough:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.strikethroughActive = true
					}))

			case TagUnorderedList, TagOrderedList:
				indent := p.calculateListIndentation(s)
				availableWidth -= indent
				listOpened = true

				alignment := style.ResolveAlignment(event.Attributes["style"])
				availableWidth -= alignment.MarginLeft

				ordered := event.Name == TagOrderedList

				currentLine = createNewLine(&lines)
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&listInstruction{state: state, indent: indent, ordered: ordered, alignment: alignment, space: p.paragraphSpace})

				// font and color attributes on the list tag itself apply to
				// the markers and items; the scope is closed by the list end
				// tag rather than the span stack
				styleInstruction, span := p.resolveSpanStyle(event.Attributes["style"], state, s)
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state, styleInstruction)

				listStack = append(listStack, openList{indent: indent, span: span})

			case TagListItem:
				// the list tag already created a line for its first item
				if !listOpened {
					currentLine = createNewLine(&lines)
					currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
						&newLineInstruction{state: state})
				} else {
					listOpened = false
				}

				alignment := style.ResolveAlignment(event.Attributes["style"])

				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.resetX()

						marker := p.bulletCharacter(state.ListDepth()) + nonBreakingSpace
						if state.orderedList() {
							marker = strconv.Itoa(state.currentListNumber()) + ". "
						}
						extent := s.TextExtent(marker).X
						if state.rendering {
							s.DrawText(marker, state.pointer.X-extent, state.pointer.Y, state.backgroundActive())
						}

						state.alignment = alignment.Alignment
						state.calculateX(area.Dx())
					}))
			}

		case markup.EventEndTag:
			switch event.Name {
			case TagParagraph:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&resetParagraphInstruction{state: state, space: p.paragraphSpace})

				availableWidth = bounds.Dx()

			case TagSpan:
				span := spanStack[len(spanStack)-1]
				spanStack = spanStack[:len(spanStack)-1]
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&resetSpanStyleInstruction{state: state, span: span})

			case TagStrong:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&boldInstruction{state: state, active: false})

			case TagEmphasis:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&italicInstruction{state: state, active: false})

			case TagUnderline:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.underlineActive = false
					}))

			case TagStrikethrough:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.strikethroughActive = false
					}))

			case TagListItem:
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.increaseCurrentListNumber()
						state.alignment = style.AlignLeft
					}))

			case TagUnorderedList, TagOrderedList:
				list := listStack[len(listStack)-1]
				listStack = listStack[:len(listStack)-1]

				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					paintFunc(func(s Surface, area image.Rectangle) {
						state.popList()

						// closing the outermost list behaves like closing a
						// paragraph
						if state.ListDepth() == 0 {
							state.marginLeft = 0
							state.increaseY(state.currentLineHeight)
							state.increaseY(p.paragraphSpace)
							state.currentLineHeight = 0
							state.increaseParagraphCount()
						}

						state.resetX()
						state.alignment = style.AlignLeft
					}))
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					&resetSpanStyleInstruction{state: state, span: list.span})

				availableWidth += list.indent

				// any further content starts on a new line
				currentLine = nil
			}

		case markup.EventText:
			currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
				newTextInstruction(state, event.Text))

		case markup.EventEntityRef:
			if value, ok := p.entityReplacer.Replace(event.Name); ok {
				currentLine = p.addInstruction(s, availableWidth, &lines, currentLine, state,
					newTextInstruction(state, value))
			}
		}
	}

	// second phase: execute the lines in order and accumulate the size
	state.setLines(lines)

	p.preferredSize = image.Pt(bounds.Dx(), 0)
	for _, line := range lines {
		line.Paint(s, bounds)
		if line.ContentWidth() > p.preferredSize.X {
			p.preferredSize.X = line.ContentWidth()
		}
		p.preferredSize.Y += line.LineHeight()
	}
	// paragraph spacing above and below each paragraph
	p.preferredSize.Y += 2 * state.paragraphCount * p.paragraphSpace

	return nil
}

// addInstruction appends an instruction to the current line, transparently
// opening an implicit paragraph line when none is open, and word-wrapping
// text instructions against the available width. It returns the line
// subsequent instructions should go to.
func (p *Painter) addInstruction(s Surface, availableWidth int, lines *[]*Line, currentLine *Line, state *State, instruction Instruction) *Line {
	// apply font changes to the surface so following measurements use them
	if provider, ok := instruction.(FontMetricsProvider); ok {
		provider.ApplyFont(s)
	}

	// no spanning block tag: open a line that behaves like a paragraph, so
	// plain text input works
	if currentLine == nil {
		currentLine = createNewLine(lines)
		p.appendInstruction(s, currentLine, &implicitParagraphInstruction{state: state, space: p.paragraphSpace})
	}

	lineToUse := currentLine

	textInstr, isText := instruction.(*textInstruction)
	if !isText {
		p.appendInstruction(s, lineToUse, instruction)
		return lineToUse
	}

	textLength := textInstr.TextLength(s)
	trimmedTextLength := textInstr.TrimmedTextLength(s)

	if p.wordWrap && currentLine.ContentWidth()+textLength > availableWidth {
		// split the text at word boundaries and distribute it over new
		// lines, committing the accumulated substring whenever the next
		// token would exceed the available width
		words := splitAfter(textInstr.Text(), p.wordSplit)
		subString := ""
		subStringLength := 0
		for len(words) > 0 {
			word := words[0]
			words = words[1:]
			wordLength := s.TextExtent(word).X
			subStringLength += wordLength
			if lineToUse.ContentWidth()+subStringLength > availableWidth {
				newLine := true
				if strings.TrimSpace(subString) != "" {
					committed := newTextInstruction(state, rtrim(subString))
					p.appendInstruction(s, lineToUse, committed)
					lineToUse.increaseContentWidth(committed.TextLength(s))
					lineToUse.increaseTrimmedContentWidth(committed.TrimmedTextLength(s))
				} else if lineToUse.ContentWidth() == 0 {
					// no content yet but the single token is already wider
					// than the available width: force it onto this line
					// rather than emitting an empty one
					newLine = false
				}

				subString = word
				subStringLength = wordLength

				if newLine {
					lineToUse = createNewLine(lines)
					p.appendInstruction(s, lineToUse, &newLineInstruction{state: state})
				}
			} else {
				subString += word
			}
		}

		if strings.TrimSpace(subString) == "" {
			return lineToUse
		}
		textInstr = newTextInstruction(state, subString)
		textLength = textInstr.TextLength(s)
		trimmedTextLength = textInstr.TrimmedTextLength(s)
	}

	p.appendInstruction(s, lineToUse, textInstr)
	lineToUse.increaseContentWidth(textLength)
	lineToUse.increaseTrimmedContentWidth(trimmedTextLength)

	return lineToUse
}

// appendInstruction adds the instruction and folds the current font height
// into the line height.
func (p *Painter) appendInstruction(s Surface, line *Line, instruction Instruction) {
	line.add(instruction)
	line.updateLineHeight(s.FontHeight())
}

func createNewLine(lines *[]*Line) *Line {
	line := &Line{}
	*lines = append(*lines, line)
	return line
}

// resolveSpanStyle builds the style instruction for a style-bearing tag and
// the span element recording which categories it set. Malformed property
// values are logged and skipped without aborting the rest of the style.
func (p *Painter) resolveSpanStyle(styleAttr string, state *State, s Surface) (Instruction, *spanElement) {
	span := &spanElement{}
	instruction := &spanStyleInstruction{state: state, span: span}

	for key, value := range style.ParseProperties(styleAttr) {
		switch key {
		case style.PropertyColor:
			if c, ok := p.colors.Resolve(value); ok {
				span.color = true
				instruction.foreground = c
			} else {
				log.Printf("painter: ignoring unknown color %q", value)
			}
		case style.PropertyBackgroundColor:
			if c, ok := p.colors.Resolve(value); ok {
				span.backgroundColor = true
				instruction.background = c
			} else {
				log.Printf("painter: ignoring unknown background-color %q", value)
			}
		case style.PropertyFontSize:
			if px, ok := style.ParsePixels(value); ok {
				// the size is given in pixels, the surface font wants points
				span.font = true
				instruction.fontSize = 72 * px / s.DPI()
			} else {
				log.Printf("painter: ignoring invalid font-size %q", value)
			}
		case style.PropertyFontFamily:
			span.font = true
			instruction.fontFamily = style.FontFamily(value)
		}
	}

	return instruction, span
}

// calculateListIndentation returns the gutter width reserved for list
// markers: wide enough for a three-digit ordered marker.
func (p *Painter) calculateListIndentation(s Surface) int {
	return s.TextExtent("000. ").X
}

// bulletCharacter returns the marker for an unordered list at the given
// depth (1 for the top level). Depths beyond the table reuse the last
// bullet.
func (p *Painter) bulletCharacter(listDepth int) string {
	if listDepth >= len(bullets) {
		return bullets[len(bullets)-1]
	}
	return bullets[listDepth-1]
}

// splitAfter splits text into tokens ending after each match of the
// boundary pattern, so trailing separators stay attached to the token
// before them.
func splitAfter(text string, pattern *regexp.Regexp) []string {
	var tokens []string
	start := 0
	for _, match := range pattern.FindAllStringIndex(text, -1) {
		if match[1] <= start {
			continue
		}
		tokens = append(tokens, text[start:match[1]])
		start = match[1]
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}
