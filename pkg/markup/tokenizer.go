package markup

import (
	"fmt"
	"strings"
	"unicode"
)

type EventType int

const (
	EventStartTag EventType = iota
	EventEndTag
	EventText
	EventEntityRef
	EventEOF
)

// Event is one item of the markup stream: a start tag with its attributes,
// an end tag, a run of raw text, or an unresolved entity reference.
type Event struct {
	Type       EventType
	Name       string // tag name or entity name
	Attributes map[string]string
	Text       string
}

// Tokenizer scans a well-formed markup fragment into a stream of events.
// Text is delivered verbatim; entity references are reported as separate
// events so the caller can decide how to resolve them. Nesting is validated:
// a mismatched end tag or unclosed tags at EOF are structural errors.
type Tokenizer struct {
	input   string
	pos     int
	open    []string
	pending []Event
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Next returns the next event in the stream. After the input is exhausted it
// returns an EventEOF event, or an error if any tags are still open.
func (t *Tokenizer) Next() (Event, error) {
	if len(t.pending) > 0 {
		ev := t.pending[0]
		t.pending = t.pending[1:]
		if ev.Type == EventEndTag {
			if err := t.closeTag(ev.Name); err != nil {
				return Event{}, err
			}
		}
		return ev, nil
	}
	if t.pos >= len(t.input) {
		if len(t.open) > 0 {
			return Event{}, fmt.Errorf("unexpected end of input: <%s> is not closed", t.open[len(t.open)-1])
		}
		return Event{Type: EventEOF}, nil
	}
	if t.input[t.pos] == '<' {
		return t.readTag()
	}
	return t.readText()
}

func (t *Tokenizer) readTag() (Event, error) {
	t.pos++

	// <!-- comments -->
	if strings.HasPrefix(t.input[t.pos:], "!--") {
		t.pos += 3
		if end := strings.Index(t.input[t.pos:], "-->"); end >= 0 {
			t.pos += end + 3
		} else {
			t.pos = len(t.input)
		}
		return t.Next()
	}

	// <?processing instructions?>
	if t.pos < len(t.input) && t.input[t.pos] == '?' {
		if end := strings.Index(t.input[t.pos:], "?>"); end >= 0 {
			t.pos += end + 2
		} else {
			t.pos = len(t.input)
		}
		return t.Next()
	}

	// <!DOCTYPE ...>
	if t.pos < len(t.input) && t.input[t.pos] == '!' {
		if err := t.skipTo('>'); err != nil {
			return Event{}, err
		}
		t.pos++
		return t.Next()
	}

	isEndTag := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		isEndTag = true
		t.pos++
	}
	name := t.readTagName()
	if name == "" {
		return Event{}, fmt.Errorf("expected tag name at position %d", t.pos)
	}
	if isEndTag {
		if err := t.skipTo('>'); err != nil {
			return Event{}, err
		}
		t.pos++
		if err := t.closeTag(name); err != nil {
			return Event{}, err
		}
		return Event{Type: EventEndTag, Name: name}, nil
	}
	attributes := make(map[string]string)
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return Event{}, fmt.Errorf("unexpected end of input in <%s>", name)
		}
		if t.input[t.pos] == '>' {
			t.pos++
			break
		}
		if t.input[t.pos] == '/' {
			t.pos++
			t.skipWhitespace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				// self-closing: deliver the start tag now and queue the
				// matching end tag so consumers see a balanced pair. The
				// name is pushed so the queued end tag pops it again.
				t.open = append(t.open, name)
				t.pending = append(t.pending, Event{Type: EventEndTag, Name: name})
				return Event{Type: EventStartTag, Name: name, Attributes: attributes}, nil
			}
			continue
		}
		attrName, attrValue, err := t.readAttribute()
		if err != nil {
			return Event{}, err
		}
		attributes[attrName] = attrValue
	}
	t.open = append(t.open, name)
	return Event{Type: EventStartTag, Name: name, Attributes: attributes}, nil
}

func (t *Tokenizer) closeTag(name string) error {
	if len(t.open) == 0 {
		return fmt.Errorf("unexpected </%s>: no open tag", name)
	}
	top := t.open[len(t.open)-1]
	if top != name {
		return fmt.Errorf("unexpected </%s>: <%s> is still open", name, top)
	}
	t.open = t.open[:len(t.open)-1]
	return nil
}

func (t *Tokenizer) readTagName() string {
	start := t.pos
	for t.pos < len(t.input) && isTagNameChar(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) readAttribute() (string, string, error) {
	start := t.pos
	for t.pos < len(t.input) && isAttributeNameChar(t.input[t.pos]) {
		t.pos++
	}
	name := strings.ToLower(t.input[start:t.pos])
	if name == "" {
		return "", "", fmt.Errorf("expected attribute name at position %d", t.pos)
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return name, "", nil
	}
	t.pos++
	t.skipWhitespace()
	value, err := t.readAttributeValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

func (t *Tokenizer) readAttributeValue() (string, error) {
	if t.pos >= len(t.input) {
		return "", fmt.Errorf("expected attribute value at position %d", t.pos)
	}
	quote := t.input[t.pos]
	if quote == '"' || quote == '\'' {
		t.pos++
		start := t.pos
		for t.pos < len(t.input) && t.input[t.pos] != quote {
			t.pos++
		}
		if t.pos >= len(t.input) {
			return "", fmt.Errorf("unterminated attribute value")
		}
		value := t.input[start:t.pos]
		t.pos++
		return value, nil
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return t.input[start:t.pos], nil
}

// readText scans up to the next tag, splitting out entity references as
// their own events. Text is not trimmed or collapsed; the painter decides
// what whitespace means.
func (t *Tokenizer) readText() (Event, error) {
	var events []Event
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		if t.input[t.pos] == '&' {
			if name, width := scanEntity(t.input[t.pos:]); width > 0 {
				if t.pos > start {
					events = append(events, Event{Type: EventText, Text: t.input[start:t.pos]})
				}
				events = append(events, Event{Type: EventEntityRef, Name: name})
				t.pos += width
				start = t.pos
				continue
			}
		}
		t.pos++
	}
	if t.pos > start {
		events = append(events, Event{Type: EventText, Text: t.input[start:t.pos]})
	}
	if len(events) == 0 {
		return t.Next()
	}
	t.pending = append(t.pending, events[1:]...)
	return events[0], nil
}

// scanEntity matches a leading "&name;" or "&#nn;" sequence and returns the
// entity name and the total width consumed, or 0 if the ampersand is not an
// entity reference.
func scanEntity(s string) (string, int) {
	if len(s) < 3 || s[0] != '&' {
		return "", 0
	}
	i := 1
	if i < len(s) && s[i] == '#' {
		i++
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			i++
		}
	}
	nameStart := i
	for i < len(s) && i <= maxEntityLength && isAlphanumeric(s[i]) {
		i++
	}
	if i == nameStart || i >= len(s) || s[i] != ';' {
		return "", 0
	}
	return s[1:i], i + 1
}

const maxEntityLength = 32

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func (t *Tokenizer) skipTo(target byte) error {
	for t.pos < len(t.input) && t.input[t.pos] != target {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return fmt.Errorf("expected '%c' but reached end of input", target)
	}
	return nil
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttributeNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == ':' || c == '.'
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
