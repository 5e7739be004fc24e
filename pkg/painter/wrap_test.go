package painter

import (
	"image"
	"reflect"
	"regexp"
	"testing"
)

func TestWrap_BreaksAtWordBoundaries(t *testing.T) {
	p := New(true)
	s := paintTo(t, p, "<p>aa bb cc</p>", 60)

	if got := s.drawnStrings(); !reflect.DeepEqual(got, []string{"aa bb", "cc"}) {
		t.Fatalf("drawn %v, want [aa bb, cc]", got)
	}
	if s.texts[0].y != 5 || s.texts[1].y != 5+charHeight {
		t.Errorf("lines at y=%d,%d", s.texts[0].y, s.texts[1].y)
	}
	want := image.Pt(60, 2*charHeight+2*5)
	if p.PreferredSize() != want {
		t.Errorf("preferred size %v, want %v", p.PreferredSize(), want)
	}
}

func TestWrap_TrailingWhitespaceTrimmedFromCommittedLines(t *testing.T) {
	p := New(true)
	s := paintTo(t, p, "<p>aa bb cc</p>", 60)

	// the committed first line loses its trailing space
	if s.texts[0].text != "aa bb" {
		t.Errorf("committed line %q, want %q", s.texts[0].text, "aa bb")
	}
}

func TestWrap_WhitespaceOnlyTailDropped(t *testing.T) {
	p := New(true)
	s := paintTo(t, p, "<p>aaa  </p>", 35)

	if got := s.drawnStrings(); !reflect.DeepEqual(got, []string{"aaa"}) {
		t.Fatalf("drawn %v, want [aaa]", got)
	}
}

func TestWrap_OversizedWordForcedOntoEmptyLine(t *testing.T) {
	p := New(true)
	s := paintTo(t, p, "<p>aaaaaaaaaaaa</p>", 100)

	// twelve runes do not fit in 100, but an unbreakable word on an empty
	// line is painted anyway rather than producing an empty row
	if got := s.drawnStrings(); !reflect.DeepEqual(got, []string{"aaaaaaaaaaaa"}) {
		t.Fatalf("drawn %v", got)
	}
	if s.texts[0].x != 0 || s.texts[0].y != 5 {
		t.Errorf("forced word at (%d,%d), want (0,5)", s.texts[0].x, s.texts[0].y)
	}
	// the overflow widens the preferred size past the bounds
	want := image.Pt(12*charWidth, charHeight+2*5)
	if p.PreferredSize() != want {
		t.Errorf("preferred size %v, want %v", p.PreferredSize(), want)
	}
}

func TestWrap_DisabledKeepsSingleLine(t *testing.T) {
	p := New(false)
	s := paintTo(t, p, "<p>aa bb cc</p>", 60)

	if got := s.drawnStrings(); !reflect.DeepEqual(got, []string{"aa bb cc"}) {
		t.Fatalf("drawn %v, want all on one line", got)
	}
	if p.PreferredSize().X != 8*charWidth {
		t.Errorf("preferred width %d, want %d", p.PreferredSize().X, 8*charWidth)
	}
}

func TestWrap_StyledRunsSurviveSplit(t *testing.T) {
	p := New(true)
	s := paintTo(t, p, "<p>aa <strong>bb cc</strong></p>", 60)

	if got := s.drawnStrings(); !reflect.DeepEqual(got, []string{"aa ", "bb", "cc"}) {
		t.Fatalf("drawn %v, want [aa , bb, cc]", got)
	}
	if s.texts[0].font.Bold {
		t.Error("aa drawn bold")
	}
	// the wrapped continuation stays bold
	if !s.texts[1].font.Bold || !s.texts[2].font.Bold {
		t.Error("bold run lost its style across the wrap")
	}
	if s.texts[2].x != 0 || s.texts[2].y != 5+charHeight {
		t.Errorf("cc at (%d,%d), want (0,%d)", s.texts[2].x, s.texts[2].y, 5+charHeight)
	}
}

func TestSplitAfter(t *testing.T) {
	space := regexp.MustCompile(`\s`)
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"abc", []string{"abc"}},
		{"aa bb", []string{"aa ", "bb"}},
		{"aa bb ", []string{"aa ", "bb "}},
		{"aa  bb", []string{"aa ", " ", "bb"}},
		{" aa", []string{" ", "aa"}},
	}
	for _, c := range cases {
		if got := splitAfter(c.in, space); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitAfter(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRtrim(t *testing.T) {
	cases := map[string]string{
		"aa ":       "aa",
		"aa \t ":    "aa",
		"aa":        "aa",
		"aa ":  "aa ", // non-breaking space is content
		" aa ":      " aa",
		"":          "",
	}
	for in, want := range cases {
		if got := rtrim(in); got != want {
			t.Errorf("rtrim(%q) = %q, want %q", in, got, want)
		}
	}
}
