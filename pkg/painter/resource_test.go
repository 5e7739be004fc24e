package painter

import (
	"image/color"
	"testing"
)

func TestColorCache_Resolve(t *testing.T) {
	r := NewColorCache()
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{255, 0, 0, 255}},
		{"RED", color.RGBA{255, 0, 0, 255}},
		{" blue ", color.RGBA{0, 0, 255, 255}},
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#FF8000", color.RGBA{255, 128, 0, 255}},
		{"#f00", color.RGBA{255, 0, 0, 255}},
		{"rgb(1, 2, 3)", color.RGBA{1, 2, 3, 255}},
		{"rgb(255,255,255)", color.RGBA{255, 255, 255, 255}},
	}
	for _, c := range cases {
		got, ok := r.Resolve(c.in)
		if !ok || got != color.Color(c.want) {
			t.Errorf("Resolve(%q) = (%v, %v), want %v", c.in, got, ok, c.want)
		}
	}
}

func TestColorCache_Invalid(t *testing.T) {
	r := NewColorCache()
	for _, in := range []string{
		"", "chartreuse-ish", "#ff", "#fffff", "#gggggg",
		"rgb(1,2)", "rgb(1,2,3,4)", "rgb(256,0,0)", "rgb(-1,0,0)", "rgb(a,b,c)",
	} {
		if got, ok := r.Resolve(in); ok {
			t.Errorf("Resolve(%q) = (%v, true), want a miss", in, got)
		}
	}
}

func TestColorCache_CachesParsedValues(t *testing.T) {
	r := NewColorCache()
	first, ok := r.Resolve("#123456")
	if !ok {
		t.Fatal("resolve failed")
	}
	second, ok := r.Resolve(" #123456 ")
	if !ok || second != first {
		t.Errorf("normalized respelling resolved to %v, want cached %v", second, first)
	}
}
