package render

import "testing"

func TestFontFiles_FallbackChain(t *testing.T) {
	full := FontFiles{Regular: "r", Bold: "b", Italic: "i", BoldItalic: "bi"}
	cases := []struct {
		files        FontFiles
		bold, italic bool
		want         string
	}{
		{full, false, false, "r"},
		{full, true, false, "b"},
		{full, false, true, "i"},
		{full, true, true, "bi"},
		{FontFiles{Regular: "r", Bold: "b"}, true, true, "b"},
		{FontFiles{Regular: "r", Italic: "i"}, true, true, "i"},
		{FontFiles{Regular: "r"}, true, true, "r"},
		{FontFiles{Regular: "r"}, false, true, "r"},
	}
	for _, c := range cases {
		if got := c.files.Path(c.bold, c.italic); got != c.want {
			t.Errorf("Path(%v, %v) on %+v = %q, want %q", c.bold, c.italic, c.files, got, c.want)
		}
	}
}
