package painter

// spanElement records which style categories a span start tag introduced,
// so the matching end tag resets exactly those and nothing else. Spans are
// stacked in tag-nesting order; the tokenizer guarantees LIFO closing.
type spanElement struct {
	color           bool
	backgroundColor bool
	font            bool

	// previousFont is captured when the span's font override is first
	// applied. The instruction sequence is identical in the build and
	// render passes, so the snapshot is valid for both.
	previousFont FontData
}
