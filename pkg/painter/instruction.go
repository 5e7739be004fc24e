package painter

import "image"

// Instruction is one deferred unit of layout or drawing work. Instructions
// are built while the engine consumes the markup stream and executed in
// line order by the render pass. Execution may mutate the invocation state
// and, when the state is in rendering mode, issue drawing calls.
type Instruction interface {
	Paint(s Surface, area image.Rectangle)
}

// FontMetricsProvider is implemented by instructions that change the
// surface font. The engine applies them while building lines so that text
// measurement for wrap decisions sees the same font the render pass will.
type FontMetricsProvider interface {
	ApplyFont(s Surface)
}

// paintFunc adapts a closure to the Instruction interface, for the small
// state-flipping operations that need no type of their own.
type paintFunc func(s Surface, area image.Rectangle)

func (f paintFunc) Paint(s Surface, area image.Rectangle) { f(s, area) }
