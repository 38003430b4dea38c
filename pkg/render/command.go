// Package render implements the calendar layout engine.
//
// Layout computation is a pure function from (year, month, day events,
// title) to an ordered sequence of drawing commands in a normalized grid
// coordinate space: x in [0,7] with one unit per weekday column, y in
// [0,weeks] with one unit per week row and y growing upward. Sinks translate
// commands into concrete output (PNG, SVG) without re-deciding geometry.
package render

// HAlign is the horizontal anchor of a text command.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
)

// VAlign is the vertical anchor of a text command.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignBottom
)

// Command is a single drawing instruction. Implementations are Rect and Text.
type Command interface {
	isCommand()
}

// Rect is an unfilled unit rectangle in grid coordinates. X/Y address the
// bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (Rect) isCommand() {}

// Text is a positioned text block. Content may contain newlines; sinks render
// each line below the previous one. Size is a nominal point size relative to
// the grid cell; sinks scale it to pixels.
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Bold    bool
	HAlign  HAlign
	VAlign  VAlign
}

func (Text) isCommand() {}
