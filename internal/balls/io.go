package balls

import "image/color"

// Input is polled once per frame by the input system.
type Input interface {
	// Cursor returns the cursor position in screen pixels.
	Cursor() (x, y int)
	// Clicked reports the mouse buttons pressed since the previous frame.
	Clicked() (left, right bool)
}

// Canvas receives the drawing of the render system, in screen pixels.
type Canvas interface {
	Clear()
	Circle(x, y, r float32, c color.NRGBA)
	Ring(x, y, r float32, c color.NRGBA)
	Rect(x, y, w, h float32, c color.NRGBA)
	Line(x0, y0, x1, y1 float32, c color.NRGBA)
	Text(s string)
}

// NoInput never moves nor clicks.
type NoInput struct{}

func (NoInput) Cursor() (int, int)    { return -1, -1 }
func (NoInput) Clicked() (bool, bool) { return false, false }
