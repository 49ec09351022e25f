package blocks

import "github.com/vovakirdan/tui-blocks/internal/core"

// ResolveRotation turns shape a quarter in dir and looks for a horizontal
// nudge that makes it fit at row pos.Y.
//
// The rotated shape is tried in place first, then shifted +1, -1, +2, -2, ...
// relative to pos.X. Each probe steps from the previous one, so the step
// sizes grow 1, 2, 3, ... with alternating sign. The search gives up as soon
// as the next rightward step would be longer than the shape's column count;
// the rotation is then rejected and the original shape and position are
// returned with ok == false.
func ResolveRotation(a *Arena, shape Shape, pos core.Point, dir Rotation) (Shape, core.Point, bool) {
	rotated := shape.Rotate(dir)
	width := rotated.Size()

	at := pos
	step := 1
	for a.Collides(rotated, at) {
		at.X += step
		if step > 0 {
			step = -(step + 1)
		} else {
			step = -(step - 1)
		}
		if step > width {
			return shape, pos, false
		}
	}
	return rotated, at, true
}

// KickOffsets lists the horizontal displacements ResolveRotation probes for a
// shape of the given width, in probe order, excluding the in-place attempt.
func KickOffsets(width int) []int {
	var offsets []int
	x, step := 0, 1
	for {
		x += step
		if step > 0 {
			step = -(step + 1)
		} else {
			step = -(step - 1)
		}
		if step > width {
			return offsets
		}
		offsets = append(offsets, x)
	}
}
