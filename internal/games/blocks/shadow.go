package blocks

import "github.com/vovakirdan/tui-blocks/internal/core"

// Project returns the row where shape would come to rest if dropped straight
// down from pos. It walks down from pos.Y until the shape collides and
// returns the last row before that. The arena is only read.
func Project(a *Arena, shape Shape, pos core.Point) int {
	if shape.Size() == 0 {
		return pos.Y
	}
	y := pos.Y
	for !a.Collides(shape, core.Point{X: pos.X, Y: y}) {
		y++
	}
	return y - 1
}
