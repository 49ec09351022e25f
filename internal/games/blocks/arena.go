package blocks

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// ErrInvalidDimensions is returned when an arena is built with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("blocks: arena dimensions must be positive")

// Arena is the persistent board of locked cells.
// Rows are indexed top to bottom; every row always holds exactly Width cells.
type Arena struct {
	w, h int
	rows [][]Cell
}

// SweepResult reports what a single sweep removed.
type SweepResult struct {
	Cleared int   // Number of rows removed
	Points  int   // Score awarded for this sweep
	Rows    []int // Row indexes removed, in scan order (bottom first)
}

// NewArena creates an empty arena.
func NewArena(w, h int) (*Arena, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	a := &Arena{w: w, h: h, rows: make([][]Cell, h)}
	for y := range a.rows {
		a.rows[y] = make([]Cell, w)
	}
	return a, nil
}

// ArenaFromRows builds an arena from a prepared matrix (fixtures, replays).
func ArenaFromRows(rows [][]Cell) (*Arena, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidDimensions)
	}
	a, err := NewArena(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != a.w {
			return nil, fmt.Errorf("blocks: row %d has %d cells, expected %d", y, len(row), a.w)
		}
		copy(a.rows[y], row)
	}
	return a, nil
}

// Width returns the number of columns.
func (a *Arena) Width() int { return a.w }

// Height returns the number of rows.
func (a *Arena) Height() int { return a.h }

// InBounds reports whether (x, y) addresses a cell.
func (a *Arena) InBounds(x, y int) bool {
	return x >= 0 && x < a.w && y >= 0 && y < a.h
}

// CellAt returns the cell at (x, y). ok is false outside the arena.
func (a *Arena) CellAt(x, y int) (c Cell, ok bool) {
	if !a.InBounds(x, y) {
		return Empty, false
	}
	return a.rows[y][x], true
}

// Collides reports whether shape placed with its top-left corner at pos
// overlaps a locked cell or leaves the arena. Empty shape cells never collide.
func (a *Arena) Collides(s Shape, pos core.Point) bool {
	for y := 0; y < s.Size(); y++ {
		for x := 0; x < s.Size(); x++ {
			if s.At(x, y) == Empty {
				continue
			}
			c, ok := a.CellAt(pos.X+x, pos.Y+y)
			if !ok || c != Empty {
				return true
			}
		}
	}
	return false
}

// Merge copies the non-empty cells of shape into the arena at pos.
// Callers must have checked Collides first; cells that would land outside
// the arena are dropped.
func (a *Arena) Merge(s Shape, pos core.Point) {
	s.Each(func(x, y int, c Cell) {
		ax, ay := pos.X+x, pos.Y+y
		if a.InBounds(ax, ay) {
			a.rows[ay][ax] = c
		}
	})
}

// Sweep removes every full row and inserts the same number of empty rows at
// the top. Rows are scanned bottom to top; after a removal the same index is
// examined again since the row above has shifted into it. The first row
// cleared in a sweep earns linePoints, and each further row doubles the
// previous award.
func (a *Arena) Sweep(linePoints int) SweepResult {
	var res SweepResult
	multiplier := 1
	for y := a.h - 1; y >= 0; y-- {
		if !a.rowFull(y) {
			continue
		}
		res.Rows = append(res.Rows, y)
		res.Cleared++
		res.Points += multiplier * linePoints
		multiplier *= 2

		a.removeRow(y)
		y++ // re-examine the row that moved down into y
	}
	return res
}

func (a *Arena) rowFull(y int) bool {
	for _, c := range a.rows[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// removeRow drops row y and pushes a zeroed row on top, reusing its storage.
func (a *Arena) removeRow(y int) {
	row := a.rows[y]
	clear(row)
	copy(a.rows[1:y+1], a.rows[:y])
	a.rows[0] = row
}

// Reset zeroes every cell.
func (a *Arena) Reset() {
	for _, row := range a.rows {
		clear(row)
	}
}

// FilledCount returns the number of non-empty cells.
func (a *Arena) FilledCount() int {
	n := 0
	for _, row := range a.rows {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

// Rows returns a deep copy of the grid.
func (a *Arena) Rows() [][]Cell {
	out := make([][]Cell, a.h)
	for y, row := range a.rows {
		out[y] = make([]Cell, a.w)
		copy(out[y], row)
	}
	return out
}

// Clone returns an independent copy of the arena.
func (a *Arena) Clone() *Arena {
	return &Arena{w: a.w, h: a.h, rows: a.Rows()}
}

// String renders the grid with '.' for empty cells, one row per line.
func (a *Arena) String() string {
	b := make([]byte, 0, a.h*(a.w+1))
	for y, row := range a.rows {
		if y > 0 {
			b = append(b, '\n')
		}
		for _, c := range row {
			if c == Empty {
				b = append(b, '.')
			} else {
				b = append(b, byte('0'+c))
			}
		}
	}
	return string(b)
}
