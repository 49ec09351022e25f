// Package blocks implements a falling-block puzzle: a fixed arena collects
// locked cells from a stream of tetromino pieces, full rows are swept away
// and scored.
//
// The package is pure game logic. Timing is fed in by the caller, randomness
// comes from an injected source, and drawing goes through a callback, so the
// whole state machine runs deterministically in tests.
package blocks

import "fmt"

// Cell is a single arena or shape value. 0 is empty, 1..7 is a locked or
// falling cell colored by piece kind.
type Cell uint8

// Empty is the zero cell value.
const Empty Cell = 0

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindT Kind = iota
	KindO
	KindL
	KindJ
	KindI
	KindS
	KindZ
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	switch k {
	case KindT:
		return "T"
	case KindO:
		return "O"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindI:
		return "I"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Rotation is a quarter-turn direction.
type Rotation int

const (
	RotateCW  Rotation = -1
	RotateCCW Rotation = 1
)

// Shape is an immutable square matrix of cells describing one piece in one
// rotation. The zero value is an empty 0x0 shape.
type Shape struct {
	size  int
	cells []Cell // row-major, len size*size
}

// NewShape builds a shape from a square matrix. The input is copied.
func NewShape(rows [][]Cell) (Shape, error) {
	n := len(rows)
	cells := make([]Cell, 0, n*n)
	for y, row := range rows {
		if len(row) != n {
			return Shape{}, fmt.Errorf("blocks: shape row %d has %d cells, expected %d", y, len(row), n)
		}
		cells = append(cells, row...)
	}
	return Shape{size: n, cells: cells}, nil
}

func mustShape(rows [][]Cell) Shape {
	s, err := NewShape(rows)
	if err != nil {
		panic(err)
	}
	return s
}

// catalog holds the spawn orientation of every kind. Cell values double as
// palette indexes.
var catalog = [KindCount]Shape{
	KindT: mustShape([][]Cell{
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	}),
	KindO: mustShape([][]Cell{
		{2, 2},
		{2, 2},
	}),
	KindL: mustShape([][]Cell{
		{0, 3, 0},
		{0, 3, 0},
		{0, 3, 3},
	}),
	KindJ: mustShape([][]Cell{
		{0, 4, 0},
		{0, 4, 0},
		{4, 4, 0},
	}),
	KindI: mustShape([][]Cell{
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
	}),
	KindS: mustShape([][]Cell{
		{0, 6, 6},
		{6, 6, 0},
		{0, 0, 0},
	}),
	KindZ: mustShape([][]Cell{
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	}),
}

// ShapeOf returns the spawn orientation for a kind.
func ShapeOf(k Kind) Shape {
	if k < 0 || int(k) >= KindCount {
		return Shape{}
	}
	return catalog[k]
}

// Size returns the side length of the matrix (also its column count).
func (s Shape) Size() int {
	return s.size
}

// At returns the cell at column x, row y; out-of-range reads are Empty.
func (s Shape) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.size || y >= s.size {
		return Empty
	}
	return s.cells[y*s.size+x]
}

// Rows returns a copy of the matrix.
func (s Shape) Rows() [][]Cell {
	rows := make([][]Cell, s.size)
	for y := range rows {
		rows[y] = make([]Cell, s.size)
		copy(rows[y], s.cells[y*s.size:(y+1)*s.size])
	}
	return rows
}

// Each calls fn for every non-empty cell with its local coordinates.
func (s Shape) Each(fn func(x, y int, c Cell)) {
	for i, c := range s.cells {
		if c != Empty {
			fn(i%s.size, i/s.size, c)
		}
	}
}

// Footprint returns the set of occupied local coordinates.
func (s Shape) Footprint() map[[2]int]bool {
	fp := make(map[[2]int]bool)
	s.Each(func(x, y int, _ Cell) {
		fp[[2]int{x, y}] = true
	})
	return fp
}

// Equal reports whether two shapes have identical matrices.
func (s Shape) Equal(o Shape) bool {
	if s.size != o.size {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rotate returns the shape turned a quarter in the given direction.
// Clockwise reads (x, y) from m[x][N-1-y]; counter-clockwise from m[N-1-x][y].
// Any other direction returns the shape unchanged.
func (s Shape) Rotate(dir Rotation) Shape {
	if dir != RotateCW && dir != RotateCCW {
		return s
	}
	n := s.size
	out := make([]Cell, len(s.cells))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			var v Cell
			if dir == RotateCW {
				v = s.cells[x*n+(n-1-y)]
			} else {
				v = s.cells[(n-1-x)*n+y]
			}
			out[y*n+x] = v
		}
	}
	return Shape{size: n, cells: out}
}

// String renders the matrix with '.' for empty cells, one row per line.
func (s Shape) String() string {
	b := make([]byte, 0, s.size*(s.size+1))
	for y := 0; y < s.size; y++ {
		if y > 0 {
			b = append(b, '\n')
		}
		for x := 0; x < s.size; x++ {
			if c := s.At(x, y); c == Empty {
				b = append(b, '.')
			} else {
				b = append(b, byte('0'+c))
			}
		}
	}
	return string(b)
}
