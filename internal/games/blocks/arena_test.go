package blocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// grid builds an arena from rows of digits, '.' for empty.
func grid(t *testing.T, lines ...string) *Arena {
	t.Helper()
	rows := make([][]Cell, len(lines))
	for y, line := range lines {
		rows[y] = make([]Cell, len(line))
		for x, r := range line {
			if r != '.' {
				rows[y][x] = Cell(r - '0')
			}
		}
	}
	a, err := ArenaFromRows(rows)
	require.NoError(t, err)
	return a
}

func TestNewArenaRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 20}, {12, 0}, {-1, 5}} {
		_, err := NewArena(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}
}

func TestArenaFromRowsRejectsRagged(t *testing.T) {
	_, err := ArenaFromRows([][]Cell{{0, 0}, {0}})
	assert.Error(t, err)

	_, err = ArenaFromRows(nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestCellAt(t *testing.T) {
	a := grid(t, "1.", ".2")
	c, ok := a.CellAt(1, 1)
	assert.True(t, ok)
	assert.Equal(t, Cell(2), c)

	_, ok = a.CellAt(2, 0)
	assert.False(t, ok)
	_, ok = a.CellAt(0, -1)
	assert.False(t, ok)
}

// collidesByDefinition re-derives collision from first principles: some
// filled shape cell lands outside the arena or on a filled arena cell.
func collidesByDefinition(a *Arena, s Shape, pos core.Point) bool {
	for y := 0; y < s.Size(); y++ {
		for x := 0; x < s.Size(); x++ {
			if s.At(x, y) == Empty {
				continue
			}
			ax, ay := pos.X+x, pos.Y+y
			if ax < 0 || ay < 0 || ax >= a.Width() || ay >= a.Height() {
				return true
			}
			if a.rows[ay][ax] != Empty {
				return true
			}
		}
	}
	return false
}

func TestCollidesExhaustive(t *testing.T) {
	a := grid(t,
		"......",
		"..1...",
		"......",
		"3....2",
		"44.444",
	)
	for _, k := range allKinds {
		s := ShapeOf(k)
		for r := 0; r < 4; r++ {
			for y := -4; y <= a.Height(); y++ {
				for x := -4; x <= a.Width(); x++ {
					pos := core.Point{X: x, Y: y}
					assert.Equal(t, collidesByDefinition(a, s, pos), a.Collides(s, pos),
						"kind %v rot %d at %v", k, r, pos)
				}
			}
			s = s.Rotate(RotateCW)
		}
	}
}

func TestCollidesIgnoresEmptyShapeCells(t *testing.T) {
	a, err := NewArena(4, 4)
	require.NoError(t, err)
	// T's top row is empty, so it may hang one row above the arena.
	assert.False(t, a.Collides(ShapeOf(KindT), core.Point{X: 0, Y: -1}))
	assert.True(t, a.Collides(ShapeOf(KindT), core.Point{X: 0, Y: -2}))
}

func TestMergeSkipsOutOfBounds(t *testing.T) {
	a, err := NewArena(3, 3)
	require.NoError(t, err)
	a.Merge(ShapeOf(KindI), core.Point{X: 1, Y: 1})
	assert.Equal(t, "...\n..5\n..5", a.String())
}

func TestSweepNoFullRowsIsNoop(t *testing.T) {
	a := grid(t,
		"....",
		"1.1.",
		"22.2",
		".333",
	)
	before := a.String()
	res := a.Sweep(10)
	assert.Equal(t, 0, res.Cleared)
	assert.Equal(t, 0, res.Points)
	assert.Empty(t, res.Rows)
	assert.Equal(t, before, a.String())
}

func TestSweepSingleMissingCell(t *testing.T) {
	a := grid(t,
		"....",
		"....",
		".4..",
		"11.1",
	)
	a.Merge(mustShape([][]Cell{{2}}), core.Point{X: 2, Y: 3})
	res := a.Sweep(10)

	assert.Equal(t, 1, res.Cleared)
	assert.Equal(t, 10, res.Points)
	assert.Equal(t, []int{3}, res.Rows)
	assert.Equal(t, "....\n....\n....\n.4..", a.String())
}

func TestSweepFullSizeArenaKeepsHeight(t *testing.T) {
	a, err := NewArena(12, 20)
	require.NoError(t, err)

	dot := mustShape([][]Cell{{3}})
	for x := 0; x < 12; x++ {
		if x != 5 {
			a.Merge(dot, core.Point{X: x, Y: 19})
		}
	}
	assert.Equal(t, 0, a.Sweep(10).Cleared, "row with a gap must stay")

	a.Merge(dot, core.Point{X: 5, Y: 19})
	res := a.Sweep(10)

	assert.Equal(t, 1, res.Cleared)
	assert.Equal(t, 10, res.Points)
	assert.Equal(t, []int{19}, res.Rows)
	assert.Equal(t, 20, a.Height())
	assert.Equal(t, 0, a.FilledCount())
	for x := 0; x < 12; x++ {
		c, ok := a.CellAt(x, 0)
		assert.True(t, ok)
		assert.Equal(t, Cell(0), c, "top row x=%d", x)
	}
}

func TestSweepScoring(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		points int
		after  string
	}{
		{
			name:   "one row",
			rows:   []string{"....", "1...", "1111"},
			points: 10,
			after:  "....\n....\n1...",
		},
		{
			name:   "two rows",
			rows:   []string{"..2.", "1111", "1111"},
			points: 30,
			after:  "....\n....\n..2.",
		},
		{
			name:   "three rows",
			rows:   []string{"3...", "1111", "2222", "1111"},
			points: 70,
			after:  "....\n....\n....\n3...",
		},
		{
			name:   "four rows",
			rows:   []string{"1111", "1111", "1111", "1111"},
			points: 150,
			after:  "....\n....\n....\n....",
		},
		{
			name:   "split rows",
			rows:   []string{"....", "1111", "2.2.", "1111", ".3.."},
			points: 30,
			after:  "....\n....\n....\n2.2.\n.3..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := grid(t, tt.rows...)
			res := a.Sweep(10)
			assert.Equal(t, tt.points, res.Points)
			assert.Equal(t, tt.after, a.String())
			assert.Equal(t, len(tt.rows), a.Height())
		})
	}
}

func TestSweepReportsRowsBottomFirst(t *testing.T) {
	a := grid(t, "1111", "....", "1111", "1111")
	res := a.Sweep(10)
	// The two bottom rows are both found at index 3; the top one shifts to 2
	// after they are gone.
	assert.Equal(t, []int{3, 3, 2}, res.Rows)
	assert.Equal(t, 3, res.Cleared)
}

func TestSweepKeepsRowWidths(t *testing.T) {
	a := grid(t, "12345", "11111", "1.1.1")
	a.Sweep(10)
	for _, row := range a.Rows() {
		assert.Len(t, row, 5)
	}
}

func TestArenaResetAndClone(t *testing.T) {
	a := grid(t, "1.", "22")
	c := a.Clone()
	a.Reset()
	assert.Equal(t, 0, a.FilledCount())
	assert.Equal(t, 3, c.FilledCount())
	assert.Equal(t, "1.\n22", c.String())
}

func TestArenaRowsIsCopy(t *testing.T) {
	a := grid(t, "1.")
	rows := a.Rows()
	rows[0][1] = 5
	assert.Equal(t, "1.", a.String())
	assert.True(t, strings.HasPrefix(a.String(), "1"))
}
