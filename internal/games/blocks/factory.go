package blocks

import (
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// RandomSource picks an integer in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Piece is a shape placed in arena coordinates. Pos is the shape's top-left
// corner and may lie outside the arena while a move is being tested.
type Piece struct {
	Kind  Kind
	Shape Shape
	Pos   core.Point
}

// spawnOrder is the index order used to turn a random number into a kind.
var spawnOrder = [KindCount]Kind{KindI, KindL, KindJ, KindO, KindT, KindS, KindZ}

// Factory produces new pieces centered at the top of an arena.
type Factory struct {
	src        RandomSource
	arenaWidth int
}

// NewFactory creates a piece factory. A nil source falls back to a
// deterministic seed-0 generator.
func NewFactory(src RandomSource, arenaWidth int) *Factory {
	if src == nil {
		src = rand.New(rand.NewSource(0))
	}
	return &Factory{src: src, arenaWidth: arenaWidth}
}

// Next returns a uniformly chosen piece at x = W/2 - size/2, y = 0.
func (f *Factory) Next() Piece {
	return f.Spawn(spawnOrder[f.src.Intn(KindCount)])
}

// Spawn places a specific kind at the spawn position.
func (f *Factory) Spawn(k Kind) Piece {
	s := ShapeOf(k)
	return Piece{
		Kind:  k,
		Shape: s,
		Pos:   core.Point{X: f.arenaWidth/2 - s.Size()/2, Y: 0},
	}
}

// SequenceSource replays a fixed list of values, cycling when exhausted.
// Values are reduced modulo n. Useful for scripted tests and replays.
type SequenceSource struct {
	values []int
	next   int
}

// NewSequenceSource creates a source that yields values in order.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

// Intn returns the next scripted value modulo n.
func (s *SequenceSource) Intn(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// KindSource returns a SequenceSource that spawns the given kinds in order.
func KindSource(kinds ...Kind) *SequenceSource {
	values := make([]int, len(kinds))
	for i, k := range kinds {
		for j, o := range spawnOrder {
			if o == k {
				values[i] = j
			}
		}
	}
	return NewSequenceSource(values...)
}
