package blocks

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func newTestSession(t *testing.T, cfg SessionConfig, src RandomSource) *Session {
	t.Helper()
	s, err := NewSession(cfg, src)
	require.NoError(t, err)
	return s
}

func smallConfig(w, h int) SessionConfig {
	cfg := DefaultSessionConfig()
	cfg.Width = w
	cfg.Height = h
	return cfg
}

func TestSessionConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SessionConfig)
		want   error
	}{
		{"narrow", func(c *SessionConfig) { c.Width = 3 }, ErrInvalidDimensions},
		{"flat", func(c *SessionConfig) { c.Height = 0 }, ErrInvalidDimensions},
		{"zero interval", func(c *SessionConfig) { c.DropInterval = 0 }, ErrInvalidInterval},
		{"no points", func(c *SessionConfig) { c.LinePoints = 0 }, ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSessionConfig()
			tt.mutate(&cfg)
			_, err := NewSession(cfg, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.NoError(t, DefaultSessionConfig().Validate())
}

func TestSessionSpawnsFirstPiece(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))
	p := s.Active()
	assert.Equal(t, KindT, p.Kind)
	assert.Equal(t, core.Point{X: 5, Y: 0}, p.Pos)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Arena().FilledCount())
}

func TestRejectedMoveLeavesStateUnchanged(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))
	for i := 0; i < 5; i++ {
		require.True(t, s.Apply(CmdMoveLeft), "move %d", i)
	}
	before := s.Active()
	acc := s.DropAccumulator()

	assert.False(t, s.Apply(CmdMoveLeft))
	assert.Equal(t, before, s.Active())
	assert.Equal(t, acc, s.DropAccumulator())
	assert.Equal(t, 0, s.Arena().FilledCount())
}

func TestMoveRightStopsAtWall(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindO))
	moves := 0
	for s.Apply(CmdMoveRight) {
		moves++
	}
	// O spawns at x=5 and may reach x=10 on a 12-wide arena.
	assert.Equal(t, 5, moves)
	assert.Equal(t, 10, s.Active().Pos.X)
}

func TestUnknownCommandRejected(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))
	before := s.Active()
	assert.False(t, s.Apply(Command(99)))
	assert.Equal(t, before, s.Active())
}

func TestRotateCommands(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))
	require.True(t, s.Apply(CmdRotateCW))
	assert.True(t, s.Active().Shape.Equal(ShapeOf(KindT).Rotate(RotateCW)))
	require.True(t, s.Apply(CmdRotateCCW))
	assert.True(t, s.Active().Shape.Equal(ShapeOf(KindT)))
}

func TestHardDropLocks(t *testing.T) {
	var scores []int
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT, KindI))
	s.OnScore(func(score int) { scores = append(scores, score) })

	require.True(t, s.Apply(CmdHardDrop))

	a := s.Arena()
	assert.Equal(t, 4, a.FilledCount())
	c, _ := a.CellAt(6, 19)
	assert.Equal(t, Cell(1), c, "T stem should rest on the floor")
	assert.Equal(t, 1, s.Stats().Pieces)
	assert.Equal(t, KindI, s.Active().Kind)
	assert.Equal(t, core.Point{X: 4, Y: 0}, s.Active().Pos)
	assert.Equal(t, []int{0}, scores)
}

func TestSoftDropLocksOnFloor(t *testing.T) {
	s := newTestSession(t, smallConfig(4, 4), KindSource(KindO))
	require.True(t, s.Apply(CmdSoftDrop))
	require.True(t, s.Apply(CmdSoftDrop))
	assert.Equal(t, 2, s.Active().Pos.Y)
	assert.Equal(t, 0, s.Stats().Pieces)

	// The next drop collides with the floor and locks.
	require.True(t, s.Apply(CmdSoftDrop))
	assert.Equal(t, 1, s.Stats().Pieces)
	assert.Equal(t, "....\n....\n.22.\n.22.", s.Arena().String())
	assert.Equal(t, 0, s.Active().Pos.Y)
}

func TestTimerDrop(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))

	s.Advance(time.Second)
	assert.Equal(t, 0, s.Active().Pos.Y, "drop only once the interval is exceeded")
	assert.Equal(t, time.Second, s.DropAccumulator())

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Active().Pos.Y)
	assert.Equal(t, time.Duration(0), s.DropAccumulator())

	for i := 0; i < 10; i++ {
		s.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 1, s.Active().Pos.Y)
	s.Advance(time.Millisecond)
	assert.Equal(t, 2, s.Active().Pos.Y)
}

func TestSoftDropResetsTimer(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))
	s.Advance(900 * time.Millisecond)
	s.Apply(CmdSoftDrop)
	assert.Equal(t, time.Duration(0), s.DropAccumulator())

	s.Advance(900 * time.Millisecond)
	assert.Equal(t, 1, s.Active().Pos.Y)
}

func TestLineClearScores(t *testing.T) {
	s := newTestSession(t, smallConfig(4, 6), KindSource(KindO))

	require.True(t, s.Apply(CmdMoveLeft))
	s.Apply(CmdHardDrop)
	assert.Equal(t, 0, s.Score())

	require.True(t, s.Apply(CmdMoveRight))
	s.Apply(CmdHardDrop)

	assert.Equal(t, 30, s.Score())
	assert.Equal(t, 2, s.Stats().Lines)
	assert.Equal(t, 0, s.Arena().FilledCount())
}

func TestTopOutResetsBoardAndScore(t *testing.T) {
	var scores []int
	s := newTestSession(t, smallConfig(4, 6), KindSource(KindO))
	s.OnScore(func(score int) { scores = append(scores, score) })

	s.Apply(CmdMoveLeft)
	s.Apply(CmdHardDrop)
	s.Apply(CmdMoveRight)
	s.Apply(CmdHardDrop)
	require.Equal(t, 30, s.Score())

	// Stack three O pieces in the middle columns until the spawn is blocked.
	for i := 0; i < 3; i++ {
		s.Apply(CmdHardDrop)
	}

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Arena().FilledCount())
	assert.Equal(t, 1, s.Stats().TopOuts)
	assert.Equal(t, 0, s.Stats().Lines)
	assert.Equal(t, 2, s.Stats().Total)
	assert.Equal(t, 0, scores[len(scores)-1])
	assert.Equal(t, []TopOut{{Score: 30, Lines: 2}}, s.TakeTopOuts())
	assert.Empty(t, s.TakeTopOuts())

	// Play continues on the fresh board.
	assert.False(t, s.Arena().Collides(s.Active().Shape, s.Active().Pos))
}

func TestFrameAppliesCommandsInOrder(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))

	res := s.Frame(0, CmdMoveLeft, CmdMoveLeft, CmdRotateCW)
	assert.Equal(t, 3, res.Applied)
	assert.Equal(t, 0, res.Rejected)
	assert.True(t, res.Redraw)
	assert.Equal(t, 3, s.Active().Pos.X)

	for i := 0; i < 5; i++ {
		s.Frame(0, CmdMoveLeft)
	}
	res = s.Frame(0, CmdMoveLeft, CmdMoveRight)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, 1, res.Applied)
}

func TestFrameReportsLocksAndShadow(t *testing.T) {
	s := newTestSession(t, smallConfig(4, 6), KindSource(KindO))

	res := s.Frame(0)
	assert.Equal(t, 4, res.Shadow.Pos.Y)
	assert.Equal(t, 0, res.Locked)

	s.Apply(CmdMoveLeft)
	s.Apply(CmdHardDrop)
	res = s.Frame(0, CmdMoveRight, CmdHardDrop)
	assert.Equal(t, 1, res.Locked)
	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, 30, res.Points)
	assert.False(t, res.ToppedOut)
}

func TestFrameTimerDrop(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))
	s.Frame(time.Second + time.Millisecond)
	assert.Equal(t, 1, s.Active().Pos.Y)
}

func TestRestart(t *testing.T) {
	s := newTestSession(t, smallConfig(4, 6), KindSource(KindO))
	s.Apply(CmdMoveLeft)
	s.Apply(CmdHardDrop)
	s.Apply(CmdMoveRight)
	s.Apply(CmdHardDrop)
	s.Apply(CmdHardDrop)
	require.Equal(t, 30, s.Score())

	s.Restart()
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Arena().FilledCount())
	assert.Equal(t, 1, s.Stats().Restarts)
	assert.Equal(t, 0, s.Stats().TopOuts)
	assert.Empty(t, s.TakeTopOuts())
}

func TestDrawOrder(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindT))

	type call struct {
		x, y int
		c    Cell
	}
	var calls []call
	s.Draw(func(x, y int, c Cell) { calls = append(calls, call{x, y, c}) })

	require.Len(t, calls, 8)
	for _, c := range calls[:4] {
		assert.Equal(t, Ghost, c.c)
		assert.GreaterOrEqual(t, c.y, 18)
	}
	for _, c := range calls[4:] {
		assert.Equal(t, Cell(1), c.c)
		assert.LessOrEqual(t, c.y, 2)
	}
}

func TestDrawIncludesLockedCells(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), KindSource(KindO))
	s.Apply(CmdHardDrop)

	locked := 0
	s.Draw(func(_, _ int, c Cell) {
		if c == Cell(2) {
			locked++
		}
	})
	// Four locked cells plus the four of the new active piece.
	assert.Equal(t, 8, locked)
}

func TestSessionDeterministic(t *testing.T) {
	script := []Command{CmdMoveLeft, CmdRotateCW, CmdHardDrop, CmdMoveRight, CmdMoveRight, CmdHardDrop, CmdRotateCCW, CmdSoftDrop, CmdHardDrop}

	run := func() (string, int, Stats) {
		s := newTestSession(t, DefaultSessionConfig(), rand.New(rand.NewSource(99)))
		for i := 0; i < 40; i++ {
			s.Frame(50*time.Millisecond, script[i%len(script)])
		}
		return s.Arena().String(), s.Score(), s.Stats()
	}

	board1, score1, stats1 := run()
	board2, score2, stats2 := run()
	assert.Equal(t, board1, board2)
	assert.Equal(t, score1, score2)
	assert.Equal(t, stats1, stats2)
}

func TestHardDropAlwaysTerminates(t *testing.T) {
	s := newTestSession(t, smallConfig(6, 8), rand.New(rand.NewSource(3)))
	for i := 0; i < 200; i++ {
		s.Apply(CmdHardDrop)
	}
	assert.Equal(t, 200, s.Stats().Pieces)
	assert.False(t, s.Arena().Collides(s.Active().Shape, s.Active().Pos))
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "hardDrop", CmdHardDrop.String())
	assert.Equal(t, "Command(0)", Command(0).String())
}
