package blocks

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Ghost is the cell value passed to draw callbacks for shadow cells.
// It is never stored in the arena.
const Ghost Cell = KindCount + 1

// MinArenaSize is the smallest width and height a session accepts; every
// piece fits at its spawn position on an empty arena of this size.
const MinArenaSize = 4

// Configuration errors reported by SessionConfig.Validate.
var (
	ErrInvalidInterval = errors.New("blocks: drop interval must be positive")
	ErrInvalidPoints   = errors.New("blocks: line points must be positive")
)

// Command is a discrete player command.
type Command int

const (
	CmdMoveLeft Command = iota + 1
	CmdMoveRight
	CmdSoftDrop
	CmdRotateCW
	CmdRotateCCW
	CmdHardDrop
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "moveLeft"
	case CmdMoveRight:
		return "moveRight"
	case CmdSoftDrop:
		return "softDrop"
	case CmdRotateCW:
		return "rotateCW"
	case CmdRotateCCW:
		return "rotateCCW"
	case CmdHardDrop:
		return "hardDrop"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// SessionConfig holds the values fixed for the lifetime of a session.
type SessionConfig struct {
	Width        int
	Height       int
	DropInterval time.Duration
	LinePoints   int // Award for the first row of a sweep
}

// DefaultSessionConfig returns the classic 12x20 arena with a one second drop.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Width:        12,
		Height:       20,
		DropInterval: time.Second,
		LinePoints:   10,
	}
}

// Validate checks the configuration before a session starts.
func (c SessionConfig) Validate() error {
	if c.Width < MinArenaSize || c.Height < MinArenaSize {
		return fmt.Errorf("%w: %dx%d (minimum %d)", ErrInvalidDimensions, c.Width, c.Height, MinArenaSize)
	}
	if c.DropInterval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, c.DropInterval)
	}
	if c.LinePoints <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoints, c.LinePoints)
	}
	return nil
}

// Stats are running counters since the session was created.
type Stats struct {
	Pieces   int // Pieces locked
	Lines    int // Rows cleared since the last board reset
	Total    int // Rows cleared over the whole session
	TopOuts  int
	Restarts int
}

// TopOut records a board reset caused by a piece that could not spawn.
type TopOut struct {
	Score int // Score wiped by the reset
	Lines int // Rows cleared on the board that was wiped
}

// FrameResult summarizes one call to Frame.
type FrameResult struct {
	Applied   int  // Commands that changed state
	Rejected  int  // Commands that were refused
	Locked    int  // Pieces locked during the frame
	Cleared   int  // Rows cleared during the frame
	Points    int  // Score gained during the frame
	ToppedOut bool // A top-out reset happened during the frame
	Shadow    Piece
	Redraw    bool
}

// DrawFunc receives one call per visible cell. Shadow cells carry Ghost.
type DrawFunc func(x, y int, c Cell)

// Session is the falling-block state machine. It owns the arena, the active
// piece, and the score; nothing else mutates them. A Session is not safe for
// concurrent use: the control loop that feeds it time and commands owns it.
type Session struct {
	cfg     SessionConfig
	arena   *Arena
	factory *Factory
	piece   Piece
	score   int
	dropAcc time.Duration

	stats     Stats
	topOuts   []TopOut
	listeners []func(score int)
}

// NewSession validates cfg and spawns the first piece.
func NewSession(cfg SessionConfig, src RandomSource) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	arena, err := NewArena(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		arena:   arena,
		factory: NewFactory(src, cfg.Width),
	}
	s.spawn()
	return s, nil
}

// OnScore registers a callback invoked with the current score after every
// lock and after every top-out reset.
func (s *Session) OnScore(fn func(score int)) {
	s.listeners = append(s.listeners, fn)
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// Config returns the configuration the session was built with.
func (s *Session) Config() SessionConfig { return s.cfg }

// Active returns the falling piece.
func (s *Session) Active() Piece { return s.piece }

// Arena returns a copy of the board.
func (s *Session) Arena() *Arena { return s.arena.Clone() }

// DropAccumulator returns time accumulated toward the next automatic drop.
func (s *Session) DropAccumulator() time.Duration { return s.dropAcc }

// Shadow returns the active piece moved to its landing row.
func (s *Session) Shadow() Piece {
	ghost := s.piece
	ghost.Pos.Y = Project(s.arena, s.piece.Shape, s.piece.Pos)
	return ghost
}

// TakeTopOuts returns and clears the top-outs recorded since the last call.
func (s *Session) TakeTopOuts() []TopOut {
	out := s.topOuts
	s.topOuts = nil
	return out
}

// Apply runs one command. It returns false when the command was rejected,
// in which case nothing changed.
func (s *Session) Apply(cmd Command) bool {
	switch cmd {
	case CmdMoveLeft:
		return s.shift(-1)
	case CmdMoveRight:
		return s.shift(1)
	case CmdSoftDrop:
		s.softDrop()
		return true
	case CmdRotateCW:
		return s.rotate(RotateCW)
	case CmdRotateCCW:
		return s.rotate(RotateCCW)
	case CmdHardDrop:
		s.hardDrop()
		return true
	default:
		return false
	}
}

// Advance feeds elapsed time to the drop timer. Once the accumulated time
// exceeds the drop interval the piece falls one row and the timer restarts.
func (s *Session) Advance(elapsed time.Duration) {
	s.dropAcc += elapsed
	if s.dropAcc > s.cfg.DropInterval {
		s.softDrop()
	}
}

// Frame runs one tick: queued commands in order, then the timer drop, then
// the shadow projection.
func (s *Session) Frame(elapsed time.Duration, cmds ...Command) FrameResult {
	before := s.stats
	beforeScore := s.score

	var res FrameResult
	for _, cmd := range cmds {
		if s.Apply(cmd) {
			res.Applied++
		} else {
			res.Rejected++
		}
	}
	s.Advance(elapsed)

	res.Locked = s.stats.Pieces - before.Pieces
	res.Cleared = s.stats.Total - before.Total
	res.ToppedOut = s.stats.TopOuts > before.TopOuts
	if !res.ToppedOut {
		res.Points = s.score - beforeScore
	}
	res.Shadow = s.Shadow()
	res.Redraw = true
	return res
}

// Restart wipes the board and score without counting a top-out.
func (s *Session) Restart() {
	s.arena.Reset()
	s.score = 0
	s.dropAcc = 0
	s.stats.Lines = 0
	s.stats.Restarts++
	s.spawn()
	s.notify()
}

// Draw reports every visible cell: locked cells, then the shadow, then the
// active piece, so the active piece wins where it overlaps its shadow.
func (s *Session) Draw(fn DrawFunc) {
	for y := 0; y < s.arena.h; y++ {
		for x, c := range s.arena.rows[y] {
			if c != Empty {
				fn(x, y, c)
			}
		}
	}
	ghost := s.Shadow()
	ghost.Shape.Each(func(x, y int, _ Cell) {
		fn(ghost.Pos.X+x, ghost.Pos.Y+y, Ghost)
	})
	s.piece.Shape.Each(func(x, y int, c Cell) {
		fn(s.piece.Pos.X+x, s.piece.Pos.Y+y, c)
	})
}

func (s *Session) shift(dx int) bool {
	next := s.piece.Pos
	next.X += dx
	if s.arena.Collides(s.piece.Shape, next) {
		return false
	}
	s.piece.Pos = next
	return true
}

func (s *Session) rotate(dir Rotation) bool {
	shape, pos, ok := ResolveRotation(s.arena, s.piece.Shape, s.piece.Pos, dir)
	if !ok {
		return false
	}
	s.piece.Shape = shape
	s.piece.Pos = pos
	return true
}

// softDrop moves the piece down one row, locking it if that row is taken.
func (s *Session) softDrop() {
	s.piece.Pos.Y++
	if s.arena.Collides(s.piece.Shape, s.piece.Pos) {
		s.piece.Pos.Y--
		s.lock()
	}
	s.dropAcc = 0
}

func (s *Session) hardDrop() {
	for !s.arena.Collides(s.piece.Shape, s.piece.Pos.Add(core.Point{Y: 1})) {
		s.piece.Pos.Y++
	}
	s.lock()
}

// lock merges the piece at its current position, sweeps full rows, scores
// them, and brings in the next piece.
func (s *Session) lock() {
	s.arena.Merge(s.piece.Shape, s.piece.Pos)
	swept := s.arena.Sweep(s.cfg.LinePoints)
	s.score += swept.Points
	s.stats.Pieces++
	s.stats.Lines += swept.Cleared
	s.stats.Total += swept.Cleared
	s.notify()
	s.spawn()
}

// spawn takes the next piece from the factory. A piece that collides on
// arrival tops out the board: arena and score reset and play continues.
func (s *Session) spawn() {
	s.piece = s.factory.Next()
	if !s.arena.Collides(s.piece.Shape, s.piece.Pos) {
		return
	}
	s.topOuts = append(s.topOuts, TopOut{Score: s.score, Lines: s.stats.Lines})
	s.stats.TopOuts++
	s.stats.Lines = 0
	s.arena.Reset()
	s.score = 0
	s.notify()
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		fn(s.score)
	}
}
