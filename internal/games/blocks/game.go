package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	id      string
	title   string
	runtime core.RuntimeConfig
	cfg     config.BlocksConfig
	colors  []core.Color

	session *Session
	rng     *rand.Rand
	tick    uint64
	best    int
	paused  bool
	speed   float64 // Drop speed multiplier; 0 when scaling is off
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
	registry.Register("blocks_mini", func() registry.Game {
		return NewMini()
	})
}

// New creates the classic 12x20 game.
func New() *Game {
	return &Game{id: "blocks", title: "Blocks"}
}

// NewMini creates the 8x16 variant.
func NewMini() *Game {
	return &Game{id: "blocks_mini", title: "Blocks Mini"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBlocks(g.id, configPath)
	if err != nil || cfg.Validate() != nil {
		cfg = config.DefaultFor(g.id)
	}
	g.cfg = cfg
	g.colors, _ = cfg.Colors()

	difficulty := config.NewDifficultyManager(cfg.Difficulty)
	difficulty.ApplyPreset(difficultyPreset)
	g.speed = 0
	if difficulty.IsEnabled() {
		g.speed = difficulty.Speed()
	}
	sc := SessionConfig{
		Width:        cfg.Arena.Width,
		Height:       cfg.Arena.Height,
		DropInterval: difficulty.DropInterval(cfg.DropInterval()),
		LinePoints:   cfg.Scoring.LinePoints,
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	session, err := NewSession(sc, g.rng)
	if err != nil {
		// Validated above; only reachable with a broken default.
		session, _ = NewSession(DefaultSessionConfig(), g.rng)
	}
	g.session = session
	g.session.OnScore(g.trackBest)

	g.tick = 0
	g.best = 0
	g.paused = false
}

func (g *Game) trackBest(score int) {
	if score > g.best {
		g.best = score
	}
}

// Step advances the simulation by one tick. Commands queued in the frame are
// applied in arrival order before the drop timer runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if in.Has(core.ActionRestart) {
		var runs []core.RunResult
		if g.session.Score() > 0 {
			runs = append(runs, core.RunResult{Score: g.session.Score(), Lines: g.session.Stats().Lines})
		}
		g.session.Restart()
		g.paused = false
		return core.StepResult{State: g.State(), Redraw: true, FinishedRuns: runs}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State(), Redraw: true}
	}

	var cmds []Command
	for _, a := range in.Actions() {
		if cmd, ok := CommandFor(a); ok {
			cmds = append(cmds, cmd)
		}
	}
	res := g.session.Frame(g.tickDuration(), cmds...)

	var runs []core.RunResult
	for _, t := range g.session.TakeTopOuts() {
		if t.Score > 0 {
			runs = append(runs, core.RunResult{Score: t.Score, Lines: t.Lines})
		}
	}

	return core.StepResult{State: g.State(), Redraw: res.Redraw, FinishedRuns: runs}
}

// CommandFor maps a platform action to an engine command.
func CommandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionLeft:
		return CmdMoveLeft, true
	case core.ActionRight:
		return CmdMoveRight, true
	case core.ActionSoftDrop:
		return CmdSoftDrop, true
	case core.ActionRotateCCW:
		return CmdRotateCCW, true
	case core.ActionRotateCW:
		return CmdRotateCW, true
	case core.ActionHardDrop:
		return CmdHardDrop, true
	default:
		return 0, false
	}
}

// tickDuration converts the fixed tick rate into elapsed time.
func (g *Game) tickDuration() time.Duration {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// State returns the current game state. A top-out resets the board and play
// continues, so the game never reports GameOver.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:  g.session.Score(),
		Lines:  g.session.Stats().Lines,
		Paused: g.paused,
	}
}

// Session exposes the underlying engine.
func (g *Game) Session() *Session {
	return g.session
}
