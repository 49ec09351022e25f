package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// ScoreSaver persists finished runs. *storage.Store satisfies it.
type ScoreSaver interface {
	SaveRun(run storage.Run) (storage.ScoreEntry, error)
}

// GameModel runs one game inside Bubble Tea: it feeds ticks and queued key
// actions to the game, renders its screen, and saves finished runs.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	saver     ScoreSaver
	config    core.RuntimeConfig
	sessionID string
	embedded  bool // Running inside a menu session; back returns to it
	loop      uint64

	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	saved      []storage.ScoreEntry

	quitting   bool
	backToMenu bool
}

// helpStyle renders the key hints under the board.
var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// NewGameModel creates a game model. saver may be nil to disable score saving.
func NewGameModel(game registry.Game, saver ScoreSaver, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		saver:      saver,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       h,
		loop:       nextLoop(),
	}
}

// WithSession tags saved runs with an SSH session ID and enables the back
// key for returning to the menu.
func (m GameModel) WithSession(sessionID string) GameModel {
	m.sessionID = sessionID
	m.embedded = true
	return m
}

// gameRows leaves the last terminal row for the help line.
func gameRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board keeps its size; only the viewport changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues game actions; quit and back leave immediately.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.saveCurrent()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.embedded {
			m.saveCurrent()
			m.backToMenu = true
		}
		return m, nil
	case core.ActionNone:
		return m, nil
	default:
		m.inputFrame.Add(action)
	}
	return m, nil
}

// handleTick runs one simulation step with the actions queued since the
// previous tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, run := range result.FinishedRuns {
		m.save(run)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveCurrent records the run in progress when leaving the game.
func (m *GameModel) saveCurrent() {
	state := m.game.State()
	if state.Score > 0 {
		m.save(core.RunResult{Score: state.Score, Lines: state.Lines})
	}
}

func (m *GameModel) save(run core.RunResult) {
	if m.saver == nil {
		return
	}
	entry, err := m.saver.SaveRun(storage.Run{
		GameID:    m.game.ID(),
		Score:     run.Score,
		Lines:     run.Lines,
		SessionID: m.sessionID,
	})
	if err != nil {
		return // Best-effort save, game continues regardless
	}
	m.saved = append(m.saved, entry)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Saved returns the runs recorded during this model's lifetime.
func (m GameModel) Saved() []storage.ScoreEntry {
	return m.saved
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a full-screen Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	var saver ScoreSaver
	if store != nil {
		saver = store
	}
	model := NewGameModel(game, saver, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
