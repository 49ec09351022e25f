package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// MenuItem is one selectable variant.
type MenuItem struct {
	GameID string
	Title  string
	Well   string // Default well size, e.g. "12x20"
	Best   int    // Stored high score, 0 when unknown
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuListStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
)

// menuExit records why the menu closed.
type menuExit int

const (
	menuOpen menuExit = iota
	menuSelected
	menuScoreboard
	menuQuit
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model
	exit   menuExit
}

// NewMenuModel lists the registered variants. store may be nil, in which
// case no best scores are shown.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		defaults := config.DefaultFor(g.ID)
		item := MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Well:   fmt.Sprintf("%dx%d", defaults.Arena.Width, defaults.Arena.Height),
		}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey moves the cursor or closes the menu with a result.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.exit = menuSelected
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.exit = menuScoreboard
		return m, tea.Quit
	case MenuActionQuit, MenuActionBack:
		m.exit = menuQuit
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.exit == menuQuit {
		return ""
	}
	width := m.config.ScreenW

	var list strings.Builder
	for i, item := range m.items {
		if i > 0 {
			list.WriteString("\n")
		}
		line := fmt.Sprintf("%-12s %s", item.Title, menuDimStyle.Render(item.Well))
		if item.Best > 0 {
			line += menuDimStyle.Render(fmt.Sprintf("  best %d", item.Best))
		}
		if i == m.cursor {
			list.WriteString(menuCursorStyle.Render("> ") + line)
		} else {
			list.WriteString("  " + line)
		}
	}
	if len(m.items) == 0 {
		list.WriteString(menuDimStyle.Render("No games registered"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B L O C K S"), width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(menuListStyle.Render(list.String()), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(m.keys), width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen item, or nil until one is chosen.
func (m MenuModel) Selected() *MenuItem {
	if m.exit != menuSelected {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.exit == menuQuit
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.exit == menuScoreboard
}

// Config returns the runtime config, including any resize seen by the menu.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers a single line within width, measured by printed width.
func centerText(text string, width int) string {
	visible := lipgloss.Width(text)
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu full-screen and reports what the user picked.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
