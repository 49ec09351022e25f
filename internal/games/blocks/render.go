package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Each arena cell is drawn two columns wide so blocks look square.
const cellWidth = 2

var (
	blockGlyph  = []rune("██")
	shadowGlyph = []rune("[]")
)

// Layout describes where the arena lands on a screen.
type Layout struct {
	Board core.Rect // Frame around the arena, border included
	Panel core.Point
	Fits  bool
	NeedW int
	NeedH int
}

// LayoutFor computes the board placement for an arena of w x h cells on a
// screen of screenW x screenH characters.
func LayoutFor(w, h, screenW, screenH int) Layout {
	boardW := w*cellWidth + 2
	boardH := h + 2
	l := Layout{NeedW: boardW, NeedH: boardH + 2}
	l.Fits = screenW >= l.NeedW && screenH >= l.NeedH

	x := (screenW - boardW) / 2
	if x < 0 {
		x = 0
	}
	l.Board = core.NewRect(x, 2, boardW, boardH)
	l.Panel = core.Point{X: l.Board.Right() + 2, Y: l.Board.Y + 1}
	return l
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	cfg := g.session.Config()
	l := LayoutFor(cfg.Width, cfg.Height, dst.Width(), dst.Height())

	g.renderHUD(dst)
	if !l.Fits {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", l.NeedW, l.NeedH))
		return
	}

	dst.DrawBox(l.Board, core.ColorWhite)
	inner := core.Point{X: l.Board.X + 1, Y: l.Board.Y + 1}
	g.session.Draw(func(x, y int, c Cell) {
		if x < 0 || y < 0 || x >= cfg.Width || y >= cfg.Height {
			return
		}
		glyph := blockGlyph
		if c == Ghost {
			glyph = shadowGlyph
		}
		sx := inner.X + x*cellWidth
		sy := inner.Y + y
		for i, r := range glyph {
			dst.SetColored(sx+i, sy, r, g.colorOf(c))
		}
	})

	g.renderPanel(dst, l)

	if g.paused {
		g.renderOverlay(dst, l, "Paused", "P to resume")
	}
}

// colorOf returns the palette color for a cell value.
func (g *Game) colorOf(c Cell) core.Color {
	if int(c) < len(g.colors) {
		return g.colors[c]
	}
	return core.ColorDefault
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Lines: %d  Best: %d",
		g.title, g.session.Score(), g.session.Stats().Lines, g.best)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderPanel draws stats and controls beside the board when there is room.
func (g *Game) renderPanel(dst *core.Screen, l Layout) {
	stats := g.session.Stats()
	speed := "fixed"
	if g.speed > 0 {
		speed = fmt.Sprintf("x%.1f", g.speed)
	}
	lines := []string{
		fmt.Sprintf("Score   %d", g.session.Score()),
		fmt.Sprintf("Lines   %d", stats.Lines),
		fmt.Sprintf("Pieces  %d", stats.Pieces),
		fmt.Sprintf("Resets  %d", stats.TopOuts),
		fmt.Sprintf("Speed   %s", speed),
		"",
		"←/→    move",
		"↓      drop",
		"↑ / z  rotate",
		"space  slam",
		"p      pause",
		"r      restart",
	}

	width := 0
	for _, s := range lines {
		width = max(width, len([]rune(s)))
	}
	if l.Panel.X+width > dst.Width() {
		return
	}
	for i, s := range lines {
		dst.DrawTextColored(l.Panel.X, l.Panel.Y+i, s, core.ColorGray)
	}
}

// renderOverlay draws a centered message box over the board.
func (g *Game) renderOverlay(dst *core.Screen, l Layout, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	box := core.NewRect(l.Board.X+(l.Board.W-boxW)/2, l.Board.Y+l.Board.H/2-2, boxW, 4)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawText(box.X+2, box.Y+1, line1)
	dst.DrawText(box.X+2, box.Y+2, line2)
}
