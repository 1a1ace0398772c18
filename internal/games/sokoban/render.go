package sokoban

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

const (
	cellWidth = 2
	hudHeight = 4
	footerH   = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	var (
		board    *Board
		onTarget int
		total    int
		state    = g.State()
	)
	g.session.View(func(engine.Game) {
		if b := g.model.Board(); b != nil {
			board = b.Clone(nil)
		}
		onTarget, total = g.model.OnTarget(), g.model.TotalTargets()
	})
	if board == nil {
		dst.DrawTextCentered(dst.Height()/2, "No level loaded")
		if g.message != "" {
			dst.DrawTextCentered(dst.Height()/2+1, g.message)
		}
		return
	}

	boardW := board.Cols() * cellWidth
	boardH := board.Rows()
	area := core.NewRect(0, 0, dst.Width(), dst.Height())
	if !area.Fits(boardW, boardH+hudHeight+footerH) {
		y := dst.Height() / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, "Please resize terminal")
		return
	}

	frame := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerH).Centered(boardW, boardH)

	dst.DrawTextCentered(0, "Sokoban: "+g.model.Level().Title())
	dst.DrawText(frame.X, 1, fmt.Sprintf("Moves: %d", state.Score))
	dst.DrawText(frame.X, 2, fmt.Sprintf("Boxes: %d/%d  %s", onTarget, total, state.Status))

	for r := range board.Rows() {
		for c := range board.Cols() {
			glyph, color := cellGlyph(board.At(engine.P(r, c)))
			x := frame.X + c*cellWidth
			dst.SetColored(x, frame.Y+r, glyph, color)
			if glyph == '█' {
				dst.SetColored(x+1, frame.Y+r, glyph, color)
			}
		}
	}

	y := frame.Y + boardH + 1
	switch {
	case state.Won:
		dst.DrawTextColored(frame.X, y, "Solved! Enter: next level  R: replay", core.ColorGreen)
	case state.Paused:
		dst.DrawTextColored(frame.X, y, "Paused. P: resume", core.ColorYellow)
	case g.message != "":
		dst.DrawText(frame.X, y, g.message)
	}
	dst.DrawTextColored(frame.X, y+1, "Arrows: move  U: undo  R: restart  Esc: menu", core.ColorGray)
}

func cellGlyph(c Cell) (rune, core.Color) {
	switch {
	case c.Base == BaseWall:
		return '█', core.ColorGray
	case c.Occupant == OccupantPlayer:
		return '@', core.ColorCyan
	case boxOnTarget(c):
		return '■', core.ColorGreen
	case c.Occupant == OccupantBox:
		return '■', core.ColorOrange
	case c.Base == BaseTarget:
		return '·', core.ColorYellow
	default:
		return ' ', core.ColorDefault
	}
}
