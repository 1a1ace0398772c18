package samegame

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

const (
	cellWidth = 3 // " ● " or "[●]" under the cursor
	hudHeight = 3
	footerH   = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	var (
		board *Board
		state = g.State()
	)
	g.session.View(func(engine.Game) {
		if b := g.model.Board(); b != nil {
			board = b.Clone(nil)
		}
	})
	if board == nil {
		dst.DrawTextCentered(dst.Height()/2, "No board")
		return
	}

	boardW := board.Cols()*cellWidth + 2
	boardH := board.Rows() + 2
	area := core.NewRect(0, 0, dst.Width(), dst.Height())
	if !area.Fits(boardW, boardH+hudHeight+footerH) {
		renderTooSmall(dst)
		return
	}

	frame := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerH).Centered(boardW, boardH)
	g.renderHUD(dst, frame, state)
	dst.DrawBox(frame)
	g.renderTiles(dst, board, frame.X+1, frame.Y+1)
	g.renderFooter(dst, frame, state)
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, frame core.Rect, state core.GameState) {
	dst.DrawTextCentered(0, "SameGame")
	dst.DrawText(frame.X, 1, fmt.Sprintf("Score: %d", state.Score))
	info := fmt.Sprintf("%s  %s", strings.ToUpper(state.Variant), state.Status)
	dst.DrawText(max(frame.Right()-len(info), frame.X), 1, info)
}

func (g *Game) renderTiles(dst *core.Screen, b *Board, x0, y0 int) {
	for r := range b.Rows() {
		for c := range b.Cols() {
			p := engine.P(r, c)
			t := b.At(p)
			x := x0 + c*cellWidth
			y := y0 + r

			glyph, color := '●', t.Color
			switch {
			case t.Empty:
				glyph, color = '·', core.ColorGray
			case g.hint[p]:
				glyph = '◆'
			}
			dst.SetColored(x+1, y, glyph, color)

			if p == g.cursor {
				dst.SetColored(x, y, '[', core.ColorBrightWhite)
				dst.SetColored(x+2, y, ']', core.ColorBrightWhite)
			}
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, frame core.Rect, state core.GameState) {
	y := frame.Bottom()
	switch {
	case state.Won:
		dst.DrawTextColored(frame.X, y, "You cleared the board! R: new game", core.ColorGreen)
	case state.GameOver:
		dst.DrawTextColored(frame.X, y, "Game over. U: undo  R: new game", core.ColorRed)
	case state.Paused:
		dst.DrawTextColored(frame.X, y, "Paused. P: resume", core.ColorYellow)
	case g.message != "":
		dst.DrawText(frame.X, y, g.message)
	}
	dst.DrawTextColored(frame.X, y+1, "Arrows: move  Enter: remove  U: undo  ?: hint  Esc: menu", core.ColorGray)
}

// labelRows prefixes rows with their index and adds a column header.
func labelRows(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("    ")
	for c := range len(rows[0]) {
		fmt.Fprintf(&sb, "%-3d", c)
	}
	sb.WriteString("\n")
	for r, row := range rows {
		fmt.Fprintf(&sb, "%2d| ", r)
		for i := range len(row) {
			fmt.Fprintf(&sb, "%c  ", row[i])
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
