package sokoban

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

var (
	// ErrEmptyLevel is returned for a level without rows or columns.
	ErrEmptyLevel = errors.New("sokoban: empty level")
	// ErrNoPlayer is returned when a level has no player marker.
	ErrNoPlayer = errors.New("sokoban: player not found")
	// ErrMultiplePlayers is returned when a level has more than one player marker.
	ErrMultiplePlayers = errors.New("sokoban: more than one player")
)

// Parsed is a level ready to play.
type Parsed struct {
	Board        *Board
	Player       engine.Pos
	TotalTargets int
	OnTarget     int
}

// ParseLevel builds a board from text rows:
//
//	W wall     . target   P player   @ player on target
//	  floor    B box      $ box on target
//
// The common '#', '+' and '*' spellings of wall, player on target and box
// on target are accepted too. Rows shorter than the longest are padded
// with floor, and unknown characters are read as floor.
func ParseLevel(rows []string) (Parsed, error) {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if len(rows) == 0 || cols == 0 {
		return Parsed{}, ErrEmptyLevel
	}

	board, err := engine.NewGrid[Cell](len(rows), cols)
	if err != nil {
		return Parsed{}, err
	}

	var (
		out     = Parsed{Board: board}
		players []engine.Pos
	)
	for r, row := range rows {
		for c := range cols {
			var ch byte = ' '
			if c < len(row) {
				ch = row[c]
			}
			cell := Cell{}
			switch ch {
			case 'W', '#':
				cell.Base = BaseWall
			case '.':
				cell.Base = BaseTarget
			case 'P':
				cell.Occupant = OccupantPlayer
			case '@', '+':
				cell = Cell{Base: BaseTarget, Occupant: OccupantPlayer}
			case 'B':
				cell.Occupant = OccupantBox
			case '$', '*':
				cell = Cell{Base: BaseTarget, Occupant: OccupantBox}
			}
			if cell.Occupant == OccupantPlayer {
				players = append(players, engine.P(r, c))
			}
			board.Put(engine.P(r, c), cell)
		}
	}

	switch len(players) {
	case 0:
		return Parsed{}, ErrNoPlayer
	case 1:
		out.Player = players[0]
	default:
		return Parsed{}, fmt.Errorf("%w: %d markers", ErrMultiplePlayers, len(players))
	}

	out.TotalTargets = board.Count(isTarget)
	out.OnTarget = board.Count(boxOnTarget)
	return out, nil
}

// FormatLevel renders the board back to level text.
func FormatLevel(b *Board) []string {
	rows := make([]string, b.Rows())
	buf := make([]byte, b.Cols())
	for r := range b.Rows() {
		for c := range b.Cols() {
			buf[c] = b.At(engine.P(r, c)).Symbol()
		}
		rows[r] = strings.TrimRight(string(buf), " ")
	}
	return rows
}

// CountOnTarget rescans the board for boxes resting on targets.
func CountOnTarget(b *Board) int {
	return b.Count(boxOnTarget)
}
