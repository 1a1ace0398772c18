package samegame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

// Board is the grid of tiles.
type Board = engine.Grid[Tile]

// ErrInvalidLayout is returned by ParseBoard for malformed text.
var ErrInvalidLayout = errors.New("samegame: invalid board layout")

// FindGroup returns the connected same-color group containing p, or nil
// when p is off the board or empty.
func FindGroup(b *Board, p engine.Pos) []engine.Pos {
	return engine.Region(b, p, sameColor, occupied)
}

// HasMove reports whether any removable group exists.
func HasMove(b *Board) bool {
	return engine.HasRegion(b, MinGroup, sameColor, occupied)
}

// IsCleared reports whether every tile is empty.
func IsCleared(b *Board) bool {
	return b.Count(occupied) == 0
}

// RemoveTiles marks every position of group empty.
func RemoveTiles(b *Board, group []engine.Pos) {
	for _, p := range group {
		b.Put(p, EmptyTile())
	}
}

// ApplyGravity lets tiles fall to the bottom of their column, keeping their
// relative order. Each column is scanned bottom-up with the next free slot.
func ApplyGravity(b *Board) {
	for c := range b.Cols() {
		slot := b.Rows() - 1
		for r := b.Rows() - 1; r >= 0; r-- {
			t := b.At(engine.P(r, c))
			if t.Empty {
				continue
			}
			if r != slot {
				b.Put(engine.P(slot, c), t)
				b.Put(engine.P(r, c), EmptyTile())
			}
			slot--
		}
	}
}

// CompactColumns shifts non-empty columns left over fully empty ones,
// keeping column order. Trailing columns end up empty.
func CompactColumns(b *Board) {
	write := 0
	for read := range b.Cols() {
		if columnEmpty(b, read) {
			continue
		}
		if read != write {
			for r := range b.Rows() {
				b.Put(engine.P(r, write), b.At(engine.P(r, read)))
				b.Put(engine.P(r, read), EmptyTile())
			}
		}
		write++
	}
}

func columnEmpty(b *Board, c int) bool {
	for r := range b.Rows() {
		if !b.At(engine.P(r, c)).Empty {
			return false
		}
	}
	return true
}

// Settle runs gravity followed by compaction.
func Settle(b *Board) {
	ApplyGravity(b)
	CompactColumns(b)
}

// EqualBoards compares two boards tile by tile. Empty tiles are equal
// regardless of their stale color.
func EqualBoards(a, b *Board) bool {
	return a.Equal(b, func(x, y Tile) bool {
		if x.Empty || y.Empty {
			return x.Empty == y.Empty
		}
		return x.Color == y.Color
	})
}

// ParseBoard builds a board from rows of color letters (R G B Y O C M P)
// and '.' for empty cells. All rows must have the same length.
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidLayout)
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidLayout, i, len(row), cols)
		}
	}

	b, err := engine.NewGrid[Tile](len(rows), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c := range len(row) {
			ch := strings.ToUpper(row[c : c+1])[0]
			if ch == '.' {
				b.Put(engine.P(r, c), EmptyTile())
				continue
			}
			color, ok := colorForLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown tile %q at (%d,%d)", ErrInvalidLayout, row[c], r, c)
			}
			b.Put(engine.P(r, c), Filled(color))
		}
	}
	return b, nil
}

// FormatBoard renders the board as rows of letters, the inverse of
// ParseBoard.
func FormatBoard(b *Board) []string {
	rows := make([]string, b.Rows())
	buf := make([]byte, b.Cols())
	for r := range b.Rows() {
		for c := range b.Cols() {
			buf[c] = b.At(engine.P(r, c)).Letter()
		}
		rows[r] = string(buf)
	}
	return rows
}
