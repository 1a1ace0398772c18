package samegame

import "github.com/vovakirdan/tui-puzzles/internal/core"

// Tile is one cell of the board: either an occupied tile with a color or an
// empty placeholder left behind by removal, gravity or compaction.
type Tile struct {
	Color core.Color
	Empty bool
}

// Palette is the ordered set of tile colors. A board with n colors uses
// the first n entries.
var Palette = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorCyan,
	core.ColorMagenta,
	core.ColorPink,
}

// Filled returns an occupied tile of color c.
func Filled(c core.Color) Tile {
	return Tile{Color: c}
}

// EmptyTile returns a placeholder tile.
func EmptyTile() Tile {
	return Tile{Empty: true}
}

// Letter returns the single-letter code of the tile, '.' when empty.
func (t Tile) Letter() byte {
	if t.Empty {
		return '.'
	}
	for i, c := range Palette {
		if c == t.Color {
			return letters[i]
		}
	}
	return '?'
}

// letters are the codes of Palette, in the same order.
const letters = "RGBYOCMP"

func colorForLetter(b byte) (core.Color, bool) {
	for i := range len(letters) {
		if letters[i] == b {
			return Palette[i], true
		}
	}
	return core.ColorDefault, false
}

func sameColor(a, b Tile) bool {
	return a.Color == b.Color
}

func occupied(t Tile) bool {
	return !t.Empty
}
