package sokoban

import (
	"errors"

	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

// ErrWallOccupant is returned when something is placed on a wall.
var ErrWallOccupant = errors.New("sokoban: wall cannot hold an occupant")

// Base is the immutable terrain of a cell.
type Base uint8

const (
	BaseFloor Base = iota
	BaseWall
	BaseTarget
)

// Occupant is what currently stands on a cell.
type Occupant uint8

const (
	OccupantNone Occupant = iota
	OccupantPlayer
	OccupantBox
)

// Cell is one square of the level.
type Cell struct {
	Base     Base
	Occupant Occupant
}

// Board is the grid of cells.
type Board = engine.Grid[Cell]

// WithOccupant returns c holding o. Walls only accept OccupantNone.
func (c Cell) WithOccupant(o Occupant) (Cell, error) {
	if c.Base == BaseWall && o != OccupantNone {
		return c, ErrWallOccupant
	}
	c.Occupant = o
	return c, nil
}

// Walkable reports whether the player or a box may enter the cell.
func (c Cell) Walkable() bool {
	return c.Base != BaseWall && c.Occupant == OccupantNone
}

// Symbol returns the level-file character for the cell.
func (c Cell) Symbol() byte {
	switch {
	case c.Base == BaseWall:
		return 'W'
	case c.Occupant == OccupantPlayer && c.Base == BaseTarget:
		return '@'
	case c.Occupant == OccupantPlayer:
		return 'P'
	case c.Occupant == OccupantBox && c.Base == BaseTarget:
		return '$'
	case c.Occupant == OccupantBox:
		return 'B'
	case c.Base == BaseTarget:
		return '.'
	default:
		return ' '
	}
}

func boxOnTarget(c Cell) bool {
	return c.Occupant == OccupantBox && c.Base == BaseTarget
}

func isTarget(c Cell) bool {
	return c.Base == BaseTarget
}
