package engine

import "errors"

var (
	// ErrOutOfBounds is returned when a grid coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("engine: coordinate out of bounds")

	// ErrInvalidDimensions is returned when a grid is constructed with a
	// non-positive number of rows or columns.
	ErrInvalidDimensions = errors.New("engine: grid dimensions must be positive")
)
