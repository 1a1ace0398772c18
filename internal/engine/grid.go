package engine

import "fmt"

// Grid is a fixed-size rectangular container of cell values.
// Cells are stored in row-major order: index = row*cols + col.
// Dimensions never change after construction; a board of a different size
// is always a new Grid.
type Grid[T any] struct {
	rows  int
	cols  int
	cells []T
}

// NewGrid creates a grid with every cell set to the zero value of T.
func NewGrid[T any](rows, cols int) (*Grid[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid[T]{
		rows:  rows,
		cols:  cols,
		cells: make([]T, rows*cols),
	}, nil
}

// NewGridFunc creates a grid and fills it using supplier.
func NewGridFunc[T any](rows, cols int, supplier func(Pos) T) (*Grid[T], error) {
	g, err := NewGrid[T](rows, cols)
	if err != nil {
		return nil, err
	}
	g.Fill(supplier)
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid[T]) Cols() int {
	return g.cols
}

// IsValid reports whether (row, col) lies inside the grid.
func (g *Grid[T]) IsValid(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Contains reports whether p lies inside the grid.
func (g *Grid[T]) Contains(p Pos) bool {
	return g.IsValid(p.Row, p.Col)
}

func (g *Grid[T]) index(row, col int) int {
	return row*g.cols + col
}

// Get returns the cell at (row, col).
func (g *Grid[T]) Get(row, col int) (T, error) {
	if !g.IsValid(row, col) {
		var zero T
		return zero, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[g.index(row, col)], nil
}

// Set replaces the cell at (row, col).
func (g *Grid[T]) Set(row, col int, v T) error {
	if !g.IsValid(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	g.cells[g.index(row, col)] = v
	return nil
}

// At returns the cell at p, or the zero value if p is off the grid.
func (g *Grid[T]) At(p Pos) T {
	if !g.Contains(p) {
		var zero T
		return zero
	}
	return g.cells[g.index(p.Row, p.Col)]
}

// Put stores v at p. Off-grid positions are ignored and reported as false.
func (g *Grid[T]) Put(p Pos, v T) bool {
	if !g.Contains(p) {
		return false
	}
	g.cells[g.index(p.Row, p.Col)] = v
	return true
}

// Fill sets every cell to the value returned by supplier for its position.
func (g *Grid[T]) Fill(supplier func(Pos) T) {
	for r := range g.rows {
		for c := range g.cols {
			g.cells[g.index(r, c)] = supplier(Pos{Row: r, Col: c})
		}
	}
}

// Clone returns a deep copy of the grid. cloner is applied to every cell;
// a nil cloner copies cell values as-is, which is a deep copy for plain
// value types.
func (g *Grid[T]) Clone(cloner func(T) T) *Grid[T] {
	cells := make([]T, len(g.cells))
	if cloner == nil {
		copy(cells, g.cells)
	} else {
		for i, v := range g.cells {
			cells[i] = cloner(v)
		}
	}
	return &Grid[T]{
		rows:  g.rows,
		cols:  g.cols,
		cells: cells,
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(p Pos, v T)) {
	for r := range g.rows {
		for c := range g.cols {
			fn(Pos{Row: r, Col: c}, g.cells[g.index(r, c)])
		}
	}
}

// Count returns the number of cells matching pred.
func (g *Grid[T]) Count(pred func(T) bool) int {
	n := 0
	for _, v := range g.cells {
		if pred(v) {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same dimensions and every pair
// of cells satisfies eq.
func (g *Grid[T]) Equal(other *Grid[T], eq func(a, b T) bool) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if !eq(g.cells[i], other.cells[i]) {
			return false
		}
	}
	return true
}
