package engine

// Region returns the maximal 4-connected set of positions reachable from
// start through cells that are eligible and same-valued as the start cell.
// The start position is included. An off-grid or ineligible start yields nil.
//
// The search is an iterative depth-first traversal with an explicit stack;
// every cell is visited at most once. Results are never cached, so callers
// must search again after any board mutation.
func Region[T any](g *Grid[T], start Pos, same func(a, b T) bool, eligible func(T) bool) []Pos {
	if !g.Contains(start) {
		return nil
	}
	visited := make([]bool, g.rows*g.cols)
	return region(g, start, same, eligible, visited)
}

// region runs the flood fill using a caller-owned visited array, so a
// full-board scan can share it across starting cells.
func region[T any](g *Grid[T], start Pos, same func(a, b T) bool, eligible func(T) bool, visited []bool) []Pos {
	origin := g.cells[g.index(start.Row, start.Col)]
	if !eligible(origin) {
		return nil
	}

	var found []Pos
	stack := []Pos{start}
	visited[g.index(start.Row, start.Col)] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		found = append(found, cur)

		for _, d := range Directions {
			next := cur.Step(d)
			if !g.Contains(next) {
				continue
			}
			idx := g.index(next.Row, next.Col)
			if visited[idx] {
				continue
			}
			cell := g.cells[idx]
			if !eligible(cell) || !same(origin, cell) {
				continue
			}
			visited[idx] = true
			stack = append(stack, next)
		}
	}

	return found
}

// ScanRegions visits every region of eligible cells exactly once, scanning
// start cells in row-major order with a single visited array shared across
// the whole board. visit returns false to stop the scan early.
func ScanRegions[T any](g *Grid[T], same func(a, b T) bool, eligible func(T) bool, visit func(group []Pos) bool) {
	visited := make([]bool, g.rows*g.cols)
	for r := range g.rows {
		for c := range g.cols {
			idx := g.index(r, c)
			if visited[idx] || !eligible(g.cells[idx]) {
				continue
			}
			group := region(g, Pos{Row: r, Col: c}, same, eligible, visited)
			if !visit(group) {
				return
			}
		}
	}
}

// HasRegion reports whether any region of at least minSize cells exists.
func HasRegion[T any](g *Grid[T], minSize int, same func(a, b T) bool, eligible func(T) bool) bool {
	found := false
	ScanRegions(g, same, eligible, func(group []Pos) bool {
		if len(group) >= minSize {
			found = true
			return false
		}
		return true
	})
	return found
}
