package engine

// Snapshot is an independent copy of session state taken immediately before
// a mutating move. Extra carries the game-specific counters.
type Snapshot[C any, X any] struct {
	Board *Grid[C]
	Score int
	Extra X
}

// Capture copies the board with cloner and bundles it with score and extra.
func Capture[C any, X any](board *Grid[C], cloner func(C) C, score int, extra X) Snapshot[C, X] {
	return Snapshot[C, X]{
		Board: board.Clone(cloner),
		Score: score,
		Extra: extra,
	}
}

// History is a LIFO stack of snapshots used for undo. There is no redo:
// a popped snapshot is gone.
type History[S any] struct {
	items []S
	limit int
}

// NewHistory creates a history stack. limit <= 0 means unbounded; otherwise
// the oldest snapshot is dropped once the stack would exceed limit.
func NewHistory[S any](limit int) *History[S] {
	if limit < 0 {
		limit = 0
	}
	return &History[S]{limit: limit}
}

// Push records a snapshot.
func (h *History[S]) Push(s S) {
	h.items = append(h.items, s)
	if h.limit > 0 && len(h.items) > h.limit {
		// Drop the oldest entries.
		h.items = append(h.items[:0:0], h.items[len(h.items)-h.limit:]...)
	}
}

// Pop removes and returns the most recent snapshot.
func (h *History[S]) Pop() (S, bool) {
	if len(h.items) == 0 {
		var zero S
		return zero, false
	}
	last := h.items[len(h.items)-1]
	var zero S
	h.items[len(h.items)-1] = zero
	h.items = h.items[:len(h.items)-1]
	return last, true
}

// CanUndo reports whether the stack is non-empty.
func (h *History[S]) CanUndo() bool {
	return len(h.items) > 0
}

// Len returns the number of stored snapshots.
func (h *History[S]) Len() int {
	return len(h.items)
}

// Limit returns the configured bound (0 = unbounded).
func (h *History[S]) Limit() int {
	return h.limit
}

// Clear discards all snapshots.
func (h *History[S]) Clear() {
	clear(h.items)
	h.items = h.items[:0]
}
