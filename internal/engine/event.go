package engine

import "sync"

// Event is a notification emitted by a game. The set of events is closed:
// only the types declared in this file implement it.
type Event interface {
	event()
}

// GameStarted is emitted after a board has been (re)built.
type GameStarted struct {
	Game    string
	Variant string // Difficulty name or level ID
}

// BoardChanged is emitted after any board mutation, including undo.
type BoardChanged struct{}

// ScoreChanged is emitted when the score takes a new value.
type ScoreChanged struct {
	Score int
}

// StatusChanged is emitted on every status transition.
type StatusChanged struct {
	From  Status
	To    Status
	Score int // Score at the time of the transition
}

// MoveRejected is emitted when a game rule refuses a move.
type MoveRejected struct {
	Reason string
}

// TilesRemoved is emitted after a successful group removal.
type TilesRemoved struct {
	Count  int
	Points int
}

// UndoPerformed is emitted after a snapshot has been restored.
type UndoPerformed struct{}

// UndoUnavailable is emitted when undo is requested with empty history.
type UndoUnavailable struct{}

// HintAvailable carries the suggested group.
type HintAvailable struct {
	Group []Pos
}

// HintUnavailable is emitted when no move can be suggested.
type HintUnavailable struct{}

// LevelLoadFailed is emitted when initialization input is invalid.
type LevelLoadFailed struct {
	Err error
}

// GameQuit is emitted when the user quits.
type GameQuit struct{}

func (GameStarted) event()     {}
func (BoardChanged) event()    {}
func (ScoreChanged) event()    {}
func (StatusChanged) event()   {}
func (MoveRejected) event()    {}
func (TilesRemoved) event()    {}
func (UndoPerformed) event()   {}
func (UndoUnavailable) event() {}
func (HintAvailable) event()   {}
func (HintUnavailable) event() {}
func (LevelLoadFailed) event() {}
func (GameQuit) event()        {}

// Listener receives events synchronously on the goroutine that submitted
// the action, with the session lock held. Listeners must not call back into
// the session.
type Listener func(Event)

// Bus is a registry of listeners. The zero value is ready to use.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

// Subscribe registers l and returns a function that removes it.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[int]Listener)
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers e to every listener in subscription order.
func (b *Bus) Emit(e Event) {
	b.mu.RLock()
	targets := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		targets = append(targets, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, l := range targets {
		l(e)
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Forward returns a listener that sends events to ch without blocking.
// Events are dropped when ch is full.
func Forward(ch chan<- Event) Listener {
	return func(e Event) {
		select {
		case ch <- e:
		default:
		}
	}
}
