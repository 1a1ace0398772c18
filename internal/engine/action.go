package engine

import "fmt"

// ActionKind identifies the variant of an Action.
type ActionKind uint8

const (
	KindNewGame ActionKind = iota
	KindUndo
	KindQuit
	KindPause
	KindHint
	KindSelect
	KindMove
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case KindNewGame:
		return "new-game"
	case KindUndo:
		return "undo"
	case KindQuit:
		return "quit"
	case KindPause:
		return "pause"
	case KindHint:
		return "hint"
	case KindSelect:
		return "select"
	case KindMove:
		return "move"
	default:
		return "unknown"
	}
}

// Action is a request submitted to a Session. The set of actions is closed:
// only the types declared in this file implement it.
type Action interface {
	Kind() ActionKind
	fmt.Stringer
	action()
}

// NewGame rebuilds the board and resets score, status and history.
type NewGame struct{}

// Undo restores the most recent snapshot.
type Undo struct{}

// Quit ends the game by user request.
type Quit struct{}

// Pause toggles between playing and paused.
type Pause struct{}

// Hint asks for a suggested move (matching game).
type Hint struct{}

// Select picks the group containing Pos (matching game).
type Select struct {
	Pos Pos
}

// Move steps the player one cell in Dir (pushing game).
type Move struct {
	Dir Direction
}

func (NewGame) Kind() ActionKind { return KindNewGame }
func (Undo) Kind() ActionKind    { return KindUndo }
func (Quit) Kind() ActionKind    { return KindQuit }
func (Pause) Kind() ActionKind   { return KindPause }
func (Hint) Kind() ActionKind    { return KindHint }
func (Select) Kind() ActionKind  { return KindSelect }
func (Move) Kind() ActionKind    { return KindMove }

func (NewGame) String() string  { return "new-game" }
func (Undo) String() string     { return "undo" }
func (Quit) String() string     { return "quit" }
func (Pause) String() string    { return "pause" }
func (Hint) String() string     { return "hint" }
func (a Select) String() string { return "select" + a.Pos.String() }
func (a Move) String() string   { return "move-" + a.Dir.String() }

func (NewGame) action() {}
func (Undo) action()    {}
func (Quit) action()    {}
func (Pause) action()   {}
func (Hint) action()    {}
func (Select) action()  {}
func (Move) action()    {}
