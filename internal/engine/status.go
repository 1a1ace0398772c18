package engine

// Status is the lifecycle state of a game session.
type Status uint8

const (
	StatusInitializing Status = iota
	StatusPlaying
	StatusPaused
	StatusWon
	StatusLost
	StatusQuitByUser
	StatusReadyToStart
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusQuitByUser:
		return "quit"
	case StatusReadyToStart:
		return "ready"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a game (won, lost or quit).
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost || s == StatusQuitByUser
}

// Allows reports whether an action of the given kind may be submitted while
// the session is in this status. New game and undo are accepted everywhere;
// undo is additionally gated by history. Quit is accepted until the user
// has quit. Game-specific actions are accepted only while playing.
func (s Status) Allows(kind ActionKind) bool {
	switch kind {
	case KindNewGame, KindUndo:
		return true
	case KindQuit:
		return s != StatusQuitByUser
	case KindPause:
		return s == StatusPlaying || s == StatusPaused
	case KindSelect, KindMove, KindHint:
		return s == StatusPlaying
	default:
		return false
	}
}
