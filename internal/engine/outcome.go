package engine

// OutcomeKind classifies the result of a submitted action.
type OutcomeKind uint8

const (
	// OutcomeIgnored: the action was not accepted in the current status,
	// or was nil. Nothing changed.
	OutcomeIgnored OutcomeKind = iota
	// OutcomeRejected: a game rule refused the move. Nothing changed.
	OutcomeRejected
	// OutcomeApplied: a group was removed (matching game).
	OutcomeApplied
	// OutcomeMoved: the player stepped onto an empty cell (pushing game).
	OutcomeMoved
	// OutcomePushed: the player pushed a box (pushing game).
	OutcomePushed
	OutcomeStarted
	OutcomeUndone
	OutcomeUndoUnavailable
	OutcomeQuit
	OutcomePaused
	OutcomeResumed
	OutcomeHinted
	OutcomeFailed
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRejected:
		return "rejected"
	case OutcomeApplied:
		return "applied"
	case OutcomeMoved:
		return "moved"
	case OutcomePushed:
		return "pushed"
	case OutcomeStarted:
		return "started"
	case OutcomeUndone:
		return "undone"
	case OutcomeUndoUnavailable:
		return "undo-unavailable"
	case OutcomeQuit:
		return "quit"
	case OutcomePaused:
		return "paused"
	case OutcomeResumed:
		return "resumed"
	case OutcomeHinted:
		return "hinted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is returned by Session.Submit.
type Outcome struct {
	Kind    OutcomeKind
	Reason  string // Set for Rejected, Ignored and Failed
	Removed int    // Tiles removed (matching game)
	Points  int    // Score delta of this action
	Group   []Pos  // Suggested group for OutcomeHinted
	Err     error  // Set for OutcomeFailed
}

// Mutated reports whether the action changed the board.
func (o Outcome) Mutated() bool {
	switch o.Kind {
	case OutcomeApplied, OutcomeMoved, OutcomePushed, OutcomeStarted, OutcomeUndone:
		return true
	default:
		return false
	}
}

// Rejected builds a rejection outcome.
func Rejected(reason string) Outcome {
	return Outcome{Kind: OutcomeRejected, Reason: reason}
}
