package core

// RuntimeConfig contains configuration passed to games at (re)start.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for board generation; 0 means time-based
	Variant string // Difficulty name or level ID; empty means the game default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState summarizes a game for the platform.
type GameState struct {
	Score    int    // Current score (points or move count)
	Status   string // Engine status name
	Variant  string // Difficulty or level being played
	GameOver bool   // Won, lost or quit
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State   GameState
	Message string // Short feedback for the status line, e.g. a rejection reason
}

// ScoreOrder tells storage how to rank scores of a game.
type ScoreOrder int

const (
	HigherIsBetter ScoreOrder = iota // points
	LowerIsBetter                    // move counts
)

// Better reports whether a beats b under this order.
func (o ScoreOrder) Better(a, b int) bool {
	if o == LowerIsBetter {
		return a < b
	}
	return a > b
}

// SQL returns the ORDER BY direction for this order.
func (o ScoreOrder) SQL() string {
	if o == LowerIsBetter {
		return "ASC"
	}
	return "DESC"
}
