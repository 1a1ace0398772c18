// Package engine provides the game-state engine shared by the grid puzzles:
// a fixed-size grid, connected-region search, snapshot history, the status
// machine and the single move-submission entry point.
//
// The package has no UI dependencies. Front-ends submit Actions to a Session
// and observe Events through listeners.
package engine
