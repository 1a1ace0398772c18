package sokoban

import (
	"errors"

	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban/levels"
)

// ID is the registry identifier of the game.
const ID = "sokoban"

// Rejection reasons reported in MoveRejected events.
const (
	ReasonOutOfBounds    = "player move out of bounds"
	ReasonWall           = "cannot move into a wall"
	ReasonBoxOutOfBounds = "cannot push box out of bounds"
	ReasonBoxBlocked     = "box is blocked"
	ReasonUnsupported    = "action not supported"
)

// Extra is the per-move state saved alongside the board.
type Extra struct {
	Player   engine.Pos
	OnTarget int
}

type snapshot = engine.Snapshot[Cell, Extra]

// Model is the box-pushing game state. It implements engine.Game; use it
// through an engine.Session. The score counts accepted moves.
type Model struct {
	machine engine.Machine
	history *engine.History[snapshot]
	level   levels.Level

	board        *Board
	player       engine.Pos
	totalTargets int
	onTarget     int
}

// NewModel creates a model for level.
func NewModel(level levels.Level, historyLimit int) *Model {
	return &Model{
		history: engine.NewHistory[snapshot](historyLimit),
		level:   level,
	}
}

// ID returns the game identifier.
func (m *Model) ID() string {
	return ID
}

// Machine returns the status/score/event state.
func (m *Model) Machine() *engine.Machine {
	return &m.machine
}

// Level returns the level being played.
func (m *Model) Level() levels.Level {
	return m.level
}

// Board returns the live board. Callers must not modify it.
func (m *Model) Board() *Board {
	return m.board
}

// Player returns the player position.
func (m *Model) Player() engine.Pos {
	return m.player
}

// OnTarget returns the number of boxes resting on targets.
func (m *Model) OnTarget() int {
	return m.onTarget
}

// TotalTargets returns the number of targets in the level.
func (m *Model) TotalTargets() int {
	return m.totalTargets
}

// Initialize parses the level and resets score, status and history.
// A malformed level leaves the model untouched.
func (m *Model) Initialize() error {
	parsed, err := ParseLevel(m.level.Rows)
	if err != nil {
		m.machine.Emit(engine.LevelLoadFailed{Err: err})
		return err
	}

	m.board = parsed.Board
	m.player = parsed.Player
	m.totalTargets = parsed.TotalTargets
	m.onTarget = parsed.OnTarget
	m.history.Clear()

	m.machine.Reset(engine.StatusInitializing, 0)
	m.machine.Emit(engine.GameStarted{Game: ID, Variant: m.level.ID})
	m.machine.Emit(engine.BoardChanged{})
	m.machine.Emit(engine.ScoreChanged{Score: 0})
	m.checkEnd()
	return nil
}

// step is the resolved effect of one move, computed without mutation.
type step struct {
	kind   engine.OutcomeKind // OutcomeMoved, OutcomePushed or OutcomeRejected
	reason string
	to     engine.Pos // player destination
	boxTo  engine.Pos // box destination for a push
}

func (m *Model) resolve(d engine.Direction) step {
	to := m.player.Step(d)
	if !m.board.Contains(to) {
		return step{kind: engine.OutcomeRejected, reason: ReasonOutOfBounds}
	}
	dest := m.board.At(to)
	if dest.Base == BaseWall {
		return step{kind: engine.OutcomeRejected, reason: ReasonWall}
	}
	if dest.Occupant != OccupantBox {
		return step{kind: engine.OutcomeMoved, to: to}
	}

	boxTo := to.Step(d)
	if !m.board.Contains(boxTo) {
		return step{kind: engine.OutcomeRejected, reason: ReasonBoxOutOfBounds}
	}
	if !m.board.At(boxTo).Walkable() {
		return step{kind: engine.OutcomeRejected, reason: ReasonBoxBlocked}
	}
	return step{kind: engine.OutcomePushed, to: to, boxTo: boxTo}
}

// Valid reports whether a would move the player.
func (m *Model) Valid(a engine.Action) bool {
	mv, ok := a.(engine.Move)
	if !ok || m.board == nil {
		return false
	}
	return m.resolve(mv.Dir).kind != engine.OutcomeRejected
}

// Play resolves a Move action.
func (m *Model) Play(a engine.Action) engine.Outcome {
	mv, ok := a.(engine.Move)
	if !ok {
		return m.machine.Reject(ReasonUnsupported)
	}

	s := m.resolve(mv.Dir)
	if s.kind == engine.OutcomeRejected {
		return m.machine.Reject(s.reason)
	}

	m.history.Push(engine.Capture(m.board, nil, m.machine.Score(), Extra{Player: m.player, OnTarget: m.onTarget}))

	if s.kind == engine.OutcomePushed {
		if m.board.At(s.to).Base == BaseTarget {
			m.onTarget--
		}
		if m.board.At(s.boxTo).Base == BaseTarget {
			m.onTarget++
		}
		m.place(s.boxTo, OccupantBox)
	}
	m.place(s.to, OccupantPlayer)
	m.place(m.player, OccupantNone)
	m.player = s.to

	m.machine.AddScore(1)
	m.machine.Emit(engine.BoardChanged{})
	m.checkEnd()

	return engine.Outcome{Kind: s.kind, Points: 1}
}

// place sets the occupant at p. Walls refuse occupants; that is logged and
// the cell is left as it was.
func (m *Model) place(p engine.Pos, o Occupant) bool {
	cell, err := m.board.At(p).WithOccupant(o)
	if errors.Is(err, ErrWallOccupant) {
		m.machine.Logger().Warn("illegal wall placement", "pos", p, "occupant", o)
		return false
	}
	return m.board.Put(p, cell)
}

// checkEnd sets Won once every target holds a box. Levels without
// targets are never won.
func (m *Model) checkEnd() {
	if m.totalTargets > 0 && m.onTarget == m.totalTargets {
		m.machine.Transition(engine.StatusWon)
		return
	}
	m.machine.Transition(engine.StatusPlaying)
}

// CanUndo reports whether history is non-empty.
func (m *Model) CanUndo() bool {
	return m.history.CanUndo()
}

// Undo restores the state saved before the last move.
func (m *Model) Undo() bool {
	snap, ok := m.history.Pop()
	if !ok {
		return false
	}
	m.board = snap.Board
	m.player = snap.Extra.Player
	m.onTarget = snap.Extra.OnTarget
	m.machine.SetScore(snap.Score)
	m.machine.Transition(engine.StatusPlaying)
	m.machine.Emit(engine.BoardChanged{})
	m.machine.Emit(engine.UndoPerformed{})
	m.checkEnd()
	return true
}
