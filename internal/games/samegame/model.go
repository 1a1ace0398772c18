package samegame

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

// ID is the registry identifier of the game.
const ID = "samegame"

type snapshot = engine.Snapshot[Tile, struct{}]

// Rejection reasons reported in MoveRejected events.
const (
	ReasonInvalidCoordinates = "invalid coordinates"
	ReasonEmptyTile          = "selected tile is empty"
	ReasonGroupTooSmall      = "not enough connected tiles to remove"
	ReasonUnsupported        = "action not supported"
)

// Model is the tile-matching game state. It implements engine.Game and
// engine.Hinter; use it through an engine.Session.
type Model struct {
	machine engine.Machine
	board   *Board
	history *engine.History[snapshot]

	variant string
	preset  config.BoardPreset
	layout  []string // fixed board used instead of random generation
	rng     *rand.Rand
}

// NewModel creates a model that generates random boards from preset.
// A zero seed uses the current time.
func NewModel(variant string, preset config.BoardPreset, seed int64, historyLimit int) *Model {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Model{
		history: engine.NewHistory[snapshot](historyLimit),
		variant: variant,
		preset:  preset,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// NewModelFromLayout creates a model whose every new game starts from the
// given rows (see ParseBoard).
func NewModelFromLayout(rows []string, historyLimit int) (*Model, error) {
	if _, err := ParseBoard(rows); err != nil {
		return nil, err
	}
	return &Model{
		history: engine.NewHistory[snapshot](historyLimit),
		variant: "custom",
		layout:  slices.Clone(rows),
	}, nil
}

// ID returns the game identifier.
func (m *Model) ID() string {
	return ID
}

// Machine returns the status/score/event state.
func (m *Model) Machine() *engine.Machine {
	return &m.machine
}

// Variant returns the difficulty name.
func (m *Model) Variant() string {
	return m.variant
}

// Board returns the live board. Callers must not modify it.
func (m *Model) Board() *Board {
	return m.board
}

// Initialize builds a new board and resets score, status and history.
func (m *Model) Initialize() error {
	board, err := m.build()
	if err != nil {
		m.machine.Emit(engine.LevelLoadFailed{Err: err})
		return err
	}

	m.board = board
	m.history.Clear()
	m.machine.Reset(engine.StatusInitializing, 0)
	m.machine.Emit(engine.GameStarted{Game: ID, Variant: m.variant})
	m.machine.Emit(engine.BoardChanged{})
	m.machine.Emit(engine.ScoreChanged{Score: 0})
	m.checkEnd()
	return nil
}

func (m *Model) build() (*Board, error) {
	if m.layout != nil {
		return ParseBoard(m.layout)
	}
	if err := m.preset.Validate(); err != nil {
		return nil, err
	}
	colors := Palette[:m.preset.Colors]
	return engine.NewGridFunc(m.preset.Rows, m.preset.Cols, func(engine.Pos) Tile {
		return Filled(colors[m.rng.Intn(len(colors))])
	})
}

// Valid reports whether a would remove a group.
func (m *Model) Valid(a engine.Action) bool {
	sel, ok := a.(engine.Select)
	if !ok || m.board == nil {
		return false
	}
	return len(FindGroup(m.board, sel.Pos)) >= MinGroup
}

// Play resolves a Select action: remove the group, settle the board,
// score it and re-check the end condition.
func (m *Model) Play(a engine.Action) engine.Outcome {
	sel, ok := a.(engine.Select)
	if !ok {
		return m.machine.Reject(ReasonUnsupported)
	}
	p := sel.Pos
	if !m.board.Contains(p) {
		return m.machine.Reject(ReasonInvalidCoordinates)
	}
	if m.board.At(p).Empty {
		return m.machine.Reject(ReasonEmptyTile)
	}
	group := FindGroup(m.board, p)
	if len(group) < MinGroup {
		return m.machine.Reject(ReasonGroupTooSmall)
	}

	m.history.Push(engine.Capture(m.board, nil, m.machine.Score(), struct{}{}))

	RemoveTiles(m.board, group)
	Settle(m.board)
	points := Points(len(group))
	m.machine.AddScore(points)

	m.machine.Emit(engine.BoardChanged{})
	m.machine.Emit(engine.TilesRemoved{Count: len(group), Points: points})
	m.checkEnd()

	return engine.Outcome{Kind: engine.OutcomeApplied, Removed: len(group), Points: points}
}

// checkEnd sets Playing while a move exists, otherwise Won for a cleared
// board and Lost for a stuck one.
func (m *Model) checkEnd() {
	switch {
	case HasMove(m.board):
		m.machine.Transition(engine.StatusPlaying)
	case IsCleared(m.board):
		m.machine.Transition(engine.StatusWon)
	default:
		m.machine.Transition(engine.StatusLost)
	}
}

// CanUndo reports whether history is non-empty.
func (m *Model) CanUndo() bool {
	return m.history.CanUndo()
}

// Undo restores the board and score saved before the last removal.
func (m *Model) Undo() bool {
	snap, ok := m.history.Pop()
	if !ok {
		return false
	}
	m.board = snap.Board
	m.machine.SetScore(snap.Score)
	m.machine.Transition(engine.StatusPlaying)
	m.machine.Emit(engine.BoardChanged{})
	m.machine.Emit(engine.UndoPerformed{})
	m.checkEnd()
	return true
}

// Suggest returns the group worth the most points. Ties keep the group
// found first in row-major order.
func (m *Model) Suggest() ([]engine.Pos, bool) {
	if m.board == nil {
		return nil, false
	}
	var best []engine.Pos
	engine.ScanRegions(m.board, sameColor, occupied, func(group []engine.Pos) bool {
		if len(group) < MinGroup {
			return true
		}
		if best == nil || Points(len(group)) > Points(len(best)) {
			best = group
		}
		return true
	})
	return best, best != nil
}
