package engine

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Game is the contract a concrete puzzle implements. Session is the only
// caller: it serializes access and performs the status checks, so Play is
// only invoked with Select or Move actions while the game is playing.
type Game interface {
	// ID is the registry identifier of the game.
	ID() string
	// Machine exposes the embedded status/score/event state.
	Machine() *Machine
	// Initialize rebuilds the board and clears score, status and history.
	Initialize() error
	// Play resolves a game-specific action.
	Play(a Action) Outcome
	// Valid reports whether Play would accept a without mutating anything.
	Valid(a Action) bool
	// Undo restores the latest snapshot; false if history is empty.
	Undo() bool
	CanUndo() bool
}

// Hinter is implemented by games that can suggest a move.
type Hinter interface {
	Suggest() ([]Pos, bool)
}

// Session owns one game and is the single entry point for actions.
// All methods are safe for concurrent use; sessions share no state.
type Session struct {
	mu     sync.Mutex
	id     uuid.UUID
	game   Game
	logger *log.Logger
}

// NewSession wraps g. A nil logger means log.Default().
func NewSession(g Game, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.New()
	l := logger.With("session", id.String(), "game", g.ID())
	g.Machine().SetLogger(l)
	return &Session{id: id, game: g, logger: l}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Game returns the wrapped game. Callers must not mutate it directly.
func (s *Session) Game() Game {
	return s.game
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Machine().Status()
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Machine().Score()
}

// Subscribe registers a listener for the game's events.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	return s.game.Machine().Subscribe(l)
}

// View runs fn while holding the session lock. Use it to read the board
// between moves.
func (s *Session) View(fn func(g Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Initialize (re)starts the game.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialize()
}

func (s *Session) initialize() error {
	if err := s.game.Initialize(); err != nil {
		s.logger.Error("initialize failed", "err", err)
		return err
	}
	s.logger.Info("game started")
	return nil
}

// Submit validates and applies one action.
func (s *Session) Submit(a Action) Outcome {
	if a == nil {
		s.logger.Warn("nil action ignored")
		return Outcome{Kind: OutcomeIgnored, Reason: "nil action"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.game.Machine()
	if !m.Status().Allows(a.Kind()) {
		s.logger.Debug("action ignored", "action", a, "status", m.Status())
		return Outcome{Kind: OutcomeIgnored, Reason: "not accepted while " + m.Status().String()}
	}

	switch a := a.(type) {
	case NewGame:
		if err := s.initialize(); err != nil {
			return Outcome{Kind: OutcomeFailed, Reason: err.Error(), Err: err}
		}
		return Outcome{Kind: OutcomeStarted}
	case Undo:
		return s.undo()
	case Quit:
		m.Transition(StatusQuitByUser)
		m.Emit(GameQuit{})
		s.logger.Info("game quit", "score", m.Score())
		return Outcome{Kind: OutcomeQuit}
	case Pause:
		if m.Status() == StatusPaused {
			m.Transition(StatusPlaying)
			return Outcome{Kind: OutcomeResumed}
		}
		m.Transition(StatusPaused)
		return Outcome{Kind: OutcomePaused}
	case Hint:
		group, ok := s.suggest()
		if !ok {
			m.Emit(HintUnavailable{})
			return Outcome{Kind: OutcomeHinted}
		}
		m.Emit(HintAvailable{Group: group})
		return Outcome{Kind: OutcomeHinted, Group: group}
	case Select, Move:
		out := s.game.Play(a)
		if out.Mutated() {
			s.logger.Debug("move applied", "action", a, "outcome", out.Kind, "score", m.Score())
		}
		return out
	default:
		s.logger.Warn("unknown action ignored", "action", a)
		return Outcome{Kind: OutcomeIgnored, Reason: "unknown action"}
	}
}

func (s *Session) undo() Outcome {
	m := s.game.Machine()
	if !s.game.CanUndo() || !s.game.Undo() {
		m.Emit(UndoUnavailable{})
		return Outcome{Kind: OutcomeUndoUnavailable}
	}
	s.logger.Debug("undo", "score", m.Score(), "status", m.Status())
	return Outcome{Kind: OutcomeUndone}
}

// IsValidAction reports whether Submit would accept a. It never mutates.
func (s *Session) IsValidAction(a Action) bool {
	if a == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.Machine().Status().Allows(a.Kind()) {
		return false
	}
	switch a.(type) {
	case Undo:
		return s.game.CanUndo()
	case Hint:
		_, ok := s.game.(Hinter)
		return ok
	case Select, Move:
		return s.game.Valid(a)
	default:
		return true
	}
}

// Undo restores the latest snapshot. Returns true if one was restored.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo().Kind == OutcomeUndone
}

// CanUndo reports whether history is non-empty.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.CanUndo()
}

// Suggest returns the game's hint, if the game supports hints.
func (s *Session) Suggest() ([]Pos, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggest()
}

func (s *Session) suggest() ([]Pos, bool) {
	h, ok := s.game.(Hinter)
	if !ok {
		return nil, false
	}
	return h.Suggest()
}
