package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

// Result describes a score saved by a Recorder.
type Result struct {
	ID        int64
	GameID    string
	Variant   string
	Score     int
	Won       bool
	HighScore bool // entered the top table
}

// Recorder saves the score of every finished game it observes. Subscribe
// its Listen method to a session; a game counts as finished on its first
// transition to Won or Lost after a GameStarted event. Quitting never
// records.
type Recorder struct {
	store  *Store
	gameID string
	order  core.ScoreOrder
	logger *log.Logger

	mu      sync.Mutex
	variant string
	done    bool
	last    *Result
}

// NewRecorder creates a recorder for one game.
func NewRecorder(store *Store, gameID string, order core.ScoreOrder, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		store:  store,
		gameID: gameID,
		order:  order,
		logger: logger.With("recorder", gameID),
	}
}

// Listen handles one engine event.
func (r *Recorder) Listen(e engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := e.(type) {
	case engine.GameStarted:
		r.variant = e.Variant
		r.done = false
		r.last = nil
	case engine.StatusChanged:
		if r.done || (e.To != engine.StatusWon && e.To != engine.StatusLost) {
			return
		}
		r.done = true
		r.save(e.Score, e.To == engine.StatusWon)
	}
}

// Attach subscribes the recorder to s, which has already been initialized,
// and replays what it missed: the start of the game and, for a level that
// finished during initialization, the final status.
func (r *Recorder) Attach(s *engine.Session, variant string) (unsubscribe func()) {
	unsubscribe = s.Subscribe(r.Listen)
	r.Listen(engine.GameStarted{Game: r.gameID, Variant: variant})
	if st := s.Status(); st == engine.StatusWon || st == engine.StatusLost {
		r.Listen(engine.StatusChanged{From: engine.StatusPlaying, To: st, Score: s.Score()})
	}
	return unsubscribe
}

func (r *Recorder) save(score int, won bool) {
	high, err := r.store.IsHighScore(r.gameID, r.variant, r.order, score)
	if err != nil {
		r.logger.Warn("high score check failed", "err", err)
	}
	id, err := r.store.SaveScore(r.gameID, r.variant, score)
	if err != nil {
		r.logger.Error("cannot save score", "variant", r.variant, "score", score, "err", err)
		return
	}
	r.last = &Result{
		ID:        id,
		GameID:    r.gameID,
		Variant:   r.variant,
		Score:     score,
		Won:       won,
		HighScore: high,
	}
	r.logger.Info("score saved", "variant", r.variant, "score", score, "won", won, "high", high)
}

// Last returns the result saved for the current game, if any.
func (r *Recorder) Last() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Result{}, false
	}
	return *r.last, true
}
