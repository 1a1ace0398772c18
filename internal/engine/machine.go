package engine

import "github.com/charmbracelet/log"

// Machine holds the state shared by every game: status, score and the event
// bus. Games embed it and drive transitions through its methods so that
// every change is announced exactly once.
type Machine struct {
	status Status
	score  int
	bus    Bus
	logger *log.Logger
}

// Status returns the current status.
func (m *Machine) Status() Status {
	return m.status
}

// Score returns the current score.
func (m *Machine) Score() int {
	return m.score
}

// SetScore updates the score and emits ScoreChanged if it differs.
func (m *Machine) SetScore(score int) {
	if m.score == score {
		return
	}
	m.score = score
	m.bus.Emit(ScoreChanged{Score: score})
}

// AddScore adds delta to the score.
func (m *Machine) AddScore(delta int) {
	m.SetScore(m.score + delta)
}

// Transition moves to status to and emits StatusChanged if it differs.
func (m *Machine) Transition(to Status) {
	if m.status == to {
		return
	}
	from := m.status
	m.status = to
	m.Logger().Debug("status changed", "from", from, "to", to, "score", m.score)
	m.bus.Emit(StatusChanged{From: from, To: to, Score: m.score})
}

// Reset forces status and score without notifications. Used when a new
// board is installed; callers emit GameStarted afterwards.
func (m *Machine) Reset(status Status, score int) {
	m.status = status
	m.score = score
}

// Emit publishes an event to all listeners.
func (m *Machine) Emit(e Event) {
	m.bus.Emit(e)
}

// Subscribe registers a listener for this game's events.
func (m *Machine) Subscribe(l Listener) (unsubscribe func()) {
	return m.bus.Subscribe(l)
}

// SetLogger replaces the logger used by the game.
func (m *Machine) SetLogger(l *log.Logger) {
	m.logger = l
}

// Logger returns the game logger, falling back to the default logger.
func (m *Machine) Logger() *log.Logger {
	if m.logger == nil {
		return log.Default()
	}
	return m.logger
}

// Reject logs and announces a refused move and returns the outcome for it.
func (m *Machine) Reject(reason string) Outcome {
	m.Logger().Debug("move rejected", "reason", reason)
	m.bus.Emit(MoveRejected{Reason: reason})
	return Rejected(reason)
}
