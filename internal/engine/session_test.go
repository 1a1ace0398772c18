package engine

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

// stepper is a minimal game: the player walks right along a track and wins
// at the end. Left is always blocked.
type stepper struct {
	machine Machine
	length  int
	pos     int
	history *History[int]
	failNew bool
}

func newStepper(length int) *stepper {
	return &stepper{length: length, history: NewHistory[int](0)}
}

func (s *stepper) ID() string          { return "stepper" }
func (s *stepper) Machine() *Machine   { return &s.machine }
func (s *stepper) CanUndo() bool       { return s.history.CanUndo() }
func (s *stepper) Valid(a Action) bool { return a.(Move).Dir == DirRight && s.pos < s.length }

func (s *stepper) Initialize() error {
	if s.failNew {
		err := errors.New("broken level")
		s.machine.Emit(LevelLoadFailed{Err: err})
		return err
	}
	s.pos = 0
	s.history.Clear()
	s.machine.Reset(StatusInitializing, 0)
	s.machine.Emit(GameStarted{Game: s.ID()})
	s.machine.Transition(StatusPlaying)
	return nil
}

func (s *stepper) Play(a Action) Outcome {
	if !s.Valid(a) {
		return s.machine.Reject("blocked")
	}
	s.history.Push(s.pos)
	s.pos++
	s.machine.AddScore(1)
	s.machine.Emit(BoardChanged{})
	if s.pos == s.length {
		s.machine.Transition(StatusWon)
	}
	return Outcome{Kind: OutcomeMoved, Points: 1}
}

func (s *stepper) Undo() bool {
	prev, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.pos = prev
	s.machine.SetScore(prev)
	s.machine.Transition(StatusPlaying)
	s.machine.Emit(UndoPerformed{})
	return true
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func recordEvents(s *Session) *[]Event {
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })
	return &events
}

func TestSessionMoveAndWin(t *testing.T) {
	s := NewSession(newStepper(2), quietLogger())
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}
	events := recordEvents(s)

	right := Move{Dir: DirRight}
	if out := s.Submit(right); out.Kind != OutcomeMoved {
		t.Fatalf("first move: got %v", out.Kind)
	}
	if out := s.Submit(right); out.Kind != OutcomeMoved {
		t.Fatalf("second move: got %v", out.Kind)
	}
	if s.Status() != StatusWon {
		t.Fatalf("status = %v, want won", s.Status())
	}

	// Game actions are ignored once the game is over.
	if out := s.Submit(right); out.Kind != OutcomeIgnored {
		t.Errorf("move after win: got %v, want ignored", out.Kind)
	}
	if s.Score() != 2 {
		t.Errorf("score = %d, want 2", s.Score())
	}

	var won bool
	for _, e := range *events {
		if sc, ok := e.(StatusChanged); ok && sc.To == StatusWon && sc.Score == 2 {
			won = true
		}
	}
	if !won {
		t.Error("expected StatusChanged to won with score 2")
	}
}

func TestSessionRejectedMove(t *testing.T) {
	s := NewSession(newStepper(3), quietLogger())
	_ = s.Initialize()
	events := recordEvents(s)

	out := s.Submit(Move{Dir: DirLeft})
	if out.Kind != OutcomeRejected || out.Reason != "blocked" {
		t.Fatalf("got %+v, want rejected/blocked", out)
	}
	if s.CanUndo() {
		t.Error("rejected move must not record history")
	}
	if len(*events) != 1 {
		t.Fatalf("expected one event, got %v", *events)
	}
	if _, ok := (*events)[0].(MoveRejected); !ok {
		t.Errorf("expected MoveRejected, got %T", (*events)[0])
	}
}

func TestSessionUndoAfterWin(t *testing.T) {
	s := NewSession(newStepper(1), quietLogger())
	_ = s.Initialize()

	if s.Undo() {
		t.Fatal("undo with empty history should fail")
	}
	s.Submit(Move{Dir: DirRight})
	if s.Status() != StatusWon {
		t.Fatalf("status = %v, want won", s.Status())
	}

	if out := s.Submit(Undo{}); out.Kind != OutcomeUndone {
		t.Fatalf("undo: got %v", out.Kind)
	}
	if s.Status() != StatusPlaying || s.Score() != 0 {
		t.Errorf("after undo: status %v score %d", s.Status(), s.Score())
	}
	if out := s.Submit(Undo{}); out.Kind != OutcomeUndoUnavailable {
		t.Errorf("second undo: got %v", out.Kind)
	}
}

func TestSessionStatusGate(t *testing.T) {
	s := NewSession(newStepper(3), quietLogger())

	// Not yet initialized: game actions are refused.
	if out := s.Submit(Move{Dir: DirRight}); out.Kind != OutcomeIgnored {
		t.Errorf("move before init: got %v", out.Kind)
	}
	if s.IsValidAction(Move{Dir: DirRight}) {
		t.Error("move should not be valid before init")
	}

	_ = s.Initialize()
	if !s.IsValidAction(Move{Dir: DirRight}) {
		t.Error("right should be valid")
	}
	if s.IsValidAction(Move{Dir: DirLeft}) {
		t.Error("left should be invalid")
	}
	if s.IsValidAction(Undo{}) {
		t.Error("undo should be invalid with empty history")
	}
	if s.IsValidAction(Hint{}) {
		t.Error("hint should be invalid for a game without hints")
	}
	if s.IsValidAction(nil) {
		t.Error("nil action should be invalid")
	}

	if out := s.Submit(Pause{}); out.Kind != OutcomePaused {
		t.Fatalf("pause: got %v", out.Kind)
	}
	if out := s.Submit(Move{Dir: DirRight}); out.Kind != OutcomeIgnored {
		t.Errorf("move while paused: got %v", out.Kind)
	}
	if out := s.Submit(Pause{}); out.Kind != OutcomeResumed {
		t.Fatalf("resume: got %v", out.Kind)
	}

	quits := 0
	unsubscribe := s.Subscribe(func(e Event) {
		if _, ok := e.(GameQuit); ok {
			quits++
		}
	})
	defer unsubscribe()

	if out := s.Submit(Quit{}); out.Kind != OutcomeQuit {
		t.Fatalf("quit: got %v", out.Kind)
	}
	if s.Status() != StatusQuitByUser {
		t.Errorf("status = %v, want quit", s.Status())
	}
	if out := s.Submit(Quit{}); out.Kind != OutcomeIgnored {
		t.Errorf("second quit: got %v", out.Kind)
	}
	if quits != 1 {
		t.Errorf("GameQuit emitted %d times, want 1", quits)
	}
	if out := s.Submit(Pause{}); out.Kind != OutcomeIgnored {
		t.Errorf("pause after quit: got %v", out.Kind)
	}

	if out := s.Submit(NewGame{}); out.Kind != OutcomeStarted {
		t.Errorf("new game after quit: got %v", out.Kind)
	}
	if s.Status() != StatusPlaying {
		t.Errorf("status = %v, want playing", s.Status())
	}
}

func TestSessionNilAction(t *testing.T) {
	s := NewSession(newStepper(3), quietLogger())
	_ = s.Initialize()
	if out := s.Submit(nil); out.Kind != OutcomeIgnored {
		t.Errorf("nil action: got %v", out.Kind)
	}
}

func TestSessionInitializeFailure(t *testing.T) {
	g := newStepper(3)
	g.failNew = true
	s := NewSession(g, quietLogger())
	events := recordEvents(s)

	if err := s.Initialize(); err == nil {
		t.Fatal("expected error")
	}
	if s.Status() != StatusInitializing {
		t.Errorf("status = %v, want initializing", s.Status())
	}
	if out := s.Submit(NewGame{}); out.Kind != OutcomeFailed || out.Err == nil {
		t.Errorf("new game: got %+v", out)
	}
	if _, ok := (*events)[0].(LevelLoadFailed); !ok {
		t.Errorf("expected LevelLoadFailed, got %T", (*events)[0])
	}
}

func TestSessionConcurrentSubmit(t *testing.T) {
	s := NewSession(newStepper(100), quietLogger())
	_ = s.Initialize()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				s.Submit(Move{Dir: DirRight})
			}
		}()
	}
	wg.Wait()

	if s.Score() != 100 || s.Status() != StatusWon {
		t.Errorf("score %d status %v, want 100 won", s.Score(), s.Status())
	}
}

func TestBusUnsubscribe(t *testing.T) {
	var b Bus
	ch := make(chan Event, 1)
	calls := 0
	unsub := b.Subscribe(func(Event) { calls++ })
	b.Subscribe(Forward(ch))

	b.Emit(BoardChanged{})
	unsub()
	unsub()
	b.Emit(BoardChanged{})

	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
	// The channel holds one event; the second was dropped without blocking.
	if len(ch) != 1 {
		t.Errorf("channel holds %d events, want 1", len(ch))
	}
}
