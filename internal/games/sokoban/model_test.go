package sokoban

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban/levels"
)

func newSession(t *testing.T, rows ...string) (*engine.Session, *Model) {
	t.Helper()
	m := NewModel(levels.Level{ID: "test", Rows: rows}, 0)
	s := engine.NewSession(m, log.New(io.Discard))
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}
	return s, m
}

func move(d engine.Direction) engine.Move {
	return engine.Move{Dir: d}
}

func TestPushOntoTargetWins(t *testing.T) {
	s, m := newSession(t, "PB.W")

	out := s.Submit(move(engine.DirRight))
	if out.Kind != engine.OutcomePushed || out.Points != 1 {
		t.Fatalf("push: got %+v", out)
	}
	if s.Status() != engine.StatusWon {
		t.Errorf("status = %v, want won", s.Status())
	}
	if m.OnTarget() != 1 || m.TotalTargets() != 1 {
		t.Errorf("targets %d/%d, want 1/1", m.OnTarget(), m.TotalTargets())
	}
	if m.Player() != engine.P(0, 1) {
		t.Errorf("player = %v, want (0,1)", m.Player())
	}
	if got := FormatLevel(m.Board()); got[0] != " P$W" {
		t.Errorf("board = %q", got[0])
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}

	// Further moves are refused once solved.
	if out := s.Submit(move(engine.DirLeft)); out.Kind != engine.OutcomeIgnored {
		t.Errorf("move after win: got %+v", out)
	}
}

func TestMoveRejections(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		dir    engine.Direction
		reason string
	}{
		{"top edge", []string{"P.", "B "}, engine.DirUp, ReasonOutOfBounds},
		{"left edge", []string{"P.", "B "}, engine.DirLeft, ReasonOutOfBounds},
		{"wall", []string{"PW."}, engine.DirRight, ReasonWall},
		{"box at edge", []string{".PB"}, engine.DirRight, ReasonBoxOutOfBounds},
		{"box into wall", []string{"PBW."}, engine.DirRight, ReasonBoxBlocked},
		{"box into box", []string{"PBB."}, engine.DirRight, ReasonBoxBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newSession(t, tt.rows...)
			before := m.Board().Clone(nil)

			var rejected []string
			s.Subscribe(func(e engine.Event) {
				if r, ok := e.(engine.MoveRejected); ok {
					rejected = append(rejected, r.Reason)
				}
			})

			if s.IsValidAction(move(tt.dir)) {
				t.Error("IsValidAction should be false")
			}
			out := s.Submit(move(tt.dir))
			if out.Kind != engine.OutcomeRejected || out.Reason != tt.reason {
				t.Errorf("got %+v, want reason %q", out, tt.reason)
			}
			if len(rejected) != 1 || rejected[0] != tt.reason {
				t.Errorf("MoveRejected events = %v", rejected)
			}
			if !m.Board().Equal(before, func(a, b Cell) bool { return a == b }) {
				t.Error("rejected move changed the board")
			}
			if s.Score() != 0 || s.CanUndo() {
				t.Error("rejected move must not score or snapshot")
			}
		})
	}
}

func TestPresolvedLevelIsWon(t *testing.T) {
	s, _ := newSession(t, "P$")
	if s.Status() != engine.StatusWon {
		t.Errorf("status = %v, want won", s.Status())
	}
}

func TestLevelWithoutTargetsNeverWins(t *testing.T) {
	s, m := newSession(t, "P B ")
	s.Submit(move(engine.DirRight))
	if s.Status() != engine.StatusPlaying {
		t.Errorf("status = %v, want playing", s.Status())
	}
	if m.TotalTargets() != 0 {
		t.Errorf("TotalTargets() = %d", m.TotalTargets())
	}
}

func TestPushOffTarget(t *testing.T) {
	s, m := newSession(t, "P$ .")
	if m.OnTarget() != 1 || m.TotalTargets() != 2 {
		t.Fatalf("targets %d/%d, want 1/2", m.OnTarget(), m.TotalTargets())
	}

	s.Submit(move(engine.DirRight))
	if m.OnTarget() != 0 {
		t.Errorf("after push off: OnTarget() = %d, want 0", m.OnTarget())
	}
	if got := FormatLevel(m.Board())[0]; got != " @B." {
		t.Errorf("board = %q, want \" @B.\"", got)
	}

	s.Submit(move(engine.DirRight))
	if m.OnTarget() != 1 {
		t.Errorf("after push on: OnTarget() = %d, want 1", m.OnTarget())
	}
	if s.Status() != engine.StatusPlaying {
		t.Errorf("one of two targets covered: status = %v", s.Status())
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	s, m := newSession(t, "P B.")

	s.Submit(move(engine.DirRight))
	before := m.Board().Clone(nil)
	player, score := m.Player(), s.Score()

	s.Submit(move(engine.DirRight))
	if s.Status() != engine.StatusWon {
		t.Fatalf("status = %v, want won", s.Status())
	}

	if out := s.Submit(engine.Undo{}); out.Kind != engine.OutcomeUndone {
		t.Fatalf("undo: got %+v", out)
	}
	if !m.Board().Equal(before, func(a, b Cell) bool { return a == b }) {
		t.Errorf("board = %q, want %q", FormatLevel(m.Board()), FormatLevel(before))
	}
	if m.Player() != player || s.Score() != score || m.OnTarget() != 0 {
		t.Errorf("player %v score %d onTarget %d", m.Player(), s.Score(), m.OnTarget())
	}
	if s.Status() != engine.StatusPlaying {
		t.Errorf("status = %v, want playing", s.Status())
	}

	s.Submit(engine.Undo{})
	if out := s.Submit(engine.Undo{}); out.Kind != engine.OutcomeUndoUnavailable {
		t.Errorf("empty history: got %+v", out)
	}
	if m.Player() != engine.P(0, 0) || s.Score() != 0 {
		t.Errorf("back at start: player %v score %d", m.Player(), s.Score())
	}
}

func TestOnTargetMatchesBoard(t *testing.T) {
	s, m := newSession(t, levels.Builtin()[2].Rows...)

	dirs := []engine.Direction{
		engine.DirRight, engine.DirDown, engine.DirLeft, engine.DirRight,
		engine.DirUp, engine.DirRight, engine.DirDown, engine.DirDown,
		engine.DirLeft, engine.DirLeft, engine.DirUp, engine.DirDown,
		engine.DirRight, engine.DirDown, engine.DirLeft, engine.DirUp,
	}
	for i, d := range dirs {
		s.Submit(move(d))
		if got := CountOnTarget(m.Board()); got != m.OnTarget() {
			t.Fatalf("step %d: OnTarget() = %d, board has %d", i, m.OnTarget(), got)
		}
	}
	for s.CanUndo() {
		s.Submit(engine.Undo{})
		if got := CountOnTarget(m.Board()); got != m.OnTarget() {
			t.Fatalf("undo: OnTarget() = %d, board has %d", m.OnTarget(), got)
		}
	}
}

func TestInitializeFailure(t *testing.T) {
	m := NewModel(levels.Level{ID: "broken", Rows: []string{"WWW"}}, 0)
	s := engine.NewSession(m, log.New(io.Discard))

	var failed bool
	s.Subscribe(func(e engine.Event) {
		if _, ok := e.(engine.LevelLoadFailed); ok {
			failed = true
		}
	})
	if err := s.Initialize(); err == nil {
		t.Fatal("expected an error for a level without a player")
	}
	if !failed {
		t.Error("LevelLoadFailed not emitted")
	}
	if m.Board() != nil {
		t.Error("failed load must not install a board")
	}
}

func TestRestartResets(t *testing.T) {
	s, m := newSession(t, "P B.")
	s.Submit(move(engine.DirRight))

	if out := s.Submit(engine.NewGame{}); out.Kind != engine.OutcomeStarted {
		t.Fatalf("new game: got %+v", out)
	}
	if s.Score() != 0 || s.CanUndo() || m.Player() != engine.P(0, 0) {
		t.Errorf("after restart: score %d undo %v player %v", s.Score(), s.CanUndo(), m.Player())
	}
}
