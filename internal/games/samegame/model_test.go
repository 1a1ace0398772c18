package samegame

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
)

func newSession(t *testing.T, rows ...string) (*engine.Session, *Model) {
	t.Helper()
	m, err := NewModelFromLayout(rows, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := engine.NewSession(m, log.New(io.Discard))
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}
	return s, m
}

func TestSelectScenario(t *testing.T) {
	s, _ := newSession(t,
		"RRB",
		"RBB",
		"BRB",
	)

	if !s.IsValidAction(engine.Select{Pos: engine.P(0, 0)}) {
		t.Error("red group at (0,0) should be selectable")
	}
	if !s.IsValidAction(engine.Select{Pos: engine.P(0, 2)}) {
		t.Error("blue group at (0,2) should be selectable")
	}
	if s.IsValidAction(engine.Select{Pos: engine.P(2, 1)}) {
		t.Error("isolated tile at (2,1) should not be selectable")
	}

	out := s.Submit(engine.Select{Pos: engine.P(2, 1)})
	if out.Kind != engine.OutcomeRejected || out.Reason != ReasonGroupTooSmall {
		t.Errorf("isolated tile: got %+v", out)
	}
	if s.CanUndo() {
		t.Error("rejected move must not take a snapshot")
	}

	out = s.Submit(engine.Select{Pos: engine.P(0, 0)})
	if out.Kind != engine.OutcomeApplied || out.Removed != 3 || out.Points != 6 {
		t.Errorf("red group: got %+v", out)
	}
	if s.Score() != 6 {
		t.Errorf("score = %d, want 6", s.Score())
	}
}

func TestScoreForPair(t *testing.T) {
	s, _ := newSession(t,
		"RRG",
		"GBY",
	)
	out := s.Submit(engine.Select{Pos: engine.P(0, 1)})
	if out.Kind != engine.OutcomeApplied || out.Points != 2 {
		t.Fatalf("got %+v, want 2 points", out)
	}
	if s.Score() != 2 {
		t.Errorf("score = %d, want 2", s.Score())
	}
}

func TestRejections(t *testing.T) {
	s, _ := newSession(t,
		"R.",
		"RG",
	)

	tests := []struct {
		name   string
		pos    engine.Pos
		reason string
	}{
		{"above board", engine.P(-1, 0), ReasonInvalidCoordinates},
		{"right of board", engine.P(0, 2), ReasonInvalidCoordinates},
		{"empty tile", engine.P(0, 1), ReasonEmptyTile},
		{"single tile", engine.P(1, 1), ReasonGroupTooSmall},
	}

	var events []engine.Event
	s.Subscribe(func(e engine.Event) { events = append(events, e) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events = nil
			out := s.Submit(engine.Select{Pos: tt.pos})
			if out.Kind != engine.OutcomeRejected || out.Reason != tt.reason {
				t.Errorf("got %+v, want rejection %q", out, tt.reason)
			}
			if len(events) != 1 {
				t.Fatalf("expected one event, got %v", events)
			}
			if mr, ok := events[0].(engine.MoveRejected); !ok || mr.Reason != tt.reason {
				t.Errorf("expected MoveRejected(%q), got %#v", tt.reason, events[0])
			}
		})
	}

	if out := s.Submit(engine.Move{Dir: engine.DirUp}); out.Kind != engine.OutcomeRejected {
		t.Errorf("move action: got %v", out.Kind)
	}
}

func TestWinByClearing(t *testing.T) {
	s, m := newSession(t,
		"RR",
		"BB",
	)

	var statuses []engine.Status
	s.Subscribe(func(e engine.Event) {
		if sc, ok := e.(engine.StatusChanged); ok {
			statuses = append(statuses, sc.To)
		}
	})

	s.Submit(engine.Select{Pos: engine.P(1, 0)})
	if s.Status() != engine.StatusPlaying {
		t.Fatalf("status = %v, want playing", s.Status())
	}
	s.Submit(engine.Select{Pos: engine.P(1, 1)})
	if s.Status() != engine.StatusWon {
		t.Fatalf("status = %v, want won", s.Status())
	}
	if !IsCleared(m.Board()) {
		t.Error("board should be cleared")
	}
	if s.Score() != 4 {
		t.Errorf("score = %d, want 4", s.Score())
	}
	if !slices.Equal(statuses, []engine.Status{engine.StatusWon}) {
		t.Errorf("status events = %v, want [won]", statuses)
	}

	if out := s.Submit(engine.Select{Pos: engine.P(1, 0)}); out.Kind != engine.OutcomeIgnored {
		t.Errorf("select after win: got %v, want ignored", out.Kind)
	}
}

func TestLoseWhenStuck(t *testing.T) {
	s, _ := newSession(t,
		"GRG",
		"RRB",
	)
	s.Submit(engine.Select{Pos: engine.P(1, 1)})
	// G . G / . . B after removal; gravity gives . . G / G . B, compaction
	// gives . G . / G B . with no pair left.
	if s.Status() != engine.StatusLost {
		t.Fatalf("status = %v, want lost", s.Status())
	}
}

func TestInitialBoardWithoutMovesIsLost(t *testing.T) {
	s, _ := newSession(t, "RG", "GR")
	if s.Status() != engine.StatusLost {
		t.Errorf("status = %v, want lost", s.Status())
	}
}

func TestUndoIsExactInverse(t *testing.T) {
	s, m := newSession(t,
		"RRBG",
		"GBBR",
		"GRRY",
	)
	before := m.Board().Clone(nil)

	s.Submit(engine.Select{Pos: engine.P(0, 2)})
	if EqualBoards(before, m.Board()) {
		t.Fatal("move should change the board")
	}

	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if !EqualBoards(before, m.Board()) {
		t.Errorf("board after undo = %v, want %v", FormatBoard(m.Board()), FormatBoard(before))
	}
	if s.Score() != 0 || s.Status() != engine.StatusPlaying {
		t.Errorf("after undo: score %d status %v", s.Score(), s.Status())
	}
	if s.CanUndo() {
		t.Error("history should be empty again")
	}
}

func TestUndoAfterWinRestoresPlaying(t *testing.T) {
	s, _ := newSession(t, "RR")
	s.Submit(engine.Select{Pos: engine.P(0, 0)})
	if s.Status() != engine.StatusWon {
		t.Fatalf("status = %v, want won", s.Status())
	}
	if out := s.Submit(engine.Undo{}); out.Kind != engine.OutcomeUndone {
		t.Fatalf("undo: got %v", out.Kind)
	}
	if s.Status() != engine.StatusPlaying || s.Score() != 0 {
		t.Errorf("after undo: status %v score %d", s.Status(), s.Score())
	}
}

func TestScoreMonotonic(t *testing.T) {
	s, m := newSession(t,
		"RRGGB",
		"RBGBB",
		"YYGRR",
		"BYRRG",
	)
	last := 0
	for range 20 {
		group, ok := s.Suggest()
		if !ok {
			break
		}
		s.Submit(engine.Select{Pos: group[0]})
		if s.Score() < last {
			t.Fatalf("score decreased from %d to %d", last, s.Score())
		}
		last = s.Score()

		// No empty cell may sit below a tile.
		b := m.Board()
		for c := range b.Cols() {
			seenTile := false
			for r := range b.Rows() {
				empty := b.At(engine.P(r, c)).Empty
				if seenTile && empty {
					t.Fatalf("gap below a tile in column %d: %v", c, FormatBoard(b))
				}
				seenTile = seenTile || !empty
			}
		}
	}
	if !s.Status().Terminal() {
		t.Errorf("status = %v, want a finished game", s.Status())
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		size  int
		first engine.Pos
	}{
		{"largest group wins", []string{"RRG", "BGG", "BBG"}, 4, engine.P(0, 2)},
		{"tie keeps first found", []string{"RRB", "GGB"}, 2, engine.P(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, tt.rows...)
			group, ok := s.Suggest()
			if !ok {
				t.Fatal("expected a suggestion")
			}
			if len(group) != tt.size {
				t.Errorf("suggested %d tiles, want %d", len(group), tt.size)
			}
			if !slices.Contains(group, tt.first) {
				t.Errorf("suggestion %v should contain %v", group, tt.first)
			}
		})
	}

	s, _ := newSession(t, "RG", "GR")
	if _, ok := s.Suggest(); ok {
		t.Error("no suggestion expected on a stuck board")
	}
}

func TestHintEvents(t *testing.T) {
	s, _ := newSession(t, "RRG", "BBB")
	var hint []engine.Pos
	s.Subscribe(func(e engine.Event) {
		if h, ok := e.(engine.HintAvailable); ok {
			hint = h.Group
		}
	})
	out := s.Submit(engine.Hint{})
	if out.Kind != engine.OutcomeHinted || len(out.Group) != 3 || len(hint) != 3 {
		t.Errorf("hint: outcome %+v, event group %v", out, hint)
	}
}

func TestRandomBoard(t *testing.T) {
	preset := config.BoardPreset{Rows: 8, Cols: 12, Colors: 3}
	m := NewModel("easy", preset, 42, 0)
	s := engine.NewSession(m, log.New(io.Discard))
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}

	b := m.Board()
	if b.Rows() != 8 || b.Cols() != 12 {
		t.Fatalf("board is %dx%d, want 8x12", b.Rows(), b.Cols())
	}
	colors := map[byte]bool{}
	for _, row := range FormatBoard(b) {
		for i := range len(row) {
			colors[row[i]] = true
		}
	}
	for c := range colors {
		if c != 'R' && c != 'G' && c != 'B' {
			t.Errorf("unexpected tile %q for a 3-color board", c)
		}
	}

	// Same seed, same board.
	m2 := NewModel("easy", preset, 42, 0)
	_ = engine.NewSession(m2, log.New(io.Discard)).Initialize()
	if !EqualBoards(b, m2.Board()) {
		t.Error("equal seeds should generate equal boards")
	}
}

func TestInvalidPreset(t *testing.T) {
	m := NewModel("broken", config.BoardPreset{Rows: 0, Cols: 5, Colors: 3}, 1, 0)
	s := engine.NewSession(m, log.New(io.Discard))
	if err := s.Initialize(); err == nil {
		t.Fatal("expected error for invalid preset")
	}
	if s.Status() != engine.StatusInitializing {
		t.Errorf("status = %v, want initializing", s.Status())
	}
}
