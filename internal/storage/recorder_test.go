package storage

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban/levels"
)

func TestRecorderSavesFinishedGames(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(store, "sokoban", core.LowerIsBetter, log.New(io.Discard))

	events := []engine.Event{
		engine.GameStarted{Game: "sokoban", Variant: "easy"},
		engine.StatusChanged{From: engine.StatusInitializing, To: engine.StatusPlaying},
		engine.ScoreChanged{Score: 3},
		engine.StatusChanged{From: engine.StatusPlaying, To: engine.StatusWon, Score: 3},
		// Undo and win again: the same game is not recorded twice.
		engine.StatusChanged{From: engine.StatusWon, To: engine.StatusPlaying, Score: 2},
		engine.StatusChanged{From: engine.StatusPlaying, To: engine.StatusWon, Score: 3},
	}
	for _, e := range events {
		r.Listen(e)
	}

	res, ok := r.Last()
	if !ok {
		t.Fatal("no result recorded")
	}
	if res.Variant != "easy" || res.Score != 3 || !res.Won || !res.HighScore {
		t.Errorf("result = %+v", res)
	}
	if all, _ := store.AllScores("sokoban"); len(all) != 1 {
		t.Errorf("saved %d scores, want 1", len(all))
	}

	// A new game resets the recorder.
	r.Listen(engine.GameStarted{Game: "sokoban", Variant: "hard"})
	if _, ok := r.Last(); ok {
		t.Error("Last() should be empty after GameStarted")
	}
	r.Listen(engine.StatusChanged{From: engine.StatusPlaying, To: engine.StatusLost, Score: 50})
	if res, _ := r.Last(); res.Variant != "hard" || res.Won {
		t.Errorf("lost game result = %+v", res)
	}
}

func TestRecorderIgnoresQuit(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(store, "samegame", core.HigherIsBetter, log.New(io.Discard))

	r.Listen(engine.GameStarted{Game: "samegame", Variant: "easy"})
	r.Listen(engine.StatusChanged{From: engine.StatusPlaying, To: engine.StatusQuitByUser, Score: 40})
	r.Listen(engine.GameQuit{})

	if _, ok := r.Last(); ok {
		t.Error("quit must not be recorded")
	}
	if all, _ := store.AllScores("samegame"); len(all) != 0 {
		t.Errorf("saved %d scores, want 0", len(all))
	}
}

func TestRecorderAttachRecordsFinishedAtLoad(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(store, sokoban.ID, core.LowerIsBetter, log.New(io.Discard))

	session := engine.NewSession(sokoban.NewModel(levels.Level{ID: "solved", Rows: []string{"P$"}}, 0), log.New(io.Discard))
	if err := session.Initialize(); err != nil {
		t.Fatal(err)
	}
	if session.Status() != engine.StatusWon {
		t.Fatalf("status = %v, want won", session.Status())
	}

	unsubscribe := r.Attach(session, "solved")
	defer unsubscribe()

	res, ok := r.Last()
	if !ok || res.Variant != "solved" || res.Score != 0 || !res.Won {
		t.Fatalf("result = %+v, %v", res, ok)
	}

	// A restart is a new game and is recorded through the subscription.
	session.Submit(engine.NewGame{})
	if all, _ := store.AllScores(sokoban.ID); len(all) != 2 {
		t.Errorf("saved %d scores, want 2", len(all))
	}
}
