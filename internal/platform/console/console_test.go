package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/games/samegame"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban/levels"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line   string
		name   string
		action engine.Action
	}{
		{"select 1 2", "select", engine.Select{Pos: engine.P(1, 2)}},
		{"  3   4 ", "select", engine.Select{Pos: engine.P(3, 4)}},
		{"move up", "move", engine.Move{Dir: engine.DirUp}},
		{"MOVE Left", "move", engine.Move{Dir: engine.DirLeft}},
		{"right", "move", engine.Move{Dir: engine.DirRight}},
		{"undo", "undo", engine.Undo{}},
		{"hint", "hint", engine.Hint{}},
		{"pause", "pause", engine.Pause{}},
		{"new", "new", engine.NewGame{}},
		{"quit", "quit", engine.Quit{}},
		{"board", "board", nil},
		{"help", "help", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			if cmd.Name != tt.name || cmd.Action != tt.action {
				t.Errorf("got %+v, want %s %v", cmd, tt.name, tt.action)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrUsage},
		{"select 1", ErrUsage},
		{"select a b", ErrUsage},
		{"move sideways", ErrUsage},
		{"move", ErrUsage},
		{"jump", ErrUnknownCommand},
		{"1 2 3", ErrUnknownCommand},
	}
	for _, tt := range tests {
		if _, err := ParseCommand(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("ParseCommand(%q) err = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func run(t *testing.T, c *Console, input string) string {
	t.Helper()
	var out strings.Builder
	c.out = &out
	if err := c.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestConsoleSameGame(t *testing.T) {
	g := samegame.New()
	if err := g.ResetWithLayout([]string{"RRB", "RBB", "BRB"}, core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	c := New(g, io.Discard, log.New(io.Discard))

	out := run(t, c, "hint\n2 1\nselect 0 0\nundo\nundo\nbogus\nquit\nselect 0 0\n")

	for _, want := range []string{
		"SameGame (custom)",
		"hint: select 0 2 (4 tiles)",
		"rejected: " + samegame.ReasonGroupTooSmall,
		"removed 3 tiles, +6 points",
		"Score: 6  Status: playing",
		"nothing to undo",
		"error: console: unknown command",
		"Bye. Final score: 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if g.State().Status != "quit" {
		t.Errorf("status = %q, want quit", g.State().Status)
	}
}

func TestConsoleSokoban(t *testing.T) {
	g := sokoban.New()
	level := levels.Level{ID: "line", Rows: []string{"P B."}}
	if err := g.ResetWithLevel(level, core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	c := New(g, io.Discard, log.New(io.Discard))

	out := run(t, c, "move left\nright\nmove right\nboard\n")

	for _, want := range []string{
		"rejected: " + sokoban.ReasonOutOfBounds,
		" PB.",
		"You won! Final score: 2",
		"  P$",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleIgnoredWhilePaused(t *testing.T) {
	g := sokoban.New()
	if err := g.ResetWithLevel(levels.Level{ID: "line", Rows: []string{"P B."}}, core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	c := New(g, io.Discard, log.New(io.Discard))

	out := run(t, c, "pause\nright\npause\n")
	if !strings.Contains(out, "ignored: not accepted while paused") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "Resumed.") {
		t.Errorf("output:\n%s", out)
	}
}

func TestConsoleCancelled(t *testing.T) {
	g := sokoban.New()
	if err := g.ResetWithLevel(levels.Level{ID: "line", Rows: []string{"P B."}}, core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(g, io.Discard, log.New(io.Discard)).Run(ctx, strings.NewReader("right\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestConsoleWithoutSession(t *testing.T) {
	err := New(samegame.New(), io.Discard, nil).Run(context.Background(), strings.NewReader(""))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}
