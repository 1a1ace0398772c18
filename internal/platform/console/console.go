// Package console is a line-oriented front-end: it reads one command per
// line and prints the board as text after every change.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

var (
	// ErrUnknownCommand is returned for a command word that is not recognized.
	ErrUnknownCommand = errors.New("console: unknown command")
	// ErrUsage is returned when a command has wrong arguments.
	ErrUsage = errors.New("console: bad arguments")
	// ErrNoSession is returned when the game was not started.
	ErrNoSession = errors.New("console: game has no session")
)

// BoardTexter is implemented by games that can print their board.
type BoardTexter interface {
	BoardText() string
}

// Command is one parsed input line. Action is nil for commands handled by
// the console itself (board, help).
type Command struct {
	Name   string
	Action engine.Action
}

const helpText = `commands:
  select <row> <col>   remove the group at row, col (also: <row> <col>)
  move <dir>           move up, down, left or right (also: up, down, left, right)
  undo                 take back the last move
  hint                 suggest a group
  pause                pause or resume
  new                  start over
  board                print the board
  help                 show this text
  quit                 leave`

// ParseCommand parses one input line.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUsage)
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "select", "s":
		p, err := parsePos(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: "select", Action: engine.Select{Pos: p}}, nil
	case "move", "m":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: move <up|down|left|right>", ErrUsage)
		}
		d, ok := engine.ParseDirection(args[0])
		if !ok {
			return Command{}, fmt.Errorf("%w: unknown direction %q", ErrUsage, args[0])
		}
		return Command{Name: "move", Action: engine.Move{Dir: d}}, nil
	case "up", "down", "left", "right":
		d, _ := engine.ParseDirection(name)
		return Command{Name: "move", Action: engine.Move{Dir: d}}, nil
	case "undo", "u":
		return Command{Name: "undo", Action: engine.Undo{}}, nil
	case "hint", "h":
		return Command{Name: "hint", Action: engine.Hint{}}, nil
	case "pause", "p":
		return Command{Name: "pause", Action: engine.Pause{}}, nil
	case "new", "n", "restart":
		return Command{Name: "new", Action: engine.NewGame{}}, nil
	case "quit", "q", "exit":
		return Command{Name: "quit", Action: engine.Quit{}}, nil
	case "board", "b":
		return Command{Name: "board"}, nil
	case "help", "?":
		return Command{Name: "help"}, nil
	}

	// A bare "row col" pair selects.
	if p, err := parsePos(fields); err == nil {
		return Command{Name: "select", Action: engine.Select{Pos: p}}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

func parsePos(args []string) (engine.Pos, error) {
	if len(args) != 2 {
		return engine.Pos{}, fmt.Errorf("%w: select <row> <col>", ErrUsage)
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return engine.Pos{}, fmt.Errorf("%w: row %q is not a number", ErrUsage, args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return engine.Pos{}, fmt.Errorf("%w: column %q is not a number", ErrUsage, args[1])
	}
	return engine.P(row, col), nil
}

// Console drives one started game from text input.
type Console struct {
	game   registry.Game
	out    io.Writer
	logger *log.Logger
	prompt string
}

// New creates a console writing to out. The game must already be Reset.
func New(game registry.Game, out io.Writer, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.Default()
	}
	return &Console{
		game:   game,
		out:    out,
		logger: logger.With("frontend", "console"),
		prompt: "> ",
	}
}

// Run reads commands from in until quit, end of input or ctx is done.
// Cancellation is noticed between lines.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	session := c.game.Session()
	if session == nil {
		return ErrNoSession
	}
	unsubscribe := session.Subscribe(c.onEvent)
	defer unsubscribe()

	fmt.Fprintf(c.out, "%s (%s). Type \"help\" for commands.\n", c.game.Title(), c.game.State().Variant)
	c.printBoard()

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, c.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			c.logger.Debug("bad command", "line", line, "err", err)
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
		if c.exec(session, cmd) {
			return nil
		}
	}
}

// exec runs one command and reports whether the console should stop.
func (c *Console) exec(session *engine.Session, cmd Command) bool {
	switch cmd.Name {
	case "help":
		fmt.Fprintln(c.out, helpText)
		return false
	case "board":
		c.printBoard()
		return false
	}

	out := session.Submit(cmd.Action)
	c.logger.Debug("command", "cmd", cmd.Name, "outcome", out.Kind)

	switch out.Kind {
	case engine.OutcomeIgnored:
		fmt.Fprintf(c.out, "ignored: %s\n", out.Reason)
	case engine.OutcomeFailed:
		fmt.Fprintf(c.out, "error: %v\n", out.Err)
	case engine.OutcomeQuit:
		fmt.Fprintf(c.out, "Bye. Final score: %d\n", session.Score())
		return true
	case engine.OutcomePaused:
		fmt.Fprintln(c.out, "Paused. Type \"pause\" to resume.")
	case engine.OutcomeResumed:
		fmt.Fprintln(c.out, "Resumed.")
	}

	if out.Mutated() {
		c.printBoard()
	}
	return false
}

// onEvent prints feedback. It runs under the session lock and only writes.
func (c *Console) onEvent(e engine.Event) {
	switch e := e.(type) {
	case engine.MoveRejected:
		fmt.Fprintf(c.out, "rejected: %s\n", e.Reason)
	case engine.TilesRemoved:
		fmt.Fprintf(c.out, "removed %d tiles, +%d points\n", e.Count, e.Points)
	case engine.HintAvailable:
		fmt.Fprintf(c.out, "hint: select %d %d (%d tiles)\n", e.Group[0].Row, e.Group[0].Col, len(e.Group))
	case engine.HintUnavailable:
		fmt.Fprintln(c.out, "hint: no move to suggest")
	case engine.UndoUnavailable:
		fmt.Fprintln(c.out, "nothing to undo")
	case engine.LevelLoadFailed:
		fmt.Fprintf(c.out, "level failed to load: %v\n", e.Err)
	case engine.StatusChanged:
		switch e.To {
		case engine.StatusWon:
			fmt.Fprintf(c.out, "You won! Final score: %d\n", e.Score)
		case engine.StatusLost:
			fmt.Fprintf(c.out, "No more moves. Final score: %d\n", e.Score)
		}
	}
}

func (c *Console) printBoard() {
	if bt, ok := c.game.(BoardTexter); ok {
		fmt.Fprintln(c.out, bt.BoardText())
	}
	st := c.game.State()
	fmt.Fprintf(c.out, "Score: %d  Status: %s\n", st.Score, st.Status)
}
