package samegame

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

// Package-level config, set by the CLI before games are created.
var (
	cfgMu     sync.RWMutex
	cfgLoaded *config.SameGameConfig
)

// SetConfig overrides the configuration used by new games.
func SetConfig(cfg config.SameGameConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgLoaded = &cfg
}

func currentConfig() (config.SameGameConfig, error) {
	cfgMu.RLock()
	if cfgLoaded != nil {
		defer cfgMu.RUnlock()
		return *cfgLoaded, nil
	}
	cfgMu.RUnlock()

	cfg, err := config.LoadSameGame("")
	if err != nil {
		return config.DefaultSameGameConfig(), err
	}
	return cfg, nil
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game adapts a Model to the registry interface: it owns the session,
// the selection cursor and the feedback shown to the player.
type Game struct {
	model   *Model
	session *engine.Session

	cursor  engine.Pos
	hint    map[engine.Pos]bool
	message string

	screenW int
	screenH int
}

// New creates an unstarted game; call Reset before use.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "SameGame"
}

// ScoreOrder ranks higher scores first.
func (g *Game) ScoreOrder() core.ScoreOrder {
	return core.HigherIsBetter
}

// Variants lists the difficulty names.
func (g *Game) Variants() []string {
	out := make([]string, 0, 3)
	for _, d := range config.Difficulties() {
		out = append(out, string(d))
	}
	return out
}

// Session returns the current engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Model returns the underlying model.
func (g *Game) Model() *Model {
	return g.model
}

// Reset starts a new session at the difficulty named by cfg.Variant.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	gc, err := currentConfig()
	if err != nil {
		return err
	}

	difficulty := gc.DefaultDifficulty
	if cfg.Variant != "" {
		if difficulty, err = config.ParseDifficulty(cfg.Variant); err != nil {
			return err
		}
	}
	preset, err := gc.Board(difficulty)
	if err != nil {
		return err
	}

	return g.start(NewModel(string(difficulty), preset, cfg.Seed, gc.HistoryLimit), cfg)
}

// ResetWithLayout starts a session on a fixed board.
func (g *Game) ResetWithLayout(rows []string, cfg core.RuntimeConfig) error {
	m, err := NewModelFromLayout(rows, 0)
	if err != nil {
		return err
	}
	return g.start(m, cfg)
}

func (g *Game) start(m *Model, cfg core.RuntimeConfig) error {
	g.model = m
	g.session = engine.NewSession(m, nil)
	g.session.Subscribe(g.onEvent)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cursor = engine.P(0, 0)
	g.hint = nil
	g.message = ""
	return g.session.Initialize()
}

// onEvent turns engine events into player feedback.
func (g *Game) onEvent(e engine.Event) {
	switch e := e.(type) {
	case engine.MoveRejected:
		g.message = e.Reason
	case engine.TilesRemoved:
		g.message = fmt.Sprintf("Removed %d tiles for %d points", e.Count, e.Points)
	case engine.HintAvailable:
		g.hint = make(map[engine.Pos]bool, len(e.Group))
		for _, p := range e.Group {
			g.hint[p] = true
		}
		g.message = fmt.Sprintf("Hint: %d tiles", len(e.Group))
	case engine.HintUnavailable:
		g.message = "No moves to suggest"
	case engine.UndoPerformed:
		g.message = "Undone"
	case engine.UndoUnavailable:
		g.message = "Nothing to undo"
	case engine.BoardChanged:
		g.hint = nil
	case engine.StatusChanged:
		switch e.To {
		case engine.StatusWon:
			g.message = "Board cleared!"
		case engine.StatusLost:
			g.message = "No more moves"
		}
	}
}

// Step applies one input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	g.message = ""

	switch {
	case in.Has(core.ActionRestart):
		g.session.Submit(engine.NewGame{})
		g.cursor = engine.P(0, 0)
	case in.Has(core.ActionUndo):
		g.session.Submit(engine.Undo{})
	case in.Has(core.ActionPause):
		g.session.Submit(engine.Pause{})
	case in.Has(core.ActionQuit):
		g.session.Submit(engine.Quit{})
	case in.Has(core.ActionHint):
		out := g.session.Submit(engine.Hint{})
		if len(out.Group) > 0 {
			g.cursor = out.Group[0]
		}
	case in.Has(core.ActionConfirm):
		g.session.Submit(engine.Select{Pos: g.cursor})
	default:
		if dir, ok := in.Direction(); ok {
			g.moveCursor(dir)
		}
	}

	g.clampCursor()
	return core.StepResult{State: g.State(), Message: g.message}
}

func (g *Game) moveCursor(a core.Action) {
	switch a {
	case core.ActionUp:
		g.cursor.Row--
	case core.ActionDown:
		g.cursor.Row++
	case core.ActionLeft:
		g.cursor.Col--
	case core.ActionRight:
		g.cursor.Col++
	}
}

func (g *Game) clampCursor() {
	g.session.View(func(engine.Game) {
		b := g.model.Board()
		if b == nil {
			return
		}
		g.cursor.Row = core.Clamp(g.cursor.Row, 0, b.Rows()-1)
		g.cursor.Col = core.Clamp(g.cursor.Col, 0, b.Cols()-1)
	})
}

// Cursor returns the selection cursor.
func (g *Game) Cursor() engine.Pos {
	return g.cursor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	status := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		Status:   status.String(),
		Variant:  g.model.Variant(),
		GameOver: status.Terminal(),
		Won:      status == engine.StatusWon,
		Paused:   status == engine.StatusPaused,
	}
}

// BoardText renders the board with row and column labels for line-based
// front-ends.
func (g *Game) BoardText() string {
	if g.session == nil {
		return ""
	}
	var rows []string
	g.session.View(func(engine.Game) {
		if b := g.model.Board(); b != nil {
			rows = FormatBoard(b)
		}
	})
	return labelRows(rows)
}
