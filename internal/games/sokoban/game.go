package sokoban

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

// Package-level config, set by the CLI before games are created.
var (
	cfgMu     sync.RWMutex
	cfgLoaded *config.SokobanConfig
)

// SetConfig overrides the configuration used by new games.
func SetConfig(cfg config.SokobanConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgLoaded = &cfg
}

func currentConfig() (config.SokobanConfig, error) {
	cfgMu.RLock()
	if cfgLoaded != nil {
		defer cfgMu.RUnlock()
		return *cfgLoaded, nil
	}
	cfgMu.RUnlock()

	cfg, err := config.LoadSokoban("")
	if err != nil {
		return config.DefaultSokobanConfig(), err
	}
	return cfg, nil
}

// availableLevels returns every playable level. Broken level files are
// logged and skipped.
func availableLevels(dir string) []levels.Level {
	all, err := levels.All(dir, validateLevel)
	if err != nil {
		log.Warn("some level files were skipped", "dir", dir, "err", err)
	}
	return all
}

func validateLevel(rows []string) error {
	_, err := ParseLevel(rows)
	return err
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game adapts a Model to the registry interface.
type Game struct {
	model   *Model
	session *engine.Session
	levels  []levels.Level
	history int

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
	return "Sokoban"
}

// ScoreOrder ranks fewer moves first.
func (g *Game) ScoreOrder() core.ScoreOrder {
	return core.LowerIsBetter
}

// Variants lists the level IDs.
func (g *Game) Variants() []string {
	cfg, _ := currentConfig()
	return levels.IDs(availableLevels(cfg.LevelsDir))
}

// Session returns the current engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Model returns the underlying model.
func (g *Game) Model() *Model {
	return g.model
}

// Reset starts the level named by cfg.Variant, or the configured default.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	sc, err := currentConfig()
	if err != nil {
		return err
	}
	g.levels = availableLevels(sc.LevelsDir)
	g.history = sc.HistoryLimit

	id := cfg.Variant
	if id == "" {
		id = sc.DefaultLevel
	}
	level, err := levels.Find(g.levels, id)
	if err != nil {
		return err
	}
	return g.start(level, cfg.ScreenW, cfg.ScreenH)
}

// ResetWithLevel starts a session on the given level.
func (g *Game) ResetWithLevel(level levels.Level, cfg core.RuntimeConfig) error {
	if g.levels == nil {
		g.levels = []levels.Level{level}
	}
	return g.start(level, cfg.ScreenW, cfg.ScreenH)
}

// start replaces the running session only once the new level has loaded.
func (g *Game) start(level levels.Level, w, h int) error {
	g.message = ""
	model := NewModel(level, g.history)
	session := engine.NewSession(model, nil)
	unsubscribe := session.Subscribe(g.onEvent)
	if err := session.Initialize(); err != nil {
		unsubscribe()
		return err
	}
	g.model = model
	g.session = session
	g.screenW = w
	g.screenH = h
	return nil
}

func (g *Game) onEvent(e engine.Event) {
	switch e := e.(type) {
	case engine.MoveRejected:
		g.message = e.Reason
	case engine.UndoPerformed:
		g.message = "Undone"
	case engine.UndoUnavailable:
		g.message = "Nothing to undo"
	case engine.LevelLoadFailed:
		g.message = fmt.Sprintf("Level failed to load: %v", e.Err)
	case engine.StatusChanged:
		if e.To == engine.StatusWon {
			g.message = fmt.Sprintf("Level solved in %d moves!", e.Score)
		}
	}
}

// Step applies one input frame. Confirm on a solved level advances to the
// next one.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	g.message = ""

	switch {
	case in.Has(core.ActionRestart):
		g.session.Submit(engine.NewGame{})
	case in.Has(core.ActionUndo):
		g.session.Submit(engine.Undo{})
	case in.Has(core.ActionPause):
		g.session.Submit(engine.Pause{})
	case in.Has(core.ActionQuit):
		g.session.Submit(engine.Quit{})
	case in.Has(core.ActionConfirm):
		if g.session.Status() == engine.StatusWon {
			g.nextLevel()
		}
	default:
		if a, ok := in.Direction(); ok {
			g.session.Submit(engine.Move{Dir: toDirection(a)})
		}
	}
	return core.StepResult{State: g.State(), Message: g.message}
}

func (g *Game) nextLevel() {
	next, ok := levels.Next(g.levels, g.model.Level().ID)
	if !ok {
		return
	}
	if err := g.start(next, g.screenW, g.screenH); err != nil {
		g.message = fmt.Sprintf("Level %s failed to load: %v", next.ID, err)
	}
}

func toDirection(a core.Action) engine.Direction {
	switch a {
	case core.ActionUp:
		return engine.DirUp
	case core.ActionDown:
		return engine.DirDown
	case core.ActionLeft:
		return engine.DirLeft
	default:
		return engine.DirRight
	}
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
		Variant:  g.model.Level().ID,
		GameOver: status.Terminal(),
		Won:      status == engine.StatusWon,
		Paused:   status == engine.StatusPaused,
	}
}

// BoardText renders the board as level text for line-based front-ends.
func (g *Game) BoardText() string {
	if g.session == nil {
		return ""
	}
	var rows []string
	g.session.View(func(engine.Game) {
		if b := g.model.Board(); b != nil {
			rows = FormatLevel(b)
		}
	})
	return strings.Join(rows, "\n")
}
