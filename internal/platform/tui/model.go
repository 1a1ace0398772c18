package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/engine"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// Model is the Bubble Tea model of the play screen. Games are turn based:
// every key press is one Step, there is no tick loop.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	recorder  *storage.Recorder
	session   *engine.Session // session the recorder is attached to
	unsub     func()
	gameState core.GameState
	notice    string
	quitting  bool
	back      bool
}

// NewModel resets game with cfg and wraps it in a play screen. A nil store
// disables score recording.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := game.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("start %s: %w", game.ID(), err)
	}

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		gameState: game.State(),
	}
	if store != nil {
		m.recorder = storage.NewRecorder(store, game.ID(), game.ScoreOrder(), nil)
		m.attach()
	}
	return m, nil
}

// attach subscribes the recorder to the game's current session. Games may
// replace their session (a new level), so this runs after every step.
func (m *Model) attach() {
	if m.recorder == nil {
		return
	}
	s := m.game.Session()
	if s == nil || s == m.session {
		return
	}
	if m.unsub != nil {
		m.unsub()
	}
	m.session = s
	m.unsub = m.recorder.Attach(s, m.game.State().Variant)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	var frame core.InputFrame
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}
	if frame.Has(core.ActionBack) {
		m.back = true
		return m, tea.Quit
	}
	if frame.Empty() {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(frame)
	m.gameState = result.State
	m.attach()

	m.notice = ""
	if m.gameState.GameOver && !wasOver && m.recorder != nil {
		if res, ok := m.recorder.Last(); ok && res.HighScore {
			m.notice = fmt.Sprintf("New high score: %d", res.Score)
		}
	}
	return m, nil
}

// saveScreenshot writes the current screen as plain text under the XDG
// data directory.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path, err := xdg.DataFile(filepath.Join("puzzles", "screenshots", name))
	if err != nil {
		log.Warn("cannot create screenshot directory", "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.TrimmedString()), 0o600); err != nil {
		log.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.notice = "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 0 {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.notice, core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Close detaches from the game session.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

// Run plays game until the user quits or goes back. back reports the
// latter.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (back bool, err error) {
	model, err := NewModel(game, store, cfg)
	if err != nil {
		return false, err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	fm, ok := final.(Model)
	if !ok {
		fm = model
	}
	fm.Close()
	if err != nil {
		return false, err
	}
	return fm.BackToMenu(), nil
}
