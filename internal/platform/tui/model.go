package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/registry"
	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

// Model is the Bubble Tea model for running arcade games.
// It drives the fixed-tick simulation, maps input, and reports the
// session lifecycle to the tracker.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	tracker    *tracking.Tracker // May be nil when tracking is disabled
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	ended      bool // Session already closed for the current run
	ticks      int  // Simulation ticks elapsed in the current run
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, tracker *tracking.Tracker, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		tracker:    tracker,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	if m.tracker != nil {
		m.tracker.Start(m.game.TelemetryID())
	}

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		// Player quit mid-run: close the session before leaving
		m.endSession(tracking.ResultExit)
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is allowed when the run is over or paused. The session
	// is closed here and the program quits; SessionModel intercepts
	// BackToMenu and swallows the quit to return to its menu, while
	// standalone play exits.
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.endSession(tracking.ResultExit)
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.gameState.GameOver {
		return m, nil
	}

	// Field geometry depends on the screen size, so resizing restarts the
	// run. Before the first tick this is the initial size report and the
	// session carries on; after that the abandoned run ends as a retry and
	// a fresh session begins, keeping one run per session.
	if m.ticks > 0 {
		m.endSession(tracking.ResultRetry)
		m.ended = false
		m.ticks = 0
		if m.tracker != nil {
			m.tracker.Start(m.game.TelemetryID())
		}
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		if m.gameState.GameOver {
			return m.restart()
		}
		if !m.gameState.Paused {
			// Mid-run restart abandons the session as a retry
			m.endSession(tracking.ResultRetry)
			return m.restart()
		}
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.ticks++

	// Forward tracked player actions
	if m.tracker != nil {
		for _, label := range result.Events {
			m.tracker.Record(label)
		}
	}

	// Close the session once per run
	if m.gameState.GameOver && !m.ended {
		outcome := tracking.ResultLose
		if m.gameState.Won {
			outcome = tracking.ResultCompleted
		}
		m.endSession(outcome)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// restart begins a fresh run with a new seed and a new session.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.ended = false
	m.ticks = 0
	m.inputFrame.Clear()

	if m.tracker != nil {
		m.tracker.Start(m.game.TelemetryID())
	}

	return m, tickCmd(m.config.TickRate)
}

// endSession closes the current tracking session with the given outcome.
func (m *Model) endSession(result string) {
	if m.tracker == nil || m.ended {
		return
	}
	m.tracker.End(m.gameState.Score, result)
	m.ended = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a single game. It reports whether
// the player asked to quit the application outright, as opposed to backing
// out toward a menu.
func Run(game registry.Game, tracker *tracking.Tracker, cfg core.RuntimeConfig) (bool, error) {
	model := NewModel(game, tracker, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	if m, ok := final.(Model); ok {
		return m.IsQuitting(), nil
	}
	return true, nil
}
