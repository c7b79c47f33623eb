package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/gestures"
	"github.com/gesturelab/gesture-arcade/internal/registry"
	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SessionDeps bundles the per-connection dependencies of an arcade
// session. Each SSH connection gets its own tracker so concurrent
// players never share session state.
type SessionDeps struct {
	Tracker  *tracking.Tracker
	Gestures *gestures.Context
}

// SessionFactory builds the dependencies for a new arcade session.
// A nil factory disables tracking for remote play.
type SessionFactory func() SessionDeps

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	factory SessionFactory
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]SessionDeps // Live connections, keyed by SSH session ID
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, factory SessionFactory) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-ssh",
	})

	srv := &SSHServer{
		config:   cfg,
		factory:  factory,
		logger:   logger,
		sessions: make(map[string]SessionDeps),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionGuardMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	var deps SessionDeps
	if s.factory != nil {
		deps = s.factory()
	}
	s.trackSession(sshSession.Context().SessionID(), deps)

	model := NewSessionModel(deps, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionGuardMiddleware closes any tracking session the game model never
// got to end, which happens when the connection drops mid-run. It runs
// after the Bubble Tea program for the connection has been torn down.
func (s *SSHServer) sessionGuardMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		s.releaseSession(sshSession.Context().SessionID())
	}
}

// trackSession remembers a connection's dependencies so the guard can
// find them after teardown.
func (s *SSHServer) trackSession(id string, deps SessionDeps) {
	s.mu.Lock()
	s.sessions[id] = deps
	s.mu.Unlock()
}

// releaseSession forgets a connection and backstops its session.
func (s *SSHServer) releaseSession(id string) {
	s.mu.Lock()
	deps, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return
	}
	closeAbandonedSession(deps, s.logger)
}

// closeAbandonedSession ends a session that is still active after its
// connection went away, reporting it as an exit so the run's actions are
// not lost. The final score is unknown at this point and reported as zero.
func closeAbandonedSession(deps SessionDeps, logger *log.Logger) {
	if deps.Tracker == nil || !deps.Tracker.Active() {
		return
	}
	logger.Warn("connection dropped with an active session; closing it as an exit")
	deps.Tracker.End(0, tracking.ResultExit)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full arcade flow: menu -> gesture picker or
// game -> menu. This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps      SessionDeps
	config    core.RuntimeConfig
	menu      MenuModel
	gesture   *GestureModel
	gameModel *Model
	inGame    bool
	inGesture bool
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(cfg, activeGestureCode(deps)),
	}
}

// activeGestureCode returns the session's current gesture code, if any.
func activeGestureCode(deps SessionDeps) string {
	if deps.Gestures == nil {
		return ""
	}
	return deps.Gestures.ActiveCode()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.inGame && m.gameModel != nil {
		return m.updateGame(msg)
	}
	if m.inGesture && m.gesture != nil {
		return m.updateGesture(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsGesture() {
		gesture := NewGestureModel(m.config.ScreenW, m.config.ScreenH, activeGestureCode(m.deps))
		m.gesture = &gesture
		m.inGesture = true
		return m, m.gesture.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Menu only shows registered games
			return m, nil
		}

		m.config = m.menu.Config() // Get possibly updated config from resize
		gameModel := NewModel(game, m.deps.Tracker, m.config)
		m.gameModel = &gameModel
		m.inGame = true

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGesture handles updates when the gesture picker is shown.
func (m SessionModel) updateGesture(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.gesture.Update(msg)
	if gestureModel, ok := newModel.(GestureModel); ok {
		m.gesture = &gestureModel
	}

	if m.gesture.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gesture.done {
		if code := m.gesture.Selected(); code != "" && m.deps.Gestures != nil {
			m.deps.Gestures.SetActiveCode(code)
		}
		m.inGesture = false
		m.gesture = nil
		m.menu = NewMenuModel(m.config, activeGestureCode(m.deps))
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.inGame = false
		m.gameModel = nil
		m.menu = NewMenuModel(m.config, activeGestureCode(m.deps))
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.gameModel != nil {
		return m.gameModel.View()
	}
	if m.inGesture && m.gesture != nil {
		return m.gesture.View()
	}

	return m.menu.View()
}
