package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/mission"
	"github.com/cybercop-labs/cybercop/internal/profile"
	"github.com/cybercop-labs/cybercop/internal/progress"
	"github.com/cybercop-labs/cybercop/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.cybercop/host_key.
	HostKeyPath string

	// DBPath is the path to the state database.
	DBPath string

	// PackPath is an optional external mission pack. Empty means the
	// built-in pack.
	PackPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.cybercop/cybercop.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for the training platform.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	catalog *catalog.Catalog
	db      *storage.Store
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cybercop-ssh",
	})

	cat, err := catalog.Load(cfg.PackPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load mission catalog: %w", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open state database: %w", err)
	}

	srv := &SSHServer{
		config:  cfg,
		catalog: cat,
		db:      db,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			db.Close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".cybercop", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		db.Close()
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

	model := NewSessionModel(s.catalog, s.db, s.logger, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
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

	if s.db != nil {
		s.db.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen identifies the active screen in a session.
type sessionScreen int

const (
	screenCreator sessionScreen = iota
	screenMenu
	screenMission
	screenStore
	screenBoard
)

// SessionModel manages the full session flow: onboarding -> mission menu ->
// mission / store / progress board. It is the top-level model for both SSH
// sessions and the local full-screen command.
type SessionModel struct {
	catalog  *catalog.Catalog
	db       *storage.Store
	profiles *profile.Store
	progress *progress.Store
	logger   *log.Logger

	screen   sessionScreen
	menu     MenuModel
	creator  CreatorModel
	missionM *MissionModel
	storeM   *StoreModel
	boardM   *BoardModel
	status   *StatusSink

	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a new session model over shared storage.
func NewSessionModel(cat *catalog.Catalog, db *storage.Store, logger *log.Logger, width, height int) SessionModel {
	profiles := profile.NewStore(db, logger)
	prog := progress.NewStore(db, logger)

	m := SessionModel{
		catalog:  cat,
		db:       db,
		profiles: profiles,
		progress: prog,
		logger:   logger,
		width:    width,
		height:   height,
		status:   &StatusSink{},
	}

	if profiles.Profile().IsNewUser {
		m.screen = screenCreator
		m.creator = NewCreatorModel(profiles, width, height)
	} else {
		m.screen = screenMenu
		m.menu = NewMenuModel(cat, profiles, prog, width, height)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenCreator {
		return m.creator.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenCreator:
		return m.updateCreator(msg)
	case screenMission:
		return m.updateMission(msg)
	case screenStore:
		return m.updateStore(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateCreator(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.creator.Update(msg)
	if creator, ok := newModel.(CreatorModel); ok {
		m.creator = creator
	}

	if m.creator.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.creator.Done() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.menu.Update(msg)
	if menu, ok := newModel.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case MenuChoiceMission:
		rt := mission.New(mission.Config{
			Catalog:         m.catalog,
			Progress:        m.progress,
			Reward:          m.profiles.AddShards,
			CompleteMission: m.profiles.CompleteMission,
			Notify:          m.status,
		})
		if err := rt.Load(m.menu.SelectedMission()); err != nil {
			m.logger.Warn("could not load mission", "id", m.menu.SelectedMission(), "error", err)
			return m.toMenu()
		}
		*m.status = StatusSink{}
		mm := NewMissionModel(rt, m.status, m.width, m.height)
		m.missionM = &mm
		m.screen = screenMission
		return m, mm.Init()

	case MenuChoiceStore:
		sm := NewStoreModel(m.catalog, m.profiles, m.width, m.height)
		m.storeM = &sm
		m.screen = screenStore
		return m, sm.Init()

	case MenuChoiceBoard:
		bm := NewBoardModel(m.catalog, m.progress, m.db, m.width, m.height)
		m.boardM = &bm
		m.screen = screenBoard
		return m, bm.Init()
	}

	return m, cmd
}

func (m SessionModel) updateMission(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.missionM.Update(msg)
	if mm, ok := newModel.(MissionModel); ok {
		m.missionM = &mm
	}

	if m.missionM.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.missionM.BackToMenu() {
		m.missionM = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateStore(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.storeM.Update(msg)
	if store, ok := newModel.(StoreModel); ok {
		m.storeM = &store
	}

	if m.storeM.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.storeM.BackToMenu() {
		m.storeM = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.boardM.Update(msg)
	if board, ok := newModel.(BoardModel); ok {
		m.boardM = &board
	}

	if m.boardM.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.boardM.IsGoingBack() {
		m.boardM = nil
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu screen with fresh state.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.catalog, m.profiles, m.progress, m.width, m.height)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenCreator:
		return m.creator.View()
	case screenMission:
		if m.missionM != nil {
			return m.missionM.View()
		}
	case screenStore:
		if m.storeM != nil {
			return m.storeM.View()
		}
	case screenBoard:
		if m.boardM != nil {
			return m.boardM.View()
		}
	}
	return m.menu.View()
}

// RunSession runs the full-screen session flow locally.
func RunSession(cat *catalog.Catalog, db *storage.Store, logger *log.Logger, width, height int) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	model := NewSessionModel(cat, db, logger, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
