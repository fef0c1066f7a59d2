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
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.dino/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the configuration every session plays with.
	Game config.DinoConfig

	// FPS is the host frame rate per session.
	FPS int

	// Store records per-session profiles. Optional.
	Store *storage.Store

	// Logger receives server and game logs.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultDinoConfig(),
		FPS:         60,
	}
}

// SSHServer wraps a Wish SSH server. Each session plays its own game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("ssh")

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".dino", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game and a Bubble Tea program for each SSH session.
// Sessions never play sound: the audio device belongs to the server host.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

	game, err := dino.New(dino.Options{
		Config: s.config.Game,
		Seed:   time.Now().UnixNano(),
		Audio:  audio.Nop{},
		Logger: logger,
	})
	if err == nil {
		err = game.Start()
	}
	if err != nil {
		logger.Error("cannot start game", "error", err)
		wish.Fatalln(sess, "cannot start game:", err)
		return nil, nil
	}

	model := NewModel(game, Options{
		FPS:         s.config.FPS,
		InputHold:   s.config.Game.Loop.InputHold,
		RepeatDelay: s.config.Game.Loop.RepeatDelay,
		MaxWidth:    s.config.Game.Loop.MaxWidth,
		MaxHeight:   s.config.Game.Loop.MaxHeight,
		Logger:      logger,
		Store:       s.config.Store,
		Session:     sess.User(),
		Renderer:    bubbletea.MakeRenderer(sess),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return fmt.Errorf("tui: serve: %w", err)
	}

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
