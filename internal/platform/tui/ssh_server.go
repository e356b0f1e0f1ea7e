package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
	"github.com/vovakirdan/shadow-delivery/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.shadow/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Level is driven by every session.
	Level *level.Level

	// Tuning holds the simulation constants for every session.
	Tuning sim.Tuning

	// TickRate is the frame rate of each session.
	TickRate int

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.shadow/runs.db",
		IdleTimeout: 30 * time.Minute,
		Level:       level.Default(),
		Tuning:      sim.DefaultTuning(),
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer wraps a Wish SSH server that hands each connection its own
// delivery run.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32

	closeOnce sync.Once
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Level == nil {
		return nil, errors.New("tui: ssh server needs a level")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "shadow-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".shadow", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.courierMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler starts a delivery run for each SSH connection. Sessions
// without a terminal are turned away.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "shadow needs a terminal, connect with: ssh -t")
		return nil, nil
	}

	model := NewModel(s.sessionOptions(sess.User(), pty.Window.Width, pty.Window.Height))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionOptions builds the game options for one courier. Every session
// gets its own seed; the level is cloned by the world.
func (s *SSHServer) sessionOptions(user string, width, height int) GameOptions {
	return GameOptions{
		Level:  s.config.Level,
		Tuning: s.config.Tuning,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Store:  s.store,
		Logger: s.logger.With("user", user),
		Player: user,
	}
}

// courierMiddleware logs each session along with how many couriers are
// on the road.
func (s *SSHServer) courierMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("courier connected", "active", s.active.Add(1))
		next(sess)
		logger.Info("courier left",
			"active", s.active.Add(-1),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// Serve accepts connections until ctx is done, then shuts the server
// down. A listener failure is returned immediately.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "level", s.config.Level.Name)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.Active())
	return s.Shutdown()
}

// Shutdown stops the server, waiting up to ten seconds for sessions to
// end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *SSHServer) closeStore() {
	s.closeOnce.Do(func() {
		if s.store != nil {
			s.store.Close()
		}
	})
}
