package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Shadow Delivery SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own delivery shift on the selected level.
Runs are stored per-server under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.shadow/host_key

Examples:
  shadow serve                           # Listen on :23234 with auto-generated key
  shadow serve --ssh :2222               # Listen on port 2222
  shadow serve --level docks             # Serve another level
  shadow serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "shadow-ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	tuning, err := loadTuning(logger)
	if err != nil {
		return err
	}
	lvl, _, err := loadLevel(flagLevel)
	if err != nil {
		return err
	}
	for _, issue := range level.Validate(lvl) {
		logger.Warn("level issue", "level", lvl.Name, "code", issue.Code, "message", issue.Message)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Level:       lvl,
		Tuning:      tuning,
		TickRate:    flagFPS,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Shadow Delivery SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx)
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
