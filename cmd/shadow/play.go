package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/platform/tui"
	"github.com/vovakirdan/shadow-delivery/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a delivery shift",
	Long: `Drive a delivery shift on a level.

Controls:
  W/Up       - Accelerate
  S/Down     - Brake
  A/D, ←/→   - Steer
  P/Esc      - Pause
  R          - Restart (after death)
  Ctrl+P     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Light drains health slowly
  normal - Default drain
  hard   - Light drains health fast
  fixed  - Keep the config's damage rate

Examples:
  shadow play
  shadow play --difficulty hard
  shadow play --level docks --seed 42
  shadow play --config ./my-shadow.yaml --log shadow.log --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard, "shadow")
	if err != nil {
		return err
	}
	defer closeLog()

	tuning, err := loadTuning(logger)
	if err != nil {
		return err
	}

	lvl, path, err := loadLevel(flagLevel)
	if err != nil {
		return err
	}
	for _, issue := range level.Validate(lvl) {
		logger.Warn("level issue", "level", lvl.Name, "code", issue.Code, "message", issue.Message)
	}
	logger.Debug("level loaded", "name", lvl.Name, "path", path)

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(tui.GameOptions{
		Level:   lvl,
		Tuning:  tuning,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
		Player:  os.Getenv("USER"),
	})
}
