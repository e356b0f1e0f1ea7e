// shadow is a stealth delivery game played in the terminal.
//
// Usage:
//
//	shadow play                  - Drive a delivery shift
//	shadow edit <file>           - Edit a level file
//	shadow scores [level]        - Show the run history
//	shadow serve                 - Start SSH server for remote play
//	shadow level check <file>    - Validate a level file
//	shadow level convert <a> <b> - Convert a level between formats
//	shadow level list            - List levels in the levels directory
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.shadow/runs.db)
//	--config <path>       - Tuning config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--level <file|name>   - Level to play
//	--log <path>          - Write logs to a file
//	--debug               - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shadow-delivery/internal/config"
	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLevelsDir  string
	flagLogPath    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shadow",
	Short: "Shadow Delivery - drive unseen through a night town",
	Long: `Shadow Delivery is a top-down stealth driving game for the terminal.

Deliver parcels to glowing drop points while staying out of headlights
and street lamps. Light drains your health; deliveries made without
being seen earn a shadow bonus.

Available commands:
  play     - Start a delivery shift
  edit     - Edit a level file
  scores   - View the run history
  serve    - Start SSH server for remote play
  level    - Check, convert and list level files

Examples:
  shadow play
  shadow play --level ./levels/docks.yaml --difficulty hard
  shadow edit ./levels/docks.yaml
  shadow scores town
  shadow serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.shadow/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level file or name (default: built-in town)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "~/.shadow/levels", "Directory searched for levels by name")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelCmd)
}

// newLogger returns a logger writing to --log, or to fallback when no
// file is given. Interactive commands pass io.Discard since stderr would
// tear the alternate screen. The returned closer must be called on exit.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}

	if flagLogPath != "" {
		f, err := os.OpenFile(expandHome(flagLogPath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// loadTuning reads the tuning config and applies the difficulty preset.
func loadTuning(logger *log.Logger) (sim.Tuning, error) {
	cfg, err := config.LoadShadow(flagConfig)
	if err != nil {
		return sim.Tuning{}, err
	}

	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return sim.Tuning{}, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyShadowPreset(&cfg, preset)
		logger.Debug("difficulty applied", "preset", preset, "damage_rate", cfg.Stealth.DamageRate)
	}
	return sim.TuningFrom(cfg), nil
}

// loadLevel resolves --level: an existing file is loaded directly, any
// other value is looked up by name in --levels-dir, and an empty value
// selects the built-in level.
func loadLevel(arg string) (*level.Level, string, error) {
	if arg == "" {
		return level.Default(), "", nil
	}

	if _, err := os.Stat(arg); err == nil {
		l, err := level.LoadFile(arg)
		if err != nil {
			return nil, "", err
		}
		return l, arg, nil
	}

	entry, err := level.NewLoader(expandHome(flagLevelsDir)).LoadByName(arg)
	if err != nil {
		return nil, "", err
	}
	return entry.Level, entry.Path, nil
}

// runtimeConfig builds the session settings from flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
