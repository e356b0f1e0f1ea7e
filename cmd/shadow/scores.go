package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-delivery/internal/platform/tui"
	"github.com/vovakirdan/shadow-delivery/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the run history",
	Long: `Display the best runs, for one level or for all of them.

In a terminal the history opens as a browsable table; use --plain (or
pipe the output) for a text listing.

Examples:
  shadow scores
  shadow scores town
  shadow scores town --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs in the text listing")
}

func runScores(_ *cobra.Command, args []string) error {
	levelName := ""
	if len(args) > 0 {
		levelName = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if !flagPlain && isTerminal() {
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, levelName, cfg.ScreenW, cfg.ScreenH)
	}
	return printScores(os.Stdout, store, levelName, flagLimit)
}

// printScores writes a ranked listing of the best runs.
func printScores(w io.Writer, store *storage.Store, levelName string, limit int) error {
	title := "all levels"
	if levelName != "" {
		title = levelName
	}
	titleStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(w, "%s\n\n", titleStyle.Render("Delivery Log - "+title))

	runs, err := store.TopRuns(levelName, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'shadow play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %10s  %-12s  %-10s  %5s  %8s  %s\n", "Rank", "Score", "Level", "Player", "Drops", "Survived", "When")
	fmt.Fprintf(w, "  %-4s  %10s  %-12s  %-10s  %5s  %8s  %s\n", "----", "-----", "-----", "------", "-----", "--------", "----")

	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(w, "  %-4s  %10s  %-12s  %-10s  %5s  %8s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	stats, err := store.Stats(levelName)
	if errors.Is(err, storage.ErrNoRuns) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: $%s\n", humanize.Comma(int64(stats.HighScore)))
	fmt.Fprintln(w, tui.StatsLine(stats))
	return nil
}
