package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-delivery/internal/editor"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/platform/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a level file",
	Long: `Open a level file in the editor. A missing file starts a new level
named after the file; Ctrl+S writes it in the format of its extension.

Controls:
  Arrows/hjkl      - Move cursor
  Tab              - Cycle mode (spawn, waypoint, obstacle, lamp, prop)
  Enter            - Place in the current mode
  Space            - Grab or drop the entity under the cursor
  X                - Delete
  [ ]              - Rotate
  Shift+Arrows     - Resize
  { }              - Reveal an obstacle earlier or later
  L                - Toggle headlights
  p / P            - Add patrol point to the held obstacle / clear it
  z / Z            - Zoom
  Ctrl+S           - Save
  ?                - Full help
  Q/Esc            - Quit

Examples:
  shadow edit ./levels/docks.yaml
  shadow edit ./levels/new.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(_ *cobra.Command, args []string) error {
	path := args[0]
	if _, err := level.FormatFromPath(path); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "shadow-edit")
	if err != nil {
		return err
	}
	defer closeLog()

	lvl, err := level.LoadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		lvl = level.New(name)
		logger.Info("starting new level", "name", name, "path", path)
	case err != nil:
		return err
	}

	cfg := runtimeConfig()
	ed := editor.New(lvl, path)
	if err := tui.RunEditor(ed, cfg.ScreenW, cfg.ScreenH, logger); err != nil {
		return err
	}
	if ed.Dirty() {
		fmt.Fprintf(os.Stderr, "Unsaved changes to %s were discarded.\n", path)
	}
	return nil
}
