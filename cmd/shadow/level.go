package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shadow-delivery/internal/level"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Check, convert and list level files",
	Long: `Tools for level authors.

Level files may be YAML (.yaml, .yml), JSON (.json) or MessagePack
(.msgpack, .mpk); the extension picks the format.

Examples:
  shadow level check ./levels/docks.yaml
  shadow level convert ./levels/docks.json ./levels/docks.yaml
  shadow level list
  shadow level default > town.yaml`,
}

var levelCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLevelCheck,
}

var levelConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a level between formats",
	Args:  cobra.ExactArgs(2),
	RunE:  runLevelConvert,
}

var levelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels in the levels directory",
	Args:  cobra.NoArgs,
	RunE:  runLevelList,
}

var levelDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in level as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.OutOrStdout().Write(level.DefaultYAML())
	},
}

func init() {
	levelCmd.AddCommand(levelCheckCmd)
	levelCmd.AddCommand(levelConvertCmd)
	levelCmd.AddCommand(levelListCmd)
	levelCmd.AddCommand(levelDefaultCmd)
}

func runLevelCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		if !checkLevel(cmd.OutOrStdout(), path) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%s failed validation", english.Plural(failed, "level", ""))
	}
	return nil
}

// checkLevel prints the validation result for one file and reports
// whether it passed.
func checkLevel(w io.Writer, path string) bool {
	l, err := level.LoadFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}

	issues := level.Validate(l)
	if len(issues) == 0 {
		fmt.Fprintf(w, "%s: ok (%s, %s, %s, %s)\n", path,
			english.Plural(l.Waypoints.Len(), "waypoint", ""),
			english.Plural(l.Obstacles.Len(), "obstacle", ""),
			english.Plural(l.Lamps.Len(), "lamp", ""),
			english.Plural(l.Props.Len(), "prop", ""),
		)
		return true
	}

	fmt.Fprintf(w, "%s: %s\n", path, english.Plural(len(issues), "issue", ""))
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s\n", issue.Error())
	}
	return false
}

func runLevelConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	l, err := level.LoadFile(in)
	if err != nil {
		return err
	}
	if err := level.SaveFile(out, l); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", in, out)
	return nil
}

func runLevelList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	dir := expandHome(flagLevelsDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintf(w, "No levels directory at %s.\n", dir)
		fmt.Fprintln(w, "Run 'shadow level default' to get a starting point.")
		return nil
	}

	entries, err := level.NewLoader(dir).LoadAll()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No levels found.")
		return nil
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, e := range entries {
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	fmt.Fprintf(w, "  %-*s  %s\n", maxNameLen, "Name", "Path")
	fmt.Fprintf(w, "  %-*s  %s\n", maxNameLen, "----", "----")
	for _, e := range entries {
		fmt.Fprintf(w, "  %-*s  %s\n", maxNameLen, e.Name, e.Path)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'shadow play --level <name>' to play a level.")
	return nil
}
