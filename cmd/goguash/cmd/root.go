package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is overridden at build time via -ldflags (grounded on the
	// teacher's cmd/dwscript/cmd/root.go Version/GitCommit/BuildDate vars).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "goguash",
	Short: "guash interpreter",
	Long: `goguash runs guash programs: a small dynamically-typed scripting
language with array and matrix container types, built atop pkg/guash.

Examples:
  goguash run script.guash
  goguash eval "1 + 2 * 3"
  goguash repl`,
	Version:           Version,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command; called from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("goguash version {{.Version}}\ncommit: %s\nbuilt:  %s\n", GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
}

// log is the shared CLI diagnostic logger (stdlib log/slog, per
// SPEC_FULL.md §5 — the core interpreter itself never logs).
var log = slog.New(slog.NewTextHandler(os.Stderr, nil))

func setupLogging(_ *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
