package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kconner/goguash/pkg/guash"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive guash read-eval-print loop",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl reads one line at a time and evaluates each against a single
// persistent Engine, so variables and function definitions from earlier
// lines remain bound (spec.md §4.2's scope chain survives across inputs
// exactly as it would across statements in one file).
func runRepl(_ *cobra.Command, _ []string) error {
	e := guash.New(guash.WithEnv(envMap()), guash.WithVersion(Version))
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Fprintf(os.Stdout, "goguash %s — Ctrl-D to exit\n", Version)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := e.Evaluate(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if v != nil {
			fmt.Fprintln(os.Stdout, v.String())
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
