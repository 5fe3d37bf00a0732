package cmd

import (
	"fmt"
	"os"

	"github.com/kconner/goguash/pkg/guash"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expr>",
	Short: "Evaluate a single guash expression and print its value",
	Args:  cobra.ExactArgs(1),
	RunE:  evalExpression,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func evalExpression(_ *cobra.Command, args []string) error {
	src := args[0]
	e := guash.New(guash.WithEnv(envMap()), guash.WithVersion(Version))
	v, err := e.Expression(src)
	if err != nil {
		return reportError(err, src, "<eval>")
	}
	if v != nil {
		fmt.Fprintln(os.Stdout, v.String())
	}
	return nil
}
