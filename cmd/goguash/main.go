// Command goguash is a demonstration CLI host for pkg/guash: a thin shell
// around Engine.Evaluate that never grows scripting behavior of its own
// (SPEC_FULL.md §6: the CLI is the "host" spec.md treats as an out-of-scope
// external collaborator).
package main

import (
	"fmt"
	"os"

	"github.com/kconner/goguash/cmd/goguash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
