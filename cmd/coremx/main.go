// Command coremx compiles patterns and tests inputs against them.
//
// Usage:
//
//	coremx match 'ab|cd' abd acd ab
//	coremx explain '(ab)|(cd)'
//	coremx check --cases testdata/cases.yaml
package main

import (
	"fmt"
	"os"

	"github.com/coregx/coremx/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "coremx:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
