package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/coremx/internal/conformance"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var casesPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a YAML conformance corpus",
		Long: `Compile every pattern of a YAML corpus and verify its expected
accepted inputs, rejected inputs or compile error.

Exits with status 1 if any expectation fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, casesPath)
		},
	}

	cmd.Flags().StringVarP(&casesPath, "cases", "c", "testdata/cases.yaml", "path to the corpus file")
	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command, path string) error {
	corpus, err := conformance.Load(path)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "load corpus", Err: err}
	}
	opts.Logger().Debugw("corpus loaded", "path", path, "cases", len(corpus.Cases))

	report := conformance.Run(corpus, opts.Config())

	out := cmd.OutOrStdout()
	for _, f := range report.Failures {
		fmt.Fprintf(out, "FAIL %s\n", f)
	}
	fmt.Fprintf(out, "%d cases, %d checks, %d failures\n", report.Cases, report.Checks, len(report.Failures))

	if !report.OK() {
		return &ExitError{
			Code:    ExitFailure,
			Message: fmt.Sprintf("%d conformance failures", len(report.Failures)),
		}
	}
	return nil
}
