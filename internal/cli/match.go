package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "match <pattern> <input>...",
		Short: "Test inputs against a pattern",
		Long: `Compile a pattern and report, for each input, whether the whole input is
in the pattern's language. Rejections name their reason.

Exits with status 1 if any input is rejected.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(rootOpts, cmd, args[0], args[1:], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")
	return cmd
}

func runMatch(opts *RootOptions, cmd *cobra.Command, pattern string, inputs []string, quiet bool) error {
	engine, err := compile(opts, pattern)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rejected := 0
	for _, in := range inputs {
		ok, err := engine.Accepts([]byte(in))
		var verdict string
		switch {
		case err != nil:
			verdict = "reject: " + err.Error()
		case ok:
			verdict = "accept"
		default:
			v, _ := engine.Walk([]byte(in))
			verdict = v.String()
			if engine.Prefilter() != nil && !engine.Prefilter().MayMatch([]byte(in)) {
				verdict = "reject: prefilter " + engine.Prefilter().Name()
			}
		}
		if !ok {
			rejected++
		}
		if !quiet {
			fmt.Fprintf(out, "%q\t%s\n", in, verdict)
		}
	}

	stats := engine.Stats()
	opts.Logger().Debugw("match finished",
		"inputs", len(inputs),
		"matches", stats.Matches,
		"rejects", stats.Rejects,
		"prefilter_rejects", stats.PrefilterRejects,
		"alphabet_misses", stats.AlphabetMisses,
		"dead_rejects", stats.DeadRejects,
		"not_accepting", stats.NotAccepting,
		"invalid_inputs", stats.InvalidInputs,
	)

	if rejected > 0 {
		return &ExitError{
			Code:    ExitFailure,
			Message: fmt.Sprintf("%d of %d inputs rejected", rejected, len(inputs)),
		}
	}
	return nil
}
