package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/coremx/meta"
	"github.com/coregx/coremx/nfa"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	var showMatrices bool

	cmd := &cobra.Command{
		Use:   "explain <pattern>",
		Short: "Show every compilation stage of a pattern",
		Long: `Print the syntax tree, the automaton before and after epsilon removal,
the transition matrix of every symbol and the selected prefilters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, cmd, args[0], showMatrices)
		},
	}

	cmd.Flags().BoolVarP(&showMatrices, "matrices", "m", true, "print transition matrices")
	return cmd
}

func runExplain(opts *RootOptions, cmd *cobra.Command, pattern string, showMatrices bool) error {
	engine, err := compile(opts, pattern)
	if err != nil {
		return err
	}

	// the engine only keeps the collapsed automaton
	config := opts.Config()
	raw, err := nfa.NewCompiler(nfa.CompilerConfig{
		MaxDepth:          config.MaxDepth,
		MaxRecursionDepth: config.MaxRecursionDepth,
		MaxStates:         config.MaxStates,
	}).CompileNode(engine.Tree())
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "compile", Err: err}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "pattern: %s\n", pattern)
	fmt.Fprintf(w, "canonical: %s\n", engine.Tree().String())
	section(w, "tree", engine.Tree().Dump())
	section(w, "nfa", raw.Dump())
	section(w, "collapsed", engine.NFA().Dump())
	if showMatrices {
		writeMatrices(w, engine)
	}

	fmt.Fprintf(w, "strategy: %s\n", engine.Strategy())
	if pf := engine.Prefilter(); pf != nil {
		fmt.Fprintf(w, "prefilter: %s\n", pf.Name())
	}
	if words := engine.Words(); words != nil {
		fmt.Fprintf(w, "words: %d (length %d..%d)\n", words.Len(), words.MinLen(), words.MaxLen())
	}
	return nil
}

func section(w io.Writer, title, body string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func writeMatrices(w io.Writer, engine *meta.Engine) {
	table := engine.Table()
	for _, u := range table.Alphabet() {
		m, _ := table.Matrix(u)
		section(w, fmt.Sprintf("matrix %q", u.String()), m.String())
	}
}
