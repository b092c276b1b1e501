// Package cli implements the coremx command line driver.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coregx/coremx/meta"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // all inputs accepted, all checks passed
	ExitFailure      = 1 // an input was rejected or a check failed
	ExitCommandError = 2 // bad pattern, bad flags, unreadable corpus
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Errors that are not an *ExitError come from cobra itself (unknown flags,
// wrong argument counts) and map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	MaxDepth    int
	MaxStates   int
	MaxMatrix   int64
	MaxLiterals int
	NoPrefilter bool

	logger *zap.SugaredLogger
}

// Config maps the flags onto a compile configuration.
func (o *RootOptions) Config() meta.Config {
	c := meta.DefaultConfig()
	c.MaxDepth = o.MaxDepth
	c.MaxStates = o.MaxStates
	c.MaxMatrixBytes = o.MaxMatrix
	c.MaxLiterals = o.MaxLiterals
	c.EnablePrefilter = !o.NoPrefilter
	return c
}

// Logger returns the logger set up by the root command.
func (o *RootOptions) Logger() *zap.SugaredLogger {
	if o.logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.logger
}

// NewRootCommand creates the root command for the coremx CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaults := meta.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "coremx",
		Short: "coremx - whole-input pattern recognizer",
		Long: `Compile patterns of literals, grouping and alternation and test inputs against them.

Alternation binds one atom on each side: "ab|cd" matches "abd" and "acd".
Use "(ab)|(cd)" to alternate between whole words.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(opts.Verbose, cmd.ErrOrStderr())
			if err := opts.Config().Validate(); err != nil {
				return &ExitError{Code: ExitCommandError, Message: "invalid flags", Err: err}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.Logger().Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log compile phases and statistics to stderr")
	cmd.PersistentFlags().IntVar(&opts.MaxDepth, "max-depth", defaults.MaxDepth, "maximum group nesting")
	cmd.PersistentFlags().IntVar(&opts.MaxStates, "max-states", defaults.MaxStates, "maximum automaton states")
	cmd.PersistentFlags().Int64Var(&opts.MaxMatrix, "max-matrix-bytes", defaults.MaxMatrixBytes, "maximum memory for transition matrices")
	cmd.PersistentFlags().IntVar(&opts.MaxLiterals, "max-literals", defaults.MaxLiterals, "maximum words enumerated for prefilters")
	cmd.PersistentFlags().BoolVar(&opts.NoPrefilter, "no-prefilter", false, "always walk the transition matrices")

	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// newLogger returns a development console logger writing to w, or a no-op
// logger unless verbose.
func newLogger(verbose bool, w io.Writer) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core).Sugar()
}

// compile compiles pattern with the flag configuration and logs the result.
func compile(opts *RootOptions, pattern string) (*meta.Engine, error) {
	log := opts.Logger()
	engine, err := meta.CompileWithConfig(pattern, opts.Config())
	if err != nil {
		log.Debugw("compile failed", "pattern", pattern, "error", err)
		return nil, &ExitError{Code: ExitCommandError, Message: "compile", Err: err}
	}

	fields := []any{
		"pattern", pattern,
		"tree", engine.Tree().String(),
		"states", engine.NumStates(),
		"edges", engine.NFA().EdgeCount(),
		"alphabet", len(engine.Alphabet()),
		"strategy", engine.Strategy().String(),
	}
	if pf := engine.Prefilter(); pf != nil {
		fields = append(fields, "prefilter", pf.Name(), "words", engine.Words().Len())
	}
	log.Debugw("compiled", fields...)
	return engine, nil
}
