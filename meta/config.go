package meta

// Config controls compilation limits and prefilter selection.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // always walk the matrices
//	engine, err := meta.CompileWithConfig("ab|cd", config)
type Config struct {
	// MaxDepth limits group nesting in the pattern.
	// Default: 100
	MaxDepth int

	// MaxRecursionDepth limits recursion while compiling the syntax tree.
	// An alternation chain of n operands nests n-1 levels deep, so this is
	// larger than MaxDepth.
	// Default: 10000
	MaxRecursionDepth int

	// MaxStates caps the automaton size. Larger patterns fail with
	// nfa.ErrTooComplex.
	// Default: 16384
	MaxStates int

	// MaxMatrixBytes caps the memory of the transition matrices, which
	// need states² bits per distinct symbol. Larger patterns fail with
	// nfa.ErrTooComplex before any matrix is allocated.
	// Default: 64 MiB
	MaxMatrixBytes int64

	// EnablePrefilter enables rejection prefilters built from the
	// pattern's enumerated language.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits language enumeration for prefilters. Patterns with
	// more words run without a prefilter.
	// Default: 256
	MaxLiterals int

	// MinAhoCorasickLiterals is the smallest word count for which an
	// Aho-Corasick containment prefilter is built.
	// Default: 2
	MinAhoCorasickLiterals int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:               100,
		MaxRecursionDepth:      10_000,
		MaxStates:              1 << 14,
		MaxMatrixBytes:         64 << 20,
		EnablePrefilter:        true,
		MaxLiterals:            256,
		MinAhoCorasickLiterals: 2,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxDepth: 1 to 1,000
//   - MaxRecursionDepth: 10 to 100,000
//   - MaxStates: 2 to 1,048,576
//   - MaxMatrixBytes: 1 KiB to 16 GiB
//   - MaxLiterals: 1 to 10,000 (only checked with EnablePrefilter)
//   - MinAhoCorasickLiterals: 1 to MaxLiterals (only checked with EnablePrefilter)
func (c Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxDepth",
			Message: "must be between 1 and 1,000",
		}
	}

	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 100,000",
		}
	}

	if c.MaxStates < 2 || c.MaxStates > 1<<20 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 2 and 1,048,576",
		}
	}

	if c.MaxMatrixBytes < 1<<10 || c.MaxMatrixBytes > 16<<30 {
		return &ConfigError{
			Field:   "MaxMatrixBytes",
			Message: "must be between 1 KiB and 16 GiB",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 10_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 10,000",
			}
		}
		if c.MinAhoCorasickLiterals < 1 || c.MinAhoCorasickLiterals > c.MaxLiterals {
			return &ConfigError{
				Field:   "MinAhoCorasickLiterals",
				Message: "must be between 1 and MaxLiterals",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "coremx: invalid config: " + e.Field + ": " + e.Message
}
