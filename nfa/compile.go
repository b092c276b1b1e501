package nfa

import (
	"fmt"

	"github.com/coregx/coremx/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxDepth limits group nesting when the compiler parses a pattern.
	// Default: 100
	MaxDepth int

	// MaxRecursionDepth limits recursion during compilation to prevent stack
	// overflow. An alternation chain of n operands nests n-1 levels deep.
	// Default: 10000
	MaxRecursionDepth int

	// MaxStates limits the number of NFA states.
	// Default: 16384
	MaxStates int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxDepth:          100,
		MaxRecursionDepth: 10_000,
		MaxStates:         1 << 14,
	}
}

// Compiler compiles syntax trees into Thompson NFAs
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	defaults := DefaultCompilerConfig()
	if config.MaxDepth == 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = defaults.MaxRecursionDepth
	}
	if config.MaxStates == 0 {
		config.MaxStates = defaults.MaxStates
	}
	return &Compiler{
		config:  config,
		builder: NewBuilder(),
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into an NFA with epsilon edges.
// The result is not collapsed.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	root, err := syntax.ParseWithConfig([]byte(pattern), syntax.Config{
		MaxDepth: c.config.MaxDepth,
	})
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	return c.CompileNode(root)
}

// CompileNode compiles a parsed syntax tree into an NFA.
//
// Thompson construction:
//   - Literal c:        start -c-> end
//   - Sequence n0..nk:  fragments chained with epsilon edges e(i-1) -> s(i)
//   - Alternation l|r:  new start -ε-> ls, rs; le, re -ε-> new end
//
// The start of the root fragment is the NFA start and its end is the only
// accepting state.
func (c *Compiler) CompileNode(root *syntax.Node) (*NFA, error) {
	c.builder = NewBuilderWithCapacity(2 * root.Count())
	c.depth = 0

	start, end, err := c.compileNode(root)
	if err != nil {
		return nil, err
	}

	c.builder.SetStart(start)
	c.builder.AddAccepting(end)

	nfa, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{
			Err: err,
		}
	}

	return nfa, nil
}

// compileNode recursively compiles a syntax tree node.
// Returns (start, end) state IDs for the compiled fragment.
func (c *Compiler) compileNode(n *syntax.Node) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{
			Err: ErrTooComplex,
		}
	}
	defer func() { c.depth-- }()

	switch n.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(n)
	case syntax.OpSequence:
		return c.compileSequence(n.Sub)
	case syntax.OpAlternation:
		return c.compileAlternation(n.Left(), n.Right())
	default:
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("unsupported syntax op: %v", n.Op),
		}
	}
}

// newState allocates a state, enforcing MaxStates
func (c *Compiler) newState() (StateID, error) {
	if c.builder.States() >= c.config.MaxStates {
		return InvalidState, &CompileError{
			Err: fmt.Errorf("%w: more than %d states", ErrTooComplex, c.config.MaxStates),
		}
	}
	return c.builder.AddState(), nil
}

func (c *Compiler) compileLiteral(n *syntax.Node) (start, end StateID, err error) {
	if start, err = c.newState(); err != nil {
		return InvalidState, InvalidState, err
	}
	if end, err = c.newState(); err != nil {
		return InvalidState, InvalidState, err
	}
	if err = c.builder.AddRegular(start, end, n.Unit); err != nil {
		return InvalidState, InvalidState, err
	}
	return start, end, nil
}

func (c *Compiler) compileSequence(items []*syntax.Node) (start, end StateID, err error) {
	if len(items) == 0 {
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("empty sequence"),
		}
	}

	start, end, err = c.compileNode(items[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}

	for _, item := range items[1:] {
		s, e, err := c.compileNode(item)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.AddEpsilon(end, s); err != nil {
			return InvalidState, InvalidState, err
		}
		end = e
	}

	return start, end, nil
}

func (c *Compiler) compileAlternation(left, right *syntax.Node) (start, end StateID, err error) {
	if start, err = c.newState(); err != nil {
		return InvalidState, InvalidState, err
	}

	ls, le, err := c.compileNode(left)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	rs, re, err := c.compileNode(right)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	if end, err = c.newState(); err != nil {
		return InvalidState, InvalidState, err
	}

	for _, edge := range [...][2]StateID{{start, ls}, {start, rs}, {le, end}, {re, end}} {
		if err := c.builder.AddEpsilon(edge[0], edge[1]); err != nil {
			return InvalidState, InvalidState, err
		}
	}

	return start, end, nil
}
