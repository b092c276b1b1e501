// Package meta implements the compile pipeline and the matching engine.
//
// Compilation runs every stage in order and aborts on the first error:
//   - codeunit.Segment splits the pattern into code units
//   - syntax.ParseUnits builds the syntax tree
//   - nfa.Compiler applies Thompson construction
//   - (*nfa.NFA).Collapse removes epsilon edges
//   - matrix.New builds one transition matrix per symbol
//   - literal.Extractor and prefilter.Builder derive rejection prefilters
//
// An Engine is immutable after Compile except for its statistics counters,
// which are atomic. It is safe for concurrent use.
package meta

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/literal"
	"github.com/coregx/coremx/matrix"
	"github.com/coregx/coremx/nfa"
	"github.com/coregx/coremx/prefilter"
	"github.com/coregx/coremx/syntax"
)

// Engine is a compiled pattern.
type Engine struct {
	pattern   string
	config    Config
	tree      *syntax.Node
	nfa       *nfa.NFA
	table     *matrix.Table
	words     *literal.Seq
	prefilter prefilter.Prefilter
	strategy  Strategy
	stats     counters
}

// Stats tracks how inputs were decided.
//
// Every call to IsMatch or Accepts increments exactly one of Matches and
// Rejects. A rejection additionally increments the counter for its reason.
type Stats struct {
	// Matches counts accepted inputs
	Matches uint64

	// Rejects counts rejected inputs, whatever the reason
	Rejects uint64

	// InvalidInputs counts inputs that failed code-unit segmentation
	InvalidInputs uint64

	// PrefilterRejects counts inputs rejected before the matrix walk
	PrefilterRejects uint64

	// AlphabetMisses counts walks stopped by a unit with no matrix
	AlphabetMisses uint64

	// DeadRejects counts walks in which no state survived
	DeadRejects uint64

	// NotAccepting counts walks that ended outside the accepting set
	NotAccepting uint64
}

// counters are updated from concurrent matches, one cache line each.
type counters struct {
	matches          atomic.Uint64
	_                cpu.CacheLinePad
	rejects          atomic.Uint64
	_                cpu.CacheLinePad
	invalidInputs    atomic.Uint64
	_                cpu.CacheLinePad
	prefilterRejects atomic.Uint64
	_                cpu.CacheLinePad
	alphabetMisses   atomic.Uint64
	_                cpu.CacheLinePad
	deadRejects      atomic.Uint64
	_                cpu.CacheLinePad
	notAccepting     atomic.Uint64
}

// Compile compiles a pattern with the default configuration.
//
// Example:
//
//	engine, err := meta.Compile("(ab)|(cd)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.IsMatch([]byte("cd")) // true
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	return CompileBytes([]byte(pattern), config)
}

// CompileBytes compiles a pattern given as raw bytes.
//
// Returns an error if:
//   - Configuration is invalid (*ConfigError)
//   - The pattern is not well-formed UTF-8 (*codeunit.Error)
//   - The pattern is not in the grammar (*syntax.Error)
//   - The automaton exceeds MaxStates, MaxRecursionDepth or MaxMatrixBytes
//     (nfa.ErrTooComplex)
//
// Errors other than *ConfigError are wrapped in *CompileError.
func CompileBytes(pattern []byte, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	units, err := codeunit.Segment(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: string(pattern), Err: err}
	}

	tree, err := syntax.ParseUnits(units, syntax.Config{MaxDepth: config.MaxDepth})
	if err != nil {
		return nil, &CompileError{Pattern: string(pattern), Err: err}
	}

	return CompileTree(string(pattern), tree, config)
}

// CompileTree builds an Engine from an already parsed syntax tree.
// The pattern is kept for String and error messages only.
func CompileTree(pattern string, tree *syntax.Node, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		MaxDepth:          config.MaxDepth,
		MaxRecursionDepth: config.MaxRecursionDepth,
		MaxStates:         config.MaxStates,
	})
	automaton, err := compiler.CompileNode(tree)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	// Collapse keeps the state count and the alphabet.
	need := matrix.Footprint(automaton.States(), len(automaton.Alphabet()))
	if need > config.MaxMatrixBytes {
		return nil, &CompileError{
			Pattern: pattern,
			Err: fmt.Errorf("%w: transition matrices need %d bytes, limit is %d",
				nfa.ErrTooComplex, need, config.MaxMatrixBytes),
		}
	}
	automaton.Collapse()

	table, err := matrix.New(automaton)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	e := &Engine{
		pattern:  pattern,
		config:   config,
		tree:     tree,
		nfa:      automaton,
		table:    table,
		strategy: UseMatrix,
	}
	if config.EnablePrefilter {
		e.buildPrefilter()
	}
	return e, nil
}

// buildPrefilter enumerates the language and selects prefilters for it.
// A language over MaxLiterals words leaves the engine on UseMatrix.
func (e *Engine) buildPrefilter() {
	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals: e.config.MaxLiterals,
	})
	words, ok := extractor.Extract(e.tree)
	if !ok {
		return
	}
	e.words = words

	pf := prefilter.NewBuilder(words, prefilter.Config{
		MinAhoCorasickLiterals: e.config.MinAhoCorasickLiterals,
		MaxAhoCorasickLiterals: e.config.MaxLiterals,
	}).Build()
	if pf == nil {
		return
	}
	e.prefilter = pf
	e.strategy = UsePrefilterMatrix
}

// IsMatch reports whether input is in the pattern's language.
// Malformed input is rejected.
func (e *Engine) IsMatch(input []byte) bool {
	ok, _ := e.Accepts(input)
	return ok
}

// Accepts reports whether input is in the pattern's language.
// Malformed input returns the segmenter's *codeunit.Error.
func (e *Engine) Accepts(input []byte) (bool, error) {
	units, err := codeunit.Segment(input)
	if err != nil {
		e.stats.invalidInputs.Add(1)
		e.stats.rejects.Add(1)
		return false, err
	}

	if e.strategy == UsePrefilterMatrix && !e.prefilter.MayMatch(input) {
		e.stats.prefilterRejects.Add(1)
		e.stats.rejects.Add(1)
		return false, nil
	}

	v := e.table.Walk(units)
	switch v {
	case matrix.Accept:
		e.stats.matches.Add(1)
		return true, nil
	case matrix.RejectAlphabetMiss:
		e.stats.alphabetMisses.Add(1)
	case matrix.RejectDead:
		e.stats.deadRejects.Add(1)
	case matrix.RejectNotAccepting:
		e.stats.notAccepting.Add(1)
	}
	e.stats.rejects.Add(1)
	return false, nil
}

// Walk segments input and returns the matrix walk verdict without
// consulting the prefilter or updating statistics.
// Malformed input returns matrix.RejectInvalidInput with the segmenter's
// *codeunit.Error.
func (e *Engine) Walk(input []byte) (matrix.Verdict, error) {
	units, err := codeunit.Segment(input)
	if err != nil {
		return matrix.RejectInvalidInput, err
	}
	return e.table.Walk(units), nil
}

// String returns the source pattern
func (e *Engine) String() string {
	return e.pattern
}

// Config returns the configuration the engine was compiled with
func (e *Engine) Config() Config {
	return e.config
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Tree returns the parsed syntax tree. It must not be modified.
func (e *Engine) Tree() *syntax.Node {
	return e.tree
}

// NFA returns the collapsed automaton. It must not be modified.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Table returns the transition matrices
func (e *Engine) Table() *matrix.Table {
	return e.table
}

// Prefilter returns the prefilter in use, or nil
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Words returns the enumerated language, or nil if it was not enumerated.
func (e *Engine) Words() *literal.Seq {
	return e.words
}

// NumStates returns the number of automaton states
func (e *Engine) NumStates() int {
	return e.table.States()
}

// Alphabet returns every code unit that labels an edge, ordered by bytes.
func (e *Engine) Alphabet() []codeunit.Unit {
	return e.table.Alphabet()
}

// Stats returns a snapshot of execution statistics.
// Counters are read one at a time, so a snapshot taken during concurrent
// matching may be slightly inconsistent.
func (e *Engine) Stats() Stats {
	return Stats{
		Matches:          e.stats.matches.Load(),
		Rejects:          e.stats.rejects.Load(),
		InvalidInputs:    e.stats.invalidInputs.Load(),
		PrefilterRejects: e.stats.prefilterRejects.Load(),
		AlphabetMisses:   e.stats.alphabetMisses.Load(),
		DeadRejects:      e.stats.deadRejects.Load(),
		NotAccepting:     e.stats.notAccepting.Load(),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	e.stats.matches.Store(0)
	e.stats.rejects.Store(0)
	e.stats.invalidInputs.Store(0)
	e.stats.prefilterRejects.Store(0)
	e.stats.alphabetMisses.Store(0)
	e.stats.deadRejects.Store(0)
	e.stats.notAccepting.Store(0)
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// Syntax errors already quote the pattern and are returned as is.
func (e *CompileError) Error() string {
	var serr *syntax.Error
	if errors.As(e.Err, &serr) {
		return e.Err.Error()
	}
	return "coremx: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
