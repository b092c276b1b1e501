// Package coremx recognizes strings of a small regular-expression dialect.
//
// The dialect has literals, concatenation, grouping and alternation. There
// are no quantifiers, character classes, anchors or captures, and every
// pattern denotes a finite set of strings. Matching is whole-input
// recognition: Match reports whether the entire input is in the pattern's
// language, not whether it contains a match.
//
// # Alternation binds tightly
//
// The '|' operator takes exactly one atom on each side. An atom is a single
// code unit, an escaped character or a parenthesized group:
//
//	ab|cd     is  a(b|c)d   and matches "abd" and "acd" only
//	(ab)|(cd) matches "ab" and "cd"
//	a|b|c     is  a|(b|c)
//
// Use parentheses to alternate between longer strings.
//
// # Escapes
//
// A backslash makes the next code unit literal. It never matches itself
// unless escaped: `a\b` matches "ab" and `a\\b` matches `a\b`. QuoteMeta
// escapes every metacharacter of a string.
//
// # Code units
//
// Patterns and inputs are split into UTF-8 code units (one to four bytes)
// and compared by raw bytes. No normalization happens: a precomposed "é"
// does not match "e" followed by a combining accent. Malformed UTF-8 is an
// error in a pattern and a rejection in an input.
//
// Basic usage:
//
//	re, err := coremx.Compile("h(é|e)llo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("héllo") // true
//	re.MatchString("hallo") // false
//
// Pipeline: bytes are segmented into code units, parsed into a syntax tree,
// compiled into a Thompson NFA, collapsed into an epsilon-free NFA, and
// finally turned into one boolean transition matrix per symbol. Matching
// walks the matrices with a bitset of live states.
package coremx

import (
	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/meta"
	"github.com/coregx/coremx/nfa"
	"github.com/coregx/coremx/syntax"
)

// Errors returned by Compile and Accepts. Use errors.Is to test for them.
var (
	// ErrInvalidEncoding indicates a byte that cannot start or continue a code unit
	ErrInvalidEncoding = codeunit.ErrInvalidEncoding

	// ErrTruncatedEncoding indicates a multi-byte code unit cut off at the end
	ErrTruncatedEncoding = codeunit.ErrTruncatedEncoding

	// ErrUnexpectedEndOfInput indicates the pattern ended where an atom was required
	ErrUnexpectedEndOfInput = syntax.ErrUnexpectedEndOfInput

	// ErrUnbalancedGroup indicates an unclosed '(' or a stray ')'
	ErrUnbalancedGroup = syntax.ErrUnbalancedGroup

	// ErrMissingOperand indicates '|' or ')' where an atom was required
	ErrMissingOperand = syntax.ErrMissingOperand

	// ErrEmptyExpression indicates an empty pattern or an empty group
	ErrEmptyExpression = syntax.ErrEmptyExpression

	// ErrNestingDepth indicates groups nested deeper than Config.MaxDepth
	ErrNestingDepth = syntax.ErrNestingDepth

	// ErrTooComplex indicates the automaton exceeds Config.MaxStates,
	// Config.MaxRecursionDepth or Config.MaxMatrixBytes
	ErrTooComplex = nfa.ErrTooComplex
)

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := coremx.MustCompile("(ab)|(cd)")
//	if re.Match([]byte("cd")) {
//	    println("matched!")
//	}
type Regex struct {
	engine *meta.Engine
}

// Regexp is an alias for Regex.
type Regexp = Regex

// Compile compiles a pattern with the default configuration.
//
// Returns an error if the pattern is not well-formed UTF-8, is not in the
// grammar, or exceeds the configured limits.
//
// Example:
//
//	re, err := coremx.Compile("a(b|c)d")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// CompileBytes compiles a pattern given as raw bytes.
func CompileBytes(pattern []byte) (*Regex, error) {
	engine, err := meta.CompileBytes(pattern, meta.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var greeting = coremx.MustCompile("h(e|a)llo")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("coremx: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := coremx.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := coremx.CompileWithConfig("ab|cd", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all metacharacters inside the
// argument text; the returned string is a pattern matching the literal text.
//
// Example:
//
//	escaped := coremx.QuoteMeta("f(x)|y")
//	// escaped = `f\(x\)\|y`
//	re := coremx.MustCompile(escaped)
//	re.MatchString("f(x)|y") // true
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if syntax.IsMetaByte(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if syntax.IsMetaByte(s[i]) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// Match reports whether the entire byte slice b is in the pattern's
// language. Malformed UTF-8 is rejected.
//
// Example:
//
//	re := coremx.MustCompile("ab|cd")
//	re.Match([]byte("acd")) // true
//	re.Match([]byte("cd"))  // false
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the entire string s is in the pattern's
// language.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Accepts is like Match but returns the segmentation error for malformed
// input instead of rejecting it silently.
func (r *Regex) Accepts(b []byte) (bool, error) {
	return r.engine.Accepts(b)
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.engine.String()
}

// NumStates returns the number of automaton states, which is also the side
// length of every transition matrix.
func (r *Regex) NumStates() int {
	return r.engine.NumStates()
}

// Alphabet returns the distinct code units that occur in the pattern,
// ordered by their bytes.
func (r *Regex) Alphabet() []string {
	units := r.engine.Alphabet()
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.String()
	}
	return out
}

// Stats returns execution statistics.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats resets execution statistics to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// Engine returns the underlying engine for inspection.
func (r *Regex) Engine() *meta.Engine {
	return r.engine
}
