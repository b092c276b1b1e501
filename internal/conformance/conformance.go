// Package conformance runs YAML corpora of patterns and expected verdicts.
//
// A corpus file looks like:
//
//	cases:
//	  - name: scoped alternation
//	    pattern: "ab|cd"
//	    accept: ["abd", "acd"]
//	    reject: ["ab", "cd"]
//	  - pattern: "(ab"
//	    error: unbalanced_group
//
// A case either names the error compilation must fail with, or lists inputs
// the compiled pattern must accept and reject.
package conformance

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/meta"
	"github.com/coregx/coremx/nfa"
	"github.com/coregx/coremx/syntax"
)

// errorNames maps the error keys accepted in a corpus to sentinels.
var errorNames = map[string]error{
	"invalid_encoding":        codeunit.ErrInvalidEncoding,
	"truncated_encoding":      codeunit.ErrTruncatedEncoding,
	"unexpected_end_of_input": syntax.ErrUnexpectedEndOfInput,
	"unbalanced_group":        syntax.ErrUnbalancedGroup,
	"missing_operand":         syntax.ErrMissingOperand,
	"empty_expression":        syntax.ErrEmptyExpression,
	"nesting_depth":           syntax.ErrNestingDepth,
	"too_complex":             nfa.ErrTooComplex,
}

// ErrorNames returns the error keys a corpus may use, sorted.
func ErrorNames() []string {
	names := make([]string, 0, len(errorNames))
	for name := range errorNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Case is one pattern and its expectations.
type Case struct {
	Name    string   `yaml:"name,omitempty"`
	Pattern string   `yaml:"pattern"`
	Accept  []string `yaml:"accept,omitempty"`
	Reject  []string `yaml:"reject,omitempty"`
	Error   string   `yaml:"error,omitempty"`
}

// Title returns the case name, or the pattern if the case has none.
func (c Case) Title() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Pattern
}

// Corpus is a list of cases.
type Corpus struct {
	Cases []Case `yaml:"cases"`
}

// Parse decodes a corpus and checks that every error key is known.
func Parse(r io.Reader) (*Corpus, error) {
	var c Corpus
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("conformance: decode corpus: %w", err)
	}
	for i, tc := range c.Cases {
		if tc.Error == "" {
			continue
		}
		if _, ok := errorNames[tc.Error]; !ok {
			return nil, fmt.Errorf("conformance: case %d (%s): unknown error %q", i, tc.Title(), tc.Error)
		}
		if len(tc.Accept) > 0 || len(tc.Reject) > 0 {
			return nil, fmt.Errorf("conformance: case %d (%s): error cases take no inputs", i, tc.Title())
		}
	}
	return &c, nil
}

// Load reads and parses a corpus file.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("conformance: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Failure describes one expectation that did not hold.
type Failure struct {
	Case    string
	Pattern string
	Input   string // empty for compile failures
	Want    string
	Got     string
}

func (f Failure) String() string {
	if f.Input == "" && f.Want != "accept" && f.Want != "reject" {
		return fmt.Sprintf("%s: Compile(%q): want %s, got %s", f.Case, f.Pattern, f.Want, f.Got)
	}
	return fmt.Sprintf("%s: %q on %q: want %s, got %s", f.Case, f.Pattern, f.Input, f.Want, f.Got)
}

// Report summarizes a corpus run.
type Report struct {
	Cases    int
	Checks   int
	Failures []Failure
}

// OK reports whether every expectation held.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Run compiles every case with config and checks its expectations.
func Run(c *Corpus, config meta.Config) *Report {
	r := &Report{Cases: len(c.Cases)}
	for _, tc := range c.Cases {
		r.run(tc, config)
	}
	return r
}

func (r *Report) run(tc Case, config meta.Config) {
	engine, err := meta.CompileWithConfig(tc.Pattern, config)

	if tc.Error != "" {
		r.Checks++
		want := errorNames[tc.Error]
		if !errors.Is(err, want) {
			r.fail(tc, "", tc.Error, describe(err))
		}
		return
	}

	if err != nil {
		r.Checks++
		r.fail(tc, "", "success", describe(err))
		return
	}

	for _, in := range tc.Accept {
		r.Checks++
		if !engine.IsMatch([]byte(in)) {
			r.fail(tc, in, "accept", "reject")
		}
	}
	for _, in := range tc.Reject {
		r.Checks++
		if engine.IsMatch([]byte(in)) {
			r.fail(tc, in, "reject", "accept")
		}
	}
}

func (r *Report) fail(tc Case, input, want, got string) {
	r.Failures = append(r.Failures, Failure{
		Case:    tc.Title(),
		Pattern: tc.Pattern,
		Input:   input,
		Want:    want,
		Got:     got,
	})
}

// describe names err by its sentinel key when it has one.
func describe(err error) string {
	if err == nil {
		return "success"
	}
	for _, name := range ErrorNames() {
		if errors.Is(err, errorNames[name]) {
			return name
		}
	}
	return err.Error()
}
