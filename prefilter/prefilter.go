// Package prefilter rejects inputs that cannot match before the automaton runs.
//
// Every coremx pattern denotes a finite language. When literal.Extractor can
// enumerate it, cheap necessary conditions follow from the word set:
//   - the input's byte length lies in [MinLen, MaxLen]
//   - the input starts with the words' common prefix and ends with their
//     common suffix
//   - the input contains at least one word (Aho-Corasick)
//
// A prefilter only ever rejects. MayMatch returning true says nothing; the
// matrix walk still decides acceptance.
//
// Example usage:
//
//	seq, ok := literal.New(literal.DefaultConfig()).Extract(root)
//	if ok {
//	    pf := prefilter.NewBuilder(seq, prefilter.DefaultConfig()).Build()
//	    if pf != nil && !pf.MayMatch(input) {
//	        return false
//	    }
//	}
package prefilter

import (
	"bytes"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/coremx/literal"
)

// Prefilter is a necessary condition for acceptance.
type Prefilter interface {
	// MayMatch returns false only if input is certainly not accepted.
	MayMatch(input []byte) bool

	// Name identifies the prefilter in statistics and debug output.
	Name() string
}

// Config selects which prefilters the Builder may use.
type Config struct {
	// MinAhoCorasickLiterals is the minimum word count for which an
	// Aho-Corasick containment check is built. Fewer words are served by
	// the length and affix checks alone.
	// Default: 2
	MinAhoCorasickLiterals int

	// MaxAhoCorasickLiterals caps the automaton size.
	// Default: 256
	MaxAhoCorasickLiterals int
}

// DefaultConfig returns the default prefilter configuration.
func DefaultConfig() Config {
	return Config{
		MinAhoCorasickLiterals: 2,
		MaxAhoCorasickLiterals: 256,
	}
}

// Builder chooses prefilters for a word set.
type Builder struct {
	words  *literal.Seq
	config Config
}

// NewBuilder creates a builder for the enumerated language words.
func NewBuilder(words *literal.Seq, config Config) *Builder {
	return &Builder{words: words, config: config}
}

// Build returns the combined prefilter, or nil if words is empty.
func (b *Builder) Build() Prefilter {
	if b.words.IsEmpty() {
		return nil
	}

	filters := chain{
		newLengthPrefilter(b.words.MinLen(), b.words.MaxLen()),
	}

	prefix := b.words.LongestCommonPrefix()
	suffix := b.words.LongestCommonSuffix()
	if len(prefix) > 0 || len(suffix) > 0 {
		filters = append(filters, newAffixPrefilter(prefix, suffix))
	}

	n := b.words.Len()
	if n >= b.config.MinAhoCorasickLiterals && n <= b.config.MaxAhoCorasickLiterals {
		if ac := newAhoCorasickPrefilter(b.words); ac != nil {
			filters = append(filters, ac)
		}
	}

	if len(filters) == 1 {
		return filters[0]
	}
	return filters
}

// lengthPrefilter rejects inputs whose byte length no word has.
type lengthPrefilter struct {
	min, max int
}

func newLengthPrefilter(lo, hi int) *lengthPrefilter {
	return &lengthPrefilter{min: lo, max: hi}
}

func (p *lengthPrefilter) MayMatch(input []byte) bool {
	return len(input) >= p.min && len(input) <= p.max
}

func (p *lengthPrefilter) Name() string {
	return "length"
}

// affixPrefilter rejects inputs missing the words' common prefix or suffix.
type affixPrefilter struct {
	prefix, suffix []byte
}

func newAffixPrefilter(prefix, suffix []byte) *affixPrefilter {
	return &affixPrefilter{
		prefix: bytes.Clone(prefix),
		suffix: bytes.Clone(suffix),
	}
}

func (p *affixPrefilter) MayMatch(input []byte) bool {
	return bytes.HasPrefix(input, p.prefix) && bytes.HasSuffix(input, p.suffix)
}

func (p *affixPrefilter) Name() string {
	return "affix"
}

// ahoCorasickPrefilter rejects inputs that contain no word at all.
// An accepted input is itself a word, so it always contains one.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

// newAhoCorasickPrefilter returns nil if the automaton cannot be built.
func newAhoCorasickPrefilter(words *literal.Seq) *ahoCorasickPrefilter {
	// containment only needs the minimal words
	minimal := words.Clone()
	minimal.Minimize()

	builder := ahocorasick.NewBuilder()
	for i := 0; i < minimal.Len(); i++ {
		builder.AddPattern(minimal.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto}
}

func (p *ahoCorasickPrefilter) MayMatch(input []byte) bool {
	return p.auto.IsMatch(input)
}

func (p *ahoCorasickPrefilter) Name() string {
	return "aho-corasick"
}

// chain requires every prefilter to pass, cheapest first.
type chain []Prefilter

func (c chain) MayMatch(input []byte) bool {
	for _, p := range c {
		if !p.MayMatch(input) {
			return false
		}
	}
	return true
}

func (c chain) Name() string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}
