package literal

import (
	"github.com/coregx/coremx/syntax"
)

// ExtractorConfig configures language enumeration.
type ExtractorConfig struct {
	// MaxLiterals limits the number of words enumerated. Sequences multiply
	// the counts of their items, so a few small alternations in a row can
	// exceed it quickly.
	// Default: 256
	MaxLiterals int

	// MaxLiteralLen limits the byte length of each word.
	// Default: 4096
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   256,
		MaxLiteralLen: 4096,
	}
}

// Extractor enumerates the language of a syntax tree.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	defaults := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = defaults.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = defaults.MaxLiteralLen
	}
	return &Extractor{config: config}
}

// Extract returns every string matched by root, deduplicated, in
// left-to-right order. Returns false if the language exceeds the configured
// limits.
//
//	"abc"        → ["abc"]
//	"ab|cd"      → ["abd", "acd"]
//	"(ab)|(cd)"  → ["ab", "cd"]
func (e *Extractor) Extract(root *syntax.Node) (*Seq, bool) {
	words, ok := e.extract(root)
	if !ok {
		return nil, false
	}
	lits := make([]Literal, len(words))
	for i, w := range words {
		lits[i] = NewLiteral(w)
	}
	seq := NewSeq(lits...)
	seq.Dedup()
	return seq, true
}

func (e *Extractor) extract(n *syntax.Node) ([][]byte, bool) {
	switch n.Op {
	case syntax.OpLiteral:
		return [][]byte{n.Unit.Bytes()}, true

	case syntax.OpAlternation:
		left, ok := e.extract(n.Left())
		if !ok {
			return nil, false
		}
		right, ok := e.extract(n.Right())
		if !ok {
			return nil, false
		}
		if len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true

	case syntax.OpSequence:
		acc := [][]byte{{}}
		for _, sub := range n.Sub {
			words, ok := e.extract(sub)
			if !ok {
				return nil, false
			}
			if len(acc)*len(words) > e.config.MaxLiterals {
				return nil, false
			}
			next := make([][]byte, 0, len(acc)*len(words))
			for _, prefix := range acc {
				for _, w := range words {
					if len(prefix)+len(w) > e.config.MaxLiteralLen {
						return nil, false
					}
					word := make([]byte, 0, len(prefix)+len(w))
					word = append(append(word, prefix...), w...)
					next = append(next, word)
				}
			}
			acc = next
		}
		return acc, true

	default:
		return nil, false
	}
}
