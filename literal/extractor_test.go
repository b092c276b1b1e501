package literal

import (
	"slices"
	"testing"

	"github.com/coregx/coremx/syntax"
)

func words(s *Seq) []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = s.Get(i).String()
	}
	return out
}

func mustExtract(t *testing.T, config ExtractorConfig, pattern string) *Seq {
	t.Helper()
	seq, ok := New(config).Extract(syntax.MustParse(pattern))
	if !ok {
		t.Fatalf("Extract(%q) exceeded limits", pattern)
	}
	return seq
}

func TestExtract(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"a", []string{"a"}},
		{"abc", []string{"abc"}},
		{"ab|cd", []string{"abd", "acd"}},
		{"(ab)|(cd)", []string{"ab", "cd"}},
		{"a(b|c)d", []string{"abd", "acd"}},
		{"a|b|c", []string{"a", "b", "c"}},
		{"(a|b)(c|d)", []string{"ac", "ad", "bc", "bd"}},
		{"a|a", []string{"a"}},
		{"h(é|e)llo", []string{"héllo", "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := words(mustExtract(t, DefaultConfig(), tt.pattern))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Extract(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExtract_Limits(t *testing.T) {
	// 2^5 = 32 words
	root := syntax.MustParse("(a|b)(a|b)(a|b)(a|b)(a|b)")

	seq, ok := New(ExtractorConfig{MaxLiterals: 32}).Extract(root)
	if !ok || seq.Len() != 32 {
		t.Errorf("MaxLiterals 32: ok=%v len=%d, want 32 words", ok, seq.Len())
	}

	tests := []struct {
		name    string
		config  ExtractorConfig
		pattern string
	}{
		{"too many words", ExtractorConfig{MaxLiterals: 31}, "(a|b)(a|b)(a|b)(a|b)(a|b)"},
		{"alternation chain", ExtractorConfig{MaxLiterals: 2}, "a|b|c"},
		{"word too long", ExtractorConfig{MaxLiteralLen: 3}, "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := New(tt.config).Extract(syntax.MustParse(tt.pattern)); ok {
				t.Errorf("Extract(%q) succeeded, want limit exceeded", tt.pattern)
			}
		})
	}
}

func TestSeq_Bounds(t *testing.T) {
	seq := mustExtract(t, DefaultConfig(), "(hello)|(help)|(hero)|h")

	if seq.MinLen() != 1 || seq.MaxLen() != 5 {
		t.Errorf("bounds = %d..%d, want 1..5", seq.MinLen(), seq.MaxLen())
	}
	if got := string(seq.LongestCommonPrefix()); got != "h" {
		t.Errorf("LongestCommonPrefix = %q, want %q", got, "h")
	}
	if got := string(seq.LongestCommonSuffix()); got != "" {
		t.Errorf("LongestCommonSuffix = %q, want empty", got)
	}
	if !seq.Contains([]byte("help")) {
		t.Error("Contains(help) = false")
	}
	if seq.Contains([]byte("he")) {
		t.Error("Contains(he) = true")
	}
}

func TestSeq_CommonAffixes(t *testing.T) {
	seq := NewSeq(NewLiteral([]byte("cat")), NewLiteral([]byte("bat")), NewLiteral([]byte("rat")))
	if got := string(seq.LongestCommonSuffix()); got != "at" {
		t.Errorf("LongestCommonSuffix = %q, want %q", got, "at")
	}
	if got := string(seq.LongestCommonPrefix()); got != "" {
		t.Errorf("LongestCommonPrefix = %q, want empty", got)
	}

	empty := NewSeq()
	if !empty.IsEmpty() || empty.MinLen() != 0 || empty.MaxLen() != 0 {
		t.Error("empty Seq should report no words and zero bounds")
	}
	if len(empty.LongestCommonPrefix()) != 0 || len(empty.LongestCommonSuffix()) != 0 {
		t.Error("empty Seq should have empty affixes")
	}

	var nilSeq *Seq
	if nilSeq.Len() != 0 {
		t.Errorf("nil Seq Len = %d, want 0", nilSeq.Len())
	}
	if nilSeq.Clone() != nil {
		t.Error("nil Seq Clone should be nil")
	}
}

func TestSeq_Minimize(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("foobar")),
		NewLiteral([]byte("xfoo")),
		NewLiteral([]byte("foo")),
		NewLiteral([]byte("baz")),
	)
	seq.Minimize()

	want := []string{"foo", "baz"}
	if got := words(seq); !slices.Equal(got, want) {
		t.Errorf("Minimize = %q, want %q", got, want)
	}
}

func TestSeq_DedupAndClone(t *testing.T) {
	seq := NewSeq(NewLiteral([]byte("a")), NewLiteral([]byte("b")), NewLiteral([]byte("a")))
	seq.Dedup()
	if got := words(seq); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Dedup = %q, want [a b]", got)
	}

	clone := seq.Clone()
	clone.Get(0).Bytes[0] = 'z'
	if got := seq.Get(0).String(); got != "a" {
		t.Errorf("original modified through clone: %q", got)
	}

	got := seq.Words()
	if len(got) != 2 || string(got[0]) != "a" || string(got[1]) != "b" {
		t.Errorf("Words = %q, want [a b]", got)
	}
	if seq.Get(0).Len() != 1 {
		t.Errorf("Len = %d, want 1", seq.Get(0).Len())
	}
}
