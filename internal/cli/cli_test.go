package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/coremx/nfa"
	"github.com/coregx/coremx/syntax"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "coremx", cmd.Use)

	for _, name := range []string{"match", "explain", "check"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "100", cmd.PersistentFlags().Lookup("max-depth").DefValue)
}

func TestMatch(t *testing.T) {
	out, _, err := execute(t, "match", "ab|cd", "abd", "acd")
	require.NoError(t, err)
	assert.Equal(t, "\"abd\"\taccept\n\"acd\"\taccept\n", out)
}

func TestMatch_Rejections(t *testing.T) {
	out, _, err := execute(t, "match", "ab|cd", "abd", "ab", "axd")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "2 of 3 inputs rejected", err.Error())
	assert.Equal(t,
		"\"abd\"\taccept\n"+
			"\"ab\"\treject: prefilter length+affix+aho-corasick\n"+
			"\"axd\"\treject: prefilter length+affix+aho-corasick\n",
		out)

	out, _, err = execute(t, "--no-prefilter", "match", "ab|cd", "ab", "axd", "ad")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t,
		"\"ab\"\treject: no accepting state\n"+
			"\"axd\"\treject: unit not in alphabet\n"+
			"\"ad\"\treject: no live states\n",
		out)
}

func TestMatch_Quiet(t *testing.T) {
	out, _, err := execute(t, "match", "-q", "(ab)|(cd)", "cd")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMatch_CompileError(t *testing.T) {
	_, _, err := execute(t, "match", "(ab", "ab")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, errors.Is(err, syntax.ErrUnbalancedGroup))
}

func TestMatch_Verbose(t *testing.T) {
	_, stderr, err := execute(t, "-v", "match", "a|b", "a")
	require.NoError(t, err)
	assert.Contains(t, stderr, "compiled")
	assert.Contains(t, stderr, "match finished")

	_, stderr, err = execute(t, "match", "a|b", "a")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--max-depth", "0", "match", "a", "a")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "MaxDepth")

	_, _, err = execute(t, "--max-matrix-bytes", "2048", "match", "abcdefghijkl", "abcdefghijkl")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, errors.Is(err, nfa.ErrTooComplex))

	_, _, err = execute(t, "match", "a")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExplain(t *testing.T) {
	out, _, err := execute(t, "explain", "ab|cd")
	require.NoError(t, err)

	for _, want := range []string{
		"pattern: ab|cd\n",
		"canonical: a(b|c)d\n",
		"tree:\n  Sequence\n",
		"nfa:\n  start: 0\n  accepting: [9]\n",
		"  2: -ε-> 3 -ε-> 5\n",
		"collapsed:\n  start: 0\n",
		"matrix \"a\":\n  0100000000\n",
		"strategy: UsePrefilterMatrix\n",
		"prefilter: length+affix+aho-corasick\n",
		"words: 2 (length 3..3)\n",
	} {
		assert.Contains(t, out, want)
	}

	out, _, err = execute(t, "explain", "--matrices=false", "a")
	require.NoError(t, err)
	assert.NotContains(t, out, "matrix")
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "check", "--cases", filepath.Join("..", "..", "testdata", "cases.yaml"))
	require.NoError(t, err, out)
	assert.Contains(t, out, " failures\n")
	assert.NotContains(t, out, "FAIL")
}

func TestCheck_Failures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	doc := "cases:\n  - pattern: \"ab|cd\"\n    accept: [\"ab\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := execute(t, "check", "--cases", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t,
		"FAIL ab|cd: \"ab|cd\" on \"ab\": want accept, got reject\n"+
			"1 cases, 1 checks, 1 failures\n",
		out)
}

func TestCheck_MissingCorpus(t *testing.T) {
	_, _, err := execute(t, "check", "--cases", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("unknown flag")))
	assert.Equal(t, ExitFailure, GetExitCode(&ExitError{Code: ExitFailure, Message: "x"}))
}
