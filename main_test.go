package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bent101/wordle-ranker/config"
	"github.com/bent101/wordle-ranker/dictionary"
	"github.com/bent101/wordle-ranker/hint"
	"github.com/bent101/wordle-ranker/pairwise"
	"github.com/bent101/wordle-ranker/solver"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with a config path that does not exist.
func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestParseHistory(t *testing.T) {
	history, err := parseHistory([]string{"tares:b-yg-", "CRANE:ggggg"})
	require.NoError(t, err)
	assert.Equal(t, []hint.Guess{
		{Word: "tares", Mask: hint.Mask{hint.Wrong, hint.Wrong, hint.Misplaced, hint.Correct, hint.Wrong}},
		{Word: "crane", Mask: hint.AllCorrect},
	}, history)

	_, err = parseHistory([]string{"tares:b-yg-", "cran:ggggg"})
	assert.ErrorIs(t, err, hint.ErrInvalidWord)
	assert.Contains(t, err.Error(), "guess 2")
}

func TestCheckHistory(t *testing.T) {
	assert.NoError(t, checkHistory([]hint.Guess{{Word: "tares"}}))
	assert.ErrorIs(t, checkHistory([]hint.Guess{{Word: "Tares"}}), hint.ErrInvalidWord)
	assert.ErrorIs(t, checkHistory([]hint.Guess{{Word: "tar"}}), hint.ErrInvalidWord)
}

func TestSuggestOpening(t *testing.T) {
	out := run(t, "", "suggest", "--json")

	var got []solver.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []solver.Suggestion{{Word: "tares", Score: 0}}, got)
}

func TestSuggestMatchesService(t *testing.T) {
	history := []hint.Guess{
		{Word: "tares", Mask: hint.Compute("crane", "tares")},
		{Word: "plant", Mask: hint.Compute("crane", "plant")},
	}
	args := []string{"suggest", "--json"}
	for _, g := range history {
		args = append(args, g.Word+":"+maskArg(g.Mask))
	}
	out := run(t, "", args...)

	var got []solver.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	svc, err := solver.NewService(dictionary.Default(), nil, solver.Options{})
	require.NoError(t, err)
	var want []solver.Suggestion
	for i := 0; i <= len(history); i++ {
		want, err = svc.Play(history[:i])
		require.NoError(t, err)
	}
	assert.Equal(t, want, got)
}

func TestSuggestHistoryJSON(t *testing.T) {
	js := `[{"word":"tares","mask":["wrong","wrong","wrong","wrong","wrong"]}]`
	out := run(t, "", "suggest", "--history-json", js)
	assert.Contains(t, out, " 1. ")
}

func TestSuggestUnknownWord(t *testing.T) {
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "suggest", "qqqqq:bbbbb"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, solver.ErrUnknownWord)
}

func TestPlay(t *testing.T) {
	secret := "crane"
	mask := maskArg(hint.Compute(secret, "tares"))
	out := run(t, "tares "+mask+"\nnonsense\nreset\ncrane ggggg\nquit\n", "play")

	assert.Contains(t, out, " 1. tares   0.0000")
	assert.Contains(t, out, "invalid mask")
	assert.Contains(t, out, "Solved in 1.")
}

func TestWarmSnapshotLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.gob")
	run(t, "", "warm", "--quiet", "--out", path)

	out := run(t, "", "suggest", "--json", "--cache-file", path, "tares:bbbbb")
	var got []solver.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got)
}

func TestFillComputesEveryCell(t *testing.T) {
	dict, err := dictionary.New([]dictionary.Pair{{Word: "tares", Count: 3}, {Word: "hello", Count: 2}, {Word: "jelly", Count: 1}})
	require.NoError(t, err)

	table := pairwise.New(dict.Len())
	rows := 0
	fill(table, dict, 1, func() { rows++ })
	assert.Equal(t, 3, rows)
	assert.Equal(t, 9, table.Computed())
	assert.Equal(t, hint.Pack(hint.Compute("jelly", "hello")), table.GetOrCompute(1, "hello", "jelly", 2))
}

func TestSaveTable(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()

	dict, err := dictionary.New([]dictionary.Pair{{Word: "tares", Count: 3}, {Word: "hello", Count: 2}})
	require.NoError(t, err)
	table := pairwise.New(dict.Len())
	fill(table, dict, 2, func() {})

	cfg.CacheFile = filepath.Join(t.TempDir(), "cache.gob")
	require.NoError(t, saveTable(table, dict, cfg.CacheFile))

	loaded, err := loadTable(dict)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Computed())

	cfg.CacheFile = filepath.Join(t.TempDir(), "missing.gob")
	loaded, err = loadTable(dict)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Computed())
}

func TestLoadTableRejectsOtherDictionary(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.CacheFile = filepath.Join(t.TempDir(), "cache.gob")

	saved, err := dictionary.New([]dictionary.Pair{{Word: "tares", Count: 3}, {Word: "hello", Count: 2}, {Word: "jelly", Count: 1}})
	require.NoError(t, err)
	table := pairwise.New(saved.Len())
	fill(table, saved, 1, func() {})
	require.NoError(t, saveTable(table, saved, cfg.CacheFile))

	other, err := dictionary.New([]dictionary.Pair{{Word: "tares", Count: 3}, {Word: "crane", Count: 2}, {Word: "zebra", Count: 1}})
	require.NoError(t, err)
	_, err = loadTable(other)
	assert.ErrorIs(t, err, pairwise.ErrDictionaryMismatch)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "wordle.yaml")
	out := run(t, "", "--hard", "--workers", "4", "config", "init", path)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	want := config.DefaultConfig()
	want.HardMode = true
	want.Workers = 4
	assert.Equal(t, want, loaded)

	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "config", "init", path})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	run(t, "", "config", "init", "--force", path)
	loaded, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)
}

func maskArg(m hint.Mask) string {
	b := make([]byte, hint.Length)
	for i, c := range m {
		b[i] = "gyb"[c]
	}
	return string(b)
}
