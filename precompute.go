package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bent101/wordle-ranker/dictionary"
	"github.com/bent101/wordle-ranker/pairwise"
)

var (
	warmOut   string
	warmQuiet bool
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Compute every guess/answer mask and save a cache snapshot",
	Long: `Fills the whole pairwise cache for the dictionary. With --out (or
cache_file in the config) the result is written as a snapshot that later
runs load with --cache-file.`,
	Args: cobra.NoArgs,
	RunE: runWarm,
}

func init() {
	warmCmd.Flags().StringVarP(&warmOut, "out", "o", "", "snapshot path (default cache_file)")
	warmCmd.Flags().BoolVarP(&warmQuiet, "quiet", "q", false, "no progress bar")
}

func runWarm(cmd *cobra.Command, args []string) error {
	dict, err := loadDictionary()
	if err != nil {
		return err
	}
	if err := cfg.CheckDictionarySize(dict.Len()); err != nil {
		return err
	}

	logger.Info("calculating masks for all guess-answer pairs",
		zap.Int("words", dict.Len()),
		zap.Int64("bytes", pairwise.Footprint(dict.Len())))

	var bar *progressbar.ProgressBar
	if warmQuiet {
		bar = progressbar.DefaultSilent(int64(dict.Len()))
	} else {
		bar = progressbar.Default(int64(dict.Len()), "rows")
	}

	start := time.Now()
	table := pairwise.New(dict.Len())
	fill(table, dict, cfg.Workers, func() { _ = bar.Add(1) })
	_ = bar.Finish()

	logger.Info("filled pairwise cache",
		zap.Int("computed", table.Computed()),
		zap.Duration("elapsed", time.Since(start)))

	out := warmOut
	if out == "" {
		out = cfg.CacheFile
	}
	if out == "" {
		return nil
	}
	return saveTable(table, dict, out)
}

// fill computes every row of table, one goroutine per row up to workers at
// a time.
func fill(table *pairwise.Table, dict *dictionary.Dictionary, workers int, done func()) {
	entries := dict.Entries()

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for _, guess := range entries {
		g.Go(func() error {
			row := table.Row(guess.Index)
			for _, answer := range entries {
				row.GetOrCompute(guess.Word, answer.Word, answer.Index)
			}
			done()
			return nil
		})
	}
	g.Wait()
}

func saveTable(table *pairwise.Table, dict *dictionary.Dictionary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cache snapshot: %w", err)
	}

	start := time.Now()
	n, err := table.WriteSnapshot(file, dict.Fingerprint())
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write cache snapshot: %w", err)
	}

	logger.Info("saved cache snapshot",
		zap.String("path", path),
		zap.String("dictionary", dict.Fingerprint()),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
