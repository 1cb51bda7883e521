package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/bent101/wordle-ranker/dictionary"
	"github.com/bent101/wordle-ranker/hint"
	"github.com/bent101/wordle-ranker/pairwise"
	"github.com/bent101/wordle-ranker/solver"
)

func parseHistory(args []string) ([]hint.Guess, error) {
	history := make([]hint.Guess, 0, len(args))
	for i, arg := range args {
		g, err := hint.ParseGuess(arg)
		if err != nil {
			return nil, fmt.Errorf("guess %d: %w", i+1, err)
		}
		history = append(history, g)
	}
	return history, nil
}

// checkHistory validates guesses that did not come through ParseGuess.
func checkHistory(history []hint.Guess) error {
	for i, g := range history {
		w, err := hint.ParseWord(g.Word)
		if err != nil {
			return fmt.Errorf("guess %d: %w", i+1, err)
		}
		if w != g.Word {
			return fmt.Errorf("guess %d: %w: %q must be lowercase", i+1, hint.ErrInvalidWord, g.Word)
		}
	}
	return nil
}

func loadDictionary() (*dictionary.Dictionary, error) {
	if cfg.Dictionary == "" {
		return dictionary.Default(), nil
	}
	f, err := os.Open(cfg.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	d, err := dictionary.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Dictionary, err)
	}
	return d, nil
}

// loadTable returns an empty cache, or the snapshot at cfg.CacheFile when
// there is one.
func loadTable(dict *dictionary.Dictionary) (*pairwise.Table, error) {
	if err := cfg.CheckDictionarySize(dict.Len()); err != nil {
		return nil, err
	}
	table := pairwise.New(dict.Len())
	if cfg.CacheFile == "" {
		return table, nil
	}

	f, err := os.Open(cfg.CacheFile)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("cache snapshot not found, will compute masks on demand", zap.String("path", cfg.CacheFile))
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open cache snapshot: %w", err)
	}
	defer f.Close()

	start := time.Now()
	n, err := table.ReadSnapshot(f, dict.Fingerprint())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.CacheFile, err)
	}
	logger.Info("loaded cache snapshot",
		zap.String("path", cfg.CacheFile),
		zap.Int64("bytes", n),
		zap.Int("computed", table.Computed()),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

func newService() (*solver.Service, error) {
	dict, err := loadDictionary()
	if err != nil {
		return nil, err
	}
	table, err := loadTable(dict)
	if err != nil {
		return nil, err
	}
	return solver.NewService(dict, table, solver.Options{
		HardMode:    cfg.HardMode,
		OpeningWord: cfg.OpeningWord,
		Workers:     cfg.Workers,
		Logger:      logger,
	})
}
