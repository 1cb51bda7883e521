package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bent101/wordle-ranker/config"
	"github.com/bent101/wordle-ranker/hint"
	"github.com/bent101/wordle-ranker/solver"
)

var (
	logger *zap.Logger
	cfg    *config.Config

	configPath  string
	verbose     bool
	hardMode    bool
	workers     int
	dictPath    string
	cacheFile   string
	jsonOutput  bool
	historyJSON string
)

var rootCmd = &cobra.Command{
	Use:   "wordle-ranker",
	Short: "Rank the next guesses of a five-letter word puzzle",
	Long: `wordle-ranker suggests the statistically best next guess given the
guesses played so far and the feedback each received.

Feedback is written as five symbols: g (green, correct), y (yellow,
misplaced) and b or - (gray, wrong). A guess is written as word:mask,
for example tares:b-yg-.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = buildLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [word:mask]...",
	Short: "Print the best next guesses for a history",
	Long: `Ranks the next guesses for the given history, oldest guess first.
With no history the fixed opening word is printed.

Example:
  wordle-ranker suggest tares:b-yg- crane:gg--y`,
	RunE: runSuggest,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Solve a puzzle interactively",
	Long: `Reads one guess per line as "word mask" and prints the updated
suggestions. "reset" starts a new puzzle, "quit" exits.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&hardMode, "hard", false, "only suggest words that could be the answer")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "scoring goroutines")
	rootCmd.PersistentFlags().StringVar(&dictPath, "dict", "", "dictionary file of \"word count\" lines (default embedded)")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "pairwise cache snapshot written by warm")

	suggestCmd.Flags().BoolVar(&jsonOutput, "json", false, "print suggestions as JSON")
	suggestCmd.Flags().StringVar(&historyJSON, "history-json", "", `history as JSON, [{"word":"tares","mask":["wrong",...]}]`)

	rootCmd.AddCommand(suggestCmd, playCmd, warmCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("hard") {
		cfg.HardMode = hardMode
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("dict") {
		cfg.Dictionary = dictPath
	}
	if flags.Changed("cache-file") {
		cfg.CacheFile = cacheFile
	}
}

func buildLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func runSuggest(cmd *cobra.Command, args []string) error {
	history, err := parseHistory(args)
	if err != nil {
		return err
	}
	if historyJSON != "" {
		var extra []hint.Guess
		if err := json.Unmarshal([]byte(historyJSON), &extra); err != nil {
			return fmt.Errorf("parse --history-json: %w", err)
		}
		if err := checkHistory(extra); err != nil {
			return err
		}
		history = append(history, extra...)
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	// replay the history one guess at a time, the way a live game does
	var suggestions []solver.Suggestion
	for i := 0; i <= len(history); i++ {
		suggestions, err = svc.Play(history[:i])
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}
	printHistory(out, history)
	printSuggestions(out, suggestions)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var history []hint.Guess
	suggestions, err := svc.Play(history)
	if err != nil {
		return err
	}
	printSuggestions(out, suggestions)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "reset":
			svc.Reset()
			history = nil
			if suggestions, err = svc.Play(history); err != nil {
				return err
			}
		default:
			g, err := hint.ParseGuess(line)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			next := append(history[:len(history):len(history)], g)
			s, err := svc.Play(next)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			history = next
			printHistory(out, history)

			if g.Mask == hint.AllCorrect {
				fmt.Fprintf(out, "Solved in %d.\n", len(history))
				svc.Reset()
				history = nil
				if s, err = svc.Play(history); err != nil {
					return err
				}
			}
			suggestions = s
		}
		printSuggestions(out, suggestions)
	}
}

func printHistory(w io.Writer, history []hint.Guess) {
	for _, g := range history {
		fmt.Fprintln(w, hint.ColoredWord(g.Word, g.Mask))
	}
}

func printSuggestions(w io.Writer, suggestions []solver.Suggestion) {
	for i, s := range suggestions {
		fmt.Fprintf(w, "%2d. %s %8.4f\n", i+1, s.Word, s.Score)
	}
}
