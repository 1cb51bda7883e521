// Package solver ranks the next guesses of a word puzzle by expected
// information gain and the expected number of turns left.
package solver

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bent101/wordle-ranker/dictionary"
	"github.com/bent101/wordle-ranker/hint"
	"github.com/bent101/wordle-ranker/pairwise"
)

var ErrUnknownWord = errors.New("word not in dictionary")

const (
	DefaultOpeningWord = "tares"
	MaxSuggestions     = 10
)

type Options struct {
	// HardMode only considers guesses that could still be the answer.
	HardMode bool
	// OpeningWord is suggested for an empty history. Defaults to DefaultOpeningWord.
	OpeningWord string
	// Workers is the number of scoring shards. Values below 2 score on the
	// calling goroutine.
	Workers int
	Logger  *zap.Logger
}

// Suggestion is a ranked guess. Score is the negated expected total number
// of turns if Word is played next; higher is better.
type Suggestion struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Session is one puzzle being solved. It is not safe for concurrent use.
type Session struct {
	id       string
	dict     *dictionary.Dictionary
	table    *pairwise.Table
	pool     *Pool
	entropy  []float64
	hardMode bool
	workers  int
	logger   *zap.Logger

	opening int
	// dictionary index of the last recommended or played word
	lastGuess    int
	hasLastGuess bool
}

func NewSession(dict *dictionary.Dictionary, table *pairwise.Table, opts Options) (*Session, error) {
	if table.Len() != dict.Len() {
		return nil, fmt.Errorf("%w: cache has %d words, dictionary has %d", pairwise.ErrSizeMismatch, table.Len(), dict.Len())
	}
	if opts.OpeningWord == "" {
		opts.OpeningWord = DefaultOpeningWord
	}
	opening, ok := dict.Lookup(opts.OpeningWord)
	if !ok {
		return nil, fmt.Errorf("opening word: %w: %s", ErrUnknownWord, opts.OpeningWord)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Session{
		id:       uuid.NewString(),
		dict:     dict,
		table:    table,
		pool:     newPool(dict.Weighted()),
		hardMode: opts.HardMode,
		workers:  opts.Workers,
		opening:  opening,
	}
	s.logger = opts.Logger.With(zap.String("session", s.id))
	s.logger.Info("session created",
		zap.Bool("hard_mode", s.hardMode),
		zap.Int("words", dict.Len()),
		zap.String("opening", opts.OpeningWord))
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Entropy returns the remaining entropy recorded at every ranking round.
func (s *Session) Entropy() []float64 {
	return append([]float64(nil), s.entropy...)
}

// Remaining returns the words still consistent with the history.
func (s *Session) Remaining() []string {
	return s.pool.words()
}

// Guess narrows the pool with the last record of history and returns up to
// MaxSuggestions guesses, best first. history is the whole game so far; only
// its last record is new since the previous call.
func (s *Session) Guess(history []hint.Guess) ([]Suggestion, error) {
	if len(history) > 0 && !s.dict.Contains(history[0].Word) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWord, history[0].Word)
	}

	turn := len(history)
	if turn == 0 {
		s.lastGuess, s.hasLastGuess = s.opening, true
		return []Suggestion{{Word: s.dict.Word(s.opening), Score: 0}}, nil
	}

	s.filter(history[turn-1])

	if s.pool.Len() == 1 {
		only := s.pool.Entries()[0]
		s.lastGuess, s.hasLastGuess = only.Index, true
		return []Suggestion{{Word: only.Word, Score: 0}}, nil
	}

	return s.rank(turn), nil
}

func (s *Session) filter(last hint.Guess) {
	idx, ok := s.dict.Lookup(last.Word)
	if !ok {
		if s.hasLastGuess {
			idx = s.lastGuess
		}
		s.logger.Warn("played word not in dictionary, filtering with last recommendation",
			zap.String("word", last.Word),
			zap.Int("fallback_index", idx),
			zap.String("fallback_word", s.dict.Word(idx)))
	}
	s.lastGuess, s.hasLastGuess = idx, true

	want := hint.Pack(last.Mask)
	row := s.table.Row(idx)
	s.pool.Retain(func(e dictionary.Weighted) bool {
		return row.GetOrCompute(last.Word, e.Word, e.Index) == want
	})

	if s.pool.Len() == 0 {
		panic(fmt.Sprintf("no word in the dictionary is consistent with %s %s", last.Word, last.Mask))
	}
}
