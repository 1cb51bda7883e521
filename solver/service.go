package solver

import (
	"sync"

	"go.uber.org/zap"

	"github.com/bent101/wordle-ranker/dictionary"
	"github.com/bent101/wordle-ranker/hint"
	"github.com/bent101/wordle-ranker/pairwise"
)

// Service serializes play and reset calls into a single Session. The
// pairwise cache outlives resets.
type Service struct {
	mu      sync.Mutex
	dict    *dictionary.Dictionary
	table   *pairwise.Table
	opts    Options
	session *Session
}

// NewService starts a session over dict. A nil table allocates a new cache.
func NewService(dict *dictionary.Dictionary, table *pairwise.Table, opts Options) (*Service, error) {
	if table == nil {
		table = pairwise.New(dict.Len())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	session, err := NewSession(dict, table, opts)
	if err != nil {
		return nil, err
	}
	return &Service{dict: dict, table: table, opts: opts, session: session}, nil
}

// Play returns the suggestions for history. The error is ErrUnknownWord
// when the first guess is not in the dictionary; the session is untouched.
func (s *Service) Play(history []hint.Guess) ([]Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Guess(history)
}

// Reset discards the current session and starts a fresh one.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.session.ID()
	session, err := NewSession(s.dict, s.table, s.opts)
	if err != nil {
		// NewService already checked the same dictionary and options
		panic(err)
	}
	s.session = session
	s.opts.Logger.Info("session reset", zap.String("previous", old), zap.String("session", session.ID()))
}

func (s *Service) Entropy() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Entropy()
}

func (s *Service) Remaining() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Remaining()
}

// Table returns the cache shared by every session of s.
func (s *Service) Table() *pairwise.Table { return s.table }
