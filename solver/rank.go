package solver

import (
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bent101/wordle-ranker/dictionary"
	"github.com/bent101/wordle-ranker/hint"
)

// minEvaluated is the least number of pool words scored per round.
const minEvaluated = 20

type candidate struct {
	word     string
	goodness float64
}

// estimatedStepsLeft is a regression of the turns still needed to solve a
// pool with the given entropy.
func estimatedStepsLeft(entropy float64) float64 {
	return math.Log(entropy*3.870 + 3.679)
}

func remainingEntropy(entries []dictionary.Weighted, total float64) float64 {
	var sum float64
	for _, e := range entries {
		p := e.Weight / total
		sum += p * math.Log2(p)
	}
	return -sum
}

// evaluationSet returns the prefix of consider that gets scored: it ends
// once max(20, pool/3) pool words were seen, capped at the pool size.
// Words outside the pool before that point are scored but not counted.
func evaluationSet(consider []dictionary.Weighted, pool *Pool) []dictionary.Weighted {
	stop := min(max(pool.Len()/3, minEvaluated), pool.Len())
	seen := 0
	for i, w := range consider {
		if !pool.Contains(w.Index) {
			continue
		}
		seen++
		if seen >= stop {
			return consider[:i+1]
		}
	}
	return consider
}

type round struct {
	turn    float64
	total   float64
	entropy float64
}

func (s *Session) rank(turn int) []Suggestion {
	entries := s.pool.Entries()
	r := round{turn: float64(turn), total: s.pool.Weight()}
	r.entropy = remainingEntropy(entries, r.total)
	s.entropy = append(s.entropy, r.entropy)

	consider := s.dict.Weighted()
	if s.hardMode {
		consider = entries
	}
	evaluate := evaluationSet(consider, s.pool)

	cands := make([]candidate, len(evaluate))
	s.scoreAll(evaluate, cands, r)

	s.logger.Debug("ranked guesses",
		zap.Int("turn", turn),
		zap.Int("remaining", len(entries)),
		zap.Float64("entropy", r.entropy),
		zap.Int("evaluated", len(evaluate)))

	top := TopBy(cands, MaxSuggestions, func(c candidate) float64 { return c.goodness })
	ret := make([]Suggestion, len(top))
	for i, c := range top {
		ret[i] = Suggestion{Word: c.word, Score: c.goodness}
	}
	return ret
}

// scoreAll fills out[i] with the score of evaluate[i]. With several workers
// each shard owns a disjoint set of guess words, so every cache row has a
// single writer.
func (s *Session) scoreAll(evaluate []dictionary.Weighted, out []candidate, r round) {
	shards := min(s.workers, len(evaluate))
	if shards < 2 {
		for i, w := range evaluate {
			out[i] = s.score(w, r)
		}
		return
	}

	var g errgroup.Group
	for k := 0; k < shards; k++ {
		g.Go(func() error {
			for i := k; i < len(evaluate); i += shards {
				out[i] = s.score(evaluate[i], r)
			}
			return nil
		})
	}
	g.Wait()
}

func (s *Session) score(w dictionary.Weighted, r round) candidate {
	var totals [hint.Patterns]float64

	row := s.table.Row(w.Index)
	for _, c := range s.pool.Entries() {
		totals[row.GetOrCompute(w.Word, c.Word, c.Index).Index()] += c.Weight
	}

	var sum float64
	for _, t := range totals {
		if t == 0 {
			continue
		}
		p := t / r.total
		sum += p * math.Log2(p)
	}
	info := -sum

	var pWin float64
	if s.pool.Contains(w.Index) {
		pWin = w.Weight / r.total
	}

	goodness := -(pWin*(r.turn+1) + (1-pWin)*(r.turn+estimatedStepsLeft(r.entropy-info)))
	return candidate{word: w.Word, goodness: goodness}
}
