package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/bent101/wordle-ranker/dictionary"
)

// Pool is the set of words still consistent with every mask seen so far.
// It borrows the dictionary's shared weighted list until the first Retain,
// which makes a private copy; later Retains filter that copy in place.
type Pool struct {
	entries []dictionary.Weighted
	owned   bool
	members *bitset.BitSet
}

func newPool(all []dictionary.Weighted) *Pool {
	members := bitset.New(uint(len(all)))
	for _, e := range all {
		members.Set(uint(e.Index))
	}
	return &Pool{entries: all, members: members}
}

func (p *Pool) Len() int { return len(p.entries) }

// Entries returns the pool in dictionary order. Callers must not modify it.
func (p *Pool) Entries() []dictionary.Weighted { return p.entries }

// Contains reports whether the word at dictionary index i is in the pool.
func (p *Pool) Contains(i int) bool { return p.members.Test(uint(i)) }

// Weight is the sum of the prior weights of the pool.
func (p *Pool) Weight() float64 {
	var sum float64
	for _, e := range p.entries {
		sum += e.Weight
	}
	return sum
}

// Retain keeps only the entries for which keep returns true.
func (p *Pool) Retain(keep func(dictionary.Weighted) bool) {
	if !p.owned {
		kept := make([]dictionary.Weighted, 0, len(p.entries))
		for _, e := range p.entries {
			if keep(e) {
				kept = append(kept, e)
			} else {
				p.members.Clear(uint(e.Index))
			}
		}
		p.entries = kept
		p.owned = true
		return
	}

	kept := p.entries[:0]
	for _, e := range p.entries {
		if keep(e) {
			kept = append(kept, e)
		} else {
			p.members.Clear(uint(e.Index))
		}
	}
	p.entries = kept
}

func (p *Pool) words() []string {
	ret := make([]string, len(p.entries))
	for i, e := range p.entries {
		ret[i] = e.Word
	}
	return ret
}
