// Package dictionary holds the fixed word list the solver guesses from and
// the prior weight of each word being the answer.
package dictionary

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/bent101/wordle-ranker/hint"
)

var (
	ErrEmpty        = errors.New("empty dictionary")
	ErrInvalidEntry = errors.New("invalid dictionary entry")
	ErrDuplicate    = errors.New("duplicate dictionary word")
)

// words.txt is generated at build time: one "word count" pair per line,
// most frequent first.
//
//go:embed words.txt
var embedded []byte

// Entry is one word of the dictionary with its corpus count. Index is the
// word's position in the dictionary and never changes.
type Entry struct {
	Word  string
	Count uint64
	Index int
}

// Weighted is an entry with its prior weight of being the answer.
type Weighted struct {
	Word   string
	Weight float64
	Index  int
}

// Pair is an input (word, count) row.
type Pair struct {
	Word  string
	Count uint64
}

type Dictionary struct {
	entries []Entry
	index   map[string]int
	total   uint64

	weighted func() []Weighted
}

// New validates pairs and builds a dictionary preserving their order.
func New(pairs []Pair) (*Dictionary, error) {
	if len(pairs) == 0 {
		return nil, ErrEmpty
	}

	d := &Dictionary{
		entries: make([]Entry, 0, len(pairs)),
		index:   make(map[string]int, len(pairs)),
	}
	for i, p := range pairs {
		w, err := hint.ParseWord(p.Word)
		if err != nil || w != p.Word {
			return nil, fmt.Errorf("%w: line %d: %q is not %d lowercase letters", ErrInvalidEntry, i+1, p.Word, hint.Length)
		}
		if _, ok := d.index[w]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, w)
		}
		d.index[w] = i
		d.entries = append(d.entries, Entry{Word: w, Count: p.Count, Index: i})
		d.total += p.Count
	}
	if d.total == 0 {
		return nil, fmt.Errorf("%w: all counts are zero", ErrInvalidEntry)
	}

	d.weighted = sync.OnceValue(d.computeWeights)
	return d, nil
}

// Parse reads a dictionary in "word count" line format. Blank lines and
// lines starting with # are skipped.
func Parse(r io.Reader) (*Dictionary, error) {
	var pairs []Pair
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"word count\", got %q", ErrInvalidEntry, line, text)
		}
		count, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidEntry, line, err)
		}
		pairs = append(pairs, Pair{Word: fields[0], Count: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return New(pairs)
}

// Default returns the embedded dictionary. The embedded list is checked
// by the tests, so a parse failure here is a build defect.
var Default = sync.OnceValue(func() *Dictionary {
	d, err := Parse(bytes.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("embedded dictionary: %v", err))
	}
	return d
})

func (d *Dictionary) Len() int { return len(d.entries) }

// Entries returns the dictionary in stored order. Callers must not modify it.
func (d *Dictionary) Entries() []Entry { return d.entries }

// Word returns the word at index i.
func (d *Dictionary) Word(i int) string { return d.entries[i].Word }

// Lookup returns the index of word.
func (d *Dictionary) Lookup(word string) (int, bool) {
	i, ok := d.index[word]
	return i, ok
}

// Fingerprint identifies the ordered word list. Two dictionaries with the
// same words in the same order share a fingerprint whatever their counts.
func (d *Dictionary) Fingerprint() string {
	h := sha256.New()
	for _, e := range d.entries {
		h.Write([]byte(e.Word))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

func (d *Dictionary) Contains(word string) bool {
	_, ok := d.index[word]
	return ok
}

// Weighted returns every entry with its prior weight, in stored order. The
// weights are computed on first call and shared afterwards; callers must not
// modify the slice.
func (d *Dictionary) Weighted() []Weighted {
	return d.weighted()
}

func (d *Dictionary) computeWeights() []Weighted {
	ret := make([]Weighted, len(d.entries))
	sum := float64(d.total)
	for i, e := range d.entries {
		ret[i] = Weighted{
			Word:   e.Word,
			Weight: Sigmoid(float64(e.Count) / sum),
			Index:  e.Index,
		}
	}
	return ret
}
