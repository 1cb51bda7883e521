// Package pairwise memoizes the feedback mask of every (guess, answer) word
// pair of a dictionary.
//
// The table is n*n bytes for a dictionary of n words (a 6000 word list takes
// 36MB), allocated on first use. Cells are written once and never change.
// Writes are unsynchronized: concurrent callers must partition work so that
// each row has a single writer, which is what the solver does by giving
// every scoring shard its own set of guess rows.
package pairwise

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bent101/wordle-ranker/hint"
)

var (
	ErrSizeMismatch       = errors.New("pairwise table size mismatch")
	ErrDictionaryMismatch = errors.New("pairwise snapshot is for another dictionary")
)

// Footprint returns the number of bytes a table for n words occupies.
func Footprint(n int) int64 {
	return int64(n) * int64(n)
}

type Table struct {
	n     int
	once  sync.Once
	cells []hint.Packed
}

// New returns an empty table for a dictionary of n words.
func New(n int) *Table {
	if n <= 0 {
		panic(fmt.Sprintf("pairwise table of %d words", n))
	}
	return &Table{n: n}
}

func (t *Table) Len() int { return t.n }

func (t *Table) alloc() {
	t.once.Do(func() {
		t.cells = make([]hint.Packed, t.n*t.n)
	})
}

// Row is the slice of cells for one guess word.
type Row struct {
	cells []hint.Packed
}

// Row returns the cells of guess index g.
func (t *Table) Row(g int) Row {
	t.alloc()
	return Row{cells: t.cells[g*t.n : (g+1)*t.n : (g+1)*t.n]}
}

// GetOrCompute returns the packed mask of guess (at index g) against answer
// (at index a), computing and storing it on first access.
func (t *Table) GetOrCompute(g int, guess, answer string, a int) hint.Packed {
	return t.Row(g).GetOrCompute(guess, answer, a)
}

// GetOrCompute returns the packed mask of guess against answer at index a.
func (r Row) GetOrCompute(guess, answer string, a int) hint.Packed {
	if p := r.cells[a]; p != hint.Uncomputed {
		return p
	}
	p := hint.Pack(hint.Compute(answer, guess))
	r.cells[a] = p
	return p
}

// Computed counts the cells that hold a mask.
func (t *Table) Computed() int {
	if t.cells == nil {
		return 0
	}
	n := 0
	for _, p := range t.cells {
		if p != hint.Uncomputed {
			n++
		}
	}
	return n
}

type snapshot struct {
	Words       int
	Fingerprint string
	Cells       []byte
}

// WriteSnapshot writes the table as a gob snapshot tagged with the
// fingerprint of the dictionary it was filled from.
func (t *Table) WriteSnapshot(w io.Writer, fingerprint string) (int64, error) {
	t.alloc()
	cells := make([]byte, len(t.cells))
	for i, p := range t.cells {
		cells[i] = byte(p)
	}
	cw := &countingWriter{w: w}
	s := snapshot{Words: t.n, Fingerprint: fingerprint, Cells: cells}
	if err := gob.NewEncoder(cw).Encode(s); err != nil {
		return cw.n, fmt.Errorf("encode pairwise table: %w", err)
	}
	return cw.n, nil
}

// ReadSnapshot replaces the table contents with a snapshot written by
// WriteSnapshot with the same fingerprint. ReadSnapshot must not run
// concurrently with any other use of the table.
func (t *Table) ReadSnapshot(r io.Reader, fingerprint string) (int64, error) {
	cr := &countingReader{r: r}
	var s snapshot
	if err := gob.NewDecoder(cr).Decode(&s); err != nil {
		return cr.n, fmt.Errorf("decode pairwise table: %w", err)
	}
	if s.Words != t.n || len(s.Cells) != t.n*t.n {
		return cr.n, fmt.Errorf("%w: snapshot has %d words, table has %d", ErrSizeMismatch, s.Words, t.n)
	}
	if s.Fingerprint != fingerprint {
		return cr.n, fmt.Errorf("%w: snapshot %q, dictionary %q", ErrDictionaryMismatch, s.Fingerprint, fingerprint)
	}
	for i, b := range s.Cells {
		if int(b) > hint.Patterns {
			return cr.n, fmt.Errorf("decode pairwise table: cell %d holds %d", i, b)
		}
	}

	t.alloc()
	for i, b := range s.Cells {
		t.cells[i] = hint.Packed(b)
	}
	return cr.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
