package hint

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Length is the number of letters in every word and mask.
const Length = 5

const letters = 26

// Correctness is the feedback for a single letter of a guess.
type Correctness uint8

const (
	Correct   Correctness = iota // green
	Misplaced                    // yellow
	Wrong                        // gray
)

// Mask is the per-position feedback of a guess against an answer.
type Mask [Length]Correctness

// AllCorrect is the mask of a solved puzzle.
var AllCorrect = Mask{Correct, Correct, Correct, Correct, Correct}

// Compute returns the mask observed when guess is played and answer is the
// secret. Repeated guess letters are only marked Misplaced while the answer
// still has unclaimed copies of that letter, left to right.
func Compute(answer, guess string) Mask {
	checkWord("answer", answer)
	checkWord("guess", guess)

	var m Mask
	// copies of each answer letter not matched in place
	var misplaced [letters]uint8

	for i := 0; i < Length; i++ {
		if answer[i] == guess[i] {
			m[i] = Correct
		} else {
			m[i] = Wrong
			misplaced[answer[i]-'a']++
		}
	}

	for i := 0; i < Length; i++ {
		if m[i] == Wrong && misplaced[guess[i]-'a'] > 0 {
			m[i] = Misplaced
			misplaced[guess[i]-'a']--
		}
	}

	return m
}

// Guess is one played word together with the feedback it received.
type Guess struct {
	Word string `json:"word"`
	Mask Mask   `json:"mask"`
}

// Matches reports whether word could be the answer given g. It is
// equivalent to Compute(word, g.Word) == g.Mask but bails out early.
func (g Guess) Matches(word string) bool {
	checkWord("word", word)
	checkWord("guess", g.Word)

	// letters of word not yet claimed by a Correct or Misplaced position
	unclaimed := [Length]byte([]byte(word))

	for i := 0; i < Length; i++ {
		if word[i] == g.Word[i] {
			if g.Mask[i] != Correct {
				return false
			}
			unclaimed[i] = 0
		} else if g.Mask[i] == Correct {
			return false
		}
	}

	for i := 0; i < Length; i++ {
		if g.Mask[i] == Correct {
			continue
		}
		j := slices.Index(unclaimed[:], g.Word[i])
		if (j >= 0) != (g.Mask[i] == Misplaced) {
			return false
		}
		if j >= 0 {
			unclaimed[j] = 0
		}
	}

	// everything left is correctly Wrong
	return true
}

// checkWord panics unless word is Length lowercase ASCII letters.
func checkWord(what, word string) {
	if len(word) != Length {
		panic(fmt.Sprintf("invalid %s: len(%q) = %d", what, word, len(word)))
	}
	for i := 0; i < Length; i++ {
		if word[i] < 'a' || word[i] > 'z' {
			panic(fmt.Sprintf("invalid %s: %q[%d] = %q is not a lowercase letter", what, word, i, word[i]))
		}
	}
}
