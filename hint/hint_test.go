package hint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// C/M/W shorthand for writing expected masks
func mask(t *testing.T, s string) Mask {
	t.Helper()
	var m Mask
	require.Len(t, s, Length)
	for i := 0; i < Length; i++ {
		switch s[i] {
		case 'C':
			m[i] = Correct
		case 'M':
			m[i] = Misplaced
		case 'W':
			m[i] = Wrong
		default:
			t.Fatalf("bad mask symbol %q", s[i])
		}
	}
	return m
}

func TestCompute(t *testing.T) {
	tests := []struct {
		answer, guess string
		want          string
	}{
		{"abcde", "abcde", "CCCCC"},
		{"abcde", "eabcd", "MMMMM"},
		{"abcde", "fghij", "WWWWW"},
		{"sassy", "class", "WWMCM"},
		{"abbey", "babes", "MMCCW"},
		{"speed", "eerie", "MMWWW"},
		{"crane", "eerie", "WWMWC"},
		{"llama", "hello", "WWMMW"},
		{"robot", "boots", "MCMMW"},
	}
	for _, tt := range tests {
		t.Run(tt.answer+"/"+tt.guess, func(t *testing.T) {
			assert.Equal(t, mask(t, tt.want), Compute(tt.answer, tt.guess))
		})
	}
}

var corpus = []string{
	"sassy", "class", "abbey", "babes", "speed", "eerie", "crane", "llama",
	"hello", "robot", "boots", "tares", "array", "mamma", "geese", "eagle",
	"abcde", "eabcd", "level", "steel", "sleet", "otter", "total", "issue",
}

func TestComputeSelfIsAllCorrect(t *testing.T) {
	for _, w := range corpus {
		assert.Equal(t, AllCorrect, Compute(w, w), w)
	}
}

func TestComputeNeverOvercountsLetters(t *testing.T) {
	for _, answer := range corpus {
		for _, guess := range corpus {
			m := Compute(answer, guess)
			hits := map[byte]int{}
			for i := 0; i < Length; i++ {
				if m[i] != Wrong {
					hits[guess[i]]++
				}
			}
			for letter, n := range hits {
				assert.LessOrEqual(t, n, strings.Count(answer, string(letter)),
					"answer=%s guess=%s letter=%c", answer, guess, letter)
			}
		}
	}
}

func TestComputePanicsOnLength(t *testing.T) {
	assert.Panics(t, func() { Compute("abcd", "abcde") })
	assert.Panics(t, func() { Compute("abcde", "abcdef") })
}

func TestComputePanicsOnNonLetters(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"Tares", `invalid guess: "Tares"[0] = 'T' is not a lowercase letter`},
		{"tare1", `invalid guess: "tare1"[4] = '1' is not a lowercase letter`},
		{"ta es", `invalid guess: "ta es"[2] = ' ' is not a lowercase letter`},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, func() { Compute("crane", tt.word) })
			assert.Panics(t, func() { Guess{Word: tt.word}.Matches("crane") })
			assert.Panics(t, func() { Guess{Word: "crane"}.Matches(tt.word) })
		})
	}
}

func TestMatchesAgreesWithCompute(t *testing.T) {
	for _, played := range corpus {
		for _, secret := range corpus {
			g := Guess{Word: played, Mask: Compute(secret, played)}
			for _, answer := range corpus {
				want := Compute(answer, played) == g.Mask
				assert.Equal(t, want, g.Matches(answer),
					"played=%s mask=%s answer=%s", played, g.Mask, answer)
			}
		}
	}
}

func TestMatchesEveryMask(t *testing.T) {
	// exhaust all masks for a word with a repeated letter
	for p := 1; p <= Patterns; p++ {
		g := Guess{Word: "geese", Mask: Packed(p).Unpack()}
		for _, answer := range corpus {
			assert.Equal(t, Compute(answer, g.Word) == g.Mask, g.Matches(answer),
				"mask=%s answer=%s", g.Mask, answer)
		}
	}
}
