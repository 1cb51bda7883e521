package hint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMask = errors.New("invalid mask")
	ErrInvalidWord = errors.New("invalid word")
)

var names = [...]string{
	Correct:   "correct",
	Misplaced: "misplaced",
	Wrong:     "wrong",
}

func (c Correctness) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return fmt.Sprintf("Correctness(%d)", uint8(c))
}

func (c Correctness) MarshalText() ([]byte, error) {
	if int(c) >= len(names) {
		return nil, fmt.Errorf("%w: correctness %d", ErrInvalidMask, uint8(c))
	}
	return []byte(names[c]), nil
}

func (c *Correctness) UnmarshalText(text []byte) error {
	for i, name := range names {
		if strings.EqualFold(string(text), name) {
			*c = Correctness(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown correctness %q", ErrInvalidMask, text)
}

// ParseMask reads a compact mask such as "gy-b." where g/c/2 is Correct,
// y/m/1 is Misplaced and b/w/x/0/-/. is Wrong.
func ParseMask(s string) (Mask, error) {
	var m Mask
	if len(s) != Length {
		return m, fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidMask, s, len(s), Length)
	}
	for i := 0; i < Length; i++ {
		switch s[i] {
		case 'g', 'G', 'c', 'C', '2':
			m[i] = Correct
		case 'y', 'Y', 'm', 'M', '1':
			m[i] = Misplaced
		case 'b', 'B', 'w', 'W', 'x', 'X', '0', '-', '.':
			m[i] = Wrong
		default:
			return m, fmt.Errorf("%w: unknown symbol %q at position %d", ErrInvalidMask, s[i], i+1)
		}
	}
	return m, nil
}

// ParseWord lowercases s and checks that it is Length ASCII letters.
func ParseWord(s string) (string, error) {
	w := strings.ToLower(strings.TrimSpace(s))
	if len(w) != Length {
		return "", fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWord, s, len(w), Length)
	}
	for i := 0; i < Length; i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidWord, s, w[i])
		}
	}
	return w, nil
}

// ParseGuess reads a guess written as "word:mask" or "word mask".
func ParseGuess(s string) (Guess, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ' ' || r == '\t' || r == '='
	})
	if len(fields) != 2 {
		return Guess{}, fmt.Errorf("%w: %q, want word:mask", ErrInvalidMask, s)
	}
	word, err := ParseWord(fields[0])
	if err != nil {
		return Guess{}, err
	}
	mask, err := ParseMask(fields[1])
	if err != nil {
		return Guess{}, err
	}
	return Guess{Word: word, Mask: mask}, nil
}

// UnmarshalJSON requires exactly Length entries.
func (m *Mask) UnmarshalJSON(data []byte) error {
	var cs []Correctness
	if err := json.Unmarshal(data, &cs); err != nil {
		return err
	}
	if len(cs) != Length {
		return fmt.Errorf("%w: %d entries, want %d", ErrInvalidMask, len(cs), Length)
	}
	copy(m[:], cs)
	return nil
}
