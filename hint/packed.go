package hint

import "strings"

// Patterns is the number of distinct masks, 3^Length.
const Patterns = 3 * 3 * 3 * 3 * 3

// Packed is a Mask as a base 3 number plus one, so that the zero value can
// mark a cache slot that has not been computed yet.
type Packed uint8

// Uncomputed is the sentinel stored in cache slots that were never filled.
const Uncomputed Packed = 0

// Pack encodes m with the leftmost position most significant.
func Pack(m Mask) Packed {
	var ret uint8
	for _, c := range m {
		ret = ret*3 + uint8(c)
	}
	return Packed(ret + 1)
}

// Index returns the dense bucket number of p in [0, Patterns).
func (p Packed) Index() int {
	return int(p) - 1
}

// Unpack decodes p. It panics on Uncomputed.
func (p Packed) Unpack() Mask {
	if p == Uncomputed {
		panic("unpack of uncomputed mask")
	}
	v := uint8(p) - 1
	var m Mask
	for i := Length - 1; i >= 0; i-- {
		m[i] = Correctness(v % 3)
		v /= 3
	}
	return m
}

func (p Packed) String() string {
	if p == Uncomputed {
		return "?????"
	}
	return p.Unpack().String()
}

func (m Mask) String() string {
	var b strings.Builder
	for _, c := range m {
		switch c {
		case Correct:
			b.WriteString("🟩")
		case Misplaced:
			b.WriteString("🟨")
		default:
			b.WriteString("⬜")
		}
	}
	return b.String()
}

// ColoredWord displays a word with colored backgrounds based on the mask.
func ColoredWord(word string, m Mask) string {
	if len(word) != Length {
		return word
	}

	const (
		reset    = "\033[0m"
		grayBg   = "\033[48;5;236m\033[38;5;255m"
		yellowBg = "\033[43m\033[30m"
		greenBg  = "\033[42m\033[30m"
	)

	var result strings.Builder
	for i := 0; i < Length; i++ {
		switch m[i] {
		case Correct:
			result.WriteString(greenBg)
		case Misplaced:
			result.WriteString(yellowBg)
		default:
			result.WriteString(grayBg)
		}
		result.WriteByte(word[i])
		result.WriteString(" ")
		result.WriteString(reset)
	}

	return result.String()
}
