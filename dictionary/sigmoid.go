package dictionary

import "math"

const (
	sigmoidMax = 1.0
	// how steep the cut-off is
	sigmoidSteepness = 30000000.0
	// where the cut-off is, as a share of the total count
	sigmoidMidpoint = 0.00000497
)

// Sigmoid maps a word's share of the corpus to a prior weight. Words well
// above the midpoint share weigh close to 1, rare words close to 0.
func Sigmoid(share float64) float64 {
	return sigmoidMax / (1 + math.Exp(-sigmoidSteepness*(share-sigmoidMidpoint)))
}
