package solver

import (
	"cmp"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// TopBy sorts items by descending key, keeping the original order among
// equal keys, and returns at most the first n.
func TopBy[T any, K constraints.Ordered](items []T, n int, keyFunc func(T) K) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(keyFunc(b), keyFunc(a))
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
