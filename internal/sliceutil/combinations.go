// Package sliceutil provides small generic slice helpers used by matching and ranking.
package sliceutil

import "slices"

// Combinations returns every non-empty sub-selection of items that keeps the
// items' relative order, longest selections first.
//
// Selections are enumerated incrementally (each item is appended to every
// selection built so far), the enumeration is reversed, and the result is
// stable-sorted by length. For ["game", "designer"] this yields
// [game designer], [designer], [game].
//
// The result has 2^len(items)-1 elements. Role phrases are a handful of words,
// so no guard is applied; do not call this with long inputs.
func Combinations[T any](items []T) [][]T {
	combinations := make([][]T, 1, 1<<len(items))
	combinations[0] = []T{}

	for _, item := range items {
		n := len(combinations)
		for i := 0; i < n; i++ {
			next := make([]T, len(combinations[i]), len(combinations[i])+1)
			copy(next, combinations[i])
			combinations = append(combinations, append(next, item))
		}
	}

	slices.Reverse(combinations)
	slices.SortStableFunc(combinations, func(a, b []T) int {
		return len(b) - len(a)
	})

	// The empty selection sorts last
	return combinations[:len(combinations)-1]
}
