package sliceutil

import "cmp"

// GroupBy buckets items by the key returned from keyFn. Items keep their input
// order inside each bucket.
func GroupBy[T any, K comparable](items []T, keyFn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		key := keyFn(item)
		groups[key] = append(groups[key], item)
	}
	return groups
}

// Partition splits items into those that satisfy keep and those that do not.
func Partition[T any](items []T, keep func(T) bool) (kept, rest []T) {
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		} else {
			rest = append(rest, item)
		}
	}
	return kept, rest
}

// Swap exchanges the elements at i and j in place.
func Swap[T any](items []T, i, j int) {
	items[i], items[j] = items[j], items[i]
}

// IndexOfMax returns the index of the first largest element, or -1 for an
// empty slice.
func IndexOfMax[T cmp.Ordered](items []T) int {
	if len(items) == 0 {
		return -1
	}

	maxIndex := 0
	for i := 1; i < len(items); i++ {
		if items[i] > items[maxIndex] {
			maxIndex = i
		}
	}
	return maxIndex
}
