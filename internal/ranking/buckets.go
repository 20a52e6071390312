package ranking

import (
	"math"
	"slices"
	"time"

	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/numeric"
	"github.com/jonathan/portfolio-ranker/internal/sliceutil"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// MaxBucket is the top of the normalized score range.
const MaxBucket = 10

// Scored pairs an entry with its scores.
type Scored[E types.Scoreable] struct {
	Entry E
	// Index is the entry's position in the input slice
	Index int
	// Raw is the score before normalization
	Raw float64
	// Bucket is the normalized tier, set by Flatten
	Bucket int
}

// Buckets maps a score to the entries that achieved it, in input order.
type Buckets[E types.Scoreable] map[float64][]Scored[E]

// Score scores every entry and groups the results by raw score.
func Score[E types.Scoreable](entries []E, scorer *matching.Scorer) Buckets[E] {
	scored := make([]Scored[E], len(entries))
	for i, entry := range entries {
		scored[i] = Scored[E]{Entry: entry, Index: i, Raw: scorer.Score(entry)}
	}
	return sliceutil.GroupBy(scored, func(s Scored[E]) float64 { return s.Raw })
}

// Keys returns the bucket keys, highest first.
func (b Buckets[E]) Keys() []float64 {
	keys := make([]float64, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	return keys
}

// Max returns the highest key, or 0 for no buckets.
func (b Buckets[E]) Max() float64 {
	keys := b.Keys()
	if len(keys) == 0 {
		return 0
	}
	return keys[0]
}

// Normalize rekeys the buckets onto the integers [0, MaxBucket] by linear
// interpolation from [0, Max]. Buckets that land on the same integer are merged
// in input order. When the maximum is 0 nothing is remapped.
func (b Buckets[E]) Normalize() Buckets[E] {
	maxScore := b.Max()
	if maxScore == 0 {
		return b
	}

	normalized := make(Buckets[E], len(b))
	for key, entries := range b {
		newKey := numeric.Clamp(math.Round(numeric.RemapFromZero(key, maxScore, MaxBucket)), 0, MaxBucket)
		normalized[newKey] = append(normalized[newKey], entries...)
	}

	for key, entries := range normalized {
		slices.SortStableFunc(entries, func(a, b Scored[E]) int { return a.Index - b.Index })
		normalized[key] = entries
	}
	return normalized
}

// Flatten concatenates the buckets from highest key to lowest.
//
// Buckets whose key is not strictly greater than threshold are dropped, except
// that threshold 0 keeps every bucket, including bucket 0. With sorted set,
// each bucket is ordered by recency key, newest first; every entry must then
// implement types.Dated with a usable key.
func (b Buckets[E]) Flatten(threshold int, sorted bool) ([]Scored[E], error) {
	if threshold < 0 || threshold > MaxBucket {
		return nil, &ThresholdError{Threshold: threshold}
	}

	var flat []Scored[E]
	for _, key := range b.Keys() {
		bucket := int(key)
		if threshold > 0 && bucket <= threshold {
			continue
		}

		entries := slices.Clone(b[key])
		if sorted {
			if err := sortByRecency(entries); err != nil {
				return nil, err
			}
		}

		for i := range entries {
			entries[i].Bucket = bucket
		}
		flat = append(flat, entries...)
	}

	if flat == nil {
		flat = []Scored[E]{}
	}
	return flat, nil
}

func sortByRecency[E types.Scoreable](entries []Scored[E]) error {
	keys := make(map[int]time.Time, len(entries))
	for _, s := range entries {
		key, ok := recencyKey(s.Entry)
		if !ok {
			missing := &MissingSortKeyError{Index: s.Index}
			if id, isID := any(s.Entry).(types.Identifiable); isID {
				missing.ID = id.Identity()
			}
			return missing
		}
		keys[s.Index] = key
	}

	slices.SortStableFunc(entries, func(a, b Scored[E]) int {
		return keys[b.Index].Compare(keys[a.Index])
	})
	return nil
}

func recencyKey(entry any) (time.Time, bool) {
	dated, ok := entry.(types.Dated)
	if !ok {
		return time.Time{}, false
	}
	return dated.RecencyKey()
}
