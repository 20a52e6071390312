// Package ranking groups content entries into relevance tiers for a role and orders them best-first.
package ranking

import "fmt"

// MissingSortKeyError represents an entry without a recency key when sorted output was requested
type MissingSortKeyError struct {
	// Index is the entry's position in the input slice
	Index int
	// ID identifies the entry when it implements types.Identifiable
	ID string
}

func (e *MissingSortKeyError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("entry %d (%s) has no recency key", e.Index, e.ID)
	}
	return fmt.Sprintf("entry %d has no recency key", e.Index)
}

// ThresholdError represents a threshold outside the normalized bucket range
type ThresholdError struct {
	Threshold int
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold %d outside [0, %d]", e.Threshold, MaxBucket)
}
