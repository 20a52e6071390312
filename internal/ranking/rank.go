package ranking

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-ranker/internal/logger"
	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// Options controls a ranking pass.
type Options struct {
	// Threshold drops buckets whose normalized score is not above it (0 keeps everything).
	Threshold int
	// Sorted orders each bucket by recency key, newest first.
	Sorted bool
	// Weights tunes matcher weighting; the zero value uses matching.DefaultWeights.
	Weights matching.Weights
	// Cache memoizes matcher sets across passes; nil builds them every pass.
	Cache *matching.Cache
	// Logger receives debug traces; nil disables them.
	Logger *zap.Logger
}

// RankScored ranks entries for role and returns them best-first with their scores.
func RankScored[E types.Scoreable](entries []E, role *types.Role, opts Options) ([]Scored[E], error) {
	if opts.Threshold < 0 || opts.Threshold > MaxBucket {
		return nil, &ThresholdError{Threshold: opts.Threshold}
	}

	// Build matchers for the active role
	set, err := opts.Cache.Get(role, opts.Weights.OrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to build matchers: %w", err)
	}

	if len(entries) == 0 {
		return []Scored[E]{}, nil
	}

	passLogger := logger.WithFields(opts.Logger, zap.String("pass", uuid.NewString()), zap.String("role", set.Role))

	// Score and group by raw score
	raw := Score(entries, matching.NewScorer(set, passLogger))
	maxScore := raw.Max()

	// Standardize keys onto 0-10
	normalized := raw.Normalize()

	ranked, err := normalized.Flatten(opts.Threshold, opts.Sorted)
	if err != nil {
		return nil, err
	}

	passLogger.Debug("ranked entries",
		zap.Int("entries", len(entries)),
		zap.Int("kept", len(ranked)),
		zap.Int("raw_buckets", len(raw)),
		zap.Int("buckets", len(normalized)),
		zap.Float64("max_score", maxScore),
		zap.Int("threshold", opts.Threshold),
	)

	return ranked, nil
}

// Rank ranks entries for role and returns them best-first.
func Rank[E types.Scoreable](entries []E, role *types.Role, opts Options) ([]E, error) {
	scored, err := RankScored(entries, role, opts)
	if err != nil {
		return nil, err
	}

	ranked := make([]E, len(scored))
	for i, s := range scored {
		ranked[i] = s.Entry
	}
	return ranked, nil
}
