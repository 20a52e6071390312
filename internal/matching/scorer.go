package matching

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/portfolio-ranker/internal/sliceutil"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// UndeclaredRolesScore is added for entries that declare no role references,
// so they rank above entries whose declared roles match nothing.
const UndeclaredRolesScore = 1.0

// Match describes the outcome of scoring one candidate axis.
type Match struct {
	Score float64 `json:"score"`
	// Matcher is the winning matcher, nil when nothing matched.
	Matcher *Matcher `json:"-"`
	// RoleIndex is the position of the winning role in [role, role.Matches...], -1 when nothing matched.
	RoleIndex int `json:"role_index"`
	// Candidate is the text the winning matcher matched.
	Candidate string `json:"candidate,omitempty"`
	// Excluded lists candidates vetoed by an exclusion pattern.
	Excluded []string `json:"excluded,omitempty"`
}

// Breakdown is the per-axis detail behind an entry's raw score.
type Breakdown struct {
	Topic      Match   `json:"topic"`
	Roles      Match   `json:"roles"`
	Undeclared bool    `json:"undeclared"`
	Total      float64 `json:"total"`
}

func noMatch() Match {
	return Match{RoleIndex: -1}
}

func (s *MatcherSet) excludedBy(text string) bool {
	for i := range s.Exclusions {
		if s.Exclusions[i].MatchString(text) {
			return true
		}
	}
	return false
}

// MatchText scores a single label. A label matching any exclusion scores 0.
func (s *MatcherSet) MatchText(text string) Match {
	if s.excludedBy(text) {
		m := noMatch()
		m.Excluded = []string{text}
		return m
	}
	return s.best([]string{text})
}

// MatchList scores a list of role references. References matching an
// exclusion are dropped before matching.
func (s *MatcherSet) MatchList(candidates []string) Match {
	remaining := candidates
	var excluded []string
	if len(s.Exclusions) > 0 {
		remaining, excluded = sliceutil.Partition(candidates, func(c string) bool { return !s.excludedBy(c) })
	}

	m := s.best(remaining)
	m.Excluded = excluded
	return m
}

// best finds, for each role, the highest-weight matcher that matches any
// candidate, then keeps the best role. Roles do not add up.
func (s *MatcherSet) best(candidates []string) Match {
	if len(candidates) == 0 || len(s.Roles) == 0 {
		return noMatch()
	}

	perRole := make([]Match, len(s.Roles))
	scores := make([]float64, len(s.Roles))

	for ri, matchers := range s.Roles {
		perRole[ri] = noMatch()
		for mi := range matchers {
			matcher := &matchers[mi]
			if perRole[ri].Matcher != nil && matcher.Weight <= perRole[ri].Score {
				continue
			}
			for _, candidate := range candidates {
				if matcher.MatchString(candidate) {
					perRole[ri] = Match{
						Score:     matcher.Weight,
						Matcher:   matcher,
						RoleIndex: ri,
						Candidate: candidate,
					}
					break
				}
			}
		}
		scores[ri] = perRole[ri].Score
	}

	return perRole[sliceutil.IndexOfMax(scores)]
}

// ScoreEntry combines the topic axis and the role-reference axis into one raw score.
func (s *MatcherSet) ScoreEntry(entry types.Scoreable) Breakdown {
	b := Breakdown{Topic: noMatch(), Roles: noMatch()}

	if topic := entry.Topic(); topic != "" {
		b.Topic = s.MatchText(topic)
		b.Total += b.Topic.Score
	}

	if refs := entry.RoleReferences(); refs != nil {
		b.Roles = s.MatchList(refs)
		b.Total += b.Roles.Score
	} else {
		b.Undeclared = true
		b.Total += UndeclaredRolesScore
	}

	return b
}

// Scorer scores entries against a matcher set and optionally traces the winning matchers.
type Scorer struct {
	set    *MatcherSet
	logger *zap.Logger
}

// NewScorer creates a Scorer. A nil logger disables tracing.
func NewScorer(set *MatcherSet, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{set: set, logger: logger}
}

// Set returns the matcher set the scorer uses.
func (sc *Scorer) Set() *MatcherSet {
	return sc.set
}

// Score returns the entry's raw score.
func (sc *Scorer) Score(entry types.Scoreable) float64 {
	b := sc.set.ScoreEntry(entry)
	sc.trace(entry, b)
	return b.Total
}

// trace logs which matchers produced the score. It never affects the result.
func (sc *Scorer) trace(entry types.Scoreable, b Breakdown) {
	defer func() { _ = recover() }()

	ce := sc.logger.Check(zapcore.DebugLevel, "scored entry")
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("role", sc.set.Role),
		zap.Float64("score", b.Total),
		zap.Bool("undeclared_roles", b.Undeclared),
	}
	if id, ok := entry.(types.Identifiable); ok {
		fields = append(fields, zap.String("entry", id.Identity()))
	}
	if b.Topic.Matcher != nil {
		fields = append(fields, zap.Stringer("topic_matcher", b.Topic.Matcher))
	}
	if b.Roles.Matcher != nil {
		fields = append(fields,
			zap.Stringer("role_matcher", b.Roles.Matcher),
			zap.String("matched_reference", b.Roles.Candidate),
		)
	}
	if len(b.Topic.Excluded)+len(b.Roles.Excluded) > 0 {
		excluded := make([]string, 0, len(b.Topic.Excluded)+len(b.Roles.Excluded))
		excluded = append(excluded, b.Topic.Excluded...)
		fields = append(fields, zap.Strings("excluded", append(excluded, b.Roles.Excluded...)))
	}
	ce.Write(fields...)
}
