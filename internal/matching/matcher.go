package matching

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/portfolio-ranker/internal/sliceutil"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// nonWord matches a rune that cannot be part of a word. It stands in for \b,
// which in RE2 is ASCII-only and never matches next to symbols such as "C++".
const nonWord = `[^\p{L}\p{N}_]`

// Matcher is a compiled phrase pattern plus its specificity weight.
type Matcher struct {
	// Phrase is the sub-selection of role words the pattern matches.
	Phrase string
	// Words is the number of words in Phrase.
	Words int
	// Weight is the score a candidate earns when this matcher wins.
	Weight float64
	// Role is the role phrase the matcher was derived from.
	Role string

	pattern *regexp.Regexp
}

// MatchString reports whether text contains the matcher's phrase on word boundaries, ignoring case.
func (m *Matcher) MatchString(text string) bool {
	return m.pattern.MatchString(text)
}

func (m *Matcher) String() string {
	return fmt.Sprintf("%q (%.3f)", m.Phrase, m.Weight)
}

// compilePhrase builds a case-insensitive, word-bounded pattern for words.
// Words are data, so every regexp metacharacter is escaped.
func compilePhrase(words []string) (*regexp.Regexp, error) {
	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = regexp.QuoteMeta(word)
	}

	expr := `(?i)(?:^|` + nonWord + `)` + strings.Join(quoted, `\s+`) + `(?:$|` + nonWord + `)`
	return regexp.Compile(expr)
}

// BuildRoleMatchers expands one role phrase into its ordered matchers.
//
// position is the role's index within [role, role.Matches...] and count is the
// length of that sequence. Matchers are ordered from most words to fewest; for
// multi-word phrases the first two single-word matchers are swapped so the
// leading specialization word ("game" in "game designer") is tried before the
// trailing profession word.
func BuildRoleMatchers(phrase string, position, count int, weights Weights) ([]Matcher, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, &InvalidRoleError{Phrase: phrase, Message: "phrase has no words"}
	}

	weights = weights.OrDefault()
	multiplier := weights.priorityMultiplier(position, count)
	bySize := sliceutil.GroupBy(sliceutil.Combinations(words), func(c []string) int { return len(c) })

	matchers := make([]Matcher, 0, (1<<len(words))-1)
	for size := len(words); size > 0; size-- {
		for _, combination := range bySize[size] {
			pattern, err := compilePhrase(combination)
			if err != nil {
				return nil, &InvalidRoleError{Phrase: phrase, Message: err.Error()}
			}

			matchers = append(matchers, Matcher{
				Phrase:  strings.Join(combination, " "),
				Words:   size,
				Weight:  weights.Specificity.Apply(size) * multiplier,
				Role:    phrase,
				pattern: pattern,
			})
		}
	}

	if len(words) > 1 {
		firstWord := len(matchers) - len(words)
		sliceutil.Swap(matchers, firstWord, firstWord+1)
	}

	return matchers, nil
}

// MatcherSet holds the matchers for every role under consideration plus the exclusion patterns.
type MatcherSet struct {
	// Role is the primary role phrase.
	Role string
	// Roles holds one ordered matcher list per role in [role, role.Matches...].
	Roles [][]Matcher
	// Exclusions holds one matcher per excluded role phrase.
	Exclusions []Matcher
}

// BuildMatchers builds the matcher set for role and its additional and excluded roles.
func BuildMatchers(role *types.Role, weights Weights) (*MatcherSet, error) {
	if role == nil {
		return nil, &InvalidRoleError{Message: "role is nil"}
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	sequence := role.Sequence()
	set := &MatcherSet{
		Role:  role.ID,
		Roles: make([][]Matcher, 0, len(sequence)),
	}

	for position, r := range sequence {
		matchers, err := BuildRoleMatchers(r.ID, position, len(sequence), weights)
		if err != nil {
			return nil, err
		}
		set.Roles = append(set.Roles, matchers)
	}

	for _, excluded := range role.NotMatches {
		words := strings.Fields(excluded.ID)
		if len(words) == 0 {
			return nil, &InvalidRoleError{Phrase: excluded.ID, Message: "excluded phrase has no words"}
		}

		pattern, err := compilePhrase(words)
		if err != nil {
			return nil, &InvalidRoleError{Phrase: excluded.ID, Message: err.Error()}
		}

		set.Exclusions = append(set.Exclusions, Matcher{
			Phrase:  strings.Join(words, " "),
			Words:   len(words),
			Role:    excluded.ID,
			pattern: pattern,
		})
	}

	return set, nil
}
