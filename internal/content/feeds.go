package content

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/numeric"
	"github.com/jonathan/portfolio-ranker/internal/ranking"
	"github.com/jonathan/portfolio-ranker/internal/sliceutil"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// DefaultTechThreshold keeps only tech ranked strictly above this bucket.
const DefaultTechThreshold = 7

// rawScoreStep is the precision raw scores are reported with.
const rawScoreStep = 0.001

// DefaultThreshold returns the threshold a collection is shown with when the caller gives none.
func DefaultThreshold(collection Collection) int {
	if collection == CollectionTech {
		return DefaultTechThreshold
	}
	return 0
}

// FeedOptions controls how a collection is filtered and ranked.
type FeedOptions struct {
	Threshold int
	Weights   matching.Weights
	Cache     *matching.Cache
	Logger    *zap.Logger
	// Exclude lists entry IDs left out of post feeds.
	Exclude []string
	// IncludeDrafts keeps draft posts.
	IncludeDrafts bool
	// AllProjects counts school items with projects as work experience.
	AllProjects bool
}

func (o FeedOptions) ranking(threshold int, sorted bool) ranking.Options {
	return ranking.Options{
		Threshold: threshold,
		Sorted:    sorted,
		Weights:   o.Weights,
		Cache:     o.Cache,
		Logger:    o.Logger,
	}
}

// Post is a dated document that can be drafted.
type Post interface {
	types.Scoreable
	types.Dated
	types.Identifiable
	IsDraft() bool
}

// SortedPosts drops drafts and excluded posts, then ranks the rest for role
// with each tier ordered latest first.
func SortedPosts[P Post](posts []P, role *types.Role, opts FeedOptions) ([]ranking.Scored[P], error) {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, id := range opts.Exclude {
		excluded[entryKey(id)] = true
	}

	visible := make([]P, 0, len(posts))
	for _, post := range posts {
		if (post.IsDraft() && !opts.IncludeDrafts) || excluded[entryKey(post.Identity())] {
			continue
		}
		visible = append(visible, post)
	}

	// Latest first, so tiers that merge keep date order
	slices.SortStableFunc(visible, func(a, b P) int {
		at, _ := a.RecencyKey()
		bt, _ := b.RecencyKey()
		return bt.Compare(at)
	})

	return ranking.RankScored(visible, role, opts.ranking(opts.Threshold, true))
}

// RankTech ranks tech for role and filters each tech's role-bound
// functionalities by their own ranking with the same threshold. Plain
// functionalities are always kept; kept role-bound ones become plain.
func RankTech(tech []Tech, role *types.Role, opts FeedOptions) ([]ranking.Scored[Tech], error) {
	ranked, err := ranking.RankScored(tech, role, opts.ranking(opts.Threshold, false))
	if err != nil {
		return nil, err
	}

	for i := range ranked {
		functionalities, err := filterFunctionalities(ranked[i].Entry.Functionalities, role, opts)
		if err != nil {
			return nil, err
		}
		ranked[i].Entry.Functionalities = functionalities
	}
	return ranked, nil
}

func filterFunctionalities(functionalities []Functionality, role *types.Role, opts FeedOptions) ([]Functionality, error) {
	var bound []Functionality
	var positions []int
	for i, f := range functionalities {
		if f.RoleBound {
			bound = append(bound, f)
			positions = append(positions, i)
		}
	}
	if len(bound) == 0 {
		return functionalities, nil
	}

	matched, err := ranking.RankScored(bound, role, opts.ranking(opts.Threshold, false))
	if err != nil {
		return nil, err
	}
	kept := make(map[int]bool, len(matched))
	for _, m := range matched {
		kept[positions[m.Index]] = true
	}

	filtered := make([]Functionality, 0, len(functionalities))
	for i, f := range functionalities {
		switch {
		case !f.RoleBound:
			filtered = append(filtered, f)
		case kept[i]:
			filtered = append(filtered, Functionality{ID: f.ID, DontTranslateID: f.DontTranslateID})
		}
	}
	return filtered, nil
}

// KnowHowItem is a know-how entry shown with its best-matching skill.
type KnowHowItem struct {
	KnowHow
	Skill Skill
	// SkillBucket is the tier the shown skill reached for the role.
	SkillBucket int
	// CountAsExperience places the item under experience rather than education.
	CountAsExperience bool
}

// KnowHowGroups splits know-how into work experience and education.
type KnowHowGroups struct {
	Experience []KnowHowItem `json:"experience,omitempty"`
	Education  []KnowHowItem `json:"education,omitempty"`
}

// RankKnowHow picks the best-matching skill of every item for role.
//
// A school item whose skills count as work is shown twice: under experience
// with its best work skill, and under education with its best remaining skill.
// When no skill remains for education, only the experience item is shown.
// Items are ordered by end date, ongoing items first.
func RankKnowHow(items []KnowHow, role *types.Role, opts FeedOptions) (*KnowHowGroups, error) {
	displayed := make([]KnowHowItem, 0, len(items))
	var moved []KnowHowItem

	for _, item := range items {
		skills, err := ranking.RankScored(item.Skills, role, opts.ranking(0, false))
		if err != nil {
			return nil, err
		}
		if len(skills) == 0 {
			continue
		}

		shown := KnowHowItem{
			KnowHow:           item,
			Skill:             skills[0].Entry,
			SkillBucket:       skills[0].Bucket,
			CountAsExperience: !item.School,
		}

		if item.School {
			work, rest := sliceutil.Partition(skills, func(s ranking.Scored[Skill]) bool {
				return s.Entry.CountAsWork || (opts.AllProjects && len(item.Projects) > 0)
			})
			if len(work) > 0 {
				moved = append(moved, KnowHowItem{
					KnowHow:           item,
					Skill:             work[0].Entry,
					SkillBucket:       work[0].Bucket,
					CountAsExperience: true,
				})
				if len(rest) == 0 {
					continue
				}
				shown.Skill = rest[0].Entry
				shown.SkillBucket = rest[0].Bucket
			}
		}

		displayed = append(displayed, shown)
	}
	displayed = append(displayed, moved...)

	slices.SortStableFunc(displayed, func(a, b KnowHowItem) int {
		return compareEnd(a.End, b.End)
	})

	experience, education := sliceutil.Partition(displayed, func(item KnowHowItem) bool { return item.CountAsExperience })
	return &KnowHowGroups{Experience: experience, Education: education}, nil
}

// compareEnd orders ongoing items first, then latest end first.
func compareEnd(a, b *Date) int {
	at, aok := dateOf(a)
	bt, bok := dateOf(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return bt.Compare(at)
	}
}

// Feed ranks one collection for role and flattens it into a types.RankedFeed.
func (l *Library) Feed(collection Collection, role *types.Role, opts FeedOptions) (*types.RankedFeed, error) {
	feed := &types.RankedFeed{
		Role:       role.ID,
		Collection: string(collection),
		Threshold:  opts.Threshold,
		Entries:    []types.RankedEntry{},
	}

	switch collection {
	case CollectionProjects:
		ranked, err := SortedPosts(l.Projects, role, opts)
		if err != nil {
			return nil, err
		}
		for _, s := range ranked {
			p := s.Entry
			feed.Entries = append(feed.Entries, types.RankedEntry{
				ID:       p.ID,
				Title:    p.DisplayTitle(),
				Topic:    p.Topic(),
				Bucket:   s.Bucket,
				RawScore: numeric.RoundTo(s.Raw, rawScoreStep),
				Roles:    p.Roles,
				Date:     formatRecency(p),
				Details: map[string]any{
					"category":       p.DisplayCategory(),
					"highlight":      p.Highlight,
					"tech":           p.Tech,
					"download_links": p.DownloadLinks,
				},
			})
		}

	case CollectionThoughts:
		ranked, err := SortedPosts(l.Thoughts, role, opts)
		if err != nil {
			return nil, err
		}
		for _, s := range ranked {
			t := s.Entry
			feed.Entries = append(feed.Entries, types.RankedEntry{
				ID:       t.ID,
				Title:    t.DisplayTitle(),
				Bucket:   s.Bucket,
				RawScore: numeric.RoundTo(s.Raw, rawScoreStep),
				Date:     formatRecency(t),
				Details:  map[string]any{"highlight": t.Highlight},
			})
		}

	case CollectionTech:
		ranked, err := RankTech(l.Tech, role, opts)
		if err != nil {
			return nil, err
		}
		for _, s := range ranked {
			t := s.Entry
			details := map[string]any{"functionalities": t.FunctionalityIDs()}
			if d, err := ParseDuration(t.Experience); err == nil {
				details["experience"] = Capitalize(d.Humanize())
			}
			if t.Group != "" {
				details["group"] = t.Group
			}
			feed.Entries = append(feed.Entries, types.RankedEntry{
				ID:       t.ID,
				Title:    Capitalize(t.ID),
				Topic:    t.Topic(),
				Bucket:   s.Bucket,
				RawScore: numeric.RoundTo(s.Raw, rawScoreStep),
				Roles:    t.Roles,
				Details:  details,
			})
		}

	case CollectionKnowHow:
		groups, err := RankKnowHow(l.KnowHow, role, opts)
		if err != nil {
			return nil, err
		}
		feed.Threshold = 0
		appendKnowHow := func(section string, items []KnowHowItem) {
			for _, item := range items {
				details := map[string]any{
					"section": section,
					"skill":   item.Skill.Job,
					"start":   formatDate(item.Start),
					"ongoing": item.Ongoing(),
				}
				if item.End != nil {
					details["end"] = formatDate(item.End)
				}
				if item.Location != "" {
					details["location"] = item.Location
				}
				feed.Entries = append(feed.Entries, types.RankedEntry{
					ID:      item.ID,
					Title:   item.ID,
					Bucket:  item.SkillBucket,
					Roles:   []string{item.Skill.Job},
					Date:    formatDate(item.Start),
					Details: details,
				})
			}
		}
		appendKnowHow("experience", groups.Experience)
		appendKnowHow("education", groups.Education)

	default:
		return nil, &UnknownCollectionError{Collection: string(collection)}
	}

	return feed, nil
}

func formatRecency(d types.Dated) string {
	t, ok := d.RecencyKey()
	if !ok {
		return ""
	}
	return Date{Time: t.In(time.UTC)}.String()
}

func formatDate(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
