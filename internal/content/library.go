package content

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/portfolio-ranker/internal/roles"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// Library holds validated content and the role catalog.
type Library struct {
	Roles    *roles.Catalog
	Projects []Project
	Thoughts []Thought
	Tech     []Tech
	KnowHow  []KnowHow
}

// NewLibrary validates a snapshot and resolves its role catalog.
func NewLibrary(snapshot *Snapshot) (*Library, error) {
	catalog, err := roles.NewCatalog(snapshot.Roles)
	if err != nil {
		return nil, &LoadError{Collection: string(CollectionRoles), Message: "invalid role catalog", Cause: err}
	}

	validate := validator.New()
	if err := validateAll(validate, CollectionProjects, snapshot.Projects); err != nil {
		return nil, err
	}
	if err := validateAll(validate, CollectionThoughts, snapshot.Thoughts); err != nil {
		return nil, err
	}
	if err := validateAll(validate, CollectionTech, snapshot.Tech); err != nil {
		return nil, err
	}
	if err := validateAll(validate, CollectionKnowHow, snapshot.KnowHow); err != nil {
		return nil, err
	}

	for _, p := range snapshot.Projects {
		if _, err := ParseDuration(p.DevelopmentTime); err != nil {
			return nil, &LoadError{Collection: string(CollectionProjects), Message: fmt.Sprintf("project %q", p.ID), Cause: err}
		}
	}
	if err := requireRecency(CollectionProjects, snapshot.Projects); err != nil {
		return nil, err
	}
	if err := requireRecency(CollectionThoughts, snapshot.Thoughts); err != nil {
		return nil, err
	}
	for _, t := range snapshot.Tech {
		if _, err := ParseDuration(t.Experience); err != nil {
			return nil, &LoadError{Collection: string(CollectionTech), Message: fmt.Sprintf("tech %q", t.ID), Cause: err}
		}
	}

	return &Library{
		Roles:    catalog,
		Projects: snapshot.Projects,
		Thoughts: snapshot.Thoughts,
		Tech:     snapshot.Tech,
		KnowHow:  snapshot.KnowHow,
	}, nil
}

// LoadLibrary loads a snapshot from source and builds a Library from it.
func LoadLibrary(ctx context.Context, source Source) (*Library, error) {
	snapshot, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewLibrary(snapshot)
}

func validateAll[T any](validate *validator.Validate, collection Collection, entries []T) error {
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		if err := validate.Struct(&entries[i]); err != nil {
			return &LoadError{Collection: string(collection), Message: fmt.Sprintf("invalid entry at index %d", i), Cause: err}
		}

		if id, ok := any(entries[i]).(types.Identifiable); ok {
			if seen[id.Identity()] {
				return &LoadError{Collection: string(collection), Message: fmt.Sprintf("duplicate id %q", id.Identity())}
			}
			seen[id.Identity()] = true
		}
	}
	return nil
}

// requireRecency rejects posts that SortedPosts could not order.
func requireRecency[P Post](collection Collection, posts []P) error {
	for i, p := range posts {
		if _, ok := p.RecencyKey(); !ok {
			return &LoadError{
				Collection: string(collection),
				Message:    fmt.Sprintf("entry %d (%s) has neither publishingDate nor created", i, p.Identity()),
			}
		}
	}
	return nil
}
