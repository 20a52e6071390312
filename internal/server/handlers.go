package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/rendering"
	"github.com/jonathan/portfolio-ranker/internal/roles"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

// RoleResponse represents one role in the /roles response
type RoleResponse struct {
	ID            string   `json:"id"`
	Path          string   `json:"path"`
	HomepageTitle string   `json:"homepage_title,omitempty"`
	Matches       []string `json:"matches,omitempty"`
	NotMatches    []string `json:"not_matches,omitempty"`
	Default       bool     `json:"default"`
}

// handleListRoles returns the role catalog in order
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	catalog := s.library.Roles
	defaultRole := catalog.Default()

	all := catalog.All()
	response := make([]RoleResponse, 0, len(all))
	for _, role := range all {
		response = append(response, RoleResponse{
			ID:            role.ID,
			Path:          roles.MakePath(role.ID),
			HomepageTitle: role.HomepageTitle,
			Matches:       role.MatchIDs(),
			NotMatches:    role.NotMatchIDs(),
			Default:       role == defaultRole,
		})
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// handleFeed returns one collection ranked for the role named in the path,
// or for the default role when the path names none
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	role, err := s.resolveRole(chi.URLParam(r, "role"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	collection, err := content.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	opts, err := s.feedOptions(r, collection)
	if err != nil {
		s.handleError(w, err)
		return
	}

	feed, err := s.library.Feed(collection, role, opts)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.metrics.feedEntries.WithLabelValues(string(collection)).Observe(float64(len(feed.Entries)))

	if r.URL.Query().Get("format") == "html" {
		s.htmlFeed(w, r, feed)
		return
	}

	s.jsonResponse(w, http.StatusOK, feed)
}

// htmlFeed renders feed as an HTML fragment with role-prefixed links
func (s *Server) htmlFeed(w http.ResponseWriter, r *http.Request, feed *types.RankedFeed) {
	html, err := rendering.RenderFeed(feed, rendering.Options{
		TemplatePath: s.cfg.TemplatePath,
		Link: func(link string) string {
			return s.library.Roles.LinkWithRole(r.URL.Path, link)
		},
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		s.logger.Error("failed to write HTML response", zap.Error(err))
	}
}

// resolveRole looks up a role by its URL slug; an empty slug selects the default role
func (s *Server) resolveRole(slug string) (*types.Role, error) {
	if slug == "" {
		return s.library.Roles.Default(), nil
	}
	role, ok := s.library.Roles.ByPath(slug)
	if !ok {
		return nil, &ErrRoleNotFound{Path: slug}
	}
	return role, nil
}

// feedOptions builds ranking options from the query string:
// threshold (0-10), exclude (comma-separated IDs) and all_projects
func (s *Server) feedOptions(r *http.Request, collection content.Collection) (content.FeedOptions, error) {
	query := r.URL.Query()

	opts := content.FeedOptions{
		Threshold: s.defaultThreshold(collection),
		Weights:   s.cfg.Weights,
		Cache:     s.cache,
		Logger:    s.logger,
	}

	if raw := query.Get("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold < 0 || threshold > 10 {
			return opts, &ErrValidation{Field: "threshold", Message: "must be an integer between 0 and 10"}
		}
		opts.Threshold = threshold
	}

	if raw := query.Get("exclude"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.Exclude = append(opts.Exclude, id)
			}
		}
	}

	if raw := query.Get("all_projects"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, &ErrValidation{Field: "all_projects", Message: "must be a boolean"}
		}
		opts.AllProjects = all
	}

	return opts, nil
}

func (s *Server) defaultThreshold(collection content.Collection) int {
	if collection == content.CollectionTech {
		return s.cfg.TechThreshold
	}
	return s.cfg.Threshold
}
