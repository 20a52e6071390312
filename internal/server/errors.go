// Package server provides the HTTP API serving role-ranked portfolio feeds.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/ranking"
)

// ErrRoleNotFound indicates a role path that names no role in the catalog
type ErrRoleNotFound struct {
	Path string
}

func (e *ErrRoleNotFound) Error() string {
	return fmt.Sprintf("role not found: %s", e.Path)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		roleNotFound      *ErrRoleNotFound
		unknownCollection *content.UnknownCollectionError
		validation        *ErrValidation
		threshold         *ranking.ThresholdError
		invalidRole       *matching.InvalidRoleError
	)

	switch {
	case errors.As(err, &roleNotFound), errors.As(err, &unknownCollection):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &threshold):
		return http.StatusBadRequest
	case errors.As(err, &invalidRole):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
