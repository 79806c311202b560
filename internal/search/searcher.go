// Package search implements the evidence client: web search queries that
// return normalized evidence snippets.
package search

import (
	"context"
	"errors"

	"github.com/sago-ai/sago/internal/model"
)

// ErrUnavailable indicates the search provider could not be reached or
// answered with an error. Zero results is not an error.
var ErrUnavailable = errors.New("search provider unavailable")

// Searcher issues one query and returns ranked evidence snippets
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Evidence, error)
}
