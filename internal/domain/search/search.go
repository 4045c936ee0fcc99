package search

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
)

// Result is a profile matched by the full-text index together with its
// relevance rank.
type Result struct {
	Profile *profile.Profile `json:"profile"`
	Rank    float32          `json:"score"`
}

type Repository interface {
	// Search runs the store's text index over name, bio, education, project
	// titles/descriptions, and work company/position, ranked by relevance
	// descending.
	Search(ctx context.Context, query string) ([]Result, error)
}
