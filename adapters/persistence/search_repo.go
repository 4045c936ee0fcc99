package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/internal/domain/search"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type postgresSearchRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSearchRepo(db *pgxpool.Pool, logger logger.Logger) search.Repository {
	return &postgresSearchRepo{db: db, logger: logger}
}

// Search matches against the trigger-maintained tsvector covering name, bio,
// education, project titles/descriptions, and work company/position.
func (r *postgresSearchRepo) Search(ctx context.Context, query string) ([]search.Result, error) {
	sql := `
	SELECT ` + profileColumns + `,
		ts_rank_cd(ts, plainto_tsquery('simple', $1)) AS rank
	FROM profiles
	WHERE ts @@ plainto_tsquery('simple', $1)
	ORDER BY rank DESC
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute profile search", err)
	}
	defer rows.Close()

	results := make([]search.Result, 0)
	for rows.Next() {
		p := &profile.Profile{}
		var educationBytes, skillsBytes, projectsBytes, workBytes, linksBytes, ratingBytes []byte
		var rank float32

		if err := rows.Scan(
			&p.ID, &p.Username, &p.Name, &p.Email, &p.Title, &p.Bio,
			&educationBytes, &skillsBytes, &projectsBytes, &workBytes, &linksBytes, &ratingBytes,
			&p.CreatedAt, &p.UpdatedAt, &rank,
		); err != nil {
			return nil, apperror.NewInternal("failed to scan search result", err)
		}

		unmarshalDocumentFields(p, educationBytes, skillsBytes, projectsBytes, workBytes, linksBytes, ratingBytes, r.logger)
		results = append(results, search.Result{Profile: p, Rank: rank})
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating search results", err)
	}
	return results, nil
}
