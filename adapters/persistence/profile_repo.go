package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

const profileColumns = "id, username, name, email, title, bio, education, skills, projects, work, links, rating, created_at, updated_at"

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var educationBytes, skillsBytes, projectsBytes, workBytes, linksBytes, ratingBytes []byte

	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Name,
		&p.Email,
		&p.Title,
		&p.Bio,
		&educationBytes,
		&skillsBytes,
		&projectsBytes,
		&workBytes,
		&linksBytes,
		&ratingBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Profile", "")
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	unmarshalDocumentFields(p, educationBytes, skillsBytes, projectsBytes, workBytes, linksBytes, ratingBytes, l)
	return p, nil
}

func unmarshalDocumentFields(p *profile.Profile, education, skills, projects, work, links, rating []byte, l logger.Logger) {
	if len(education) > 0 {
		if err := json.Unmarshal(education, &p.Education); err != nil {
			l.Warn("failed to unmarshal education", zap.String("profile_id", p.ID.String()), zap.Error(err))
			p.Education = nil
		}
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		l.Warn("failed to unmarshal skills", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(projects, &p.Projects); err != nil {
		l.Warn("failed to unmarshal projects", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Projects = []profile.Project{}
	}
	if err := json.Unmarshal(work, &p.Work); err != nil {
		l.Warn("failed to unmarshal work", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Work = []profile.WorkEntry{}
	}
	if err := json.Unmarshal(links, &p.Links); err != nil {
		l.Warn("failed to unmarshal links", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Links = profile.Links{}
	}
	if err := json.Unmarshal(rating, &p.Rating); err != nil {
		l.Warn("failed to unmarshal rating", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Rating = map[string]float64{}
	}
}

type documentBytes struct {
	education, skills, projects, work, links, rating []byte
}

func marshalDocumentFields(p *profile.Profile) (documentBytes, error) {
	var d documentBytes
	var err error

	if p.Education != nil {
		if d.education, err = json.Marshal(p.Education); err != nil {
			return d, apperror.NewInternal("failed to marshal education", err)
		}
	}
	if d.skills, err = json.Marshal(emptyIfNilStrings(p.Skills)); err != nil {
		return d, apperror.NewInternal("failed to marshal skills", err)
	}
	if p.Projects == nil {
		p.Projects = []profile.Project{}
	}
	if d.projects, err = json.Marshal(p.Projects); err != nil {
		return d, apperror.NewInternal("failed to marshal projects", err)
	}
	if p.Work == nil {
		p.Work = []profile.WorkEntry{}
	}
	if d.work, err = json.Marshal(p.Work); err != nil {
		return d, apperror.NewInternal("failed to marshal work", err)
	}
	if d.links, err = json.Marshal(p.Links); err != nil {
		return d, apperror.NewInternal("failed to marshal links", err)
	}
	if p.Rating == nil {
		p.Rating = map[string]float64{}
	}
	if d.rating, err = json.Marshal(p.Rating); err != nil {
		return d, apperror.NewInternal("failed to marshal rating", err)
	}
	return d, nil
}

func emptyIfNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// duplicateField maps a unique-violation constraint to the offending field.
func duplicateField(pgErr *pgconn.PgError) string {
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return "username"
	case strings.Contains(pgErr.ConstraintName, "email"):
		return "email"
	}
	return "value"
}

func (r *postgresProfileRepo) Insert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	doc, err := marshalDocumentFields(p)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO profiles (id, username, name, email, title, bio, education, skills, projects, work, links, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.Username, p.Name, p.Email, p.Title, p.Bio,
		doc.education, doc.skills, doc.projects, doc.work, doc.links, doc.rating,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperror.NewDuplicate(duplicateField(pgErr))
		}
		return nil, apperror.NewInternal("failed to insert profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByUsername(ctx context.Context, username string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	row := r.db.QueryRow(ctx, query, strings.ToLower(username))
	return scanProfile(row, r.logger)
}

func (r *postgresProfileRepo) FindFirst(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC LIMIT 1`
	row := r.db.QueryRow(ctx, query)
	return scanProfile(row, r.logger)
}

func (r *postgresProfileRepo) FindAll(ctx context.Context) ([]profile.Summary, error) {
	builder := psqlProfile.Select("id, username, name, email, title, bio, skills, links").
		From("profiles").
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	summaries := make([]profile.Summary, 0)
	for rows.Next() {
		var s profile.Summary
		var skillsBytes, linksBytes []byte
		if err := rows.Scan(&s.ID, &s.Username, &s.Name, &s.Email, &s.Title, &s.Bio, &skillsBytes, &linksBytes); err != nil {
			return nil, apperror.NewInternal("failed to scan profile summary", err)
		}
		if err := json.Unmarshal(skillsBytes, &s.Skills); err != nil {
			s.Skills = []string{}
		}
		if err := json.Unmarshal(linksBytes, &s.Links); err != nil {
			s.Links = profile.Links{}
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return summaries, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, id uuid.UUID, upd profile.Update) error {
	builder := psqlProfile.Update("profiles").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})

	if upd.Name != nil {
		builder = builder.Set("name", *upd.Name)
	}
	if upd.Email != nil {
		builder = builder.Set("email", strings.ToLower(*upd.Email))
	}
	if upd.Title != nil {
		builder = builder.Set("title", *upd.Title)
	}
	if upd.Bio != nil {
		builder = builder.Set("bio", *upd.Bio)
	}
	if upd.Education != nil {
		educationBytes, err := json.Marshal(upd.Education)
		if err != nil {
			return apperror.NewInternal("failed to marshal education", err)
		}
		builder = builder.Set("education", educationBytes)
	}
	if upd.Skills != nil {
		skillsBytes, err := json.Marshal(upd.Skills)
		if err != nil {
			return apperror.NewInternal("failed to marshal skills", err)
		}
		builder = builder.Set("skills", skillsBytes)
	}
	if upd.Projects != nil {
		projectsBytes, err := json.Marshal(upd.Projects)
		if err != nil {
			return apperror.NewInternal("failed to marshal projects", err)
		}
		builder = builder.Set("projects", projectsBytes)
	}
	if upd.Work != nil {
		workBytes, err := json.Marshal(upd.Work)
		if err != nil {
			return apperror.NewInternal("failed to marshal work", err)
		}
		builder = builder.Set("work", workBytes)
	}
	if upd.Links != nil {
		linksBytes, err := json.Marshal(upd.Links)
		if err != nil {
			return apperror.NewInternal("failed to marshal links", err)
		}
		builder = builder.Set("links", linksBytes)
	}
	if upd.Rating != nil {
		ratingBytes, err := json.Marshal(upd.Rating)
		if err != nil {
			return apperror.NewInternal("failed to marshal rating", err)
		}
		builder = builder.Set("rating", ratingBytes)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update query", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate(duplicateField(pgErr))
		}
		return apperror.NewInternal("failed to update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Profile", "")
	}
	return nil
}

func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	p.UpdatedAt = time.Now().UTC()

	doc, err := marshalDocumentFields(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET name = $2, email = $3, title = $4, bio = $5, education = $6,
		    skills = $7, projects = $8, work = $9, links = $10, rating = $11,
		    updated_at = $12
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Email, p.Title, p.Bio, doc.education,
		doc.skills, doc.projects, doc.work, doc.links, doc.rating,
		p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Profile", "")
	}
	return nil
}
