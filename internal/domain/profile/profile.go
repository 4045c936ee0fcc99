package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTitle = "Full Stack Developer"

const maxBioLength = 1000

var (
	ErrInvalidUsername = errors.New("username must be 3-30 characters of lowercase letters, numbers, hyphens, and underscores")
	ErrInvalidEmail    = errors.New("please provide a valid email address")
	ErrBioTooLong      = errors.New("bio must be at most 1000 characters")
	ErrNegativeRating  = errors.New("skill ratings must not be negative")

	usernameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Field       string `json:"field,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

type Links struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Email     string `json:"email,omitempty"`
}

type ProjectLinks struct {
	GitHub string `json:"github,omitempty"`
	Live   string `json:"live,omitempty"`
	Demo   string `json:"demo,omitempty"`
}

type Project struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Links        ProjectLinks `json:"links"`
	Technologies []string     `json:"technologies"`
	Featured     bool         `json:"featured"`
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("project title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("project description is required")
	}
	return nil
}

type WorkEntry struct {
	ID           uuid.UUID `json:"id"`
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Duration     string    `json:"duration"`
	Description  string    `json:"description,omitempty"`
	Technologies []string  `json:"technologies"`
}

func (w *WorkEntry) Validate() error {
	if strings.TrimSpace(w.Company) == "" {
		return errors.New("work entry company is required")
	}
	if strings.TrimSpace(w.Position) == "" {
		return errors.New("work entry position is required")
	}
	if strings.TrimSpace(w.Duration) == "" {
		return errors.New("work entry duration is required")
	}
	return nil
}

// Profile is the root aggregate. Projects and work entries live inside the
// document and are only ever mutated through a parent profile save.
type Profile struct {
	ID        uuid.UUID          `json:"id"`
	Username  string             `json:"username"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Title     string             `json:"title"`
	Bio       string             `json:"bio,omitempty"`
	Education *Education         `json:"education,omitempty"`
	Skills    []string           `json:"skills"`
	Projects  []Project          `json:"projects"`
	Work      []WorkEntry        `json:"work"`
	Links     Links              `json:"links"`
	Rating    map[string]float64 `json:"rating"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Normalize lowercases the unique keys and trims skill entries. Duplicate
// skills are the caller's responsibility.
func (p *Profile) Normalize() {
	p.Username = strings.ToLower(strings.TrimSpace(p.Username))
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Name = strings.TrimSpace(p.Name)
	for i, s := range p.Skills {
		p.Skills[i] = strings.TrimSpace(s)
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
}

func (p *Profile) Validate() error {
	if !usernameRegex.MatchString(p.Username) {
		return ErrInvalidUsername
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Bio) > maxBioLength {
		return ErrBioTooLong
	}
	for i := range p.Projects {
		if err := p.Projects[i].Validate(); err != nil {
			return fmt.Errorf("projects[%d]: %w", i, err)
		}
	}
	for i := range p.Work {
		if err := p.Work[i].Validate(); err != nil {
			return fmt.Errorf("work[%d]: %w", i, err)
		}
	}
	return ValidateRating(p.Rating)
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidateRating(rating map[string]float64) error {
	for _, v := range rating {
		if v < 0 {
			return ErrNegativeRating
		}
	}
	return nil
}

// EnsureSubIDs assigns identifiers to embedded entries that do not have one
// yet. Sub-entity ids are generated at insertion and stay stable afterwards.
func (p *Profile) EnsureSubIDs() {
	for i := range p.Projects {
		if p.Projects[i].ID == uuid.Nil {
			p.Projects[i].ID = uuid.New()
		}
	}
	for i := range p.Work {
		if p.Work[i].ID == uuid.Nil {
			p.Work[i].ID = uuid.New()
		}
	}
}

// ProjectIndex returns the position of the embedded project, or -1.
func (p *Profile) ProjectIndex(id uuid.UUID) int {
	for i := range p.Projects {
		if p.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// Summary is the projection returned by the directory listing. Full projects,
// work history, and ratings are deliberately left out.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Title    string    `json:"title"`
	Bio      string    `json:"bio,omitempty"`
	Skills   []string  `json:"skills"`
	Links    Links     `json:"links"`
}

// Update carries a partial profile update. Nil fields are left untouched;
// set fields replace the stored value wholesale (no deep merge).
type Update struct {
	Name      *string
	Email     *string
	Title     *string
	Bio       *string
	Education *Education
	Skills    []string
	Projects  []Project
	Work      []WorkEntry
	Links     *Links
	Rating    map[string]float64
}

// Repository is the profile store. Implementations enforce username/email
// uniqueness; relevance-ranked text search lives in the search package.
type Repository interface {
	Insert(ctx context.Context, p *Profile) (*Profile, error)
	FindByUsername(ctx context.Context, username string) (*Profile, error)
	FindAll(ctx context.Context) ([]Summary, error)
	// FindFirst returns the oldest profile. Only the legacy single-profile
	// routes use it.
	FindFirst(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	// Save persists the whole document. Sub-entity mutations go through it.
	Save(ctx context.Context, p *Profile) error
}
