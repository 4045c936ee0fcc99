package profile

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-api/internal/application/service"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

// memProfileRepo mimics the store contract, unique keys included.
type memProfileRepo struct {
	profiles []*profile.Profile
}

func (r *memProfileRepo) Insert(_ context.Context, p *profile.Profile) (*profile.Profile, error) {
	for _, existing := range r.profiles {
		if existing.Username == p.Username {
			return nil, apperror.NewDuplicate("username")
		}
		if existing.Email == p.Email {
			return nil, apperror.NewDuplicate("email")
		}
	}
	stored := *p
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.profiles = append(r.profiles, &stored)
	return &stored, nil
}

func (r *memProfileRepo) FindByUsername(_ context.Context, username string) (*profile.Profile, error) {
	for _, p := range r.profiles {
		if p.Username == strings.ToLower(username) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("Profile", "")
}

func (r *memProfileRepo) FindAll(_ context.Context) ([]profile.Summary, error) {
	ordered := make([]*profile.Profile, len(r.profiles))
	copy(ordered, r.profiles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	summaries := make([]profile.Summary, len(ordered))
	for i, p := range ordered {
		summaries[i] = profile.Summary{
			ID: p.ID, Username: p.Username, Name: p.Name, Email: p.Email,
			Title: p.Title, Bio: p.Bio, Skills: p.Skills, Links: p.Links,
		}
	}
	return summaries, nil
}

func (r *memProfileRepo) FindFirst(_ context.Context) (*profile.Profile, error) {
	if len(r.profiles) == 0 {
		return nil, apperror.NewNotFound("Profile", "")
	}
	clone := *r.profiles[0]
	return &clone, nil
}

func (r *memProfileRepo) Update(_ context.Context, id uuid.UUID, upd profile.Update) error {
	for _, p := range r.profiles {
		if p.ID != id {
			continue
		}
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Email != nil {
			p.Email = *upd.Email
		}
		if upd.Title != nil {
			p.Title = *upd.Title
		}
		if upd.Bio != nil {
			p.Bio = *upd.Bio
		}
		if upd.Education != nil {
			p.Education = upd.Education
		}
		if upd.Skills != nil {
			p.Skills = upd.Skills
		}
		if upd.Projects != nil {
			p.Projects = upd.Projects
		}
		if upd.Work != nil {
			p.Work = upd.Work
		}
		if upd.Links != nil {
			p.Links = *upd.Links
		}
		if upd.Rating != nil {
			p.Rating = upd.Rating
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	}
	return apperror.NewNotFound("Profile", "")
}

func (r *memProfileRepo) Save(_ context.Context, p *profile.Profile) error {
	for i, existing := range r.profiles {
		if existing.ID == p.ID {
			clone := *p
			clone.UpdatedAt = time.Now().UTC()
			r.profiles[i] = &clone
			return nil
		}
	}
	return apperror.NewNotFound("Profile", "")
}

func newTestUseCase() (*ProfileUseCase, *memProfileRepo) {
	repo := &memProfileRepo{}
	return NewProfileUseCase(repo, service.NopPublisher{}, logger.NewNop()), repo
}

func validInput(username, email string) CreateProfileInput {
	return CreateProfileInput{Profile: profile.Profile{
		Username: username,
		Name:     "Test User",
		Email:    email,
	}}
}

func TestCreateProfileNormalizesAndDefaults(t *testing.T) {
	uc, _ := newTestUseCase()

	out, err := uc.ExecuteCreate(context.Background(), validInput("VaShu", "Vashu@Example.COM"))
	require.NoError(t, err)

	assert.Equal(t, "vashu", out.Profile.Username)
	assert.Equal(t, "vashu@example.com", out.Profile.Email)
	assert.Equal(t, profile.DefaultTitle, out.Profile.Title)
	assert.NotEqual(t, uuid.Nil, out.Profile.ID)
	assert.False(t, out.Profile.CreatedAt.IsZero())
}

func TestCreateProfileDuplicateUsername(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("vashu", "first@example.com"))
	require.NoError(t, err)

	// Case-normalized collision: "VASHU" stores as "vashu".
	_, err = uc.ExecuteCreate(context.Background(), validInput("VASHU", "second@example.com"))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, appErr, apperror.ErrInvalidInput)
	assert.Equal(t, "A profile with this username already exists", appErr.Message)

	// The first profile is unaffected.
	assert.Len(t, repo.profiles, 1)
	assert.Equal(t, "first@example.com", repo.profiles[0].Email)
}

func TestCreateProfileDuplicateEmail(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("first", "same@example.com"))
	require.NoError(t, err)

	_, err = uc.ExecuteCreate(context.Background(), validInput("second", "SAME@example.com"))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "A profile with this email already exists", appErr.Message)
}

func TestCreateProfileValidation(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("ab", "x@example.com"))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGetByUsernameRoundTrip(t *testing.T) {
	uc, _ := newTestUseCase()

	in := validInput("vashu", "vashu@example.com")
	in.Profile.Skills = []string{"Go", "Python"}
	in.Profile.Projects = []profile.Project{
		{Title: "p", Description: "d", Technologies: []string{"Go"}},
	}
	created, err := uc.ExecuteCreate(context.Background(), in)
	require.NoError(t, err)

	out, err := uc.ExecuteGetByUsername(context.Background(), GetProfileInput{Username: "VASHU"})
	require.NoError(t, err)

	assert.Equal(t, created.Profile.ID, out.Profile.ID)
	assert.Equal(t, created.Profile.Skills, out.Profile.Skills)
	assert.Equal(t, created.Profile.Projects, out.Profile.Projects)
}

func TestGetByUsernameNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteGetByUsername(context.Background(), GetProfileInput{Username: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, `"ghost"`)
}

func TestUpdateProfileRejectsUsernameChange(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("vashu", "vashu@example.com"))
	require.NoError(t, err)

	other := "someone-else"
	_, err = uc.ExecuteUpdate(context.Background(), UpdateProfileInput{
		Username:        "vashu",
		PayloadUsername: &other,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Username cannot be changed", appErr.Message)

	// The stored username is unchanged.
	assert.Equal(t, "vashu", repo.profiles[0].Username)
}

func TestUpdateProfileAllowsEchoedUsername(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("vashu", "vashu@example.com"))
	require.NoError(t, err)

	same := "vashu"
	bio := "updated bio"
	out, err := uc.ExecuteUpdate(context.Background(), UpdateProfileInput{
		Username:        "vashu",
		PayloadUsername: &same,
		Update:          profile.Update{Bio: &bio},
	})
	require.NoError(t, err)
	assert.Equal(t, "updated bio", out.Profile.Bio)
}

func TestUpdateProfilePartial(t *testing.T) {
	uc, _ := newTestUseCase()

	in := validInput("vashu", "vashu@example.com")
	in.Profile.Skills = []string{"Go"}
	_, err := uc.ExecuteCreate(context.Background(), in)
	require.NoError(t, err)

	name := "New Name"
	out, err := uc.ExecuteUpdate(context.Background(), UpdateProfileInput{
		Username: "vashu",
		Update:   profile.Update{Name: &name},
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", out.Profile.Name)
	// Untouched fields survive.
	assert.Equal(t, []string{"Go"}, out.Profile.Skills)
	assert.Equal(t, "vashu@example.com", out.Profile.Email)
}

func TestUpdateProfileInvalidEmail(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("vashu", "vashu@example.com"))
	require.NoError(t, err)

	bad := "nope"
	_, err = uc.ExecuteUpdate(context.Background(), UpdateProfileInput{
		Username: "vashu",
		Update:   profile.Update{Email: &bad},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdateAssignsIDsToNewSubEntities(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("vashu", "vashu@example.com"))
	require.NoError(t, err)

	out, err := uc.ExecuteUpdate(context.Background(), UpdateProfileInput{
		Username: "vashu",
		Update: profile.Update{
			Projects: []profile.Project{{Title: "p", Description: "d"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Profile.Projects, 1)
	assert.NotEqual(t, uuid.Nil, out.Profile.Projects[0].ID)
}

func TestLegacyGetAndUpdate(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteLegacyGet(context.Background())
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Profile not found. Run the seed script.", appErr.Message)

	_, err = uc.ExecuteCreate(context.Background(), validInput("vashu", "vashu@example.com"))
	require.NoError(t, err)

	out, err := uc.ExecuteLegacyGet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vashu", out.Profile.Username)

	title := "Backend Engineer"
	updated, err := uc.ExecuteLegacyUpdate(context.Background(), LegacyUpdateProfileInput{
		Update: profile.Update{Title: &title},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", updated.Profile.Title)
}

func TestListProfiles(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.ExecuteCreate(context.Background(), validInput("alpha", "a@example.com"))
	require.NoError(t, err)
	_, err = uc.ExecuteCreate(context.Background(), validInput("beta", "b@example.com"))
	require.NoError(t, err)

	out, err := uc.ExecuteList(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Profiles, 2)
}
