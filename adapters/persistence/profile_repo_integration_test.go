package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/internal/domain/search"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
	searchRepo  search.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	log := logger.NewNop()
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, log)
	s.searchRepo = NewPostgresSearchRepo(s.dbPool, log)
}

func (s *ProfileRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), "TRUNCATE profiles")
	s.Require().NoError(err)
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func fullProfile(username, email string) *profile.Profile {
	return &profile.Profile{
		Username: username,
		Name:     "Vashu Kumar",
		Email:    email,
		Title:    profile.DefaultTitle,
		Bio:      "Backend developer into machine learning",
		Education: &profile.Education{
			Degree:      "Bachelor of Technology",
			Institution: "NIT Delhi",
			Year:        "2027",
		},
		Skills: []string{"Python", "Go"},
		Projects: []profile.Project{
			{
				ID:           uuid.New(),
				Title:        "Spam Detector",
				Description:  "NLP classifier for SMS messages",
				Links:        profile.ProjectLinks{GitHub: "https://github.com/x/spam"},
				Technologies: []string{"Python", "NLTK"},
				Featured:     true,
			},
		},
		Work: []profile.WorkEntry{
			{
				ID: uuid.New(), Company: "Tech Club", Position: "Developer",
				Duration: "2024 - Present", Technologies: []string{"Go"},
			},
		},
		Links:  profile.Links{GitHub: "https://github.com/x"},
		Rating: map[string]float64{"Python": 7, "Go": 9},
	}
}

func (s *ProfileRepoIntegrationTestSuite) Test_Insert_And_FindByUsername() {
	ctx := context.Background()

	created, err := s.profileRepo.Insert(ctx, fullProfile("vashu", "vashu@example.com"))
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, created.ID)
	s.False(created.CreatedAt.IsZero())

	found, err := s.profileRepo.FindByUsername(ctx, "vashu")
	s.Require().NoError(err)

	// The whole document survives the round trip.
	s.Equal(created.ID, found.ID)
	s.Equal("vashu@example.com", found.Email)
	s.Require().NotNil(found.Education)
	s.Equal("NIT Delhi", found.Education.Institution)
	s.Equal([]string{"Python", "Go"}, found.Skills)
	s.Require().Len(found.Projects, 1)
	s.Equal("Spam Detector", found.Projects[0].Title)
	s.True(found.Projects[0].Featured)
	s.Require().Len(found.Work, 1)
	s.Equal("Tech Club", found.Work[0].Company)
	s.Equal(map[string]float64{"Python": 7, "Go": 9}, found.Rating)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindByUsername_IsCaseInsensitive() {
	ctx := context.Background()

	_, err := s.profileRepo.Insert(ctx, fullProfile("vashu", "vashu@example.com"))
	s.Require().NoError(err)

	found, err := s.profileRepo.FindByUsername(ctx, "VASHU")
	s.Require().NoError(err)
	s.Equal("vashu", found.Username)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Insert_DuplicateUsername() {
	ctx := context.Background()

	_, err := s.profileRepo.Insert(ctx, fullProfile("vashu", "first@example.com"))
	s.Require().NoError(err)

	_, err = s.profileRepo.Insert(ctx, fullProfile("vashu", "second@example.com"))
	s.Require().Error(err)
	s.ErrorIs(err, apperror.ErrConflict)

	var appErr *apperror.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("username", appErr.Field)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Insert_DuplicateEmail() {
	ctx := context.Background()

	_, err := s.profileRepo.Insert(ctx, fullProfile("first", "same@example.com"))
	s.Require().NoError(err)

	_, err = s.profileRepo.Insert(ctx, fullProfile("second", "same@example.com"))
	s.Require().Error(err)

	var appErr *apperror.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("email", appErr.Field)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindFirst_ReturnsOldest() {
	ctx := context.Background()

	first, err := s.profileRepo.Insert(ctx, fullProfile("older", "older@example.com"))
	s.Require().NoError(err)
	_, err = s.profileRepo.Insert(ctx, fullProfile("newer", "newer@example.com"))
	s.Require().NoError(err)

	found, err := s.profileRepo.FindFirst(ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindFirst_Empty() {
	_, err := s.profileRepo.FindFirst(context.Background())
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FindAll_ReturnsSummaries() {
	ctx := context.Background()

	_, err := s.profileRepo.Insert(ctx, fullProfile("alpha", "a@example.com"))
	s.Require().NoError(err)
	_, err = s.profileRepo.Insert(ctx, fullProfile("beta", "b@example.com"))
	s.Require().NoError(err)

	summaries, err := s.profileRepo.FindAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	// Newest first.
	s.Equal("beta", summaries[0].Username)
	s.Equal([]string{"Python", "Go"}, summaries[0].Skills)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_Partial() {
	ctx := context.Background()

	created, err := s.profileRepo.Insert(ctx, fullProfile("vashu", "vashu@example.com"))
	s.Require().NoError(err)

	bio := "updated bio"
	skills := []string{"Rust"}
	err = s.profileRepo.Update(ctx, created.ID, profile.Update{Bio: &bio, Skills: skills})
	s.Require().NoError(err)

	found, err := s.profileRepo.FindByUsername(ctx, "vashu")
	s.Require().NoError(err)
	s.Equal("updated bio", found.Bio)
	s.Equal([]string{"Rust"}, found.Skills)
	// Untouched columns keep their values.
	s.Equal("Vashu Kumar", found.Name)
	s.Len(found.Projects, 1)
	s.True(found.UpdatedAt.After(found.CreatedAt))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_MissingProfile() {
	bio := "x"
	err := s.profileRepo.Update(context.Background(), uuid.New(), profile.Update{Bio: &bio})
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Save_FullDocument() {
	ctx := context.Background()

	created, err := s.profileRepo.Insert(ctx, fullProfile("vashu", "vashu@example.com"))
	s.Require().NoError(err)

	created.Projects = append(created.Projects, profile.Project{
		ID: uuid.New(), Title: "Second Project", Description: "another one",
	})
	s.Require().NoError(s.profileRepo.Save(ctx, created))

	found, err := s.profileRepo.FindByUsername(ctx, "vashu")
	s.Require().NoError(err)
	s.Len(found.Projects, 2)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Search_RanksByRelevance() {
	ctx := context.Background()

	strong := fullProfile("strong", "strong@example.com")
	strong.Bio = "machine learning engineer building machine learning systems"
	strong.Projects[0].Description = "machine learning spam classifier"
	_, err := s.profileRepo.Insert(ctx, strong)
	s.Require().NoError(err)

	weak := fullProfile("weak", "weak@example.com")
	weak.Bio = "dabbles in machine learning"
	weak.Projects[0].Description = "static site generator"
	_, err = s.profileRepo.Insert(ctx, weak)
	s.Require().NoError(err)

	results, err := s.searchRepo.Search(ctx, "machine learning")
	s.Require().NoError(err)
	s.Require().Len(results, 2)

	s.Equal("strong", results[0].Profile.Username)
	s.Equal("weak", results[1].Profile.Username)
	s.Greater(results[0].Rank, results[1].Rank)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Search_CoversIndexedFields() {
	ctx := context.Background()

	p := fullProfile("vashu", "vashu@example.com")
	_, err := s.profileRepo.Insert(ctx, p)
	s.Require().NoError(err)

	// Fields inside the JSONB document feed the text index too.
	for _, q := range []string{"Vashu", "NIT Delhi", "Spam Detector", "Tech Club"} {
		results, err := s.searchRepo.Search(ctx, q)
		s.Require().NoError(err, q)
		s.Require().Len(results, 1, q)
	}

	// Skill names are deliberately outside the index.
	results, err := s.searchRepo.Search(ctx, "zzzmissing")
	s.Require().NoError(err)
	s.Empty(results)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Search_IndexFollowsUpdates() {
	ctx := context.Background()

	created, err := s.profileRepo.Insert(ctx, fullProfile("vashu", "vashu@example.com"))
	s.Require().NoError(err)

	bio := "now doing distributed systems"
	s.Require().NoError(s.profileRepo.Update(ctx, created.ID, profile.Update{Bio: &bio}))

	results, err := s.searchRepo.Search(ctx, "distributed systems")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("vashu", results[0].Profile.Username)
}
