package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/devfolio/portfolio-api/adapters/event"
	httpAdapter "github.com/devfolio/portfolio-api/adapters/http"
	"github.com/devfolio/portfolio-api/adapters/persistence"
	"github.com/devfolio/portfolio-api/internal/application/service"
	profileUC "github.com/devfolio/portfolio-api/internal/application/usecase/profile"
	projectUC "github.com/devfolio/portfolio-api/internal/application/usecase/project"
	searchUC "github.com/devfolio/portfolio-api/internal/application/usecase/search"
	skillUC "github.com/devfolio/portfolio-api/internal/application/usecase/skill"
	"github.com/devfolio/portfolio-api/internal/config"
	"github.com/devfolio/portfolio-api/pkg/auth"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

func main() {
	fmt.Println("Start Portfolio API Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Warn("cannot connect Redis, rate limiting disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Warn("cannot init Kafka, mutation events disabled")
	} else {
		events = kafkaClient
		defer kafkaClient.Close()
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	searchRepo := persistence.NewPostgresSearchRepo(dbPool, appLogger)

	// Access gate
	gate := auth.NewBasicGate(cfg.Auth.Username, cfg.Auth.Password)

	// Use cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, events, appLogger)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(profileRepo, appLogger)
	getProjectUseCase := projectUC.NewGetProjectUseCase(profileRepo)
	addProjectUseCase := projectUC.NewAddProjectUseCase(profileRepo, events, appLogger)
	updateProjectUseCase := projectUC.NewUpdateProjectUseCase(profileRepo, events, appLogger)
	deleteProjectUseCase := projectUC.NewDeleteProjectUseCase(profileRepo, events, appLogger)
	skillUseCase := skillUC.NewSkillUseCase(profileRepo, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(searchRepo, appLogger)

	// HTTP handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	projectHandler := httpAdapter.NewProjectHandler(
		listProjectsUseCase,
		getProjectUseCase,
		addProjectUseCase,
		updateProjectUseCase,
		deleteProjectUseCase,
		appLogger,
	)
	skillHandler := httpAdapter.NewSkillHandler(skillUseCase, appLogger)
	searchHandler := httpAdapter.NewSearchHandler(searchUseCase, appLogger)

	router := httpAdapter.NewRouter(
		httpAdapter.RouterConfig{
			Env:             cfg.App.Env,
			RateLimitMax:    cfg.RateLimit.Max,
			RateLimitWindow: cfg.RateLimit.Window,
		},
		appLogger,
		redisClient,
		gate,
		profileHandler,
		projectHandler,
		skillHandler,
		searchHandler,
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	addr := ":" + cfg.App.Port
	log.Printf("Server running on port %s", cfg.App.Port)
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
