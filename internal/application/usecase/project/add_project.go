package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/application/service"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type AddProjectUseCase struct {
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewAddProjectUseCase(repo profile.Repository, events service.EventPublisher, log logger.Logger) *AddProjectUseCase {
	return &AddProjectUseCase{profileRepo: repo, events: events, logger: log}
}

type AddProjectInput struct {
	Project profile.Project
}

type AddProjectOutput struct {
	Project *profile.Project
}

func (uc *AddProjectUseCase) Execute(ctx context.Context, input AddProjectInput) (*AddProjectOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	newProject := input.Project
	if err := newProject.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), err)
	}
	newProject.ID = uuid.New()

	// The store does not dedup; the new entry is always the tail.
	p.Projects = append(p.Projects, newProject)
	if err := uc.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	publishProjectEvent(ctx, uc.events, uc.logger, service.ActionProjectAdded, p.ID, newProject.ID)

	return &AddProjectOutput{Project: &p.Projects[len(p.Projects)-1]}, nil
}

func publishProjectEvent(ctx context.Context, events service.EventPublisher, log logger.Logger, action string, profileID, projectID uuid.UUID) {
	ev := service.ProfileEvent{
		Action:     action,
		ProfileID:  profileID,
		Resource:   "project",
		ResourceID: projectID,
		OccurredAt: time.Now().UTC(),
	}
	if err := events.PublishProfileEvent(ctx, ev); err != nil {
		log.Warn("publish project event failed",
			zap.String("action", action), zap.String("project_id", projectID.String()), zap.Error(err))
	}
}
