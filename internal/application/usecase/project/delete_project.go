package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-api/internal/application/service"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type DeleteProjectUseCase struct {
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewDeleteProjectUseCase(repo profile.Repository, events service.EventPublisher, log logger.Logger) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{profileRepo: repo, events: events, logger: log}
}

type DeleteProjectInput struct {
	ProjectID uuid.UUID
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return err
	}

	idx := p.ProjectIndex(input.ProjectID)
	if idx < 0 {
		return apperror.NewNotFound("Project", "Project not found")
	}

	p.Projects = append(p.Projects[:idx], p.Projects[idx+1:]...)
	if err := uc.profileRepo.Save(ctx, p); err != nil {
		return err
	}

	publishProjectEvent(ctx, uc.events, uc.logger, service.ActionProjectDeleted, p.ID, input.ProjectID)

	return nil
}
