package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-api/internal/application/service"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type UpdateProjectUseCase struct {
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewUpdateProjectUseCase(repo profile.Repository, events service.EventPublisher, log logger.Logger) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{profileRepo: repo, events: events, logger: log}
}

// ProjectPatch is a shallow merge: nil fields keep the stored value.
type ProjectPatch struct {
	Title        *string
	Description  *string
	Links        *profile.ProjectLinks
	Technologies []string
	Featured     *bool
}

type UpdateProjectInput struct {
	ProjectID uuid.UUID
	Patch     ProjectPatch
}

type UpdateProjectOutput struct {
	Project *profile.Project
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	idx := p.ProjectIndex(input.ProjectID)
	if idx < 0 {
		return nil, apperror.NewNotFound("Project", "Project not found")
	}

	target := &p.Projects[idx]
	if input.Patch.Title != nil {
		target.Title = *input.Patch.Title
	}
	if input.Patch.Description != nil {
		target.Description = *input.Patch.Description
	}
	if input.Patch.Links != nil {
		target.Links = *input.Patch.Links
	}
	if input.Patch.Technologies != nil {
		target.Technologies = input.Patch.Technologies
	}
	if input.Patch.Featured != nil {
		target.Featured = *input.Patch.Featured
	}

	if err := target.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), err)
	}
	if err := uc.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	publishProjectEvent(ctx, uc.events, uc.logger, service.ActionProjectUpdated, p.ID, target.ID)

	return &UpdateProjectOutput{Project: target}, nil
}
