package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
)

type GetProjectUseCase struct {
	profileRepo profile.Repository
}

func NewGetProjectUseCase(repo profile.Repository) *GetProjectUseCase {
	return &GetProjectUseCase{profileRepo: repo}
}

type GetProjectInput struct {
	ProjectID uuid.UUID
}

type GetProjectOutput struct {
	Project *profile.Project
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, input GetProjectInput) (*GetProjectOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	idx := p.ProjectIndex(input.ProjectID)
	if idx < 0 {
		return nil, apperror.NewNotFound("Project", "Project not found")
	}
	return &GetProjectOutput{Project: &p.Projects[idx]}, nil
}
