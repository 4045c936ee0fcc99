package project

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type ListProjectsUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewListProjectsUseCase(repo profile.Repository, log logger.Logger) *ListProjectsUseCase {
	return &ListProjectsUseCase{profileRepo: repo, logger: log}
}

type ListProjectsInput struct {
	Skill string
}

type ListProjectsOutput struct {
	Projects []profile.Project
	// SkillMissing is set when the filter matched nothing and the term is
	// absent from the skills list. The handler answers with the
	// "No projects found for skill" shape instead of count+data.
	SkillMissing bool
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	if input.Skill == "" {
		return &ListProjectsOutput{Projects: p.Projects}, nil
	}

	matched := p.FilterProjectsBySkill(input.Skill)
	if len(matched) == 0 && !p.HasSkill(input.Skill) {
		return &ListProjectsOutput{Projects: matched, SkillMissing: true}, nil
	}
	return &ListProjectsOutput{Projects: matched}, nil
}
