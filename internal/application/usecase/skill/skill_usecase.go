package skill

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type SkillUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewSkillUseCase(repo profile.Repository, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{profileRepo: repo, logger: log}
}

type ListSkillsOutput struct {
	Skills []string
}

func (uc *SkillUseCase) ExecuteList(ctx context.Context) (*ListSkillsOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSkillsOutput{Skills: p.Skills}, nil
}

// TopSkillsOutput holds exactly one of the two rankings. Rated profiles rank
// by rating; unrated ones rank by technology frequency.
type TopSkillsOutput struct {
	Rated       bool
	ByRating    []profile.SkillRating
	ByFrequency []profile.SkillFrequency
}

func (uc *SkillUseCase) ExecuteTop(ctx context.Context) (*TopSkillsOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	if p.Rated() {
		return &TopSkillsOutput{Rated: true, ByRating: p.SkillsByRating()}, nil
	}
	return &TopSkillsOutput{ByFrequency: p.SkillsByFrequency()}, nil
}
