package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/domain/search"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type SearchUseCase struct {
	searchRepo search.Repository
	logger     logger.Logger
}

func NewSearchUseCase(sr search.Repository, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{searchRepo: sr, logger: log}
}

type SearchInput struct {
	Query string
}

type SearchOutput struct {
	Results []search.Result
}

func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, apperror.NewBadRequest(`Search query parameter "q" is required`, nil)
	}

	uc.logger.Info("executing profile search", zap.String("query", query))

	results, err := uc.searchRepo.Search(ctx, query)
	if err != nil {
		uc.logger.Error("search execution failed", err)
		return nil, err
	}

	return &SearchOutput{Results: results}, nil
}
