package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/devfolio/portfolio-api/internal/application/usecase/search"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{searchUseCase: uc, logger: log}
}

func (h *SearchHandler) SearchProfiles(c *gin.Context) {
	input := searchUC.SearchInput{Query: c.Query("q")}
	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]SearchResultDTO, len(output.Results))
	for i, res := range output.Results {
		dtos[i] = ToSearchResultDTO(res)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(dtos),
		"data":    dtos,
	})
}
