package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/devfolio/portfolio-api/internal/application/usecase/skill"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{skillUseCase: uc, logger: log}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	output, err := h.skillUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(output.Skills),
		"data":    output.Skills,
	})
}

func (h *SkillHandler) GetTopSkills(c *gin.Context) {
	output, err := h.skillUseCase.ExecuteTop(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	if output.Rated {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(output.ByRating),
			"data":    output.ByRating,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(output.ByFrequency),
		"data":    output.ByFrequency,
	})
}
