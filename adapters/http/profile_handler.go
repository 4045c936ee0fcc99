package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profileUC "github.com/devfolio/portfolio-api/internal/application/usecase/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
	startedAt      time.Time
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
		startedAt:      time.Now(),
	}
}

func (h *ProfileHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(output.Profiles),
		"data":    output.Profiles,
	})
}

func (h *ProfileHandler) GetProfileByUsername(c *gin.Context) {
	input := profileUC.GetProfileInput{Username: c.Param("username")}
	output, err := h.profileUseCase.ExecuteGetByUsername(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": output.Profile})
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile create", err))
		return
	}

	input := profileUC.CreateProfileInput{Profile: req.ToDomain()}
	output, err := h.profileUseCase.ExecuteCreate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Profile created successfully",
		"data":    output.Profile,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		Username:        c.Param("username"),
		PayloadUsername: req.Username,
		Update:          req.ToDomainUpdate(),
	}
	output, err := h.profileUseCase.ExecuteUpdate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    output.Profile,
	})
}

// GetProfile serves the single-profile deployments that predate username
// addressing.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteLegacyGet(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": output.Profile})
}

func (h *ProfileHandler) UpdateLegacyProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.LegacyUpdateProfileInput{
		PayloadUsername: req.Username,
		Update:          req.ToDomainUpdate(),
	}
	output, err := h.profileUseCase.ExecuteLegacyUpdate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    output.Profile,
	})
}
