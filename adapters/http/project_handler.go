package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectUC "github.com/devfolio/portfolio-api/internal/application/usecase/project"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type ProjectHandler struct {
	listProjectsUseCase  *projectUC.ListProjectsUseCase
	getProjectUseCase    *projectUC.GetProjectUseCase
	addProjectUseCase    *projectUC.AddProjectUseCase
	updateProjectUseCase *projectUC.UpdateProjectUseCase
	deleteProjectUseCase *projectUC.DeleteProjectUseCase
	logger               logger.Logger
}

func NewProjectHandler(
	listUC *projectUC.ListProjectsUseCase,
	getUC *projectUC.GetProjectUseCase,
	addUC *projectUC.AddProjectUseCase,
	updateUC *projectUC.UpdateProjectUseCase,
	deleteUC *projectUC.DeleteProjectUseCase,
	log logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		listProjectsUseCase:  listUC,
		getProjectUseCase:    getUC,
		addProjectUseCase:    addUC,
		updateProjectUseCase: updateUC,
		deleteProjectUseCase: deleteUC,
		logger:               log,
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	skill := c.Query("skill")

	input := projectUC.ListProjectsInput{Skill: skill}
	output, err := h.listProjectsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	// A term that matches neither a project nor a known skill gets the
	// explicit no-projects message instead of the count envelope.
	if output.SkillMissing {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("No projects found for skill: %s", skill),
			"data":    output.Projects,
			"query":   gin.H{"skill": skill},
		})
		return
	}

	body := gin.H{
		"success": true,
		"count":   len(output.Projects),
		"data":    output.Projects,
	}
	if skill != "" {
		body["query"] = gin.H{"skill": skill}
	}
	c.JSON(http.StatusOK, body)
}

func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewBadRequest("The provided ID is not valid", err))
		return
	}

	input := projectUC.GetProjectInput{ProjectID: projectID}
	output, err := h.getProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": output.Project})
}

func (h *ProjectHandler) AddProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for project create", err))
		return
	}

	input := projectUC.AddProjectInput{Project: req.ToDomain()}
	output, err := h.addProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Project added successfully",
		"data":    output.Project,
	})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewBadRequest("The provided ID is not valid", err))
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for project update", err))
		return
	}

	input := projectUC.UpdateProjectInput{ProjectID: projectID, Patch: req.ToPatch()}
	output, err := h.updateProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project updated successfully",
		"data":    output.Project,
	})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewBadRequest("The provided ID is not valid", err))
		return
	}

	input := projectUC.DeleteProjectInput{ProjectID: projectID}
	if err := h.deleteProjectUseCase.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}
