package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/api/metrics"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// ProjectHandler exposes the project listing endpoints.
type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create publishes a new project listing owned by the session profile.
//
// @Summary      Create a project listing
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	ownerID, err := ctxProfileID(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Create(c.Request().Context(), req.toInput(ownerID))
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.Category).Inc()
	return c.JSON(http.StatusCreated, projectResponse{Project: project})
}

// List returns the most recent project listings, newest first.
//
// @Summary      List project listings
// @Tags         projects
// @Produce      json
// @Success      200  {object}  projectListResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}

// Get returns a single project listing by id.
//
// @Summary      Get a project listing
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectResponse{Project: project})
}
