package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/internal/service"
	"github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/response"
)

// ProjectHandler handles project listing and application endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
	authMiddleware *middleware.AuthMiddleware
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService, authMiddleware *middleware.AuthMiddleware) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers project routes.
func (h *ProjectHandler) RegisterRoutes(r *gin.Engine) {
	projects := r.Group("/api/v1/projects")
	{
		// Public routes
		projects.GET("", h.List)
		projects.GET("/:id", h.Get)

		// Protected routes
		auth := h.authMiddleware.RequireAuth()
		projects.POST("", auth, h.Create)
		projects.PATCH("/:id", auth, h.Update)
		projects.POST("/:id/close", auth, h.Close)
		projects.DELETE("/:id", auth, h.Delete)
		projects.POST("/:id/applications", auth, h.Apply)
		projects.GET("/:id/applications", auth, h.ListApplications)
	}

	applications := r.Group("/api/v1/applications", h.authMiddleware.RequireAuth())
	{
		applications.GET("/mine", h.MyApplications)
		applications.POST("/:id/decision", h.Decide)
	}
}

// Create creates a new project listing.
func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	username := middleware.GetUsername(c)

	var req domain.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(ctx, userID, username, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to create project")
		response.InternalError(c, "failed to create project")
		return
	}

	response.Created(c, project)
}

// Get retrieves a project by ID.
func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	projectID := c.Param("id")
	project, err := h.projectService.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			response.NotFound(c, "project not found")
			return
		}
		l.Error().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to get project")
		response.InternalError(c, "failed to get project")
		return
	}

	response.Success(c, project)
}

// List lists projects with pagination.
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectService.List(ctx, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to list projects")
		response.InternalError(c, "failed to list projects")
		return
	}

	response.Success(c, result)
}

// Update updates a project listing.
func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	projectID := c.Param("id")

	var req domain.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(ctx, projectID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			response.NotFound(c, "project not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "only the owner can update this project")
		default:
			l.Error().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to update project")
			response.InternalError(c, "failed to update project")
		}
		return
	}

	response.Success(c, project)
}

// Close closes a project to new applications.
func (h *ProjectHandler) Close(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	projectID := c.Param("id")

	if err := h.projectService.Close(ctx, projectID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			response.NotFound(c, "project not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "only the owner can close this project")
		default:
			l.Error().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to close project")
			response.InternalError(c, "failed to close project")
		}
		return
	}

	response.Success(c, gin.H{"closed": true})
}

// Delete removes a project listing.
func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	projectID := c.Param("id")

	if err := h.projectService.Delete(ctx, projectID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			response.NotFound(c, "project not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "only the owner can delete this project")
		default:
			l.Error().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to delete project")
			response.InternalError(c, "failed to delete project")
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// Apply submits an application to a project.
func (h *ProjectHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	username := middleware.GetUsername(c)
	projectID := c.Param("id")

	var req domain.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.projectService.Apply(ctx, projectID, userID, username, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			response.NotFound(c, "project not found")
		case errors.Is(err, service.ErrOwnProject):
			response.BadRequest(c, "cannot apply to your own project")
		case errors.Is(err, service.ErrProjectClosed):
			response.Conflict(c, "project is closed")
		case errors.Is(err, repository.ErrAlreadyApplied):
			response.Conflict(c, "already applied to this project")
		default:
			l.Error().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to apply to project")
			response.InternalError(c, "failed to apply")
		}
		return
	}

	response.Created(c, app)
}

// ListApplications lists a project's applications for its owner.
func (h *ProjectHandler) ListApplications(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	projectID := c.Param("id")

	apps, err := h.projectService.ListApplications(ctx, projectID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			response.NotFound(c, "project not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "only the owner can view applications")
		default:
			l.Error().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to list applications")
			response.InternalError(c, "failed to list applications")
		}
		return
	}

	response.Success(c, apps)
}

// MyApplications lists the authenticated user's applications.
func (h *ProjectHandler) MyApplications(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	apps, err := h.projectService.MyApplications(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list own applications")
		response.InternalError(c, "failed to list applications")
		return
	}

	response.Success(c, apps)
}

// Decide accepts or rejects a pending application.
func (h *ProjectHandler) Decide(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	applicationID := c.Param("id")

	var req domain.DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.projectService.DecideApplication(ctx, applicationID, userID, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationNotFound):
			response.NotFound(c, "application not found")
		case errors.Is(err, service.ErrAlreadyDecided):
			response.Conflict(c, "application already decided")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "only the project owner can decide applications")
		default:
			l.Error().Err(err).Msg("failed to decide application")
			response.InternalError(c, "failed to decide application")
		}
		return
	}

	response.Success(c, app)
}
