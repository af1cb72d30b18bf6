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

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService    service.UserService
	authMiddleware *middleware.AuthMiddleware
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, authMiddleware *middleware.AuthMiddleware) *UserHandler {
	return &UserHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers user routes.
func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/profiles/:username", h.GetPublicProfile)

	users := r.Group("/api/v1/users")
	{
		users.GET("/me", h.authMiddleware.RequireAuth(), h.GetMe)
		users.PATCH("/me", h.authMiddleware.RequireAuth(), h.UpdateMe)
		users.PUT("/me/password", h.authMiddleware.RequireAuth(), h.ChangePassword)
		users.POST("/me/avatar", h.authMiddleware.RequireAuth(), h.PresignAvatar)
	}
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Msg("failed to get profile")
		response.InternalError(c, "failed to get profile")
		return
	}

	response.Success(c, profile)
}

// GetPublicProfile returns another user's public profile.
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	username := c.Param("username")
	profile, err := h.userService.GetPublicProfile(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Str(log.FieldUsername, username).Msg("failed to get public profile")
		response.InternalError(c, "failed to get profile")
		return
	}

	response.Success(c, profile)
}

// UpdateMe updates the authenticated user's profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Msg("failed to update profile")
		response.InternalError(c, "failed to update profile")
		return
	}

	response.Success(c, profile)
}

// ChangePassword changes the authenticated user's password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	var req domain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ChangePassword(ctx, userID, &req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "current password is incorrect")
			return
		}
		l.Error().Err(err).Msg("failed to change password")
		response.InternalError(c, "failed to change password")
		return
	}

	response.Success(c, gin.H{"changed": true})
}

// PresignAvatar returns a presigned upload URL for a new avatar.
func (h *UserHandler) PresignAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	var req domain.AvatarPresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.PresignAvatarUpload(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Msg("failed to presign avatar upload")
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, resp)
}
