package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/internal/service"
	"github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/response"
)

// CommunityHandler handles community and chat history endpoints.
type CommunityHandler struct {
	communityService service.CommunityService
	historyService   service.HistoryService
	authMiddleware   *middleware.AuthMiddleware
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(
	communityService service.CommunityService,
	historyService service.HistoryService,
	authMiddleware *middleware.AuthMiddleware,
) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		historyService:   historyService,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers community routes.
func (h *CommunityHandler) RegisterRoutes(r *gin.Engine) {
	communities := r.Group("/api/v1/communities")
	{
		communities.GET("", h.Explore)
		communities.GET("/:id", h.Get)

		auth := h.authMiddleware.RequireAuth()
		communities.POST("", auth, h.Create)
		communities.POST("/:id/join", auth, h.Join)
		communities.POST("/:id/leave", auth, h.Leave)
		communities.GET("/:id/chat", auth, h.ChatHistory)
	}

	r.GET("/api/v1/me/communities", h.authMiddleware.RequireAuth(), h.MyCommunities)
	r.GET("/api/v1/me/communities/hosted", h.authMiddleware.RequireAuth(), h.HostedCommunities)
}

// Create creates a new community.
func (h *CommunityHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	username := middleware.GetUsername(c)

	var req domain.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	community, err := h.communityService.Create(ctx, userID, username, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to create community")
		response.InternalError(c, "failed to create community")
		return
	}

	response.Created(c, community)
}

// Get retrieves a community by ID.
func (h *CommunityHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	communityID := c.Param("id")
	community, err := h.communityService.Get(ctx, communityID)
	if err != nil {
		if errors.Is(err, repository.ErrCommunityNotFound) {
			response.NotFound(c, "community not found")
			return
		}
		l.Error().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to get community")
		response.InternalError(c, "failed to get community")
		return
	}

	response.Success(c, community)
}

// Explore lists public communities.
func (h *CommunityHandler) Explore(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ExploreCommunitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.communityService.Explore(ctx, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to explore communities")
		response.InternalError(c, "failed to explore communities")
		return
	}

	response.Success(c, result)
}

// Join adds the authenticated user to a community.
func (h *CommunityHandler) Join(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	communityID := c.Param("id")

	if err := h.communityService.Join(ctx, communityID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCommunityNotFound):
			response.NotFound(c, "community not found")
		case errors.Is(err, service.ErrPrivateCommunity):
			response.Forbidden(c, "community is private")
		case errors.Is(err, service.ErrAlreadyMember):
			response.Conflict(c, "already a member")
		default:
			l.Error().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to join community")
			response.InternalError(c, "failed to join community")
		}
		return
	}

	response.Success(c, gin.H{"joined": true})
}

// Leave removes the authenticated user from a community.
func (h *CommunityHandler) Leave(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	communityID := c.Param("id")

	if err := h.communityService.Leave(ctx, communityID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrMembershipNotFound), errors.Is(err, service.ErrNotAMember):
			response.NotFound(c, "not a member of this community")
		default:
			l.Error().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to leave community")
			response.InternalError(c, "failed to leave community")
		}
		return
	}

	response.Success(c, gin.H{"left": true})
}

// MyCommunities lists communities the authenticated user belongs to.
func (h *CommunityHandler) MyCommunities(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	communities, err := h.communityService.MyCommunities(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list own communities")
		response.InternalError(c, "failed to list communities")
		return
	}

	response.Success(c, communities)
}

// HostedCommunities lists communities the authenticated user administers.
func (h *CommunityHandler) HostedCommunities(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	communities, err := h.communityService.HostedCommunities(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list hosted communities")
		response.InternalError(c, "failed to list communities")
		return
	}

	response.Success(c, communities)
}

// ChatHistory returns a page of prior messages for members.
func (h *CommunityHandler) ChatHistory(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	communityID := c.Param("id")
	cursor := c.Query("cursor")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := h.historyService.GetChatHistory(ctx, userID, communityID, cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAMember):
			response.Forbidden(c, "not a member of this community")
		default:
			l.Error().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to get chat history")
			response.InternalError(c, "failed to get chat history")
		}
		return
	}

	response.Success(c, history)
}
