package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/devconnect/devconnect-backend/internal/service"
	"github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/response"
)

// AssistantHandler handles chatbot endpoints.
type AssistantHandler struct {
	assistantService service.AssistantService
	authMiddleware   *middleware.AuthMiddleware
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(assistantService service.AssistantService, authMiddleware *middleware.AuthMiddleware) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers assistant routes.
func (h *AssistantHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/v1/chat", h.authMiddleware.RequireAuth(), h.Chat)
}

// Chat answers a chatbot message.
func (h *AssistantHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	var req domain.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reply, err := h.assistantService.Chat(ctx, userID, &req)
	if err != nil {
		l.Error().Err(err).Msg("assistant chat failed")
		response.UpstreamError(c, "assistant is unavailable, try again later")
		return
	}

	response.Success(c, reply)
}
