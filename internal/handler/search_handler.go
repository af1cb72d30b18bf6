package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/service"
	"github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/response"
)

// SearchHandler handles keyword search endpoints. Routes are only
// registered when the keyword index is configured.
type SearchHandler struct {
	searchService service.KeywordSearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService service.KeywordSearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterRoutes registers search routes.
func (h *SearchHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/search", h.Search)
}

// Search runs a keyword search over developers and projects.
func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.KeywordSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.searchService.Search(ctx, &req)
	if err != nil {
		l.Error().Err(err).Msg("keyword search failed")
		response.InternalError(c, "search failed")
		return
	}

	response.Success(c, result)
}
