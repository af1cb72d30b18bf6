package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/response"
	"github.com/devconnect/devconnect-backend/pkg/storage"
)

// MediaHandler serves avatar objects when local storage is in use. With
// S3 the presigned URLs bypass the server and these routes are not
// registered.
type MediaHandler struct {
	store storage.Storage
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(store storage.Storage) *MediaHandler {
	return &MediaHandler{store: store}
}

// RegisterRoutes registers media routes.
func (h *MediaHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/avatars/*path", h.Get)
	r.PUT("/avatars/*path", h.Put)
}

// Get streams an avatar object.
func (h *MediaHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	key := "avatars/" + strings.TrimPrefix(c.Param("path"), "/")
	rc, err := h.store.Read(ctx, key)
	if err != nil {
		response.NotFound(c, "object not found")
		return
	}
	defer rc.Close()

	c.DataFromReader(200, -1, "application/octet-stream", rc, nil)
}

// Put accepts a direct avatar upload.
func (h *MediaHandler) Put(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	key := "avatars/" + strings.TrimPrefix(c.Param("path"), "/")
	contentType := c.ContentType()

	if err := h.store.Write(ctx, key, c.Request.Body, c.Request.ContentLength, contentType); err != nil {
		l.Error().Err(err).Str("key", key).Msg("failed to store avatar")
		response.InternalError(c, "failed to store object")
		return
	}

	response.Success(c, gin.H{"key": key})
}
