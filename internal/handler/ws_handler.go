package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/hub"
	"github.com/devconnect/devconnect-backend/internal/service"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades connections and dispatches chat frames.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatRoomService
	wsCfg   config.WebSocketConfig
}

// NewWSHandler creates a new websocket handler.
func NewWSHandler(h *hub.Hub, svc service.ChatRoomService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

// RegisterRoutes registers the websocket route.
func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/chat", func(c *gin.Context) {
		h.HandleWebSocket(c.Writer, c.Request)
	})
}

func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := log.L()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	h.hub.Register(client)

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleFrame)
		if err := h.service.HandleDisconnect(context.Background(), client); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("disconnect cleanup failed")
		}
	}()
}

func (h *WSHandler) handleFrame(client *hub.Client, message []byte) {
	l := log.L()

	var base domain.BaseFrame
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Invalid frame format"))
		return
	}

	ctx := context.Background()

	switch base.Type {
	case domain.FrameTypeAuth:
		var frame domain.AuthFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Invalid auth frame"))
			return
		}
		if err := h.service.HandleAuth(ctx, client, frame.Token); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("websocket auth failed")
		}

	case domain.FrameTypeJoinRoom:
		var frame domain.JoinRoomFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Invalid join_room frame"))
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client, frame.CommunityID); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("join room failed")
		}

	case domain.FrameTypeChatMessage:
		var frame domain.ChatMessageFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			client.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Invalid chat_message frame"))
			return
		}
		if err := h.service.HandleChatMessage(ctx, client, frame.Content); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("chat message failed")
		}

	case domain.FrameTypeLeaveRoom:
		if err := h.service.HandleLeaveRoom(ctx, client); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("leave room failed")
		}

	case domain.FrameTypePing:
		client.SendMessage(map[string]string{"type": domain.FrameTypePong})

	default:
		client.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Unknown frame type"))
	}
}
