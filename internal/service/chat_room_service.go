package service

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/devconnect/devconnect-backend/internal/audit"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/hub"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/jwt"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

type chatRoomServiceImpl struct {
	hub         *hub.Hub
	tokens      *jwt.Manager
	memberships repository.MembershipRepository
	messages    repository.MessageRepository
}

func NewChatRoomService(
	h *hub.Hub,
	tokens *jwt.Manager,
	memberships repository.MembershipRepository,
	messages repository.MessageRepository,
) ChatRoomService {
	return &chatRoomServiceImpl{
		hub:         h,
		tokens:      tokens,
		memberships: memberships,
		messages:    messages,
	}
}

func (s *chatRoomServiceImpl) HandleAuth(ctx context.Context, c *hub.Client, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil || claims.Type != jwt.TokenTypeAccess {
		audit.Log(ctx, audit.ActionChatAuthFailed, "", "websocket auth failed")
		c.SendMessage(&domain.AuthResultFrame{
			Type:    domain.FrameTypeAuthResult,
			Success: false,
			Message: "invalid or expired token",
		})
		return fmt.Errorf("invalid token")
	}

	c.Session.Authenticate(claims.UserID, claims.Username, claims.Email)
	audit.Log(ctx, audit.ActionChatAuth, claims.UserID, "websocket authenticated")

	return c.SendMessage(&domain.AuthResultFrame{
		Type:     domain.FrameTypeAuthResult,
		Success:  true,
		UserID:   claims.UserID,
		Username: claims.Username,
	})
}

func (s *chatRoomServiceImpl) HandleJoinRoom(ctx context.Context, c *hub.Client, communityID string) error {
	if !c.Session.IsAuthenticated() {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeUnauthorized, "Not authenticated"))
	}
	if communityID == "" {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Missing community id"))
	}

	userID := c.Session.GetUserID()
	ok, err := s.memberships.IsActiveMember(ctx, userID, communityID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldCommunityID, communityID).Msg("membership check failed")
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeInternalError, "Failed to verify membership"))
	}
	if !ok {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeNotAMember, "Not a member of this community"))
	}

	// Leave current room if any
	if c.Session.IsInRoom() {
		s.leaveInternal(ctx, c)
	}

	s.hub.JoinRoom(c, communityID)
	c.Session.JoinRoom(communityID)
	audit.LogWithDetail(ctx, audit.ActionJoinRoom, userID, communityID, "joined chat room")

	return c.SendMessage(&domain.RoomJoinedFrame{
		Type:        domain.FrameTypeRoomJoined,
		CommunityID: communityID,
	})
}

func (s *chatRoomServiceImpl) HandleChatMessage(ctx context.Context, c *hub.Client, content string) error {
	if !c.Session.IsAuthenticated() {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeUnauthorized, "Not authenticated"))
	}
	if !c.Session.IsInRoom() {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeNotInRoom, "Not in a room"))
	}
	if content == "" {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeBadRequest, "Empty message"))
	}

	communityID := c.Session.CurrentRoom()

	msg := &domain.ChatMessage{
		MessageID:      ksuid.New().String(),
		CommunityID:    communityID,
		SenderID:       c.Session.GetUserID(),
		SenderUsername: c.Session.GetUsername(),
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}

	// Persist before broadcast so history never misses a delivered message.
	if err := s.messages.Save(ctx, msg); err != nil {
		return c.SendMessage(domain.NewErrorFrame(domain.ErrCodeInternalError, "Failed to send message"))
	}

	out := &domain.ChatMessageOut{
		Type:           domain.FrameTypeChatMessage,
		MessageID:      msg.MessageID,
		SenderID:       msg.SenderID,
		SenderUsername: msg.SenderUsername,
		CommunityID:    msg.CommunityID,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt.UnixMilli(),
	}

	if err := s.hub.BroadcastToRoom(communityID, out, c.ID); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldMessageID, msg.MessageID).Msg("broadcast failed")
	}

	audit.LogWithDetail(ctx, audit.ActionSendMessage, msg.SenderID, msg.MessageID, "chat message sent")
	return nil
}

func (s *chatRoomServiceImpl) HandleLeaveRoom(ctx context.Context, c *hub.Client) error {
	if !c.Session.IsInRoom() {
		return nil
	}
	return s.leaveInternal(ctx, c)
}

func (s *chatRoomServiceImpl) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	audit.Log(ctx, audit.ActionDisconnect, c.Session.GetUserID(), "websocket disconnected")
	if !c.Session.IsInRoom() {
		return nil
	}
	return s.leaveInternal(ctx, c)
}

func (s *chatRoomServiceImpl) leaveInternal(ctx context.Context, c *hub.Client) error {
	communityID := c.Session.CurrentRoom()
	if communityID == "" {
		return nil
	}

	s.hub.LeaveRoom(c, communityID)
	c.Session.LeaveRoom()
	audit.LogWithDetail(ctx, audit.ActionLeaveRoom, c.Session.GetUserID(), communityID, "left chat room")
	return nil
}
