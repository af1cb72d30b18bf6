package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/hub"
	"github.com/devconnect/devconnect-backend/pkg/jwt"
)

type fakeMembershipRepo struct {
	active map[string]bool // userID:communityID
	err    error
}

func (f *fakeMembershipRepo) Upsert(ctx context.Context, m *domain.Membership) error { return nil }
func (f *fakeMembershipRepo) Get(ctx context.Context, userID, communityID string) (*domain.Membership, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeMembershipRepo) IsActiveMember(ctx context.Context, userID, communityID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.active[userID+":"+communityID], nil
}
func (f *fakeMembershipRepo) GetUserCommunities(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (f *fakeMembershipRepo) SetStatus(ctx context.Context, userID, communityID string, status domain.MemberStatus) error {
	return nil
}

type fakeMessageRepo struct {
	saved      []domain.ChatMessage
	saveErr    error
	history    []domain.ChatMessage
	historyErr error
	gotCursor  string
	gotLimit   int
}

func (f *fakeMessageRepo) Save(ctx context.Context, msg *domain.ChatMessage) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *msg)
	return nil
}

func (f *fakeMessageRepo) GetHistory(ctx context.Context, communityID, cursor string, limit int) ([]domain.ChatMessage, error) {
	f.gotCursor = cursor
	f.gotLimit = limit
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	if len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func newTestTokenManager(t *testing.T) *jwt.Manager {
	t.Helper()
	m, err := jwt.NewManager("test-secret", 15*time.Minute, time.Hour, "test")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func recvFrame(t *testing.T, c *hub.Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func assertNoFrame(t *testing.T, c *hub.Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("unexpected frame: %s", data)
	default:
	}
}

func TestHandleAuth(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	svc := NewChatRoomService(h, tokens, &fakeMembershipRepo{}, &fakeMessageRepo{})
	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})

	access, _, _, _, err := tokens.GenerateTokenPair("u1", "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	if err := svc.HandleAuth(context.Background(), client, access); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !client.Session.IsAuthenticated() {
		t.Error("session should be authenticated")
	}
	if got := client.Session.GetUserID(); got != "u1" {
		t.Errorf("user id = %q, want u1", got)
	}

	var frame domain.AuthResultFrame
	if err := json.Unmarshal(recvFrame(t, client), &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if frame.Type != domain.FrameTypeAuthResult || !frame.Success {
		t.Errorf("frame = %+v, want successful auth_result", frame)
	}
	if frame.Username != "alice" {
		t.Errorf("username = %q, want alice", frame.Username)
	}
}

func TestHandleAuthInvalidToken(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	svc := NewChatRoomService(h, tokens, &fakeMembershipRepo{}, &fakeMessageRepo{})
	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})

	if err := svc.HandleAuth(context.Background(), client, "garbage"); err == nil {
		t.Fatal("expected error for invalid token")
	}
	if client.Session.IsAuthenticated() {
		t.Error("session should not be authenticated")
	}

	var frame domain.AuthResultFrame
	if err := json.Unmarshal(recvFrame(t, client), &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if frame.Success {
		t.Error("auth_result should report failure")
	}
}

func TestHandleAuthRejectsRefreshToken(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	svc := NewChatRoomService(h, tokens, &fakeMembershipRepo{}, &fakeMessageRepo{})
	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})

	_, refresh, _, _, err := tokens.GenerateTokenPair("u1", "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	if err := svc.HandleAuth(context.Background(), client, refresh); err == nil {
		t.Fatal("expected error for refresh token")
	}
	if client.Session.IsAuthenticated() {
		t.Error("session should not be authenticated")
	}
}

func TestHandleJoinRoomMembershipGate(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	memberships := &fakeMembershipRepo{active: map[string]bool{"u1:comm-1": true}}
	svc := NewChatRoomService(h, tokens, memberships, &fakeMessageRepo{})

	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})
	client.Session.Authenticate("u1", "alice", "alice@example.com")

	// Not a member of comm-2.
	if err := svc.HandleJoinRoom(context.Background(), client, "comm-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var errFrame domain.ErrorFrame
	if err := json.Unmarshal(recvFrame(t, client), &errFrame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if errFrame.Code != domain.ErrCodeNotAMember {
		t.Errorf("code = %q, want %q", errFrame.Code, domain.ErrCodeNotAMember)
	}
	if client.Session.IsInRoom() {
		t.Error("session should not be in a room")
	}

	// Active member of comm-1.
	if err := svc.HandleJoinRoom(context.Background(), client, "comm-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var joined domain.RoomJoinedFrame
	if err := json.Unmarshal(recvFrame(t, client), &joined); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if joined.Type != domain.FrameTypeRoomJoined || joined.CommunityID != "comm-1" {
		t.Errorf("frame = %+v", joined)
	}
	if got := client.Session.CurrentRoom(); got != "comm-1" {
		t.Errorf("current room = %q, want comm-1", got)
	}
	if got := h.GetRoomClientCount("comm-1"); got != 1 {
		t.Errorf("room client count = %d, want 1", got)
	}
}

func TestHandleJoinRoomUnauthenticated(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	svc := NewChatRoomService(h, tokens, &fakeMembershipRepo{}, &fakeMessageRepo{})
	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})

	if err := svc.HandleJoinRoom(context.Background(), client, "comm-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var errFrame domain.ErrorFrame
	if err := json.Unmarshal(recvFrame(t, client), &errFrame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if errFrame.Code != domain.ErrCodeUnauthorized {
		t.Errorf("code = %q, want %q", errFrame.Code, domain.ErrCodeUnauthorized)
	}
}

func TestHandleChatMessagePersistsThenBroadcasts(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	go h.Run()
	messages := &fakeMessageRepo{}
	memberships := &fakeMembershipRepo{active: map[string]bool{
		"u1:comm-1": true,
		"u2:comm-1": true,
	}}
	svc := NewChatRoomService(h, tokens, memberships, messages)

	sender := hub.NewClient("c1", h, nil, config.WebSocketConfig{})
	sender.Session.Authenticate("u1", "alice", "alice@example.com")
	receiver := hub.NewClient("c2", h, nil, config.WebSocketConfig{})
	receiver.Session.Authenticate("u2", "bob", "bob@example.com")

	if err := svc.HandleJoinRoom(context.Background(), sender, "comm-1"); err != nil {
		t.Fatalf("join sender: %v", err)
	}
	recvFrame(t, sender) // room_joined
	if err := svc.HandleJoinRoom(context.Background(), receiver, "comm-1"); err != nil {
		t.Fatalf("join receiver: %v", err)
	}
	recvFrame(t, receiver) // room_joined

	if err := svc.HandleChatMessage(context.Background(), sender, "hello room"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(messages.saved) != 1 {
		t.Fatalf("saved messages = %d, want 1", len(messages.saved))
	}
	saved := messages.saved[0]
	if saved.CommunityID != "comm-1" || saved.SenderID != "u1" || saved.SenderUsername != "alice" {
		t.Errorf("saved = %+v", saved)
	}
	if saved.Content != "hello room" {
		t.Errorf("content = %q", saved.Content)
	}
	if saved.MessageID == "" {
		t.Error("message id should be assigned")
	}

	var out domain.ChatMessageOut
	if err := json.Unmarshal(recvFrame(t, receiver), &out); err != nil {
		t.Fatalf("unmarshal broadcast: %v", err)
	}
	if out.Type != domain.FrameTypeChatMessage {
		t.Errorf("type = %q", out.Type)
	}
	if out.MessageID != saved.MessageID {
		t.Errorf("broadcast message id %q does not match persisted %q", out.MessageID, saved.MessageID)
	}
	if out.SenderUsername != "alice" || out.Content != "hello room" {
		t.Errorf("broadcast = %+v", out)
	}

	// Sender is excluded from the broadcast.
	assertNoFrame(t, sender)
}

func TestHandleChatMessageSaveFailureSkipsBroadcast(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	go h.Run()
	messages := &fakeMessageRepo{saveErr: errors.New("db down")}
	memberships := &fakeMembershipRepo{active: map[string]bool{
		"u1:comm-1": true,
		"u2:comm-1": true,
	}}
	svc := NewChatRoomService(h, tokens, memberships, messages)

	sender := hub.NewClient("c1", h, nil, config.WebSocketConfig{})
	sender.Session.Authenticate("u1", "alice", "alice@example.com")
	receiver := hub.NewClient("c2", h, nil, config.WebSocketConfig{})
	receiver.Session.Authenticate("u2", "bob", "bob@example.com")

	svc.HandleJoinRoom(context.Background(), sender, "comm-1")
	recvFrame(t, sender)
	svc.HandleJoinRoom(context.Background(), receiver, "comm-1")
	recvFrame(t, receiver)

	if err := svc.HandleChatMessage(context.Background(), sender, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var errFrame domain.ErrorFrame
	if err := json.Unmarshal(recvFrame(t, sender), &errFrame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if errFrame.Code != domain.ErrCodeInternalError {
		t.Errorf("code = %q, want %q", errFrame.Code, domain.ErrCodeInternalError)
	}

	time.Sleep(50 * time.Millisecond)
	assertNoFrame(t, receiver)
}

func TestHandleChatMessageNotInRoom(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	svc := NewChatRoomService(h, tokens, &fakeMembershipRepo{}, &fakeMessageRepo{})
	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})
	client.Session.Authenticate("u1", "alice", "alice@example.com")

	if err := svc.HandleChatMessage(context.Background(), client, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var errFrame domain.ErrorFrame
	if err := json.Unmarshal(recvFrame(t, client), &errFrame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if errFrame.Code != domain.ErrCodeNotInRoom {
		t.Errorf("code = %q, want %q", errFrame.Code, domain.ErrCodeNotInRoom)
	}
}

func TestHandleLeaveRoom(t *testing.T) {
	tokens := newTestTokenManager(t)
	h := hub.NewHub(config.WebSocketConfig{})
	memberships := &fakeMembershipRepo{active: map[string]bool{"u1:comm-1": true}}
	svc := NewChatRoomService(h, tokens, memberships, &fakeMessageRepo{})
	client := hub.NewClient("c1", h, nil, config.WebSocketConfig{})
	client.Session.Authenticate("u1", "alice", "alice@example.com")

	svc.HandleJoinRoom(context.Background(), client, "comm-1")
	recvFrame(t, client)

	if err := svc.HandleLeaveRoom(context.Background(), client); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Session.IsInRoom() {
		t.Error("session should have left the room")
	}
	if got := h.GetRoomClientCount("comm-1"); got != 0 {
		t.Errorf("room client count = %d, want 0", got)
	}
}
