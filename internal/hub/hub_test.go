package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/devconnect/devconnect-backend/internal/config"
)

func recvMessage(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("unexpected message: %s", data)
	default:
	}
}

func TestBroadcastToRoomExcludesSender(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})
	go h.Run()

	sender := NewClient("c1", h, nil, config.WebSocketConfig{})
	receiver := NewClient("c2", h, nil, config.WebSocketConfig{})
	h.JoinRoom(sender, "room-1")
	h.JoinRoom(receiver, "room-1")

	payload := map[string]string{"type": "chat_message", "content": "hi"}
	if err := h.BroadcastToRoom("room-1", payload, sender.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(recvMessage(t, receiver), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["content"] != "hi" {
		t.Errorf("content = %q", got["content"])
	}

	assertNoMessage(t, sender)
}

func TestBroadcastToRoomIsolatesRooms(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})
	go h.Run()

	inRoom := NewClient("c1", h, nil, config.WebSocketConfig{})
	otherRoom := NewClient("c2", h, nil, config.WebSocketConfig{})
	h.JoinRoom(inRoom, "room-1")
	h.JoinRoom(otherRoom, "room-2")

	if err := h.BroadcastToRoom("room-1", map[string]string{"content": "hi"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recvMessage(t, inRoom)

	time.Sleep(50 * time.Millisecond)
	assertNoMessage(t, otherRoom)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})
	go h.Run()

	client := NewClient("c1", h, nil, config.WebSocketConfig{})
	h.JoinRoom(client, "room-1")
	if got := h.GetRoomClientCount("room-1"); got != 1 {
		t.Fatalf("room count = %d, want 1", got)
	}

	h.LeaveRoom(client, "room-1")
	if got := h.GetRoomClientCount("room-1"); got != 0 {
		t.Fatalf("room count = %d, want 0", got)
	}

	if err := h.BroadcastToRoom("room-1", map[string]string{"content": "hi"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	assertNoMessage(t, client)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	h := NewHub(config.WebSocketConfig{})
	go h.Run()

	client := NewClient("c1", h, nil, config.WebSocketConfig{})
	h.Register(client)
	h.JoinRoom(client, "room-1")
	h.Unregister(client)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected closed channel, got message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	if got := h.GetRoomClientCount("room-1"); got != 0 {
		t.Errorf("room count = %d, want 0", got)
	}
}
