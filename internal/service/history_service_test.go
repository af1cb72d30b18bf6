package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/devconnect/devconnect-backend/internal/cache"
	"github.com/devconnect/devconnect-backend/internal/domain"
)

type fakeHistoryCache struct {
	mu      sync.Mutex
	entries map[string]*cache.HistoryCacheResult
	getErr  error
	gets    int
	sets    int
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{entries: make(map[string]*cache.HistoryCacheResult)}
}

func (f *fakeHistoryCache) Get(ctx context.Context, key string) (*cache.HistoryCacheResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if r, ok := f.entries[key]; ok {
		return r, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeHistoryCache) Set(ctx context.Context, key string, result *cache.HistoryCacheResult, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.entries[key] = result
	return nil
}

func (f *fakeHistoryCache) BuildKey(communityID, cursor string, limit int) string {
	return fmt.Sprintf("history:%s:%s:%d", communityID, cursor, limit)
}

func (f *fakeHistoryCache) Close() error { return nil }

func (f *fakeHistoryCache) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func messagePage(n int) []domain.ChatMessage {
	msgs := make([]domain.ChatMessage, n)
	for i := range msgs {
		msgs[i] = domain.ChatMessage{
			MessageID:   fmt.Sprintf("msg-%03d", n-i),
			CommunityID: "comm-1",
			SenderID:    "u1",
			Content:     fmt.Sprintf("message %d", n-i),
		}
	}
	return msgs
}

func TestGetChatHistoryMembershipGate(t *testing.T) {
	svc := NewHistoryService(&fakeMessageRepo{}, &fakeMembershipRepo{}, newFakeHistoryCache(), time.Minute)

	_, err := svc.GetChatHistory(context.Background(), "u1", "comm-1", "", 10)
	if !errors.Is(err, ErrNotAMember) {
		t.Fatalf("err = %v, want ErrNotAMember", err)
	}
}

func TestGetChatHistoryLatestPageSkipsCache(t *testing.T) {
	messages := &fakeMessageRepo{history: messagePage(5)}
	memberships := &fakeMembershipRepo{active: map[string]bool{"u1:comm-1": true}}
	historyCache := newFakeHistoryCache()
	svc := NewHistoryService(messages, memberships, historyCache, time.Minute)

	resp, err := svc.GetChatHistory(context.Background(), "u1", "comm-1", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Messages) != 5 {
		t.Errorf("messages = %d, want 5", len(resp.Messages))
	}
	if resp.HasMore {
		t.Error("has_more should be false")
	}
	if resp.NextCursor != "" {
		t.Errorf("next_cursor = %q, want empty", resp.NextCursor)
	}
	if historyCache.getCount() != 0 {
		t.Error("latest page should not consult the cache")
	}
}

func TestGetChatHistoryPagination(t *testing.T) {
	// Repo holds 11 messages; a limit of 10 reads 11 to detect more.
	messages := &fakeMessageRepo{history: messagePage(11)}
	memberships := &fakeMembershipRepo{active: map[string]bool{"u1:comm-1": true}}
	svc := NewHistoryService(messages, memberships, newFakeHistoryCache(), time.Minute)

	resp, err := svc.GetChatHistory(context.Background(), "u1", "comm-1", "msg-999", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if messages.gotCursor != "msg-999" {
		t.Errorf("cursor = %q, want msg-999", messages.gotCursor)
	}
	if messages.gotLimit != 11 {
		t.Errorf("repo limit = %d, want limit+1 = 11", messages.gotLimit)
	}
	if len(resp.Messages) != 10 {
		t.Fatalf("messages = %d, want 10", len(resp.Messages))
	}
	if !resp.HasMore {
		t.Error("has_more should be true")
	}
	if want := resp.Messages[len(resp.Messages)-1].MessageID; resp.NextCursor != want {
		t.Errorf("next_cursor = %q, want %q", resp.NextCursor, want)
	}
}

func TestGetChatHistoryCacheHit(t *testing.T) {
	messages := &fakeMessageRepo{historyErr: errors.New("repo should not be called")}
	memberships := &fakeMembershipRepo{active: map[string]bool{"u1:comm-1": true}}
	historyCache := newFakeHistoryCache()
	key := historyCache.BuildKey("comm-1", "msg-050", 10)
	historyCache.entries[key] = &cache.HistoryCacheResult{
		Messages:   messagePage(10),
		NextCursor: "msg-040",
		HasMore:    true,
	}
	svc := NewHistoryService(messages, memberships, historyCache, time.Minute)

	resp, err := svc.GetChatHistory(context.Background(), "u1", "comm-1", "msg-050", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Messages) != 10 || resp.NextCursor != "msg-040" || !resp.HasMore {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetChatHistoryLimitClamp(t *testing.T) {
	messages := &fakeMessageRepo{history: messagePage(3)}
	memberships := &fakeMembershipRepo{active: map[string]bool{"u1:comm-1": true}}
	svc := NewHistoryService(messages, memberships, newFakeHistoryCache(), time.Minute)

	for _, limit := range []int{0, -1, 500} {
		if _, err := svc.GetChatHistory(context.Background(), "u1", "comm-1", "", limit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if messages.gotLimit != defaultHistoryLimit+1 {
			t.Errorf("limit %d: repo limit = %d, want %d", limit, messages.gotLimit, defaultHistoryLimit+1)
		}
	}
}
