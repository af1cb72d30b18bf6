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

type fakeExtractor struct {
	result domain.IntentResult
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, message string) (domain.IntentResult, error) {
	return f.result, f.err
}

type fakeSemanticSearch struct {
	gotQuery   string
	gotLimit   int
	developers []domain.DeveloperResult
	projects   []domain.ProjectResult
	err        error
}

func (f *fakeSemanticSearch) SearchDevelopers(ctx context.Context, query string, limit int) ([]domain.DeveloperResult, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.developers, f.err
}

func (f *fakeSemanticSearch) SearchProjects(ctx context.Context, query string, limit int) ([]domain.ProjectResult, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.projects, f.err
}

type fakeSearchCache struct {
	mu      sync.Mutex
	entries map[string]*domain.AssistantReply
}

func newFakeSearchCache() *fakeSearchCache {
	return &fakeSearchCache{entries: make(map[string]*domain.AssistantReply)}
}

func (f *fakeSearchCache) Get(ctx context.Context, key string) (*domain.AssistantReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.entries[key]; ok {
		return r, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeSearchCache) Set(ctx context.Context, key string, reply *domain.AssistantReply, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = reply
	return nil
}

func (f *fakeSearchCache) BuildKey(intent, query string, limit int) string {
	return fmt.Sprintf("assistant:%s:%s:%d", intent, query, limit)
}

func (f *fakeSearchCache) Close() error { return nil }

func TestChatFindPeople(t *testing.T) {
	search := &fakeSemanticSearch{developers: []domain.DeveloperResult{
		{ID: "u1", Username: "alice", Similarity: domain.Truncate3(0.9123)},
		{ID: "u2", Username: "bob", Similarity: domain.Truncate3(0.8456)},
	}}
	extractor := &fakeExtractor{result: domain.IntentResult{
		Intent: domain.IntentFindPeople,
		Domain: "React frontend",
	}}
	svc := NewAssistantService(extractor, search, newFakeSearchCache(), time.Minute, 5)

	reply, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "find me a React dev"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Intent != domain.IntentFindPeople {
		t.Errorf("intent = %q", reply.Intent)
	}
	if len(reply.Developers) != 2 {
		t.Errorf("developers = %d, want 2", len(reply.Developers))
	}
	if len(reply.Projects) != 0 {
		t.Errorf("projects = %d, want 0", len(reply.Projects))
	}
	if search.gotQuery != "React frontend" {
		t.Errorf("query = %q, want extracted domain", search.gotQuery)
	}
	if search.gotLimit != 5 {
		t.Errorf("limit = %d, want 5", search.gotLimit)
	}
}

func TestChatFindProjects(t *testing.T) {
	search := &fakeSemanticSearch{projects: []domain.ProjectResult{
		{ID: "p1", Title: "Go CLI", Similarity: 0.77},
	}}
	extractor := &fakeExtractor{result: domain.IntentResult{
		Intent: domain.IntentFindProjects,
		Domain: "Go open source",
	}}
	svc := NewAssistantService(extractor, search, newFakeSearchCache(), time.Minute, 5)

	reply, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "any go projects?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Intent != domain.IntentFindProjects {
		t.Errorf("intent = %q", reply.Intent)
	}
	if len(reply.Projects) != 1 {
		t.Errorf("projects = %d, want 1", len(reply.Projects))
	}
	if len(reply.Developers) != 0 {
		t.Errorf("developers = %d, want 0", len(reply.Developers))
	}
}

func TestChatEmptyDomainFallsBackToMessage(t *testing.T) {
	search := &fakeSemanticSearch{}
	extractor := &fakeExtractor{result: domain.IntentResult{Intent: domain.IntentFindPeople}}
	svc := NewAssistantService(extractor, search, newFakeSearchCache(), time.Minute, 5)

	_, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "rust wizards wanted"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if search.gotQuery != "rust wizards wanted" {
		t.Errorf("query = %q, want raw message", search.gotQuery)
	}
}

func TestChatUnrecognizedIntent(t *testing.T) {
	search := &fakeSemanticSearch{err: errors.New("search should not run")}
	extractor := &fakeExtractor{result: domain.IntentResult{Intent: "other"}}
	svc := NewAssistantService(extractor, search, newFakeSearchCache(), time.Minute, 5)

	reply, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Message != fallbackReply {
		t.Errorf("message = %q, want fallback", reply.Message)
	}
	if reply.Intent != "" || reply.Developers != nil || reply.Projects != nil {
		t.Errorf("reply = %+v, want fallback only", reply)
	}
}

func TestChatExtractorErrorPropagates(t *testing.T) {
	wantErr := errors.New("completion upstream down")
	svc := NewAssistantService(&fakeExtractor{err: wantErr}, &fakeSemanticSearch{}, newFakeSearchCache(), time.Minute, 5)

	_, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "hi"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestChatSearchErrorPropagates(t *testing.T) {
	wantErr := errors.New("db down")
	extractor := &fakeExtractor{result: domain.IntentResult{Intent: domain.IntentFindPeople, Domain: "Go"}}
	svc := NewAssistantService(extractor, &fakeSemanticSearch{err: wantErr}, newFakeSearchCache(), time.Minute, 5)

	_, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "find a go dev"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestChatCacheHitSkipsSearch(t *testing.T) {
	search := &fakeSemanticSearch{err: errors.New("search should not run")}
	extractor := &fakeExtractor{result: domain.IntentResult{Intent: domain.IntentFindPeople, Domain: "Go"}}
	searchCache := newFakeSearchCache()
	cached := &domain.AssistantReply{
		Message: "Here are 1 developers matching \"Go\".",
		Intent:  domain.IntentFindPeople,
		Developers: []domain.DeveloperResult{
			{ID: "u1", Username: "alice", Similarity: domain.Truncate3(0.91)},
		},
	}
	searchCache.entries[searchCache.BuildKey(domain.IntentFindPeople, "Go", 5)] = cached
	svc := NewAssistantService(extractor, search, searchCache, time.Minute, 5)

	reply, err := svc.Chat(context.Background(), "u9", &domain.AssistantRequest{Message: "find a go dev"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != cached {
		t.Error("expected the cached reply to be returned")
	}
}
