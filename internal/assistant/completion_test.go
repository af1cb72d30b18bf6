package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devconnect/devconnect-backend/internal/config"
)

func TestComplete(t *testing.T) {
	var gotReq completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"intent": "find_people", "domain": "Go"}`}},
			},
		})
	}))
	defer server.Close()

	client := NewCompletionClient(config.CompletionConfig{
		BaseURL: server.URL,
		Model:   "test-model",
	})

	reply, err := client.Complete(context.Background(), "classify this", "find me a Go dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != `{"intent": "find_people", "domain": "Go"}` {
		t.Errorf("reply = %q", reply)
	}

	if len(gotReq.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("roles = %q, %q", gotReq.Messages[0].Role, gotReq.Messages[1].Role)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewCompletionClient(config.CompletionConfig{BaseURL: server.URL})

	if _, err := client.Complete(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
