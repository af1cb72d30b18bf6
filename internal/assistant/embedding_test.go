package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devconnect/devconnect-backend/internal/config"
)

func TestEmbedQuery(t *testing.T) {
	var gotReq embeddingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q, want /embeddings", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer server.Close()

	client := NewEmbeddingClient(config.EmbeddingConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})

	embedding, err := client.EmbedQuery(context.Background(), "golang developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(embedding) != 3 {
		t.Fatalf("embedding length = %d, want 3", len(embedding))
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q, want test-model", gotReq.Model)
	}
	if len(gotReq.Input) != 1 || gotReq.Input[0] != "golang developer" {
		t.Errorf("input = %v", gotReq.Input)
	}
	if gotReq.EncodingFormat != "float" {
		t.Errorf("encoding_format = %q, want float", gotReq.EncodingFormat)
	}
	if gotReq.InputType != "query" {
		t.Errorf("input_type = %q, want query", gotReq.InputType)
	}
	if gotReq.Truncate != "NONE" {
		t.Errorf("truncate = %q, want NONE", gotReq.Truncate)
	}
}

func TestEmbedQueryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewEmbeddingClient(config.EmbeddingConfig{BaseURL: server.URL})

	if _, err := client.EmbedQuery(context.Background(), "query"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestEmbedQueryEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	}))
	defer server.Close()

	client := NewEmbeddingClient(config.EmbeddingConfig{BaseURL: server.URL})

	if _, err := client.EmbedQuery(context.Background(), "query"); err == nil {
		t.Fatal("expected error for empty data")
	}
}
