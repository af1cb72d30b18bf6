package assistant

import (
	"context"

	"github.com/devconnect/devconnect-backend/internal/domain"
)

// Embedder produces a query embedding for a piece of text.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Completer produces a chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// IntentExtractor classifies a chat message into an intent and a domain
// phrase suitable for embedding search.
type IntentExtractor interface {
	Extract(ctx context.Context, message string) (domain.IntentResult, error)
}
