package events

import (
	"context"
	"time"

	"github.com/devconnect/devconnect-backend/pkg/log"
)

// InlineRefreshProducer runs the handler in-process when Kafka is
// disabled. Delivery is best-effort, same as the broker path.
type InlineRefreshProducer struct {
	handler RefreshHandler
	timeout time.Duration
}

func NewInlineRefreshProducer(handler RefreshHandler) *InlineRefreshProducer {
	return &InlineRefreshProducer{
		handler: handler,
		timeout: 60 * time.Second,
	}
}

func (p *InlineRefreshProducer) Publish(ctx context.Context, event *RefreshEvent) error {
	go func() {
		handleCtx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.handler.HandleRefresh(handleCtx, event); err != nil {
			l := log.L()
			l.Error().Err(err).
				Str("entity_type", event.EntityType).
				Str("entity_id", event.EntityID).
				Msg("failed to handle refresh event")
		}
	}()
	return nil
}

func (p *InlineRefreshProducer) Close() error {
	return nil
}
