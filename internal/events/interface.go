package events

import "context"

// Entity kinds carried in refresh events.
const (
	EntityUser    = "user"
	EntityProject = "project"
)

// RefreshEvent asks the background refresher to recompute an entity's
// embedding and keyword index document.
type RefreshEvent struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Deleted    bool   `json:"deleted,omitempty"`
}

// RefreshProducer publishes refresh events.
type RefreshProducer interface {
	Publish(ctx context.Context, event *RefreshEvent) error
	Close() error
}

// RefreshHandler processes refresh events.
type RefreshHandler interface {
	HandleRefresh(ctx context.Context, event *RefreshEvent) error
}
