package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

type KafkaRefreshConsumer struct {
	consumer *kafka.Consumer
	topic    string
	groupID  string
	handler  RefreshHandler
}

func NewKafkaRefreshConsumer(cfg config.KafkaConfig, handler RefreshHandler) (*KafkaRefreshConsumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":       cfg.Brokers,
		"group.id":                cfg.GroupID,
		"auto.offset.reset":       "earliest",
		"enable.auto.commit":      true,
		"auto.commit.interval.ms": 5000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return &KafkaRefreshConsumer{
		consumer: c,
		topic:    cfg.Topic,
		groupID:  cfg.GroupID,
		handler:  handler,
	}, nil
}

func (c *KafkaRefreshConsumer) Run(ctx context.Context) error {
	if err := c.consumer.Subscribe(c.topic, nil); err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", c.topic, err)
	}

	l := log.L()
	l.Info().Str("topic", c.topic).Str("group", c.groupID).Msg("refresh consumer started")

	for {
		select {
		case <-ctx.Done():
			l.Info().Msg("refresh consumer stopping")
			return nil
		default:
		}

		ev := c.consumer.Poll(500)
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case *kafka.Message:
			var event RefreshEvent
			if err := json.Unmarshal(e.Value, &event); err != nil {
				l.Error().Err(err).Msg("failed to unmarshal refresh event")
				continue
			}
			if err := c.handler.HandleRefresh(ctx, &event); err != nil {
				l.Error().Err(err).
					Str("entity_type", event.EntityType).
					Str("entity_id", event.EntityID).
					Msg("failed to handle refresh event")
			}
		case kafka.Error:
			l.Error().Err(e).Bool("fatal", e.IsFatal()).Msg("kafka error")
			if e.IsFatal() {
				return fmt.Errorf("fatal kafka error: %w", e)
			}
		case kafka.OffsetsCommitted:
			// Normal auto-commit acknowledgement
		default:
			// Ignore other events (rebalance, etc.)
		}
	}
}

func (c *KafkaRefreshConsumer) Close() error {
	return c.consumer.Close()
}
