package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"
)

const readRetryDelay = time.Second

// Consumer drops cached analytics snapshots whenever an order changes.
type Consumer struct {
	Reader MessageReader
	Cache  SnapshotCache
}

func NewConsumer(reader MessageReader, cache SnapshotCache) *Consumer {
	return &Consumer{
		Reader: reader,
		Cache:  cache,
	}
}

// Start reads order events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	slog.Info("order event consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				slog.Info("order event consumer stopped")
				return
			}
			slog.Error("failed to read order event", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			slog.Warn("skipping undecodable order event", "offset", message.Offset, "error", err)
			continue
		}
		c.ProcessEvent(ctx, event)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	if !event.AffectsReports() {
		slog.Debug("ignoring order event", "type", event.Type)
		return
	}
	if err := c.Cache.Invalidate(ctx); err != nil {
		slog.Error("failed to invalidate analytics cache", "type", event.Type, "order_id", event.OrderID, "error", err)
		return
	}
	slog.Debug("analytics cache invalidated", "type", event.Type, "order_id", event.OrderID)
}
