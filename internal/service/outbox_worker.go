package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/supplyonchain/tracker/internal/metrics"
	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/repository"
	sqlrepo "github.com/supplyonchain/tracker/internal/repository/sql"
	"github.com/supplyonchain/tracker/internal/sqs"
)

// eventPublisher is the queue-side surface the worker needs.
type eventPublisher interface {
	PublishSupplyChainMessage(ctx context.Context, msg sqs.SupplyChainMessage) error
}

// OutboxWorker drains pending outbox events into the notification queue.
// Events are marked processed only after a successful publish, so delivery
// is at-least-once and consumers must tolerate duplicates.
type OutboxWorker struct {
	events    repository.EventRepository
	publisher eventPublisher
	interval  time.Duration
}

// NewOutboxWorker creates a new OutboxWorker instance.
func NewOutboxWorker(events repository.EventRepository, publisher eventPublisher, interval time.Duration) *OutboxWorker {
	return &OutboxWorker{
		events:    events,
		publisher: publisher,
		interval:  interval,
	}
}

// Start polls the outbox until the context is cancelled.
func (w *OutboxWorker) Start(ctx context.Context) {
	slog.Info("Starting outbox worker", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping outbox worker")
			return
		case <-ticker.C:
			if err := w.processPending(ctx); err != nil {
				slog.Error("Outbox pass failed", slog.Any("err", err))
			}
		}
	}
}

func (w *OutboxWorker) processPending(ctx context.Context) error {
	events, err := w.events.ListPending(ctx, repository.DefaultBatchLimit)
	if err != nil {
		return fmt.Errorf("failed to list pending events: %w", err)
	}

	for _, event := range events {
		if err := w.publishEvent(ctx, event); err != nil {
			slog.Error("Failed to publish outbox event",
				slog.String("eventID", event.ID.String()),
				slog.String("eventType", event.EventType),
				slog.Any("err", err))
			if err := w.events.UpdateStatus(ctx, event.ID, model.EventStatusFailed); err != nil {
				slog.Error("Failed to mark event failed", slog.String("eventID", event.ID.String()), slog.Any("err", err))
			}
			continue
		}

		if err := w.events.UpdateStatus(ctx, event.ID, model.EventStatusProcessed); err != nil {
			slog.Error("Failed to mark event processed", slog.String("eventID", event.ID.String()), slog.Any("err", err))
			continue
		}
		metrics.EventsPublished.WithLabelValues(event.EventType).Inc()
	}

	return nil
}

// eventPayload is the superset of fields the services record per event type.
type eventPayload struct {
	ProductID       uint64 `json:"product_id"`
	Name            string `json:"name"`
	BatchID         string `json:"batch_id"`
	TransactionHash string `json:"transaction_hash"`
	Manufacturer    string `json:"manufacturer"`
	Actor           string `json:"actor"`
	Recipient       string `json:"recipient"`
}

func (w *OutboxWorker) publishEvent(ctx context.Context, event *model.Event) error {
	var payload eventPayload
	if err := json.Unmarshal(event.EventData, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal event data: %w", err)
	}

	var action string
	switch event.EventType {
	case model.EventTypeProductRegistered:
		action = sqs.ActionRegistered
	case model.EventTypeProductTransferred:
		action = sqs.ActionTransferred
	case model.EventTypeMetadataStored:
		action = sqs.ActionMetadataStored
	default:
		return fmt.Errorf("unknown event type %q", event.EventType)
	}

	actor := payload.Actor
	if actor == "" {
		actor = payload.Manufacturer
	}

	return w.publisher.PublishSupplyChainMessage(ctx, sqs.SupplyChainMessage{
		Action:          action,
		ProductID:       payload.ProductID,
		Name:            payload.Name,
		BatchID:         payload.BatchID,
		TransactionHash: payload.TransactionHash,
		Actor:           actor,
		Recipient:       payload.Recipient,
	})
}

// emitOutboxEvent writes an outbox event. Delivery is best-effort relative
// to the primary write: a failed event insert is logged, never surfaced.
func emitOutboxEvent(ctx context.Context, events repository.EventRepository, eventType string, data interface{}) {
	if events == nil {
		return
	}
	event, err := sqlrepo.NewEvent(eventType, data)
	if err != nil {
		slog.Error("Failed to build outbox event", slog.String("eventType", eventType), slog.Any("err", err))
		return
	}
	if _, err := events.Create(ctx, event); err != nil {
		slog.Error("Failed to store outbox event", slog.String("eventType", eventType), slog.Any("err", err))
	}
}
