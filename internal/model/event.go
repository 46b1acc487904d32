package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the status of an event in the outbox pattern.
type EventStatus string

const (
	// EventStatusPending indicates the event has been created but not yet published.
	EventStatusPending EventStatus = "pending"
	// EventStatusProcessed indicates the event has been published to the queue.
	EventStatusProcessed EventStatus = "processed"
	// EventStatusFailed indicates publishing the event has failed.
	EventStatusFailed EventStatus = "failed"
)

// Supply-chain event types written by the chain service.
const (
	EventTypeProductRegistered  = "product.registered"
	EventTypeProductTransferred = "product.transferred"
	EventTypeMetadataStored     = "metadata.stored"
)

// Event is an outbox row recording a supply-chain occurrence to be
// published to the notification queue.
type Event struct {
	ID          uuid.UUID
	EventType   string
	EventData   json.RawMessage
	Status      EventStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// InitMeta initializes the event metadata including ID and timestamps.
func (e *Event) InitMeta() {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	if e.Status == "" {
		e.Status = EventStatusPending
	}
}
