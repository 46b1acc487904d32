// Package repository defines persistence interfaces for the outbox event
// log. Product data itself lives on the ledger and in the metadata store;
// only supply-chain events are written here.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplyonchain/tracker/internal/model"
)

// EventRepository manages outbox event rows.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	ListPending(ctx context.Context, limit int) ([]*model.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus) error
}

// DefaultBatchLimit caps how many pending events a worker pass processes.
const DefaultBatchLimit = 100
