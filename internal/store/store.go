// Package store holds the off-chain metadata documents. The store is
// best-effort: it carries descriptive fields and QR images, never state.
package store

import (
	"context"
	"errors"

	"github.com/supplyonchain/tracker/internal/model"
)

// ErrNotFound is returned when no document matches the lookup key.
var ErrNotFound = errors.New("metadata record not found")

// Store is the metadata document collection. Documents are written once at
// product creation and never updated or deleted.
type Store interface {
	Create(ctx context.Context, record *model.MetadataRecord) (*model.MetadataRecord, error)
	FindByTransactionHash(ctx context.Context, hash string) (*model.MetadataRecord, error)
	FindByBatchID(ctx context.Context, batchID string) (*model.MetadataRecord, error)
	FindByManufacturer(ctx context.Context, address string) ([]*model.MetadataRecord, error)
}
