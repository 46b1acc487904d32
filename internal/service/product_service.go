package service

import (
	"context"
	"errors"

	"github.com/supplyonchain/tracker/internal/metrics"
	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/qr"
	"github.com/supplyonchain/tracker/internal/repository"
	"github.com/supplyonchain/tracker/internal/store"
)

// ProductService manages the off-chain metadata documents.
type ProductService struct {
	store  store.Store
	events repository.EventRepository
}

// NewProductService creates a new ProductService instance.
func NewProductService(metadataStore store.Store, events repository.EventRepository) *ProductService {
	return &ProductService{
		store:  metadataStore,
		events: events,
	}
}

// StoreMetadata validates and persists a metadata document for a mined
// creation transaction. When the document carries no QR image one is
// generated from the correlation fields.
func (s *ProductService) StoreMetadata(ctx context.Context, record *model.MetadataRecord) (*model.MetadataRecord, error) {
	if err := validateMetadata(record); err != nil {
		return nil, err
	}

	if record.QRCode == "" {
		code, err := qr.Encode(qr.Payload{
			TransactionHash: record.TransactionHash,
			BatchID:         record.BatchID,
			Manufacturer:    record.Manufacturer,
			ID:              record.ProductID,
		})
		if err != nil {
			return nil, &UpstreamError{System: "qr encoder", Err: err}
		}
		record.QRCode = code
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, &UpstreamError{System: "metadata store", Err: err}
	}
	metrics.MetadataStored.Inc()

	emitOutboxEvent(ctx, s.events, model.EventTypeMetadataStored, map[string]interface{}{
		"transaction_hash": created.TransactionHash,
		"batch_id":         created.BatchID,
		"manufacturer":     created.Manufacturer,
	})

	return created, nil
}

// MetadataByTransaction returns the document filed under a creation
// transaction hash.
func (s *ProductService) MetadataByTransaction(ctx context.Context, hash string) (*model.MetadataRecord, error) {
	if hash == "" {
		return nil, NewValidationError("transactionHash", "must not be empty")
	}

	record, err := s.store.FindByTransactionHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &UpstreamError{System: "metadata store", Err: err}
	}
	return record, nil
}

// MetadataByManufacturer lists every document the address filed, newest first.
func (s *ProductService) MetadataByManufacturer(ctx context.Context, address string) ([]*model.MetadataRecord, error) {
	if address == "" {
		return nil, NewValidationError("address", "must not be empty")
	}

	records, err := s.store.FindByManufacturer(ctx, address)
	if err != nil {
		return nil, &UpstreamError{System: "metadata store", Err: err}
	}
	if records == nil {
		records = []*model.MetadataRecord{}
	}
	return records, nil
}

func validateMetadata(record *model.MetadataRecord) error {
	switch {
	case record.TransactionHash == "":
		return NewValidationError("transactionHash", "must not be empty")
	case record.Manufacturer == "":
		return NewValidationError("manufacturer", "must not be empty")
	case record.Name == "":
		return NewValidationError("name", "must not be empty")
	case record.BatchID == "":
		return NewValidationError("batchId", "must not be empty")
	case record.Wholesaler == "":
		return NewValidationError("wholesaler", "must not be empty")
	case record.Retailer == "":
		return NewValidationError("retailer", "must not be empty")
	}
	return nil
}
