package service

import (
	"context"
	"log/slog"

	"github.com/supplyonchain/tracker/internal/ledger"
	"github.com/supplyonchain/tracker/internal/metrics"
	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/qr"
	"github.com/supplyonchain/tracker/internal/repository"
	"github.com/supplyonchain/tracker/internal/store"
)

// ChainService drives the state-changing ledger operations and keeps the
// off-chain side (metadata mirror, outbox) in step with them.
type ChainService struct {
	ledger ledger.Client
	store  store.Store
	events repository.EventRepository
}

// NewChainService creates a new ChainService instance.
func NewChainService(ledgerClient ledger.Client, metadataStore store.Store, events repository.EventRepository) *ChainService {
	return &ChainService{
		ledger: ledgerClient,
		store:  metadataStore,
		events: events,
	}
}

// RegisterProductInput is the creation request for a new product.
type RegisterProductInput struct {
	Name        string
	BatchID     string
	Wholesaler  string
	Retailer    string
	Description string
	CreatedAt   string
}

// RegisterProductResult reports what RegisterProduct accomplished. Metadata
// is nil when the ledger write succeeded but the mirror write did not.
type RegisterProductResult struct {
	TransactionHash string
	Metadata        *model.MetadataRecord
}

// RegisterProduct registers a product on the ledger, then mirrors the
// descriptive fields into the metadata store with a generated QR label.
// The ledger write is the operation; a failed mirror write degrades the
// result but never fails the call.
func (s *ChainService) RegisterProduct(ctx context.Context, input RegisterProductInput) (*RegisterProductResult, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	txHash, err := s.ledger.CreateProduct(ctx, input.Name, input.BatchID, input.Wholesaler, input.Retailer)
	if err != nil {
		return nil, &UpstreamError{System: "ledger", Err: err}
	}
	metrics.ProductsRegistered.Inc()

	result := &RegisterProductResult{TransactionHash: txHash}

	manufacturer := s.ledger.Signer()
	code, err := qr.Encode(qr.Payload{
		TransactionHash: txHash,
		BatchID:         input.BatchID,
		Manufacturer:    manufacturer,
	})
	if err != nil {
		slog.Error("Failed to generate QR label, product mirrored without one",
			slog.String("txHash", txHash), slog.Any("err", err))
	}

	record := &model.MetadataRecord{
		TransactionHash: txHash,
		Manufacturer:    manufacturer,
		Name:            input.Name,
		BatchID:         input.BatchID,
		Wholesaler:      input.Wholesaler,
		Retailer:        input.Retailer,
		Description:     input.Description,
		CreatedAt:       input.CreatedAt,
		QRCode:          code,
	}
	if created, err := s.store.Create(ctx, record); err != nil {
		slog.Error("Ledger write succeeded but metadata mirror failed",
			slog.String("txHash", txHash), slog.Any("err", err))
	} else {
		metrics.MetadataStored.Inc()
		result.Metadata = created
	}

	emitOutboxEvent(ctx, s.events, model.EventTypeProductRegistered, map[string]interface{}{
		"transaction_hash": txHash,
		"batch_id":         input.BatchID,
		"name":             input.Name,
		"manufacturer":     manufacturer,
	})

	return result, nil
}

// TransferResult reports a completed ownership transfer.
type TransferResult struct {
	TransactionHash string
	Recipient       string
}

// TransferProduct hands the product to the next party in the chain on the
// caller's behalf. The caller must be the current owner and hold a role on
// the product; retailers must name the consumer address.
func (s *ChainService) TransferProduct(ctx context.Context, id uint64, caller, consumerAddr string) (*TransferResult, error) {
	if caller == "" {
		return nil, NewValidationError("caller", "must not be empty")
	}

	rec, err := s.ledger.GetProduct(ctx, id)
	if err != nil {
		return nil, &UpstreamError{System: "ledger", Err: err}
	}
	if !rec.Exists {
		return nil, ErrNotFound
	}
	if rec.CurrentOwner != caller {
		return nil, ErrUnauthorized
	}

	recipient, err := NextRecipient(rec, caller, consumerAddr)
	if err != nil {
		return nil, err
	}

	txHash, err := s.ledger.TransferOwnership(ctx, id, recipient)
	if err != nil {
		return nil, &UpstreamError{System: "ledger", Err: err}
	}
	metrics.TransfersCompleted.Inc()

	emitOutboxEvent(ctx, s.events, model.EventTypeProductTransferred, map[string]interface{}{
		"product_id":       id,
		"batch_id":         rec.BatchID,
		"transaction_hash": txHash,
		"actor":            caller,
		"recipient":        recipient,
	})

	return &TransferResult{TransactionHash: txHash, Recipient: recipient}, nil
}

func validateRegisterInput(input RegisterProductInput) error {
	switch {
	case input.Name == "":
		return NewValidationError("name", "must not be empty")
	case input.BatchID == "":
		return NewValidationError("batchId", "must not be empty")
	case input.Wholesaler == "":
		return NewValidationError("wholesaler", "must not be empty")
	case input.Retailer == "":
		return NewValidationError("retailer", "must not be empty")
	}
	return nil
}
