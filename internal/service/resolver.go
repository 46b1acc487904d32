package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/qr"
	"github.com/supplyonchain/tracker/internal/store"
)

// ResolveProductID maps a scanned label payload to an on-chain product id.
// Resolution tries the cheapest source first:
//
//  1. an id embedded in the payload itself,
//  2. the metadata document filed under the payload's transaction hash,
//  3. the ledger's batch-id registry.
//
// A missing or failing metadata store never blocks resolution; the ledger
// fallback still runs. ErrUnresolved means every source came up empty —
// even then the metadata document, when one was found, is returned so
// callers can display its descriptive fields.
func (s *TrackingService) ResolveProductID(ctx context.Context, payload qr.Payload) (uint64, *model.MetadataRecord, error) {
	if payload.ID != 0 {
		return payload.ID, nil, nil
	}

	batchID := payload.BatchID
	var meta *model.MetadataRecord

	if payload.TransactionHash != "" {
		found, err := s.store.FindByTransactionHash(ctx, payload.TransactionHash)
		switch {
		case err == nil:
			meta = found
			if meta.ProductID != 0 {
				return meta.ProductID, meta, nil
			}
			if batchID == "" {
				batchID = meta.BatchID
			}
		case errors.Is(err, store.ErrNotFound):
			// Fall through to the batch-id lookup.
		default:
			slog.Warn("Metadata lookup failed during resolution",
				slog.String("transactionHash", payload.TransactionHash), slog.Any("err", err))
		}
	}

	if batchID == "" {
		return 0, meta, ErrUnresolved
	}

	id, err := s.ledger.GetProductIDByBatchID(ctx, batchID)
	if err != nil {
		return 0, meta, &UpstreamError{System: "ledger", Err: err}
	}
	if id == 0 {
		return 0, meta, ErrUnresolved
	}
	return id, meta, nil
}
