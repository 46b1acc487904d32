package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/supplyonchain/tracker/internal/ledger"
	"github.com/supplyonchain/tracker/internal/model"
	"github.com/supplyonchain/tracker/internal/store"
)

// maxConcurrentFetches bounds parallel ledger reads during reconciliation.
const maxConcurrentFetches = 8

// TrackingService joins ledger state with off-chain metadata into the views
// the API serves. It holds no state of its own.
type TrackingService struct {
	ledger ledger.Client
	store  store.Store
}

// NewTrackingService creates a new TrackingService instance.
func NewTrackingService(ledgerClient ledger.Client, metadataStore store.Store) *TrackingService {
	return &TrackingService{
		ledger: ledgerClient,
		store:  metadataStore,
	}
}

// Reconcile builds the full product portfolio for an identity: everything
// the address currently owns plus everything it originally created, each
// joined with its metadata document when one exists. Results are ordered
// newest product first.
//
// A metadata store failure degrades the result (ledger fields only) instead
// of failing the call; a ledger failure aborts the whole reconciliation.
func (s *TrackingService) Reconcile(ctx context.Context, identity string) ([]MergedProductView, error) {
	if identity == "" {
		return []MergedProductView{}, nil
	}

	owned, err := s.ledger.GetProductsByOwner(ctx, identity)
	if err != nil {
		return nil, &UpstreamError{System: "ledger", Err: err}
	}
	created, err := s.ledger.GetProductsCreatedBy(ctx, identity)
	if err != nil {
		return nil, &UpstreamError{System: "ledger", Err: err}
	}

	ids := dedupeIDs(owned, created)
	if len(ids) == 0 {
		return []MergedProductView{}, nil
	}

	metaByBatch, metaByProduct := s.metadataIndex(ctx, identity)

	records := make([]*model.ProductRecord, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := s.ledger.GetProduct(gctx, id)
			if err != nil {
				return &UpstreamError{System: "ledger", Err: err}
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })

	views := make([]MergedProductView, 0, len(records))
	for _, rec := range records {
		if !rec.Exists {
			continue
		}
		meta := metaByProduct[rec.ID]
		if meta == nil {
			meta = metaByBatch[rec.BatchID]
		}
		views = append(views, MergeProduct(rec, meta))
	}
	return views, nil
}

// ProductDetail returns the merged view of a single on-chain product.
func (s *TrackingService) ProductDetail(ctx context.Context, id uint64) (MergedProductView, error) {
	rec, err := s.ledger.GetProduct(ctx, id)
	if err != nil {
		return MergedProductView{}, &UpstreamError{System: "ledger", Err: err}
	}
	if !rec.Exists {
		return MergedProductView{}, ErrNotFound
	}

	meta, err := s.store.FindByBatchID(ctx, rec.BatchID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Warn("Metadata lookup failed, serving ledger fields only",
			slog.Uint64("productID", id), slog.Any("err", err))
		meta = nil
	}
	return MergeProduct(rec, meta), nil
}

// metadataIndex loads the identity's metadata documents keyed for the join.
// Failures are logged and yield empty indexes.
func (s *TrackingService) metadataIndex(ctx context.Context, identity string) (map[string]*model.MetadataRecord, map[uint64]*model.MetadataRecord) {
	byBatch := make(map[string]*model.MetadataRecord)
	byProduct := make(map[uint64]*model.MetadataRecord)

	metas, err := s.store.FindByManufacturer(ctx, identity)
	if err != nil {
		slog.Warn("Metadata lookup failed, serving ledger fields only",
			slog.String("identity", identity), slog.Any("err", err))
		return byBatch, byProduct
	}

	// First row wins on duplicate keys; the store returns newest first.
	for _, meta := range metas {
		if _, ok := byBatch[meta.BatchID]; !ok && meta.BatchID != "" {
			byBatch[meta.BatchID] = meta
		}
		if _, ok := byProduct[meta.ProductID]; !ok && meta.ProductID != 0 {
			byProduct[meta.ProductID] = meta
		}
	}
	return byBatch, byProduct
}

// dedupeIDs merges the owned and created id lists, dropping duplicates.
func dedupeIDs(lists ...[]uint64) []uint64 {
	seen := make(map[uint64]struct{})
	var ids []uint64
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
