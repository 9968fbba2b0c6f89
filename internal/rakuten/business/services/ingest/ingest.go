// Package ingest turns raw Rakuten listings into canonical catalog rows.
// Per-item failures are isolated and logged; a bad row never aborts a batch.
package ingest

import (
	"context"
	"errors"

	"swipemarket_api/internal/catalog/business/normalize"
	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/internal/catalog/storage"
	"swipemarket_api/metrics"
	"swipemarket_api/pkg/logger"
)

// ProductStore is the slice of the repository the ingester needs.
type ProductStore interface {
	UpsertBatch(ctx context.Context, products []models.Product) error
	DeactivateDuplicates(ctx context.Context) (int64, error)
}

type IngestService struct {
	normalizer *normalize.Normalizer
	store      ProductStore
	log        logger.Logger
	batchSize  int
}

func NewIngestService(store ProductStore, log logger.Logger) *IngestService {
	return &IngestService{
		normalizer: normalize.NewNormalizer(),
		store:      store,
		log:        log,
		batchSize:  200,
	}
}

// Run consumes listings until the channel closes, writing normalized batches
// as they fill. After the final batch it sweeps the visibility rule over the
// catalog so near-duplicate re-ingests collapse to one representative.
func (s *IngestService) Run(ctx context.Context, listings <-chan models.RawListing) (*metrics.SyncMetrics, error) {
	m := &metrics.SyncMetrics{}
	batch := make([]models.Product, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		resolved := storage.ResolveDuplicates(batch)
		if err := s.store.UpsertBatch(ctx, resolved); err != nil {
			return err
		}
		m.UpsertedCount.Add(int32(len(resolved)))
		batch = batch[:0]
		return nil
	}

	for listing := range listings {
		if err := ctx.Err(); err != nil {
			return m, err
		}
		m.ProcessedCount.Add(1)

		product, err := s.normalizer.Normalize(listing)
		switch {
		case errors.Is(err, normalize.ErrInvalidListing):
			m.SkippedCount.Add(1)
			s.log.Warn("skipping listing %q: %v", listing.ItemCode, err)
			continue
		case errors.Is(err, normalize.ErrMalformedPrice):
			// recoverable: the product is kept with the price absent
			s.log.Warn("listing %q has malformed price: %v", listing.ItemCode, err)
		case err != nil:
			m.ErroredCount.Add(1)
			s.log.Error("failed to normalize listing %q: %v", listing.ItemCode, err)
			continue
		}

		batch = append(batch, product)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return m, err
			}
		}
	}

	if err := flush(); err != nil {
		return m, err
	}

	deactivated, err := s.store.DeactivateDuplicates(ctx)
	if err != nil {
		return m, err
	}
	s.log.Log("Ingest finished: processed=%d upserted=%d skipped=%d deactivated=%d",
		m.ProcessedCount.Load(), m.UpsertedCount.Load(), m.SkippedCount.Load(), deactivated)
	return m, nil
}
