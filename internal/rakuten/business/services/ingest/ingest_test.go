package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/pkg/logger"
)

type fakeStore struct {
	upserted    []models.Product
	deactivated int64
	failUpsert  error
}

func (f *fakeStore) UpsertBatch(_ context.Context, products []models.Product) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.upserted = append(f.upserted, products...)
	return nil
}

func (f *fakeStore) DeactivateDuplicates(_ context.Context) (int64, error) {
	return f.deactivated, nil
}

func runIngest(t *testing.T, store *fakeStore, listings []models.RawListing) *IngestService {
	t.Helper()
	s := NewIngestService(store, logger.NewLogger(nil, "ingest-test"))

	ch := make(chan models.RawListing)
	go func() {
		defer close(ch)
		for _, l := range listings {
			ch <- l
		}
	}()

	_, err := s.Run(context.Background(), ch)
	require.NoError(t, err)
	return s
}

func TestRunIsolatesBadRows(t *testing.T) {
	store := &fakeStore{}
	runIngest(t, store, []models.RawListing{
		{ItemCode: "shop:1", Title: "花柄ワンピース", Price: "3980", ShopName: "Re:EDIT"},
		{ItemCode: "shop:2", Title: "   ", Price: "1000"}, // invalid: empty title
		{ItemCode: "shop:3", Title: "リネンスカート", Price: "ask us", ShopName: "coen"},
	})

	require.Len(t, store.upserted, 2, "invalid row skipped, malformed price kept")

	byID := map[string]models.Product{}
	for _, p := range store.upserted {
		byID[p.ID] = p
	}
	require.Contains(t, byID, "shop:1")
	require.Contains(t, byID, "shop:3")
	assert.Nil(t, byID["shop:3"].Price, "malformed price recorded as absent")
	assert.NotNil(t, byID["shop:1"].Price)
}

func TestRunResolvesDuplicatesWithinBatch(t *testing.T) {
	store := &fakeStore{}
	runIngest(t, store, []models.RawListing{
		{ItemCode: "a:1", Title: "花柄ワンピース", Price: "", ShopName: "Re:EDIT"},
		{ItemCode: "a:2", Title: "【再入荷】花柄ワンピース", Price: "3980", ShopName: "Re:EDIT"},
	})

	require.Len(t, store.upserted, 2)
	byID := map[string]models.Product{}
	for _, p := range store.upserted {
		byID[p.ID] = p
	}
	assert.False(t, byID["a:1"].IsActive, "unpriced duplicate deactivated")
	assert.True(t, byID["a:2"].IsActive, "priced representative stays visible")
}

func TestRunCountsMetrics(t *testing.T) {
	store := &fakeStore{}
	s := NewIngestService(store, logger.NewLogger(nil, "ingest-test"))

	ch := make(chan models.RawListing, 3)
	ch <- models.RawListing{ItemCode: "x:1", Title: "デニム パンツ", Price: "5900"}
	ch <- models.RawListing{ItemCode: "", Title: "no code"}
	ch <- models.RawListing{ItemCode: "x:3", Title: "ニット", Price: "2400"}
	close(ch)

	m, err := s.Run(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, int32(3), m.ProcessedCount.Load())
	assert.Equal(t, int32(2), m.UpsertedCount.Load())
	assert.Equal(t, int32(1), m.SkippedCount.Load())
}
