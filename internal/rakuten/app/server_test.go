package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"swipemarket_api/config"
	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/metrics"
	"swipemarket_api/pkg/logger"
)

// floodFetcher emits far more listings than the sync channel buffers, the
// way a real multi-page genre fetch does.
type floodFetcher struct{}

func (floodFetcher) FetchGenreIntoChannel(ctx context.Context, genreID string, maxPages, hits int, out chan<- models.RawListing) error {
	for i := 0; i < 500; i++ {
		select {
		case out <- models.RawListing{
			ItemCode: fmt.Sprintf("%s:item%d", genreID, i),
			Title:    "デニム パンツ",
			Price:    "5900",
		}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// abortingIngester consumes a single listing and then fails, like a flush
// hitting a dropped database connection.
type abortingIngester struct{}

func (abortingIngester) Run(_ context.Context, listings <-chan models.RawListing) (*metrics.SyncMetrics, error) {
	<-listings
	return &metrics.SyncMetrics{}, errors.New("upsert batch: connection refused")
}

func TestSyncOnceReturnsAfterIngestFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rakuten.Values.GenreIDs = []string{"100371"}
	s := NewRakutenServer(nil, cfg, logger.NewLogger(nil, "rakuten-test"))

	done := make(chan struct{})
	go func() {
		s.syncOnce(context.Background(), floodFetcher{}, abortingIngester{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sync cycle still blocked after ingest aborted mid-stream")
	}
}

func TestSyncOnceDrainsAllGenres(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rakuten.Values.GenreIDs = []string{"100371", "551177"}
	s := NewRakutenServer(nil, cfg, logger.NewLogger(nil, "rakuten-test"))

	counter := &countingIngester{}
	done := make(chan struct{})
	go func() {
		s.syncOnce(context.Background(), floodFetcher{}, counter)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sync cycle did not finish")
	}
	require.Equal(t, 1000, counter.consumed, "both genres drained in full")
}

type countingIngester struct {
	consumed int
}

func (c *countingIngester) Run(_ context.Context, listings <-chan models.RawListing) (*metrics.SyncMetrics, error) {
	for range listings {
		c.consumed++
	}
	return &metrics.SyncMetrics{}, nil
}
