package app

import (
	"context"
	"sync"
	"time"

	"swipemarket_api/config"
	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/internal/catalog/storage"
	"swipemarket_api/internal/rakuten/business/services/get"
	"swipemarket_api/internal/rakuten/business/services/ingest"
	"swipemarket_api/metrics"
	"swipemarket_api/pkg/dbconnect"
	"swipemarket_api/pkg/logger"
)

// RakutenServer runs the periodic catalog sync against the Ichiba API.
type RakutenServer struct {
	dbconnect.DbConnector
	cfg *config.AppConfig
	log logger.Logger
}

type genreFetcher interface {
	FetchGenreIntoChannel(ctx context.Context, genreID string, maxPages, hits int, listingChan chan<- models.RawListing) error
}

type listingIngester interface {
	Run(ctx context.Context, listings <-chan models.RawListing) (*metrics.SyncMetrics, error)
}

func NewRakutenServer(dbCon dbconnect.DbConnector, cfg *config.AppConfig, log logger.Logger) *RakutenServer {
	return &RakutenServer{DbConnector: dbCon, cfg: cfg, log: log.WithPrefix("rakuten")}
}

func (s *RakutenServer) Run(wg *sync.WaitGroup) {
	defer wg.Done()

	if s.cfg.Rakuten.ApplicationID == "" {
		s.log.Warn("RAKUTEN_APP_ID not set, sync worker disabled")
		return
	}
	if len(s.cfg.Rakuten.Values.GenreIDs) == 0 {
		s.log.Warn("no genre ids configured, sync worker disabled")
		return
	}

	db, err := s.Connect()
	if err != nil {
		s.log.Error("Error connecting to PostgreSQL: %s", err)
		return
	}

	productRepo := storage.NewProductRepository(db, s.log.WithPrefix("products"))
	searchEngine := get.NewItemSearchEngine(s.cfg.Rakuten.ApplicationID, s.log.WithPrefix("ichiba"))
	ingestService := ingest.NewIngestService(productRepo, s.log.WithPrefix("ingest"))

	interval := time.Duration(s.cfg.Rakuten.Values.SyncIntervalMin) * time.Minute

	for {
		s.syncOnce(context.Background(), searchEngine, ingestService)
		s.log.Log("Next sync in %s", interval)
		time.Sleep(interval)
	}
}

// syncOnce runs one fetch+ingest cycle. The producer goroutine is bound to a
// context cancelled as soon as ingest returns, so a mid-stream ingest failure
// cannot strand the producer on a full channel.
func (s *RakutenServer) syncOnce(ctx context.Context, fetcher genreFetcher, ingester listingIngester) {
	started := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listingChan := make(chan models.RawListing, 100)

	var fetchWg sync.WaitGroup
	fetchWg.Add(1)
	go func() {
		defer fetchWg.Done()
		defer close(listingChan)
		for _, genreID := range s.cfg.Rakuten.Values.GenreIDs {
			err := fetcher.FetchGenreIntoChannel(ctx, genreID,
				s.cfg.Rakuten.Values.PageLimit, s.cfg.Rakuten.Values.HitsPerPage, listingChan)
			if err != nil {
				s.log.Error("genre %s sync failed: %v", genreID, err)
			}
		}
	}()

	if _, err := ingester.Run(ctx, listingChan); err != nil {
		s.log.Error("ingest run failed: %v", err)
	}
	cancel()
	fetchWg.Wait()

	s.log.Log("Sync finished in %s", time.Since(started))
}
