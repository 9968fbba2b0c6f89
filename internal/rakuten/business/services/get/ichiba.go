package get

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/internal/rakuten/business/dto/responses"
	"swipemarket_api/pkg/logger"
)

const (
	WorkerCount = 3

	ichibaSearchURL = "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20170706"
)

// ItemSearchEngine pulls listings from the Ichiba search API. All requests
// share one rate limiter: the API allows roughly one call per second per
// application id.
type ItemSearchEngine struct {
	client  *http.Client
	appID   string
	limiter *rate.Limiter
	log     logger.Logger
}

func NewItemSearchEngine(appID string, log logger.Logger) *ItemSearchEngine {
	return &ItemSearchEngine{
		client:  &http.Client{Timeout: 30 * time.Second},
		appID:   appID,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:     log,
	}
}

// SearchPage fetches a single page of a genre.
func (e *ItemSearchEngine) SearchPage(ctx context.Context, genreID string, page, hits int) (*responses.IchibaSearchResponse, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("applicationId", e.appID)
	params.Set("format", "json")
	params.Set("genreId", genreID)
	params.Set("page", strconv.Itoa(page))
	params.Set("hits", strconv.Itoa(hits))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ichibaSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %s", resp.Status)
	}

	var searchResponse responses.IchibaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &searchResponse, nil
}

// FetchGenreIntoChannel pages through a genre concurrently and fans the raw
// listings into listingChan. The first page is fetched up front to learn the
// page count; the rest is spread over WorkerCount workers behind the shared
// limiter. The channel is not closed here, callers own it.
func (e *ItemSearchEngine) FetchGenreIntoChannel(
	ctx context.Context,
	genreID string,
	maxPages, hits int,
	listingChan chan<- models.RawListing,
) error {
	first, err := e.SearchPage(ctx, genreID, 1, hits)
	if err != nil {
		return fmt.Errorf("fetching first page of genre %s: %w", genreID, err)
	}
	e.emit(ctx, first, listingChan)

	pageCount := first.PageCount
	if maxPages > 0 && pageCount > maxPages {
		pageCount = maxPages
	}
	if pageCount <= 1 {
		return nil
	}

	pages := make(chan int)
	go func() {
		defer close(pages)
		for page := 2; page <= pageCount; page++ {
			select {
			case pages <- page:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range pages {
				response, err := e.SearchPage(ctx, genreID, page, hits)
				if err != nil {
					// a lost page costs a slice of the pool, not the sync
					e.log.Warn("failed to fetch genre %s page %d: %v", genreID, page, err)
					continue
				}
				e.emit(ctx, response, listingChan)
			}
		}()
	}
	wg.Wait()

	return ctx.Err()
}

func (e *ItemSearchEngine) emit(ctx context.Context, response *responses.IchibaSearchResponse, out chan<- models.RawListing) {
	for _, wrapper := range response.Items {
		select {
		case out <- wrapper.Item.ToRawListing():
		case <-ctx.Done():
			return
		}
	}
}
