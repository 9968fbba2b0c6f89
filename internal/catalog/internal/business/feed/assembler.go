// Package feed assembles swipe-feed pages: a random discovery share mixed
// with a personalized share, deduplicated within the page and across the
// whole paging session.
package feed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"swipemarket_api/config/values"
	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/pkg/logger"
)

// ErrSourceUnavailable wraps any catalog query failure. No partial page is
// synthesized from a half-failed fetch.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// CatalogSource is the engine's sole data-access contract to the product
// catalog.
type CatalogSource interface {
	QueryProducts(ctx context.Context, q models.CatalogQuery) ([]models.Product, error)
	CountProducts(ctx context.Context, f models.Filters) (int, error)
}

// SwipeHistory supplies the liked products a user's affinity histogram is
// built from.
type SwipeHistory interface {
	LikedProducts(ctx context.Context, userID string) ([]models.Product, error)
}

type Request struct {
	// UserID empty means guest: no personalization, pure discovery.
	UserID   string
	PageSize int
	// Cursor is the opaque string from the previous page, empty on the first
	// call.
	Cursor  string
	Filters models.Filters
}

type Page struct {
	Products []models.Product `json:"products"`
	Cursor   string           `json:"cursor"`
	// Exhausted reports that the pool ran short of PageSize. Not an error:
	// the caller renders "nothing new right now".
	Exhausted bool `json:"exhausted"`
}

// orderFields rotates per time bucket so repeated calls inside a window see a
// stable slice and calls across windows surface different material.
var orderFields = []string{"created_at", "last_synced", "price", "id"}

type Assembler struct {
	source  CatalogSource
	history SwipeHistory
	cfg     values.FeedValues
	log     logger.Logger

	// now is injected so rotation buckets are reproducible in tests.
	now func() time.Time
}

func NewAssembler(source CatalogSource, history SwipeHistory, cfg values.FeedValues, log logger.Logger) *Assembler {
	cfg.Normalize()
	return &Assembler{
		source:  source,
		history: history,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// Assemble produces one feed page and the cursor for the next call. The two
// share fetches run concurrently; both must succeed, a failed fetch aborts
// the call with ErrSourceUnavailable.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Page, error) {
	if req.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", req.PageSize)
	}
	if req.PageSize > a.cfg.MaxPageSize {
		req.PageSize = a.cfg.MaxPageSize
	}

	cursor, err := DecodeCursor(req.Cursor)
	if err != nil {
		return nil, err
	}

	randTarget := int(float64(req.PageSize)*a.cfg.RandomShare + 0.5)
	if randTarget < 1 {
		randTarget = 1
	}
	persTarget := req.PageSize - randTarget

	bucket := a.now().Unix() / int64(a.cfg.RotationWindowSeconds)

	var randomPool, personalPool []models.Product
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		randomPool, err = a.fetchRandomShare(gctx, req.Filters, randTarget, cursor.Offset, bucket)
		if err != nil {
			return fmt.Errorf("random share: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if persTarget == 0 {
			return nil
		}
		var err error
		personalPool, err = a.fetchPersonalShare(gctx, req, persTarget, cursor.PersonalOffset, bucket)
		if err != nil {
			return fmt.Errorf("personal share: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		a.log.Error("assemble aborted: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// Merge: random share first, then personalized, each preserving its own
	// internal order. Every considered candidate lands in the exclude-set,
	// rejected near-duplicates included, so they are not re-fetched next page.
	index := NewDedupIndex(cursor.Seen)
	page := make([]models.Product, 0, req.PageSize)
	var considered []string
	for _, p := range append(randomPool, personalPool...) {
		if index.Len() >= req.PageSize {
			break
		}
		considered = append(considered, p.ID)
		if index.Admit(p) {
			page = append(page, p)
		}
	}

	cursor.Offset += len(randomPool)
	cursor.PersonalOffset += len(personalPool)
	cursor.Extend(considered, a.cfg.ExcludeCap)

	encoded, err := cursor.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding cursor: %w", err)
	}

	return &Page{
		Products:  page,
		Cursor:    encoded,
		Exhausted: len(page) < req.PageSize,
	}, nil
}

// fetchRandomShare queries the discovery pool ordered by the bucket's
// rotating key. The offset advances with the cursor and shifts per bucket;
// past the end of the pool it wraps to a bounded seeded-random offset.
func (a *Assembler) fetchRandomShare(ctx context.Context, filters models.Filters, target, offset int, bucket int64) ([]models.Product, error) {
	limit := a.overfetch(target)
	rng := rand.New(rand.NewSource(bucket*31 + int64(offset)))

	total, err := a.source.CountProducts(ctx, filters)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	offset += rng.Intn(rotationShift)
	if offset+limit > total {
		if total <= limit {
			offset = 0
		} else {
			offset = rng.Intn(total - limit)
		}
	}

	return a.source.QueryProducts(ctx, models.CatalogQuery{
		Filters: filters,
		OrderBy: orderFields[int(bucket)%len(orderFields)],
		Desc:    rng.Intn(2) == 0,
		Offset:  offset,
		Limit:   limit,
	})
}

// fetchPersonalShare ranks a candidate batch by tag affinity. Without liked
// history it falls back to the random-share logic on an independent offset.
func (a *Assembler) fetchPersonalShare(ctx context.Context, req Request, target, offset int, bucket int64) ([]models.Product, error) {
	if req.UserID == "" {
		return a.fetchRandomShare(ctx, req.Filters, target, offset, bucket+1)
	}

	liked, err := a.history.LikedProducts(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(liked) == 0 {
		return a.fetchRandomShare(ctx, req.Filters, target, offset, bucket+1)
	}

	candidates, err := a.source.QueryProducts(ctx, models.CatalogQuery{
		Filters: req.Filters,
		OrderBy: "last_synced",
		Desc:    true,
		Offset:  offset,
		Limit:   a.cfg.CandidatePool,
	})
	if err != nil {
		return nil, err
	}

	ranked := RankByAffinity(candidates, BuildHistogram(liked))
	top := a.overfetch(target)
	if top > len(ranked) {
		top = len(ranked)
	}
	return ranked[:top], nil
}

// rotationShift bounds the per-bucket offset jitter.
const rotationShift = 32

func (a *Assembler) overfetch(target int) int {
	n := int(float64(target) * a.cfg.BufferMultiplier)
	if n < target {
		n = target
	}
	return n
}
