package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"swipemarket_api/internal/catalog/internal/business/feed"
	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/metrics"
	"swipemarket_api/pkg/logger"
)

const defaultPageSize = 20

type FeedHandler struct {
	assembler *feed.Assembler
	log       logger.Logger
}

func NewFeedHandler(assembler *feed.Assembler, log logger.Logger) *FeedHandler {
	return &FeedHandler{assembler: assembler, log: log}
}

// GetFeedHandler serves GET /api/feed. The cursor from the previous response
// must be round-tripped verbatim; an empty or missing cursor starts a new
// paging session.
func (h *FeedHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseFeedRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.assembler.Assemble(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrBadCursor):
			http.Error(w, "bad cursor", http.StatusBadRequest)
		case errors.Is(err, feed.ErrSourceUnavailable):
			h.log.Error("feed source unavailable: %v", err)
			http.Error(w, "catalog temporarily unavailable", http.StatusServiceUnavailable)
		default:
			h.log.Error("feed assembly failed: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	metrics.RecordFeedPage(len(page.Products), page.Exhausted)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		h.log.Error("failed to encode feed page: %v", err)
	}
}

func parseFeedRequest(r *http.Request) (feed.Request, error) {
	q := r.URL.Query()

	pageSize := defaultPageSize
	if raw := q.Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return feed.Request{}, errors.New("page_size must be a positive integer")
		}
		pageSize = parsed
	}

	filters := models.Filters{
		Category:    q.Get("category"),
		IncludeUsed: q.Get("include_used") == "true",
	}
	if raw := q.Get("price_min"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return feed.Request{}, errors.New("price_min must be an integer")
		}
		filters.PriceMin = &parsed
	}
	if raw := q.Get("price_max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return feed.Request{}, errors.New("price_max must be an integer")
		}
		filters.PriceMax = &parsed
	}

	return feed.Request{
		UserID:   q.Get("user_id"),
		PageSize: pageSize,
		Cursor:   q.Get("cursor"),
		Filters:  filters,
	}, nil
}
