package handlers

import (
	"encoding/json"
	"net/http"

	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/internal/catalog/storage"
	"swipemarket_api/pkg/logger"
)

type SwipeHandler struct {
	swipes *storage.SwipeRepository
	log    logger.Logger
}

func NewSwipeHandler(swipes *storage.SwipeRepository, log logger.Logger) *SwipeHandler {
	return &SwipeHandler{swipes: swipes, log: log}
}

// SwipesHandler records a swipe on POST and returns the user's liked history
// on GET.
func (h *SwipeHandler) SwipesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.recordSwipe(w, r)
	case http.MethodGet:
		h.likedHistory(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SwipeHandler) recordSwipe(w http.ResponseWriter, r *http.Request) {
	var swipe models.Swipe
	if err := json.NewDecoder(r.Body).Decode(&swipe); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if swipe.UserID == "" || swipe.ProductID == "" {
		http.Error(w, "user_id and product_id are required", http.StatusBadRequest)
		return
	}
	if !models.ValidSwipeResult(swipe.Result) {
		http.Error(w, "result must be liked, skipped or disliked", http.StatusBadRequest)
		return
	}

	if err := h.swipes.Insert(r.Context(), &swipe); err != nil {
		h.log.Error("failed to record swipe: %v", err)
		http.Error(w, "failed to record swipe", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *SwipeHandler) likedHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	history, err := h.swipes.LikedHistory(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to fetch swipe history: %v", err)
		http.Error(w, "failed to fetch swipe history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(history); err != nil {
		h.log.Error("failed to encode swipe history: %v", err)
	}
}
