package storage

import (
	"context"
	"database/sql"
	"fmt"

	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/pkg/logger"
)

type SwipeRepository struct {
	DB  *sql.DB
	log logger.Logger
}

func NewSwipeRepository(db *sql.DB, log logger.Logger) *SwipeRepository {
	return &SwipeRepository{DB: db, log: log}
}

func (r *SwipeRepository) Insert(ctx context.Context, swipe *models.Swipe) error {
	if !models.ValidSwipeResult(swipe.Result) {
		return fmt.Errorf("invalid swipe result %q", swipe.Result)
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO catalog.swipes (user_id, product_id, result) VALUES ($1, $2, $3)`,
		swipe.UserID, swipe.ProductID, swipe.Result,
	)
	if err != nil {
		return fmt.Errorf("failed to insert swipe: %w", err)
	}
	return nil
}

// LikedProducts returns the visible products the user has liked, most recent
// first, capped: a histogram built from the last few hundred likes is as
// good as one built from all of them.
const likedHistoryLimit = 300

func (r *SwipeRepository) LikedProducts(ctx context.Context, userID string) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM catalog.products
		WHERE is_active AND id IN (
			SELECT product_id FROM catalog.swipes
			WHERE user_id = $1 AND result = $2
			ORDER BY created_at DESC
			LIMIT $3
		)`

	rows, err := r.DB.QueryContext(ctx, query, userID, models.SwipeLiked, likedHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// LikedHistory returns the raw (productId, result, createdAt) tuples for the
// user's liked swipes, oldest first.
func (r *SwipeRepository) LikedHistory(ctx context.Context, userID string) ([]models.Swipe, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT user_id, product_id, result, created_at
		 FROM catalog.swipes WHERE user_id = $1 AND result = $2 ORDER BY created_at`,
		userID, models.SwipeLiked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipe history: %w", err)
	}
	defer rows.Close()

	var swipes []models.Swipe
	for rows.Next() {
		var s models.Swipe
		if err := rows.Scan(&s.UserID, &s.ProductID, &s.Result, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swipe: %w", err)
		}
		swipes = append(swipes, s)
	}
	return swipes, rows.Err()
}
