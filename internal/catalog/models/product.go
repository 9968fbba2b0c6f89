package models

import (
	"strings"
	"time"
)

// Product is the canonical, post-normalization representation of a catalog
// item. It is stored in catalog.products and is the only shape the feed
// engine ever sees.
type Product struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	NormalizedTitle string    `json:"normalized_title"`
	Brand           string    `json:"brand"`
	Description     string    `json:"description,omitempty"`
	Price           *int      `json:"price,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	ImageSignature  string    `json:"image_signature,omitempty"`
	Tags            []string  `json:"tags"`
	Category        string    `json:"category"`
	IsUsed          bool      `json:"is_used"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	LastSynced      time.Time `json:"last_synced"`
}

// TitleBrandKey is the near-duplicate identity of a product. Two active
// products with the same key are the same underlying item regardless of the
// external id they were ingested under.
func (p *Product) TitleBrandKey() string {
	return p.NormalizedTitle + "\x00" + strings.ToLower(p.Brand)
}
