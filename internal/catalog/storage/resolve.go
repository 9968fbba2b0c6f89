package storage

import (
	"swipemarket_api/internal/catalog/models"
)

// ResolveDuplicates applies the visibility rule to an in-memory batch before
// it is written: among products sharing a title/brand key, the one with a
// price wins, ties broken by the most recent CreatedAt. Losers are returned
// deactivated, not dropped, so re-syncs keep their history.
func ResolveDuplicates(batch []models.Product) []models.Product {
	best := make(map[string]int, len(batch))
	resolved := make([]models.Product, len(batch))
	copy(resolved, batch)

	for i := range resolved {
		if !resolved[i].IsActive {
			continue
		}
		key := resolved[i].TitleBrandKey()
		j, ok := best[key]
		if !ok {
			best[key] = i
			continue
		}
		if betterRepresentative(&resolved[i], &resolved[j]) {
			resolved[j].IsActive = false
			best[key] = i
		} else {
			resolved[i].IsActive = false
		}
	}
	return resolved
}

func betterRepresentative(a, b *models.Product) bool {
	if (a.Price != nil) != (b.Price != nil) {
		return a.Price != nil
	}
	return a.CreatedAt.After(b.CreatedAt)
}
