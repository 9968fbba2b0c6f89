package feed

import (
	"sort"

	"swipemarket_api/internal/catalog/models"
)

// AffinityHistogram maps a tag to the weight accumulated from the user's
// liked swipes. It lives for one assemble call.
type AffinityHistogram map[string]float64

// coldStartScore is returned for every candidate when the user has no liked
// history yet, so the personalized pool degrades into an unweighted one
// instead of failing.
const coldStartScore = 1.0

// BuildHistogram counts each liked product's tags, +1 per occurrence.
func BuildHistogram(liked []models.Product) AffinityHistogram {
	hist := make(AffinityHistogram)
	for _, p := range liked {
		for _, tag := range p.Tags {
			hist[tag]++
		}
	}
	return hist
}

// Score is the affinity of a candidate against the histogram: the summed tag
// weights normalized by tag count, so tag-count inflation is not rewarded.
func Score(p models.Product, hist AffinityHistogram) float64 {
	if len(hist) == 0 {
		return coldStartScore
	}
	if len(p.Tags) == 0 {
		return 0
	}
	var sum float64
	for _, tag := range p.Tags {
		sum += hist[tag]
	}
	return sum / float64(len(p.Tags))
}

// RankByAffinity orders candidates by descending score, stable so that equal
// scores keep the fetch order.
func RankByAffinity(candidates []models.Product, hist AffinityHistogram) []models.Product {
	ranked := make([]models.Product, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i], hist) > Score(ranked[j], hist)
	})
	return ranked
}
