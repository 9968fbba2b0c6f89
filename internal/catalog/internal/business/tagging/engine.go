// Package tagging classifies raw listing text into the closed tag taxonomy
// used for personalization and duplicate detection. The classifier is a
// prioritized pattern table, not a model: identical input always yields the
// identical tag set.
package tagging

import (
	"strings"

	"swipemarket_api/pkg/business/service"
)

type Engine struct {
	text service.ITextService
}

func NewEngine() *Engine {
	return &Engine{text: service.NewTextService()}
}

// InferTags derives tags from the concatenated title+description text, the
// parsed price (nil when absent) and the shop name. Every matching rule
// contributes its tags; the union is capped at MaxTags.
func (e *Engine) InferTags(text string, price *int, shopName string) []string {
	folded := strings.ToLower(e.text.FoldWidth(text))

	var tags []string
	seen := make(map[string]struct{})
	add := func(ts ...string) {
		for _, t := range ts {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}

	for _, rule := range rules {
		if rule.Pattern.MatchString(folded) {
			add(rule.Tags...)
		}
	}

	if styles, ok := brandStyles[strings.ToLower(e.text.FoldWidth(strings.TrimSpace(shopName)))]; ok {
		add(styles...)
	}

	if price != nil {
		add(PriceTier(*price))
	}

	add(TagFallback)

	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

// PriceTier buckets a JPY price into one of the four fixed tiers.
func PriceTier(price int) string {
	switch {
	case price < tierBudgetMax:
		return TagTierBudget
	case price < tierMidMax:
		return TagTierMid
	case price < tierPremiumMax:
		return TagTierPremium
	default:
		return TagTierLuxury
	}
}

var itemTypeTags = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, rule := range rules {
		if rule.Category != CategoryItemType {
			continue
		}
		for _, t := range rule.Tags {
			set[t] = struct{}{}
		}
	}
	return set
}()

// PrimaryCategory picks the single primary classification for a product: the
// first item-type tag present in the set, in rule-declaration order.
func PrimaryCategory(tags []string) string {
	for _, t := range tags {
		if _, ok := itemTypeTags[t]; ok {
			return t
		}
	}
	return "other"
}
