// Package normalize maps raw external listings into canonical products.
package normalize

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"swipemarket_api/internal/catalog/internal/business/tagging"
	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/pkg/business/service"
)

var (
	// ErrInvalidListing marks a source row missing a required field. Callers
	// skip the row and continue, never abort the batch.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrMalformedPrice marks a non-numeric price. The returned product is
	// still usable, with the price recorded as absent.
	ErrMalformedPrice = errors.New("malformed price")
)

const maxDescriptionLength = 500

var (
	priceJunkRe = regexp.MustCompile(`[,、\s円¥\\]|税込|税抜|送料無料`)
	usedRe      = regexp.MustCompile(`中古|ユーズド|セカンドハンド|used|second-?hand`)
	// CDN size hints: a NxN path segment or size query parameters.
	sizeSegmentRe = regexp.MustCompile(`^\d+x\d+$`)
)

type Normalizer struct {
	text   service.ITextService
	tagger *tagging.Engine
	now    func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		text:   service.NewTextService(),
		tagger: tagging.NewEngine(),
		now:    time.Now,
	}
}

// Normalize turns a raw listing into a canonical product. It is pure apart
// from the creation timestamps. On ErrMalformedPrice the product is returned
// alongside the error; on ErrInvalidListing there is no product.
func (n *Normalizer) Normalize(raw models.RawListing) (models.Product, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return models.Product{}, fmt.Errorf("%w: empty title (item %q)", ErrInvalidListing, raw.ItemCode)
	}
	if raw.ItemCode == "" {
		return models.Product{}, fmt.Errorf("%w: empty item code", ErrInvalidListing)
	}

	price, priceErr := parsePrice(raw.Price)

	description := n.text.ClearCaption(raw.Description, maxDescriptionLength)
	tagText := title + " " + description
	tags := n.tagger.InferTags(tagText, price, raw.ShopName)

	now := n.now()
	product := models.Product{
		ID:              raw.ItemCode,
		Title:           title,
		NormalizedTitle: n.text.NormalizeTitle(title),
		Brand:           strings.TrimSpace(raw.ShopName),
		Description:     description,
		Price:           price,
		ImageURL:        raw.ImageURL,
		ImageSignature:  ImageSignature(raw.ImageURL),
		Tags:            tags,
		Category:        tagging.PrimaryCategory(tags),
		IsUsed:          usedRe.MatchString(strings.ToLower(n.text.FoldWidth(tagText))),
		IsActive:        true,
		CreatedAt:       now,
		LastSynced:      now,
	}
	return product, priceErr
}

// parsePrice accepts the messy price forms the sources actually send:
// "3980", "3,980円", "￥3980 税込". Empty input is an absent price, not an
// error; garbage is ErrMalformedPrice.
func parsePrice(raw string) (*int, error) {
	cleaned := priceJunkRe.ReplaceAllString(width.Fold.String(raw), "")
	if cleaned == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil || value < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedPrice, raw)
	}
	return &value, nil
}

// ImageSignature derives the near-duplicate key of an image URL: host+path
// lowercased, with the query string and CDN size segments dropped, so the
// same image served at 128x128 and 600x600 compares equal.
func ImageSignature(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}
	segments := strings.Split(parsed.Path, "/")
	kept := segments[:0]
	for _, seg := range segments {
		if sizeSegmentRe.MatchString(seg) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.ToLower(parsed.Host + strings.Join(kept, "/"))
}
