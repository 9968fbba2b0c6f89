package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipemarket_api/internal/catalog/internal/business/tagging"
	"swipemarket_api/internal/catalog/models"
)

func TestNormalizeFloralDress(t *testing.T) {
	n := NewNormalizer()

	product, err := n.Normalize(models.RawListing{
		ItemCode: "reedit:10001",
		Title:    "【新作】花柄ワンピース",
		Price:    "3980",
		ShopName: "Re:EDIT",
		ImageURL: "https://thumbnail.image.rakuten.co.jp/@0_mall/reedit/cabinet/item1.jpg?_ex=128x128",
	})
	require.NoError(t, err)

	assert.Equal(t, "花柄ワンピース", product.NormalizedTitle)
	assert.Equal(t, "dress", product.Category)
	assert.Contains(t, product.Tags, "dress")
	assert.Contains(t, product.Tags, "floral")
	assert.Contains(t, product.Tags, tagging.TagTierMid)
	require.NotNil(t, product.Price)
	assert.Equal(t, 3980, *product.Price)
	assert.True(t, product.IsActive)
	assert.NotEmpty(t, product.ImageSignature)
	assert.NotContains(t, product.ImageSignature, "_ex=")
}

func TestNormalizeRejectsEmptyTitle(t *testing.T) {
	n := NewNormalizer()

	_, err := n.Normalize(models.RawListing{ItemCode: "x:1", Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidListing)

	_, err = n.Normalize(models.RawListing{Title: "ok title"})
	assert.ErrorIs(t, err, ErrInvalidListing)
}

func TestNormalizeMalformedPriceIsNotFatal(t *testing.T) {
	n := NewNormalizer()

	product, err := n.Normalize(models.RawListing{
		ItemCode: "x:2",
		Title:    "リネン スカート",
		Price:    "お問い合わせ",
		ShopName: "coen",
	})
	assert.ErrorIs(t, err, ErrMalformedPrice)
	assert.Nil(t, product.Price)
	assert.Equal(t, "x:2", product.ID)
	assert.NotEmpty(t, product.Tags)
}

func TestNormalizeTagsNeverEmpty(t *testing.T) {
	n := NewNormalizer()

	product, err := n.Normalize(models.RawListing{
		ItemCode: "x:3",
		Title:    "謎の商品",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.Tags)
	assert.Equal(t, []string{tagging.TagFallback}, product.Tags)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    *int
		wantErr bool
	}{
		{"3980", intPtr(3980), false},
		{"3,980円", intPtr(3980), false},
		{"￥１２８００ 税込", intPtr(12800), false},
		{"", nil, false},
		{"free", nil, true},
		{"-100", nil, true},
	}
	for _, tt := range tests {
		got, err := parsePrice(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMalformedPrice, "raw %q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestNormalizeDetectsUsedItems(t *testing.T) {
	n := NewNormalizer()

	used, err := n.Normalize(models.RawListing{ItemCode: "x:4", Title: "中古 デニム ジャケット"})
	require.NoError(t, err)
	assert.True(t, used.IsUsed)

	fresh, err := n.Normalize(models.RawListing{ItemCode: "x:5", Title: "デニム ジャケット"})
	require.NoError(t, err)
	assert.False(t, fresh.IsUsed)
}

func TestImageSignatureIgnoresSizeParameters(t *testing.T) {
	small := ImageSignature("https://cdn.example.jp/img/128x128/item99.jpg?_ex=128x128")
	large := ImageSignature("https://cdn.example.jp/img/600x600/item99.jpg?_ex=600x600")
	assert.Equal(t, small, large)
	assert.Equal(t, "cdn.example.jp/img/item99.jpg", small)

	assert.Empty(t, ImageSignature(""))
}

func intPtr(v int) *int { return &v }
