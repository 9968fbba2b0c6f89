package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestInferTagsFloralDress(t *testing.T) {
	e := NewEngine()

	tags := e.InferTags("【新作】花柄ワンピース", intPtr(3980), "Re:EDIT")

	assert.Contains(t, tags, "dress")
	assert.Contains(t, tags, "floral")
	assert.Contains(t, tags, TagTierMid)
	assert.Contains(t, tags, "natural") // Re:EDIT brand style
	assert.Contains(t, tags, TagFallback)
}

func TestInferTagsIsDeterministic(t *testing.T) {
	e := NewEngine()

	first := e.InferTags("リネン スカート ナチュラル 夏", intPtr(5500), "coen")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.InferTags("リネン スカート ナチュラル 夏", intPtr(5500), "coen"))
	}
}

func TestInferTagsFallbackOnly(t *testing.T) {
	e := NewEngine()

	tags := e.InferTags("なんだかよくわからない商品", nil, "unknown shop")
	assert.Equal(t, []string{TagFallback}, tags)
}

func TestInferTagsMultiLabel(t *testing.T) {
	e := NewEngine()

	tags := e.InferTags("春夏 デニム ジャケット カジュアル ブラック", intPtr(12800), "WEGO")

	// one listing collects tags across every category it touches
	assert.Subset(t, tags, []string{"outer", "denim", "casual", "black", "spring", "summer", TagTierPremium, "street"})
}

func TestInferTagsCapped(t *testing.T) {
	e := NewEngine()

	text := "花柄 カジュアル フェミニン モード ストリート ナチュラル フォーマル シンプル レトロ " +
		"ワンピース スカート パンツ ジャケット スニーカー バッグ ネックレス " +
		"ブラック ホワイト ベージュ ネイビー グレー レッド ブルー ピンク " +
		"コットン リネン ウール レザー デニム ニット 春 夏 秋 冬"
	tags := e.InferTags(text, intPtr(980), "GRL")

	require.Len(t, tags, MaxTags)
	// truncation keeps rule-declaration order: item types come first
	assert.Equal(t, "dress", tags[0])
}

func TestPriceTier(t *testing.T) {
	tests := []struct {
		price int
		want  string
	}{
		{0, TagTierBudget},
		{1999, TagTierBudget},
		{2000, TagTierMid},
		{3980, TagTierMid},
		{5999, TagTierMid},
		{6000, TagTierPremium},
		{14999, TagTierPremium},
		{15000, TagTierLuxury},
		{98000, TagTierLuxury},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriceTier(tt.price), "price %d", tt.price)
	}
}

func TestPrimaryCategory(t *testing.T) {
	assert.Equal(t, "dress", PrimaryCategory([]string{"floral", "dress", "skirt"}))
	assert.Equal(t, "other", PrimaryCategory([]string{"floral", TagFallback}))
}

func TestInferTagsWidthFolding(t *testing.T) {
	e := NewEngine()

	full := e.InferTags("Ｔシャツ ＢＬＡＣＫ", intPtr(1500), "ＵＮＩＱＬＯ")
	half := e.InferTags("Tシャツ BLACK", intPtr(1500), "UNIQLO")
	assert.Equal(t, half, full)
	assert.Contains(t, full, "tops")
	assert.Contains(t, full, "black")
	assert.Contains(t, full, "basic")
}
