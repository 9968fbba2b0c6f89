package tagging

import "regexp"

// Rule categories. A listing usually matches rules from several categories;
// all matched tags are kept (multi-label, not exclusive).
const (
	CategoryItemType = "itemtype"
	CategoryStyle    = "style"
	CategoryColor    = "color"
	CategoryMaterial = "material"
	CategorySeason   = "season"
)

type Rule struct {
	Category string
	Pattern  *regexp.Regexp
	Tags     []string
}

// rules is evaluated in declaration order against the width-folded,
// lowercased title+description+shop text. New rules are additive: append to
// the right category block, never branch in code.
var rules = []Rule{
	// item type
	{CategoryItemType, regexp.MustCompile(`ワンピース|ドレス|one-?piece|dress`), []string{"dress"}},
	{CategoryItemType, regexp.MustCompile(`tシャツ|シャツ|ブラウス|カットソー|トップス|パーカー|スウェット|フーディ|t-?shirt|blouse|hoodie|tops?\b`), []string{"tops"}},
	{CategoryItemType, regexp.MustCompile(`スカート|skirt`), []string{"skirt"}},
	{CategoryItemType, regexp.MustCompile(`パンツ|ズボン|ジーンズ|スラックス|レギンス|pants|jeans|trousers`), []string{"pants"}},
	{CategoryItemType, regexp.MustCompile(`コート|ジャケット|アウター|ブルゾン|ダウン|coat|jacket|outerwear`), []string{"outer"}},
	{CategoryItemType, regexp.MustCompile(`スニーカー|ブーツ|パンプス|サンダル|シューズ|靴|sneakers?|boots?|pumps|sandals?|shoes`), []string{"shoes"}},
	{CategoryItemType, regexp.MustCompile(`バッグ|リュック|トートバッグ?|ショルダー|財布|bag|backpack|wallet`), []string{"bag"}},
	{CategoryItemType, regexp.MustCompile(`ネックレス|ピアス|イヤリング|ブレスレット|指輪|リング|帽子|キャップ|ハット|ベルト|マフラー|ストール|アクセサリー|necklace|earrings?|bracelet|ring|hat|cap|belt|scarf`), []string{"accessory"}},

	// style
	{CategoryStyle, regexp.MustCompile(`花柄|フラワー柄?|ボタニカル|floral`), []string{"floral"}},
	{CategoryStyle, regexp.MustCompile(`カジュアル|デイリー|casual`), []string{"casual"}},
	{CategoryStyle, regexp.MustCompile(`フェミニン|ガーリー|レース|フリル|リボン|feminine|girly`), []string{"feminine"}},
	{CategoryStyle, regexp.MustCompile(`モード|モノトーン|アシンメトリー|mode`), []string{"mode"}},
	{CategoryStyle, regexp.MustCompile(`ストリート|オーバーサイズ|ビッグシルエット|street|oversized?`), []string{"street"}},
	{CategoryStyle, regexp.MustCompile(`ナチュラル|ゆったり|リラックス|natural|relaxed`), []string{"natural"}},
	{CategoryStyle, regexp.MustCompile(`フォーマル|オフィス|セレモニー|通勤|結婚式|formal|office`), []string{"formal"}},
	{CategoryStyle, regexp.MustCompile(`ベーシック|シンプル|無地|定番|basic|simple`), []string{"basic"}},
	{CategoryStyle, regexp.MustCompile(`ヴィンテージ|ビンテージ|レトロ|古着|vintage|retro`), []string{"vintage"}},

	// color
	{CategoryColor, regexp.MustCompile(`ブラック|黒|black`), []string{"black"}},
	{CategoryColor, regexp.MustCompile(`ホワイト|白|white`), []string{"white"}},
	{CategoryColor, regexp.MustCompile(`ベージュ|beige`), []string{"beige"}},
	{CategoryColor, regexp.MustCompile(`ネイビー|紺|navy`), []string{"navy"}},
	{CategoryColor, regexp.MustCompile(`グレー|灰色|gr[ae]y`), []string{"gray"}},
	{CategoryColor, regexp.MustCompile(`ブラウン|茶色|brown`), []string{"brown"}},
	{CategoryColor, regexp.MustCompile(`レッド|赤|red\b`), []string{"red"}},
	{CategoryColor, regexp.MustCompile(`ブルー|青|blue`), []string{"blue"}},
	{CategoryColor, regexp.MustCompile(`グリーン|緑|カーキ|green|khaki`), []string{"green"}},
	{CategoryColor, regexp.MustCompile(`ピンク|pink`), []string{"pink"}},

	// material
	{CategoryMaterial, regexp.MustCompile(`コットン|綿100?%?|cotton`), []string{"cotton"}},
	{CategoryMaterial, regexp.MustCompile(`リネン|麻|linen`), []string{"linen"}},
	{CategoryMaterial, regexp.MustCompile(`ウール|wool`), []string{"wool"}},
	{CategoryMaterial, regexp.MustCompile(`レザー|本革|合皮|leather`), []string{"leather"}},
	{CategoryMaterial, regexp.MustCompile(`デニム|denim`), []string{"denim"}},
	{CategoryMaterial, regexp.MustCompile(`ニット|セーター|カーディガン|knit|sweater|cardigan`), []string{"knit"}},

	// season
	{CategorySeason, regexp.MustCompile(`春|スプリング|spring`), []string{"spring"}},
	{CategorySeason, regexp.MustCompile(`夏|サマー|summer`), []string{"summer"}},
	{CategorySeason, regexp.MustCompile(`秋|オータム|autumn|fall`), []string{"autumn"}},
	{CategorySeason, regexp.MustCompile(`冬|ウィンター|winter`), []string{"winter"}},
}

// brandStyles maps a lowercased shop/brand name to the style tags the brand
// is known for. Keys must stay lowercase.
var brandStyles = map[string][]string{
	"re:edit":        {"natural", "mode"},
	"uniqlo":         {"basic"},
	"ユニクロ":           {"basic"},
	"gu":             {"basic", "casual"},
	"zara":           {"mode"},
	"snidel":         {"feminine"},
	"grl":            {"feminine", "casual"},
	"wego":           {"street"},
	"niko and ...":   {"natural"},
	"beams":          {"casual"},
	"urban research": {"casual", "mode"},
	"lowrys farm":    {"natural", "casual"},
	"studious":       {"mode"},
	"coen":           {"casual", "natural"},
	"dholic":         {"feminine"},
}

// Price tier thresholds in JPY (minor unit).
const (
	tierBudgetMax  = 2000
	tierMidMax     = 6000
	tierPremiumMax = 15000
)

const (
	TagTierBudget  = "budget"
	TagTierMid     = "midrange"
	TagTierPremium = "premium"
	TagTierLuxury  = "luxury"
)

// TagFallback keeps the tag set non-empty for listings nothing else matches.
const TagFallback = "fashion"

// MaxTags caps the result set; overflow is truncated in rule-declaration
// order.
const MaxTags = 15
