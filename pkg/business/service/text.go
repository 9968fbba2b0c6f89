package service

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

type ITextService interface {
	RemoveTags(input string) string
	RemoveLinks(input string) string
	StripBrackets(input string) string
	FoldWidth(input string) string
	CollapseWhitespace(input string) string
	NormalizeTitle(input string) string
	ReduceToLength(input string, length int) string
	ClearCaption(input string, length int) string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

var (
	tagsRe  = regexp.MustCompile(`<[^>]*>`)
	linksRe = regexp.MustCompile(`https?://[^\s]+`)
	// Marketplace titles carry promo markers in every bracket style the
	// shops can type: 【送料無料】, ［SALE］, （新色）, 『限定』 and so on.
	bracketsRe = regexp.MustCompile(`【[^】]*】|『[^』]*』|《[^》]*》|〈[^〉]*〉|≪[^≫]*≫|\[[^\]]*\]|（[^）]*）|\([^)]*\)|＜[^＞]*＞`)
	spaceRe    = regexp.MustCompile(`[\s　]+`)
)

func (ts *TextService) RemoveTags(input string) string {
	return tagsRe.ReplaceAllString(html.UnescapeString(input), "")
}

func (ts *TextService) RemoveLinks(input string) string {
	return linksRe.ReplaceAllString(input, "")
}

func (ts *TextService) StripBrackets(input string) string {
	return bracketsRe.ReplaceAllString(input, " ")
}

// FoldWidth maps full-width latin/digits to half-width and half-width kana to
// full-width, so ＳＡＬＥ and SALE compare equal.
func (ts *TextService) FoldWidth(input string) string {
	return width.Fold.String(input)
}

func (ts *TextService) CollapseWhitespace(input string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(input, " "))
}

// NormalizeTitle produces the near-duplicate key form of a listing title:
// width-folded, bracket segments dropped, lowercased, whitespace collapsed.
func (ts *TextService) NormalizeTitle(input string) string {
	cleaned := ts.FoldWidth(input)
	cleaned = ts.StripBrackets(cleaned)
	cleaned = strings.ToLower(cleaned)
	return ts.CollapseWhitespace(cleaned)
}

func (ts *TextService) ReduceToLength(input string, length int) string {
	if len(input) <= length {
		return input
	}
	runes := []rune(input)
	total := 0
	for i, r := range runes {
		total += len(string(r))
		if total > length {
			return string(runes[:i])
		}
	}
	return input
}

// ClearCaption cleans a shop-written item caption for storage: tags and links
// removed, whitespace collapsed, reduced to the given byte length.
func (ts *TextService) ClearCaption(input string, length int) string {
	cleaned := ts.RemoveTags(input)
	cleaned = ts.RemoveLinks(cleaned)
	cleaned = ts.CollapseWhitespace(cleaned)
	return ts.ReduceToLength(cleaned, length)
}
