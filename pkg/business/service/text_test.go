package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	ts := NewTextService()

	tests := []struct {
		input string
		want  string
	}{
		{"【新作】花柄ワンピース", "花柄ワンピース"},
		{"【送料無料】 Ｔシャツ  ＳＡＬＥ", "tシャツ sale"},
		{"『限定』デニム パンツ（新色）", "デニム パンツ"},
		{"  Plain  Title  ", "plain title"},
		{"[SET] リネン スカート", "リネン スカート"},
		{"花柄　ワンピース", "花柄 ワンピース"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ts.NormalizeTitle(tt.input), "input %q", tt.input)
	}
}

func TestStripBracketsKeepsUnbracketedText(t *testing.T) {
	ts := NewTextService()
	got := ts.NormalizeTitle("ニットセーター")
	assert.Equal(t, "ニットセーター", got)
}

func TestClearCaption(t *testing.T) {
	ts := NewTextService()

	got := ts.ClearCaption("<p>綿100%の ワンピース</p> 詳細は https://example.jp/item を参照", 200)
	assert.Equal(t, "綿100%の ワンピース 詳細は を参照", got)
}

func TestReduceToLengthDoesNotSplitRunes(t *testing.T) {
	ts := NewTextService()

	got := ts.ReduceToLength("ワンピース", 7)
	assert.Equal(t, "ワン", got)
}
