package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swipemarket_api/internal/catalog/models"
)

func product(id, normTitle, brand string) models.Product {
	return models.Product{ID: id, NormalizedTitle: normTitle, Brand: brand, Tags: []string{"fashion"}}
}

func TestDedupIndexRejectsSameID(t *testing.T) {
	idx := NewDedupIndex(nil)

	assert.True(t, idx.Admit(product("a", "花柄ワンピース", "Re:EDIT")))
	assert.False(t, idx.Admit(product("a", "別のタイトル", "別ブランド")))
	assert.Equal(t, 1, idx.Len())
}

func TestDedupIndexRejectsSameTitleBrand(t *testing.T) {
	idx := NewDedupIndex(nil)

	assert.True(t, idx.Admit(product("a", "花柄ワンピース", "Re:EDIT")))
	// same underlying item re-ingested under a different id and brand casing
	assert.False(t, idx.Admit(product("b", "花柄ワンピース", "re:edit")))
	// same title from a different shop is a different item
	assert.True(t, idx.Admit(product("c", "花柄ワンピース", "GRL")))
}

func TestDedupIndexRejectsSameImageSignature(t *testing.T) {
	idx := NewDedupIndex(nil)

	a := product("a", "花柄ワンピース", "Re:EDIT")
	a.ImageSignature = "thumbnail.image.rakuten.co.jp/@0_mall/reedit/cabinet/item1.jpg"
	b := product("b", "花柄ワンピ 2024", "Re:EDIT")
	b.ImageSignature = a.ImageSignature
	c := product("c", "リネンスカート", "coen")

	assert.True(t, idx.Admit(a))
	// same photo under a retitled relisting
	assert.False(t, idx.Admit(b))
	// empty signatures never collide with each other
	assert.True(t, idx.Admit(c))
	assert.True(t, idx.Admit(product("d", "別のタイトル", "GRL")))
}

func TestDedupIndexPreseededExcludes(t *testing.T) {
	idx := NewDedupIndex([]string{"a", "b"})

	assert.False(t, idx.Admit(product("a", "t1", "x")))
	assert.False(t, idx.Admit(product("b", "t2", "x")))
	assert.True(t, idx.Admit(product("c", "t3", "x")))
	assert.Equal(t, []string{"c"}, idx.Admitted())
}
