package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog_Shape(t *testing.T) {
	products := SeedCatalog()
	require.Len(t, products, 23)

	perCategory := map[Category]int{}
	seen := map[string]bool{}
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true

		assert.True(t, strings.HasPrefix(p.ID, p.Category.IDPrefix()), "id %s does not match category %s", p.ID, p.Category)
		assert.Positive(t, p.Price, p.ID)
		assert.Equal(t, CatalogCurrency, p.Currency, p.ID)
		assert.Equal(t, strings.ToLower(p.Color), p.Color, p.ID)

		apparel := p.Category == CategoryHoodie || p.Category == CategoryTShirt
		assert.Equal(t, apparel, p.HasSizes(), "sizes on %s", p.ID)
		perCategory[p.Category]++
	}

	assert.Equal(t, map[Category]int{
		CategoryMug:    5,
		CategoryHoodie: 4,
		CategoryTShirt: 5,
		CategoryCap:    4,
		CategoryBag:    5,
	}, perCategory)
}

func TestSeedCatalog_FreshValues(t *testing.T) {
	a := SeedCatalog()
	a[5].Sizes[0] = "XXS"
	a[0].Name = "changed"

	b := SeedCatalog()
	assert.Equal(t, "S", b[5].Sizes[0])
	assert.Equal(t, "Stoneware Coffee Mug", b[0].Name)
}

func TestProduct_OffersSize(t *testing.T) {
	hoodie := Product{ID: "hoodie-001", Sizes: []string{"S", "M", "L", "XL"}}
	mug := Product{ID: "mug-001"}

	assert.True(t, hoodie.HasSizes())
	assert.True(t, hoodie.OffersSize("M"))
	assert.False(t, hoodie.OffersSize("m"), "size matching is exact")
	assert.False(t, hoodie.OffersSize("XXL"))

	assert.False(t, mug.HasSizes())
	assert.False(t, mug.OffersSize("M"))
}

func TestCategory_IDPrefix(t *testing.T) {
	assert.Equal(t, "tshirt-", CategoryTShirt.IDPrefix())
	assert.Len(t, Categories, 5)
}
