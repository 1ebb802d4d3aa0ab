package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

func TestResolver_Resolve(t *testing.T) {
	catalog := DefaultCatalog()
	r := NewResolver(catalog)
	hoodies := catalog.Query(Filters{Category: "hoodie"})

	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{"ordinal into last shown", "2", "hoodie-002"},
		{"first ordinal", "1", "hoodie-001"},
		{"last ordinal", "4", "hoodie-004"},
		{"ordinal out of range passes through", "5", "5"},
		{"zero passes through", "0", "0"},
		{"huge ordinal passes through", "99999999999999999999", "99999999999999999999"},
		{"canonical id passes through", "hoodie-003", "hoodie-003"},
		{"unknown id-shaped reference passes through", "mug-999", "mug-999"},
		{"name in last shown ignores case", "grey zip hoodie", "hoodie-002"},
		{"name outside last shown falls back to catalog", "blue gym bag", "bag-003"},
		{"unknown name passes through", "purple scarf", "purple scarf"},
		{"empty reference passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.reference, hoodies))
		})
	}
}

func TestResolver_NameResolvesWithOrWithoutLastShown(t *testing.T) {
	catalog := DefaultCatalog()
	r := NewResolver(catalog)

	assert.Equal(t, "hoodie-001", r.Resolve("black logo hoodie", catalog.Query(Filters{Category: "hoodie"})))
	assert.Equal(t, "hoodie-001", r.Resolve("black logo hoodie", catalog.Query(Filters{Category: "cap"})))
	assert.Equal(t, "hoodie-001", r.Resolve("Black Logo Hoodie", nil))
}

func TestResolver_OrdinalWithoutLastShownPassesThrough(t *testing.T) {
	r := NewResolver(DefaultCatalog())
	assert.Equal(t, "1", r.Resolve("1", nil))
}

func TestResolver_LastShownWinsOverCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	r := NewResolver(catalog)

	hoodie, _ := catalog.Find("hoodie-001")
	shadow := hoodie
	shadow.ID = "hoodie-101"
	assert.Equal(t, "hoodie-101", r.Resolve("black logo hoodie", []models.Product{shadow}))
}

func TestResolver_NumericStringsAreNeverNames(t *testing.T) {
	catalog := NewCatalog([]models.Product{{ID: "mug-001", Name: "42", Category: models.CategoryMug}})
	r := NewResolver(catalog)
	assert.Equal(t, "42", r.Resolve("42", nil), "numeric references skip the name lookup")
}
