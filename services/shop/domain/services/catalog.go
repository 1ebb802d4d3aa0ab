// Package services contains stateless domain services for the shop bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// Filters narrows a catalog query. Zero-valued fields are not applied;
// MaxPrice is a pointer because a zero bound is a valid (if empty) filter.
type Filters struct {
	Category string
	MaxPrice *int64
	Color    string
}

// Catalog is the immutable product set. It is safe for concurrent use
// without synchronization because nothing mutates it after NewCatalog.
type Catalog struct {
	products []models.Product
	byID     map[string]int
}

// NewCatalog builds a Catalog over products, preserving their order.
func NewCatalog(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

// DefaultCatalog returns the seeded storefront catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(models.SeedCatalog())
}

// Query returns every product matching all set filters, in declaration order.
// Category and color compare case-insensitively; MaxPrice is inclusive.
// A query that matches nothing returns an empty, non-nil slice.
func (c *Catalog) Query(f Filters) []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.Category != "" && !strings.EqualFold(string(p.Category), f.Category) {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.Color != "" && !strings.EqualFold(p.Color, f.Color) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Find looks up a product by its canonical id.
func (c *Catalog) Find(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// FindByName returns the first product whose name equals name, ignoring case.
func (c *Catalog) FindByName(name string) (models.Product, bool) {
	return findByName(c.products, name)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

func findByName(products []models.Product, name string) (models.Product, bool) {
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Product{}, false
}

var (
	underPricePattern = regexp.MustCompile(`under\s+(\d+)`)

	// Checked in order; the first keyword found wins.
	categoryKeywords = []struct {
		category models.Category
		words    []string
	}{
		{models.CategoryMug, []string{"mug", "cup"}},
		{models.CategoryHoodie, []string{"hoodie"}},
		{models.CategoryTShirt, []string{"tshirt", "t-shirt", "tee", "shirt"}},
		{models.CategoryCap, []string{"cap", "hat"}},
		{models.CategoryBag, []string{"bag"}},
	}
	colorKeywords = []string{"black", "white", "blue", "grey", "gray", "red", "brown", "green", "navy"}
)

// ParseSearchQuery extracts catalog filters from a free-text browse request
// such as "black hoodies", "bags under 2000" or "gray tee".
// Keywords are matched as substrings of the lowercased text.
func ParseSearchQuery(text string) Filters {
	q := strings.ToLower(text)
	var f Filters

category:
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(q, w) {
				f.Category = string(ck.category)
				break category
			}
		}
	}

	for _, color := range colorKeywords {
		if strings.Contains(q, color) {
			if color == "gray" {
				color = "grey"
			}
			f.Color = color
			break
		}
	}

	if m := underPricePattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			f.MaxPrice = &n
		}
	}

	return f
}
