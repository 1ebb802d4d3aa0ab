package models

import "slices"

// Category is the closed set of product categories in the catalog.
type Category string

const (
	CategoryMug    Category = "mug"
	CategoryHoodie Category = "hoodie"
	CategoryTShirt Category = "tshirt"
	CategoryCap    Category = "cap"
	CategoryBag    Category = "bag"
)

// Categories lists every category in catalog declaration order.
var Categories = []Category{CategoryMug, CategoryHoodie, CategoryTShirt, CategoryCap, CategoryBag}

// IDPrefix returns the prefix every product id of this category starts with, e.g. "hoodie-".
func (c Category) IDPrefix() string {
	return string(c) + "-"
}

// Product is an immutable catalog entry. Sizes is non-empty only for
// size-variant (apparel) products.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Currency    string   `json:"currency"`
	Category    Category `json:"category"`
	Color       string   `json:"color"`
	Sizes       []string `json:"sizes,omitempty"`
	Image       string   `json:"image"`
}

// HasSizes reports whether the product must be ordered with a size.
func (p Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// OffersSize reports whether size is one of the product's sizes. Matching is exact.
func (p Product) OffersSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}
