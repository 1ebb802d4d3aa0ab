package services

import (
	"strconv"
	"strings"

	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// Resolver maps a shopper's product reference (ordinal, name or id) to a
// canonical product id.
type Resolver struct {
	catalog  *Catalog
	prefixes []string
}

// NewResolver returns a Resolver that falls back to catalog for name lookups.
func NewResolver(catalog *Catalog) *Resolver {
	prefixes := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		prefixes = append(prefixes, c.IDPrefix())
	}
	return &Resolver{catalog: catalog, prefixes: prefixes}
}

// Resolve never fails. Precedence:
//  1. all digits: 1-based index into lastShown; out of range returns the reference as-is
//  2. not id-shaped: case-insensitive exact name match in lastShown
//  3. then the same match over the full catalog
//  4. otherwise the reference is returned unchanged
//
// Unknown references are left for the ledger to reject.
func (r *Resolver) Resolve(reference string, lastShown []models.Product) string {
	if isDigits(reference) {
		if n, err := strconv.Atoi(reference); err == nil && n >= 1 && n <= len(lastShown) {
			return lastShown[n-1].ID
		}
		return reference
	}

	if r.looksLikeID(reference) {
		return reference
	}

	if p, ok := findByName(lastShown, reference); ok {
		return p.ID
	}
	if p, ok := r.catalog.FindByName(reference); ok {
		return p.ID
	}
	return reference
}

func (r *Resolver) looksLikeID(reference string) bool {
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(reference, prefix) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
