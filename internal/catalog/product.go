// Package catalog holds the product model, the closed category set, and the
// local filtering projection used by the product list view.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Collection is the document store collection holding products.
const Collection = "products"

// Category is one of the fixed set of product categories. The same set is
// surfaced by the list filter, the add form, and the edit form.
type Category string

const (
	CategoryShoes       Category = "Shoes"
	CategoryClothes     Category = "Clothes"
	CategoryElectronics Category = "Electronics"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{CategoryShoes, CategoryClothes, CategoryElectronics}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryShoes, CategoryClothes, CategoryElectronics:
		return true
	}
	return false
}

// Product is a remote-owned catalog entity. ID is assigned by the store on
// creation and immutable thereafter; the other fields are the document body.
type Product struct {
	ID       string          `json:"-"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
}

// Filter projects products onto the subset matching the list view inputs:
// a product is kept iff its name contains search case-insensitively, and
// category is empty or equals the product's category exactly (case-sensitive).
// The projection is pure and order-preserving; empty inputs match everything.
func Filter(products []Product, search, category string) []Product {
	needle := strings.ToLower(search)
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if category != "" && string(p.Category) != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
