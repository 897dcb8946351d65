// Package filter narrows and groups the product catalog for display.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"precojusto-backend/models"
)

// allCategories are the category values that disable the category filter.
var allCategories = map[string]bool{
	"":                 true,
	models.CategoryAll: true,
	"Tudo":             true,
}

// IsAllCategories reports whether category is the "no category filter" sentinel.
func IsAllCategories(category string) bool {
	return allCategories[strings.TrimSpace(category)]
}

// Products keeps the products whose name or brand contains search (ignoring
// case) and whose category matches. Search is matched verbatim, so
// surrounding spaces are significant. Order is preserved.
func Products(products []models.Product, search, category string) []models.Product {
	fold := cases.Fold()
	needle := fold.String(search)
	category = strings.TrimSpace(category)
	anyCategory := IsAllCategories(category)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !anyCategory && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.ProductName), needle) &&
			!strings.Contains(fold.String(p.Brand), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Group is one category section of the product list.
type Group struct {
	Category string           `json:"category"`
	Products []models.Product `json:"products"`
}

// ByCategory groups products in first-seen category order. Products with a
// blank category land in "Outros".
func ByCategory(products []models.Product) []Group {
	groups := []Group{}
	index := map[string]int{}
	for _, p := range products {
		cat := strings.TrimSpace(p.Category)
		if cat == "" {
			cat = models.CategoryOther
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
