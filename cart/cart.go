// Package cart manages shopping lists: ordered products with quantities.
package cart

import (
	"precojusto-backend/catalog"
	"precojusto-backend/models"
)

// Items is an ordered shopping list. Each product appears at most once and
// every quantity is at least 1.
type Items []models.ShoppingListItem

func (items Items) index(productID string) int {
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add bumps the quantity of p, appending it with quantity 1 when absent.
func (items Items) Add(p models.Product) Items {
	next := append(Items(nil), items...)
	if i := next.index(p.ID); i >= 0 {
		next[i].Quantity++
		return next
	}
	return append(next, models.ShoppingListItem{Product: p, Quantity: 1})
}

// SetQuantity shifts a product's quantity by delta, never below 1.
func (items Items) SetQuantity(productID string, delta int) (Items, error) {
	i := items.index(productID)
	if i < 0 {
		return items, &catalog.NotFoundError{Kind: "list item", ID: productID}
	}
	next := append(Items(nil), items...)
	next[i].Quantity += delta
	if next[i].Quantity < 1 {
		next[i].Quantity = 1
	}
	return next, nil
}

// Remove drops the product. Removing an absent product changes nothing.
func (items Items) Remove(productID string) Items {
	i := items.index(productID)
	if i < 0 {
		return items
	}
	next := make(Items, 0, len(items)-1)
	next = append(next, items[:i]...)
	return append(next, items[i+1:]...)
}
