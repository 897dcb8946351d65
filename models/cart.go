package models

type ShoppingListItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type ShoppingList struct {
	ID        string             `json:"id"`
	Items     []ShoppingListItem `json:"items"`
	UpdatedAt int64              `json:"updatedAt"`
}
