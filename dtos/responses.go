package dtos

import (
	"precojusto-backend/filter"
	"precojusto-backend/models"
	"precojusto-backend/pricing"
	"precojusto-backend/search"
)

// ProductCard is a product with its lowest price, as shown in listings.
type ProductCard struct {
	models.Product
	BestPrice *models.PriceRecord `json:"bestPrice,omitempty"`
	Discount  int                 `json:"discount,omitempty"`
}

type ProductGroup struct {
	Category string        `json:"category"`
	Products []ProductCard `json:"products"`
}

type LinkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

type ListTotalsResponse struct {
	ListID   string                  `json:"listId"`
	Totals   []pricing.BranchSummary `json:"totals"`
	Cheapest *pricing.BranchSummary  `json:"cheapest,omitempty"`
}

// SearchResult is a search box view together with the products it selects.
type SearchResult struct {
	search.View
	Results []filter.Group `json:"results"`
}

type ProductDeletedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
