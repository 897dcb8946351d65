package models

import "time"

// PriceRecord is the price and stock of one product at one branch.
// (ProductID, SupermarketID) is unique within the catalog.
type PriceRecord struct {
	ID            string   `json:"id"`
	ProductID     string   `json:"productId"`
	SupermarketID string   `json:"supermarketId"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Stock         int      `json:"stock"`
	LastUpdated   int64    `json:"lastUpdated"`
}

// IsDeal reports whether the record carries a pre-discount price above the
// current one.
func (r PriceRecord) IsDeal() bool {
	return r.OriginalPrice != nil && *r.OriginalPrice > r.Price
}

// Millis converts t to the epoch-millisecond form used by LastUpdated.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
