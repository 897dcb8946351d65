package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PriceChangeCreated = "created"
	PriceChangePrice   = "price"
	PriceChangeStock   = "stock"
	PriceChangeRemoved = "removed"
)

// PriceChange is one row of the price ledger. Rows are append-only.
type PriceChange struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     string           `gorm:"not null;index" json:"productId"`
	SupermarketID string           `gorm:"not null;index" json:"supermarketId"`
	PriceBefore   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"priceBefore,omitempty"`
	PriceAfter    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"priceAfter,omitempty"`
	StockBefore   int              `json:"stockBefore"`
	StockAfter    int              `json:"stockAfter"`
	Reason        string           `gorm:"not null" json:"reason"`
	CreatedAt     time.Time        `gorm:"index" json:"createdAt"`
}

func (pc *PriceChange) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return nil
}
