package database

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"precojusto-backend/catalog"
	"precojusto-backend/models"
)

// DefaultHistoryLimit caps ledger queries that do not set a limit.
const DefaultHistoryLimit = 50

// PriceHistory appends catalog price events to the ledger and reads them back.
type PriceHistory struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewPriceHistory(db *gorm.DB, log *zap.Logger) *PriceHistory {
	if log == nil {
		log = zap.NewNop()
	}
	return &PriceHistory{DB: db, Log: log}
}

func toChange(ev catalog.PriceEvent) models.PriceChange {
	change := models.PriceChange{
		Reason:    ev.Reason,
		CreatedAt: ev.At,
	}
	if ev.Before != nil {
		p := decimal.NewFromFloat(ev.Before.Price)
		change.ProductID = ev.Before.ProductID
		change.SupermarketID = ev.Before.SupermarketID
		change.PriceBefore = &p
		change.StockBefore = ev.Before.Stock
	}
	if ev.After != nil {
		p := decimal.NewFromFloat(ev.After.Price)
		change.ProductID = ev.After.ProductID
		change.SupermarketID = ev.After.SupermarketID
		change.PriceAfter = &p
		change.StockAfter = ev.After.Stock
	}
	return change
}

// Record stores one event. It matches catalog.PriceObserver; failures are
// logged since the catalog change has already been committed.
func (h *PriceHistory) Record(ev catalog.PriceEvent) {
	change := toChange(ev)
	if err := h.DB.Create(&change).Error; err != nil {
		h.Log.Error("failed to record price change",
			zap.String("product_id", change.ProductID),
			zap.String("supermarket_id", change.SupermarketID),
			zap.String("reason", change.Reason),
			zap.Error(err),
		)
	}
}

// ForProduct returns the newest changes for productID, optionally narrowed
// to one branch. Changes stamped at the same instant come back in reverse
// insertion order.
func (h *PriceHistory) ForProduct(productID, branchID string, limit int) ([]models.PriceChange, error) {
	if limit <= 0 || limit > 500 {
		limit = DefaultHistoryLimit
	}

	query := h.DB.Where("product_id = ?", productID)
	if branchID != "" {
		query = query.Where("supermarket_id = ?", branchID)
	}

	changes := []models.PriceChange{}
	if err := query.Order("created_at DESC, rowid DESC").Limit(limit).Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}
