package catalog

import (
	"math"

	"precojusto-backend/models"
)

// PriceUpdate sets the current price of a product at a branch.
// OriginalPrice nil keeps the stored reference price; zero clears it.
type PriceUpdate struct {
	ProductID     string
	BranchID      string
	Price         float64
	OriginalPrice *float64
}

func (s State) requirePair(productID, branchID string) error {
	if s.productIndex(productID) < 0 {
		return notFound("product", productID)
	}
	if s.branchIndex(branchID) < 0 {
		return notFound("supermarket", branchID)
	}
	return nil
}

// SetPrice upserts the record for the pair. New records start with zero stock.
func (s State) SetPrice(in PriceUpdate, stamp Stamp) (State, models.PriceRecord, error) {
	if err := validatePrice("price", in.Price); err != nil {
		return s, models.PriceRecord{}, err
	}
	if in.OriginalPrice != nil {
		if err := validatePrice("originalPrice", *in.OriginalPrice); err != nil {
			return s, models.PriceRecord{}, err
		}
	}
	if err := s.requirePair(in.ProductID, in.BranchID); err != nil {
		return s, models.PriceRecord{}, err
	}

	next := s.clone()
	i := s.priceIndex(in.ProductID, in.BranchID)
	if i < 0 {
		next.Prices = append(next.Prices, models.PriceRecord{
			ID:            stamp.NewID("pr"),
			ProductID:     in.ProductID,
			SupermarketID: in.BranchID,
			Stock:         0,
		})
		i = len(next.Prices) - 1
	}

	rec := &next.Prices[i]
	rec.Price = in.Price
	if in.OriginalPrice != nil {
		if *in.OriginalPrice == 0 {
			rec.OriginalPrice = nil
		} else {
			original := *in.OriginalPrice
			rec.OriginalPrice = &original
		}
	}
	rec.LastUpdated = models.Millis(stamp.At)
	return next, *rec, nil
}

// AdjustStock adds delta to the record's stock, clamping at zero and
// saturating at math.MaxInt. A pair
// without a record is reported as not found and left untouched.
func (s State) AdjustStock(productID, branchID string, delta int, stamp Stamp) (State, models.PriceRecord, error) {
	if err := s.requirePair(productID, branchID); err != nil {
		return s, models.PriceRecord{}, err
	}
	i := s.priceIndex(productID, branchID)
	if i < 0 {
		return s, models.PriceRecord{}, notFound("price record", productID+"@"+branchID)
	}

	next := s.clone()
	rec := &next.Prices[i]
	switch {
	case delta > 0 && rec.Stock > math.MaxInt-delta:
		rec.Stock = math.MaxInt
	case rec.Stock+delta < 0:
		rec.Stock = 0
	default:
		rec.Stock += delta
	}
	rec.LastUpdated = models.Millis(stamp.At)
	return next, *rec, nil
}
