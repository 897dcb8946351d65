// Package pricing derives comparisons from catalog prices: best offer per
// product, discount percentages, shopping list totals per branch and the
// cheapest branch for a list. Money is summed with decimal arithmetic and
// rounded to cents.
package pricing

import (
	"github.com/shopspring/decimal"

	"precojusto-backend/models"
)

// PriceLookup resolves the record for a (product, branch) pair.
type PriceLookup interface {
	PriceFor(productID, branchID string) (models.PriceRecord, bool)
}

var hundred = decimal.NewFromInt(100)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// BestPrice returns the lowest record for productID, scanning branches in
// order so the first branch wins a tie.
func BestPrice(prices PriceLookup, branches []models.Branch, productID string) (models.PriceRecord, bool) {
	var best models.PriceRecord
	found := false
	for _, b := range branches {
		rec, ok := prices.PriceFor(productID, b.ID)
		if !ok {
			continue
		}
		if !found || rec.Price < best.Price {
			best = rec
			found = true
		}
	}
	return best, found
}

// Discount returns the whole-number percentage off the original price.
// ok is false when the record is not a deal.
func Discount(rec models.PriceRecord) (percent int, ok bool) {
	if !rec.IsDeal() {
		return 0, false
	}
	original := money(*rec.OriginalPrice)
	off := original.Sub(money(rec.Price)).Mul(hundred).Div(original)
	return int(off.Round(0).IntPart()), true
}

// BranchTotal sums price times quantity at branchID. Items the branch does
// not price count as zero.
func BranchTotal(prices PriceLookup, items []models.ShoppingListItem, branchID string) decimal.Decimal {
	total, _ := branchTotal(prices, items, branchID)
	return total
}

func branchTotal(prices PriceLookup, items []models.ShoppingListItem, branchID string) (decimal.Decimal, []string) {
	total := decimal.Zero
	var missing []string
	for _, item := range items {
		rec, ok := prices.PriceFor(item.Product.ID, branchID)
		if !ok {
			missing = append(missing, item.Product.ID)
			continue
		}
		total = total.Add(money(rec.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2), missing
}

// BranchSummary is one branch's total for a shopping list.
type BranchSummary struct {
	Branch   models.Branch   `json:"supermarket"`
	Total    decimal.Decimal `json:"total"`
	Complete bool            `json:"complete"`
	Missing  []string        `json:"missingProductIds,omitempty"`
}

// Totals computes a summary for every branch, in branch order.
func Totals(prices PriceLookup, branches []models.Branch, items []models.ShoppingListItem) []BranchSummary {
	out := make([]BranchSummary, 0, len(branches))
	for _, b := range branches {
		total, missing := branchTotal(prices, items, b.ID)
		out = append(out, BranchSummary{
			Branch:   b,
			Total:    total,
			Complete: len(missing) == 0,
			Missing:  missing,
		})
	}
	return out
}

// CheapestBranch picks the lowest total among branches that price every
// item. When none does, all branches compete. Ties go to branch order.
func CheapestBranch(prices PriceLookup, branches []models.Branch, items []models.ShoppingListItem) (BranchSummary, bool) {
	return cheapest(Totals(prices, branches, items))
}

func cheapest(summaries []BranchSummary) (BranchSummary, bool) {
	anyComplete := false
	for _, s := range summaries {
		if s.Complete {
			anyComplete = true
			break
		}
	}

	var best BranchSummary
	found := false
	for _, s := range summaries {
		if anyComplete && !s.Complete {
			continue
		}
		if !found || s.Total.LessThan(best.Total) {
			best = s
			found = true
		}
	}
	return best, found
}
