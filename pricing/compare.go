package pricing

import (
	"github.com/shopspring/decimal"

	"precojusto-backend/models"
)

// Offer is a branch's price for a product. Record is nil when the branch
// does not sell it.
type Offer struct {
	Branch   models.Branch       `json:"supermarket"`
	Record   *models.PriceRecord `json:"price,omitempty"`
	Discount int                 `json:"discount,omitempty"`
	Best     bool                `json:"best"`
}

// Comparison lines up every branch's offer for one product.
type Comparison struct {
	ProductID string              `json:"productId"`
	Offers    []Offer             `json:"offers"`
	Best      *models.PriceRecord `json:"bestPrice,omitempty"`
}

func Compare(prices PriceLookup, branches []models.Branch, productID string) Comparison {
	cmp := Comparison{ProductID: productID, Offers: make([]Offer, 0, len(branches))}
	best, found := BestPrice(prices, branches, productID)
	if found {
		cmp.Best = &best
	}

	for _, b := range branches {
		offer := Offer{Branch: b}
		if rec, ok := prices.PriceFor(productID, b.ID); ok {
			offer.Record = &rec
			offer.Discount, _ = Discount(rec)
			offer.Best = found && rec.ID == best.ID
		}
		cmp.Offers = append(cmp.Offers, offer)
	}
	return cmp
}

// Deal is a product whose best offer is below its original price.
type Deal struct {
	Product  models.Product     `json:"product"`
	Price    models.PriceRecord `json:"priceRec"`
	Discount int                `json:"discount"`
}

// Deals lists deals in product order. A product counts only when its best
// offer itself carries the discount.
func Deals(prices PriceLookup, branches []models.Branch, products []models.Product) []Deal {
	deals := []Deal{}
	for _, p := range products {
		best, ok := BestPrice(prices, branches, p.ID)
		if !ok {
			continue
		}
		if pct, ok := Discount(best); ok {
			deals = append(deals, Deal{Product: p, Price: best, Discount: pct})
		}
	}
	return deals
}

type ReceiptLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Available bool            `json:"available"`
}

// Receipt is the estimated bill for a shopping list at one branch.
type Receipt struct {
	Branch models.Branch   `json:"supermarket"`
	Lines  []ReceiptLine   `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

func BuildReceipt(prices PriceLookup, branch models.Branch, items []models.ShoppingListItem) Receipt {
	r := Receipt{Branch: branch, Lines: make([]ReceiptLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		line := ReceiptLine{
			ProductID: item.Product.ID,
			Name:      item.Product.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: decimal.Zero,
			Subtotal:  decimal.Zero,
		}
		if rec, ok := prices.PriceFor(item.Product.ID, branch.ID); ok {
			line.Available = true
			line.UnitPrice = money(rec.Price)
			line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		}
		r.Total = r.Total.Add(line.Subtotal)
		r.Lines = append(r.Lines, line)
	}
	r.Total = r.Total.Round(2)
	return r
}
