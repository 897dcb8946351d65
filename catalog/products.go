package catalog

import (
	"math"
	"strings"

	"precojusto-backend/models"
)

// NewProduct is the payload for registering a product together with its
// first price at the branch doing the registration.
type NewProduct struct {
	ProductName  string
	Barcode      string
	Category     string
	Brand        string
	ImageURL     string
	BranchID     string
	InitialPrice float64
}

func normalizeProduct(p models.Product) (models.Product, error) {
	p.ProductName = strings.TrimSpace(p.ProductName)
	p.Barcode = strings.TrimSpace(p.Barcode)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = strings.TrimSpace(p.Category)

	if p.ProductName == "" {
		return p, invalid("productName", "product name is required")
	}
	if p.Barcode == "" {
		return p, invalid("barcode", "barcode is required")
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if !models.IsValidCategory(p.Category) {
		return p, invalid("category", "unknown category %q", p.Category)
	}
	return p, nil
}

func validatePrice(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "%s must be a finite number", field)
	}
	if v < 0 {
		return invalid(field, "%s must not be negative", field)
	}
	return nil
}

// AddProduct appends a product and creates its initial price record (zero
// stock) at in.BranchID.
func (s State) AddProduct(in NewProduct, stamp Stamp) (State, models.Product, error) {
	p, err := normalizeProduct(models.Product{
		ProductName: in.ProductName,
		Barcode:     in.Barcode,
		Category:    in.Category,
		Brand:       in.Brand,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	})
	if err != nil {
		return s, models.Product{}, err
	}
	if err := validatePrice("price", in.InitialPrice); err != nil {
		return s, models.Product{}, err
	}
	if s.branchIndex(in.BranchID) < 0 {
		return s, models.Product{}, notFound("supermarket", in.BranchID)
	}
	if p.ImageURL == "" {
		p.ImageURL = models.DefaultProductImage
	}
	p.ID = stamp.NewID("p")

	next := s.clone()
	next.Products = append(next.Products, p)
	next.Prices = append(next.Prices, models.PriceRecord{
		ID:            stamp.NewID("pr"),
		ProductID:     p.ID,
		SupermarketID: in.BranchID,
		Price:         in.InitialPrice,
		Stock:         0,
		LastUpdated:   models.Millis(stamp.At),
	})
	return next, p, nil
}

// UpdateProduct replaces the stored product carrying p.ID.
func (s State) UpdateProduct(p models.Product) (State, models.Product, error) {
	i := s.productIndex(p.ID)
	if i < 0 {
		return s, models.Product{}, notFound("product", p.ID)
	}
	p, err := normalizeProduct(p)
	if err != nil {
		return s, models.Product{}, err
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		p.ImageURL = s.Products[i].ImageURL
	}

	next := s.clone()
	next.Products[i] = p
	return next, p, nil
}

// DeleteProduct removes the product and every price record pointing at it.
func (s State) DeleteProduct(id string) (State, error) {
	i := s.productIndex(id)
	if i < 0 {
		return s, notFound("product", id)
	}

	next := State{
		Products: make([]models.Product, 0, len(s.Products)-1),
		Branches: make([]models.Branch, len(s.Branches)),
		Prices:   make([]models.PriceRecord, 0, len(s.Prices)),
	}
	next.Products = append(next.Products, s.Products[:i]...)
	next.Products = append(next.Products, s.Products[i+1:]...)
	copy(next.Branches, s.Branches)
	for _, rec := range s.Prices {
		if rec.ProductID != id {
			next.Prices = append(next.Prices, rec)
		}
	}
	return next, nil
}

// SetProductImage swaps the product photo, typically after a camera capture.
func (s State) SetProductImage(id, imageURL string) (State, models.Product, error) {
	i := s.productIndex(id)
	if i < 0 {
		return s, models.Product{}, notFound("product", id)
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return s, models.Product{}, invalid("imageUrl", "image is required")
	}

	next := s.clone()
	next.Products[i].ImageURL = imageURL
	return next, next.Products[i], nil
}
