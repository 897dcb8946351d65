package catalog

import (
	"time"

	"precojusto-backend/models"
)

// State is the whole catalog at one point in time. Update methods never
// modify the receiver; they return the next State.
type State struct {
	Products []models.Product     `json:"products"`
	Branches []models.Branch      `json:"supermarkets"`
	Prices   []models.PriceRecord `json:"prices"`
}

// Stamp carries the identifiers and clock reading an update may assign, so
// updates stay deterministic for a given input.
type Stamp struct {
	NewID func(prefix string) string
	At    time.Time
}

func (s State) clone() State {
	next := State{
		Products: make([]models.Product, len(s.Products)),
		Branches: make([]models.Branch, len(s.Branches)),
		Prices:   make([]models.PriceRecord, len(s.Prices)),
	}
	copy(next.Products, s.Products)
	copy(next.Branches, s.Branches)
	copy(next.Prices, s.Prices)
	return next
}

func (s State) productIndex(id string) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) branchIndex(id string) int {
	for i := range s.Branches {
		if s.Branches[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) priceIndex(productID, branchID string) int {
	for i := range s.Prices {
		if s.Prices[i].ProductID == productID && s.Prices[i].SupermarketID == branchID {
			return i
		}
	}
	return -1
}

func (s State) Product(id string) (models.Product, bool) {
	if i := s.productIndex(id); i >= 0 {
		return s.Products[i], true
	}
	return models.Product{}, false
}

func (s State) Branch(id string) (models.Branch, bool) {
	if i := s.branchIndex(id); i >= 0 {
		return s.Branches[i], true
	}
	return models.Branch{}, false
}

// PriceFor returns the record for the (product, branch) pair.
func (s State) PriceFor(productID, branchID string) (models.PriceRecord, bool) {
	if i := s.priceIndex(productID, branchID); i >= 0 {
		return s.Prices[i], true
	}
	return models.PriceRecord{}, false
}

// PricesForProduct returns the product's records ordered like the branch list.
func (s State) PricesForProduct(productID string) []models.PriceRecord {
	var out []models.PriceRecord
	for _, b := range s.Branches {
		if rec, ok := s.PriceFor(productID, b.ID); ok {
			out = append(out, rec)
		}
	}
	return out
}

// BranchFamily returns the root branch followed by its direct children.
func (s State) BranchFamily(rootID string) ([]models.Branch, error) {
	root, ok := s.Branch(rootID)
	if !ok {
		return nil, notFound("supermarket", rootID)
	}
	family := []models.Branch{root}
	for _, b := range s.Branches {
		if b.ParentID == root.ID {
			family = append(family, b)
		}
	}
	return family, nil
}

func (s State) hasChildren(id string) bool {
	for _, b := range s.Branches {
		if b.ParentID == id {
			return true
		}
	}
	return false
}
