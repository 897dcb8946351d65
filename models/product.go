package models

// DefaultProductImage is used when a product is registered without a photo.
const DefaultProductImage = "https://images.unsplash.com/photo-1542838132-92c53300491e?auto=format&fit=crop&q=80&w=300&h=300"

type Product struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Barcode     string `json:"barcode"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	ImageURL    string `json:"imageUrl"`
}
