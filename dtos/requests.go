package dtos

type CreateProductRequest struct {
	ProductName   string   `json:"productName" binding:"required"`
	Barcode       string   `json:"barcode" binding:"required"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	ImageURL      string   `json:"imageUrl"`
	SupermarketID string   `json:"supermarketId" binding:"required"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
}

type UpdateProductRequest struct {
	ProductName string `json:"productName" binding:"required"`
	Barcode     string `json:"barcode" binding:"required"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	ImageURL    string `json:"imageUrl"`
}

// ProductImageRequest carries a captured camera frame as a data URL, or a
// remote image to copy. Multipart uploads use the "image" form field.
type ProductImageRequest struct {
	DataURL  string `json:"dataUrl"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

type BranchRequest struct {
	Name         string `json:"name" binding:"required"`
	LogoURL      string `json:"logoUrl"`
	Cep          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"omitempty,len=2"`
	ParentID     string `json:"parentId"`
}

// SetPriceRequest upserts a price. originalPrice 0 removes the reference
// price; omitting it keeps the current one.
type SetPriceRequest struct {
	SupermarketID string   `json:"supermarketId" binding:"required"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
}

type AdjustStockRequest struct {
	SupermarketID string `json:"supermarketId" binding:"required"`
	Delta         *int   `json:"delta" binding:"required"`
}

type OfferLinkRequest struct {
	SupermarketID string `json:"supermarketId" binding:"required"`
	Phone         string `json:"phone"`
}

type AddListItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type UpdateQuantityRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type CreateSearchSessionRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// SearchInputRequest reports what changed in the search box. Text is
// debounced; Category applies at once; Flush skips the wait.
type SearchInputRequest struct {
	Text     *string `json:"text"`
	Category *string `json:"category"`
	Flush    bool    `json:"flush"`
}

type FeedbackRequest struct {
	UserName  string `json:"userName" binding:"max=80"`
	UserPhoto string `json:"userPhoto" binding:"omitempty,url"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required,max=2000"`
}
