package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precojusto-backend/cart"
	"precojusto-backend/catalog"
	"precojusto-backend/database"
	"precojusto-backend/dtos"
	"precojusto-backend/filter"
	"precojusto-backend/firebase"
	"precojusto-backend/imaging"
	"precojusto-backend/logger"
	"precojusto-backend/notify"
	"precojusto-backend/pricing"
	"precojusto-backend/utils"
)

type ProductHandler struct {
	Store       *catalog.Store
	Lists       *cart.Registry
	History     *database.PriceHistory
	Storage     firebase.StorageClient
	Fetcher     *imaging.Fetcher
	NotifyPhone string
}

// GetProducts lists the catalog. search matches name or brand, category
// narrows to one category, grouped=true returns category sections.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	s := h.Store.Snapshot()
	products := filter.Products(s.Products, c.Query("search"), c.Query("category"))

	if c.Query("grouped") != "true" {
		c.JSON(http.StatusOK, productCards(s, products))
		return
	}

	groups := []dtos.ProductGroup{}
	for _, g := range filter.ByCategory(products) {
		groups = append(groups, dtos.ProductGroup{Category: g.Category, Products: productCards(s, g.Products)})
	}
	c.JSON(http.StatusOK, groups)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	s := h.Store.Snapshot()
	p, ok := s.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, productCard(s, p))
}

// GetProductPrices lines up every branch's price for the product.
func (h *ProductHandler) GetProductPrices(c *gin.Context) {
	s := h.Store.Snapshot()
	id := c.Param("id")
	if _, ok := s.Product(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, pricing.Compare(s, s.Branches, id))
}

func (h *ProductHandler) GetBestPrice(c *gin.Context) {
	s := h.Store.Snapshot()
	id := c.Param("id")
	if _, ok := s.Product(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	best, ok := pricing.BestPrice(s, s.Branches, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No supermarket sells this product yet"})
		return
	}
	branch, _ := s.Branch(best.SupermarketID)
	discount, _ := pricing.Discount(best)
	c.JSON(http.StatusOK, gin.H{
		"price":       best,
		"supermarket": branch,
		"discount":    discount,
	})
}

// GetAlertLink builds the WhatsApp link a shopper opens to ask for price
// drop alerts.
func (h *ProductHandler) GetAlertLink(c *gin.Context) {
	p, ok := h.Store.Snapshot().Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	msg := notify.PriceAlertMessage(p.ProductName)
	c.JSON(http.StatusOK, dtos.LinkResponse{URL: notify.Link(h.NotifyPhone, msg), Message: msg})
}

func (h *ProductHandler) GetPriceHistory(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.Store.Snapshot().Product(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if h.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Price history is not available"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	changes, err := h.History.ForProduct(id, c.Query("supermarketId"), limit)
	if err != nil {
		logger.Error(c, "failed to read price history", err, zap.String("product_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch price history"})
		return
	}
	c.JSON(http.StatusOK, changes)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dtos.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	var uploaded string
	if strings.HasPrefix(imageURL, "data:") {
		img, err := imaging.DecodeDataURL(imageURL)
		if err != nil {
			respondError(c, err)
			return
		}
		imageURL, err = h.storeImage(c, req.Barcode, img)
		if err != nil {
			logger.Error(c, "failed to upload product image", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
			return
		}
		if h.Storage != nil {
			uploaded = imageURL
		}
	}

	p, err := h.Store.AddProduct(catalog.NewProduct{
		ProductName:  req.ProductName,
		Barcode:      req.Barcode,
		Category:     req.Category,
		Brand:        req.Brand,
		ImageURL:     imageURL,
		BranchID:     req.SupermarketID,
		InitialPrice: *req.Price,
	})
	if err != nil {
		h.removeStoredImage(c, uploaded)
		respondError(c, err)
		return
	}

	logger.Info(c, "product created", zap.String("product_id", p.ID), zap.String("supermarket_id", req.SupermarketID))
	c.JSON(http.StatusCreated, productCard(h.Store.Snapshot(), p))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req dtos.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.Store.UpdateProduct(catalogProduct(c.Param("id"), req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productCard(h.Store.Snapshot(), p))
}

// DeleteProduct removes the product, its prices and its place in every
// shopping list.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	p, ok := h.Store.Snapshot().Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		respondError(c, err)
		return
	}
	if h.Lists != nil {
		h.Lists.DropProduct(id)
	}
	h.removeStoredImage(c, p.ImageURL)

	c.JSON(http.StatusOK, dtos.ProductDeletedResponse{Message: "Product deleted", ID: id})
}

// UploadProductImage replaces the product photo. It accepts a multipart
// "image" file, a camera frame as a data URL, or a remote image URL.
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id := c.Param("id")
	current, ok := h.Store.Snapshot().Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	img, err := h.readImage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.storeImage(c, id, img)
	if err != nil {
		logger.Error(c, "failed to upload product image", err, zap.String("product_id", id))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
		return
	}

	p, err := h.Store.SetProductImage(id, url)
	if err != nil {
		h.removeStoredImage(c, url)
		respondError(c, err)
		return
	}
	if current.ImageURL != url {
		h.removeStoredImage(c, current.ImageURL)
	}

	c.JSON(http.StatusOK, productCard(h.Store.Snapshot(), p))
}

func (h *ProductHandler) readImage(c *gin.Context) (imaging.Image, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			return imaging.Image{}, &catalog.ValidationError{Field: "image", Message: "image file is required"}
		}
		return imaging.ReadMultipart(fh)
	}

	var req dtos.ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return imaging.Image{}, &catalog.ValidationError{Field: "image", Message: utils.SanitizeValidationError(err)}
	}
	switch {
	case req.DataURL != "":
		return imaging.DecodeDataURL(req.DataURL)
	case req.ImageURL != "" && h.Fetcher != nil:
		return h.Fetcher.Fetch(c.Request.Context(), req.ImageURL)
	default:
		return imaging.Image{}, &catalog.ValidationError{Field: "image", Message: "dataUrl, imageUrl or an image file is required"}
	}
}

// storeImage uploads img when a bucket is configured and otherwise keeps
// it inline as a data URL.
func (h *ProductHandler) storeImage(ctx context.Context, name string, img imaging.Image) (string, error) {
	if h.Storage == nil {
		return img.DataURL(), nil
	}
	return h.Storage.UploadProductImage(ctx, img.Reader(), name, img.ContentType, img.Extension)
}

// removeStoredImage deletes url from the bucket if it lives there.
func (h *ProductHandler) removeStoredImage(c *gin.Context, url string) {
	if h.Storage == nil || url == "" {
		return
	}
	objectPath, err := utils.ExtractObjectPath(url, h.Storage.Bucket())
	if err != nil {
		return
	}
	if err := h.Storage.DeleteFile(c.Request.Context(), objectPath); err != nil {
		logger.Warn(c, "failed to delete stored image", zap.String("object", objectPath), zap.Error(err))
	}
}
