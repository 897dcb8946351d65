package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precojusto-backend/catalog"
	"precojusto-backend/dtos"
	"precojusto-backend/logger"
	"precojusto-backend/notify"
)

// PriceHandler serves the admin price and stock operations.
type PriceHandler struct {
	Store       *catalog.Store
	NotifyPhone string
}

func (h *PriceHandler) SetPrice(c *gin.Context) {
	var req dtos.SetPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.Store.SetPrice(catalog.PriceUpdate{
		ProductID:     c.Param("id"),
		BranchID:      req.SupermarketID,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(c, "price updated",
		zap.String("product_id", rec.ProductID),
		zap.String("supermarket_id", rec.SupermarketID),
		zap.Float64("price", rec.Price),
	)
	c.JSON(http.StatusOK, rec)
}

// AdjustStock adds delta units to the stock of an existing price record.
func (h *PriceHandler) AdjustStock(c *gin.Context) {
	var req dtos.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.Store.AdjustStock(c.Param("id"), req.SupermarketID, *req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// OfferLink prepares the WhatsApp message announcing a branch's price.
func (h *PriceHandler) OfferLink(c *gin.Context) {
	var req dtos.OfferLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	s := h.Store.Snapshot()
	id := c.Param("id")
	p, ok := s.Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	b, ok := s.Branch(req.SupermarketID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supermarket not found"})
		return
	}
	rec, ok := s.PriceFor(id, b.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No price registered at this supermarket"})
		return
	}

	phone := req.Phone
	if phone == "" {
		phone = h.NotifyPhone
	}
	msg := notify.OfferMessage(p.ProductName, rec.Price, b)
	c.JSON(http.StatusOK, dtos.LinkResponse{URL: notify.Link(phone, msg), Message: msg})
}
