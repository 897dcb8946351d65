package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"precojusto-backend/cart"
	"precojusto-backend/catalog"
	"precojusto-backend/dtos"
	"precojusto-backend/pricing"
)

// ListHandler serves shopping lists and their per-supermarket totals.
type ListHandler struct {
	Store *catalog.Store
	Lists *cart.Registry
}

func (h *ListHandler) CreateList(c *gin.Context) {
	c.JSON(http.StatusCreated, h.Lists.Create())
}

func (h *ListHandler) GetList(c *gin.Context) {
	list, err := h.Lists.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) AddItem(c *gin.Context) {
	var req dtos.AddListItemRequest
	if !bindJSON(c, &req) {
		return
	}

	p, ok := h.Store.Snapshot().Product(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	list, err := h.Lists.AddItem(c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateQuantity changes an item's quantity by delta, never below one.
func (h *ListHandler) UpdateQuantity(c *gin.Context) {
	var req dtos.UpdateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.Lists.SetQuantity(c.Param("id"), c.Param("productId"), *req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) RemoveItem(c *gin.Context) {
	list, err := h.Lists.RemoveItem(c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTotals prices the list at every supermarket and picks the cheapest.
func (h *ListHandler) GetTotals(c *gin.Context) {
	list, err := h.Lists.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	s := h.Store.Snapshot()
	resp := dtos.ListTotalsResponse{
		ListID: list.ID,
		Totals: pricing.Totals(s, s.Branches, list.Items),
	}
	if best, ok := pricing.CheapestBranch(s, s.Branches, list.Items); ok {
		resp.Cheapest = &best
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListHandler) GetReceipt(c *gin.Context) {
	list, err := h.Lists.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	s := h.Store.Snapshot()
	b, ok := s.Branch(c.Param("supermarketId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supermarket not found"})
		return
	}
	c.JSON(http.StatusOK, pricing.BuildReceipt(s, b, list.Items))
}
