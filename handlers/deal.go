package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"precojusto-backend/catalog"
	"precojusto-backend/filter"
	"precojusto-backend/pricing"
)

type DealHandler struct {
	Store *catalog.Store
}

// GetDeals lists products whose best offer is discounted. The category
// query narrows the list.
func (h *DealHandler) GetDeals(c *gin.Context) {
	s := h.Store.Snapshot()
	products := filter.Products(s.Products, "", c.Query("category"))
	c.JSON(http.StatusOK, pricing.Deals(s, s.Branches, products))
}
