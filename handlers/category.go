package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"precojusto-backend/catalog"
	"precojusto-backend/models"
)

type CategoryHandler struct {
	Store *catalog.Store
}

// GetCategories returns the selectable categories with how many catalog
// products each one holds.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	counts := make(map[string]int)
	for _, p := range h.Store.Snapshot().Products {
		counts[p.Category]++
	}

	result := make([]gin.H, 0, len(models.Categories))
	for _, name := range models.Categories {
		result = append(result, gin.H{"name": name, "productCount": counts[name]})
	}
	c.JSON(http.StatusOK, result)
}
