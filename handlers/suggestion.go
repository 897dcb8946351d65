package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"precojusto-backend/suggest"
)

type SuggestionHandler struct {
	Suggester suggest.Suggester
}

// GetSuggestions returns related product names for q. Failures upstream
// yield an empty list rather than an error.
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{"query": q, "suggestions": h.Suggester.Suggest(c.Request.Context(), q)})
}
