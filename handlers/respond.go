package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precojusto-backend/catalog"
	"precojusto-backend/dtos"
	"precojusto-backend/imaging"
	"precojusto-backend/logger"
	"precojusto-backend/models"
	"precojusto-backend/pricing"
	"precojusto-backend/utils"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, imaging.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, imaging.ErrFetchFailed):
		logger.Warn(c, "image download failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to download image"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request cancelled"})
	default:
		logger.Error(c, "unhandled error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return false
	}
	return true
}

func productCard(s catalog.State, p models.Product) dtos.ProductCard {
	card := dtos.ProductCard{Product: p}
	if best, ok := pricing.BestPrice(s, s.Branches, p.ID); ok {
		card.BestPrice = &best
		card.Discount, _ = pricing.Discount(best)
	}
	return card
}

func productCards(s catalog.State, products []models.Product) []dtos.ProductCard {
	cards := make([]dtos.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard(s, p))
	}
	return cards
}
