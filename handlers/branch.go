package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precojusto-backend/catalog"
	"precojusto-backend/dtos"
	"precojusto-backend/logger"
	"precojusto-backend/models"
)

type BranchHandler struct {
	Store *catalog.Store
}

// GetBranches lists supermarkets. roots=true keeps only headquarters.
func (h *BranchHandler) GetBranches(c *gin.Context) {
	branches := h.Store.Snapshot().Branches
	if c.Query("roots") != "true" {
		c.JSON(http.StatusOK, branches)
		return
	}

	roots := []models.Branch{}
	for _, b := range branches {
		if b.IsRoot() {
			roots = append(roots, b)
		}
	}
	c.JSON(http.StatusOK, roots)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	b, ok := h.Store.Snapshot().Branch(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supermarket not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetFamily returns a root branch followed by its children.
func (h *BranchHandler) GetFamily(c *gin.Context) {
	family, err := h.Store.Snapshot().BranchFamily(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, family)
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req dtos.BranchRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Store.AddBranch(catalogBranch("", req))
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(c, "supermarket created", zap.String("supermarket_id", b.ID), zap.String("parent_id", b.ParentID))
	c.JSON(http.StatusCreated, b)
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	var req dtos.BranchRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Store.UpdateBranch(catalogBranch(c.Param("id"), req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
