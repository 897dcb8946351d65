package handlers

import (
	"precojusto-backend/dtos"
	"precojusto-backend/models"
)

func catalogProduct(id string, req dtos.UpdateProductRequest) models.Product {
	return models.Product{
		ID:          id,
		ProductName: req.ProductName,
		Barcode:     req.Barcode,
		Category:    req.Category,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
	}
}

func catalogBranch(id string, req dtos.BranchRequest) models.Branch {
	return models.Branch{
		ID:           id,
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		Cep:          req.Cep,
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		ParentID:     req.ParentID,
	}
}
