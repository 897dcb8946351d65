package catalog

import (
	"time"

	"precojusto-backend/models"
)

func price(v float64) *float64 { return &v }

func unsplash(photo string) string {
	return "https://images.unsplash.com/photo-" + photo + "?auto=format&fit=crop&q=80&w=300&h=300"
}

// Seed returns the demo catalog the app starts with. Every price record is
// stamped with at.
func Seed(at time.Time) State {
	products := []models.Product{
		{ID: "p1", ProductName: "Arroz Agulhinha Tipo 1 Tio João 5kg", Barcode: "7891234567890", Category: models.CategoryGrocery, Brand: "Tio João", ImageURL: unsplash("1586201375761-83865001e31c")},
		{ID: "p2", ProductName: "Feijão Carioca Camil 1kg", Barcode: "7891234567891", Category: models.CategoryGrocery, Brand: "Camil", ImageURL: unsplash("1551462147-37885acc3c41")},
		{ID: "p3", ProductName: "Leite Integral Itambé 1L", Barcode: "7891234567892", Category: models.CategoryDairy, Brand: "Itambé", ImageURL: unsplash("1550583724-125581fe2f8a")},
		{ID: "p4", ProductName: "Detergente Líquido Ypê Neutro 500ml", Barcode: "7891234567893", Category: models.CategoryCleaning, Brand: "Ypê", ImageURL: unsplash("1584622781564-1d9876a13d00")},
		{ID: "p5", ProductName: "Café Melitta Vácuo 500g", Barcode: "7891234567894", Category: models.CategoryGrocery, Brand: "Melitta", ImageURL: unsplash("1559056199-641a0ac8b55e")},
		{ID: "p6", ProductName: "Pão de Forma Pullman 450g", Barcode: "7891234567895", Category: models.CategoryBakery, Brand: "Pullman", ImageURL: unsplash("1509440159596-0249088772ff")},
		{ID: "p7", ProductName: "Sabonete Dove Original 90g", Barcode: "7891234567896", Category: models.CategoryHygiene, Brand: "Dove", ImageURL: unsplash("1626784213176-f48d80bb81e6")},
		{ID: "p8", ProductName: "Banana Prata kg", Barcode: "7891234567897", Category: models.CategoryProduce, Brand: "Produtor Local", ImageURL: unsplash("1571771894821-ad990261a7ee")},
		{ID: "p9", ProductName: "Tomate Italiano kg", Barcode: "7891234567898", Category: models.CategoryProduce, Brand: "Horta Fresca", ImageURL: unsplash("1592924357228-91a4daadcfea")},
		{ID: "p10", ProductName: "Cerveja Heineken Long Neck 330ml", Barcode: "7891234567900", Category: models.CategoryAlcoholic, Brand: "Heineken", ImageURL: unsplash("1618885472179-5e474019f2a9")},
		{ID: "p11", ProductName: "Vinho Tinto Casillero del Diablo Cabernet 750ml", Barcode: "7891234567901", Category: models.CategoryAlcoholic, Brand: "Concha y Toro", ImageURL: unsplash("1510812431401-41d2bd2722f3")},
	}

	branches := []models.Branch{
		{ID: "s1", Name: "Supermercado Econômico", LogoURL: "https://picsum.photos/seed/market1/100/100"},
		{ID: "s2", Name: "Hipermercado Preço Bom", LogoURL: "https://picsum.photos/seed/market2/100/100"},
	}

	ms := models.Millis(at)
	rec := func(id, productID, branchID string, p float64, original *float64, stock int) models.PriceRecord {
		return models.PriceRecord{
			ID:            id,
			ProductID:     productID,
			SupermarketID: branchID,
			Price:         p,
			OriginalPrice: original,
			Stock:         stock,
			LastUpdated:   ms,
		}
	}
	prices := []models.PriceRecord{
		rec("pr1", "p1", "s1", 24.90, price(29.90), 50),
		rec("pr2", "p1", "s2", 26.50, nil, 20),
		rec("pr3", "p2", "s1", 7.80, nil, 100),
		rec("pr4", "p2", "s2", 5.95, price(8.50), 15),
		rec("pr5", "p3", "s1", 4.50, nil, 60),
		rec("pr6", "p3", "s2", 3.99, price(5.20), 40),
		rec("pr7", "p6", "s1", 6.50, price(9.00), 25),
		rec("pr8", "p8", "s1", 4.90, price(6.50), 80),
		rec("pr9", "p8", "s2", 5.20, nil, 35),
		rec("pr10", "p9", "s1", 8.90, nil, 45),
		rec("pr11", "p9", "s2", 7.45, price(9.90), 12),
		rec("pr12", "p10", "s1", 5.99, nil, 200),
		rec("pr13", "p10", "s2", 5.49, price(6.50), 100),
		rec("pr14", "p11", "s1", 45.90, price(59.90), 30),
	}

	return State{Products: products, Branches: branches, Prices: prices}
}
