package models

const (
	CategoryProduce   = "Hortifruti"
	CategoryGrocery   = "Mercearia"
	CategoryCleaning  = "Limpeza"
	CategoryHygiene   = "Higiene"
	CategoryDairy     = "Laticínios"
	CategoryBakery    = "Padaria"
	CategoryAlcoholic = "Bebidas Alcoólicas"

	// CategoryOther labels products whose category is blank when grouping.
	CategoryOther = "Outros"
	// CategoryAll is the filter sentinel that disables category filtering.
	CategoryAll = "All"
	// DefaultCategory is applied to products registered without a category.
	DefaultCategory = CategoryGrocery
)

// Categories lists the selectable product categories in display order.
var Categories = []string{
	CategoryProduce,
	CategoryGrocery,
	CategoryCleaning,
	CategoryHygiene,
	CategoryDairy,
	CategoryBakery,
	CategoryAlcoholic,
}

func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
