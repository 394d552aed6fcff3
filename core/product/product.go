package product

import "github.com/shopspring/decimal"

// PageSize is the number of products served per catalog page.
const PageSize = 12

type Product struct {
	ID    string          `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Brand string          `json:"brand" db:"brand"`
	Image string          `json:"image" db:"image"`
	Price decimal.Decimal `json:"price" db:"price"`
}

// Detail is a product with its descriptive info and stock.
type Detail struct {
	Product
	Description string `json:"description" db:"description"`
	Material    string `json:"material" db:"material"`
	Color       string `json:"color" db:"color"`
	Available   int    `json:"available" db:"-"`
}

// Offset converts a 1-indexed page number into a row offset. Pages below 1
// are treated as the first page.
func Offset(page int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * PageSize
}

// Pages is the number of pages needed to show total products.
func Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
