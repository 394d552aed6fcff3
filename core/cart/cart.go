package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one line of a cart as stored.
type Item struct {
	CartID    string `json:"user_cart" db:"user_cart"`
	ProductID string `json:"prod_id" db:"prod_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

// Line is an item joined with the product it refers to.
type Line struct {
	ProductID string          `json:"id" db:"id"`
	Image     string          `json:"image" db:"image"`
	Name      string          `json:"name" db:"name"`
	Brand     string          `json:"brand" db:"brand"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
}

// Quantity is the product/quantity pair moved by a merge.
type Quantity struct {
	ProductID string `json:"prod_id" db:"prod_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

type ItemNew struct {
	ProdID string `json:"prodId"`
}

// Created is the answer to an add that had to mint a temporary cart.
type Created struct {
	CartNum string `json:"cartNum"`
	Cart    []Item `json:"cart"`
}
