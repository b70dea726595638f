package models

import "time"

// SaleMode is one way a product can be sold (carton, half carton, piece).
// Multiplier is the fraction of the base stock unit one sale consumes.
type SaleMode struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Multiplier float64 `json:"multiplier"`
}

type Product struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Stock     float64    `json:"stock"` // in base units, may be fractional
	SaleModes []SaleMode `json:"sale_modes"`
	Price     float64    `json:"price"` // primary price, mirrors sale_modes[0]
	Deleted   bool       `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SaleModeInput carries a sale mode as entered by the operator; the
// multiplier may be a plain number or a fraction string like "1/2"
type SaleModeInput struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Multiplier string  `json:"multiplier"`
}

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Stock     float64         `json:"stock"`
	SaleModes []SaleModeInput `json:"sale_modes"`
}

// StockAdditionRequest represents the request body for adding stock
type StockAdditionRequest struct {
	ProductID int     `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Note      string  `json:"note"`
}
