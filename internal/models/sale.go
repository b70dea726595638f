package models

import "time"

// SaleItem is one committed line of a sale. UnitPrice is the price the
// operator actually charged, which may differ from the catalog price.
type SaleItem struct {
	ProductID  int     `json:"product_id"`
	Name       string  `json:"name"`
	ModeName   string  `json:"mode_name"`
	Multiplier float64 `json:"multiplier"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Subtotal   float64 `json:"subtotal"`
}

type Sale struct {
	ID            int        `json:"id"`
	InvoiceID     string     `json:"invoice_id"`
	CustomerID    *int       `json:"customer_id,omitempty"` // nil for walk-in cash sales
	CustomerName  string     `json:"customer_name"`
	Items         []SaleItem `json:"items"`
	Total         float64    `json:"total"`
	AmountPaid    float64    `json:"amount_paid"`
	Balance       float64    `json:"balance"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SaleRequest represents the request body for committing a sale
type SaleRequest struct {
	CustomerID    *int       `json:"customer_id,omitempty"`
	Items         []SaleItem `json:"items"`
	AmountPaid    float64    `json:"amount_paid"`
	PaymentMethod string     `json:"payment_method"`
}

// SaleFilter narrows the sales history listing
type SaleFilter struct {
	Period       string // "today", "week", "month" or ""
	CustomerName string // substring match, case-insensitive
	MinAmount    *float64
	MaxAmount    *float64
	StartDate    *time.Time
	EndDate      *time.Time
}

// SalesSummary aggregates a filtered sales listing
type SalesSummary struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
