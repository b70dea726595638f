package models

import "time"

// StockEntry is one row of the append-only stock addition trail
type StockEntry struct {
	ID          int       `json:"id"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}
