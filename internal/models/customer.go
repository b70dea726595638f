package models

import "time"

type Customer struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Address         string     `json:"address"`
	Debt            float64    `json:"debt"` // never negative
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Payment is one debt repayment made by a customer
type Payment struct {
	ID           int       `json:"id"`
	CustomerID   int       `json:"customer_id"`
	Amount       float64   `json:"amount"`
	Method       string    `json:"method"` // cash or transfer
	BalanceAfter float64   `json:"balance_after"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// PaymentRequest represents the request body for recording a customer payment
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
}
