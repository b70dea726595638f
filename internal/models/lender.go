package models

import "time"

// Lender is a supplier the business borrows goods from. TotalOwed is a
// cached aggregate over the lender's open borrowing instances, updated in
// the same transaction as the instance it reflects.
type Lender struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	TotalOwed float64   `json:"total_owed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BorrowedProduct is one line of goods received in a borrowing
type BorrowedProduct struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

// ReturnedProduct is one line of goods handed back as repayment
type ReturnedProduct struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
}

const (
	BorrowingOpen   = "open"
	BorrowingClosed = "closed"
)

// BorrowingInstance is one borrowing event against a lender.
// Balance always equals AmountOwed - AmountPaid.
type BorrowingInstance struct {
	ID               int               `json:"id"`
	LenderID         int               `json:"lender_id"`
	BorrowedProducts []BorrowedProduct `json:"borrowed_products"`
	AmountOwed       float64           `json:"amount_owed"`
	AmountPaid       float64           `json:"amount_paid"`
	Balance          float64           `json:"balance"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// CreateLenderRequest represents the request body for creating a lender
type CreateLenderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// BorrowingRequest represents the request body for recording a borrowing
type BorrowingRequest struct {
	LenderID         int               `json:"lender_id"`
	BorrowedProducts []BorrowedProduct `json:"borrowed_products"`
	AmountOwed       float64           `json:"amount_owed"`
}

// RepaymentRequest represents the request body for repaying a lender.
// For method "goods" the amount is derived from ReturnedProducts at
// current catalog prices and the Amount field is ignored.
type RepaymentRequest struct {
	InstanceID       int               `json:"instance_id"`
	Amount           float64           `json:"amount"`
	Method           string            `json:"method"` // cash, transfer or goods
	ReturnedProducts []ReturnedProduct `json:"returned_products,omitempty"`
}

// DebtorPayment is one recorded repayment to a lender
type DebtorPayment struct {
	ID               int               `json:"id"`
	LenderID         int               `json:"lender_id"`
	InstanceID       int               `json:"instance_id"`
	Amount           float64           `json:"amount"`
	Method           string            `json:"method"`
	ReturnedProducts []ReturnedProduct `json:"returned_products,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
