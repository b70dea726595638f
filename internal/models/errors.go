package models

import (
	"errors"
	"fmt"
)

// Validation errors surfaced before any write; callers map these to 4xx.
var (
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrCreditRequiresCustomer = errors.New("credit sale requires a saved customer")
	ErrOverpaymentRejected    = errors.New("amount paid exceeds sale total")
	ErrInvalidPaymentAmount   = errors.New("invalid payment amount")
	ErrNoReturnedProducts     = errors.New("goods repayment requires returned products")
	ErrNotFound               = errors.New("not found")
)

// PartialCommitError marks a failure from COMMIT itself, where the
// transaction's writes may or may not have been applied. Handlers must
// not report the operation as cleanly failed.
type PartialCommitError struct {
	Op  string
	Err error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%s: commit outcome unknown, writes may have partially applied: %v", e.Op, e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
