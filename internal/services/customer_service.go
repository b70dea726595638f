package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"pos-backend/internal/cache"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
	"pos-backend/internal/storage"
	"pos-backend/internal/timeutil"
)

type CustomerService struct {
	Customers *repositories.CustomerRepository
	Sales     *repositories.SaleRepository
	Documents *DocumentService
	Archive   *storage.InvoiceArchive // optional
}

func NewCustomerService(customers *repositories.CustomerRepository, sales *repositories.SaleRepository,
	documents *DocumentService, archive *storage.InvoiceArchive) *CustomerService {
	return &CustomerService{
		Customers: customers,
		Sales:     sales,
		Documents: documents,
		Archive:   archive,
	}
}

// NewCustomerFromRequest trims the contact fields and rejects a blank name
func NewCustomerFromRequest(req *models.CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("customer name is required")
	}
	return &models.Customer{
		Name:    name,
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
	}, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer, err := NewCustomerFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	cache.InvalidateDashboardCaches(ctx)
	return customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.Customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		customer.Name = name
	}
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.Email = strings.TrimSpace(req.Email)
	customer.Address = strings.TrimSpace(req.Address)

	if err := s.Customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Customers.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Customers.List(ctx)
}

func (s *CustomerService) ListDebtors(ctx context.Context) ([]*models.Customer, error) {
	return s.Customers.ListDebtors(ctx)
}

// RecordPayment validates and applies a debt repayment. The repository
// re-checks the overdraw bound inside its transaction; this pre-check
// exists to reject garbage before touching the database.
func (s *CustomerService) RecordPayment(ctx context.Context, customerID int, req *models.PaymentRequest) (*models.Payment, error) {
	customer, err := s.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := ValidatePaymentAmount(req.Amount, customer.Debt); err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = "cash"
	}

	payment, err := s.Customers.RecordPayment(ctx, customerID, req.Amount, method, strings.TrimSpace(req.Note))
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboardCaches(ctx)
	return payment, nil
}

// ValidatePaymentAmount rejects non-positive amounts and overdrafts
func ValidatePaymentAmount(amount, debt float64) error {
	if amount <= 0 || amount > debt {
		return models.ErrInvalidPaymentAmount
	}
	return nil
}

func (s *CustomerService) PaymentHistory(ctx context.Context, customerID int) ([]*models.Payment, error) {
	return s.Customers.ListPayments(ctx, customerID)
}

func (s *CustomerService) PurchaseHistory(ctx context.Context, customerID int) ([]*models.Sale, error) {
	return s.Sales.ListByCustomer(ctx, customerID)
}

// StatementPDF renders the full statement for one customer
func (s *CustomerService) StatementPDF(ctx context.Context, customerID int) (*models.Customer, []byte, error) {
	customer, err := s.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	sales, err := s.Sales.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.Customers.ListPayments(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := s.Documents.GenerateStatementPDF(&StatementData{
		Customer: customer,
		Sales:    sales,
		Payments: payments,
	})
	if err != nil {
		return nil, nil, err
	}

	if s.Archive != nil {
		if err := s.Archive.StoreStatement(ctx, customer.ID, timeutil.Now(), pdf); err != nil {
			log.Printf("[Customers] statement archive failed for customer %d: %v", customer.ID, err)
		}
	}
	return customer, pdf, nil
}
