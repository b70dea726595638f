package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pos-backend/internal/cache"
	"pos-backend/internal/metrics"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
)

type LenderService struct {
	Lenders  *repositories.LenderRepository
	Products *repositories.ProductRepository
}

func NewLenderService(lenders *repositories.LenderRepository, products *repositories.ProductRepository) *LenderService {
	return &LenderService{
		Lenders:  lenders,
		Products: products,
	}
}

// NewLenderFromRequest trims the contact fields and rejects a blank name
func NewLenderFromRequest(req *models.CreateLenderRequest) (*models.Lender, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("lender name is required")
	}
	return &models.Lender{
		Name:    name,
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}, nil
}

func (s *LenderService) CreateLender(ctx context.Context, req *models.CreateLenderRequest) (*models.Lender, error) {
	lender, err := NewLenderFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Lenders.Create(ctx, lender); err != nil {
		return nil, err
	}
	return lender, nil
}

func (s *LenderService) GetLender(ctx context.Context, id int) (*models.Lender, error) {
	return s.Lenders.Get(ctx, id)
}

func (s *LenderService) ListLenders(ctx context.Context) ([]*models.Lender, error) {
	return s.Lenders.List(ctx)
}

// RecordBorrowing opens a borrowing instance: the borrowed goods enter
// stock and the lender's total rises, all in one transaction.
func (s *LenderService) RecordBorrowing(ctx context.Context, req *models.BorrowingRequest) (*models.BorrowingInstance, error) {
	if len(req.BorrowedProducts) == 0 {
		return nil, errors.New("borrowing requires at least one product")
	}
	if req.AmountOwed <= 0 {
		return nil, errors.New("amount owed must be positive")
	}
	for _, bp := range req.BorrowedProducts {
		if bp.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: quantity must be positive", bp.Name)
		}
	}

	instance := &models.BorrowingInstance{
		LenderID:         req.LenderID,
		BorrowedProducts: req.BorrowedProducts,
		AmountOwed:       req.AmountOwed,
	}
	if err := s.Lenders.CreateBorrowing(ctx, instance); err != nil {
		return nil, err
	}

	metrics.StockAdjustments.WithLabelValues("borrowing").Inc()
	cache.InvalidateDashboardCaches(ctx)
	return instance, nil
}

func (s *LenderService) ListBorrowings(ctx context.Context, lenderID int) ([]*models.BorrowingInstance, error) {
	return s.Lenders.ListBorrowings(ctx, lenderID)
}

// ValueReturnedGoods prices returned goods at each product's current
// primary price, not the price at borrowing time. The priceFor lookup
// lets tests run without a catalog.
func ValueReturnedGoods(returned []models.ReturnedProduct, priceFor func(productID int) (float64, error)) (float64, error) {
	if len(returned) == 0 {
		return 0, models.ErrNoReturnedProducts
	}

	var total float64
	for _, rp := range returned {
		if rp.Quantity <= 0 {
			return 0, fmt.Errorf("product %s: quantity must be positive", rp.Name)
		}
		price, err := priceFor(rp.ProductID)
		if err != nil {
			return 0, fmt.Errorf("price product %d: %w", rp.ProductID, err)
		}
		total += rp.Quantity * price
	}
	return total, nil
}

// RecordRepayment settles part of a borrowing instance. Cash and
// transfer use the request amount; goods repayments are valued at
// current catalog prices and must not exceed the open balance.
func (s *LenderService) RecordRepayment(ctx context.Context, req *models.RepaymentRequest) (*models.DebtorPayment, error) {
	method := req.Method
	if method == "" {
		method = "cash"
	}

	amount := req.Amount
	var returned []models.ReturnedProduct

	if method == "goods" {
		derived, err := ValueReturnedGoods(req.ReturnedProducts, func(productID int) (float64, error) {
			product, err := s.Products.Get(ctx, productID)
			if err != nil {
				return 0, err
			}
			return product.Price, nil
		})
		if err != nil {
			return nil, err
		}
		amount = derived
		returned = req.ReturnedProducts
	}

	instance, err := s.Lenders.GetBorrowing(ctx, req.InstanceID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 || amount > instance.Balance {
		return nil, models.ErrInvalidPaymentAmount
	}

	payment, err := s.Lenders.RecordRepayment(ctx, req.InstanceID, amount, method, returned)
	if err != nil {
		return nil, err
	}

	if method == "goods" {
		metrics.StockAdjustments.WithLabelValues("repayment").Inc()
	}
	cache.InvalidateDashboardCaches(ctx)
	return payment, nil
}

func (s *LenderService) ListRepayments(ctx context.Context, lenderID int) ([]*models.DebtorPayment, error) {
	return s.Lenders.ListRepayments(ctx, lenderID)
}
