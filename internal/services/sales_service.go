package services

import (
	"context"
	"fmt"
	"log"

	"pos-backend/internal/cache"
	"pos-backend/internal/live"
	"pos-backend/internal/metrics"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
	"pos-backend/internal/storage"
	"pos-backend/internal/timeutil"
)

type SalesService struct {
	Sales     *repositories.SaleRepository
	Customers *repositories.CustomerRepository
	Products  *repositories.ProductRepository
	Documents *DocumentService
	Archive   *storage.InvoiceArchive // optional
	Live      *live.Hub               // optional
}

func NewSalesService(sales *repositories.SaleRepository, customers *repositories.CustomerRepository,
	products *repositories.ProductRepository, documents *DocumentService,
	archive *storage.InvoiceArchive, hub *live.Hub) *SalesService {
	return &SalesService{
		Sales:     sales,
		Customers: customers,
		Products:  products,
		Documents: documents,
		Archive:   archive,
		Live:      hub,
	}
}

// ValidateSaleRequest runs the pre-commit checks in a fixed order:
// empty cart, credit needing a saved customer, overpayment. The returned
// total is the server-side recomputation from line quantities and prices.
func ValidateSaleRequest(req *models.SaleRequest) (float64, error) {
	if len(req.Items) == 0 {
		return 0, models.ErrEmptyCart
	}

	var total float64
	for _, item := range req.Items {
		total += item.Quantity * item.UnitPrice
	}

	balance := total - req.AmountPaid
	if balance > 0 && req.CustomerID == nil {
		return 0, models.ErrCreditRequiresCustomer
	}
	if req.AmountPaid > total {
		return 0, models.ErrOverpaymentRejected
	}
	return total, nil
}

// CommitResult carries the committed sale plus any non-fatal warning from
// the post-commit side effects (document generation, archiving).
type CommitResult struct {
	Sale    *models.Sale `json:"sale"`
	Warning string       `json:"warning,omitempty"`
	PDF     []byte       `json:"-"`
}

// CommitSale rebuilds the composed cart against fresh product rows,
// validates, atomically commits the sale, then runs the post-commit side
// effects. Overselling is rejected here before any write; the commit
// transaction re-checks the same bound under its guarded updates.
// Side-effect failures come back as a warning on the result; the sale
// itself stands.
func (s *SalesService) CommitSale(ctx context.Context, req *models.SaleRequest) (*CommitResult, error) {
	cart, err := RebuildCart(req.Items, func(productID int) (*models.Product, error) {
		return s.Products.Get(ctx, productID)
	})
	if err != nil {
		return nil, err
	}

	items := cart.Items()
	total, err := ValidateSaleRequest(&models.SaleRequest{
		CustomerID: req.CustomerID,
		Items:      items,
		AmountPaid: req.AmountPaid,
	})
	if err != nil {
		return nil, err
	}

	customerName := "Cash Customer"
	if req.CustomerID != nil {
		customer, err := s.Customers.Get(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("look up customer %d: %w", *req.CustomerID, err)
		}
		customerName = customer.Name
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	sale := &models.Sale{
		InvoiceID:     fmt.Sprintf("INV-%d", timeutil.Now().UnixMilli()),
		CustomerID:    req.CustomerID,
		CustomerName:  customerName,
		Items:         items,
		Total:         total,
		AmountPaid:    req.AmountPaid,
		Balance:       total - req.AmountPaid,
		PaymentMethod: paymentMethod,
	}

	if err := s.Sales.Commit(ctx, sale); err != nil {
		return nil, err
	}

	metrics.SalesCommitted.Inc()
	metrics.SalesRevenue.Add(sale.Total)
	metrics.StockAdjustments.WithLabelValues("sale").Inc()
	cache.InvalidateDashboardCaches(ctx)

	result := &CommitResult{Sale: sale}

	pdf, err := s.Documents.GenerateInvoicePDF(sale)
	if err != nil {
		log.Printf("[Sales] invoice PDF failed for %s: %v", sale.InvoiceID, err)
		metrics.DocumentFailures.Inc()
		result.Warning = "sale recorded, but invoice PDF generation failed"
	} else {
		result.PDF = pdf
		if s.Archive != nil {
			if err := s.Archive.StoreInvoice(ctx, sale.InvoiceID, sale.CreatedAt, pdf); err != nil {
				log.Printf("[Sales] invoice archive failed for %s: %v", sale.InvoiceID, err)
				result.Warning = "sale recorded, but invoice archiving failed"
			}
		}
	}

	if s.Live != nil {
		s.Live.Broadcast("sale.committed", sale)
	}

	return result, nil
}

func (s *SalesService) GetSale(ctx context.Context, id int) (*models.Sale, error) {
	return s.Sales.Get(ctx, id)
}

// InvoicePDF re-renders the invoice for an existing sale
func (s *SalesService) InvoicePDF(ctx context.Context, id int) (*models.Sale, []byte, error) {
	sale, err := s.Sales.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.Documents.GenerateInvoicePDF(sale)
	if err != nil {
		return nil, nil, err
	}
	return sale, pdf, nil
}

func (s *SalesService) ListSales(ctx context.Context, filter models.SaleFilter) ([]*models.Sale, *models.SalesSummary, error) {
	sales, err := s.Sales.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return sales, SummarizeSales(sales), nil
}

func (s *SalesService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Sale, error) {
	return s.Sales.ListByCustomer(ctx, customerID)
}

// SummarizeSales computes total, count and average over a listing
func SummarizeSales(sales []*models.Sale) *models.SalesSummary {
	summary := &models.SalesSummary{Count: len(sales)}
	for _, sale := range sales {
		summary.Total += sale.Total
	}
	if summary.Count > 0 {
		summary.Average = summary.Total / float64(summary.Count)
	}
	return summary
}
