package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"pos-backend/internal/cache"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
	"pos-backend/internal/timeutil"
)

const statementWorkers = 5

type ReportService struct {
	Sales     *repositories.SaleRepository
	Customers *repositories.CustomerRepository
	Products  *repositories.ProductRepository
	Documents *DocumentService
}

func NewReportService(sales *repositories.SaleRepository, customers *repositories.CustomerRepository,
	products *repositories.ProductRepository, documents *DocumentService) *ReportService {
	return &ReportService{
		Sales:     sales,
		Customers: customers,
		Products:  products,
		Documents: documents,
	}
}

// ComputeGrowth returns the percent change between two revenue windows.
// A previous window of zero reads as 100% growth when anything was sold.
func ComputeGrowth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// DashboardStats assembles the dashboard snapshot, served from Redis for
// up to two minutes between mutations
func (s *ReportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.DashboardStatsKey); ok {
		var stats models.DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &models.DashboardStats{}

	var err error
	if stats.TotalRevenue, err = s.Sales.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}

	now := timeutil.Now()
	todayStart := timeutil.StartOfDay(now)
	if stats.TodayRevenue, stats.TodaySalesCount, err = s.Sales.RevenueBetween(ctx, todayStart, now); err != nil {
		return nil, fmt.Errorf("today revenue: %w", err)
	}

	if stats.TotalDebt, err = s.Customers.TotalDebt(ctx); err != nil {
		return nil, fmt.Errorf("total debt: %w", err)
	}
	if stats.LowStockCount, err = s.Products.CountLowStock(ctx, LowStockThreshold); err != nil {
		return nil, fmt.Errorf("low stock count: %w", err)
	}
	if stats.ProductCount, err = s.Products.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("product count: %w", err)
	}
	if stats.CustomerCount, err = s.Customers.Count(ctx); err != nil {
		return nil, fmt.Errorf("customer count: %w", err)
	}

	// 7-day growth: this week against the week before
	weekStart := timeutil.StartOfDay(now.AddDate(0, 0, -6))
	prevWeekStart := timeutil.StartOfDay(now.AddDate(0, 0, -13))
	thisWeek, _, err := s.Sales.RevenueBetween(ctx, weekStart, now)
	if err != nil {
		return nil, fmt.Errorf("week revenue: %w", err)
	}
	prevWeek, _, err := s.Sales.RevenueBetween(ctx, prevWeekStart, weekStart)
	if err != nil {
		return nil, fmt.Errorf("previous week revenue: %w", err)
	}
	stats.RevenueGrowthPct = ComputeGrowth(thisWeek, prevWeek)

	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(ctx, cache.DashboardStatsKey, data, cache.DashboardStatsTTL)
	}
	return stats, nil
}

// DailyReport lists today's sales with their summary
func (s *ReportService) DailyReport(ctx context.Context) ([]*models.Sale, *models.SalesSummary, error) {
	sales, err := s.Sales.List(ctx, models.SaleFilter{Period: "today"})
	if err != nil {
		return nil, nil, err
	}
	return sales, SummarizeSales(sales), nil
}

// InventoryCSVRow renders one product as a CSV record
func InventoryCSVRow(p *models.Product) []string {
	status := "In Stock"
	if p.Stock < LowStockThreshold {
		status = "Low Stock"
	}
	return []string{
		p.Name,
		p.Category,
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		strconv.FormatFloat(p.Stock, 'f', -1, 64),
		status,
	}
}

// BuildInventoryCSV renders the full inventory export
func BuildInventoryCSV(products []*models.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Name", "Category", "Price", "Stock", "Status"}); err != nil {
		return nil, err
	}
	for _, p := range products {
		if err := w.Write(InventoryCSVRow(p)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InventoryCSV exports the active catalog
func (s *ReportService) InventoryCSV(ctx context.Context) ([]byte, error) {
	products, err := s.Products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return BuildInventoryCSV(products)
}

// statementJob carries one customer through the worker pool
type statementJob struct {
	customer *models.Customer
}

type statementResult struct {
	name string
	pdf  []byte
	err  error
}

// BulkStatementsZip generates a statement PDF for every debtor in
// parallel and bundles them into a single zip for the weekly collection
// round.
func (s *ReportService) BulkStatementsZip(ctx context.Context) ([]byte, error) {
	debtors, err := s.Customers.ListDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}

	jobs := make(chan statementJob, len(debtors))
	results := make(chan statementResult, len(debtors))

	var wg sync.WaitGroup
	for i := 0; i < statementWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				pdf, err := s.customerStatement(ctx, job.customer)
				results <- statementResult{
					name: fmt.Sprintf("statement-%d-%s.pdf", job.customer.ID, sanitizeFilename(job.customer.Name)),
					pdf:  pdf,
					err:  err,
				}
			}
		}()
	}

	for _, customer := range debtors {
		jobs <- statementJob{customer: customer}
	}
	close(jobs)

	wg.Wait()
	close(results)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for result := range results {
		if result.err != nil {
			log.Printf("[Reports] statement skipped: %v", result.err)
			continue
		}
		f, err := zw.Create(result.name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", result.name, err)
		}
		if _, err := f.Write(result.pdf); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", result.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) customerStatement(ctx context.Context, customer *models.Customer) ([]byte, error) {
	sales, err := s.Sales.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("sales for customer %d: %w", customer.ID, err)
	}
	payments, err := s.Customers.ListPayments(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("payments for customer %d: %w", customer.ID, err)
	}
	return s.Documents.GenerateStatementPDF(&StatementData{
		Customer: customer,
		Sales:    sales,
		Payments: payments,
	})
}

// sanitizeFilename keeps zip entry names portable
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "customer"
	}
	return string(out)
}
