package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pos-backend/internal/models"
	"pos-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// Commit writes a sale atomically: the sale row, a guarded stock decrement
// per line, and the customer debt increment for credit sales. Stock bounds
// are enforced by the decrement's WHERE clause, so a line that raced past
// the cart's validation still cannot drive stock negative.
func (r *SaleRepository) Commit(ctx context.Context, sale *models.Sale) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO sales(invoice_id, customer_id, customer_name, items, total, amount_paid, balance, payment_method)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		sale.InvoiceID, sale.CustomerID, sale.CustomerName, sale.Items,
		sale.Total, sale.AmountPaid, sale.Balance, sale.PaymentMethod,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range sale.Items {
		consumed := item.Quantity * item.Multiplier
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW()
             WHERE id = $1 AND stock - $2 >= 0`,
			item.ProductID, consumed)
		if err != nil {
			return fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %d (%s): %w", item.ProductID, item.Name, models.ErrInsufficientStock)
		}
	}

	if sale.Balance > 0 && sale.CustomerID != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE customers SET debt = debt + $2, updated_at = NOW() WHERE id = $1`,
			*sale.CustomerID, sale.Balance)
		if err != nil {
			return fmt.Errorf("increment customer debt: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("customer %d: %w", *sale.CustomerID, models.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &models.PartialCommitError{Op: "sale " + sale.InvoiceID, Err: err}
	}
	return nil
}

func (r *SaleRepository) Get(ctx context.Context, id int) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, invoice_id, customer_id, customer_name, items, total, amount_paid, balance, payment_method, created_at
         FROM sales WHERE id=$1`, id)

	var sale models.Sale
	err := row.Scan(&sale.ID, &sale.InvoiceID, &sale.CustomerID, &sale.CustomerName,
		&sale.Items, &sale.Total, &sale.AmountPaid, &sale.Balance, &sale.PaymentMethod, &sale.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return &sale, err
}

func (r *SaleRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, invoice_id, customer_id, customer_name, items, total, amount_paid, balance, payment_method, created_at
         FROM sales WHERE invoice_id=$1`, invoiceID)

	var sale models.Sale
	err := row.Scan(&sale.ID, &sale.InvoiceID, &sale.CustomerID, &sale.CustomerName,
		&sale.Items, &sale.Total, &sale.AmountPaid, &sale.Balance, &sale.PaymentMethod, &sale.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return &sale, err
}

// List returns sales matching the filter, newest first
func (r *SaleRepository) List(ctx context.Context, filter models.SaleFilter) ([]*models.Sale, error) {
	query := `SELECT id, invoice_id, customer_id, customer_name, items, total, amount_paid, balance, payment_method, created_at
              FROM sales`

	var conditions []string
	var args []interface{}
	argNum := 1

	now := timeutil.Now()
	switch filter.Period {
	case "today":
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argNum))
		args = append(args, timeutil.StartOfDay(now))
		argNum++
	case "week":
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argNum))
		args = append(args, timeutil.StartOfDay(now.AddDate(0, 0, -6)))
		argNum++
	case "month":
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argNum))
		args = append(args, timeutil.StartOfDay(now.AddDate(0, -1, 0)))
		argNum++
	}

	if filter.CustomerName != "" {
		conditions = append(conditions, fmt.Sprintf("customer_name ILIKE '%%' || $%d || '%%'", argNum))
		args = append(args, filter.CustomerName)
		argNum++
	}
	if filter.MinAmount != nil {
		conditions = append(conditions, fmt.Sprintf("total >= $%d", argNum))
		args = append(args, *filter.MinAmount)
		argNum++
	}
	if filter.MaxAmount != nil {
		conditions = append(conditions, fmt.Sprintf("total <= $%d", argNum))
		args = append(args, *filter.MaxAmount)
		argNum++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argNum))
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argNum))
		args = append(args, *filter.EndDate)
		argNum++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

// ListByCustomer returns a customer's purchase history, newest first
func (r *SaleRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, customer_id, customer_name, items, total, amount_paid, balance, payment_method, created_at
         FROM sales WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

// RevenueBetween sums sale totals within [from, to)
func (r *SaleRepository) RevenueBetween(ctx context.Context, from, to time.Time) (float64, int, error) {
	var total float64
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*) FROM sales
         WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&total, &count)
	return total, count, err
}

// TotalRevenue sums all sale totals
func (r *SaleRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM sales`).Scan(&total)
	return total, err
}

func scanSales(rows pgx.Rows) ([]*models.Sale, error) {
	var sales []*models.Sale
	for rows.Next() {
		var sale models.Sale
		err := rows.Scan(&sale.ID, &sale.InvoiceID, &sale.CustomerID, &sale.CustomerName,
			&sale.Items, &sale.Total, &sale.AmountPaid, &sale.Balance, &sale.PaymentMethod, &sale.CreatedAt)
		if err != nil {
			return nil, err
		}
		sales = append(sales, &sale)
	}
	return sales, rows.Err()
}
