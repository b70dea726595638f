package repositories

import (
	"context"
	"errors"
	"fmt"

	"pos-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, phone, email, address)
         VALUES($1, $2, $3, $4)
         RETURNING id, debt, created_at, updated_at`,
		c.Name, c.Phone, c.Email, c.Address,
	).Scan(&c.ID, &c.Debt, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, phone, email, address, debt, last_payment_date, created_at, updated_at
         FROM customers WHERE id=$1`, id)

	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Email, &customer.Address,
		&customer.Debt, &customer.LastPaymentDate, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return &customer, err
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, phone, email, address, debt, last_payment_date, created_at, updated_at
         FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// ListDebtors returns customers carrying a balance, largest debt first
func (r *CustomerRepository) ListDebtors(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, phone, email, address, debt, last_payment_date, created_at, updated_at
         FROM customers WHERE debt > 0 ORDER BY debt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, phone=$2, email=$3, address=$4, updated_at=NOW()
         WHERE id=$5`,
		c.Name, c.Phone, c.Email, c.Address, c.ID)
	return err
}

// RecordPayment decrements a customer's debt and writes the payment audit
// row in one transaction. The guarded UPDATE rejects overdrafts even if
// the debt moved after the caller's pre-read.
func (r *CustomerRepository) RecordPayment(ctx context.Context, customerID int, amount float64, method, note string) (*models.Payment, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback(ctx)

	var balanceAfter float64
	err = tx.QueryRow(ctx,
		`UPDATE customers
         SET debt = debt - $2, last_payment_date = NOW(), updated_at = NOW()
         WHERE id = $1 AND debt - $2 >= 0
         RETURNING debt`,
		customerID, amount).Scan(&balanceAfter)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the customer is missing or the payment overdraws the debt
		return nil, models.ErrInvalidPaymentAmount
	}
	if err != nil {
		return nil, fmt.Errorf("decrement debt: %w", err)
	}

	payment := &models.Payment{
		CustomerID:   customerID,
		Amount:       amount,
		Method:       method,
		BalanceAfter: balanceAfter,
		Note:         note,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO payments(customer_id, amount, method, balance_after, note)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		payment.CustomerID, payment.Amount, payment.Method, payment.BalanceAfter, payment.Note,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &models.PartialCommitError{Op: "payment", Err: err}
	}
	return payment, nil
}

// ListPayments returns a customer's payment history, newest first
func (r *CustomerRepository) ListPayments(ctx context.Context, customerID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, customer_id, amount, method, balance_after, note, created_at
         FROM payments WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.CustomerID, &payment.Amount,
			&payment.Method, &payment.BalanceAfter, &payment.Note, &payment.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}
	return payments, rows.Err()
}

// TotalDebt sums outstanding debt across all customers
func (r *CustomerRepository) TotalDebt(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(debt), 0) FROM customers`).Scan(&total)
	return total, err
}

// Count counts all customers
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

func scanCustomers(rows pgx.Rows) ([]*models.Customer, error) {
	var customers []*models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Email, &customer.Address,
			&customer.Debt, &customer.LastPaymentDate, &customer.CreatedAt, &customer.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}
