package repositories

import (
	"context"
	"errors"
	"fmt"

	"pos-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LenderRepository struct {
	DB *pgxpool.Pool
}

func NewLenderRepository(db *pgxpool.Pool) *LenderRepository {
	return &LenderRepository{DB: db}
}

func (r *LenderRepository) Create(ctx context.Context, l *models.Lender) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO lenders(name, phone, address)
         VALUES($1, $2, $3)
         RETURNING id, total_owed, created_at, updated_at`,
		l.Name, l.Phone, l.Address,
	).Scan(&l.ID, &l.TotalOwed, &l.CreatedAt, &l.UpdatedAt)
}

func (r *LenderRepository) Get(ctx context.Context, id int) (*models.Lender, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, phone, address, total_owed, created_at, updated_at
         FROM lenders WHERE id=$1`, id)

	var lender models.Lender
	err := row.Scan(&lender.ID, &lender.Name, &lender.Phone, &lender.Address, &lender.TotalOwed,
		&lender.CreatedAt, &lender.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return &lender, err
}

func (r *LenderRepository) List(ctx context.Context) ([]*models.Lender, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, phone, address, total_owed, created_at, updated_at
         FROM lenders ORDER BY total_owed DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lenders []*models.Lender
	for rows.Next() {
		var lender models.Lender
		err := rows.Scan(&lender.ID, &lender.Name, &lender.Phone, &lender.Address, &lender.TotalOwed,
			&lender.CreatedAt, &lender.UpdatedAt)
		if err != nil {
			return nil, err
		}
		lenders = append(lenders, &lender)
	}
	return lenders, rows.Err()
}

// CreateBorrowing records a borrowing atomically: the instance row, the
// lender's cached total_owed, and the stock increment for every borrowed
// product all move in one transaction.
func (r *LenderRepository) CreateBorrowing(ctx context.Context, instance *models.BorrowingInstance) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin borrowing: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO borrowing_instances(lender_id, borrowed_products, amount_owed, amount_paid, balance, status)
         VALUES($1, $2, $3, 0, $3, $4)
         RETURNING id, created_at, updated_at`,
		instance.LenderID, instance.BorrowedProducts, instance.AmountOwed, models.BorrowingOpen,
	).Scan(&instance.ID, &instance.CreatedAt, &instance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert borrowing instance: %w", err)
	}
	instance.Balance = instance.AmountOwed
	instance.Status = models.BorrowingOpen

	tag, err := tx.Exec(ctx,
		`UPDATE lenders SET total_owed = total_owed + $2, updated_at = NOW() WHERE id = $1`,
		instance.LenderID, instance.AmountOwed)
	if err != nil {
		return fmt.Errorf("increment lender total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lender %d: %w", instance.LenderID, models.ErrNotFound)
	}

	for _, bp := range instance.BorrowedProducts {
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1`,
			bp.ProductID, bp.Quantity)
		if err != nil {
			return fmt.Errorf("increment stock for product %d: %w", bp.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %d (%s): %w", bp.ProductID, bp.Name, models.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &models.PartialCommitError{Op: "borrowing", Err: err}
	}
	return nil
}

func (r *LenderRepository) GetBorrowing(ctx context.Context, id int) (*models.BorrowingInstance, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, lender_id, borrowed_products, amount_owed, amount_paid, balance, status, created_at, updated_at
         FROM borrowing_instances WHERE id=$1`, id)

	var instance models.BorrowingInstance
	err := row.Scan(&instance.ID, &instance.LenderID, &instance.BorrowedProducts,
		&instance.AmountOwed, &instance.AmountPaid, &instance.Balance, &instance.Status,
		&instance.CreatedAt, &instance.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return &instance, err
}

// ListBorrowings returns a lender's borrowing instances, newest first
func (r *LenderRepository) ListBorrowings(ctx context.Context, lenderID int) ([]*models.BorrowingInstance, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, lender_id, borrowed_products, amount_owed, amount_paid, balance, status, created_at, updated_at
         FROM borrowing_instances WHERE lender_id=$1 ORDER BY created_at DESC`, lenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instances []*models.BorrowingInstance
	for rows.Next() {
		var instance models.BorrowingInstance
		err := rows.Scan(&instance.ID, &instance.LenderID, &instance.BorrowedProducts,
			&instance.AmountOwed, &instance.AmountPaid, &instance.Balance, &instance.Status,
			&instance.CreatedAt, &instance.UpdatedAt)
		if err != nil {
			return nil, err
		}
		instances = append(instances, &instance)
	}
	return instances, rows.Err()
}

// RecordRepayment settles amount against a borrowing instance in one
// transaction. The instance row is locked FOR UPDATE so concurrent
// repayments serialize; the amount is re-checked against the locked
// balance. Goods repayments also decrement stock for the returned lines
// with the usual non-negative guard.
func (r *LenderRepository) RecordRepayment(ctx context.Context, instanceID int, amount float64, method string, returned []models.ReturnedProduct) (*models.DebtorPayment, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin repayment: %w", err)
	}
	defer tx.Rollback(ctx)

	var lenderID int
	var balance float64
	err = tx.QueryRow(ctx,
		`SELECT lender_id, balance FROM borrowing_instances WHERE id=$1 FOR UPDATE`,
		instanceID).Scan(&lenderID, &balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock borrowing instance: %w", err)
	}

	if amount <= 0 || amount > balance {
		return nil, models.ErrInvalidPaymentAmount
	}

	_, err = tx.Exec(ctx,
		`UPDATE borrowing_instances
         SET amount_paid = amount_paid + $2,
             balance = balance - $2,
             status = CASE WHEN balance - $2 <= 0 THEN 'closed' ELSE status END,
             updated_at = NOW()
         WHERE id = $1`,
		instanceID, amount)
	if err != nil {
		return nil, fmt.Errorf("update borrowing instance: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE lenders SET total_owed = total_owed - $2, updated_at = NOW() WHERE id = $1`,
		lenderID, amount)
	if err != nil {
		return nil, fmt.Errorf("decrement lender total: %w", err)
	}

	for _, rp := range returned {
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW()
             WHERE id = $1 AND stock - $2 >= 0`,
			rp.ProductID, rp.Quantity)
		if err != nil {
			return nil, fmt.Errorf("decrement stock for product %d: %w", rp.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("product %d (%s): %w", rp.ProductID, rp.Name, models.ErrInsufficientStock)
		}
	}

	payment := &models.DebtorPayment{
		LenderID:         lenderID,
		InstanceID:       instanceID,
		Amount:           amount,
		Method:           method,
		ReturnedProducts: returned,
	}
	var returnedArg interface{}
	if len(returned) > 0 {
		returnedArg = returned
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO debtor_payments(lender_id, instance_id, amount, method, returned_products)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		payment.LenderID, payment.InstanceID, payment.Amount, payment.Method, returnedArg,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert debtor payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &models.PartialCommitError{Op: "repayment", Err: err}
	}
	return payment, nil
}

// ListRepayments returns repayments made to a lender, newest first
func (r *LenderRepository) ListRepayments(ctx context.Context, lenderID int) ([]*models.DebtorPayment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, lender_id, instance_id, amount, method, returned_products, created_at
         FROM debtor_payments WHERE lender_id=$1 ORDER BY created_at DESC`, lenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.DebtorPayment
	for rows.Next() {
		var payment models.DebtorPayment
		err := rows.Scan(&payment.ID, &payment.LenderID, &payment.InstanceID,
			&payment.Amount, &payment.Method, &payment.ReturnedProducts, &payment.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}
	return payments, rows.Err()
}
