package repositories

import (
	"context"

	"pos-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StockEntryRepository struct {
	DB *pgxpool.Pool
}

func NewStockEntryRepository(db *pgxpool.Pool) *StockEntryRepository {
	return &StockEntryRepository{DB: db}
}

// List returns the stock addition trail, newest first
func (r *StockEntryRepository) List(ctx context.Context, limit int) ([]*models.StockEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, product_id, product_name, quantity, note, created_at
         FROM stock_entries ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.StockEntry
	for rows.Next() {
		var entry models.StockEntry
		err := rows.Scan(&entry.ID, &entry.ProductID, &entry.ProductName,
			&entry.Quantity, &entry.Note, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// ListByProduct returns the addition trail for one product, newest first
func (r *StockEntryRepository) ListByProduct(ctx context.Context, productID int) ([]*models.StockEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, product_id, product_name, quantity, note, created_at
         FROM stock_entries WHERE product_id=$1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.StockEntry
	for rows.Next() {
		var entry models.StockEntry
		err := rows.Scan(&entry.ID, &entry.ProductID, &entry.ProductName,
			&entry.Quantity, &entry.Note, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
