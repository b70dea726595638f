package repositories

import (
	"context"
	"errors"
	"fmt"

	"pos-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, category, stock, sale_modes, price)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Category, p.Stock, p.SaleModes, p.Price,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, category, stock, sale_modes, price, deleted, created_at, updated_at
         FROM products WHERE id=$1`, id)

	var product models.Product
	err := row.Scan(&product.ID, &product.Name, &product.Category, &product.Stock,
		&product.SaleModes, &product.Price, &product.Deleted, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return &product, err
}

// ListActive returns all products that have not been soft-deleted
func (r *ProductRepository) ListActive(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, category, stock, sale_modes, price, deleted, created_at, updated_at
         FROM products WHERE deleted=false ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Search matches name, category or a sale-mode name case-insensitively
func (r *ProductRepository) Search(ctx context.Context, query string) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, category, stock, sale_modes, price, deleted, created_at, updated_at
         FROM products
         WHERE deleted=false AND (name ILIKE '%' || $1 || '%'
            OR category ILIKE '%' || $1 || '%'
            OR EXISTS (
               SELECT 1 FROM jsonb_array_elements(sale_modes) AS mode
               WHERE mode->>'name' ILIKE '%' || $1 || '%'))
         ORDER BY name`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListLowStock returns active products below the given stock threshold
func (r *ProductRepository) ListLowStock(ctx context.Context, threshold float64) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, category, stock, sale_modes, price, deleted, created_at, updated_at
         FROM products WHERE deleted=false AND stock < $1 ORDER BY stock ASC`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, category=$2, stock=$3, sale_modes=$4, price=$5, updated_at=NOW()
         WHERE id=$6`,
		p.Name, p.Category, p.Stock, p.SaleModes, p.Price, p.ID)
	return err
}

// SoftDelete hides a product from listings; past sales keep referencing it
func (r *ProductRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET deleted=true, updated_at=NOW() WHERE id=$1`, id)
	return err
}

// AddStockWithEntry increments product stock and writes the audit entry in
// one transaction, so the trail never disagrees with the stock level.
func (r *ProductRepository) AddStockWithEntry(ctx context.Context, productID int, quantity float64, note string) (*models.StockEntry, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin stock addition: %w", err)
	}
	defer tx.Rollback(ctx)

	var productName string
	err = tx.QueryRow(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = NOW()
         WHERE id = $1 AND deleted = false
         RETURNING name`,
		productID, quantity).Scan(&productName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("increment stock: %w", err)
	}

	entry := &models.StockEntry{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Note:        note,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO stock_entries(product_id, product_name, quantity, note)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		entry.ProductID, entry.ProductName, entry.Quantity, entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert stock entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &models.PartialCommitError{Op: "stock addition", Err: err}
	}
	return entry, nil
}

// CountActive counts products that have not been soft-deleted
func (r *ProductRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE deleted=false`).Scan(&count)
	return count, err
}

// CountLowStock counts active products below the given stock threshold
func (r *ProductRepository) CountLowStock(ctx context.Context, threshold float64) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE deleted=false AND stock < $1`, threshold).Scan(&count)
	return count, err
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.Stock,
			&product.SaleModes, &product.Price, &product.Deleted, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}
