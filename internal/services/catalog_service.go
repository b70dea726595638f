package services

import (
	"context"
	"errors"
	"strings"

	"pos-backend/internal/cache"
	"pos-backend/internal/metrics"
	"pos-backend/internal/models"
	"pos-backend/internal/repositories"
	"pos-backend/internal/unitconv"
)

// LowStockThreshold marks products needing a restock
const LowStockThreshold = 10

type CatalogService struct {
	Products     *repositories.ProductRepository
	StockEntries *repositories.StockEntryRepository
}

func NewCatalogService(products *repositories.ProductRepository, stockEntries *repositories.StockEntryRepository) *CatalogService {
	return &CatalogService{
		Products:     products,
		StockEntries: stockEntries,
	}
}

// NormalizeProduct turns an operator-entered product request into a
// storable product: names trimmed, multipliers parsed (fractions allowed),
// primary price mirrored from the first sale mode.
func NormalizeProduct(req *models.ProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("product name is required")
	}
	if len(req.SaleModes) == 0 {
		return nil, errors.New("at least one sale mode is required")
	}

	modes := make([]models.SaleMode, 0, len(req.SaleModes))
	for _, in := range req.SaleModes {
		modeName := strings.TrimSpace(in.Name)
		if modeName == "" {
			return nil, errors.New("sale mode name is required")
		}
		modes = append(modes, models.SaleMode{
			Name:       modeName,
			Price:      in.Price,
			Multiplier: unitconv.ParseMultiplier(in.Multiplier),
		})
	}

	return &models.Product{
		Name:      name,
		Category:  strings.TrimSpace(req.Category),
		Stock:     req.Stock,
		SaleModes: modes,
		Price:     modes[0].Price,
	}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	product, err := NormalizeProduct(req)
	if err != nil {
		return nil, err
	}
	if err := s.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	cache.InvalidateDashboardCaches(ctx)
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req *models.ProductRequest) (*models.Product, error) {
	existing, err := s.Products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := NormalizeProduct(req)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	if err := s.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	cache.InvalidateDashboardCaches(ctx)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Products.SoftDelete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboardCaches(ctx)
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Products.Get(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.Products.ListActive(ctx)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Products.ListActive(ctx)
	}
	return s.Products.Search(ctx, query)
}

func (s *CatalogService) ListLowStock(ctx context.Context) ([]*models.Product, error) {
	return s.Products.ListLowStock(ctx, LowStockThreshold)
}

// AddStock records a stock addition. The quantity must be positive;
// corrections go through product update, not negative additions.
func (s *CatalogService) AddStock(ctx context.Context, req *models.StockAdditionRequest) (*models.StockEntry, error) {
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	entry, err := s.Products.AddStockWithEntry(ctx, req.ProductID, req.Quantity, strings.TrimSpace(req.Note))
	if err != nil {
		return nil, err
	}
	metrics.StockAdjustments.WithLabelValues("addition").Inc()
	cache.InvalidateDashboardCaches(ctx)
	return entry, nil
}

func (s *CatalogService) StockHistory(ctx context.Context, limit int) ([]*models.StockEntry, error) {
	return s.StockEntries.List(ctx, limit)
}

func (s *CatalogService) StockHistoryForProduct(ctx context.Context, productID int) ([]*models.StockEntry, error) {
	return s.StockEntries.ListByProduct(ctx, productID)
}

// PriceListEntry is one row of the printable price list, with the
// multiplier rendered back to a fraction for the counter staff
type PriceListEntry struct {
	Product  string  `json:"product"`
	Category string  `json:"category"`
	Mode     string  `json:"mode"`
	Fraction string  `json:"fraction"`
	Price    float64 `json:"price"`
}

// PriceList flattens the active catalog into per-mode price rows
func (s *CatalogService) PriceList(ctx context.Context) ([]PriceListEntry, error) {
	products, err := s.Products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var entries []PriceListEntry
	for _, p := range products {
		for _, mode := range p.SaleModes {
			entries = append(entries, PriceListEntry{
				Product:  p.Name,
				Category: p.Category,
				Mode:     mode.Name,
				Fraction: unitconv.ToFraction(unitconv.NormalizeMultiplier(mode.Multiplier)),
				Price:    mode.Price,
			})
		}
	}
	return entries, nil
}
