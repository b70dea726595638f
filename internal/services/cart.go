package services

import (
	"pos-backend/internal/models"
	"pos-backend/internal/unitconv"
)

// CartLine is one pending line of a sale being composed. Stock is the
// product's available stock snapshotted when the line was added; all
// lines of the same product share it for cross-line netting.
type CartLine struct {
	ProductID  int     `json:"product_id"`
	Name       string  `json:"name"`
	ModeName   string  `json:"mode_name"`
	Multiplier float64 `json:"multiplier"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Stock      float64 `json:"stock"`
}

// Cart composes a sale before commit. Quantity changes are validated
// against the stock snapshot, netting usage across every line of the
// same product; a change that would oversell is rejected and the cart
// left untouched. The database re-checks the same bound at commit.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// stockUsed sums base-unit consumption across all lines of a product,
// excluding the line at skipIdx (-1 to include all)
func (c *Cart) stockUsed(productID, skipIdx int) float64 {
	var used float64
	for i, line := range c.lines {
		if i == skipIdx || line.ProductID != productID {
			continue
		}
		used += line.Quantity * line.Multiplier
	}
	return used
}

func (c *Cart) findLine(productID int, modeName string) int {
	for i, line := range c.lines {
		if line.ProductID == productID && line.ModeName == modeName {
			return i
		}
	}
	return -1
}

// AddLine adds one unit of a product in the given sale mode. If the mode
// is already in the cart its quantity is bumped instead.
func (c *Cart) AddLine(p *models.Product, mode models.SaleMode) error {
	return c.addQuantity(p, mode, 1)
}

func (c *Cart) addQuantity(p *models.Product, mode models.SaleMode, quantity float64) error {
	multiplier := unitconv.NormalizeMultiplier(mode.Multiplier)

	if idx := c.findLine(p.ID, mode.Name); idx >= 0 {
		return c.SetQuantity(p.ID, mode.Name, c.lines[idx].Quantity+quantity)
	}

	if c.stockUsed(p.ID, -1)+quantity*multiplier > p.Stock {
		return models.ErrInsufficientStock
	}

	c.lines = append(c.lines, CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		ModeName:   mode.Name,
		Multiplier: multiplier,
		Quantity:   quantity,
		UnitPrice:  mode.Price,
		Stock:      p.Stock,
	})
	return nil
}

// RebuildCart replays composed sale lines through the cart against fresh
// product rows, so the composing rules (dedupe by product and mode,
// cross-line netting, price overrides) hold regardless of what the client
// sent. Multipliers come from the catalog when the mode still exists
// there; unknown modes fall back to the line's own multiplier. Lines with
// a non-positive quantity are dropped.
func RebuildCart(items []models.SaleItem, productFor func(productID int) (*models.Product, error)) (*Cart, error) {
	cart := NewCart()
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		product, err := productFor(item.ProductID)
		if err != nil {
			return nil, err
		}

		mode := models.SaleMode{
			Name:       item.ModeName,
			Multiplier: unitconv.NormalizeMultiplier(item.Multiplier),
			Price:      item.UnitPrice,
		}
		for _, m := range product.SaleModes {
			if m.Name == item.ModeName {
				mode = m
				break
			}
		}

		if err := cart.addQuantity(product, mode, item.Quantity); err != nil {
			return nil, err
		}
		if err := cart.SetUnitPrice(product.ID, mode.Name, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line.
func (c *Cart) SetQuantity(productID int, modeName string, quantity float64) error {
	idx := c.findLine(productID, modeName)
	if idx < 0 {
		return models.ErrNotFound
	}

	if quantity <= 0 {
		c.RemoveLine(productID, modeName)
		return nil
	}

	line := c.lines[idx]
	if c.stockUsed(productID, idx)+quantity*line.Multiplier > line.Stock {
		return models.ErrInsufficientStock
	}

	c.lines[idx].Quantity = quantity
	return nil
}

// SetUnitPrice overrides a line's price (negotiated discounts). Negative
// prices clamp to zero.
func (c *Cart) SetUnitPrice(productID int, modeName string, price float64) error {
	idx := c.findLine(productID, modeName)
	if idx < 0 {
		return models.ErrNotFound
	}
	if price < 0 {
		price = 0
	}
	c.lines[idx].UnitPrice = price
	return nil
}

func (c *Cart) RemoveLine(productID int, modeName string) {
	idx := c.findLine(productID, modeName)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

func (c *Cart) Lines() []CartLine {
	return c.lines
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total is the sum of quantity * unit price across lines
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Quantity * line.UnitPrice
	}
	return total
}

// Items converts cart lines to committed sale items with subtotals
func (c *Cart) Items() []models.SaleItem {
	items := make([]models.SaleItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, models.SaleItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			ModeName:   line.ModeName,
			Multiplier: line.Multiplier,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Subtotal:   line.Quantity * line.UnitPrice,
		})
	}
	return items
}
