package services

import (
	"errors"
	"testing"

	"pos-backend/internal/models"
)

func testProduct() *models.Product {
	return &models.Product{
		ID:    1,
		Name:  "Canoe Soap",
		Stock: 5,
		SaleModes: []models.SaleMode{
			{Name: "Carton", Price: 9000, Multiplier: 1},
			{Name: "Half Carton", Price: 4600, Multiplier: 0.5},
		},
		Price: 9000,
	}
}

func TestCartAddLine(t *testing.T) {
	p := testProduct()
	cart := NewCart()

	if err := cart.AddLine(p, p.SaleModes[0]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if len(cart.Lines()) != 1 || cart.Lines()[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", cart.Lines())
	}

	// Same mode again bumps quantity instead of adding a line
	if err := cart.AddLine(p, p.SaleModes[0]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if len(cart.Lines()) != 1 || cart.Lines()[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 on single line, got %+v", cart.Lines())
	}

	// Different mode gets its own line
	if err := cart.AddLine(p, p.SaleModes[1]); err != nil {
		t.Fatalf("AddLine half carton: %v", err)
	}
	if len(cart.Lines()) != 2 {
		t.Fatalf("expected two lines, got %d", len(cart.Lines()))
	}
}

func TestCartRejectsOversell(t *testing.T) {
	p := testProduct() // stock 5
	cart := NewCart()

	if err := cart.SetQuantity(p.ID, "Carton", 3); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("SetQuantity on missing line: got %v, want ErrNotFound", err)
	}

	if err := cart.AddLine(p, p.SaleModes[0]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.SetQuantity(p.ID, "Carton", 5); err != nil {
		t.Fatalf("SetQuantity to full stock: %v", err)
	}

	// 6 cartons exceeds stock 5
	if err := cart.SetQuantity(p.ID, "Carton", 6); !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
	// Rejected change leaves the cart untouched
	if cart.Lines()[0].Quantity != 5 {
		t.Fatalf("quantity changed after rejected update: %v", cart.Lines()[0].Quantity)
	}
}

func TestCartCrossLineNetting(t *testing.T) {
	p := testProduct() // stock 5
	cart := NewCart()

	if err := cart.AddLine(p, p.SaleModes[0]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.SetQuantity(p.ID, "Carton", 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	// 4 cartons + 2 half cartons = 5 base units, exactly the stock
	if err := cart.AddLine(p, p.SaleModes[1]); err != nil {
		t.Fatalf("AddLine half carton: %v", err)
	}
	if err := cart.SetQuantity(p.ID, "Half Carton", 2); err != nil {
		t.Fatalf("SetQuantity half carton: %v", err)
	}

	// One more half carton would need 5.5 base units
	if err := cart.SetQuantity(p.ID, "Half Carton", 3); !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}

	// Freeing cartons makes room for the half cartons
	if err := cart.SetQuantity(p.ID, "Carton", 3); err != nil {
		t.Fatalf("SetQuantity cartons down: %v", err)
	}
	if err := cart.SetQuantity(p.ID, "Half Carton", 4); err != nil {
		t.Fatalf("SetQuantity half cartons up: %v", err)
	}
}

func TestCartPriceOverrideAndTotal(t *testing.T) {
	p := testProduct()
	cart := NewCart()

	if err := cart.AddLine(p, p.SaleModes[0]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.SetQuantity(p.ID, "Carton", 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	if err := cart.SetUnitPrice(p.ID, "Carton", 8500); err != nil {
		t.Fatalf("SetUnitPrice: %v", err)
	}
	if got := cart.Total(); got != 17000 {
		t.Fatalf("Total = %v, want 17000", got)
	}

	// Negative price clamps to zero
	if err := cart.SetUnitPrice(p.ID, "Carton", -100); err != nil {
		t.Fatalf("SetUnitPrice negative: %v", err)
	}
	if got := cart.Lines()[0].UnitPrice; got != 0 {
		t.Fatalf("UnitPrice = %v, want 0", got)
	}

	items := cart.Items()
	if len(items) != 1 || items[0].Subtotal != 0 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestCartRemoveAndZeroQuantity(t *testing.T) {
	p := testProduct()
	cart := NewCart()

	if err := cart.AddLine(p, p.SaleModes[0]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := cart.AddLine(p, p.SaleModes[1]); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	// Setting quantity to zero removes the line
	if err := cart.SetQuantity(p.ID, "Carton", 0); err != nil {
		t.Fatalf("SetQuantity zero: %v", err)
	}
	if len(cart.Lines()) != 1 {
		t.Fatalf("expected 1 line after zero quantity, got %d", len(cart.Lines()))
	}

	cart.RemoveLine(p.ID, "Half Carton")
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart")
	}
}

func TestRebuildCart(t *testing.T) {
	productFor := func(id int) (*models.Product, error) {
		if id != 1 {
			return nil, models.ErrNotFound
		}
		return testProduct(), nil // stock 5
	}

	t.Run("merges duplicate lines and keeps the price override", func(t *testing.T) {
		cart, err := RebuildCart([]models.SaleItem{
			{ProductID: 1, ModeName: "Carton", Quantity: 2, UnitPrice: 9000, Multiplier: 1},
			{ProductID: 1, ModeName: "Carton", Quantity: 1, UnitPrice: 8500, Multiplier: 1},
		}, productFor)
		if err != nil {
			t.Fatalf("RebuildCart: %v", err)
		}
		lines := cart.Lines()
		if len(lines) != 1 || lines[0].Quantity != 3 || lines[0].UnitPrice != 8500 {
			t.Fatalf("unexpected lines %+v", lines)
		}
		if got := cart.Total(); got != 25500 {
			t.Fatalf("Total = %v, want 25500", got)
		}
	})

	t.Run("restores the catalog multiplier", func(t *testing.T) {
		cart, err := RebuildCart([]models.SaleItem{
			{ProductID: 1, ModeName: "Half Carton", Quantity: 2, UnitPrice: 4600, Multiplier: 1},
		}, productFor)
		if err != nil {
			t.Fatalf("RebuildCart: %v", err)
		}
		if got := cart.Lines()[0].Multiplier; got != 0.5 {
			t.Fatalf("Multiplier = %v, want 0.5", got)
		}
	})

	t.Run("rejects a single oversold line", func(t *testing.T) {
		_, err := RebuildCart([]models.SaleItem{
			{ProductID: 1, ModeName: "Carton", Quantity: 6, UnitPrice: 9000, Multiplier: 1},
		}, productFor)
		if !errors.Is(err, models.ErrInsufficientStock) {
			t.Fatalf("got %v, want ErrInsufficientStock", err)
		}
	})

	t.Run("nets stock across lines of the same product", func(t *testing.T) {
		_, err := RebuildCart([]models.SaleItem{
			{ProductID: 1, ModeName: "Carton", Quantity: 4, UnitPrice: 9000, Multiplier: 1},
			{ProductID: 1, ModeName: "Half Carton", Quantity: 3, UnitPrice: 4600, Multiplier: 0.5},
		}, productFor)
		if !errors.Is(err, models.ErrInsufficientStock) {
			t.Fatalf("got %v, want ErrInsufficientStock", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := RebuildCart([]models.SaleItem{
			{ProductID: 9, ModeName: "Carton", Quantity: 1, UnitPrice: 9000, Multiplier: 1},
		}, productFor)
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("drops zero-quantity lines", func(t *testing.T) {
		cart, err := RebuildCart([]models.SaleItem{
			{ProductID: 1, ModeName: "Carton", Quantity: 0, UnitPrice: 9000, Multiplier: 1},
		}, productFor)
		if err != nil {
			t.Fatalf("RebuildCart: %v", err)
		}
		if !cart.IsEmpty() {
			t.Fatalf("expected empty cart, got %+v", cart.Lines())
		}
	})
}
