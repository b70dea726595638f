package services

import (
	"errors"
	"testing"

	"pos-backend/internal/models"
)

func TestValueReturnedGoods(t *testing.T) {
	prices := map[int]float64{
		1: 9000, // Canoe Soap carton
		2: 7000, // Indomie carton
	}
	priceFor := func(id int) (float64, error) {
		price, ok := prices[id]
		if !ok {
			return 0, models.ErrNotFound
		}
		return price, nil
	}

	t.Run("values at current prices", func(t *testing.T) {
		returned := []models.ReturnedProduct{
			{ProductID: 1, Name: "Canoe Soap", Quantity: 2},
			{ProductID: 2, Name: "Indomie", Quantity: 1.5},
		}
		got, err := ValueReturnedGoods(returned, priceFor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := 2*9000 + 1.5*7000; got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("empty list rejected", func(t *testing.T) {
		_, err := ValueReturnedGoods(nil, priceFor)
		if !errors.Is(err, models.ErrNoReturnedProducts) {
			t.Fatalf("got %v, want ErrNoReturnedProducts", err)
		}
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		returned := []models.ReturnedProduct{{ProductID: 1, Name: "Canoe Soap", Quantity: 0}}
		if _, err := ValueReturnedGoods(returned, priceFor); err == nil {
			t.Fatal("expected error for zero quantity")
		}
	})

	t.Run("unknown product surfaces lookup error", func(t *testing.T) {
		returned := []models.ReturnedProduct{{ProductID: 99, Name: "Ghost", Quantity: 1}}
		if _, err := ValueReturnedGoods(returned, priceFor); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("got %v, want wrapped ErrNotFound", err)
		}
	})
}

func TestNewLenderFromRequest(t *testing.T) {
	lender, err := NewLenderFromRequest(&models.CreateLenderRequest{
		Name:    " Okafor & Sons ",
		Phone:   " 0701 222 9000 ",
		Address: " 7 Depot Lane, Nkpor ",
	})
	if err != nil {
		t.Fatalf("NewLenderFromRequest: %v", err)
	}
	if lender.Name != "Okafor & Sons" || lender.Phone != "0701 222 9000" ||
		lender.Address != "7 Depot Lane, Nkpor" {
		t.Fatalf("fields not trimmed: %+v", lender)
	}
	if lender.TotalOwed != 0 {
		t.Fatalf("new lender starts owing %v", lender.TotalOwed)
	}

	if _, err := NewLenderFromRequest(&models.CreateLenderRequest{Name: ""}); err == nil {
		t.Fatal("expected error for blank name")
	}
}
