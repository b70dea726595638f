package services

import (
	"errors"
	"testing"

	"pos-backend/internal/models"
)

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		debt    float64
		wantErr bool
	}{
		{"full settlement", 5000, 5000, false},
		{"partial payment", 2000, 5000, false},
		{"zero amount", 0, 5000, true},
		{"negative amount", -100, 5000, true},
		{"overpayment", 5001, 5000, true},
		{"payment against zero debt", 100, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentAmount(tt.amount, tt.debt)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidPaymentAmount) {
					t.Fatalf("got %v, want ErrInvalidPaymentAmount", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewCustomerFromRequest(t *testing.T) {
	customer, err := NewCustomerFromRequest(&models.CreateCustomerRequest{
		Name:    "  Mama Nkechi  ",
		Phone:   " 0803 555 1212 ",
		Email:   " nkechi@example.com ",
		Address: " 4 Bright Street ",
	})
	if err != nil {
		t.Fatalf("NewCustomerFromRequest: %v", err)
	}
	if customer.Name != "Mama Nkechi" || customer.Phone != "0803 555 1212" ||
		customer.Email != "nkechi@example.com" || customer.Address != "4 Bright Street" {
		t.Fatalf("fields not trimmed: %+v", customer)
	}
	if customer.Debt != 0 {
		t.Fatalf("new customer starts with debt %v", customer.Debt)
	}

	if _, err := NewCustomerFromRequest(&models.CreateCustomerRequest{Name: "   "}); err == nil {
		t.Fatal("expected error for blank name")
	}
}
