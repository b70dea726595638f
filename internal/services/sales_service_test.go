package services

import (
	"errors"
	"testing"

	"pos-backend/internal/models"
)

func intPtr(i int) *int { return &i }

func TestValidateSaleRequest(t *testing.T) {
	items := []models.SaleItem{
		{ProductID: 1, Name: "Canoe Soap", ModeName: "Carton", Multiplier: 1, Quantity: 2, UnitPrice: 9000},
		{ProductID: 2, Name: "Indomie", ModeName: "Half Carton", Multiplier: 0.5, Quantity: 1, UnitPrice: 3500},
	}
	// total = 21500

	tests := []struct {
		name      string
		req       models.SaleRequest
		wantTotal float64
		wantErr   error
	}{
		{
			name:      "cash sale paid in full",
			req:       models.SaleRequest{Items: items, AmountPaid: 21500},
			wantTotal: 21500,
		},
		{
			name:    "empty cart",
			req:     models.SaleRequest{AmountPaid: 100},
			wantErr: models.ErrEmptyCart,
		},
		{
			name:    "credit sale without customer",
			req:     models.SaleRequest{Items: items, AmountPaid: 10000},
			wantErr: models.ErrCreditRequiresCustomer,
		},
		{
			name:      "credit sale with customer",
			req:       models.SaleRequest{Items: items, AmountPaid: 10000, CustomerID: intPtr(7)},
			wantTotal: 21500,
		},
		{
			name:    "overpayment rejected",
			req:     models.SaleRequest{Items: items, AmountPaid: 30000, CustomerID: intPtr(7)},
			wantErr: models.ErrOverpaymentRejected,
		},
		{
			name:      "zero paid with customer is full credit",
			req:       models.SaleRequest{Items: items, AmountPaid: 0, CustomerID: intPtr(7)},
			wantTotal: 21500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ValidateSaleRequest(&tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tt.wantTotal {
				t.Fatalf("total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestSummarizeSales(t *testing.T) {
	sales := []*models.Sale{
		{Total: 1000},
		{Total: 3000},
		{Total: 2000},
	}

	summary := SummarizeSales(sales)
	if summary.Count != 3 || summary.Total != 6000 || summary.Average != 2000 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	empty := SummarizeSales(nil)
	if empty.Count != 0 || empty.Total != 0 || empty.Average != 0 {
		t.Fatalf("unexpected empty summary %+v", empty)
	}
}
