package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"pos-backend/internal/models"
)

func TestComputeGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"flat", 1000, 1000, 0},
		{"doubled", 2000, 1000, 100},
		{"halved", 500, 1000, -50},
		{"from zero with sales", 500, 0, 100},
		{"from zero without sales", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeGrowth(tt.current, tt.previous); got != tt.want {
				t.Errorf("ComputeGrowth(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestInventoryCSVRow(t *testing.T) {
	low := &models.Product{Name: "Canoe Soap", Category: "Soap", Price: 9000, Stock: 9.5}
	row := InventoryCSVRow(low)
	if row[4] != "Low Stock" {
		t.Errorf("stock 9.5 status = %q, want Low Stock", row[4])
	}

	ok := &models.Product{Name: "Indomie", Category: "Food", Price: 7000, Stock: 10}
	row = InventoryCSVRow(ok)
	if row[4] != "In Stock" {
		t.Errorf("stock 10 status = %q, want In Stock", row[4])
	}
	if row[3] != "10" {
		t.Errorf("stock column = %q, want 10", row[3])
	}
}

func TestBuildInventoryCSV(t *testing.T) {
	products := []*models.Product{
		{Name: "Canoe Soap", Category: "Soap", Price: 9000, Stock: 3},
		{Name: "Indomie", Category: "Food", Price: 7000, Stock: 40},
	}

	data, err := BuildInventoryCSV(products)
	if err != nil {
		t.Fatalf("BuildInventoryCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Name" || records[1][4] != "Low Stock" || records[2][4] != "In Stock" {
		t.Fatalf("unexpected csv content: %v", records)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("Mama Nkechi & Sons!"); got != "Mama-Nkechi--Sons" {
		t.Errorf("sanitizeFilename = %q", got)
	}
	if got := sanitizeFilename("///"); got != "customer" {
		t.Errorf("sanitizeFilename empty fallback = %q", got)
	}
}
