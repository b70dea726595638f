package utils

import "testing"

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "NGN 0.00"},
		{"small", 50, "NGN 50.00"},
		{"thousands", 12500, "NGN 12,500.00"},
		{"millions", 1234567.89, "NGN 1,234,567.89"},
		{"kobo rounding", 99.999, "NGN 100.00"},
		{"negative", -2500, "NGN -2,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNaira(tt.amount); got != tt.want {
				t.Errorf("FormatNaira(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
