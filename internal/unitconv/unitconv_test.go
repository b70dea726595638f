package unitconv

import (
	"math"
	"testing"
)

func TestParseMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "2", 2},
		{"plain decimal", "0.5", 0.5},
		{"simple fraction", "1/2", 0.5},
		{"third", "1/3", 1.0 / 3.0},
		{"improper fraction", "3/2", 1.5},
		{"fraction with spaces", " 1 / 4 ", 0.25},
		{"zero denominator falls back", "1/0", 1},
		{"garbage numerator falls back", "a/2", 1},
		{"empty string", "", 1},
		{"whitespace only", "   ", 1},
		{"garbage", "abc", 1},
		{"negative fraction", "-1/2", -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMultiplier(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseMultiplier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeMultiplier(t *testing.T) {
	if got := NormalizeMultiplier(0); got != 1 {
		t.Errorf("NormalizeMultiplier(0) = %v, want 1", got)
	}
	if got := NormalizeMultiplier(math.NaN()); got != 1 {
		t.Errorf("NormalizeMultiplier(NaN) = %v, want 1", got)
	}
	if got := NormalizeMultiplier(0.25); got != 0.25 {
		t.Errorf("NormalizeMultiplier(0.25) = %v, want 0.25", got)
	}
}

func TestToFraction(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"zero", 0, "0"},
		{"negative", -0.5, "0"},
		{"nan", math.NaN(), "0"},
		{"positive infinity", math.Inf(1), "0"},
		{"integer", 3, "3"},
		{"one", 1, "1"},
		{"half", 0.5, "1/2"},
		{"quarter", 0.25, "1/4"},
		{"third", 1.0 / 3.0, "1/3"},
		{"two thirds", 2.0 / 3.0, "2/3"},
		{"mixed number", 1.5, "1 1/2"},
		{"mixed thirds", 7.0 / 3.0, "2 1/3"},
		{"sixty-fourth", 1.0 / 64.0, "1/64"},
		{"no denominator matches", 0.123456789, "0.12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFraction(tt.input); got != tt.want {
				t.Errorf("ToFraction(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Round-tripping a parsed fraction through ToFraction returns the
// canonical form of the same value.
func TestFractionRoundTrip(t *testing.T) {
	inputs := []string{"1/2", "1/3", "2/3", "1/4", "3/4", "1/6", "5/8"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if got := ToFraction(ParseMultiplier(in)); got != in {
				t.Errorf("ToFraction(ParseMultiplier(%q)) = %q", in, got)
			}
		})
	}
}
