package utils

import "fmt"

// FormatNaira renders an amount with thousands separators, e.g. "NGN 12,500.00".
// The currency sign is spelled out because PDF core fonts lack U+20A6.
func FormatNaira(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	negative := false
	if len(intPart) > 0 && intPart[0] == '-' {
		negative = true
		intPart = intPart[1:]
	}

	var out []byte
	for i, digit := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "NGN " + sign + string(out) + frac
}
