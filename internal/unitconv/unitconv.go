package unitconv

import (
	"math"
	"strconv"
	"strings"
)

// Sale units are frequently fractional (half/third/quarter cartons). Only
// the decimal multiplier is persisted, so the fraction string shown to the
// operator has to be reconstructed from the stored decimal.

const fractionTolerance = 1e-6

// ParseMultiplier converts operator input into a usable multiplier.
// Accepts plain numbers or "num/den" strings. It never fails: empty,
// non-numeric or zero input falls back to 1.
func ParseMultiplier(value string) float64 {
	str := strings.TrimSpace(value)
	if str == "" {
		return 1
	}

	if strings.Contains(str, "/") {
		parts := strings.SplitN(str, "/", 2)
		num, errN := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		den, errD := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errN == nil && errD == nil && den != 0 {
			return num / den
		}
	}

	num, err := strconv.ParseFloat(str, 64)
	if err != nil || !isFinite(num) {
		return 1
	}
	return num
}

// NormalizeMultiplier applies the same fallback to an already-numeric
// multiplier (stored records may carry 0 from older revisions).
func NormalizeMultiplier(value float64) float64 {
	if value == 0 || !isFinite(value) {
		return 1
	}
	return value
}

// ToFraction renders a decimal multiplier as a human fraction string by
// scanning denominators 1..64 for an exact match within tolerance.
// Negative or non-finite input renders "0"; integers render plain;
// mixed numbers render as "whole remainder/den". Falls back to a
// 2-decimal string when no denominator matches.
func ToFraction(decimal float64) string {
	if !isFinite(decimal) {
		return "0"
	}
	if decimal == 0 {
		return "0"
	}
	if decimal < 0 {
		return "0"
	}
	if decimal == math.Trunc(decimal) {
		return strconv.FormatFloat(decimal, 'f', -1, 64)
	}

	for den := 1; den <= 64; den++ {
		num := int(math.Round(decimal * float64(den)))
		if math.Abs(float64(num)/float64(den)-decimal) < fractionTolerance {
			if num == den {
				return "1"
			}
			if num < den {
				return strconv.Itoa(num) + "/" + strconv.Itoa(den)
			}
			whole := num / den
			remainder := num % den
			if remainder == 0 {
				return strconv.Itoa(whole)
			}
			return strconv.Itoa(whole) + " " + strconv.Itoa(remainder) + "/" + strconv.Itoa(den)
		}
	}
	return strconv.FormatFloat(decimal, 'f', 2, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
