package utils

import (
	"math"
	"strconv"
	"strings"
)

// CoerceDecimal converts an untyped value to a finite float64. Strings are
// accepted with either '.' or ',' as the decimal separator. Returns false
// for non-finite values, empty strings and unsupported types. Never panics.
func CoerceDecimal(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return CoerceDecimal(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		normalized := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		if normalized == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(normalized, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// CoerceInt converts an untyped value to an integer via CoerceDecimal,
// rounding half away from zero so "3.0" and 3 both coerce to 3.
func CoerceInt(value any) (int, bool) {
	dec, ok := CoerceDecimal(value)
	if !ok {
		return 0, false
	}
	rounded := math.Round(dec)
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return 0, false
	}
	return int(rounded), true
}

// RoundCurrency rounds a monetary amount to 2 decimal places,
// half away from zero
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FloorCurrencyUnit floors an amount to an integer currency unit
func FloorCurrencyUnit(amount float64) float64 {
	return math.Floor(amount)
}
