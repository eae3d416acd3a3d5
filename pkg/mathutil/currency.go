// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/iwvelando/ifta-report/pkg/constants"
)

// RoundFixed rounds val to the given number of decimal places and returns the
// nearest float64 to the rounded decimal. Rounding is performed on the exact
// binary value of val and ties go away from zero, so RoundFixed(10.03125, 4)
// is 10.0313 rather than the half-even 10.0312.
func RoundFixed(val float64, places int) float64 {
	if places < 0 || val == 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}

	const prec = 512
	scaled := new(big.Float).SetPrec(prec).SetFloat64(math.Abs(val))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled.Mul(scaled, new(big.Float).SetPrec(prec).SetInt(scale))

	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(prec).Sub(scaled, new(big.Float).SetPrec(prec).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		whole.Add(whole, big.NewInt(1))
	}

	digits := whole.String()
	if places > 0 {
		if len(digits) <= places {
			digits = strings.Repeat("0", places-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	}

	rounded, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return val
	}
	return math.Copysign(rounded, val)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// DivisorOrOne returns d, or 1 when d is zero.
func DivisorOrOne(d float64) float64 {
	if d == 0 {
		return 1
	}
	return d
}

// Sum adds values left to right.
func Sum(values ...float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
