// Package format renders report quantities as display strings.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/mathutil"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), constants.CurrencyPrecision)
	if isNegative(amount, constants.CurrencyPrecision) {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Accounting returns a currency string that shows credits in parentheses
// (e.g., "($1,234.56)"), the way net tax is presented on the worksheet.
func Accounting(amount float64) string {
	formatted := formatPositive(math.Abs(amount), constants.CurrencyPrecision)
	if amount < 0 {
		return "($" + formatted + ")"
	}
	return "$" + formatted
}

// Quantity returns miles or gallons with thousands separators and two decimals.
func Quantity(value float64) string {
	sign := ""
	if isNegative(value, constants.CurrencyPrecision) {
		sign = "-"
	}
	return sign + formatPositive(math.Abs(value), constants.CurrencyPrecision)
}

// Fixed returns value with exactly the given number of decimals and no separators.
func Fixed(value float64, places int) string {
	return fmt.Sprintf("%.*f", places, mathutil.RoundFixed(value, places))
}

// Rate returns a per-gallon tax rate such as "$0.3120".
func Rate(rate float64) string {
	return "$" + Fixed(rate, constants.RatePrecision)
}

func isNegative(value float64, places int) bool {
	return mathutil.RoundFixed(value, places) < 0
}

func formatPositive(value float64, places int) string {
	formatted := Fixed(value, places)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decPart == "" {
		return intPart
	}
	return intPart + "." + decPart
}
