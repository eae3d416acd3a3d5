package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/datetime"
	"github.com/iwvelando/ifta-report/pkg/mathutil"
)

// TripConfig is the subset of a trip the ledger checks look at.
type TripConfig struct {
	ID            string
	Date          string
	OdometerStart float64
	OdometerEnd   float64
	TotalMiles    float64
	Breakdown     []EntryConfig
}

// EntryConfig is one jurisdiction line of a trip.
type EntryConfig struct {
	State string
	Miles float64
}

// TripWarnings returns advisory warnings for a single trip. Mismatched
// mileage is reported, never rejected.
func TripWarnings(trip TripConfig) []string {
	var warnings []string
	label := tripLabel(trip)

	if trip.Date == "" {
		warnings = append(warnings, fmt.Sprintf("%s has no date", label))
	} else if _, err := datetime.ParseDate(trip.Date); err != nil {
		warnings = append(warnings, fmt.Sprintf("%s has an invalid date %q", label, trip.Date))
	}

	if len(trip.Breakdown) == 0 {
		warnings = append(warnings, fmt.Sprintf("%s has no jurisdiction breakdown - its miles and fuel are excluded from every jurisdiction", label))
		return warnings
	}

	return append(warnings, MileageWarnings(trip)...)
}

// MileageWarnings compares odometer miles, recorded total miles, and the sum
// of breakdown miles.
func MileageWarnings(trip TripConfig) []string {
	var warnings []string
	label := tripLabel(trip)

	breakdownMiles := 0.0
	for _, entry := range trip.Breakdown {
		breakdownMiles += entry.Miles
	}

	odometerMiles := mathutil.Max(0, trip.OdometerEnd-trip.OdometerStart)
	if !mathutil.WithinTolerance(odometerMiles, breakdownMiles, constants.MileageTolerance) {
		warnings = append(warnings, fmt.Sprintf("%s: discrepancy between odometer miles (%.2f) and jurisdictional miles (%.2f)",
			label, odometerMiles, breakdownMiles))
	}
	if !mathutil.WithinTolerance(trip.TotalMiles, odometerMiles, constants.MileageTolerance) {
		warnings = append(warnings, fmt.Sprintf("%s: total miles (%.2f) do not match odometer miles (%.2f)",
			label, trip.TotalMiles, odometerMiles))
	}
	return warnings
}

// LedgerValidator validates a whole trip ledger against a rate table.
type LedgerValidator struct {
	Trips []TripConfig
	// RatedCodes is the set of jurisdictions with their own rate.
	RatedCodes map[string]bool
}

// ValidateAll validates every trip and returns warnings.
func (lv *LedgerValidator) ValidateAll() []string {
	var warnings []string
	seenIDs := make(map[string]bool, len(lv.Trips))
	unrated := make(map[string]bool)
	var unratedOrder []string

	for _, trip := range lv.Trips {
		if trip.ID != "" {
			if seenIDs[trip.ID] {
				warnings = append(warnings, fmt.Sprintf("Trip ID '%s' appears more than once", trip.ID))
			}
			seenIDs[trip.ID] = true
		}

		warnings = append(warnings, TripWarnings(trip)...)

		if lv.RatedCodes == nil {
			continue
		}
		for _, entry := range trip.Breakdown {
			code := strings.ToUpper(strings.TrimSpace(entry.State))
			if !lv.RatedCodes[code] && !unrated[code] {
				unrated[code] = true
				unratedOrder = append(unratedOrder, code)
			}
		}
	}

	for _, code := range unratedOrder {
		warnings = append(warnings, fmt.Sprintf("Jurisdiction '%s' has no rate - the %s rate will be used", code, constants.DefaultJurisdiction))
	}
	return warnings
}

func tripLabel(trip TripConfig) string {
	if trip.ID == "" {
		return "Trip"
	}
	return fmt.Sprintf("Trip '%s'", trip.ID)
}
