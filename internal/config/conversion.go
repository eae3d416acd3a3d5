package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/mathutil"
	"github.com/iwvelando/ifta-report/pkg/validation"
)

// ToTrip converts a ledger trip to an engine trip. Jurisdiction codes are
// upper-cased. A zero total miles is taken from the odometer and a zero total
// fuel from the breakdown.
func (tc TripConfig) ToTrip() ifta.Trip {
	trip := ifta.Trip{
		ID:            tc.ID,
		Date:          tc.Date,
		TruckID:       tc.TruckID,
		OdometerStart: tc.OdometerStart,
		OdometerEnd:   tc.OdometerEnd,
		TotalMiles:    tc.TotalMiles,
		TotalFuel:     tc.TotalFuel,
		Breakdown:     make([]ifta.JurisdictionEntry, 0, len(tc.Breakdown)),
	}
	for _, entry := range tc.Breakdown {
		trip.Breakdown = append(trip.Breakdown, ifta.JurisdictionEntry{
			State: strings.ToUpper(strings.TrimSpace(entry.State)),
			Miles: entry.Miles,
			Fuel:  entry.Fuel,
		})
	}

	if mathutil.IsZero(trip.TotalMiles) {
		trip.TotalMiles = mathutil.Max(0, trip.OdometerEnd-trip.OdometerStart)
	}
	if mathutil.IsZero(trip.TotalFuel) {
		trip.TotalFuel = trip.BreakdownFuel()
	}
	return trip
}

// LedgerTrips converts every ledger trip in file order. Trips without an ID
// are numbered by position.
func (c *Configuration) LedgerTrips() []ifta.Trip {
	trips := make([]ifta.Trip, 0, len(c.Trips))
	for i, tc := range c.Trips {
		trip := tc.ToTrip()
		if trip.ID == "" {
			trip.ID = fmt.Sprintf("TRIP-%03d", i+1)
		}
		trips = append(trips, trip)
	}
	return trips
}

// ToValidationTrip converts an engine trip to the form the validation
// package checks.
func ToValidationTrip(trip ifta.Trip) validation.TripConfig {
	tc := validation.TripConfig{
		ID:            trip.ID,
		Date:          trip.Date,
		OdometerStart: trip.OdometerStart,
		OdometerEnd:   trip.OdometerEnd,
		TotalMiles:    trip.TotalMiles,
	}
	for _, entry := range trip.Breakdown {
		tc.Breakdown = append(tc.Breakdown, validation.EntryConfig{State: entry.State, Miles: entry.Miles})
	}
	return tc
}

// TripWarnings returns the mileage and date warnings for one trip.
func TripWarnings(trip ifta.Trip) []string {
	return validation.TripWarnings(ToValidationTrip(trip))
}

// LedgerWarnings validates trips against rates and returns warnings.
func LedgerWarnings(trips []ifta.Trip, rates ifta.RateTable) []string {
	validator := validation.LedgerValidator{RatedCodes: make(map[string]bool, len(rates))}
	for _, code := range rates.Codes() {
		if rates.Has(code) {
			validator.RatedCodes[code] = true
		}
	}
	for _, trip := range trips {
		validator.Trips = append(validator.Trips, ToValidationTrip(trip))
	}
	return validator.ValidateAll()
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if c.Rates != nil {
		if _, ok := ifta.RateTable(c.Rates).Normalize()[ifta.DefaultJurisdiction]; !ok {
			warnings = append(warnings, fmt.Sprintf("No %s rate configured - the built-in %s rate will be used", ifta.DefaultJurisdiction, ifta.DefaultJurisdiction))
		}
	}
	if len(c.Trips) == 0 {
		warnings = append(warnings, "No trips configured - the report will be empty unless trips are imported")
	}
	return append(warnings, LedgerWarnings(c.LedgerTrips(), c.RateTable())...)
}
