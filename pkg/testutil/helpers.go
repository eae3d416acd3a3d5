// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/ifta-report/internal/ifta"
)

// FindRow finds a worksheet row by jurisdiction code.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []ifta.TaxLiabilityRow, state string) *ifta.TaxLiabilityRow {
	for i := range rows {
		if rows[i].State == state {
			return &rows[i]
		}
	}
	return nil
}

// SingleStateTrip returns a consistent trip driven and fueled in one
// jurisdiction.
func SingleStateTrip(id, state string, miles, fuel float64) ifta.Trip {
	return ifta.Trip{
		ID:          id,
		Date:        "2026-01-23",
		TruckID:     "114",
		OdometerEnd: miles,
		TotalMiles:  miles,
		TotalFuel:   fuel,
		Breakdown:   []ifta.JurisdictionEntry{{State: state, Miles: miles, Fuel: fuel}},
	}
}

// RatesFor returns a rate table holding the given rates plus a DEFAULT rate.
func RatesFor(defaultRate float64, rates map[string]float64) ifta.RateTable {
	table := ifta.RateTable{ifta.DefaultJurisdiction: defaultRate}
	for code, rate := range rates {
		table[code] = rate
	}
	return table
}
