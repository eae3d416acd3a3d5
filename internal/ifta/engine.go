package ifta

import (
	"sort"

	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/mathutil"
)

// JurisdictionTotals accumulates miles and fuel purchased for one jurisdiction.
type JurisdictionTotals struct {
	Miles         float64
	FuelPurchased float64
}

// Jurisdictions is the folded breakdown of a set of trips.
//
// Order records the sequence in which codes were first seen. It only serves as
// the tie order when rows with equal miles are sorted.
type Jurisdictions struct {
	Totals map[string]JurisdictionTotals
	Order  []string
}

// Len returns the number of jurisdictions seen.
func (j Jurisdictions) Len() int {
	return len(j.Order)
}

// AggregateJurisdictions folds every breakdown entry of every trip into
// per-jurisdiction totals.
func AggregateJurisdictions(trips []Trip) Jurisdictions {
	result := Jurisdictions{Totals: make(map[string]JurisdictionTotals)}
	for _, trip := range trips {
		for _, entry := range trip.Breakdown {
			totals, seen := result.Totals[entry.State]
			if !seen {
				result.Order = append(result.Order, entry.State)
			}
			totals.Miles += entry.Miles
			totals.FuelPurchased += entry.Fuel
			result.Totals[entry.State] = totals
		}
	}
	return result
}

// ReduceFleet computes total distance, total fuel, and the fleet MPG.
//
// The MPG is computed once for the whole fleet and rounded to four decimal
// places; the rounded value is what the liability calculator divides by.
// EstimatedTax is left at zero and filled in by Compute.
func ReduceFleet(trips []Trip) FleetSummary {
	totalDistance := 0.0
	for _, trip := range trips {
		totalDistance += trip.TotalMiles
	}

	totalFuel := 0.0
	for _, trip := range trips {
		totalFuel += trip.TotalFuel
	}

	averageMpg := 0.0
	if totalFuel > 0 {
		averageMpg = totalDistance / totalFuel
	}

	return FleetSummary{
		TotalDistance: totalDistance,
		TotalFuel:     totalFuel,
		AverageMpg:    mathutil.RoundFixed(averageMpg, constants.MpgPrecision),
	}
}

// CalculateLiability turns aggregated jurisdictions into worksheet rows sorted
// by descending miles. A zero MPG divides by one instead.
func CalculateLiability(jurisdictions Jurisdictions, averageMpg float64, rates RateTable) []TaxLiabilityRow {
	mpg := mathutil.DivisorOrOne(averageMpg)

	rows := make([]TaxLiabilityRow, 0, jurisdictions.Len())
	for _, state := range jurisdictions.Order {
		stats := jurisdictions.Totals[state]
		taxRate := rates.Rate(state)

		fuelConsumed := stats.Miles / mpg
		taxDue := fuelConsumed * taxRate
		taxPaidAtPump := stats.FuelPurchased * taxRate
		netTax := taxDue - taxPaidAtPump

		rows = append(rows, TaxLiabilityRow{
			State:         state,
			Miles:         stats.Miles,
			FuelPurchased: stats.FuelPurchased,
			FuelConsumed:  fuelConsumed,
			TaxRate:       taxRate,
			TaxDue:        taxDue,
			TaxPaidAtPump: taxPaidAtPump,
			NetTax:        netTax,
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Miles > rows[b].Miles
	})
	return rows
}

// SumNetTax adds the net tax of every row in row order.
func SumNetTax(rows []TaxLiabilityRow) float64 {
	total := 0.0
	for _, row := range rows {
		total += row.NetTax
	}
	return total
}

// Compute runs the full chain over trips and returns the summary together with
// the rows. EstimatedTax is the sum of the returned rows' net tax.
func Compute(trips []Trip, rates RateTable) Report {
	summary := ReduceFleet(trips)
	rows := CalculateLiability(AggregateJurisdictions(trips), summary.AverageMpg, rates)
	summary.EstimatedTax = SumNetTax(rows)
	return Report{Summary: summary, Rows: rows}
}

// ComputeFleetSummary returns the completed fleet summary for trips.
func ComputeFleetSummary(trips []Trip, rates RateTable) FleetSummary {
	return Compute(trips, rates).Summary
}

// ComputeTaxLiabilityRows returns the worksheet rows for trips.
func ComputeTaxLiabilityRows(trips []Trip, rates RateTable) []TaxLiabilityRow {
	return Compute(trips, rates).Rows
}
