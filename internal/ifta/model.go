// Package ifta computes fleet fuel-tax liability per jurisdiction following the
// IFTA calculation chain: total miles, total fuel, a single fleet MPG, fuel
// consumed per jurisdiction (miles / MPG), tax due, tax paid at the pump, and
// net tax.
//
// Every function in this package is a pure function of its arguments. Trip
// storage belongs to the caller.
package ifta

// JurisdictionEntry is the slice of one trip driven or fueled in one
// jurisdiction.
type JurisdictionEntry struct {
	State string  `json:"state" yaml:"state"`
	Miles float64 `json:"miles" yaml:"miles"`
	Fuel  float64 `json:"fuel" yaml:"fuel"` // gallons purchased
}

// Trip is a single recorded trip with its per-jurisdiction breakdown.
//
// TotalMiles is expected to equal OdometerEnd-OdometerStart and the sum of the
// breakdown miles. Mismatches are reported as warnings by the validation
// package and are never rejected here.
type Trip struct {
	ID            string              `json:"id" yaml:"id"`
	Date          string              `json:"date" yaml:"date"`
	TruckID       string              `json:"truckId" yaml:"truckId"`
	OdometerStart float64             `json:"odometerStart" yaml:"odometerStart"`
	OdometerEnd   float64             `json:"odometerEnd" yaml:"odometerEnd"`
	TotalMiles    float64             `json:"totalMiles" yaml:"totalMiles"`
	TotalFuel     float64             `json:"totalFuel" yaml:"totalFuel"`
	Breakdown     []JurisdictionEntry `json:"breakdown" yaml:"breakdown"`
}

// Clone returns a copy of the trip that shares no memory with t.
func (t Trip) Clone() Trip {
	clone := t
	if t.Breakdown != nil {
		clone.Breakdown = make([]JurisdictionEntry, len(t.Breakdown))
		copy(clone.Breakdown, t.Breakdown)
	}
	return clone
}

// BreakdownMiles sums the miles of every breakdown entry.
func (t Trip) BreakdownMiles() float64 {
	total := 0.0
	for _, entry := range t.Breakdown {
		total += entry.Miles
	}
	return total
}

// BreakdownFuel sums the fuel of every breakdown entry.
func (t Trip) BreakdownFuel() float64 {
	total := 0.0
	for _, entry := range t.Breakdown {
		total += entry.Fuel
	}
	return total
}

// TaxLiabilityRow is one line of the IFTA worksheet.
type TaxLiabilityRow struct {
	State         string  `json:"state"`
	Miles         float64 `json:"miles"`         // MJ
	FuelPurchased float64 `json:"fuelPurchased"` // FPJ
	FuelConsumed  float64 `json:"fuelConsumed"`  // FJ = MJ / MPG
	TaxRate       float64 `json:"taxRate"`       // JT
	TaxDue        float64 `json:"taxDue"`        // TD = FJ * JT
	TaxPaidAtPump float64 `json:"taxPaidAtPump"` // PP = FPJ * JT
	NetTax        float64 `json:"netTax"`        // TD - PP
}

// Owed reports whether the row is a liability rather than a credit.
func (r TaxLiabilityRow) Owed() bool {
	return r.NetTax > 0
}

// Active reports whether the jurisdiction saw any miles or fuel.
func (r TaxLiabilityRow) Active() bool {
	return r.Miles > 0 || r.FuelPurchased > 0
}

// FleetSummary is the fleet-wide snapshot over every trip.
type FleetSummary struct {
	TotalDistance float64 `json:"totalDistance"`
	TotalFuel     float64 `json:"totalFuel"`
	AverageMpg    float64 `json:"averageMpg"`
	EstimatedTax  float64 `json:"estimatedTax"`
}

// Report pairs the fleet summary with the worksheet rows it was computed from.
type Report struct {
	Summary FleetSummary      `json:"summary"`
	Rows    []TaxLiabilityRow `json:"rows"`
}

// Totals holds the worksheet footer values.
type Totals struct {
	Miles         float64 `json:"miles"`
	FuelPurchased float64 `json:"fuelPurchased"`
	FuelConsumed  float64 `json:"fuelConsumed"`
	TaxDue        float64 `json:"taxDue"`
	TaxPaidAtPump float64 `json:"taxPaidAtPump"`
	NetTax        float64 `json:"netTax"`
}

// Totals computes the worksheet footer. Miles and fuel purchased come from the
// fleet summary and consumed fuel is total distance over fleet MPG (zero when
// no fuel was recorded); the tax columns are summed over the rows.
func (r Report) Totals() Totals {
	totals := Totals{
		Miles:         r.Summary.TotalDistance,
		FuelPurchased: r.Summary.TotalFuel,
		NetTax:        r.Summary.EstimatedTax,
	}
	if r.Summary.TotalFuel > 0 && r.Summary.AverageMpg > 0 {
		totals.FuelConsumed = r.Summary.TotalDistance / r.Summary.AverageMpg
	}
	for _, row := range r.Rows {
		totals.TaxDue += row.TaxDue
		totals.TaxPaidAtPump += row.TaxPaidAtPump
	}
	return totals
}
