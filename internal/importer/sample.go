package importer

import "github.com/iwvelando/ifta-report/pkg/mathutil"

// DefaultTruckID is the unit number the sample report belongs to.
const DefaultTruckID = "114"

// SampleMileage returns the reconciled mileage-by-state sample report.
func SampleMileage() []MileageRecord {
	return []MileageRecord{
		{State: "AL", Miles: 1311.17},
		{State: "AR", Miles: 451.5},
		{State: "IL", Miles: 660.59},
		{State: "IN", Miles: 760.48},
		{State: "KY", Miles: 1831.96},
		{State: "LA", Miles: 291.82},
		{State: "MD", Miles: 193.55},
		{State: "MI", Miles: 4.9},
		{State: "MO", Miles: 88.24},
		{State: "MS", Miles: 159.15},
		{State: "NY", Miles: 65.09},
		{State: "OH", Miles: 1399.41},
		{State: "PA", Miles: 844.13},
		{State: "TN", Miles: 953.58},
		{State: "VA", Miles: 73.63},
		{State: "WI", Miles: 35.26},
		{State: "WV", Miles: 348.6},
	}
}

// SampleFuel returns diesel purchases aggregated from five weekly fuel card
// statements:
//
//	01/23: AL 118.81, OH 77.75, IL 113.88, MO 38.23, LA 123.58
//	01/30: KY 111.59 + 112.9 + 96.36, AL 131.31
//	02/06: VA 63.85, OH 68.12 + 81.3, KY 89.12, TN 56.59
//	02/13: PA 34.63 + 56.05
//	02/20: OH 109.34, TN 116.6 + 78.08, WI 113.89
//
// The per-state sums are added at run time in statement order so the totals
// carry the same float64 values as a hand-keyed import.
func SampleFuel() []FuelRecord {
	return []FuelRecord{
		{State: "AL", Fuel: mathutil.Sum(118.81, 131.31)},
		{State: "OH", Fuel: mathutil.Sum(77.75, 68.12, 81.3, 109.34)},
		{State: "IL", Fuel: 113.88},
		{State: "MO", Fuel: 38.23},
		{State: "LA", Fuel: 123.58},
		{State: "KY", Fuel: mathutil.Sum(111.59, 112.9, 96.36, 89.12)},
		{State: "VA", Fuel: 63.85},
		{State: "TN", Fuel: mathutil.Sum(56.59, 116.6, 78.08)},
		{State: "PA", Fuel: mathutil.Sum(34.63, 56.05)},
		{State: "WI", Fuel: 113.89},
	}
}
