package ifta

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/ifta-report/pkg/constants"
)

// DefaultJurisdiction is the rate table key used for any unlisted code.
const DefaultJurisdiction = constants.DefaultJurisdiction

// RateTable maps jurisdiction codes to a diesel tax rate in dollars per
// gallon. It must carry a DefaultJurisdiction entry.
type RateTable map[string]float64

// Rate returns the rate for state, falling back to the DEFAULT rate when the
// code is not listed. Codes are matched case-insensitively.
func (rt RateTable) Rate(state string) float64 {
	if rate, ok := rt[normalizeCode(state)]; ok {
		return rate
	}
	return rt[DefaultJurisdiction]
}

// Has reports whether state has its own rate, ignoring the DEFAULT entry.
func (rt RateTable) Has(state string) bool {
	code := normalizeCode(state)
	if code == DefaultJurisdiction {
		return false
	}
	_, ok := rt[code]
	return ok
}

// Validate checks that the table is usable by the calculator.
func (rt RateTable) Validate() error {
	if _, ok := rt[DefaultJurisdiction]; !ok {
		return fmt.Errorf("rate table is missing the required %s entry", DefaultJurisdiction)
	}
	for _, code := range rt.Codes() {
		if rt[code] < 0 {
			return fmt.Errorf("rate for %s must not be negative, got %v", code, rt[code])
		}
	}
	return nil
}

// Codes returns the table keys in sorted order.
func (rt RateTable) Codes() []string {
	codes := make([]string, 0, len(rt))
	for code := range rt {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Normalize returns a copy of the table with trimmed, upper-cased keys.
// Configuration loaders lower-case map keys, so tables read from config go
// through here before use.
func (rt RateTable) Normalize() RateTable {
	normalized := make(RateTable, len(rt))
	for code, rate := range rt {
		normalized[normalizeCode(code)] = rate
	}
	return normalized
}

// Merge returns a copy of rt with every entry of overrides applied on top.
func (rt RateTable) Merge(overrides RateTable) RateTable {
	merged := make(RateTable, len(rt)+len(overrides))
	for code, rate := range rt {
		merged[code] = rate
	}
	for code, rate := range overrides.Normalize() {
		merged[code] = rate
	}
	return merged
}

// DefaultRates returns the built-in diesel rate table (USD per gallon) used
// when the configuration supplies none.
func DefaultRates() RateTable {
	return RateTable{
		"AL": 0.3100, "AK": 0.0895, "AZ": 0.2600, "AR": 0.2850, "CA": 0.9710,
		"CO": 0.3250, "CT": 0.4920, "DE": 0.2200, "DC": 0.3500, "FL": 0.3790,
		"GA": 0.3730, "HI": 0.1600, "ID": 0.3300, "IL": 0.7470, "IN": 0.6100,
		"IA": 0.3250, "KS": 0.2600, "KY": 0.2670, "LA": 0.2000, "ME": 0.3120,
		"MD": 0.4690, "MA": 0.2400, "MI": 0.5220, "MN": 0.3130, "MS": 0.2000,
		"MO": 0.2950, "MT": 0.2975, "NE": 0.3040, "NV": 0.2700, "NH": 0.2220,
		"NJ": 0.5580, "NM": 0.2100, "NY": 0.4361, "NC": 0.4030, "ND": 0.2300,
		"OH": 0.4700, "OK": 0.2000, "OR": 0.4000, "PA": 0.7410, "RI": 0.3800,
		"SC": 0.2800, "SD": 0.2800, "TN": 0.2700, "TX": 0.2000, "UT": 0.3650,
		"VT": 0.3200, "VA": 0.4370, "WA": 0.5940, "WV": 0.3570, "WI": 0.3290,
		"WY": 0.2400,
		DefaultJurisdiction: 0.2500,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
