package validation

import (
	"strings"
	"testing"
)

func validTrip() TripConfig {
	return TripConfig{
		ID:            "t1",
		Date:          "2026-01-23",
		OdometerStart: 1000,
		OdometerEnd:   1400,
		TotalMiles:    400,
		Breakdown: []EntryConfig{
			{State: "NY", Miles: 250},
			{State: "PA", Miles: 150},
		},
	}
}

func TestTripWarnings(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(*TripConfig)
		expectedCount int
		contains      string
	}{
		{
			name:          "Consistent trip",
			modify:        func(*TripConfig) {},
			expectedCount: 0,
		},
		{
			name:          "Breakdown short of odometer",
			modify:        func(tc *TripConfig) { tc.Breakdown[1].Miles = 100 },
			expectedCount: 1,
			contains:      "discrepancy between odometer miles (400.00) and jurisdictional miles (350.00)",
		},
		{
			name:          "Total miles disagree with odometer",
			modify:        func(tc *TripConfig) { tc.TotalMiles = 390 },
			expectedCount: 1,
			contains:      "total miles (390.00)",
		},
		{
			name:          "Rounding noise is tolerated",
			modify:        func(tc *TripConfig) { tc.Breakdown[0].Miles = 250.001 },
			expectedCount: 0,
		},
		{
			name:          "Missing breakdown",
			modify:        func(tc *TripConfig) { tc.Breakdown = nil },
			expectedCount: 1,
			contains:      "no jurisdiction breakdown",
		},
		{
			name:          "Bad date",
			modify:        func(tc *TripConfig) { tc.Date = "01/23/2026" },
			expectedCount: 1,
			contains:      "invalid date",
		},
		{
			name:          "Missing date",
			modify:        func(tc *TripConfig) { tc.Date = "" },
			expectedCount: 1,
			contains:      "has no date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := validTrip()
			tt.modify(&trip)
			warnings := TripWarnings(trip)
			if len(warnings) != tt.expectedCount {
				t.Fatalf("expected %d warnings, got %d: %v", tt.expectedCount, len(warnings), warnings)
			}
			if tt.contains != "" && !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("warning %q does not contain %q", warnings[0], tt.contains)
			}
		})
	}
}

func TestLedgerValidatorValidateAll(t *testing.T) {
	first := validTrip()
	second := validTrip()
	second.Breakdown = []EntryConfig{{State: "on", Miles: 200}, {State: "QC", Miles: 200}}
	third := validTrip()
	third.ID = "t3"
	third.Breakdown = []EntryConfig{{State: "ON", Miles: 400}}

	validator := LedgerValidator{
		Trips:      []TripConfig{first, second, third},
		RatedCodes: map[string]bool{"NY": true, "PA": true},
	}
	warnings := validator.ValidateAll()

	expected := []string{
		"Trip ID 't1' appears more than once",
		"Jurisdiction 'ON' has no rate - the DEFAULT rate will be used",
		"Jurisdiction 'QC' has no rate - the DEFAULT rate will be used",
	}
	if len(warnings) != len(expected) {
		t.Fatalf("expected %d warnings, got %d: %v", len(expected), len(warnings), warnings)
	}
	for i := range expected {
		if warnings[i] != expected[i] {
			t.Errorf("warning %d = %q, expected %q", i, warnings[i], expected[i])
		}
	}
}

func TestLedgerValidatorWithoutRates(t *testing.T) {
	trip := validTrip()
	trip.Breakdown = []EntryConfig{{State: "ZZ", Miles: 400}}
	validator := LedgerValidator{Trips: []TripConfig{trip}}
	if warnings := validator.ValidateAll(); len(warnings) != 0 {
		t.Errorf("expected no warnings without a rate set, got %v", warnings)
	}
}
