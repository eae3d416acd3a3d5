package config

import (
	"fmt"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"gopkg.in/yaml.v3"
)

// ledgerDocument is the part of the configuration file that holds trips.
type ledgerDocument struct {
	Trips []TripConfig `yaml:"trips"`
}

// FromTrip converts an engine trip back to its ledger form.
func FromTrip(trip ifta.Trip) TripConfig {
	tc := TripConfig{
		ID:            trip.ID,
		Date:          trip.Date,
		TruckID:       trip.TruckID,
		OdometerStart: trip.OdometerStart,
		OdometerEnd:   trip.OdometerEnd,
		TotalMiles:    trip.TotalMiles,
		TotalFuel:     trip.TotalFuel,
		Breakdown:     make([]EntryConfig, 0, len(trip.Breakdown)),
	}
	for _, entry := range trip.Breakdown {
		tc.Breakdown = append(tc.Breakdown, EntryConfig{State: entry.State, Miles: entry.Miles, Fuel: entry.Fuel})
	}
	return tc
}

// ExportLedger renders trips as a YAML trips section that LoadConfiguration
// reads back.
func ExportLedger(trips []ifta.Trip) ([]byte, error) {
	doc := ledgerDocument{Trips: make([]TripConfig, 0, len(trips))}
	for _, trip := range trips {
		doc.Trips = append(doc.Trips, FromTrip(trip))
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trip ledger: %w", err)
	}
	return out, nil
}
