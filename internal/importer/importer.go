// Package importer builds trips from structured mileage and fuel records and
// from manual entries. It validates input at the boundary so the engine only
// ever sees well-formed trips.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"github.com/iwvelando/ifta-report/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrMissingTruck is returned when no truck identifier was supplied.
	ErrMissingTruck = errors.New("truck identifier is required")
	// ErrNoRecords is returned when an import carries neither mileage nor fuel.
	ErrNoRecords = errors.New("at least one mileage or fuel record is required")
	// ErrOdometer is returned when a manual trip's odometer does not advance.
	ErrOdometer = errors.New("odometer end must be greater than start")
)

// MileageRecord is one jurisdiction line of a mileage-by-state report.
type MileageRecord struct {
	State string  `json:"state" yaml:"state"`
	Miles float64 `json:"miles" yaml:"miles"`
}

// FuelRecord is one jurisdiction line of a fuel purchase statement, in gallons.
type FuelRecord struct {
	State string  `json:"state" yaml:"state"`
	Fuel  float64 `json:"fuel" yaml:"fuel"`
}

// ManualTrip is a trip as entered by hand, before totals are derived.
type ManualTrip struct {
	Date          string                   `json:"date" yaml:"date"`
	TruckID       string                   `json:"truckId" yaml:"truckId"`
	OdometerStart float64                  `json:"odometerStart" yaml:"odometerStart"`
	OdometerEnd   float64                  `json:"odometerEnd" yaml:"odometerEnd"`
	Breakdown     []ifta.JurisdictionEntry `json:"breakdown" yaml:"breakdown"`
}

// Adapter converts import payloads into trips.
type Adapter struct {
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithClock overrides the time source used for import IDs and default dates.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// WithIDGenerator overrides the ID source used for manual trips.
func WithIDGenerator(newID func() string) Option {
	return func(a *Adapter) {
		a.newID = newID
	}
}

// New returns an Adapter using the wall clock and random UUIDs.
func New(logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildTrip synthesizes exactly one trip from mileage and fuel records.
//
// Totals are the plain sums of the records. The breakdown holds every
// jurisdiction seen, mileage codes first, and takes the first matching record
// for each; a code missing from one side gets zero for that side.
func (a *Adapter) BuildTrip(truckID string, mileage []MileageRecord, fuel []FuelRecord) (ifta.Trip, error) {
	truckID = strings.TrimSpace(truckID)
	if truckID == "" {
		return ifta.Trip{}, ErrMissingTruck
	}
	if len(mileage) == 0 && len(fuel) == 0 {
		return ifta.Trip{}, ErrNoRecords
	}

	mileage, err := normalizeMileage(mileage)
	if err != nil {
		return ifta.Trip{}, err
	}
	fuel, err = normalizeFuel(fuel)
	if err != nil {
		return ifta.Trip{}, err
	}

	totalMiles := 0.0
	for _, m := range mileage {
		totalMiles += m.Miles
	}
	totalFuel := 0.0
	for _, f := range fuel {
		totalFuel += f.Fuel
	}

	milesByState := make(map[string]float64, len(mileage))
	fuelByState := make(map[string]float64, len(fuel))
	var states []string
	for _, m := range mileage {
		if _, seen := milesByState[m.State]; !seen {
			milesByState[m.State] = m.Miles
			states = append(states, m.State)
		}
	}
	for _, f := range fuel {
		if _, seen := fuelByState[f.State]; !seen {
			fuelByState[f.State] = f.Fuel
			if _, driven := milesByState[f.State]; !driven {
				states = append(states, f.State)
			}
		}
	}

	breakdown := make([]ifta.JurisdictionEntry, 0, len(states))
	for _, state := range states {
		breakdown = append(breakdown, ifta.JurisdictionEntry{
			State: state,
			Miles: milesByState[state],
			Fuel:  fuelByState[state],
		})
	}

	now := a.now().UTC()
	trip := ifta.Trip{
		ID:            fmt.Sprintf("%s%d", constants.ImportIDPrefix, now.UnixMilli()),
		Date:          now.Format(constants.DateLayout),
		TruckID:       truckID,
		OdometerStart: 0,
		OdometerEnd:   totalMiles,
		TotalMiles:    totalMiles,
		TotalFuel:     totalFuel,
		Breakdown:     breakdown,
	}

	a.logger.Info("built trip from import",
		zap.String("op", "importer.BuildTrip"),
		zap.String("trip_id", trip.ID),
		zap.String("truck_id", truckID),
		zap.Int("mileage_records", len(mileage)),
		zap.Int("fuel_records", len(fuel)),
		zap.Int("jurisdictions", len(breakdown)),
		zap.Float64("total_miles", totalMiles),
		zap.Float64("total_fuel", totalFuel),
	)
	return trip, nil
}

// BuildManualTrip turns a hand-entered trip into a stored trip. Total miles
// come from the odometer and total fuel from the breakdown; a breakdown that
// disagrees with the odometer is accepted and left for validation warnings.
func (a *Adapter) BuildManualTrip(entry ManualTrip) (ifta.Trip, error) {
	truckID := strings.TrimSpace(entry.TruckID)
	if truckID == "" {
		return ifta.Trip{}, ErrMissingTruck
	}
	if entry.OdometerEnd <= entry.OdometerStart {
		return ifta.Trip{}, fmt.Errorf("%w: start %v, end %v", ErrOdometer, entry.OdometerStart, entry.OdometerEnd)
	}

	date := strings.TrimSpace(entry.Date)
	if date == "" {
		date = a.now().UTC().Format(constants.DateLayout)
	} else if _, err := time.Parse(constants.DateLayout, date); err != nil {
		return ifta.Trip{}, fmt.Errorf("invalid trip date %q: %w", date, err)
	}

	breakdown := make([]ifta.JurisdictionEntry, 0, len(entry.Breakdown))
	for i, item := range entry.Breakdown {
		state := normalizeState(item.State)
		if state == "" {
			return ifta.Trip{}, fmt.Errorf("breakdown entry %d: jurisdiction code is required", i)
		}
		if item.Miles < 0 || item.Fuel < 0 {
			return ifta.Trip{}, fmt.Errorf("breakdown entry %d (%s): miles and fuel must not be negative", i, state)
		}
		breakdown = append(breakdown, ifta.JurisdictionEntry{State: state, Miles: item.Miles, Fuel: item.Fuel})
	}

	totalFuel := 0.0
	for _, item := range breakdown {
		totalFuel += item.Fuel
	}

	trip := ifta.Trip{
		ID:            a.newID(),
		Date:          date,
		TruckID:       truckID,
		OdometerStart: entry.OdometerStart,
		OdometerEnd:   entry.OdometerEnd,
		TotalMiles:    mathutil.Max(0, entry.OdometerEnd-entry.OdometerStart),
		TotalFuel:     totalFuel,
		Breakdown:     breakdown,
	}

	a.logger.Info("built manual trip",
		zap.String("op", "importer.BuildManualTrip"),
		zap.String("trip_id", trip.ID),
		zap.String("truck_id", truckID),
		zap.Int("jurisdictions", len(breakdown)),
	)
	return trip, nil
}

func normalizeMileage(records []MileageRecord) ([]MileageRecord, error) {
	out := make([]MileageRecord, 0, len(records))
	for i, r := range records {
		state := normalizeState(r.State)
		if state == "" {
			return nil, fmt.Errorf("mileage record %d: jurisdiction code is required", i)
		}
		if r.Miles < 0 {
			return nil, fmt.Errorf("mileage record %d (%s): miles must not be negative, got %v", i, state, r.Miles)
		}
		out = append(out, MileageRecord{State: state, Miles: r.Miles})
	}
	return out, nil
}

func normalizeFuel(records []FuelRecord) ([]FuelRecord, error) {
	out := make([]FuelRecord, 0, len(records))
	for i, r := range records {
		state := normalizeState(r.State)
		if state == "" {
			return nil, fmt.Errorf("fuel record %d: jurisdiction code is required", i)
		}
		if r.Fuel < 0 {
			return nil, fmt.Errorf("fuel record %d (%s): fuel must not be negative, got %v", i, state, r.Fuel)
		}
		out = append(out, FuelRecord{State: state, Fuel: r.Fuel})
	}
	return out, nil
}

func normalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}
