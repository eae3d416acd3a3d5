// Package store holds the in-memory trip ledger that the report is computed
// from.
package store

import (
	"sync"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"go.uber.org/zap"
)

// Store is an append-only collection of trips. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	trips  []ifta.Trip
	logger *zap.Logger
}

// New returns an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Append records a trip. Trips are never edited or removed once stored.
func (s *Store) Append(trip ifta.Trip) {
	s.mu.Lock()
	s.trips = append(s.trips, trip.Clone())
	count := len(s.trips)
	s.mu.Unlock()

	s.logger.Debug("trip appended",
		zap.String("op", "store.Append"),
		zap.String("trip_id", trip.ID),
		zap.String("truck_id", trip.TruckID),
		zap.Int("jurisdictions", len(trip.Breakdown)),
		zap.Int("trip_count", count),
	)
}

// AppendAll records trips in the given order.
func (s *Store) AppendAll(trips []ifta.Trip) {
	for _, trip := range trips {
		s.Append(trip)
	}
}

// Trips returns a snapshot of the stored trips, most recently appended first.
// The snapshot shares no memory with the store.
func (s *Store) Trips() []ifta.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]ifta.Trip, 0, len(s.trips))
	for i := len(s.trips) - 1; i >= 0; i-- {
		snapshot = append(snapshot, s.trips[i].Clone())
	}
	return snapshot
}

// Len returns the number of stored trips.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trips)
}

// Report computes the fleet report over the current snapshot.
func (s *Store) Report(rates ifta.RateTable) ifta.Report {
	return ifta.Compute(s.Trips(), rates)
}
