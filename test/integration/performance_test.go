package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/internal/store"
	"go.uber.org/zap"
)

func largeLedger(trips int) []ifta.Trip {
	codes := []string{"TX", "OK", "AR", "TN", "AL", "GA", "FL", "LA", "MS", "NM"}
	ledger := make([]ifta.Trip, 0, trips)
	for i := 0; i < trips; i++ {
		breakdown := make([]ifta.JurisdictionEntry, 0, 3)
		totalMiles, totalFuel := 0.0, 0.0
		for j := 0; j < 3; j++ {
			entry := ifta.JurisdictionEntry{
				State: codes[(i+j)%len(codes)],
				Miles: float64(100 + (i*7+j*13)%400),
				Fuel:  float64((i*3+j*5)%90) + 0.5,
			}
			totalMiles += entry.Miles
			totalFuel += entry.Fuel
			breakdown = append(breakdown, entry)
		}
		ledger = append(ledger, ifta.Trip{
			ID:          fmt.Sprintf("TRIP-%05d", i),
			Date:        "2026-02-01",
			TruckID:     fmt.Sprintf("%d", i%12),
			OdometerEnd: totalMiles,
			TotalMiles:  totalMiles,
			TotalFuel:   totalFuel,
			Breakdown:   breakdown,
		})
	}
	return ledger
}

// TestPerformance makes sure a year of fleet trips computes quickly.
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	trips := largeLedger(20000)
	start := time.Now()
	report := ifta.Compute(trips, ifta.DefaultRates())
	elapsed := time.Since(start)

	if len(report.Rows) != 10 {
		t.Errorf("expected 10 rows, got %d", len(report.Rows))
	}
	if elapsed > 2*time.Second {
		t.Errorf("Compute() took %v for %d trips", elapsed, len(trips))
	}
}

// TestDataConsistency checks that repeated computation is deterministic.
func TestDataConsistency(t *testing.T) {
	trips := largeLedger(500)
	rates := ifta.DefaultRates()

	first := ifta.Compute(trips, rates)
	for i := 0; i < 5; i++ {
		again := ifta.Compute(trips, rates)
		if again.Summary != first.Summary {
			t.Fatalf("run %d: summary changed: %+v vs %+v", i, again.Summary, first.Summary)
		}
		for j := range first.Rows {
			if again.Rows[j] != first.Rows[j] {
				t.Fatalf("run %d: row %d changed", i, j)
			}
		}
	}
}

func TestConcurrentStoreAccess(t *testing.T) {
	ledger := store.New(zap.NewNop())
	trips := largeLedger(200)
	rates := ifta.DefaultRates()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = ledger.Report(rates)
		}
	}()
	for _, trip := range trips {
		ledger.Append(trip)
	}
	<-done

	if ledger.Len() != len(trips) {
		t.Errorf("Len() = %d, expected %d", ledger.Len(), len(trips))
	}
}

func BenchmarkCompute(b *testing.B) {
	trips := largeLedger(1000)
	rates := ifta.DefaultRates()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ifta.Compute(trips, rates)
	}
}

func BenchmarkStoreReport(b *testing.B) {
	ledger := store.New(zap.NewNop())
	ledger.AppendAll(largeLedger(1000))
	rates := ifta.DefaultRates()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ledger.Report(rates)
	}
}
