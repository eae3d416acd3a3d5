package server

import (
	"context"

	"github.com/iwvelando/ifta-report/internal/advisory"
	"github.com/iwvelando/ifta-report/internal/ifta"
)

//go:generate mockgen -source=advisor.go -destination=mocks/mock_advisor.go -package=mocks

// Advisor produces audit-risk insights for a set of trips. Implementations
// must not fail; they return a fallback payload instead.
type Advisor interface {
	Assess(ctx context.Context, trips []ifta.Trip) advisory.Insights
}
