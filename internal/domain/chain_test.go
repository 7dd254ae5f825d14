package domain

import (
	"math"
	"testing"
)

func TestRouteChainDerivedTotals(t *testing.T) {
	rate := 2.5
	loadA := &Load{ID: "A", DistanceMiles: 300, RevenueAmount: 750, RatePerMile: &rate}
	loadB := &Load{ID: "B", DistanceMiles: 450, RevenueAmount: 900}

	chain := RouteChain{
		Legs: []ChainLeg{
			{Load: loadA, DeadheadBefore: 12},
			{Load: loadB, DeadheadBefore: 30},
		},
		FinalDeadhead: 8,
	}

	if chain.LoadCount() != 2 {
		t.Errorf("LoadCount = %d, want 2", chain.LoadCount())
	}
	if got := chain.TotalDeadheadMiles(); math.Abs(got-50) > 1e-9 {
		t.Errorf("TotalDeadheadMiles = %f, want 50", got)
	}
	if got := chain.TotalDistanceMiles(); math.Abs(got-750) > 1e-9 {
		t.Errorf("TotalDistanceMiles = %f, want 750", got)
	}
	if got := chain.TotalRevenue(); math.Abs(got-1650) > 1e-9 {
		t.Errorf("TotalRevenue = %f, want 1650", got)
	}
	if got := chain.Signature(); got != "A>B" {
		t.Errorf("Signature = %q, want %q", got, "A>B")
	}
}
