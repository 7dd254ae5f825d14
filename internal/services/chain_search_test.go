package services

import (
	"testing"
	"time"

	"route-chain-service/internal/domain"
)

var (
	boston    = domain.GeoPoint{Lat: 42.3601, Lon: -71.0589, City: "Boston", State: "MA"}
	dallas    = domain.GeoPoint{Lat: 32.7767, Lon: -96.7970, City: "Dallas", State: "TX"}
	nashville = domain.GeoPoint{Lat: 36.1627, Lon: -86.7816, City: "Nashville", State: "TN"}
	denver    = domain.GeoPoint{Lat: 39.7392, Lon: -104.9903, City: "Denver", State: "CO"}
)

// milesNorth shifts a point north by roughly the given number of miles.
func milesNorth(p domain.GeoPoint, miles float64) domain.GeoPoint {
	p.Lat += miles / 69.0
	return p
}

func defaultCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:      boston,
		Destination: dallas,
		Options:     domain.DefaultSearchOptions(),
	}
}

// corridorLoads is the shared multi-hop fixture: one direct load, a two-hop
// chain through Nashville, and a dead-end branch into Denver.
func corridorLoads() []domain.Load {
	return []domain.Load{
		{ID: "X", Origin: milesNorth(boston, 5), Destination: milesNorth(dallas, 5), DistanceMiles: 1550, RevenueAmount: 3200},
		{ID: "A", Origin: milesNorth(boston, 8), Destination: nashville, DistanceMiles: 940, RevenueAmount: 2100},
		{ID: "B", Origin: milesNorth(nashville, 15), Destination: milesNorth(dallas, 10), DistanceMiles: 620, RevenueAmount: 1500},
		{ID: "C", Origin: milesNorth(nashville, 40), Destination: denver, DistanceMiles: 1100, RevenueAmount: 1900},
	}
}

func signatures(chains []domain.RouteChain) []string {
	out := make([]string, 0, len(chains))
	for _, c := range chains {
		out = append(out, c.Signature())
	}
	return out
}

func TestFindChainsSingleDirectLoad(t *testing.T) {
	loads := []domain.Load{
		{ID: "direct", Origin: milesNorth(boston, 5), Destination: milesNorth(dallas, 5), DistanceMiles: 1550, RevenueAmount: 3000},
	}

	chains := FindChains(NewLoadIndex(loads), defaultCriteria(), domain.DefaultSearchOptions())

	if len(chains) != 1 {
		t.Fatalf("expected exactly 1 chain, got %d", len(chains))
	}
	if chains[0].LoadCount() != 1 {
		t.Fatalf("expected chain of length 1, got %d", chains[0].LoadCount())
	}
	if chains[0].Legs[0].DeadheadBefore > 100 {
		t.Errorf("first-leg deadhead %f exceeds origin bound", chains[0].Legs[0].DeadheadBefore)
	}
	if chains[0].FinalDeadhead > 100 {
		t.Errorf("final deadhead %f exceeds destination bound", chains[0].FinalDeadhead)
	}
}

func TestFindChainsCorridorInvariants(t *testing.T) {
	criteria := defaultCriteria()
	opts := criteria.Options

	chains := FindChains(NewLoadIndex(corridorLoads()), criteria, opts)

	if len(chains) != 2 {
		t.Fatalf("expected 2 chains (direct + two-hop), got %d: %v", len(chains), signatures(chains))
	}

	for _, chain := range chains {
		if chain.LoadCount() < 1 || chain.LoadCount() > opts.MaxChainLength {
			t.Errorf("chain %q has %d loads, want 1..%d", chain.Signature(), chain.LoadCount(), opts.MaxChainLength)
		}

		seen := map[string]bool{}
		for i, leg := range chain.Legs {
			if seen[leg.Load.ID] {
				t.Errorf("chain %q repeats load %q", chain.Signature(), leg.Load.ID)
			}
			seen[leg.Load.ID] = true

			if leg.DeadheadBefore < 0 {
				t.Errorf("chain %q leg %d has negative deadhead", chain.Signature(), i)
			}
			if i == 0 && leg.DeadheadBefore > opts.MaxOriginDeadheadMiles {
				t.Errorf("chain %q first-leg deadhead %f exceeds origin bound", chain.Signature(), leg.DeadheadBefore)
			}
			if i > 0 {
				hop := domain.HaversineMiles(chain.Legs[i-1].Load.Destination, leg.Load.Origin)
				if hop > opts.MaxOriginDeadheadMiles {
					t.Errorf("chain %q inter-load hop %d is %f miles, exceeds bound", chain.Signature(), i, hop)
				}
			}
		}

		if chain.FinalDeadhead > opts.MaxDestinationDeadheadMiles {
			t.Errorf("chain %q final deadhead %f exceeds destination bound", chain.Signature(), chain.FinalDeadhead)
		}
	}
}

func TestFindChainsChainLengthBound(t *testing.T) {
	loads := []domain.Load{
		{ID: "A", Origin: milesNorth(boston, 8), Destination: nashville, DistanceMiles: 940, RevenueAmount: 2100},
		{ID: "B", Origin: milesNorth(nashville, 15), Destination: milesNorth(dallas, 10), DistanceMiles: 620, RevenueAmount: 1500},
	}
	criteria := defaultCriteria()

	opts := criteria.Options
	opts.MaxChainLength = 1
	if chains := FindChains(NewLoadIndex(loads), criteria, opts); len(chains) != 0 {
		t.Fatalf("two-hop chain should be absent at maxChainLength=1, got %v", signatures(chains))
	}

	opts.MaxChainLength = 2
	chains := FindChains(NewLoadIndex(loads), criteria, opts)
	if len(chains) != 1 || chains[0].Signature() != "A>B" {
		t.Fatalf("expected [A>B] at maxChainLength=2, got %v", signatures(chains))
	}
}

func TestFindChainsMaxRoutesPrefersLowDeadhead(t *testing.T) {
	// Six direct loads with strictly increasing origin deadhead. Under the
	// cap, the greedy candidate ordering must collect the closest three.
	loads := make([]domain.Load, 0, 6)
	ids := []string{"L1", "L2", "L3", "L4", "L5", "L6"}
	for i, id := range ids {
		loads = append(loads, domain.Load{
			ID:            id,
			Origin:        milesNorth(boston, float64(10*(i+1))),
			Destination:   milesNorth(dallas, 5),
			DistanceMiles: 1500,
			RevenueAmount: 3000,
		})
	}

	criteria := defaultCriteria()
	opts := criteria.Options
	opts.MaxRoutes = 3

	chains := FindChains(NewLoadIndex(loads), criteria, opts)

	if len(chains) != 3 {
		t.Fatalf("expected 3 chains at maxRoutes=3, got %d", len(chains))
	}
	got := signatures(chains)
	want := []string{"L1", "L2", "L3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected lowest-deadhead chains %v, got %v", want, got)
		}
	}
}

func TestFindChainsEmptyLoadSet(t *testing.T) {
	chains := FindChains(NewLoadIndex(nil), defaultCriteria(), domain.DefaultSearchOptions())
	if len(chains) != 0 {
		t.Fatalf("expected empty result for empty load set, got %d chains", len(chains))
	}
}

func TestFindChainsTimeWindowsBlockInfeasibleHop(t *testing.T) {
	// A delivers ten days after B's pickup window closes; even the lenient
	// buffer cannot bridge that, so A>B must not appear.
	ref := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	loads := corridorLoads()
	loads[1].DeliveryWindow = &domain.TimeWindow{Earliest: ref.AddDate(0, 0, 14), Latest: ref.AddDate(0, 0, 15)}
	loads[2].PickupWindow = &domain.TimeWindow{Earliest: ref, Latest: ref.AddDate(0, 0, 1)}

	chains := FindChains(NewLoadIndex(loads), defaultCriteria(), domain.DefaultSearchOptions())

	for _, sig := range signatures(chains) {
		if sig == "A>B" {
			t.Fatal("schedule-infeasible chain A>B was returned")
		}
	}
	// The direct load is unaffected.
	if len(chains) != 1 || chains[0].Signature() != "X" {
		t.Fatalf("expected only the direct chain, got %v", signatures(chains))
	}
}
