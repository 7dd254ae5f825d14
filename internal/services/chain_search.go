package services

import (
	"time"

	"route-chain-service/internal/domain"
)

// Chaining-time feasibility constants carried over from the load board:
// deadhead travel is estimated at 50 mph with a 30-minute floor, and window
// feasibility is judged leniently with a multi-day buffer so near-miss
// schedules still surface as options.
const (
	deadheadMPH           = 50.0
	minDeadheadTravel     = 30 * time.Minute
	chainingBuffer        = 5 * 24 * time.Hour
	chainingEarliestSlack = 24 * time.Hour
)

// chainSearch is the state of one depth-first enumeration. It lives for a
// single search invocation: the used set is path-scoped (restored on
// backtrack) and the result slice is bounded by MaxRoutes across the whole
// tree.
type chainSearch struct {
	index          *LoadIndex
	destination    domain.GeoPoint
	interLoadBound float64
	destBound      float64
	maxChainLength int
	maxRoutes      int

	used   map[string]bool
	path   []domain.ChainLeg
	chains []domain.RouteChain
}

// FindChains enumerates every feasible chain from criteria.Origin to
// criteria.Destination over the indexed loads, honoring the bounds in opts.
// Candidate loads are explored in ascending deadhead order at every level, so
// when the MaxRoutes cap cuts the search short, the low-deadhead chains are
// the ones collected. The inter-load deadhead bound equals
// MaxOriginDeadheadMiles, the policy the load board has always used for
// delivery-to-pickup hops.
func FindChains(index *LoadIndex, criteria domain.SearchCriteria, opts domain.SearchOptions) []domain.RouteChain {
	s := &chainSearch{
		index:          index,
		destination:    criteria.Destination,
		interLoadBound: opts.MaxOriginDeadheadMiles,
		destBound:      opts.MaxDestinationDeadheadMiles,
		maxChainLength: opts.MaxChainLength,
		maxRoutes:      opts.MaxRoutes,
		used:           make(map[string]bool),
		chains:         []domain.RouteChain{},
	}

	for _, start := range index.WithinRadius(criteria.Origin, opts.MaxOriginDeadheadMiles) {
		if len(s.chains) >= s.maxRoutes {
			break
		}
		s.extend(start)
	}

	return s.chains
}

// extend rides cand.Load, records the chain if it now ends near the
// destination, then recurses into every chainable unused load. The leg is
// popped and the load released on the way out so it can appear in sibling
// chains.
func (s *chainSearch) extend(cand Candidate) {
	s.used[cand.Load.ID] = true
	s.path = append(s.path, domain.ChainLeg{Load: cand.Load, DeadheadBefore: cand.Deadhead})

	defer func() {
		s.path = s.path[:len(s.path)-1]
		delete(s.used, cand.Load.ID)
	}()

	finalDeadhead := domain.HaversineMiles(cand.Load.Destination, s.destination)
	if finalDeadhead <= s.destBound {
		legs := make([]domain.ChainLeg, len(s.path))
		copy(legs, s.path)
		s.chains = append(s.chains, domain.RouteChain{Legs: legs, FinalDeadhead: finalDeadhead})
	}

	if len(s.path) >= s.maxChainLength {
		return
	}

	for _, next := range s.index.WithinRadius(cand.Load.Destination, s.interLoadBound) {
		if len(s.chains) >= s.maxRoutes {
			return
		}
		if s.used[next.Load.ID] {
			continue
		}
		if !windowsAllowChaining(cand.Load, next.Load, next.Deadhead) {
			continue
		}
		s.extend(next)
	}
}

// windowsAllowChaining checks that prev's delivery window leaves enough time
// to deadhead to next's pickup window. Loads without both windows always
// chain; the geographic bound is the hard constraint, the schedule check is a
// lenient sanity filter.
func windowsAllowChaining(prev, next *domain.Load, deadheadMiles float64) bool {
	if prev.DeliveryWindow == nil || next.PickupWindow == nil {
		return true
	}

	travel := time.Duration(deadheadMiles / deadheadMPH * float64(time.Hour))
	if travel < minDeadheadTravel {
		travel = minDeadheadTravel
	}

	pickupLatest := next.PickupWindow.Latest
	if prev.DeliveryWindow.Latest.Add(travel).After(pickupLatest.Add(chainingBuffer)) {
		return false
	}
	if prev.DeliveryWindow.Earliest.Add(travel).After(pickupLatest.Add(chainingBuffer + chainingEarliestSlack)) {
		return false
	}

	return true
}
