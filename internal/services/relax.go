package services

import "route-chain-service/internal/domain"

// Default relaxation policy. Both bounds widen in lockstep by the multiplier
// each round until a chain is found, the round limit is hit, or the absolute
// ceiling caps further widening.
const (
	DefaultRelaxMultiplier   = 1.5
	DefaultRelaxMaxRounds    = 3
	DefaultRelaxCeilingMiles = 500.0
)

// RelaxationPolicy controls how deadhead bounds widen when a search comes
// back empty. All knobs are explicit; zero values mean "no relaxation".
type RelaxationPolicy struct {
	Multiplier   float64
	MaxRounds    int
	CeilingMiles float64
	// Lockstep widens both bounds every round. When false, only the origin
	// bound widens on odd rounds and only the destination bound on even
	// rounds, probing each side independently.
	Lockstep bool
}

// DefaultRelaxationPolicy returns the documented defaults.
func DefaultRelaxationPolicy() RelaxationPolicy {
	return RelaxationPolicy{
		Multiplier:   DefaultRelaxMultiplier,
		MaxRounds:    DefaultRelaxMaxRounds,
		CeilingMiles: DefaultRelaxCeilingMiles,
		Lockstep:     true,
	}
}

// The deadhead bounds a result was actually produced under, surfaced so
// callers can tell a relaxed answer from one at the requested bounds.
type BoundsUsed struct {
	OriginMiles      float64
	DestinationMiles float64
}

// SearchWithRelaxation runs FindChains at the requested bounds and, while the
// result is empty, retries at widened bounds per the policy. Each retry
// re-runs the full search; the search holds no state to resume from. An empty
// slice after the final round is a well-formed "no feasible chain" answer,
// not an error.
func SearchWithRelaxation(
	index *LoadIndex,
	criteria domain.SearchCriteria,
	policy RelaxationPolicy,
) ([]domain.RouteChain, BoundsUsed, bool) {
	opts := criteria.Options

	chains := FindChains(index, criteria, opts)
	used := BoundsUsed{
		OriginMiles:      opts.MaxOriginDeadheadMiles,
		DestinationMiles: opts.MaxDestinationDeadheadMiles,
	}
	if len(chains) > 0 || policy.MaxRounds <= 0 || policy.Multiplier <= 1 {
		return chains, used, false
	}

	relaxed := false
	for round := 1; round <= policy.MaxRounds && len(chains) == 0; round++ {
		widenOrigin := policy.Lockstep || round%2 == 1
		widenDest := policy.Lockstep || round%2 == 0

		prev := used
		if widenOrigin {
			used.OriginMiles = widen(used.OriginMiles, policy)
		}
		if widenDest {
			used.DestinationMiles = widen(used.DestinationMiles, policy)
		}
		if used == prev {
			break
		}
		relaxed = true

		opts.MaxOriginDeadheadMiles = used.OriginMiles
		opts.MaxDestinationDeadheadMiles = used.DestinationMiles
		chains = FindChains(index, criteria, opts)
	}

	return chains, used, relaxed
}

func widen(miles float64, policy RelaxationPolicy) float64 {
	next := miles * policy.Multiplier
	if policy.CeilingMiles > 0 && next > policy.CeilingMiles {
		next = policy.CeilingMiles
	}
	if next < miles {
		return miles
	}
	return next
}
