package ports

import (
	"context"
	"route-chain-service/internal/domain"
)

// Free-text itinerary for one ranked chain, produced by a hosted
// text-generation service.
type TripPlan struct {
	Summary      string
	DetailedPlan string
}

// Contract for the trip-plan generator. Purely additive: plan generation may
// fail or be absent without affecting the chain search result.
type TripPlanner interface {
	GeneratePlan(ctx context.Context, chain domain.RouteChain, criteria domain.SearchCriteria) (TripPlan, error)
}
