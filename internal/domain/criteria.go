package domain

// Default search bounds. Callers that leave an option at zero get these.
const (
	DefaultOriginDeadheadMiles      = 100.0
	DefaultDestinationDeadheadMiles = 100.0
	DefaultMaxRoutes                = 200
	DefaultMaxChainLength           = 3

	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Tunable bounds for a single chain search.
type SearchOptions struct {
	MaxOriginDeadheadMiles      float64
	MaxDestinationDeadheadMiles float64
	MaxRoutes                   int
	MaxChainLength              int
}

// DefaultSearchOptions returns the documented defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxOriginDeadheadMiles:      DefaultOriginDeadheadMiles,
		MaxDestinationDeadheadMiles: DefaultDestinationDeadheadMiles,
		MaxRoutes:                   DefaultMaxRoutes,
		MaxChainLength:              DefaultMaxChainLength,
	}
}

// SearchCriteria is one search request: where the truck starts, where it must
// end up, and the bounds in force. Constructed per request and discarded with
// the response.
type SearchCriteria struct {
	Origin      GeoPoint
	Destination GeoPoint
	Options     SearchOptions
}

// PageRequest selects a 1-based slice of the ranked result list.
type PageRequest struct {
	Page     int
	PageSize int
}

// PageResult is one page of ranked chains plus counts computed from the full
// unsliced result.
type PageResult struct {
	Items      []RouteChain
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}
