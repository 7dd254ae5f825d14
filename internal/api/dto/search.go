package dto

import "time"

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
}

type TimeWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

type Load struct {
	ID             string      `json:"id,omitempty"`
	Origin         GeoPoint    `json:"origin"`
	Destination    GeoPoint    `json:"destination"`
	PickupWindow   *TimeWindow `json:"pickupWindow,omitempty"`
	DeliveryWindow *TimeWindow `json:"deliveryWindow,omitempty"`
	DistanceMiles  float64     `json:"distanceMiles,omitempty"`
	RevenueAmount  float64     `json:"revenueAmount,omitempty"`
	RatePerMile    *float64    `json:"ratePerMile,omitempty"`
	WeightPounds   float64     `json:"weightPounds,omitempty"`
}

type SearchOptions struct {
	MaxOriginDeadheadMiles      float64 `json:"maxOriginDeadheadMiles,omitempty"`
	MaxDestinationDeadheadMiles float64 `json:"maxDestinationDeadheadMiles,omitempty"`
	MaxRoutes                   int     `json:"maxRoutes,omitempty"`
	MaxChainLength              int     `json:"maxChainLength,omitempty"`
}

type SearchCriteria struct {
	Origin      GeoPoint       `json:"origin"`
	Destination GeoPoint       `json:"destination"`
	Options     *SearchOptions `json:"options,omitempty"`
}

type SearchRequest struct {
	SearchCriteria   SearchCriteria `json:"searchCriteria"`
	Loads            []Load         `json:"loads"`
	Page             int            `json:"page,omitempty"`
	PageSize         int            `json:"pageSize,omitempty"`
	IncludeTripPlans bool           `json:"includeTripPlans,omitempty"`
}

type ChainLeg struct {
	LoadID         string   `json:"loadId"`
	Origin         GeoPoint `json:"origin"`
	Destination    GeoPoint `json:"destination"`
	DistanceMiles  float64  `json:"distanceMiles"`
	RevenueAmount  float64  `json:"revenueAmount"`
	DeadheadBefore float64  `json:"deadheadBefore"`
}

type RouteChain struct {
	Legs               []ChainLeg `json:"legs"`
	LoadCount          int        `json:"loadCount"`
	TotalDeadheadMiles float64    `json:"totalDeadheadMiles"`
	TotalDistanceMiles float64    `json:"totalDistanceMiles"`
	TotalRevenue       float64    `json:"totalRevenue"`
	FinalDeadheadMiles float64    `json:"finalDeadheadMiles"`
}

type BoundsUsed struct {
	OriginMiles      float64 `json:"originMiles"`
	DestinationMiles float64 `json:"destinationMiles"`
}

type TripPlan struct {
	ChainIndex   int    `json:"chainIndex"`
	Summary      string `json:"summary"`
	DetailedPlan string `json:"detailedPlan"`
}

type SearchResponse struct {
	Items      []RouteChain `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
	BoundsUsed BoundsUsed   `json:"boundsUsed"`
	Relaxed    bool         `json:"relaxed"`
	TripPlans  []TripPlan   `json:"tripPlans,omitempty"`
}
