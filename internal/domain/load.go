package domain

import "time"

// TimeWindow is the earliest/latest bound for a pickup or delivery appointment.
type TimeWindow struct {
	Earliest time.Time
	Latest   time.Time
}

// Represents a single posted shipment available for chaining.
// A Load is a read-only fact for the duration of one search: the engine never
// mutates it and holds no reference to it across requests.
type Load struct {
	ID             string
	Origin         GeoPoint
	Destination    GeoPoint
	PickupWindow   *TimeWindow
	DeliveryWindow *TimeWindow
	DistanceMiles  float64
	RevenueAmount  float64
	RatePerMile    *float64
	WeightPounds   float64
}
