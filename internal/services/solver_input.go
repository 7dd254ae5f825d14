package services

import (
	"fmt"
	"math"
	"time"

	"route-chain-service/internal/domain"
	"route-chain-service/internal/ports"
)

// Defaults for the derived solver problem when the chain carries no better
// information.
const (
	defaultVehicleCapacityLbs = 45000
	defaultMaxRouteTimeMin    = 7 * 24 * 60
)

// BuildSolverProblem derives the external solver's input from one chain:
// node 0 is the depot (the true origin), followed by a pickup and a delivery
// node per load. Travel times are haversine miles at 50 mph; time windows are
// minute offsets from the chain's earliest pickup. The engine builds this
// description and decodes the reply; it never solves the problem itself.
func BuildSolverProblem(criteria domain.SearchCriteria, chain domain.RouteChain) (ports.SolverProblem, error) {
	if chain.LoadCount() == 0 {
		return ports.SolverProblem{}, fmt.Errorf("build solver problem: chain has no loads")
	}

	points := []domain.GeoPoint{criteria.Origin}
	for _, leg := range chain.Legs {
		points = append(points, leg.Load.Origin, leg.Load.Destination)
	}

	n := len(points)
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
		for j := range matrix[i] {
			if i != j {
				matrix[i][j] = travelMinutes(domain.HaversineMiles(points[i], points[j]))
			}
		}
	}

	ref := referenceTime(chain)

	pairs := make([][2]int, 0, chain.LoadCount())
	demands := make([]int, n)
	windows := make([][2]int, n)
	windows[0] = [2]int{0, defaultMaxRouteTimeMin}

	for i, leg := range chain.Legs {
		pickup := 1 + 2*i
		delivery := pickup + 1
		pairs = append(pairs, [2]int{pickup, delivery})

		weight := int(math.Round(leg.Load.WeightPounds))
		demands[pickup] = weight
		demands[delivery] = -weight

		windows[pickup] = windowMinutes(leg.Load.PickupWindow, ref)
		windows[delivery] = windowMinutes(leg.Load.DeliveryWindow, ref)
	}

	return ports.SolverProblem{
		TimeMatrix:        matrix,
		PickupsDeliveries: pairs,
		Demands:           demands,
		TimeWindows:       windows,
		NumVehicles:       1,
		VehicleCapacity:   defaultVehicleCapacityLbs,
		MaxRouteTime:      defaultMaxRouteTimeMin,
		DepotIndex:        0,
	}, nil
}

// A solver stop resolved back onto the chain's loads.
type ItineraryStop struct {
	LoadID             string
	Pickup             bool
	ArrivalTimeMinutes int
	LoadOnVehicle      int
}

// DecodeSolverRoute maps the solver's node indices back to the chain's loads.
// Depot visits are dropped; every other node resolves to a pickup or delivery
// of a specific load.
func DecodeSolverRoute(route ports.SolverRoute, chain domain.RouteChain) ([]ItineraryStop, error) {
	stops := make([]ItineraryStop, 0, len(route.Stops))
	for _, stop := range route.Stops {
		if stop.NodeIndex == 0 {
			continue
		}

		legIdx := (stop.NodeIndex - 1) / 2
		if legIdx >= chain.LoadCount() {
			return nil, fmt.Errorf("decode solver route: node index %d beyond chain of %d loads", stop.NodeIndex, chain.LoadCount())
		}

		stops = append(stops, ItineraryStop{
			LoadID:             chain.Legs[legIdx].Load.ID,
			Pickup:             stop.NodeIndex%2 == 1,
			ArrivalTimeMinutes: stop.ArrivalTimeMinutes,
			LoadOnVehicle:      stop.LoadOnVehicle,
		})
	}
	return stops, nil
}

// travelMinutes estimates drive time at 50 mph average.
func travelMinutes(miles float64) int {
	return int(miles / deadheadMPH * 60)
}

// referenceTime anchors window offsets at the chain's earliest pickup.
func referenceTime(chain domain.RouteChain) time.Time {
	var ref time.Time
	for _, leg := range chain.Legs {
		if leg.Load.PickupWindow == nil {
			continue
		}
		if ref.IsZero() || leg.Load.PickupWindow.Earliest.Before(ref) {
			ref = leg.Load.PickupWindow.Earliest
		}
	}
	return ref
}

func windowMinutes(w *domain.TimeWindow, ref time.Time) [2]int {
	if w == nil || ref.IsZero() {
		return [2]int{0, defaultMaxRouteTimeMin}
	}

	earliest := int(w.Earliest.Sub(ref).Minutes())
	latest := int(w.Latest.Sub(ref).Minutes())
	if earliest < 0 {
		earliest = 0
	}
	if latest < earliest {
		latest = earliest
	}
	return [2]int{earliest, latest}
}
