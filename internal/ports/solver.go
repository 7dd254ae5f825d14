package ports

import "context"

// SolverProblem is the derived input for the external VRPTW solver: an
// all-pairs travel-time matrix over candidate positions plus pickup/delivery
// pairings, demands, and per-node time windows in minutes.
type SolverProblem struct {
	TimeMatrix        [][]int  `json:"time_matrix"`
	PickupsDeliveries [][2]int `json:"pickups_deliveries"`
	Demands           []int    `json:"demands"`
	TimeWindows       [][2]int `json:"time_windows"`
	NumVehicles       int      `json:"num_vehicles"`
	VehicleCapacity   int      `json:"vehicle_capacity"`
	MaxRouteTime      int      `json:"max_route_time"`
	DepotIndex        int      `json:"depot_index"`
}

// SolverStop is one visited node with its arrival time and running load.
type SolverStop struct {
	NodeIndex          int `json:"node_index"`
	ArrivalTimeMinutes int `json:"arrival_time_minutes"`
	LoadOnVehicle      int `json:"load_on_vehicle"`
}

// SolverRoute is one vehicle's stop sequence.
type SolverRoute struct {
	VehicleID             int          `json:"vehicle_id"`
	TotalRouteTimeMinutes int          `json:"total_route_time_minutes"`
	Stops                 []SolverStop `json:"stops"`
}

// SolverSolution is the decoded solver reply.
type SolverSolution struct {
	Routes        []SolverRoute `json:"routes"`
	SolutionFound bool          `json:"solution_found"`
	Message       string        `json:"message"`
}

// Contract for the external time-window solver. The engine only constructs
// the problem and decodes the solution; solving is delegated.
type VRPTWSolver interface {
	Solve(ctx context.Context, problem SolverProblem) (SolverSolution, error)
}
