package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"route-chain-service/internal/api/dto"
	"route-chain-service/internal/ports"
)

type stubSolver struct {
	problem  ports.SolverProblem
	solution ports.SolverSolution
	err      error
}

func (s *stubSolver) Solve(ctx context.Context, problem ports.SolverProblem) (ports.SolverSolution, error) {
	s.problem = problem
	if s.err != nil {
		return ports.SolverSolution{}, s.err
	}
	return s.solution, nil
}

func itineraryRequest() dto.ItineraryRequest {
	return dto.ItineraryRequest{
		SearchCriteria: dto.SearchCriteria{
			Origin:      dto.GeoPoint{Latitude: 40.0, Longitude: -100.0},
			Destination: dto.GeoPoint{Latitude: 42.0, Longitude: -100.0},
		},
		Loads: []dto.Load{
			{
				ID:           "leg-1",
				Origin:       dto.GeoPoint{Latitude: 40.1, Longitude: -100.0},
				Destination:  dto.GeoPoint{Latitude: 41.0, Longitude: -100.0},
				WeightPounds: 12000,
			},
		},
	}
}

func postItinerary(t *testing.T, h *ItineraryHandler, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/routes/itinerary", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Itinerary(rec, req)
	return rec
}

func TestItinerarySolvedRoute(t *testing.T) {
	solver := &stubSolver{
		solution: ports.SolverSolution{
			SolutionFound: true,
			Routes: []ports.SolverRoute{
				{
					VehicleID:             0,
					TotalRouteTimeMinutes: 250,
					Stops: []ports.SolverStop{
						{NodeIndex: 0, ArrivalTimeMinutes: 0, LoadOnVehicle: 0},
						{NodeIndex: 1, ArrivalTimeMinutes: 10, LoadOnVehicle: 12000},
						{NodeIndex: 2, ArrivalTimeMinutes: 90, LoadOnVehicle: 0},
					},
				},
			},
		},
	}
	h := &ItineraryHandler{Solver: solver}

	rec := postItinerary(t, h, itineraryRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var res dto.ItineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if !res.SolutionFound {
		t.Fatal("SolutionFound = false, want true")
	}
	if res.TotalRouteTimeMinutes != 250 {
		t.Errorf("TotalRouteTimeMinutes = %d, want 250", res.TotalRouteTimeMinutes)
	}
	// The depot stop is dropped; pickup and delivery remain.
	if len(res.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(res.Stops))
	}
	if !res.Stops[0].Pickup || res.Stops[0].LoadID != "leg-1" {
		t.Errorf("first stop = %+v, want pickup of leg-1", res.Stops[0])
	}
	if res.Stops[1].Pickup {
		t.Errorf("second stop = %+v, want delivery", res.Stops[1])
	}

	// One load yields a 3-node problem: depot, pickup, delivery.
	if len(solver.problem.TimeMatrix) != 3 {
		t.Errorf("time matrix size = %d, want 3", len(solver.problem.TimeMatrix))
	}
	if len(solver.problem.PickupsDeliveries) != 1 || solver.problem.PickupsDeliveries[0] != [2]int{1, 2} {
		t.Errorf("pairs = %v, want [[1 2]]", solver.problem.PickupsDeliveries)
	}
}

func TestItineraryNoSolution(t *testing.T) {
	solver := &stubSolver{
		solution: ports.SolverSolution{SolutionFound: false, Message: "infeasible time windows"},
	}
	h := &ItineraryHandler{Solver: solver}

	rec := postItinerary(t, h, itineraryRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res dto.ItineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if res.SolutionFound {
		t.Error("SolutionFound = true, want false")
	}
	if res.Message != "infeasible time windows" {
		t.Errorf("Message = %q, want solver message passed through", res.Message)
	}
	if len(res.Stops) != 0 {
		t.Errorf("stops = %v, want none", res.Stops)
	}
}

func TestItinerarySolverFailure(t *testing.T) {
	solver := &stubSolver{err: fmt.Errorf("connection refused")}
	h := &ItineraryHandler{Solver: solver}

	rec := postItinerary(t, h, itineraryRequest())
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestItineraryWithoutSolver(t *testing.T) {
	h := &ItineraryHandler{}

	rec := postItinerary(t, h, itineraryRequest())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestItineraryRequiresLoads(t *testing.T) {
	solver := &stubSolver{}
	h := &ItineraryHandler{Solver: solver}

	req := itineraryRequest()
	req.Loads = nil

	rec := postItinerary(t, h, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
