package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"route-chain-service/internal/api/dto"
	"route-chain-service/internal/domain"
	"route-chain-service/internal/ports"
	"route-chain-service/internal/services"
)

// ItineraryHandler turns a caller-ordered chain of loads into a timed stop
// sequence by delegating to the external time-window solver.
type ItineraryHandler struct {
	Solver ports.VRPTWSolver
}

func (h *ItineraryHandler) Itinerary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Solver == nil {
		writeError(w, r, http.StatusServiceUnavailable, "solver not configured")
		return
	}

	var req dto.ItineraryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Loads) == 0 {
		writeError(w, r, http.StatusBadRequest, "loads must not be empty")
		return
	}

	criteria := criteriaFromDTO(req.SearchCriteria)
	if !criteria.Origin.ValidCoordinates() {
		writeError(w, r, http.StatusBadRequest, "origin has invalid coordinates")
		return
	}

	chain, err := chainFromOrderedLoads(criteria.Origin, criteria.Destination, req.Loads)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	problem, err := services.BuildSolverProblem(criteria, chain)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	solution, err := h.Solver.Solve(r.Context(), problem)
	if err != nil {
		log.Printf("solve itinerary failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "solver unavailable")
		return
	}

	res := dto.ItineraryResponse{
		SolutionFound: solution.SolutionFound,
		Message:       solution.Message,
		Stops:         []dto.ItineraryStop{},
	}
	if solution.SolutionFound && len(solution.Routes) > 0 {
		route := solution.Routes[0]
		stops, err := services.DecodeSolverRoute(route, chain)
		if err != nil {
			log.Printf("decode solver route failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "solver returned an unusable route")
			return
		}

		res.TotalRouteTimeMinutes = route.TotalRouteTimeMinutes
		for _, s := range stops {
			res.Stops = append(res.Stops, dto.ItineraryStop{
				LoadID:             s.LoadID,
				Pickup:             s.Pickup,
				ArrivalTimeMinutes: s.ArrivalTimeMinutes,
				LoadOnVehicle:      s.LoadOnVehicle,
			})
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// chainFromOrderedLoads rebuilds a RouteChain from loads in riding order,
// recomputing the deadhead between consecutive stops.
func chainFromOrderedLoads(origin, destination domain.GeoPoint, loads []dto.Load) (domain.RouteChain, error) {
	legs := make([]domain.ChainLeg, 0, len(loads))
	prev := origin
	for _, l := range loads {
		load := loadFromDTO(l)
		if !load.Origin.ValidCoordinates() || !load.Destination.ValidCoordinates() {
			return domain.RouteChain{}, errors.New("load has invalid coordinates")
		}

		legs = append(legs, domain.ChainLeg{
			Load:           &load,
			DeadheadBefore: domain.HaversineMiles(prev, load.Origin),
		})
		prev = load.Destination
	}

	return domain.RouteChain{
		Legs:          legs,
		FinalDeadhead: domain.HaversineMiles(prev, destination),
	}, nil
}
