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

// tripPlanLimit caps how many of the top ranked chains get a generated plan
// per request, keeping the text-generation spend bounded.
const tripPlanLimit = 5

type SearchHandler struct {
	Repo    ports.LoadRepository
	Planner ports.TripPlanner
	Policy  services.RelaxationPolicy
}

// Search runs one chain search end to end: decode, resolve the load set
// (inline or stored), delegate to the engine, and optionally attach trip
// plans for the top ranked chains.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

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

	loads := make([]domain.Load, 0, len(req.Loads))
	for _, l := range req.Loads {
		loads = append(loads, loadFromDTO(l))
	}

	// A request with no inline loads searches whatever is posted to the board.
	if len(loads) == 0 && h.Repo != nil {
		stored, err := h.Repo.ListLoads(r.Context())
		if err != nil {
			log.Printf("list stored loads failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		loads = stored
	}

	criteria := criteriaFromDTO(req.SearchCriteria)
	pageReq := domain.PageRequest{Page: req.Page, PageSize: req.PageSize}

	result, err := services.SearchChains(r.Context(), criteria, loads, pageReq, h.Policy)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("chain search failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SearchResponse{
		Items:      make([]dto.RouteChain, 0, len(result.Page.Items)),
		Page:       result.Page.Page,
		PageSize:   result.Page.PageSize,
		TotalCount: result.Page.TotalCount,
		TotalPages: result.Page.TotalPages,
		BoundsUsed: dto.BoundsUsed{
			OriginMiles:      result.BoundsUsed.OriginMiles,
			DestinationMiles: result.BoundsUsed.DestinationMiles,
		},
		Relaxed: result.Relaxed,
	}
	for _, chain := range result.Page.Items {
		res.Items = append(res.Items, chainToDTO(chain))
	}

	if req.IncludeTripPlans && h.Planner != nil {
		res.TripPlans = h.generatePlans(r, result.Page.Items, criteria)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// generatePlans produces plans for the top chains on the page. Plan failures
// are logged and skipped: a search never fails because the planner did.
func (h *SearchHandler) generatePlans(r *http.Request, chains []domain.RouteChain, criteria domain.SearchCriteria) []dto.TripPlan {
	limit := len(chains)
	if limit > tripPlanLimit {
		limit = tripPlanLimit
	}

	plans := make([]dto.TripPlan, 0, limit)
	for i := 0; i < limit; i++ {
		plan, err := h.Planner.GeneratePlan(r.Context(), chains[i], criteria)
		if err != nil {
			log.Printf("trip plan failed: chain=%s err=%v", chains[i].Signature(), err)
			continue
		}
		plans = append(plans, dto.TripPlan{
			ChainIndex:   i,
			Summary:      plan.Summary,
			DetailedPlan: plan.DetailedPlan,
		})
	}
	return plans
}
