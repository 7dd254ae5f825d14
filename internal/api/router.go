package api

import (
	"net/http"

	"route-chain-service/internal/api/handlers"
	"route-chain-service/internal/ports"
	"route-chain-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// Repo, planner, and solver may be nil; the endpoints that need them answer
// 503 until they are configured.
func NewRouter(repo ports.LoadRepository, planner ports.TripPlanner, solver ports.VRPTWSolver, policy services.RelaxationPolicy) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{
		Repo:    repo,
		Planner: planner,
		Policy:  policy,
	}
	loadHandler := &handlers.LoadHandler{Repo: repo}
	itineraryHandler := &handlers.ItineraryHandler{Solver: solver}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/search", searchHandler.Search)
	mux.HandleFunc("/routes/itinerary", itineraryHandler.Itinerary)
	mux.HandleFunc("/loads", loadHandler.Loads)

	return loggingMiddleware(mux)
}
