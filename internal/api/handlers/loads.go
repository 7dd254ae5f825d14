package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"route-chain-service/internal/api/dto"
	"route-chain-service/internal/domain"
	"route-chain-service/internal/ports"
)

// LoadHandler exposes the posted-load board: list, post, and remove.
type LoadHandler struct {
	Repo ports.LoadRepository
}

func (h *LoadHandler) Loads(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "load store not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.post(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LoadHandler) list(w http.ResponseWriter, r *http.Request) {
	loads, err := h.Repo.ListLoads(r.Context())
	if err != nil {
		log.Printf("list loads failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLoadsResponse{Loads: make([]dto.Load, 0, len(loads))}
	for _, l := range loads {
		res.Loads = append(res.Loads, loadToDTO(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *LoadHandler) post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostLoadsRequest

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

	loads := make([]domain.Load, 0, len(req.Loads))
	for _, l := range req.Loads {
		load := loadFromDTO(l)
		if !load.Origin.ValidCoordinates() || !load.Destination.ValidCoordinates() {
			writeError(w, r, http.StatusBadRequest, "load has invalid coordinates")
			return
		}
		if load.ID == "" {
			load.ID = uuid.NewString()
		}
		loads = append(loads, load)
	}

	if err := h.Repo.SaveLoads(r.Context(), loads); err != nil {
		log.Printf("save loads failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PostLoadsResponse{SavedIDs: make([]string, 0, len(loads))}
	for _, l := range loads {
		res.SavedIDs = append(res.SavedIDs, l.ID)
	}

	writeJSON(w, r, http.StatusCreated, res)
}

func (h *LoadHandler) remove(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveLoadsRequest

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

	if len(req.IDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "ids must not be empty")
		return
	}

	result, err := h.Repo.RemoveLoads(r.Context(), req.IDs)
	if err != nil {
		log.Printf("remove loads failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RemoveLoadsResponse{
		Removed:    result.Removed,
		MissingIDs: result.MissingIDs,
	})
}
