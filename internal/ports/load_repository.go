package ports

import (
	"context"
	"route-chain-service/internal/domain"
)

// Outcome of a bulk remove: ids that were deleted and ids that were not found.
type RemoveResult struct {
	Removed    []string
	MissingIDs []string
}

// Port: a boundary for the hosted load store. The chain engine itself never
// talks to storage; it reads a caller-supplied load slice. The repository
// exists so the API layer can serve load posting/removal and fall back to
// stored loads when a search request carries none.
type LoadRepository interface {
	// Retrieve all posted loads.
	ListLoads(ctx context.Context) ([]domain.Load, error)
	// Insert or update loads keyed by their caller-assigned id.
	SaveLoads(ctx context.Context, loads []domain.Load) error
	// Delete loads by id, reporting which ids did not exist.
	RemoveLoads(ctx context.Context, ids []string) (RemoveResult, error)
}
