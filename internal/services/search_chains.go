package services

import (
	"context"
	"errors"
	"fmt"

	"route-chain-service/internal/domain"
	"route-chain-service/internal/platform/obs"
)

// ErrInvalidInput marks validation failures so the API layer can surface them
// as client errors rather than server faults.
var ErrInvalidInput = errors.New("invalid input")

// SearchResult is the full answer to one chain search: a ranked page plus the
// deadhead bounds the result was actually produced under.
type SearchResult struct {
	Page       domain.PageResult
	BoundsUsed BoundsUsed
	Relaxed    bool
}

// SearchChains is the engine entry point: validate, index the loads, search
// (relaxing bounds if needed), rank, and paginate. Each invocation builds its
// own index and search state, so concurrent requests share nothing.
func SearchChains(
	ctx context.Context,
	criteria domain.SearchCriteria,
	loads []domain.Load,
	pageReq domain.PageRequest,
	policy RelaxationPolicy,
) (_ SearchResult, err error) {
	defer obs.Time(ctx, "services.SearchChains")(&err)

	criteria.Options = applyOptionDefaults(criteria.Options)
	pageReq = applyPageDefaults(pageReq)

	if err := validateCriteria(criteria); err != nil {
		return SearchResult{}, fmt.Errorf("search chains: %w", err)
	}
	if err := validateLoads(loads); err != nil {
		return SearchResult{}, fmt.Errorf("search chains: %w", err)
	}
	if err := validatePage(pageReq); err != nil {
		return SearchResult{}, fmt.Errorf("search chains: %w", err)
	}

	index := NewLoadIndex(loads)

	chains, used, relaxed := SearchWithRelaxation(index, criteria, policy)

	RankChains(chains)

	return SearchResult{
		Page:       Paginate(chains, pageReq),
		BoundsUsed: used,
		Relaxed:    relaxed,
	}, nil
}

func applyOptionDefaults(opts domain.SearchOptions) domain.SearchOptions {
	if opts.MaxOriginDeadheadMiles == 0 {
		opts.MaxOriginDeadheadMiles = domain.DefaultOriginDeadheadMiles
	}
	if opts.MaxDestinationDeadheadMiles == 0 {
		opts.MaxDestinationDeadheadMiles = domain.DefaultDestinationDeadheadMiles
	}
	if opts.MaxRoutes == 0 {
		opts.MaxRoutes = domain.DefaultMaxRoutes
	}
	if opts.MaxChainLength == 0 {
		opts.MaxChainLength = domain.DefaultMaxChainLength
	}
	return opts
}

func applyPageDefaults(req domain.PageRequest) domain.PageRequest {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = domain.DefaultPageSize
	}
	return req
}

func validateCriteria(c domain.SearchCriteria) error {
	if !c.Origin.ValidCoordinates() {
		return fmt.Errorf("%w: origin coordinates (%f, %f) out of range", ErrInvalidInput, c.Origin.Lat, c.Origin.Lon)
	}
	if !c.Destination.ValidCoordinates() {
		return fmt.Errorf("%w: destination coordinates (%f, %f) out of range", ErrInvalidInput, c.Destination.Lat, c.Destination.Lon)
	}
	if c.Options.MaxOriginDeadheadMiles < 0 {
		return fmt.Errorf("%w: maxOriginDeadheadMiles must be non-negative", ErrInvalidInput)
	}
	if c.Options.MaxDestinationDeadheadMiles < 0 {
		return fmt.Errorf("%w: maxDestinationDeadheadMiles must be non-negative", ErrInvalidInput)
	}
	if c.Options.MaxRoutes < 1 {
		return fmt.Errorf("%w: maxRoutes must be at least 1", ErrInvalidInput)
	}
	if c.Options.MaxChainLength < 1 {
		return fmt.Errorf("%w: maxChainLength must be at least 1", ErrInvalidInput)
	}
	return nil
}

func validateLoads(loads []domain.Load) error {
	for i, load := range loads {
		if !load.Origin.ValidCoordinates() {
			return fmt.Errorf("%w: load %q (index %d) origin coordinates out of range", ErrInvalidInput, load.ID, i)
		}
		if !load.Destination.ValidCoordinates() {
			return fmt.Errorf("%w: load %q (index %d) destination coordinates out of range", ErrInvalidInput, load.ID, i)
		}
	}
	return nil
}

func validatePage(req domain.PageRequest) error {
	if req.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1", ErrInvalidInput)
	}
	if req.PageSize < 1 {
		return fmt.Errorf("%w: pageSize must be at least 1", ErrInvalidInput)
	}
	return nil
}
