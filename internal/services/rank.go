package services

import (
	"slices"

	"route-chain-service/internal/domain"
)

// RankChains orders chains by the composite comparator: ascending total
// deadhead, then descending total revenue, then ascending load-id signature.
// The signature tie-break makes repeated identical requests produce
// byte-identical ordering.
func RankChains(chains []domain.RouteChain) {
	slices.SortFunc(chains, func(a, b domain.RouteChain) int {
		da, db := a.TotalDeadheadMiles(), b.TotalDeadheadMiles()
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}

		ra, rb := a.TotalRevenue(), b.TotalRevenue()
		if ra > rb {
			return -1
		}
		if ra < rb {
			return 1
		}

		sa, sb := a.Signature(), b.Signature()
		if sa < sb {
			return -1
		}
		if sa > sb {
			return 1
		}
		return 0
	})
}

// Paginate slices one 1-based page out of the ranked list. Counts come from
// the full list; a page past the end yields empty items, not an error. The
// caller has already validated Page and PageSize as positive; PageSize is
// clamped to the hard cap here because the ceiling is part of the contract.
func Paginate(ranked []domain.RouteChain, req domain.PageRequest) domain.PageResult {
	page := req.Page
	if page < 1 {
		page = 1
	}

	size := req.PageSize
	if size < 1 {
		size = domain.DefaultPageSize
	}
	if size > domain.MaxPageSize {
		size = domain.MaxPageSize
	}

	total := len(ranked)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := make([]domain.RouteChain, end-start)
	copy(items, ranked[start:end])

	return domain.PageResult{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
