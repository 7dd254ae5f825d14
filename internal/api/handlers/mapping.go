package handlers

import (
	"route-chain-service/internal/api/dto"
	"route-chain-service/internal/domain"
)

func geoPointFromDTO(p dto.GeoPoint) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Latitude, Lon: p.Longitude, City: p.City, State: p.State}
}

func geoPointToDTO(p domain.GeoPoint) dto.GeoPoint {
	return dto.GeoPoint{Latitude: p.Lat, Longitude: p.Lon, City: p.City, State: p.State}
}

func windowFromDTO(w *dto.TimeWindow) *domain.TimeWindow {
	if w == nil {
		return nil
	}
	return &domain.TimeWindow{Earliest: w.Earliest, Latest: w.Latest}
}

func windowToDTO(w *domain.TimeWindow) *dto.TimeWindow {
	if w == nil {
		return nil
	}
	return &dto.TimeWindow{Earliest: w.Earliest, Latest: w.Latest}
}

func loadFromDTO(l dto.Load) domain.Load {
	return domain.Load{
		ID:             l.ID,
		Origin:         geoPointFromDTO(l.Origin),
		Destination:    geoPointFromDTO(l.Destination),
		PickupWindow:   windowFromDTO(l.PickupWindow),
		DeliveryWindow: windowFromDTO(l.DeliveryWindow),
		DistanceMiles:  l.DistanceMiles,
		RevenueAmount:  l.RevenueAmount,
		RatePerMile:    l.RatePerMile,
		WeightPounds:   l.WeightPounds,
	}
}

func loadToDTO(l domain.Load) dto.Load {
	return dto.Load{
		ID:             l.ID,
		Origin:         geoPointToDTO(l.Origin),
		Destination:    geoPointToDTO(l.Destination),
		PickupWindow:   windowToDTO(l.PickupWindow),
		DeliveryWindow: windowToDTO(l.DeliveryWindow),
		DistanceMiles:  l.DistanceMiles,
		RevenueAmount:  l.RevenueAmount,
		RatePerMile:    l.RatePerMile,
		WeightPounds:   l.WeightPounds,
	}
}

func criteriaFromDTO(c dto.SearchCriteria) domain.SearchCriteria {
	criteria := domain.SearchCriteria{
		Origin:      geoPointFromDTO(c.Origin),
		Destination: geoPointFromDTO(c.Destination),
	}
	if c.Options != nil {
		criteria.Options = domain.SearchOptions{
			MaxOriginDeadheadMiles:      c.Options.MaxOriginDeadheadMiles,
			MaxDestinationDeadheadMiles: c.Options.MaxDestinationDeadheadMiles,
			MaxRoutes:                   c.Options.MaxRoutes,
			MaxChainLength:              c.Options.MaxChainLength,
		}
	}
	return criteria
}

func chainToDTO(chain domain.RouteChain) dto.RouteChain {
	legs := make([]dto.ChainLeg, 0, len(chain.Legs))
	for _, leg := range chain.Legs {
		legs = append(legs, dto.ChainLeg{
			LoadID:         leg.Load.ID,
			Origin:         geoPointToDTO(leg.Load.Origin),
			Destination:    geoPointToDTO(leg.Load.Destination),
			DistanceMiles:  leg.Load.DistanceMiles,
			RevenueAmount:  leg.Load.RevenueAmount,
			DeadheadBefore: leg.DeadheadBefore,
		})
	}

	return dto.RouteChain{
		Legs:               legs,
		LoadCount:          chain.LoadCount(),
		TotalDeadheadMiles: chain.TotalDeadheadMiles(),
		TotalDistanceMiles: chain.TotalDistanceMiles(),
		TotalRevenue:       chain.TotalRevenue(),
		FinalDeadheadMiles: chain.FinalDeadhead,
	}
}
