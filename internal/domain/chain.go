package domain

import "strings"

// ChainLeg is one load in a chain plus the empty travel needed to reach its
// pickup point: from the true origin for the first leg, from the previous
// load's delivery point otherwise.
type ChainLeg struct {
	Load           *Load
	DeadheadBefore float64
}

// Represents one feasible way to ride a sequence of loads from an origin to a
// destination. A RouteChain is complete: its first pickup is within the origin
// deadhead bound and its last delivery is within the destination deadhead
// bound (FinalDeadhead is that last empty leg). It is immutable result data.
type RouteChain struct {
	Legs          []ChainLeg
	FinalDeadhead float64
}

func (c RouteChain) LoadCount() int { return len(c.Legs) }

// TotalDeadheadMiles sums every empty leg, including the run-out to the
// true destination.
func (c RouteChain) TotalDeadheadMiles() float64 {
	total := c.FinalDeadhead
	for _, leg := range c.Legs {
		total += leg.DeadheadBefore
	}
	return total
}

// TotalDistanceMiles sums the loaded miles of every load in the chain.
func (c RouteChain) TotalDistanceMiles() float64 {
	total := 0.0
	for _, leg := range c.Legs {
		total += leg.Load.DistanceMiles
	}
	return total
}

// TotalRevenue sums the posted rates of every load in the chain.
func (c RouteChain) TotalRevenue() float64 {
	total := 0.0
	for _, leg := range c.Legs {
		total += leg.Load.RevenueAmount
	}
	return total
}

// Signature is the ordered load-id sequence. Two chains are the same result
// exactly when their signatures match, and the signature is the stable
// tie-break key for ranking.
func (c RouteChain) Signature() string {
	ids := make([]string, 0, len(c.Legs))
	for _, leg := range c.Legs {
		ids = append(ids, leg.Load.ID)
	}
	return strings.Join(ids, ">")
}
