package services

import (
	"math"
	"slices"

	"route-chain-service/internal/domain"

	"github.com/dhconnelly/rtreego"
)

// Statute miles per degree of latitude; longitude shrinks with cos(lat).
const milesPerDegree = 69.0

// A load plus the deadhead miles needed to reach its pickup point.
type Candidate struct {
	Load     *domain.Load
	Deadhead float64
}

type indexEntry struct {
	load *domain.Load
	rect rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect { return e.rect }

// LoadIndex answers "which loads can pick up within R miles of point P".
// It is built once per search from the raw load slice and never mutated, so
// it needs no locking. Backed by an R-tree over pickup points; candidates
// from the bounding-box probe are confirmed with an exact haversine check.
type LoadIndex struct {
	tree  *rtreego.Rtree
	loads []domain.Load
}

// NewLoadIndex indexes the load set by pickup location.
func NewLoadIndex(loads []domain.Load) *LoadIndex {
	idx := &LoadIndex{
		tree:  rtreego.NewTree(2, 8, 32),
		loads: loads,
	}

	for i := range idx.loads {
		load := &idx.loads[i]
		point := rtreego.Point{load.Origin.Lon, load.Origin.Lat}
		idx.tree.Insert(&indexEntry{load: load, rect: point.ToRect(1e-6)})
	}

	return idx
}

func (idx *LoadIndex) Size() int { return len(idx.loads) }

// WithinRadius returns every load whose pickup point lies within radiusMiles
// of p, sorted ascending by deadhead distance with a load-id tie-break.
// The ordering is load-bearing: the chain search explores candidates in this
// order, so under the global route cap the lowest-deadhead chains are the
// ones that get found.
func (idx *LoadIndex) WithinRadius(p domain.GeoPoint, radiusMiles float64) []Candidate {
	if radiusMiles < 0 {
		return nil
	}

	boxes, err := boundingRects(p, radiusMiles)
	if err != nil {
		return nil
	}

	var hits []rtreego.Spatial
	for _, box := range boxes {
		hits = append(hits, idx.tree.SearchIntersect(box)...)
	}

	out := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		entry := hit.(*indexEntry)
		d := domain.HaversineMiles(p, entry.load.Origin)
		if d <= radiusMiles {
			out = append(out, Candidate{Load: entry.load, Deadhead: d})
		}
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if a.Deadhead < b.Deadhead {
			return -1
		}
		if a.Deadhead > b.Deadhead {
			return 1
		}
		if a.Load.ID < b.Load.ID {
			return -1
		}
		if a.Load.ID > b.Load.ID {
			return 1
		}
		return 0
	})

	return out
}

// boundingRects converts a radius in miles to lat/lon boxes around p. The
// boxes over-approximate the circle (exact filtering happens afterward), so
// the longitude width is clamped rather than allowed to blow up near the
// poles. A box that crosses the antimeridian is split at ±180 into two
// rects: the stored pickup points live in [-180, 180], so a single
// past-the-edge rect would silently miss loads on the far side.
func boundingRects(p domain.GeoPoint, radiusMiles float64) ([]rtreego.Rect, error) {
	// The epsilon keeps the rects non-degenerate for a zero radius.
	dLat := radiusMiles/milesPerDegree + 1e-6

	cosLat := math.Cos(domain.Radians(p.Lat))
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := radiusMiles/(milesPerDegree*cosLat) + 1e-6

	latMin := p.Lat - dLat
	latHeight := 2 * dLat

	if 2*dLon >= 360 {
		box, err := rtreego.NewRect(rtreego.Point{-180, latMin}, []float64{360, latHeight})
		if err != nil {
			return nil, err
		}
		return []rtreego.Rect{box}, nil
	}

	lonMin := p.Lon - dLon
	lonMax := p.Lon + dLon

	switch {
	case lonMin < -180:
		east, err := rtreego.NewRect(rtreego.Point{-180, latMin}, []float64{lonMax + 180, latHeight})
		if err != nil {
			return nil, err
		}
		west, err := rtreego.NewRect(rtreego.Point{lonMin + 360, latMin}, []float64{-180 - lonMin, latHeight})
		if err != nil {
			return nil, err
		}
		return []rtreego.Rect{east, west}, nil
	case lonMax > 180:
		east, err := rtreego.NewRect(rtreego.Point{lonMin, latMin}, []float64{180 - lonMin, latHeight})
		if err != nil {
			return nil, err
		}
		west, err := rtreego.NewRect(rtreego.Point{-180, latMin}, []float64{lonMax - 180, latHeight})
		if err != nil {
			return nil, err
		}
		return []rtreego.Rect{east, west}, nil
	default:
		box, err := rtreego.NewRect(rtreego.Point{lonMin, latMin}, []float64{2 * dLon, latHeight})
		if err != nil {
			return nil, err
		}
		return []rtreego.Rect{box}, nil
	}
}
