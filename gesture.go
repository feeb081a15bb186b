package twisty

import "github.com/SeamusWaldron/twisty/pkg/types"

// Ray is a pointer ray in model space, as cast by a renderer.
type Ray struct {
	Origin    [3]float64
	Direction [3]float64
}

// Picker is implemented by the rendering layer. It reports the facet under a
// ray, or -1 when the ray hits nothing selectable.
type Picker interface {
	FacetUnderRay(ray Ray) int
}

// TryRotate resolves a drag from one facet to another into the move that
// best explains it. It returns false when either facet is invalid or
// structural, when they are equal, or when no move fits.
//
// Without a precomputed gesture table every move is scored by where it
// sends from: the Manhattan distance between that facet's cubie and to's
// cubie, plus a penalty larger than the grid when the sides differ. Moves
// that leave from in place or on its own side are skipped. Ties go to the
// lowest move id.
func (p *Puzzle) TryRotate(from, to int) (int, bool) {
	m := p.model
	if !m.ValidFacet(from) || !m.ValidFacet(to) || from == to {
		return -1, false
	}
	if !m.Facets[from].Colored() || !m.Facets[to].Colored() {
		return -1, false
	}
	if m.Gestures != nil {
		id := m.Gestures[from][to]
		return id, id >= 0
	}
	return resolveGesture(m, from, to)
}

// Gesture picks the facets under press and release and resolves the drag.
func (p *Puzzle) Gesture(picker Picker, press, release Ray) (int, bool) {
	return p.TryRotate(picker.FacetUnderRay(press), picker.FacetUnderRay(release))
}

func resolveGesture(m *types.Model, from, to int) (int, bool) {
	penalty := gridExtent(m) + 2
	start, target := m.Facets[from], m.Facets[to]

	best, bestDistance := -1, 0
	for id := range m.Moves {
		moved := m.Moves[id].Perm[from]
		landed := m.Facets[moved]
		if moved == from || landed.Side == start.Side {
			continue
		}
		distance := landed.Cubie.Manhattan(target.Cubie)
		if landed.Side != target.Side {
			distance += penalty
		}
		if best < 0 || distance < bestDistance {
			best, bestDistance = id, distance
		}
	}
	return best, best >= 0
}

// gridExtent returns the widest span of cubie coordinates along any axis.
func gridExtent(m *types.Model) int {
	if len(m.Facets) == 0 {
		return 0
	}
	lo, hi := m.Facets[0].Cubie, m.Facets[0].Cubie
	for _, f := range m.Facets[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], f.Cubie[i])
			hi[i] = max(hi[i], f.Cubie[i])
		}
	}
	extent := 0
	for i := 0; i < 3; i++ {
		extent = max(extent, hi[i]-lo[i]+1)
	}
	return extent
}
