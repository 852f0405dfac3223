package kriging

import (
	vec2d "github.com/flywave/go3d/float64/vec2"
)

// Polygon is a masking ring in sample coordinates. A closing vertex equal
// to the first is allowed but not required.
type Polygon []vec2d.T

func NewPolygon(coords [][]float64) Polygon {
	p := make(Polygon, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		p = append(p, vec2d.T{c[0], c[1]})
	}
	return p
}

// Contains tests (x, y) against the ring with the even-odd rule.
func (p Polygon) Contains(x, y float64) bool {
	contains := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		xi, yi := p[i][0], p[i][1]
		xj, yj := p[j][0], p[j][1]
		if ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi)+xi) {
			contains = !contains
		}
	}
	return contains
}

func (p Polygon) Bounds() vec2d.Rect {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for i := range p {
		r.Extend(&p[i])
	}
	return r
}

// boundsOf reports false when no polygon has a vertex.
func boundsOf(polygons []Polygon) (vec2d.Rect, bool) {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	ok := false
	for _, p := range polygons {
		ok = ok || len(p) > 0
		for i := range p {
			r.Extend(&p[i])
		}
	}
	return r, ok
}
