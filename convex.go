package kriging

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Convex computes the convex hull of sample locations. It serves as the
// masking polygon when none is supplied.
type Convex struct {
	vertices []vec3d.T
	hull     []vec2d.T
}

func NewConvex(vertices []vec3d.T) *Convex {
	return &Convex{vertices: vertices}
}

func (c *Convex) Hull() []vec2d.T {
	if c.hull == nil && len(c.vertices) > 0 {
		minX, maxX := c.getExtremePoints()
		c.hull = append(c.quickHull(c.vertices, maxX, minX), c.quickHull(c.vertices, minX, maxX)...)
	}
	return c.hull
}

// Polygon returns the hull as a masking ring.
func (c *Convex) Polygon() Polygon {
	return Polygon(append([]vec2d.T(nil), c.Hull()...))
}

func (c *Convex) quickHull(points []vec3d.T, start, end vec2d.T) []vec2d.T {
	pointDistanceIndicators := c.getLhsPointDistanceIndicatorMap(points, start, end)
	if len(pointDistanceIndicators) == 0 {
		return []vec2d.T{end}
	}

	farthestPoint := c.getFarthestPoint(pointDistanceIndicators)

	newPoints := make([]vec3d.T, 0, len(pointDistanceIndicators))
	for point := range pointDistanceIndicators {
		newPoints = append(newPoints, point)
	}

	return append(
		c.quickHull(newPoints, farthestPoint, end),
		c.quickHull(newPoints, start, farthestPoint)...)
}

func (c *Convex) getExtremePoints() (minX, maxX vec2d.T) {
	minX = vec2d.T{math.MaxFloat64, 0}
	maxX = vec2d.T{-math.MaxFloat64, 0}

	for _, p := range c.vertices {
		if p[0] < minX[0] {
			minX = vec2d.T{p[0], p[1]}
		}
		if maxX[0] < p[0] {
			maxX = vec2d.T{p[0], p[1]}
		}
	}
	return minX, maxX
}

// Sample values are zeroed in the keys so that points sharing a location
// collapse into one.
func (c *Convex) getLhsPointDistanceIndicatorMap(points []vec3d.T, start, end vec2d.T) map[vec3d.T]float64 {
	pointDistanceIndicatorMap := make(map[vec3d.T]float64)

	for _, point := range points {
		distanceIndicator := getDistanceIndicator(point, start, end)
		if distanceIndicator > 0 {
			pointDistanceIndicatorMap[vec3d.T{point[0], point[1], 0}] = distanceIndicator
		}
	}
	return pointDistanceIndicatorMap
}

func Cross(lhs, rhs vec2d.T) float64 {
	return (lhs[0] * rhs[1]) - (lhs[1] * rhs[0])
}

func getDistanceIndicator(point vec3d.T, start, end vec2d.T) float64 {
	point2d := vec2d.T{point[0], point[1]}
	vLine := vec2d.Sub(&end, &start)
	vPoint := vec2d.Sub(&point2d, &start)
	return Cross(vLine, vPoint)
}

// Ties are broken on the smaller coordinates so the hull does not depend
// on map iteration order.
func (c *Convex) getFarthestPoint(pointDistanceIndicatorMap map[vec3d.T]float64) (farthestPoint vec2d.T) {
	maxDistanceIndicator := -math.MaxFloat64
	for point, distanceIndicator := range pointDistanceIndicatorMap {
		p := vec2d.T{point[0], point[1]}
		if maxDistanceIndicator < distanceIndicator ||
			(maxDistanceIndicator == distanceIndicator && lessXY(p, farthestPoint)) {
			maxDistanceIndicator = distanceIndicator
			farthestPoint = p
		}
	}
	return farthestPoint
}

func lessXY(a, b vec2d.T) bool {
	if a[0] == b[0] {
		return a[1] < b[1]
	}
	return a[0] < b[0]
}
