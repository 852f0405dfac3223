package kriging

import (
	"fmt"

	vec3d "github.com/flywave/go3d/float64/vec3"
	geojson "github.com/paulmach/go.geojson"
)

// LoadSamples extracts (x, y, value) samples from a GeoJSON feature
// collection. A feature's valueKey property takes precedence; otherwise
// the third coordinate of each position is used. Positions with neither
// are skipped.
func LoadSamples(data []byte, valueKey string) ([]vec3d.T, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding samples: %w", err)
	}

	ret := make([]vec3d.T, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		value, hasValue := 0.0, false
		if valueKey != "" {
			if v, err := f.PropertyFloat64(valueKey); err == nil {
				value, hasValue = v, true
			}
		}
		add := func(pos []float64) {
			switch {
			case len(pos) < 2:
			case hasValue:
				ret = append(ret, vec3d.T{pos[0], pos[1], value})
			case len(pos) > 2:
				ret = append(ret, vec3d.T{pos[0], pos[1], pos[2]})
			}
		}

		g := f.Geometry
		switch g.Type {
		case geojson.GeometryPoint:
			add(g.Point)
		case geojson.GeometryMultiPoint:
			for _, pos := range g.MultiPoint {
				add(pos)
			}
		case geojson.GeometryLineString:
			for _, pos := range g.LineString {
				add(pos)
			}
		case geojson.GeometryMultiLineString:
			for _, line := range g.MultiLineString {
				for _, pos := range line {
					add(pos)
				}
			}
		}
	}
	return ret, nil
}

// LoadPolygons extracts the outer rings of every Polygon and MultiPolygon
// feature as masking polygons.
func LoadPolygons(data []byte) ([]Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding polygons: %w", err)
	}

	var ret []Polygon
	for _, f := range fc.Features {
		g := f.Geometry
		if g == nil {
			continue
		}
		switch g.Type {
		case geojson.GeometryPolygon:
			if len(g.Polygon) > 0 {
				ret = appendRing(ret, g.Polygon[0])
			}
		case geojson.GeometryMultiPolygon:
			for _, poly := range g.MultiPolygon {
				if len(poly) > 0 {
					ret = appendRing(ret, poly[0])
				}
			}
		}
	}
	if len(ret) == 0 {
		return nil, ErrNoPolygon
	}
	return ret, nil
}

func appendRing(polygons []Polygon, ring [][]float64) []Polygon {
	if p := NewPolygon(ring); len(p) > 0 {
		return append(polygons, p)
	}
	return polygons
}
