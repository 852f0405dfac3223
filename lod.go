package kriging

// LODBand is one altitude band of the overlay. The cell width used at a
// band is the latitude span of the mask divided by Divisor.
type LODBand struct {
	MinHeight float64 `yaml:"minHeight"`
	Divisor   float64 `yaml:"divisor"`
	MaxLabels int     `yaml:"maxLabels"`
	FontSize  float64 `yaml:"fontSize"`
}

// LODPolicy lists bands from the highest viewpoint down. The last band
// catches every remaining height.
type LODPolicy []LODBand

func DefaultBands() LODPolicy {
	return LODPolicy{
		{MinHeight: 500000, Divisor: 50, MaxLabels: 14, FontSize: 18},
		{MinHeight: 100000, Divisor: 100, MaxLabels: 20, FontSize: 15},
		{MinHeight: 30000, Divisor: 250, MaxLabels: 25, FontSize: 13},
		{MinHeight: 10000, Divisor: 500, MaxLabels: 30, FontSize: 11},
		{MinHeight: 0, Divisor: 1000, MaxLabels: 35, FontSize: 10},
	}
}

// BandFor returns the index of the band covering height, or -1 for an
// empty policy.
func (p LODPolicy) BandFor(height float64) int {
	for i, b := range p {
		if height >= b.MinHeight {
			return i
		}
	}
	return len(p) - 1
}

func (b LODBand) CellWidth(span float64) float64 {
	return span / b.Divisor
}
