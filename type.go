package kriging

import (
	"errors"
	"fmt"
)

type ModelType string

const (
	Gaussian    ModelType = "gaussian"
	Exponential ModelType = "exponential"
	Spherical   ModelType = "spherical"
)

func ParseModel(s string) (ModelType, error) {
	switch m := ModelType(s); m {
	case Gaussian, Exponential, Spherical:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

var (
	ErrUnknownModel      = errors.New("unknown variogram model")
	ErrNotEnoughLags     = errors.New("not enough lag bins")
	ErrSingularMatrix    = errors.New("matrix could not be inverted")
	ErrDegenerateSamples = errors.New("degenerate sample set")
	ErrNoPolygon         = errors.New("no masking polygon")
	ErrDegenerateMask    = errors.New("masking polygons have zero extent")
)

// lag pair: distance, absolute value difference
type DistanceList [][2]float64

func (t DistanceList) Len() int {
	return len(t)
}

func (t DistanceList) Less(i, j int) bool {
	return t[i][0] < t[j][0]
}

func (t DistanceList) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
}
