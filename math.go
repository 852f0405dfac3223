package kriging

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func exp(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Exp(x)
}

func pow2(x float64) float64 {
	return x * x
}

func pow3(x float64) float64 {
	return x * x * x
}

func hypot(dx, dy float64) float64 {
	return math.Sqrt(pow2(dx) + pow2(dy))
}

// Values is a plain numeric vector.
type Values []float64

func (v Values) Max() float64 {
	return floats.Max(v)
}

func (v Values) Min() float64 {
	return floats.Min(v)
}

func (v Values) Mean() float64 {
	return stat.Mean(v, nil)
}
