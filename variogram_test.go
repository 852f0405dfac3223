package kriging

import (
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
)

func squareSamples() []vec3d.T {
	return []vec3d.T{
		{0, 0, 10},
		{1, 0, 20},
		{0, 1, 15},
		{1, 1, 25},
	}
}

func latticeSamples() []vec3d.T {
	var pos []vec3d.T
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			x, y := float64(i), float64(j)
			pos = append(pos, vec3d.T{x, y, 3*x + 2*y + x*y})
		}
	}
	return pos
}

func TestTrainSquare(t *testing.T) {
	a := assert.New(t)

	v, err := TrainPoints(squareSamples(), Exponential, 0, 100)
	a.NoError(err)
	a.True(v.Fitted())
	a.Equal(4, v.N)
	a.InDelta(1.0/3.0, v.A, 1e-12)
	a.InDelta(0.41421356, v.Range, 1e-6)
	a.Len(v.K, 16)
	a.Len(v.M, 4)

	for _, p := range squareSamples() {
		a.InDelta(p[2], v.Predict(p[0], p[1]), 1e-6)
		a.InDelta(p[2], Predict(p[0], p[1], v), 1e-6)
	}

	// Variance at a sample is model(0) + K[i][i].
	a.InDelta(2*v.Nugget, v.Variance(0, 0), 1e-6)
	a.InDelta(v.Variance(0, 0), Variance(0, 0, v), 1e-12)
	a.Greater(v.Variance(10, 10), v.Variance(0, 0))

	a.Equal([2]float64{10, 25}, v.Zlim())
}

func TestTrainBinned(t *testing.T) {
	for _, model := range []ModelType{Gaussian, Exponential, Spherical} {
		t.Run(string(model), func(t *testing.T) {
			a := assert.New(t)

			pos := latticeSamples()
			v, err := TrainPoints(pos, model, 0, 100)
			a.NoError(err)
			a.Equal(9, v.N)
			for _, p := range pos {
				a.InDelta(p[2], v.Predict(p[0], p[1]), 1e-6)
			}
		})
	}
}

func TestTrainDoesNotRetainInput(t *testing.T) {
	a := assert.New(t)

	x := []float64{0, 1, 0, 1}
	y := []float64{0, 0, 1, 1}
	z := []float64{10, 20, 15, 25}
	v, err := Train(z, x, y, Exponential, 0, 100)
	a.NoError(err)

	before := v.Predict(0.5, 0.5)
	a.Greater(before, 10.0)
	a.Less(before, 25.0)
	z[0], x[0] = 1000, 1000
	a.Equal(before, v.Predict(0.5, 0.5))
	a.Equal(10.0, v.T[0])
}

func TestTrainNotEnoughLags(t *testing.T) {
	a := assert.New(t)

	v, err := Train([]float64{1}, []float64{0}, []float64{0}, Spherical, 0, 100)
	a.ErrorIs(err, ErrNotEnoughLags)
	a.False(v.Fitted())

	v, err = Train([]float64{1, 2}, []float64{0, 1}, []float64{0, 0}, Spherical, 0, 100)
	a.ErrorIs(err, ErrNotEnoughLags)
	a.False(v.Fitted())
	a.Zero(v.Nugget)
	a.Zero(v.Sill)
}

func TestTrainUnknownModel(t *testing.T) {
	a := assert.New(t)

	_, err := Train([]float64{1, 2}, []float64{0, 1}, []float64{0, 0}, "linear", 0, 100)
	a.ErrorIs(err, ErrUnknownModel)

	m, err := ParseModel("gaussian")
	a.NoError(err)
	a.Equal(Gaussian, m)
}

func TestModels(t *testing.T) {
	a := assert.New(t)

	for _, f := range []KrigingModel{krigingGaussian, krigingExponential, krigingSpherical} {
		a.Equal(2.0, f(0, 2, 1, 5, 1.0/3.0))
		a.Greater(f(0.5, 2, 1, 5, 1.0/3.0), 2.0)
	}
	a.Equal(5.0, krigingSpherical(2, 2, 1, 5, 1.0/3.0))
}
