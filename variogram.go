package kriging

import (
	"fmt"
	"math"
	"sort"

	vec3d "github.com/flywave/go3d/float64/vec3"
	log "github.com/sirupsen/logrus"
)

const maxLags = 30

// Variogram is a fitted kriging model. It is immutable once returned by
// Train and is safe for concurrent Predict and Variance calls.
type Variogram struct {
	Model ModelType `json:"model"`

	T []float64 `json:"t"`
	X []float64 `json:"x"`
	Y []float64 `json:"y"`

	Nugget float64 `json:"nugget"`
	Range  float64 `json:"range"`
	Sill   float64 `json:"sill"`
	A      float64 `json:"A"`
	N      int     `json:"n"`

	// K is the inverted, regularised Gram matrix (N×N).
	K []float64 `json:"K"`
	// M is K⁻¹·t, the kriging weight vector.
	M []float64 `json:"M"`

	model KrigingModel
}

type KrigingModel func(h, nugget, range_, sill, A float64) float64

func krigingGaussian(h, nugget, range_, sill, A float64) float64 {
	x := -(1.0 / A) * pow2(h/range_)
	return nugget + ((sill-nugget)/range_)*(1.0-exp(x))
}

func krigingExponential(h, nugget, range_, sill, A float64) float64 {
	x := -(1.0 / A) * (h / range_)
	return nugget + ((sill-nugget)/range_)*(1.0-exp(x))
}

func krigingSpherical(h, nugget, range_, sill, A float64) float64 {
	if h > range_ {
		return nugget + (sill-nugget)/range_
	}
	x := h / range_
	return nugget + ((sill-nugget)/range_)*(1.5*x-0.5*pow3(x))
}

func modelFunc(model ModelType) KrigingModel {
	switch model {
	case Gaussian:
		return krigingGaussian
	case Spherical:
		return krigingSpherical
	default:
		return krigingExponential
	}
}

// shape is the model curve without nugget and sill, used as the second
// column of the least-squares design matrix.
func shape(model ModelType, lag, range_, A float64) float64 {
	switch model {
	case Gaussian:
		return 1.0 - exp(-(1.0/A)*pow2(lag/range_))
	case Spherical:
		return 1.5*(lag/range_) - 0.5*pow3(lag/range_)
	default:
		return 1.0 - exp(-(1.0/A)*lag/range_)
	}
}

// TrainPoints is Train over (x, y, value) triples.
func TrainPoints(pos []vec3d.T, model ModelType, sigma2, alpha float64) (*Variogram, error) {
	t := make([]float64, len(pos))
	x := make([]float64, len(pos))
	y := make([]float64, len(pos))
	for i := range pos {
		x[i], y[i], t[i] = pos[i][0], pos[i][1], pos[i][2]
	}
	return Train(t, x, y, model, sigma2, alpha)
}

// Train fits a variogram of the given model to the samples (x[i], y[i], t[i]).
// sigma2 is added to the Gram matrix diagonal and alpha is the ridge
// strength of the parameter fit.
//
// When fewer than two lag bins can be formed, Train returns a zero-filled
// model together with ErrNotEnoughLags. Callers are expected to reject
// tiny or coincident sample sets before calling; a zero range is not
// guarded here and yields NaN parameters.
func Train(t, x, y []float64, model ModelType, sigma2, alpha float64) (*Variogram, error) {
	if _, err := ParseModel(string(model)); err != nil {
		return nil, err
	}
	t = append([]float64(nil), t...)
	x = append([]float64(nil), x...)
	y = append([]float64(nil), y...)
	v := &Variogram{
		Model: model,
		T:     t,
		X:     x,
		Y:     y,
		A:     1.0 / 3.0,
		model: modelFunc(model),
	}

	n := len(t)
	pairs := (n*n - n) / 2
	if pairs == 0 {
		return v, ErrNotEnoughLags
	}

	distance := make(DistanceList, 0, pairs)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			distance = append(distance, [2]float64{
				hypot(x[i]-x[j], y[i]-y[j]),
				math.Abs(t[i] - t[j]),
			})
		}
	}
	sort.Stable(distance)
	v.Range = distance[pairs-1][0]

	lags := pairs
	if lags > maxLags {
		lags = maxLags
	}
	tolerance := v.Range / float64(lags)

	lag := make([]float64, lags)
	semi := make([]float64, lags)
	l := 0
	if pairs <= maxLags {
		for ; l < lags; l++ {
			lag[l] = distance[l][0]
			semi[l] = distance[l][1]
		}
	} else {
		for i, j := 0, 0; i < lags && j < pairs; i++ {
			k := 0
			for j < pairs && distance[j][0] <= float64(i+1)*tolerance {
				lag[l] += distance[j][0]
				semi[l] += distance[j][1]
				j++
				k++
			}
			if k > 0 {
				lag[l] /= float64(k)
				semi[l] /= float64(k)
				l++
			}
		}
	}
	if l < 2 {
		log.WithFields(log.Fields{
			"samples": n,
			"bins":    l,
		}).Warn("kriging: not enough lag bins, returning unfit model")
		return &Variogram{Model: model, T: t, X: x, Y: y, model: v.model}, ErrNotEnoughLags
	}

	v.Range = lag[l-1] - lag[0]
	X := NewMatrix(l, 2, nil)
	Y := NewMatrix(l, 1, nil)
	for i := 0; i < l; i++ {
		X.Data[i*2] = 1
		X.Data[i*2+1] = shape(model, lag[i], v.Range, v.A)
		Y.Data[i] = semi[i]
	}

	Xt := X.Transpose()
	Z, ok := Invert(Xt.Multiply(X).Add(Diag(1/alpha, 2)))
	if !ok {
		return nil, fmt.Errorf("variogram fit: %w", ErrSingularMatrix)
	}
	W := Z.Multiply(Xt).Multiply(Y)

	v.Nugget = W.Data[0]
	v.Sill = W.Data[1]*v.Range + v.Nugget
	v.N = n

	K := NewMatrix(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			K.Data[i*n+j] = v.model(hypot(x[i]-x[j], y[i]-y[j]), v.Nugget, v.Range, v.Sill, v.A)
			K.Data[j*n+i] = K.Data[i*n+j]
		}
		K.Data[i*n+i] = v.model(0, v.Nugget, v.Range, v.Sill, v.A)
	}

	C, ok := Invert(K.Add(Diag(sigma2, n)))
	if !ok {
		return nil, fmt.Errorf("gram matrix: %w", ErrSingularMatrix)
	}
	v.K = C.Data
	v.M = C.Multiply(NewMatrix(n, 1, t)).Data

	log.WithFields(log.Fields{
		"model":  model,
		"n":      n,
		"bins":   l,
		"mean":   Values(t).Mean(),
		"nugget": v.Nugget,
		"range":  v.Range,
		"sill":   v.Sill,
	}).Debug("kriging: variogram trained")
	return v, nil
}

// Fitted reports whether v carries trained weights.
func (v *Variogram) Fitted() bool {
	return v != nil && v.N > 0 && len(v.M) == v.N
}

func (v *Variogram) covariances(x, y float64) []float64 {
	k := make([]float64, v.N)
	for i := 0; i < v.N; i++ {
		k[i] = v.model(hypot(x-v.X[i], y-v.Y[i]), v.Nugget, v.Range, v.Sill, v.A)
	}
	return k
}

// Predict returns the kriging estimate at (x, y).
func (v *Variogram) Predict(x, y float64) float64 {
	var s float64
	for i, c := range v.covariances(x, y) {
		s += c * v.M[i]
	}
	return s
}

// Variance returns the prediction variance at (x, y). It grows away from
// the samples.
func (v *Variogram) Variance(x, y float64) float64 {
	k := NewMatrix(1, v.N, v.covariances(x, y))
	K := NewMatrix(v.N, v.N, v.K)
	kt := NewMatrix(v.N, 1, k.Data)
	return v.model(0, v.Nugget, v.Range, v.Sill, v.A) + k.Multiply(K).Multiply(kt).Data[0]
}

func Predict(x, y float64, v *Variogram) float64 {
	return v.Predict(x, y)
}

func Variance(x, y float64, v *Variogram) float64 {
	return v.Variance(x, y)
}

// Zlim is the value range of the training samples.
func (v *Variogram) Zlim() [2]float64 {
	if len(v.T) == 0 {
		return [2]float64{}
	}
	return [2]float64{Values(v.T).Min(), Values(v.T).Max()}
}
