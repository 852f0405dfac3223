package kriging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func spd() *Matrix {
	return NewMatrix(3, 3, []float64{
		4, 2, 0.6,
		2, 5, 1,
		0.6, 1, 3,
	})
}

func assertIdentity(a *assert.Assertions, m *Matrix) {
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			a.InDelta(want, m.At(i, j), 1e-9, "(%d, %d)", i, j)
		}
	}
}

func TestCholInverse(t *testing.T) {
	a := assert.New(t)

	m := spd()
	inv := m.Clone()
	a.True(inv.Chol())
	inv.Chol2Inv()

	assertIdentity(a, m.Multiply(inv))

	var ref mat.Dense
	a.NoError(ref.Inverse(mat.NewDense(m.Rows, m.Cols, m.Data)))
	a.True(mat.EqualApprox(&ref, mat.NewDense(inv.Rows, inv.Cols, inv.Data), 1e-9))
}

func TestSolveMatchesChol(t *testing.T) {
	a := assert.New(t)

	c := spd()
	a.True(c.Chol())
	c.Chol2Inv()

	s := spd()
	a.True(s.Solve())

	a.InDeltaSlice(c.Data, s.Data, 1e-9)
}

func TestCholRejectsIndefinite(t *testing.T) {
	a := assert.New(t)

	m := NewMatrix(2, 2, []float64{0, 1, 1, 0})
	a.False(m.Chol())
}

func TestInvertFallback(t *testing.T) {
	a := assert.New(t)

	m := NewMatrix(2, 2, []float64{0, 1, 1, 0})
	inv, ok := Invert(m)
	a.True(ok)
	a.Equal([]float64{0, 1, 1, 0}, inv.Data)

	_, ok = Invert(NewMatrix(2, 2, []float64{1, 2, 2, 4}))
	a.False(ok)
}

func TestMatrixOps(t *testing.T) {
	a := assert.New(t)

	m := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	mt := m.Transpose()
	a.Equal(3, mt.Rows)
	a.Equal(2, mt.Cols)
	a.Equal([]float64{1, 4, 2, 5, 3, 6}, mt.Data)

	a.Equal([]float64{14, 32, 32, 77}, m.Multiply(mt).Data)
	a.Equal([]float64{2, 0, 0, 2}, Diag(1, 2).Add(Diag(1, 2)).Data)

	c := m.Clone()
	c.Scale(2)
	a.Equal([]float64{2, 4, 6, 8, 10, 12}, c.Data)
	a.Equal(1.0, m.At(0, 0))
}
