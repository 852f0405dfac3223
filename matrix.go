package kriging

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Matrix is a dense row-major matrix. Operations do not validate
// dimensions; mismatched shapes are a caller bug.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

func NewMatrix(rows, cols int, data []float64) *Matrix {
	if data == nil {
		data = make([]float64, rows*cols)
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data}
}

func Diag(c float64, n int) *Matrix {
	z := NewMatrix(n, n, nil)
	for i := 0; i < n; i++ {
		z.Data[i*n+i] = c
	}
	return z
}

func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

func (m *Matrix) Clone() *Matrix {
	d := make([]float64, len(m.Data))
	copy(d, m.Data)
	return &Matrix{Rows: m.Rows, Cols: m.Cols, Data: d}
}

func (m *Matrix) Transpose() *Matrix {
	n, k := m.Rows, m.Cols
	z := NewMatrix(k, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			z.Data[j*n+i] = m.Data[i*k+j]
		}
	}
	return z
}

// Scale multiplies m by c in place.
func (m *Matrix) Scale(c float64) {
	for i := range m.Data {
		m.Data[i] *= c
	}
}

func (m *Matrix) Add(o *Matrix) *Matrix {
	z := NewMatrix(m.Rows, m.Cols, nil)
	for i := range z.Data {
		z.Data[i] = m.Data[i] + o.Data[i]
	}
	return z
}

func (m *Matrix) Multiply(o *Matrix) *Matrix {
	n, k, p := m.Rows, m.Cols, o.Cols
	z := NewMatrix(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			var s float64
			for l := 0; l < k; l++ {
				s += m.Data[i*k+l] * o.Data[l*p+j]
			}
			z.Data[i*p+j] = s
		}
	}
	return z
}

// Chol replaces the lower triangle of the square matrix m with its
// Cholesky factor. It reports false as soon as a pivot is not positive,
// in which case m is left partially overwritten.
func (m *Matrix) Chol() bool {
	n := m.Rows
	x := m.Data
	p := make([]float64, n)
	for i := 0; i < n; i++ {
		p[i] = x[i*n+i]
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			p[i] -= x[i*n+j] * x[i*n+j]
		}
		if p[i] <= 0 {
			return false
		}
		p[i] = math.Sqrt(p[i])
		for j := i + 1; j < n; j++ {
			for k := 0; k < i; k++ {
				x[j*n+i] -= x[j*n+k] * x[i*n+k]
			}
			x[j*n+i] /= p[i]
		}
	}
	for i := 0; i < n; i++ {
		x[i*n+i] = p[i]
	}
	return true
}

// Chol2Inv turns a matrix factored by Chol into the inverse of the
// original matrix, in place.
func (m *Matrix) Chol2Inv() {
	n := m.Rows
	x := m.Data
	for i := 0; i < n; i++ {
		x[i*n+i] = 1 / x[i*n+i]
		for j := i + 1; j < n; j++ {
			var sum float64
			for k := i; k < j; k++ {
				sum -= x[j*n+k] * x[k*n+i]
			}
			x[j*n+i] = sum / x[j*n+j]
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x[i*n+j] = 0
		}
	}
	for i := 0; i < n; i++ {
		x[i*n+i] *= x[i*n+i]
		for k := i + 1; k < n; k++ {
			x[i*n+i] += x[k*n+i] * x[k*n+i]
		}
		for j := i + 1; j < n; j++ {
			for k := j; k < n; k++ {
				x[i*n+j] += x[k*n+i] * x[k*n+j]
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			x[i*n+j] = x[j*n+i]
		}
	}
}

// Solve inverts m in place by Gauss-Jordan elimination with full
// pivoting. It fails only on an exactly zero pivot.
func (m *Matrix) Solve() bool {
	n := m.Rows
	x := m.Data
	indxc := make([]int, n)
	indxr := make([]int, n)
	ipiv := make([]int, n)
	var irow, icol int

	for i := 0; i < n; i++ {
		big := 0.0
		for j := 0; j < n; j++ {
			if ipiv[j] == 1 {
				continue
			}
			for k := 0; k < n; k++ {
				if ipiv[k] == 0 && math.Abs(x[j*n+k]) >= big {
					big = math.Abs(x[j*n+k])
					irow = j
					icol = k
				}
			}
		}
		ipiv[icol]++

		if irow != icol {
			for l := 0; l < n; l++ {
				x[irow*n+l], x[icol*n+l] = x[icol*n+l], x[irow*n+l]
			}
		}
		indxr[i] = irow
		indxc[i] = icol

		if x[icol*n+icol] == 0 {
			return false
		}

		pivinv := 1 / x[icol*n+icol]
		x[icol*n+icol] = 1
		for l := 0; l < n; l++ {
			x[icol*n+l] *= pivinv
		}

		for ll := 0; ll < n; ll++ {
			if ll == icol {
				continue
			}
			dum := x[ll*n+icol]
			x[ll*n+icol] = 0
			for l := 0; l < n; l++ {
				x[ll*n+l] -= x[icol*n+l] * dum
			}
		}
	}
	for l := n - 1; l >= 0; l-- {
		if indxr[l] == indxc[l] {
			continue
		}
		for k := 0; k < n; k++ {
			x[k*n+indxr[l]], x[k*n+indxc[l]] = x[k*n+indxc[l]], x[k*n+indxr[l]]
		}
	}
	return true
}

// Invert takes ownership of m and returns its inverse. Cholesky is tried
// first on m itself; since a failed factorization leaves m mangled, the
// Gauss-Jordan fallback runs on a copy taken beforehand. m must not be
// used after the call.
func Invert(m *Matrix) (*Matrix, bool) {
	c := m.Clone()
	if m.Chol() {
		m.Chol2Inv()
		return m, true
	}
	log.WithFields(log.Fields{
		"n": m.Rows,
	}).Debug("kriging: cholesky failed, falling back to gauss-jordan")
	if c.Solve() {
		return c, true
	}
	return nil, false
}
