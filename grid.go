package kriging

import (
	"math"
)

// Grid is a sparse lattice of predictions. Cell (i, j) sits at
// (Xlim[0]+i*Width, Ylim[0]+j*Width) with i in [0, XCount] and j in
// [0, YCount]. Cells outside every masking polygon stay unset.
type Grid struct {
	XCount int
	YCount int
	Xlim   [2]float64
	Ylim   [2]float64
	// Zlim is the sample value range, used for colour normalisation.
	Zlim  [2]float64
	Width float64

	values []float64
	set    []bool
}

func NewEmptyGrid(xlim, ylim, zlim [2]float64, width float64) *Grid {
	g := &Grid{
		XCount: int(math.Ceil((xlim[1] - xlim[0]) / width)),
		YCount: int(math.Ceil((ylim[1] - ylim[0]) / width)),
		Xlim:   xlim,
		Ylim:   ylim,
		Zlim:   zlim,
		Width:  width,
	}
	size := (g.XCount + 1) * (g.YCount + 1)
	g.values = make([]float64, size)
	g.set = make([]bool, size)
	return g
}

// NewGrid evaluates v on every lattice corner that falls inside one of the
// polygons. It returns nil when no polygon has a vertex or width is not
// positive.
func NewGrid(polygons []Polygon, v *Variogram, width float64) *Grid {
	if !(width > 0) {
		return nil
	}
	bbox, ok := boundsOf(polygons)
	if !ok {
		return nil
	}
	xlim := [2]float64{bbox.Min[0], bbox.Max[0]}
	ylim := [2]float64{bbox.Min[1], bbox.Max[1]}
	g := NewEmptyGrid(xlim, ylim, v.Zlim(), width)

	for _, p := range polygons {
		if len(p) == 0 {
			continue
		}
		lb := p.Bounds()
		a := [2]int{
			int(math.Floor(((lb.Min[0] - math.Mod(lb.Min[0]-xlim[0], width)) - xlim[0]) / width)),
			int(math.Ceil(((lb.Max[0] - math.Mod(lb.Max[0]-xlim[1], width)) - xlim[0]) / width)),
		}
		b := [2]int{
			int(math.Floor(((lb.Min[1] - math.Mod(lb.Min[1]-ylim[0], width)) - ylim[0]) / width)),
			int(math.Ceil(((lb.Max[1] - math.Mod(lb.Max[1]-ylim[1], width)) - ylim[0]) / width)),
		}
		a[0], a[1] = clampIndex(a[0], g.XCount), clampIndex(a[1], g.XCount)
		b[0], b[1] = clampIndex(b[0], g.YCount), clampIndex(b[1], g.YCount)

		for i := a[0]; i <= a[1]; i++ {
			for j := b[0]; j <= b[1]; j++ {
				x, y := g.Corner(i, j)
				if p.Contains(x, y) {
					g.Set(i, j, v.Predict(x, y))
				}
			}
		}
	}
	return g
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

func (g *Grid) index(i, j int) int {
	return i*(g.YCount+1) + j
}

func (g *Grid) inside(i, j int) bool {
	return i >= 0 && i <= g.XCount && j >= 0 && j <= g.YCount
}

// Get returns the value of cell (i, j) and whether it is set.
func (g *Grid) Get(i, j int) (float64, bool) {
	if !g.inside(i, j) {
		return 0, false
	}
	k := g.index(i, j)
	return g.values[k], g.set[k]
}

func (g *Grid) Set(i, j int, v float64) {
	k := g.index(i, j)
	g.values[k] = v
	g.set[k] = true
}

// Corner is the coordinate used to populate cell (i, j).
func (g *Grid) Corner(i, j int) (float64, float64) {
	return g.Xlim[0] + float64(i)*g.Width, g.Ylim[0] + float64(j)*g.Width
}

func (g *Grid) Center(i, j int) (float64, float64) {
	return g.Xlim[0] + (float64(i)+0.5)*g.Width, g.Ylim[0] + (float64(j)+0.5)*g.Width
}

// Columns and Rows are the index extents along x and y.
func (g *Grid) Columns() int {
	return g.XCount + 1
}

func (g *Grid) Rows() int {
	return g.YCount + 1
}

// Len counts the populated cells.
func (g *Grid) Len() int {
	n := 0
	for _, s := range g.set {
		if s {
			n++
		}
	}
	return n
}
