package kriging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	NEAREST    = "nearest"
	BILINEAR   = "bilinear"
	HYPERBOLIC = "hyperbolic"
)

// ColorRamp is a discrete colour table. The first entry doubles as the
// no-data colour.
type ColorRamp []color.RGBA

func ParseRamp(hex []string) (ColorRamp, error) {
	ramp := make(ColorRamp, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color ramp: %w", err)
		}
		r, g, b := c.RGB255()
		ramp = append(ramp, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return ramp, nil
}

// WithOpacity returns a copy of the ramp with alpha set to opacity (0..1).
// Colours are premultiplied as image.RGBA expects.
func (r ColorRamp) WithOpacity(opacity float64) ColorRamp {
	if opacity >= 1 {
		return r
	}
	if opacity < 0 {
		opacity = 0
	}
	out := make(ColorRamp, len(r))
	for i, c := range r {
		out[i] = color.RGBA{
			R: uint8(math.Round(float64(c.R) * opacity)),
			G: uint8(math.Round(float64(c.G) * opacity)),
			B: uint8(math.Round(float64(c.B) * opacity)),
			A: uint8(math.Round(255 * opacity)),
		}
	}
	return out
}

// Index maps a value normalised to [0, 1] onto a ramp entry.
func (r ColorRamp) Index(z float64) int {
	if z < 0 || math.IsNaN(z) {
		z = 0
	}
	if z > 1 {
		z = 1
	}
	ci := int(math.Floor(z * float64(len(r)-1)))
	if ci > len(r)-1 {
		ci = len(r) - 1
	}
	return ci
}

type Interpolator interface {
	// Interpolate blends the four corner values of a cell; x and y are the
	// fractional offsets from the south-west corner.
	Interpolate(southWest, southEast, northWest, northEast, x, y float64) float64
}

func Lerp(value1, value2, amount float64) float64 { return value1 + (value2-value1)*amount }

type BilinearInterpolator struct{}

func (BilinearInterpolator) Interpolate(sw, se, nw, ne, x, y float64) float64 {
	return Lerp(Lerp(sw, se, x), Lerp(nw, ne, x), y)
}

type HyperbolicInterpolator struct{}

func (HyperbolicInterpolator) Interpolate(sw, se, nw, ne, x, y float64) float64 {
	a00 := sw
	a10 := se - sw
	a01 := nw - sw
	a11 := sw - se - nw + ne
	return a00 + a10*x + a01*y + a11*x*y
}

// NewInterpolator resolves a smoothing mode name; nearest and unknown
// names return nil.
func NewInterpolator(name string) Interpolator {
	switch name {
	case BILINEAR:
		return BilinearInterpolator{}
	case HYPERBOLIC:
		return HyperbolicInterpolator{}
	}
	return nil
}

// Rasterize renders g into a new w×h image covering the display window
// xlim × ylim.
func Rasterize(g *Grid, xlim, ylim [2]float64, ramp ColorRamp, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Plot(img, g, xlim, ylim, ramp, nil)
	return img
}

// Plot fills every pixel of img. Each pixel is mapped back to a coordinate
// inside the display window (row 0 is the northern edge), then to the grid
// cell containing it. Pixels without a populated cell get ramp[0]. With a
// non-nil interp, pixels whose four surrounding cells are populated are
// blended instead of taking the containing cell's value.
func Plot(img *image.RGBA, g *Grid, xlim, ylim [2]float64, ramp ColorRamp, interp Interpolator) {
	if len(ramp) == 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rangeX := xlim[1] - xlim[0]
	rangeY := ylim[1] - ylim[0]

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := ramp[0]
			if g != nil {
				lon := xlim[0] + (float64(px)/float64(w))*rangeX
				lat := ylim[1] - (float64(py)/float64(h))*rangeY
				if v, ok := g.sample(lon, lat, interp); ok {
					c = ramp[ramp.Index(g.normalize(v))]
				}
			}
			o := img.PixOffset(b.Min.X+px, b.Min.Y+py)
			img.Pix[o] = c.R
			img.Pix[o+1] = c.G
			img.Pix[o+2] = c.B
			img.Pix[o+3] = c.A
		}
	}
}

func (g *Grid) normalize(v float64) float64 {
	rangeZ := g.Zlim[1] - g.Zlim[0]
	if rangeZ == 0 {
		return 0
	}
	return (v - g.Zlim[0]) / rangeZ
}

func (g *Grid) sample(x, y float64, interp Interpolator) (float64, bool) {
	gi := (x - g.Xlim[0]) / g.Width
	gj := (y - g.Ylim[0]) / g.Width
	i := int(math.Floor(gi))
	j := int(math.Floor(gj))
	v, ok := g.Get(i, j)
	if !ok || interp == nil {
		return v, ok
	}
	se, okse := g.Get(i+1, j)
	nw, oknw := g.Get(i, j+1)
	ne, okne := g.Get(i+1, j+1)
	if !okse || !oknw || !okne {
		return v, ok
	}
	return interp.Interpolate(v, se, nw, ne, gi-float64(i), gj-float64(j)), true
}
