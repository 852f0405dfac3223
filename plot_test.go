package kriging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func blackWhite(t *testing.T) ColorRamp {
	ramp, err := ParseRamp([]string{"#000000", "#ffffff"})
	assert.NoError(t, err)
	return ramp
}

func TestParseRamp(t *testing.T) {
	a := assert.New(t)

	ramp, err := ParseRamp([]string{"#ff0000", "#00ff00"})
	a.NoError(err)
	a.Equal(ColorRamp{{255, 0, 0, 255}, {0, 255, 0, 255}}, ramp)

	_, err = ParseRamp([]string{"red"})
	a.Error(err)
}

func TestRampIndex(t *testing.T) {
	a := assert.New(t)

	ramp := make(ColorRamp, 11)
	a.Equal(0, ramp.Index(0))
	a.Equal(5, ramp.Index(0.55))
	a.Equal(10, ramp.Index(1))
	a.Equal(10, ramp.Index(2))
	a.Equal(0, ramp.Index(-1))
	a.Equal(0, ramp.Index(math.NaN()))
}

func TestWithOpacity(t *testing.T) {
	a := assert.New(t)

	ramp := ColorRamp{white}
	a.Equal(ramp, ramp.WithOpacity(1))
	a.Equal(ColorRamp{{128, 128, 128, 128}}, ramp.WithOpacity(0.5))
	a.Equal(white, ramp[0])
}

func TestRasterize(t *testing.T) {
	a := assert.New(t)

	g := NewEmptyGrid([2]float64{0, 1}, [2]float64{0, 1}, [2]float64{0, 10}, 1)
	g.Set(0, 0, 10)

	img := Rasterize(g, g.Xlim, g.Ylim, blackWhite(t), 4, 4)
	for px := 0; px < 4; px++ {
		// Row 0 maps to the northern edge, which falls in the unset row j = 1.
		a.Equal(black, img.RGBAAt(px, 0))
		for py := 1; py < 4; py++ {
			a.Equal(white, img.RGBAAt(px, py), "(%d, %d)", px, py)
		}
	}

	g.Set(0, 0, 0)
	img = Rasterize(g, g.Xlim, g.Ylim, blackWhite(t), 4, 4)
	a.Equal(black, img.RGBAAt(2, 2))
}

func TestRasterizeFlatField(t *testing.T) {
	a := assert.New(t)

	g := NewEmptyGrid([2]float64{0, 1}, [2]float64{0, 1}, [2]float64{5, 5}, 1)
	g.Set(0, 0, 5)

	img := Rasterize(g, g.Xlim, g.Ylim, blackWhite(t), 2, 2)
	a.Equal(black, img.RGBAAt(1, 1))
}

func TestPlotNilGrid(t *testing.T) {
	a := assert.New(t)

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	Plot(img, nil, [2]float64{0, 1}, [2]float64{0, 1}, ColorRamp{white, black}, nil)
	for px := 0; px < 3; px++ {
		for py := 0; py < 3; py++ {
			a.Equal(white, img.RGBAAt(px, py))
		}
	}
}

func TestSampleInterpolated(t *testing.T) {
	a := assert.New(t)

	g := NewEmptyGrid([2]float64{0, 1}, [2]float64{0, 1}, [2]float64{0, 10}, 1)
	g.Set(0, 0, 0)
	g.Set(1, 0, 10)
	g.Set(0, 1, 0)
	g.Set(1, 1, 10)

	v, ok := g.sample(0.5, 0.5, nil)
	a.True(ok)
	a.Equal(0.0, v)

	v, ok = g.sample(0.5, 0.5, BilinearInterpolator{})
	a.True(ok)
	a.InDelta(5, v, 1e-12)

	v, ok = g.sample(0.25, 0.75, HyperbolicInterpolator{})
	a.True(ok)
	a.InDelta(2.5, v, 1e-12)

	a.Nil(NewInterpolator(NEAREST))
	a.IsType(BilinearInterpolator{}, NewInterpolator(BILINEAR))
	a.IsType(HyperbolicInterpolator{}, NewInterpolator(HYPERBOLIC))
}
