package kriging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	defaultMaxLabels = 35
	defaultFontSize  = 11
)

// LabelStyle controls value annotations drawn over a raster.
type LabelStyle struct {
	// MaxLabels caps the labels per axis; denser grids are subsampled.
	MaxLabels int
	// FontSize is in pixels.
	FontSize float64
	Color    color.Color
	// CellCenter anchors labels at cell centres instead of the corners
	// used to populate the grid.
	CellCenter bool
}

func DefaultLabelStyle() LabelStyle {
	return LabelStyle{
		MaxLabels: defaultMaxLabels,
		FontSize:  defaultFontSize,
		Color:     color.Black,
	}
}

var (
	labelFontOnce sync.Once
	labelFont     *opentype.Font
	labelFontErr  error
)

func newLabelFace(size float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, labelFontErr
	}
	return opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// DrawLabels writes the populated cell values of g, formatted with one
// decimal, centred on their anchor points in img. Labels whose anchor lies
// outside the display window are skipped.
func DrawLabels(img *image.RGBA, g *Grid, xlim, ylim [2]float64, style LabelStyle) error {
	if g == nil {
		return nil
	}
	n, m := g.Columns(), g.Rows()
	if n == 0 || m == 0 {
		return nil
	}
	maxLabels := style.MaxLabels
	if maxLabels <= 0 {
		maxLabels = defaultMaxLabels
	}
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	col := style.Color
	if col == nil {
		col = color.Black
	}

	face, err := newLabelFace(size)
	if err != nil {
		return fmt.Errorf("label face: %w", err)
	}
	defer face.Close()

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rangeX := xlim[1] - xlim[0]
	rangeY := ylim[1] - ylim[0]
	stepI := max(1, n/maxLabels)
	stepJ := max(1, m/maxLabels)

	metrics := face.Metrics()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
	for i := 0; i < n; i += stepI {
		for j := 0; j < m; j += stepJ {
			val, ok := g.Get(i, j)
			if !ok {
				continue
			}
			lng, lat := g.Corner(i, j)
			if style.CellCenter {
				lng, lat = g.Center(i, j)
			}
			px := (lng - xlim[0]) / rangeX * w
			py := (ylim[1] - lat) / rangeY * h
			if px < 0 || px > w || py < 0 || py > h {
				continue
			}
			text := strconv.FormatFloat(val, 'f', 1, 64)
			adv := d.MeasureString(text)
			d.Dot = fixed.Point26_6{
				X: fixed.Int26_6(px*64) - adv/2 + fixed.I(b.Min.X),
				Y: fixed.Int26_6(py*64) + (metrics.Ascent-metrics.Descent)/2 + fixed.I(b.Min.Y),
			}
			d.DrawString(text)
		}
	}
	return nil
}
