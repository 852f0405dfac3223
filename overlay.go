package kriging

import (
	"fmt"
	"image"
	"image/color"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
)

// ImageSink receives every raster the overlay produces, typically as a
// texture for a draped polygon.
type ImageSink interface {
	SetImage(img *image.RGBA)
}

type ImageSinkFunc func(img *image.RGBA)

func (f ImageSinkFunc) SetImage(img *image.RGBA) { f(img) }

// Overlay keeps one trained variogram and re-rasterizes it whenever the
// viewing height crosses into another LOD band. It is not safe for
// concurrent use.
type Overlay struct {
	opts       Options
	ramp       ColorRamp
	interp     Interpolator
	labelColor color.Color
	sink       ImageSink

	masks    []Polygon
	polygons []Polygon
	xlim     [2]float64
	ylim     [2]float64

	variogram *Variogram
	band      int
	grid      *Grid
	image     *image.RGBA
}

// NewOverlay trains a variogram on samples ((x, y, value) triples) and
// prepares the overlay. When polygons is empty the convex hull of the
// samples is used as the mask. sink may be nil.
func NewOverlay(samples []vec3d.T, polygons []Polygon, opts Options, sink ImageSink) (*Overlay, error) {
	ramp, err := ParseRamp(opts.Colors)
	if err != nil {
		return nil, err
	}
	if len(ramp) == 0 {
		return nil, fmt.Errorf("color ramp: no colors")
	}
	labelColor, err := colorful.Hex(opts.LabelColor)
	if err != nil {
		return nil, fmt.Errorf("label color: %w", err)
	}
	if opts.Opacity <= 0 {
		opts.Opacity = 1
	}
	if len(opts.Bands) == 0 {
		opts.Bands = DefaultBands()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1024, 1024
	}
	if opts.CellDivisor <= 0 {
		opts.CellDivisor = 1000
	}

	o := &Overlay{
		opts:       opts,
		ramp:       ramp.WithOpacity(opts.Opacity),
		interp:     NewInterpolator(opts.Interpolator),
		labelColor: labelColor,
		sink:       sink,
		masks:      polygons,
		band:       -1,
	}
	if err := o.Retrain(samples); err != nil {
		return nil, err
	}
	return o, nil
}

// Retrain replaces the trained model. The next OnViewportChanged call
// always renders.
func (o *Overlay) Retrain(samples []vec3d.T) error {
	if o.opts.ThinCell > 0 {
		thinned, err := ThinSamples(samples, o.opts.ThinCell)
		if err != nil {
			return err
		}
		samples = thinned
	}
	if err := validateSamples(samples); err != nil {
		return err
	}

	polygons := o.masks
	if len(polygons) == 0 {
		hull := NewConvex(samples).Polygon()
		if len(hull) < 3 {
			return ErrNoPolygon
		}
		polygons = []Polygon{hull}
	}

	v, err := TrainPoints(samples, o.opts.Model, o.opts.Sigma2, o.opts.Alpha)
	if err != nil {
		return fmt.Errorf("training variogram: %w", err)
	}

	bbox, ok := boundsOf(polygons)
	if !ok {
		return ErrNoPolygon
	}
	if !(bbox.Max[0] > bbox.Min[0]) || !(bbox.Max[1] > bbox.Min[1]) {
		return fmt.Errorf("%w: %v x %v", ErrDegenerateMask,
			[2]float64{bbox.Min[0], bbox.Max[0]}, [2]float64{bbox.Min[1], bbox.Max[1]})
	}
	o.polygons = polygons
	o.xlim = [2]float64{bbox.Min[0], bbox.Max[0]}
	o.ylim = [2]float64{bbox.Min[1], bbox.Max[1]}
	o.variogram = v
	o.band = -1
	o.grid = nil
	o.image = nil
	return nil
}

func validateSamples(samples []vec3d.T) error {
	if len(samples) < 4 {
		return fmt.Errorf("%w: %d samples, need at least 4", ErrDegenerateSamples, len(samples))
	}
	min, max, _ := minMaxVec3(samples)
	if min[0] == max[0] && min[1] == max[1] {
		return fmt.Errorf("%w: all samples share one location", ErrDegenerateSamples)
	}
	return nil
}

// OnViewportChanged selects the LOD band for height and, when it differs
// from the band last applied, rebuilds the grid and raster and hands the
// image to the sink. It reports whether a new image was produced.
func (o *Overlay) OnViewportChanged(height float64) (bool, error) {
	if o.variogram == nil {
		return false, nil
	}
	band := o.opts.Bands.BandFor(height)
	if band == o.band {
		return false, nil
	}
	b := o.opts.Bands[band]
	width := b.CellWidth(o.ylim[1] - o.ylim[0])

	img, grid, err := o.render(width, LabelStyle{
		MaxLabels:  b.MaxLabels,
		FontSize:   b.FontSize,
		Color:      o.labelColor,
		CellCenter: true,
	})
	if err != nil {
		return false, err
	}

	log.WithFields(log.Fields{
		"height":  height,
		"band":    band,
		"from":    o.band,
		"width":   width,
		"columns": grid.Columns(),
		"rows":    grid.Rows(),
	}).Debug("kriging: lod band changed")

	o.band = band
	o.grid = grid
	o.image = img
	if o.sink != nil {
		o.sink.SetImage(img)
	}
	return true, nil
}

// Render produces the single-shot raster at the configured cell divisor,
// with labels anchored on cell corners. It leaves the LOD state untouched.
func (o *Overlay) Render() (*image.RGBA, error) {
	if o.variogram == nil {
		return nil, fmt.Errorf("overlay cleared")
	}
	width := (o.ylim[1] - o.ylim[0]) / o.opts.CellDivisor
	img, _, err := o.render(width, LabelStyle{
		MaxLabels: defaultMaxLabels,
		FontSize:  defaultFontSize,
		Color:     o.labelColor,
	})
	return img, err
}

func (o *Overlay) render(width float64, style LabelStyle) (*image.RGBA, *Grid, error) {
	grid := NewGrid(o.polygons, o.variogram, width)
	if grid == nil {
		return nil, nil, ErrNoPolygon
	}
	img := image.NewRGBA(image.Rect(0, 0, o.opts.Width, o.opts.Height))
	Plot(img, grid, o.xlim, o.ylim, o.ramp, o.interp)
	if o.opts.Labels {
		if err := DrawLabels(img, grid, o.xlim, o.ylim, style); err != nil {
			return nil, nil, err
		}
	}
	return img, grid, nil
}

// Clear drops the trained model and the last raster.
func (o *Overlay) Clear() {
	o.variogram = nil
	o.grid = nil
	o.image = nil
	o.band = -1
}

func (o *Overlay) Band() int {
	return o.band
}

func (o *Overlay) Variogram() *Variogram {
	return o.variogram
}

func (o *Overlay) Grid() *Grid {
	return o.grid
}

func (o *Overlay) Image() *image.RGBA {
	return o.image
}

// Bounds is the display window derived from the masking polygons.
func (o *Overlay) Bounds() (xlim, ylim [2]float64) {
	return o.xlim, o.ylim
}
