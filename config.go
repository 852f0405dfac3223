package kriging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options configures an Overlay and the krigmap tool.
type Options struct {
	Model  ModelType `yaml:"model"`
	Sigma2 float64   `yaml:"sigma2"`
	Alpha  float64   `yaml:"alpha"`

	// ThinCell merges samples sharing a ThinCell-sized cell; 0 disables it.
	ThinCell float64 `yaml:"thinCell"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Opacity is the overlay alpha in (0, 1]. Zero is treated as unset and
	// renders fully opaque.
	Opacity float64  `yaml:"opacity"`
	Colors  []string `yaml:"colors"`
	// Interpolator is nearest, bilinear or hyperbolic.
	Interpolator string `yaml:"interpolator"`

	Labels     bool   `yaml:"labels"`
	LabelColor string `yaml:"labelColor"`

	// CellDivisor sets the cell width of the single-shot render.
	CellDivisor float64   `yaml:"cellDivisor"`
	Bands       LODPolicy `yaml:"bands"`

	// Colormap is the RGBA table used by the recolor worker.
	Colormap [][]int `yaml:"colormap"`
}

func DefaultOptions() Options {
	return Options{
		Model:        Exponential,
		Sigma2:       0,
		Alpha:        100,
		Width:        1024,
		Height:       1024,
		Opacity:      1,
		Colors:       []string{"#006837", "#1a9850", "#66bd63", "#a6d96a", "#d9ef8b", "#ffffbf", "#fee08b", "#fdae61", "#f46d43", "#d73027", "#a50026"},
		Interpolator: NEAREST,
		Labels:       true,
		LabelColor:   "#000000",
		CellDivisor:  1000,
		Bands:        DefaultBands(),
		Colormap:     [][]int{{0, 0, 255, 255}, {0, 255, 0, 255}, {255, 0, 0, 255}},
	}
}

// LoadOptions reads a YAML file over the defaults. A missing file yields
// the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("reading options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing options: %w", err)
	}
	return opts, nil
}

func WriteOptions(opts Options, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating options directory: %w", err)
	}
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("marshaling options: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
