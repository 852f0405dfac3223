package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	kriging "github.com/flywave/go-kriging-overlay"
	"github.com/flywave/go-kriging-overlay/recolor"

	log "github.com/sirupsen/logrus"
)

var (
	samplesPath = flag.String("samples", "", "GeoJSON feature collection with sample points")
	maskPath    = flag.String("mask", "", "GeoJSON feature collection with masking polygons (default: convex hull of the samples)")
	configPath  = flag.String("config", "krigmap.yaml", "YAML options file")
	valueKey    = flag.String("value", "value", "feature property holding the sample value")
	heights     = flag.String("heights", "1000000,200000,50000,15000,2000", "comma separated camera heights to replay")
	outDir      = flag.String("out", "out", "output directory")
	single      = flag.Bool("render", false, "write one full-resolution render instead of replaying heights")
	recolorPath = flag.String("recolor", "", "recolor this PNG with the configured colormap and exit")
	writeConfig = flag.Bool("write-config", false, "write the default options to -config and exit")
	verbose     = flag.Bool("v", false, "debug logging")
)

func init() {
	flag.Parse()

	log.SetLevel(log.InfoLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	if *writeConfig {
		if err := kriging.WriteOptions(kriging.DefaultOptions(), *configPath); err != nil {
			log.Fatalf("Failed to write options: %v", err)
		}
		return
	}

	opts, err := kriging.LoadOptions(*configPath)
	if err != nil {
		log.Fatalf("Failed to load options: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if *recolorPath != "" {
		if err := runRecolor(*recolorPath, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *samplesPath == "" {
		flag.Usage()
		os.Exit(1)
	}
	if err := runOverlay(opts); err != nil {
		log.Fatal(err)
	}
}

func runOverlay(opts kriging.Options) error {
	data, err := os.ReadFile(*samplesPath)
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}
	samples, err := kriging.LoadSamples(data, *valueKey)
	if err != nil {
		return err
	}

	var masks []kriging.Polygon
	if *maskPath != "" {
		data, err := os.ReadFile(*maskPath)
		if err != nil {
			return fmt.Errorf("reading mask: %w", err)
		}
		if masks, err = kriging.LoadPolygons(data); err != nil {
			return err
		}
	}

	written := 0
	sink := kriging.ImageSinkFunc(func(img *image.RGBA) {
		written++
		name := filepath.Join(*outDir, fmt.Sprintf("lod_%02d.png", written))
		if err := writePNG(name, img); err != nil {
			log.WithFields(log.Fields{"file": name}).Error(err)
			return
		}
		log.WithFields(log.Fields{"file": name}).Info("overlay written")
	})

	start := time.Now()
	overlay, err := kriging.NewOverlay(samples, masks, opts, sink)
	if err != nil {
		return err
	}
	v := overlay.Variogram()
	log.WithFields(log.Fields{
		"samples": v.N,
		"model":   v.Model,
		"nugget":  v.Nugget,
		"range":   v.Range,
		"sill":    v.Sill,
		"elapsed": time.Since(start),
	}).Info("variogram trained")

	if *single {
		img, err := overlay.Render()
		if err != nil {
			return err
		}
		return writePNG(filepath.Join(*outDir, "overlay.png"), img)
	}

	for _, s := range strings.Split(*heights, ",") {
		h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("bad height %q: %w", s, err)
		}
		changed, err := overlay.OnViewportChanged(h)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"height":  h,
			"band":    overlay.Band(),
			"changed": changed,
		}).Debug("viewport replayed")
	}
	return nil
}

func runRecolor(path string, opts kriging.Options) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, err := png.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	cm := make(recolor.Colormap, 0, len(opts.Colormap))
	for _, c := range opts.Colormap {
		var rgba [4]uint8
		for k := 0; k < len(c) && k < 4; k++ {
			rgba[k] = uint8(c[k])
		}
		cm = append(cm, rgba)
	}

	w := recolor.NewWorker()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	res := <-w.Submit(ctx, recolor.Job{Pix: img.Pix, Colormap: cm})
	if res.Err != nil {
		return res.Err
	}
	copy(img.Pix, res.Pix)
	return writePNG(filepath.Join(*outDir, "recolored_"+filepath.Base(path)), img)
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
