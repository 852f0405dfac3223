// Package recolor maps single-channel intensity images onto an RGBA
// colormap, either inline or on a background worker.
package recolor

import (
	"context"
	"errors"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	ErrColormap = errors.New("colormap needs at least two colors")
	ErrClosed   = errors.New("recolor worker closed")
)

type Colormap [][4]uint8

// Recolor rewrites the RGBA buffer pix in place. The red channel is read
// as the intensity; zero becomes fully transparent. A two-entry colormap
// paints every other pixel with its second colour, longer maps are
// interpolated linearly over r/255.
func Recolor(pix []uint8, cm Colormap) error {
	if len(cm) < 2 {
		return ErrColormap
	}
	for i := 0; i+3 < len(pix); i += 4 {
		r := pix[i]
		var c [4]uint8
		switch {
		case r == 0:
		case len(cm) == 2:
			c = cm[1]
		default:
			c = cm.at(float64(r) / 255)
		}
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c[0], c[1], c[2], c[3]
	}
	return nil
}

func (cm Colormap) at(value float64) [4]uint8 {
	n := float64(len(cm) - 1)
	index := int(math.Floor(value * n))
	if index > len(cm)-2 {
		index = len(cm) - 2
	}
	t := value*n - float64(index)
	var c [4]uint8
	for k := range c {
		c[k] = uint8(math.Round(float64(cm[index][k])*(1-t) + float64(cm[index+1][k])*t))
	}
	return c
}

type Job struct {
	Pix      []uint8
	Colormap Colormap
}

type Result struct {
	Pix []uint8
	Err error
}

type request struct {
	ctx context.Context
	job Job
	out chan<- Result
}

// Worker recolors images one at a time on its own goroutine. Each Submit
// gets exactly one Result; there is no retry.
type Worker struct {
	jobs chan request
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewWorker() *Worker {
	w := &Worker{
		jobs: make(chan request),
		done: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *Worker) run() {
	defer w.wg.Done()
	for {
		select {
		case r := <-w.jobs:
			if err := r.ctx.Err(); err != nil {
				r.out <- Result{Err: err}
				continue
			}
			err := Recolor(r.job.Pix, r.job.Colormap)
			log.WithFields(log.Fields{
				"bytes":  len(r.job.Pix),
				"colors": len(r.job.Colormap),
			}).Debug("recolor: job done")
			if err != nil {
				r.out <- Result{Err: err}
				continue
			}
			r.out <- Result{Pix: r.job.Pix}
		case <-w.done:
			return
		}
	}
}

// Submit hands the buffer to the worker. The buffer is owned by the worker
// until the result arrives.
func (w *Worker) Submit(ctx context.Context, job Job) <-chan Result {
	out := make(chan Result, 1)
	select {
	case w.jobs <- request{ctx: ctx, job: job, out: out}:
	case <-ctx.Done():
		out <- Result{Err: ctx.Err()}
	case <-w.done:
		out <- Result{Err: ErrClosed}
	}
	return out
}

// Close stops the worker and waits for the running job to finish.
func (w *Worker) Close() {
	w.once.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
}
