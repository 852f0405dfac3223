package recolor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecolorTwoColors(t *testing.T) {
	a := assert.New(t)

	pix := []uint8{0, 9, 9, 9, 100, 0, 0, 255}
	cm := Colormap{{1, 2, 3, 4}, {10, 20, 30, 255}}
	a.NoError(Recolor(pix, cm))
	a.Equal([]uint8{0, 0, 0, 0, 10, 20, 30, 255}, pix)
}

func TestRecolorRamp(t *testing.T) {
	a := assert.New(t)

	cm := Colormap{{0, 0, 255, 255}, {0, 255, 0, 255}, {255, 0, 0, 255}}
	pix := []uint8{
		255, 0, 0, 255,
		1, 0, 0, 255,
		0, 0, 0, 255,
	}
	a.NoError(Recolor(pix, cm))
	a.Equal([]uint8{255, 0, 0, 255}, pix[0:4])
	a.Equal([]uint8{0, 2, 253, 255}, pix[4:8])
	a.Equal([]uint8{0, 0, 0, 0}, pix[8:12])

	a.Equal([4]uint8{0, 255, 0, 255}, cm.at(0.5))
}

func TestRecolorColormapTooShort(t *testing.T) {
	a := assert.New(t)

	a.ErrorIs(Recolor([]uint8{1, 1, 1, 1}, Colormap{{1, 1, 1, 1}}), ErrColormap)
}

func TestWorker(t *testing.T) {
	a := assert.New(t)

	w := NewWorker()
	defer w.Close()

	pix := []uint8{50, 0, 0, 255}
	res := <-w.Submit(context.Background(), Job{Pix: pix, Colormap: Colormap{{0, 0, 0, 0}, {9, 9, 9, 9}}})
	a.NoError(res.Err)
	a.Equal([]uint8{9, 9, 9, 9}, res.Pix)

	res = <-w.Submit(context.Background(), Job{Pix: pix, Colormap: nil})
	a.ErrorIs(res.Err, ErrColormap)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = <-w.Submit(ctx, Job{Pix: pix, Colormap: Colormap{{0, 0, 0, 0}, {1, 1, 1, 1}}})
	a.ErrorIs(res.Err, context.Canceled)
	a.Equal([]uint8{9, 9, 9, 9}, pix)
}

func TestWorkerClosed(t *testing.T) {
	a := assert.New(t)

	w := NewWorker()
	w.Close()
	w.Close()

	res := <-w.Submit(context.Background(), Job{Pix: []uint8{1, 1, 1, 1}, Colormap: Colormap{{0, 0, 0, 0}, {1, 1, 1, 1}}})
	a.ErrorIs(res.Err, ErrClosed)
}
