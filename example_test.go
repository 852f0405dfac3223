package kriging

import (
	"fmt"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

var pos = []vec3d.T{
	{0, 0, 10},
	{1, 0, 20},
	{0, 1, 15},
	{1, 1, 25},
}

func ExampleTrainPoints() {
	v, err := TrainPoints(pos, Exponential, 0, 100)
	if err != nil {
		panic(err)
	}
	fmt.Println(v.N, v.Model)
	fmt.Printf("%.1f %.1f\n", v.Predict(0, 0), v.Predict(1, 1))
	// Output:
	// 4 exponential
	// 10.0 25.0
}

func ExampleNewGrid() {
	v, _ := TrainPoints(pos, Exponential, 0, 100)
	mask := NewConvex(pos).Polygon()

	g := NewGrid([]Polygon{mask}, v, 0.5)
	fmt.Println(g.Columns(), g.Rows(), g.Len())
	// Output:
	// 3 3 4
}

func ExampleLODPolicy_BandFor() {
	bands := DefaultBands()
	for _, h := range []float64{2e6, 150000, 12000, 100} {
		b := bands.BandFor(h)
		fmt.Println(b, bands[b].Divisor)
	}
	// Output:
	// 0 50
	// 1 100
	// 3 500
	// 4 1000
}
