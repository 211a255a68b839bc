package burningship

import (
	"errors"
	"math"
)

const (
	MaxIterations   = 255
	EscapeRadius    = 2.0
	EscapeThreshold = EscapeRadius * EscapeRadius
)

var ErrSmoothDomain = errors.New("escape distance outside the smoothing domain")

// Evaluate runs the burning ship map z' = (zx² - zy² + x0, 2|zx*zy| + y0) from z = 0.
// The returned count is the number of steps after which z was still inside the escape radius, so a point that
// leaves on the first step reports 0 and a point that never leaves reports MaxIterations. The distance is |z| at
// termination.
func Evaluate(x0 float64, y0 float64) (int, float64) {
	zx, zy := 0.0, 0.0
	for iteration := 0; iteration < MaxIterations; iteration++ {
		zx, zy = zx*zx-zy*zy+x0, 2*math.Abs(zx*zy)+y0
		if zx*zx+zy*zy >= EscapeThreshold {
			return iteration, math.Sqrt(zx*zx + zy*zy)
		}
	}
	return MaxIterations, math.Sqrt(zx*zx + zy*zy)
}

// Smooth turns an integer escape count into a continuous value
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func Smooth(iterations int, distance float64) (float64, error) {
	// log2(ln(d)) is only defined for d > 1
	if math.IsNaN(distance) || distance <= 1 {
		return 0, ErrSmoothDomain
	}
	return float64(iterations) + 1 - math.Log2(math.Log(distance)), nil
}
