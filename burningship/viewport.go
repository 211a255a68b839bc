package burningship

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the rectangle of the complex plane mapped onto the raster
type Viewport struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// DefaultViewport is the region drawn on startup
var DefaultViewport = Viewport{
	XMin: -1.8,
	XMax: -1.7,
	YMin: -0.08,
	YMax: 0.01,
}

// Landmarks are named regions of the burning ship worth looking at
var Landmarks = map[string]Viewport{
	// The ship itself, bow to the left
	"hull": {XMin: -2.2, XMax: 1.3, YMin: -2.0, YMax: 0.8},
	// The small ship on the antenna, also the startup view
	"armada": DefaultViewport,
	// Mast and rigging of the main ship
	"mast": {XMin: -1.65, XMax: -1.55, YMin: -0.05, YMax: 0.03},
	// Smoke above the stern
	"stern": {XMin: 0.1, XMax: 0.6, YMin: -1.3, YMax: -0.8},
}

func (v Viewport) String() string {
	output := "{Viewport "
	output += fmt.Sprintf("XMin: %g ", v.XMin)
	output += fmt.Sprintf("XMax: %g ", v.XMax)
	output += fmt.Sprintf("YMin: %g ", v.YMin)
	output += fmt.Sprintf("YMax: %g}", v.YMax)
	return output
}

// Validate requires finite bounds and non-empty ranges of finite width on both axes
func (v Viewport) Validate() error {
	bounds := []struct {
		name  string
		value float64
	}{
		{"xMin", v.XMin},
		{"xMax", v.XMax},
		{"yMin", v.YMin},
		{"yMax", v.YMax},
	}
	for _, b := range bounds {
		if math.IsNaN(b.value) || math.IsInf(b.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidViewport, b.name)
		}
	}
	if v.XMin >= v.XMax {
		return fmt.Errorf("%w: xMin %g must be less than xMax %g", ErrInvalidViewport, v.XMin, v.XMax)
	}
	if v.YMin >= v.YMax {
		return fmt.Errorf("%w: yMin %g must be less than yMax %g", ErrInvalidViewport, v.YMin, v.YMax)
	}
	if math.IsInf(v.XMax-v.XMin, 0) {
		return fmt.Errorf("%w: x range %g..%g is too wide to sample", ErrInvalidViewport, v.XMin, v.XMax)
	}
	if math.IsInf(v.YMax-v.YMin, 0) {
		return fmt.Errorf("%w: y range %g..%g is too wide to sample", ErrInvalidViewport, v.YMin, v.YMax)
	}
	return nil
}

// SamplePoint maps the (column, row) pixel of a width x height raster onto the complex plane.
// Both axes are scaled independently, so a viewport whose shape differs from the raster is stretched.
func (v Viewport) SamplePoint(column int, row int, width int, height int) (float64, float64) {
	x := v.XMin + float64(column)*(v.XMax-v.XMin)/float64(width)
	y := v.YMin + float64(row)*(v.YMax-v.YMin)/float64(height)
	return x, y
}
