package raster

import (
	"fmt"
	"image"
	"sync"
)

// Target is the display surface a renderer presents finished rasters to.
// Its dimensions are fixed at construction. Every presented raster replaces the previous one as a whole and is
// read-only from then on.
type Target struct {
	current    *image.RGBA
	generation uint64
	height     int
	mutex      sync.RWMutex
	policy     ChannelPolicy
	width      int
}

func NewTarget(width int, height int, policy ChannelPolicy) *Target {
	return &Target{
		current: image.NewRGBA(image.Rect(0, 0, width, height)),
		height:  height,
		policy:  policy,
		width:   width,
	}
}

func (t *Target) Width() int {
	return t.width
}

func (t *Target) Height() int {
	return t.height
}

func (t *Target) Policy() ChannelPolicy {
	return t.policy
}

// NewRaster returns a transparent black raster with the dimensions of the target
func (t *Target) NewRaster() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, t.width, t.height))
}

// Present swaps in a finished raster
func (t *Target) Present(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("no raster to present")
	}
	bounds := img.Bounds()
	if bounds.Min != (image.Point{}) || bounds.Dx() != t.width || bounds.Dy() != t.height {
		return fmt.Errorf("raster %s does not match target %dx%d", bounds, t.width, t.height)
	}

	t.mutex.Lock()
	t.current = img
	t.generation++
	t.mutex.Unlock()
	return nil
}

// Snapshot returns the raster currently on display and how many rasters have been presented so far.
// The raster must not be modified.
func (t *Target) Snapshot() (*image.RGBA, uint64) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.current, t.generation
}
