package raster

import (
	"fmt"
	"math"
	"strings"
)

const (
	Clamp ChannelPolicy = iota
	Wrap
)

// ChannelPolicy decides how a channel intensity outside [0, 255] is stored in a byte
type ChannelPolicy int

func (p ChannelPolicy) String() string {
	return []string{
		"Clamp", "Wrap",
	}[p]
}

func ParseChannelPolicy(name string) (ChannelPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clamp", "":
		return Clamp, nil
	case "wrap":
		return Wrap, nil
	}
	return Clamp, fmt.Errorf("unknown channel policy %q", name)
}

// Byte converts one channel intensity. NaN and infinities never produce garbage: Clamp saturates them and Wrap
// stores 0.
func (p ChannelPolicy) Byte(value float64) uint8 {
	if math.IsNaN(value) {
		return 0
	}

	switch p {
	case Wrap:
		if math.IsInf(value, 0) {
			return 0
		}
		wrapped := math.Mod(math.Trunc(value), 256)
		if wrapped < 0 {
			wrapped += 256
		}
		return uint8(wrapped)
	default:
		// Same rounding as a browser's clamped pixel array
		if value <= 0 {
			return 0
		}
		if value >= 255 {
			return 255
		}
		return uint8(math.RoundToEven(value))
	}
}
