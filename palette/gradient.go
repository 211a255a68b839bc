package palette

import (
	"BurningShip/burningship"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientSettings describes NumberColors steps blended from StartColor towards EndColor.
// Colors are hex strings such as "#ff8800".
type GradientSettings struct {
	StartColor   string
	EndColor     string
	NumberColors int
}

func (gs *GradientSettings) generate() ([]colorful.Color, error) {
	start, err := colorful.Hex(gs.StartColor)
	if err != nil {
		return nil, fmt.Errorf("start color %q: %w", gs.StartColor, err)
	}
	end, err := colorful.Hex(gs.EndColor)
	if err != nil {
		return nil, fmt.Errorf("end color %q: %w", gs.EndColor, err)
	}

	colors := make([]colorful.Color, 0, gs.NumberColors)
	for j := 0; j < gs.NumberColors; j++ {
		fraction := float64(j) / float64(gs.NumberColors)
		colors = append(colors, start.BlendHcl(end, fraction).Clamped())
	}
	return colors, nil
}

// Gradient cycles through a list of colors, one color per unit of the smoothed escape value, blending between
// neighbours for the fractional part
type Gradient struct {
	colors []colorful.Color
	name   string
}

// DefaultGradientSettings is a fire ramp that loops back to black
var DefaultGradientSettings = []GradientSettings{
	{StartColor: "#000000", EndColor: "#ff2000", NumberColors: 8},
	{StartColor: "#ff2000", EndColor: "#ffd000", NumberColors: 8},
	{StartColor: "#ffd000", EndColor: "#000000", NumberColors: 8},
}

func NewGradient(settings []GradientSettings) (*Gradient, error) {
	if len(settings) == 0 {
		return nil, errors.New("gradient needs at least one color range")
	}

	var colors []colorful.Color
	var hexes []string
	for i := 0; i < len(settings); i++ {
		generated, err := settings[i].generate()
		if err != nil {
			return nil, err
		}
		colors = append(colors, generated...)
	}
	if len(colors) == 0 {
		return nil, errors.New("gradient has no colors")
	}
	for _, c := range colors {
		hexes = append(hexes, c.Hex())
	}

	return &Gradient{
		colors: colors,
		name:   "gradient:" + strings.Join(hexes, ","),
	}, nil
}

func (g *Gradient) Map(mu float64) burningship.Channels {
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return burningship.Channels{}
	}

	whole, fraction := math.Modf(mu)
	if fraction < 0 {
		whole--
		fraction++
	}
	index := int(math.Mod(whole, float64(len(g.colors))))
	if index < 0 {
		index += len(g.colors)
	}
	next := (index + 1) % len(g.colors)

	blended := g.colors[index].BlendRgb(g.colors[next], fraction)
	return burningship.Channels{blended.R * 255, blended.G * 255, blended.B * 255, 255}
}

func (g *Gradient) Name() string {
	return g.name
}

// Len is the number of colors in the cycle
func (g *Gradient) Len() int {
	return len(g.colors)
}
