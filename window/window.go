// Package window shows the raster on display in a desktop window
package window

import (
	"BurningShip/burningship"
	"image"
	"sort"
	"sync/atomic"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var landmarkKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

// RunWindow opens a window the size of the render target and blocks until it closes.
// Escape closes the window, the number keys render the landmarks in name order and R goes back to the configured
// viewport.
func RunWindow(renderer *burningship.Renderer, mapper burningship.ColorMapper, title string) error {
	target := renderer.Target()
	g := &game{
		landmarks: landmarkNames(),
		logger:    bslogger.NewLogger("Window", bslogger.Normal, nil),
		mapper:    mapper,
		renderer:  renderer,
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(target.Width(), target.Height())
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type game struct {
	busy       atomic.Bool
	generation uint64
	img        *ebiten.Image
	landmarks  []string
	logger     bslogger.Logger
	mapper     burningship.ColorMapper
	renderer   *burningship.Renderer
	scratch    []byte
}

func landmarkNames() []string {
	names := make([]string, 0, len(burningship.Landmarks))
	for name := range burningship.Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.render(g.renderer.Settings().Viewport)
	}
	for i, key := range landmarkKeys {
		if i < len(g.landmarks) && inpututil.IsKeyJustPressed(key) {
			g.render(burningship.Landmarks[g.landmarks[i]])
		}
	}
	return nil
}

// render runs in the background so the window keeps drawing the previous raster. Key presses during a render are
// dropped.
func (g *game) render(viewport burningship.Viewport) {
	if !g.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.busy.Store(false)
		stats, err := g.renderer.Render(viewport, g.mapper)
		if err != nil {
			g.logger.Errorf("Rendering %s - %s", viewport, err)
			return
		}
		g.logger.Infof("Rendered %s %s", viewport, stats.String())
	}()
}

func (g *game) Draw(screen *ebiten.Image) {
	current, generation := g.renderer.Target().Snapshot()
	if g.img == nil {
		g.img = ebiten.NewImage(current.Bounds().Dx(), current.Bounds().Dy())
		g.scratch = make([]byte, len(current.Pix))
		g.generation = generation + 1
	}
	if generation != g.generation {
		premultiply(g.scratch, current)
		g.img.WritePixels(g.scratch)
		g.generation = generation
	}
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	target := g.renderer.Target()
	return target.Width(), target.Height()
}

// premultiply copies src into dst the way ebiten expects pixels, with color scaled by alpha
func premultiply(dst []byte, src *image.RGBA) {
	for i := 0; i+3 < len(src.Pix) && i+3 < len(dst); i += 4 {
		alpha := uint32(src.Pix[i+3])
		dst[i] = uint8(uint32(src.Pix[i]) * alpha / 255)
		dst[i+1] = uint8(uint32(src.Pix[i+1]) * alpha / 255)
		dst[i+2] = uint8(uint32(src.Pix[i+2]) * alpha / 255)
		dst[i+3] = uint8(alpha)
	}
}
