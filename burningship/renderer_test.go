package burningship

import (
	"BurningShip/raster"
	"BurningShip/task"
	"bytes"
	"errors"
	"image"
	"testing"
)

func newTestRenderer(t *testing.T, settings Settings, width int, height int) *Renderer {
	t.Helper()
	target := raster.NewTarget(width, height, raster.Clamp)
	renderer, err := NewRenderer(settings, target)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return renderer
}

func render(t *testing.T, r *Renderer, viewport Viewport, mapper ColorMapper) *image.RGBA {
	t.Helper()
	if _, err := r.Render(viewport, mapper); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, _ := r.Target().Snapshot()
	return img
}

func TestRenderTopLeftPixel(t *testing.T) {
	r := newTestRenderer(t, Settings{}, 16, 16)
	img := render(t, r, DefaultViewport, DefaultPalette{})

	pixel := img.Pix[0:4]
	iterations, distance := Evaluate(DefaultViewport.XMin, DefaultViewport.YMin)
	if iterations == MaxIterations {
		if !bytes.Equal(pixel, []byte{0, 0, 0, 0}) {
			t.Errorf("interior pixel = %v, want transparent", pixel)
		}
		return
	}

	mu, err := Smooth(iterations, distance)
	if err != nil {
		t.Fatalf("Smooth() error = %v", err)
	}
	channels := DefaultPalette{}.Map(mu)
	var want []byte
	for _, c := range channels {
		want = append(want, raster.Clamp.Byte(c))
	}
	if !bytes.Equal(pixel, want) {
		t.Errorf("pixel (0, 0) = %v, want %v", pixel, want)
	}
	if bytes.Equal(pixel, []byte{0, 0, 0, 0}) {
		t.Errorf("escaping pixel was left transparent")
	}
}

func TestRenderInteriorStaysBlank(t *testing.T) {
	// Every sample of this viewport is on the bounded stretch of the real axis
	v := Viewport{XMin: -1, XMax: -0.9, YMin: 0, YMax: 1e-300}
	r := newTestRenderer(t, Settings{}, 4, 1)

	stats, err := r.Render(v, DefaultPalette{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Interior != 4 {
		t.Errorf("Interior = %d, want 4", stats.Interior)
	}
	img, _ := r.Target().Snapshot()
	for i, b := range img.Pix {
		if b != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, b)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r := newTestRenderer(t, Settings{}, 24, 16)
	first := render(t, r, DefaultViewport, DefaultPalette{})
	second := render(t, r, DefaultViewport, DefaultPalette{})
	if first == second {
		t.Fatal("renders without a cache should produce fresh rasters")
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("rendering the same viewport twice gave different rasters")
	}
}

func TestRenderTiledMatchesSequential(t *testing.T) {
	sequential := render(t, newTestRenderer(t, Settings{}, 37, 23), DefaultViewport, DefaultPalette{})

	generations := []task.Generation{task.Row, task.Column, task.Grid}
	for _, generation := range generations {
		settings := Settings{Workers: 4, Generation: generation, TileSize: 5}
		r := newTestRenderer(t, settings, 37, 23)
		tiled := render(t, r, DefaultViewport, DefaultPalette{})
		if !bytes.Equal(sequential.Pix, tiled.Pix) {
			t.Errorf("%s tiles differ from the sequential render", generation)
		}
	}
}

func TestRenderStats(t *testing.T) {
	r := newTestRenderer(t, Settings{Workers: 3, Generation: task.Grid, TileSize: 4}, 16, 16)
	stats, err := r.Render(DefaultViewport, DefaultPalette{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Pixels != 256 {
		t.Errorf("Pixels = %d, want 256", stats.Pixels)
	}
	if stats.Tiles != 16 {
		t.Errorf("Tiles = %d, want 16", stats.Tiles)
	}
	if stats.DomainErrors != 0 {
		t.Errorf("DomainErrors = %d, want 0", stats.DomainErrors)
	}
}

func TestRenderInvalidViewportKeepsRaster(t *testing.T) {
	r := newTestRenderer(t, Settings{}, 8, 8)
	before := render(t, r, DefaultViewport, DefaultPalette{})
	_, generation := r.Target().Snapshot()

	_, err := r.Render(Viewport{XMin: 1, XMax: 0, YMin: 0, YMax: 1}, DefaultPalette{})
	if !errors.Is(err, ErrInvalidViewport) {
		t.Fatalf("Render() error = %v, want ErrInvalidViewport", err)
	}

	after, afterGeneration := r.Target().Snapshot()
	if after != before || afterGeneration != generation {
		t.Error("a rejected render replaced the raster on display")
	}
}

type brokenMapper struct{}

func (brokenMapper) Map(float64) Channels { return Channels{} }
func (brokenMapper) Err() error           { return errors.New("broken") }

func TestRenderMapperError(t *testing.T) {
	r := newTestRenderer(t, Settings{}, 8, 8)
	_, generation := r.Target().Snapshot()

	if _, err := r.Render(DefaultViewport, brokenMapper{}); err == nil {
		t.Fatal("Render() error = nil, want mapper error")
	}
	if _, after := r.Target().Snapshot(); after != generation {
		t.Error("a failed render was presented")
	}
}

func TestRenderCache(t *testing.T) {
	r := newTestRenderer(t, Settings{CacheSize: 2}, 8, 8)
	first := render(t, r, DefaultViewport, DefaultPalette{})

	stats, err := r.Render(DefaultViewport, DefaultPalette{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !stats.Cached {
		t.Error("second render of the same viewport was not served from the cache")
	}
	second, _ := r.Target().Snapshot()
	if first != second {
		t.Error("cached render presented a different raster")
	}

	// Mappers without a name are never cached
	mapper := MapperFunc(DefaultPalette{}.Map)
	stats, err = r.Render(DefaultViewport, mapper)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Cached {
		t.Error("anonymous mapper was served from the cache")
	}
}

func TestRenderChannelPolicy(t *testing.T) {
	saturate := MapperFunc(func(float64) Channels { return Channels{300, -5, 127.5, 1000} })

	clamp := raster.NewTarget(1, 1, raster.Clamp)
	r, err := NewRenderer(Settings{}, clamp)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	// (10, 10) escapes immediately
	far := Viewport{XMin: 10, XMax: 11, YMin: 10, YMax: 11}
	if _, err := r.Render(far, saturate); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, _ := clamp.Snapshot()
	if want := []byte{255, 0, 128, 255}; !bytes.Equal(img.Pix, want) {
		t.Errorf("clamped pixel = %v, want %v", img.Pix, want)
	}

	wrap := raster.NewTarget(1, 1, raster.Wrap)
	r, err = NewRenderer(Settings{}, wrap)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if _, err := r.Render(far, saturate); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, _ = wrap.Snapshot()
	if want := []byte{44, 251, 127, 232}; !bytes.Equal(img.Pix, want) {
		t.Errorf("wrapped pixel = %v, want %v", img.Pix, want)
	}
}

func TestNewRendererRejectsInvalidSettings(t *testing.T) {
	target := raster.NewTarget(4, 4, raster.Clamp)
	if _, err := NewRenderer(Settings{Viewport: Viewport{XMin: 2, XMax: 1, YMin: 0, YMax: 1}}, target); err == nil {
		t.Error("NewRenderer() accepted an inverted viewport")
	}
	if _, err := NewRenderer(Settings{}, nil); err == nil {
		t.Error("NewRenderer() accepted a nil target")
	}
}

func TestRenderRejectsOverflowingSpan(t *testing.T) {
	r := newTestRenderer(t, Settings{}, 8, 8)
	if _, err := r.Render(Viewport{XMin: -1e308, XMax: 1e308, YMin: 0, YMax: 1}, DefaultPalette{}); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Render() error = %v, want ErrInvalidViewport", err)
	}
	if _, generation := r.Target().Snapshot(); generation != 0 {
		t.Error("raster of an overflowing viewport was presented")
	}
}

func TestRenderFrame(t *testing.T) {
	r := newTestRenderer(t, Settings{CacheSize: 2}, 8, 8)

	initial := r.Frame()
	if initial.Generation != 0 || initial.Viewport != DefaultViewport {
		t.Errorf("Frame() before rendering = %d %s", initial.Generation, initial.Viewport)
	}

	hull := Landmarks["hull"]
	frame, err := r.RenderFrame(hull, DefaultPalette{})
	if err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	img, generation := r.Target().Snapshot()
	if frame.Image != img || frame.Generation != generation || frame.Generation != 1 {
		t.Errorf("RenderFrame() = %p %d, on display %p %d", frame.Image, frame.Generation, img, generation)
	}
	if frame.Viewport != hull || frame.Stats.Pixels != 64 {
		t.Errorf("RenderFrame() viewport %s %s", frame.Viewport, frame.Stats.String())
	}
	if now := r.Frame(); now.Image != frame.Image || now.Generation != frame.Generation || now.Viewport != hull {
		t.Errorf("Frame() = %d %s, want %d %s", now.Generation, now.Viewport, frame.Generation, hull)
	}
	if r.cache.Len() != 1 {
		t.Errorf("cache holds %d rasters, want 1", r.cache.Len())
	}

	if _, err := r.RenderFrame(Viewport{XMin: 1, XMax: 0, YMin: 0, YMax: 1}, DefaultPalette{}); err == nil {
		t.Error("RenderFrame() of an inverted viewport error = nil")
	}
	if _, err := r.RenderFrame(hull, nil); err == nil {
		t.Error("RenderFrame() without a mapper error = nil")
	}
	if now := r.Frame(); now.Generation != 1 || now.Viewport != hull {
		t.Errorf("rejected frames changed the display to %d %s", now.Generation, now.Viewport)
	}
}

// Renders racing each other must never report a viewport that belongs to another raster
func TestRenderFrameConcurrent(t *testing.T) {
	r := newTestRenderer(t, Settings{}, 6, 6)
	viewports := []Viewport{Landmarks["hull"], Landmarks["mast"]}
	want := make(map[Viewport][]byte)
	for _, viewport := range viewports {
		want[viewport] = bytes.Clone(render(t, r, viewport, DefaultPalette{}).Pix)
	}

	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		viewport := viewports[i%2]
		go func() {
			frame, err := r.RenderFrame(viewport, DefaultPalette{})
			if err == nil && (frame.Viewport != viewport || !bytes.Equal(frame.Image.Pix, want[viewport])) {
				err = errors.New("frame does not match its viewport")
			}
			errs <- err
		}()
	}
	for i := 0; i < 40; i++ {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}
