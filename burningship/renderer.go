package burningship

import (
	"BurningShip/raster"
	"BurningShip/task"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/sync/errgroup"
)

// Stats describes one call to Render
type Stats struct {
	Cached       bool
	DomainErrors int
	Elapsed      time.Duration
	Interior     int
	Pixels       int
	Tiles        int
}

func (s *Stats) String() string {
	output := "{Stats "
	output += fmt.Sprintf("Cached: %t ", s.Cached)
	output += fmt.Sprintf("Domain Errors: %d ", s.DomainErrors)
	output += fmt.Sprintf("Elapsed: %s ", s.Elapsed)
	output += fmt.Sprintf("Interior: %d ", s.Interior)
	output += fmt.Sprintf("Pixels: %d ", s.Pixels)
	output += fmt.Sprintf("Tiles: %d}", s.Tiles)
	return output
}

func (s *Stats) add(other Stats) {
	s.DomainErrors += other.DomainErrors
	s.Interior += other.Interior
	s.Pixels += other.Pixels
	s.Tiles += other.Tiles
}

// Renderer draws the burning ship onto a raster.Target.
// Calls to Render are serialized; a request made while another render is running waits for it.
type Renderer struct {
	cache    *raster.Cache
	logger   bslogger.Logger
	mutex    sync.Mutex
	settings Settings
	target   *raster.Target
	tiles    []task.Tile
	viewport Viewport
}

func NewRenderer(settings Settings, target *raster.Target) (*Renderer, error) {
	if target == nil {
		return nil, errors.New("no render target")
	}
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	cache, err := raster.NewCache(settings.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating raster cache: %w", err)
	}

	bounds := image.Rect(0, 0, target.Width(), target.Height())
	tiles := []task.Tile{{Bounds: bounds}}
	if settings.Workers > 1 {
		tiles = task.Split(bounds, settings.Generation, settings.TileSize)
	}

	logger := bslogger.NewLogger("Renderer", bslogger.Normal, nil)
	for i := range tiles {
		logger.Debugf("Prepared %s", tiles[i].String())
	}

	return &Renderer{
		cache:    cache,
		logger:   logger,
		settings: settings,
		target:   target,
		tiles:    tiles,
		viewport: settings.Viewport,
	}, nil
}

func (r *Renderer) Target() *raster.Target {
	return r.target
}

func (r *Renderer) Settings() Settings {
	return r.settings
}

// Viewport is the region shown by the last presented raster, or the configured viewport before the first render
func (r *Renderer) Viewport() Viewport {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.viewport
}

// SamplePoint is the point of the complex plane sampled for a pixel of the target
func (r *Renderer) SamplePoint(viewport Viewport, column int, row int) (float64, float64) {
	return viewport.SamplePoint(column, row, r.target.Width(), r.target.Height())
}

// Frame is a presented raster together with the viewport it shows
type Frame struct {
	Generation uint64
	Image      *image.RGBA
	Stats      Stats
	Viewport   Viewport
}

// Frame returns the raster on display with its generation and viewport, all taken from the same render
func (r *Renderer) Frame() Frame {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.frame(Stats{})
}

// Render computes the whole raster for viewport and presents it on the target in one step.
// An invalid viewport or a failing mapper leaves the previously presented raster in place.
func (r *Renderer) Render(viewport Viewport, mapper ColorMapper) (Stats, error) {
	if err := check(viewport, mapper); err != nil {
		return Stats{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.render(viewport, mapper)
}

// RenderFrame renders like Render and returns the frame it presented
func (r *Renderer) RenderFrame(viewport Viewport, mapper ColorMapper) (Frame, error) {
	if err := check(viewport, mapper); err != nil {
		return Frame{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	stats, err := r.render(viewport, mapper)
	if err != nil {
		return Frame{Stats: stats}, err
	}
	return r.frame(stats), nil
}

func check(viewport Viewport, mapper ColorMapper) error {
	if mapper == nil {
		return errors.New("no color mapper")
	}
	return viewport.Validate()
}

// frame must be called with the mutex held
func (r *Renderer) frame(stats Stats) Frame {
	img, generation := r.target.Snapshot()
	return Frame{
		Generation: generation,
		Image:      img,
		Stats:      stats,
		Viewport:   r.viewport,
	}
}

// render must be called with the mutex held
func (r *Renderer) render(viewport Viewport, mapper ColorMapper) (Stats, error) {
	startTime := time.Now()

	key := r.cacheKey(viewport, mapper)
	if img, ok := r.cache.Get(key); ok {
		if err := r.target.Present(img); err != nil {
			return Stats{}, err
		}
		r.viewport = viewport
		stats := Stats{Cached: true, Elapsed: time.Since(startTime)}
		r.logger.Debugf("Presented cached raster for %s", viewport)
		return stats, nil
	}

	img := r.target.NewRaster()
	stats := r.renderTiles(img, viewport, mapper)

	if m, ok := mapper.(failingMapper); ok {
		if err := m.Err(); err != nil {
			return stats, fmt.Errorf("color mapper: %w", err)
		}
	}

	if err := r.target.Present(img); err != nil {
		return stats, err
	}
	r.viewport = viewport
	if key != "" {
		r.cache.Add(key, img)
		r.logger.Debugf("Cached raster for %s, %d rasters kept", viewport, r.cache.Len())
	}

	stats.Elapsed = time.Since(startTime)
	if stats.DomainErrors > 0 {
		r.logger.Warningf("%d pixels could not be smoothed and were left blank", stats.DomainErrors)
	}
	r.logger.Debugf("Rendered %s in %s", viewport, stats.Elapsed)
	return stats, nil
}

func (r *Renderer) renderTiles(img *image.RGBA, viewport Viewport, mapper ColorMapper) Stats {
	results := make([]Stats, len(r.tiles))

	if r.settings.Workers == 1 {
		for i := range r.tiles {
			results[i] = r.renderTile(img, viewport, mapper, r.tiles[i].Bounds)
		}
	} else {
		// Each tile owns a disjoint part of img and its own results slot
		var group errgroup.Group
		group.SetLimit(r.settings.Workers)
		for i := range r.tiles {
			i := i
			group.Go(func() error {
				results[i] = r.renderTile(img, viewport, mapper, r.tiles[i].Bounds)
				return nil
			})
		}
		_ = group.Wait()
	}

	var stats Stats
	for _, result := range results {
		stats.add(result)
	}
	return stats
}

func (r *Renderer) renderTile(img *image.RGBA, viewport Viewport, mapper ColorMapper, bounds image.Rectangle) Stats {
	policy := r.target.Policy()
	stats := Stats{Pixels: bounds.Dx() * bounds.Dy(), Tiles: 1}

	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for column := bounds.Min.X; column < bounds.Max.X; column++ {
			x0, y0 := r.SamplePoint(viewport, column, row)
			iterations, distance := Evaluate(x0, y0)

			// Inside the set stays transparent
			if iterations == MaxIterations {
				stats.Interior++
				continue
			}

			mu, err := Smooth(iterations, distance)
			if err != nil {
				stats.DomainErrors++
				continue
			}

			channels := mapper.Map(mu)
			offset := img.PixOffset(column, row)
			for c := 0; c < 4; c++ {
				img.Pix[offset+c] = policy.Byte(channels[c])
			}
		}
	}
	return stats
}

// cacheKey is empty when the output of mapper cannot be cached
func (r *Renderer) cacheKey(viewport Viewport, mapper ColorMapper) string {
	if r.cache == nil {
		return ""
	}
	named, ok := mapper.(namedMapper)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s|%v|%v|%v|%v|%s", named.Name(), viewport.XMin, viewport.XMax, viewport.YMin, viewport.YMax, r.target.Policy())
}
