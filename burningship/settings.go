package burningship

import (
	"BurningShip/task"
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

type Settings struct {
	logger bslogger.Logger

	CacheSize  int
	Generation task.Generation
	Height     uint
	TileSize   int
	Viewport   Viewport
	Width      uint
	Workers    int
}

func (s *Settings) String() string {
	output := "\nRenderer settings\n"
	output += fmt.Sprintf("Cache Size: %d\n", s.CacheSize)
	output += fmt.Sprintf("Generation: %s\n", s.Generation)
	output += fmt.Sprintf("Height: %d\n", s.Height)
	output += fmt.Sprintf("Tile Size: %d\n", s.TileSize)
	output += fmt.Sprintf("Viewport: %s\n", s.Viewport)
	output += fmt.Sprintf("Width: %d\n", s.Width)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("RendererSettings", bslogger.Normal, nil)

	if s.CacheSize < 0 {
		s.CacheSize = 0
	}
	if s.Generation < task.Row || s.Generation > task.Grid {
		s.Generation = task.Row
	}
	if s.Height <= 0 {
		s.Height = 600
	}
	if s.TileSize <= 0 {
		s.TileSize = 64
	}
	if s.Viewport == (Viewport{}) {
		s.Viewport = DefaultViewport
	}
	if s.Width <= 0 {
		s.Width = 800
	}
	if s.Workers < 1 {
		s.Workers = 1
	}

	if err := s.Viewport.Validate(); err != nil {
		return err
	}

	if s.Workers > 1 {
		s.logger.Infof("Rendering %s tiles of size %d with %d workers", s.Generation, s.TileSize, s.Workers)
	}

	return nil
}
