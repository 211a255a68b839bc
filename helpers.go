package main

import (
	"BurningShip/form"
	"BurningShip/task"
	"flag"
	"fmt"
	"io"
)

// arguments are the command line flags. A flag only overrides the settings file when it was given.
type arguments struct {
	address       string
	backup        bool
	cacheSize     int
	channelPolicy string
	generation    string
	height        uint
	landmark      string
	mode          string
	output        string
	paletteKind   string
	paletteScript string
	settingsFile  string
	tileSize      int
	verbose       bool
	width         uint
	workers       int
	xRangeStart   string
	xRangeEnd     string
	yRangeStart   string
	yRangeEnd     string

	set map[string]bool
}

func parseArguments(args []string, output io.Writer) (arguments, error) {
	var a arguments
	flags := flag.NewFlagSet("burningship", flag.ContinueOnError)
	flags.SetOutput(output)

	flags.StringVar(&a.settingsFile, "settings", "", "Json file with settings, flags given next to it win")
	flags.StringVar(&a.mode, "mode", "", "One of png, web, tui, window, rpc or remote")
	flags.StringVar(&a.address, "address", "", "Address to serve on, or of the render server in remote mode")
	flags.StringVar(&a.output, "output", "", "Image file to write in png and remote mode (.png, .jpg)")
	flags.BoolVar(&a.backup, "backup", false, "Write the settings next to the output image")
	flags.BoolVar(&a.verbose, "verbose", false, "Log debug messages")

	// Renderer values
	flags.UintVar(&a.width, "width", 0, "Width of the raster")
	flags.UintVar(&a.height, "height", 0, "Height of the raster")
	flags.IntVar(&a.workers, "workers", 0, "Number of tiles rendered at once, 1 renders row by row")
	flags.IntVar(&a.tileSize, "tileSize", 0, "Size of a tile in pixels")
	flags.StringVar(&a.generation, "generation", "", "How tiles are cut: row, column or grid")
	flags.IntVar(&a.cacheSize, "cacheSize", 0, "Number of finished rasters to keep, 0 disables the cache")
	flags.StringVar(&a.channelPolicy, "channelPolicy", "", "How out of range channels are stored: clamp or wrap")
	flags.StringVar(&a.landmark, "landmark", "", "Named viewport to render: hull, armada, mast or stern")
	flags.StringVar(&a.xRangeStart, "xRangeStart", "", "Left edge of the viewport")
	flags.StringVar(&a.xRangeEnd, "xRangeEnd", "", "Right edge of the viewport")
	flags.StringVar(&a.yRangeStart, "yRangeStart", "", "Top edge of the viewport")
	flags.StringVar(&a.yRangeEnd, "yRangeEnd", "", "Bottom edge of the viewport")

	// Palette values
	flags.StringVar(&a.paletteKind, "palette", "", "Palette kind: default, gradient or script")
	flags.StringVar(&a.paletteScript, "paletteScript", "", "Lua file defining color(mu)")

	if err := flags.Parse(args); err != nil {
		return a, err
	}
	if flags.NArg() > 0 {
		return a, fmt.Errorf("unexpected arguments %v", flags.Args())
	}

	a.set = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		a.set[f.Name] = true
	})
	return a, nil
}

// apply copies every flag that was given into s
func (a *arguments) apply(s *settings) error {
	if a.set["mode"] {
		s.Mode = a.mode
	}
	if a.set["address"] {
		s.Address = a.address
	}
	if a.set["output"] {
		s.Output = a.output
	}
	if a.set["backup"] {
		s.BackupSettings = a.backup
	}
	if a.set["width"] {
		s.RendererSettings.Width = a.width
	}
	if a.set["height"] {
		s.RendererSettings.Height = a.height
	}
	if a.set["workers"] {
		s.RendererSettings.Workers = a.workers
	}
	if a.set["tileSize"] {
		s.RendererSettings.TileSize = a.tileSize
	}
	if a.set["cacheSize"] {
		s.RendererSettings.CacheSize = a.cacheSize
	}
	if a.set["channelPolicy"] {
		s.ChannelPolicy = a.channelPolicy
	}
	if a.set["generation"] {
		generation, err := task.ParseGeneration(a.generation)
		if err != nil {
			return err
		}
		s.RendererSettings.Generation = generation
	}
	if a.set["palette"] {
		s.PaletteSettings.Kind = a.paletteKind
	}
	if a.set["paletteScript"] {
		s.PaletteSettings.ScriptFile = a.paletteScript
		if !a.set["palette"] {
			s.PaletteSettings.Kind = "script"
		}
	}

	ranges := []string{"xRangeStart", "xRangeEnd", "yRangeStart", "yRangeEnd"}
	given := 0
	for _, name := range ranges {
		if a.set[name] {
			given++
		}
	}
	if given > 0 && a.set["landmark"] {
		return fmt.Errorf("give either a landmark or the four range flags")
	}
	if given > 0 {
		if given < len(ranges) {
			return fmt.Errorf("all four of %v are needed to set the viewport", ranges)
		}
		viewport, err := form.ParseViewport(a.xRangeStart, a.xRangeEnd, a.yRangeStart, a.yRangeEnd)
		if err != nil {
			return err
		}
		s.RendererSettings.Viewport = viewport
		s.Landmark = ""
	}
	if a.set["landmark"] {
		s.Landmark = a.landmark
	}
	return nil
}
