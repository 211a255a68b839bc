package main

import (
	"BurningShip/burningship"
	"BurningShip/misc"
	"BurningShip/raster"
	"BurningShip/task"
	"encoding/json"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrugadaSyndrome/bslogger"
)

func settingsFrom(t *testing.T, args ...string) (settings, error) {
	t.Helper()
	a, err := parseArguments(args, io.Discard)
	if err != nil {
		return settings{}, err
	}
	s := newSettings()
	if err := a.apply(&s); err != nil {
		return s, err
	}
	return s, s.Verify()
}

func TestDefaults(t *testing.T) {
	s, err := settingsFrom(t)
	if err != nil {
		t.Fatalf("settings error = %v", err)
	}
	if s.Mode != "png" || s.Output != "burningship.png" || s.ChannelPolicy != "Clamp" {
		t.Errorf("settings = %s", s.String())
	}
	if s.RendererSettings.Viewport != burningship.DefaultViewport {
		t.Errorf("viewport = %s", s.RendererSettings.Viewport)
	}
	if s.RendererSettings.Width != 800 || s.RendererSettings.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", s.RendererSettings.Width, s.RendererSettings.Height)
	}
	if s.PaletteSettings.Kind != "default" {
		t.Errorf("palette = %s", s.PaletteSettings.Kind)
	}
}

func TestFlags(t *testing.T) {
	s, err := settingsFrom(t,
		"-mode", "web", "-width", "64", "-height", "32", "-workers", "4", "-generation", "grid",
		"-channelPolicy", "wrap", "-xRangeStart", "-1", "-xRangeEnd", "1", "-yRangeStart", "-2", "-yRangeEnd", "2",
	)
	if err != nil {
		t.Fatalf("settings error = %v", err)
	}
	if s.Address != "localhost:8080" {
		t.Errorf("Address = %s", s.Address)
	}
	if s.channelPolicy() != raster.Wrap {
		t.Errorf("channel policy = %s", s.channelPolicy())
	}
	if s.RendererSettings.Generation != task.Grid || s.RendererSettings.Workers != 4 {
		t.Errorf("renderer = %s", s.RendererSettings.String())
	}
	want := burningship.Viewport{XMin: -1, XMax: 1, YMin: -2, YMax: 2}
	if s.RendererSettings.Viewport != want {
		t.Errorf("viewport = %s, want %s", s.RendererSettings.Viewport, want)
	}
}

func TestFlagErrors(t *testing.T) {
	tests := map[string][]string{
		"unknown mode":        {"-mode", "movie"},
		"partial viewport":    {"-xRangeStart", "-1", "-xRangeEnd", "1"},
		"bad number":          {"-xRangeStart", "one", "-xRangeEnd", "1", "-yRangeStart", "0", "-yRangeEnd", "1"},
		"inverted viewport":   {"-xRangeStart", "1", "-xRangeEnd", "-1", "-yRangeStart", "0", "-yRangeEnd", "1"},
		"landmark and ranges": {"-landmark", "hull", "-xRangeStart", "-1", "-xRangeEnd", "1", "-yRangeStart", "0", "-yRangeEnd", "1"},
		"unknown landmark":    {"-landmark", "keel"},
		"unknown policy":      {"-channelPolicy", "fold"},
		"unknown generation":  {"-generation", "spiral"},
		"stray argument":      {"extra"},
		"script without file": {"-palette", "script"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := settingsFrom(t, args...); err == nil {
				t.Errorf("settings from %v error = nil", args)
			}
		})
	}
}

func TestLandmarkFlag(t *testing.T) {
	s, err := settingsFrom(t, "-landmark", "hull")
	if err != nil {
		t.Fatalf("settings error = %v", err)
	}
	if s.RendererSettings.Viewport != burningship.Landmarks["hull"] {
		t.Errorf("viewport = %s", s.RendererSettings.Viewport)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "settings.json")
	contents := `{"Mode": "rpc", "RendererSettings": {"Width": 40, "Height": 30, "Viewport": {"XMin": -2, "XMax": 1, "YMin": -2, "YMax": 1}}}`
	if _, err := misc.WriteFile(fileName, []byte(contents)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := loadSettings(fileName)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	a, err := parseArguments([]string{"-width", "50"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArguments() error = %v", err)
	}
	if err := a.apply(&s); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if s.Mode != "rpc" || s.Address != "localhost:51000" {
		t.Errorf("mode %s at %s", s.Mode, s.Address)
	}
	if s.RendererSettings.Width != 50 || s.RendererSettings.Height != 30 {
		t.Errorf("size = %dx%d, want 50x30", s.RendererSettings.Width, s.RendererSettings.Height)
	}
	if s.RendererSettings.Viewport.XMin != -2 {
		t.Errorf("viewport = %s", s.RendererSettings.Viewport)
	}

	if _, err := loadSettings(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("loadSettings() of a missing file error = nil")
	}
	broken := filepath.Join(dir, "broken.json")
	if _, err := misc.WriteFile(broken, []byte("{")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := loadSettings(broken); err == nil {
		t.Error("loadSettings() of broken json error = nil")
	}
}

func TestRunPNG(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "ship.png")
	s, err := settingsFrom(t, "-width", "24", "-height", "18", "-output", output, "-backup", "-workers", "2")
	if err != nil {
		t.Fatalf("settings error = %v", err)
	}

	if err := run(s, bslogger.NewLogger("Test", bslogger.Normal, nil)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 18 {
		t.Errorf("image is %s, want 24x18", img.Bounds())
	}

	contents, err := misc.ReadFile(filepath.Join(dir, "ship.json"))
	if err != nil {
		t.Fatalf("settings backup missing - %v", err)
	}
	var backup settings
	if err := json.Unmarshal(contents, &backup); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if backup.RendererSettings.Width != 24 || backup.Output != output {
		t.Errorf("backup = %s", backup.String())
	}
}
