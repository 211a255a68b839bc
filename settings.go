package main

import (
	"BurningShip/burningship"
	"BurningShip/misc"
	"BurningShip/palette"
	"BurningShip/raster"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"
)

var modes = []string{"png", "web", "tui", "window", "rpc", "remote"}

type settings struct {
	logger bslogger.Logger

	Address          string
	BackupSettings   bool
	ChannelPolicy    string
	Landmark         string
	Mode             string
	Output           string
	PaletteSettings  palette.Settings
	RendererSettings burningship.Settings
}

func newSettings() settings {
	return settings{
		logger: bslogger.NewLogger("Settings", bslogger.Normal, nil),
	}
}

// loadSettings reads a json settings file. Without a file every setting keeps its default.
func loadSettings(settingsFile string) (settings, error) {
	s := newSettings()
	if settingsFile == "" {
		return s, nil
	}

	fileBytes, err := misc.ReadFile(settingsFile)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(fileBytes, &s); err != nil {
		return s, fmt.Errorf("unable to parse settings file %s - %w", settingsFile, err)
	}
	return s, nil
}

func (s *settings) String() string {
	output := "\nBurning ship settings\n"
	output += fmt.Sprintf("Address: %s\n", s.Address)
	output += fmt.Sprintf("Backup Settings: %t\n", s.BackupSettings)
	output += fmt.Sprintf("Channel Policy: %s\n", s.ChannelPolicy)
	output += fmt.Sprintf("Landmark: %s\n", s.Landmark)
	output += fmt.Sprintf("Mode: %s\n", s.Mode)
	output += fmt.Sprintf("Output: %s\n", s.Output)
	output += fmt.Sprintf("Palette: %s\n", s.PaletteSettings.String())
	output += s.RendererSettings.String()
	return output
}

func (s *settings) Verify() error {
	s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
	if s.Mode == "" {
		s.Mode = "png"
	}
	known := false
	for _, mode := range modes {
		if s.Mode == mode {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown mode %q, expected one of %s", s.Mode, strings.Join(modes, ", "))
	}

	if s.Address == "" {
		switch s.Mode {
		case "web":
			s.Address = "localhost:8080"
		case "rpc", "remote":
			s.Address = "localhost:51000"
		}
	}

	policy, err := raster.ParseChannelPolicy(s.ChannelPolicy)
	if err != nil {
		return err
	}
	s.ChannelPolicy = policy.String()

	if s.Landmark != "" {
		viewport, ok := burningship.Landmarks[s.Landmark]
		if !ok {
			names := make([]string, 0, len(burningship.Landmarks))
			for name := range burningship.Landmarks {
				names = append(names, name)
			}
			sort.Strings(names)
			return fmt.Errorf("unknown landmark %q, expected one of %s", s.Landmark, strings.Join(names, ", "))
		}
		s.RendererSettings.Viewport = viewport
	}

	if s.Output == "" {
		s.Output = "burningship.png"
	}

	if err := s.PaletteSettings.Verify(); err != nil {
		return err
	}
	return s.RendererSettings.Verify()
}

func (s *settings) channelPolicy() raster.ChannelPolicy {
	policy, _ := raster.ParseChannelPolicy(s.ChannelPolicy)
	return policy
}

// backup writes the settings next to the output image so the render can be repeated
func (s *settings) backup() (string, error) {
	fileName := strings.TrimSuffix(s.Output, filepath.Ext(s.Output)) + ".json"
	contents, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	bytesWritten, err := misc.WriteFile(fileName, contents)
	if err != nil {
		return "", err
	}
	if bytesWritten == 0 {
		return "", fmt.Errorf("unable to make a backup copy of settings in %s", fileName)
	}
	return fileName, nil
}
