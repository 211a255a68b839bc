// Package palette holds the color mappers that can replace burningship.DefaultPalette.
package palette

import (
	"BurningShip/burningship"
	"fmt"
	"strings"
)

// Settings selects a palette by Kind: "default", "gradient" or "script"
type Settings struct {
	Gradient   []GradientSettings
	Kind       string
	ScriptFile string
}

func (s *Settings) String() string {
	output := "{Palette "
	output += fmt.Sprintf("Kind: %s ", s.Kind)
	output += fmt.Sprintf("Gradient: %v ", s.Gradient)
	output += fmt.Sprintf("Script File: %s}", s.ScriptFile)
	return output
}

func (s *Settings) Verify() error {
	s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
	if s.Kind == "" {
		s.Kind = "default"
	}
	if s.Kind == "gradient" && len(s.Gradient) == 0 {
		s.Gradient = DefaultGradientSettings
	}
	if s.Kind == "script" && s.ScriptFile == "" {
		return fmt.Errorf("palette kind script needs a script file")
	}
	return nil
}

// New builds the mapper described by settings
func New(settings Settings) (burningship.ColorMapper, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	switch settings.Kind {
	case "default":
		return burningship.DefaultPalette{}, nil
	case "gradient":
		return NewGradient(settings.Gradient)
	case "script":
		return LoadScript(settings.ScriptFile)
	}
	return nil, fmt.Errorf("unknown palette kind %q", settings.Kind)
}
