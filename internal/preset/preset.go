// Package preset loads named, reusable table directives from YAML.
package preset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/edouard-claude/tably/internal/directive"
)

// Preset is a declarative YAML definition binding a name to a full
// table directive.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Directive   string `yaml:"directive"`
}

// Parse parses YAML bytes into a Preset.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks required fields and that the directive text parses.
func Validate(p *Preset) error {
	if p.Name == "" {
		return fmt.Errorf("validate preset: missing 'name'")
	}
	if p.Directive == "" {
		return fmt.Errorf("validate preset %q: missing 'directive'", p.Name)
	}
	d, err := directive.Parse(p.Directive)
	if err != nil {
		return fmt.Errorf("validate preset %q: %w", p.Name, err)
	}
	if _, err := directive.ParseParams(d.RawArgs); err != nil {
		return fmt.Errorf("validate preset %q: %w", p.Name, err)
	}
	return nil
}

// Find returns the preset with the given name, or nil.
func Find(presets []Preset, name string) *Preset {
	for i := range presets {
		if presets[i].Name == name {
			return &presets[i]
		}
	}
	return nil
}
