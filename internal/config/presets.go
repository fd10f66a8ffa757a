package config

import (
	"sort"

	"github.com/san-kum/stellarsim/internal/astro"
)

type Preset struct {
	Description string
	Mass        float64
	Composition astro.Composition
}

var Presets = map[string]Preset{
	"sun": {
		Description: "solar twin, ends as a white dwarf",
		Mass:        1.0,
		Composition: astro.SolarComposition(),
	},
	"red_dwarf": {
		Description: "low mass, no post-main-sequence phases",
		Mass:        0.3,
		Composition: astro.SolarComposition(),
	},
	"metal_poor": {
		Description: "population II dwarf",
		Mass:        0.8,
		Composition: astro.Composition{X: 0.75, Y: 0.249, Z: 0.001},
	},
	"intermediate": {
		Description: "A-type star through the AGB",
		Mass:        3.0,
		Composition: astro.SolarComposition(),
	},
	"massive": {
		Description: "supernova leaving a neutron star",
		Mass:        15.0,
		Composition: astro.SolarComposition(),
	},
	"hypergiant": {
		Description: "supernova leaving a black hole",
		Mass:        40.0,
		Composition: astro.SolarComposition(),
	},
}

// GetPreset returns the default configuration with the preset's star, or
// nil for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Mass = p.Mass
	cfg.Composition = p.Composition
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
