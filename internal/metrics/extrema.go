package metrics

import (
	"math"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/evolution"
)

// extremum tracks the running max (or min) of one model quantity.
type extremum struct {
	name    string
	get     func(evolution.StellarModel) float64
	min     bool
	value   float64
	samples int
}

func (e *extremum) Name() string { return e.name }

func (e *extremum) Observe(m evolution.StellarModel) {
	v := e.get(m)
	switch {
	case e.samples == 0:
		e.value = v
	case e.min:
		e.value = math.Min(e.value, v)
	default:
		e.value = math.Max(e.value, v)
	}
	e.samples++
}

func (e *extremum) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.value
}

func (e *extremum) Reset() {
	e.value = 0
	e.samples = 0
}

// NewPeakLuminosity reports the highest luminosity in L☉.
func NewPeakLuminosity() Metric {
	return &extremum{
		name: "peak_luminosity_lsun",
		get:  func(m evolution.StellarModel) float64 { return astro.SolarLuminosity(m.Luminosity) },
	}
}

// NewMaxRadius reports the largest radius in R☉.
func NewMaxRadius() Metric {
	return &extremum{
		name: "max_radius_rsun",
		get:  func(m evolution.StellarModel) float64 { return astro.SolarRadius(m.Radius) },
	}
}

func NewTeffMin() Metric {
	return &extremum{
		name: "teff_min_k",
		get:  func(m evolution.StellarModel) float64 { return m.Teff },
		min:  true,
	}
}

func NewTeffMax() Metric {
	return &extremum{
		name: "teff_max_k",
		get:  func(m evolution.StellarModel) float64 { return m.Teff },
	}
}
