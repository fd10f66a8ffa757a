package metrics

import (
	"strings"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/evolution"
)

// PhaseDuration is the age spanned by the models of one phase, in Gyr.
type PhaseDuration struct {
	name        string
	phase       evolution.Phase
	first, last float64
	samples     int
}

func NewPhaseDuration(phase evolution.Phase) *PhaseDuration {
	return &PhaseDuration{
		name:  strings.ToLower(strings.ReplaceAll(phase.String(), " ", "_")) + "_gyr",
		phase: phase,
	}
}

func (p *PhaseDuration) Name() string { return p.name }

func (p *PhaseDuration) Observe(m evolution.StellarModel) {
	if m.Phase != p.phase {
		return
	}
	if p.samples == 0 {
		p.first = m.Age
	}
	p.last = m.Age
	p.samples++
}

func (p *PhaseDuration) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return astro.Years(p.last-p.first) / 1e9
}

func (p *PhaseDuration) Reset() {
	p.first, p.last = 0, 0
	p.samples = 0
}

// FinalMass is the mass of the last observed model in M☉.
type FinalMass struct {
	mass float64
}

func NewFinalMass() *FinalMass { return &FinalMass{} }

func (f *FinalMass) Name() string { return "final_mass_msun" }

func (f *FinalMass) Observe(m evolution.StellarModel) {
	f.mass = astro.SolarMass(m.Mass)
}

func (f *FinalMass) Value() float64 { return f.mass }

func (f *FinalMass) Reset() { f.mass = 0 }
