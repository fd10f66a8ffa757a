package evolution

import (
	"fmt"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/classify"
	"github.com/san-kum/stellarsim/internal/physics"
)

// StellarModel is the state of a star at one age. All fields are SI.
type StellarModel struct {
	Mass        float64 // kg
	Radius      float64 // m
	Luminosity  float64 // W
	Teff        float64 // K
	Age         float64 // s
	Phase       Phase
	Composition astro.Composition
}

// SpectralClass is derived from Teff on every call.
func (m StellarModel) SpectralClass() string {
	return classify.SpectralClass(m.Teff)
}

// Color returns the blackbody colour of Teff as #rrggbb.
func (m StellarModel) Color() string {
	return classify.TemperatureToHex(m.Teff)
}

func (m StellarModel) RGB() (r, g, b int) {
	return classify.TemperatureToRGB(m.Teff)
}

// SolarView is a model expressed in solar units.
type SolarView struct {
	M             float64 `json:"M"`
	R             float64 `json:"R"`
	L             float64 `json:"L"`
	Teff          float64 `json:"T_eff"`
	AgeGyr        float64 `json:"age_Gyr"`
	Phase         string  `json:"phase"`
	SpectralClass string  `json:"spectral_class"`
}

func (m StellarModel) Solar() SolarView {
	return SolarView{
		M:             astro.SolarMass(m.Mass),
		R:             astro.SolarRadius(m.Radius),
		L:             astro.SolarLuminosity(m.Luminosity),
		Teff:          m.Teff,
		AgeGyr:        astro.Years(m.Age) / 1e9,
		Phase:         m.Phase.String(),
		SpectralClass: m.SpectralClass(),
	}
}

func (m StellarModel) String() string {
	s := m.Solar()
	return fmt.Sprintf("M=%.2f M☉, R=%.2f R☉, L=%.2f L☉, T=%.0f K, age=%.2f Gyr, phase=%s",
		s.M, s.R, s.L, s.Teff, s.AgeGyr, s.Phase)
}

// ZAMS builds the zero-age main-sequence model from the scaling relations.
func ZAMS(massKg float64, comp astro.Composition) StellarModel {
	l := physics.MainSequenceLuminosity(massKg)
	r := physics.MainSequenceRadius(massKg)
	return StellarModel{
		Mass:        massKg,
		Radius:      r,
		Luminosity:  l,
		Teff:        physics.EffectiveTemperature(l, r),
		Phase:       MainSequence,
		Composition: comp,
	}
}
