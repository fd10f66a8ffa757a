package physics

import (
	"math"

	"github.com/san-kum/stellarsim/internal/astro"
)

// MainSequenceLuminosity is L = L_sun (M/M_sun)^3.5 for a mass in kg.
func MainSequenceLuminosity(m float64) float64 {
	return astro.LSun * math.Pow(m/astro.MSun, astro.AlphaML)
}

// MainSequenceRadius is R = R_sun (M/M_sun)^0.8 for a mass in kg.
func MainSequenceRadius(m float64) float64 {
	return astro.RSun * math.Pow(m/astro.MSun, astro.BetaMR)
}

// EffectiveTemperature solves L = 4πR²σT⁴ for T.
func EffectiveTemperature(l, r float64) float64 {
	return math.Pow(l/(4*math.Pi*r*r*astro.SigmaSB), 0.25)
}

// MainSequenceLifetime is t_MS = 1e10 yr (M/M_sun)^-2.5, in seconds.
func MainSequenceLifetime(m float64) float64 {
	return astro.MSLifetimeCoeff * math.Pow(m/astro.MSun, -2.5)
}
