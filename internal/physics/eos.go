package physics

import "github.com/san-kum/stellarsim/internal/astro"

const minDensity = 1e-10

// GasPressure is the ideal gas pressure P = ρ k_B T / (μ m_u).
func GasPressure(rho, t, mu float64) float64 {
	return rho * astro.KB * t / (mu * astro.MU)
}

// RadiationPressure is P_rad = a T⁴ / 3.
func RadiationPressure(t float64) float64 {
	return (1.0 / 3.0) * astro.ARad * t * t * t * t
}

func TotalPressure(rho, t, mu float64) float64 {
	return GasPressure(rho, t, mu) + RadiationPressure(t)
}

// DensityFromPressure inverts the gas + radiation equation of state.
// When radiation pressure alone exceeds P the gas share is clamped to 1% of
// P, and the result never drops below 1e-10 kg/m³. Both clamps keep the
// structure integrator away from zero or negative densities.
func DensityFromPressure(p, t, mu float64) float64 {
	pGas := p - RadiationPressure(t)
	if pGas <= 0 {
		pGas = 0.01 * p
	}
	rho := pGas * mu * astro.MU / (astro.KB * t)
	if rho < minDensity {
		return minDensity
	}
	return rho
}
