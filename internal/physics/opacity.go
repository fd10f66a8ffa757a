package physics

import (
	"math"

	"github.com/san-kum/stellarsim/internal/astro"
)

const (
	minOpacity            = 1e-10
	kramersTemperatureMin = 1000.0
)

// KramersOpacity is the bound-free plus free-free opacity
// κ = κ₀ (1+X) Z ρ T^-3.5, with T floored at 1000 K.
func KramersOpacity(rho, t float64, comp astro.Composition) float64 {
	t = math.Max(t, kramersTemperatureMin)
	return astro.Kappa0 * (1 + comp.X) * comp.Z * rho * math.Pow(t, -3.5)
}

// ElectronScatteringOpacity is the Thomson term 0.02 (1+X) m²/kg.
func ElectronScatteringOpacity(comp astro.Composition) float64 {
	return 0.02 * (1 + comp.X)
}

// TotalOpacity combines the Kramers and electron-scattering terms as a
// harmonic mean, floored at 1e-10.
func TotalOpacity(rho, t float64, comp astro.Composition) float64 {
	kk := KramersOpacity(rho, t, comp)
	kes := ElectronScatteringOpacity(comp)
	kappa := 1.0 / (1.0/kk + 1.0/kes)
	if math.IsNaN(kappa) || kappa < minOpacity {
		return minOpacity
	}
	return kappa
}
