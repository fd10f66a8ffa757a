package physics

import (
	"math"

	"github.com/san-kum/stellarsim/internal/astro"
)

// RadiativeGradient is ∇_rad = 3κρLP / (16π a c T⁴ G M r²). It is zero
// when L, M or r is not positive.
func RadiativeGradient(p, t, l, m, r, rho, kappa float64) float64 {
	if l <= 0 || m <= 0 || r <= 0 {
		return 0
	}
	num := 3 * kappa * rho * l * p
	den := 16 * math.Pi * astro.ARad * astro.C * t * t * t * t * astro.G * m * r * r
	return num / den
}

// AdiabaticGradient is ∇_ad = (γ-1)/γ.
func AdiabaticGradient(gamma float64) float64 {
	return (gamma - 1.0) / gamma
}

// IsConvective applies the Schwarzschild criterion ∇_rad > ∇_ad.
func IsConvective(p, t, l, m, r, rho, kappa, gamma float64) bool {
	return RadiativeGradient(p, t, l, m, r, rho, kappa) > AdiabaticGradient(gamma)
}
