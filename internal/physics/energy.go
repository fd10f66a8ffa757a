package physics

import (
	"math"

	"github.com/san-kum/stellarsim/internal/astro"
)

// Ignition thresholds. Each rate is exactly zero below its threshold.
const (
	ppThresholdT6     = 4.0
	cnoThresholdT6    = 13.0
	tripleThresholdT8 = 1.0
)

// PPChainRate returns ε_pp in W/kg.
func PPChainRate(rho, t, x float64) float64 {
	t6 := t / 1e6
	if t6 < ppThresholdT6 {
		return 0
	}
	return 1.07e-12 * rho * x * x * math.Pow(t6, 4)
}

// CNOCycleRate returns ε_CNO in W/kg for hydrogen fraction x and CNO
// catalyst fraction xCNO.
func CNOCycleRate(rho, t, x, xCNO float64) float64 {
	t6 := t / 1e6
	if t6 < cnoThresholdT6 {
		return 0
	}
	return 8.24e-31 * rho * x * xCNO * math.Pow(t6, 16)
}

// TripleAlphaRate returns ε_3α in W/kg for helium fraction y.
func TripleAlphaRate(rho, t, y float64) float64 {
	t8 := t / 1e8
	if t8 < tripleThresholdT8 {
		return 0
	}
	return 5.09e-17 * rho * rho * y * y * y * math.Pow(t8, 40)
}

// EnergyGenerationRate sums the three burning channels. The exponents make
// these laws explode quickly; callers clamp temperature first.
func EnergyGenerationRate(rho, t float64, comp astro.Composition) float64 {
	return PPChainRate(rho, t, comp.X) +
		CNOCycleRate(rho, t, comp.X, comp.CNO()) +
		TripleAlphaRate(rho, t, comp.Y)
}
