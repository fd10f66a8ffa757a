package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/physics"
)

var _ = Describe("Equation of state", func() {
	const (
		rhoCore = 1.6e5
		tCore   = 1.5e7
	)
	mu := astro.SolarComposition().MeanMolecularWeight()

	It("sums gas and radiation pressure", func() {
		total := physics.TotalPressure(rhoCore, tCore, mu)
		Expect(total).To(Equal(physics.GasPressure(rhoCore, tCore, mu) + physics.RadiationPressure(tCore)))
	})

	It("inverts the total pressure", func() {
		p := physics.TotalPressure(rhoCore, tCore, mu)
		Expect(physics.DensityFromPressure(p, tCore, mu)).To(BeNumerically("~", rhoCore, rhoCore*1e-9))
	})

	It("clamps the gas share to 1% when radiation dominates", func() {
		t := 1e8
		p := 0.5 * physics.RadiationPressure(t)
		want := 0.01 * p * mu * astro.MU / (astro.KB * t)
		Expect(physics.DensityFromPressure(p, t, mu)).To(BeNumerically("~", want, want*1e-12))
	})

	DescribeTable("never returns a density below the floor",
		func(p, t float64) {
			Expect(physics.DensityFromPressure(p, t, mu)).To(BeNumerically(">=", 1e-10))
		},
		Entry("vanishing pressure", 1e-30, 1e7),
		Entry("zero pressure", 0.0, 1e7),
		Entry("radiation dominated", 1.0, 1e9),
		Entry("surface floor", astro.PSurface, astro.TSurfaceMin),
	)
})

var _ = Describe("Opacity", func() {
	sun := astro.SolarComposition()

	It("floors the Kramers temperature at 1000 K", func() {
		Expect(physics.KramersOpacity(1.0, 10, sun)).To(Equal(physics.KramersOpacity(1.0, 1000, sun)))
	})

	It("uses the Thomson term", func() {
		Expect(physics.ElectronScatteringOpacity(sun)).To(BeNumerically("~", 0.02*(1+astro.XSun), 1e-15))
	})

	It("is bounded by the smaller component", func() {
		rho, t := 1e3, 1e6
		kk := physics.KramersOpacity(rho, t, sun)
		kes := physics.ElectronScatteringOpacity(sun)
		Expect(physics.TotalOpacity(rho, t, sun)).To(BeNumerically("<=", math.Min(kk, kes)))
	})

	DescribeTable("never drops below the floor",
		func(rho, t float64, comp astro.Composition) {
			Expect(physics.TotalOpacity(rho, t, comp)).To(BeNumerically(">=", 1e-10))
		},
		Entry("zero density", 0.0, 1e6, sun),
		Entry("floor density", 1e-10, 1e7, sun),
		Entry("metal free", 1.0, 1e5, astro.Composition{X: 0.75, Y: 0.25}),
		Entry("temperature at floor", 1.0, 1000.0, sun),
		Entry("bare composition", 1.0, 1e6, astro.Composition{}),
	)
})

var _ = Describe("Energy generation", func() {
	sun := astro.SolarComposition()

	DescribeTable("switches on sharply at each threshold",
		func(rate func(t float64) float64, below, above float64) {
			Expect(rate(below)).To(Equal(0.0))
			Expect(rate(above)).To(BeNumerically(">", 0))
		},
		Entry("pp chain",
			func(t float64) float64 { return physics.PPChainRate(1e5, t, sun.X) }, 3.9e6, 4.1e6),
		Entry("CNO cycle",
			func(t float64) float64 { return physics.CNOCycleRate(1e5, t, sun.X, sun.CNO()) }, 12.9e6, 13.1e6),
		Entry("triple alpha",
			func(t float64) float64 { return physics.TripleAlphaRate(1e5, t, sun.Y) }, 0.99e8, 1.01e8),
	)

	It("sums the channels without weighting", func() {
		rho, t := 1e7, 1.2e8
		sum := physics.PPChainRate(rho, t, sun.X) +
			physics.CNOCycleRate(rho, t, sun.X, sun.CNO()) +
			physics.TripleAlphaRate(rho, t, sun.Y)
		Expect(physics.EnergyGenerationRate(rho, t, sun)).To(Equal(sum))
	})

	It("uses the fourth power of T6 for the pp chain", func() {
		got := physics.PPChainRate(1e5, 1e7, 0.7)
		Expect(got).To(BeNumerically("~", 1.07e-12*1e5*0.49*1e4, 1e-12))
	})
})

var _ = Describe("Transport criterion", func() {
	It("returns zero radiative gradient for non-positive L, M or r", func() {
		Expect(physics.RadiativeGradient(1e10, 1e6, 0, 1e30, 1e8, 1, 1)).To(Equal(0.0))
		Expect(physics.RadiativeGradient(1e10, 1e6, 1e26, -1, 1e8, 1, 1)).To(Equal(0.0))
		Expect(physics.RadiativeGradient(1e10, 1e6, 1e26, 1e30, 0, 1, 1)).To(Equal(0.0))
	})

	It("uses 0.4 for a monatomic gas", func() {
		Expect(physics.AdiabaticGradient(astro.GammaAdiabatic)).To(BeNumerically("~", 0.4, 1e-15))
	})

	It("agrees with the gradient comparison", func() {
		p, t, l, m, r, rho, kappa := 1e15, 1e7, 1e26, 1e29, 1e7, 1e4, 1.0
		grad := physics.RadiativeGradient(p, t, l, m, r, rho, kappa)
		Expect(physics.IsConvective(p, t, l, m, r, rho, kappa, astro.GammaAdiabatic)).To(Equal(grad > 0.4))
	})
})
