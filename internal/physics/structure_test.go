package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/dynamo"
	"github.com/san-kum/stellarsim/internal/physics"
)

var _ = Describe("Scaling relations", func() {
	DescribeTable("follow the pure power laws",
		func(mSolar float64) {
			m := mSolar * astro.MSun
			Expect(physics.MainSequenceLuminosity(m) / astro.LSun).To(BeNumerically("~", math.Pow(mSolar, 3.5), 1e-12*math.Pow(mSolar, 3.5)))
			Expect(physics.MainSequenceRadius(m) / astro.RSun).To(BeNumerically("~", math.Pow(mSolar, 0.8), 1e-12*math.Pow(mSolar, 0.8)))
		},
		Entry("red dwarf", 0.1),
		Entry("sun", 1.0),
		Entry("B star", 5.0),
		Entry("O star", 60.0),
	)

	It("recovers the solar effective temperature", func() {
		Expect(physics.EffectiveTemperature(astro.LSun, astro.RSun)).To(BeNumerically("~", astro.TSun, 10))
	})

	It("gives ten billion years for the sun", func() {
		Expect(astro.Years(physics.MainSequenceLifetime(astro.MSun))).To(BeNumerically("~", 1e10, 1))
	})
})

var _ = Describe("Structure equations", func() {
	var sys *physics.Structure

	BeforeEach(func() {
		sys = physics.NewStructure(astro.SolarComposition())
	})

	It("has four state components", func() {
		Expect(sys.StateDim()).To(Equal(4))
	})

	It("produces finite physical derivatives at core conditions", func() {
		x := dynamo.State{0.1 * astro.MSun, 2e16, 0.1 * astro.LSun, 1.5e7}
		dx := sys.Derive(x, 0.05*astro.RSun)

		Expect(dx.IsValid()).To(BeTrue())
		Expect(dx[0]).To(BeNumerically(">", 0))
		Expect(dx[1]).To(BeNumerically("<", 0))
		Expect(dx[2]).To(BeNumerically(">", 0))
		Expect(dx[3]).To(BeNumerically("<=", 0))
	})

	It("treats sub-floor states as the floors", func() {
		floored := sys.Derive(dynamo.State{1e20, astro.PSurface, 1e20, astro.TSurfaceMin}, astro.RCenter)
		raw := sys.Derive(dynamo.State{0, -5, 0, 10}, 0)
		Expect(raw).To(Equal(floored))
		Expect(raw.IsValid()).To(BeTrue())
	})

	It("switches dT/dr to the adiabatic law when convective", func() {
		x := dynamo.State{0.2 * astro.MSun, 1e16, 10 * astro.LSun, 1.5e7}
		r := 0.1 * astro.RSun
		loc := sys.Evaluate(x, r)
		dx := sys.Derive(x, r)

		if loc.Convective {
			want := -(loc.P * loc.T * physics.AdiabaticGradient(sys.Gamma)) / (loc.R * astro.G * loc.M * loc.Rho)
			Expect(dx[3]).To(BeNumerically("~", want, math.Abs(want)*1e-12))
		} else {
			want := -(3 * loc.Kappa * loc.Rho * loc.L) / (16 * math.Pi * astro.ARad * astro.C * math.Pow(loc.T, 3) * r * r)
			Expect(dx[3]).To(BeNumerically("~", want, math.Abs(want)*1e-12))
		}
	})

	It("exposes composition and gamma as parameters", func() {
		var cfg dynamo.Configurable = sys
		Expect(cfg.SetParam("gamma", 4.0/3.0)).To(Succeed())
		Expect(cfg.GetParams()).To(HaveKeyWithValue("gamma", 4.0/3.0))
		Expect(cfg.SetParam("z", 0.02)).To(Succeed())
		Expect(sys.Comp.Z).To(Equal(0.02))
		Expect(cfg.SetParam("omega", 1)).NotTo(Succeed())
	})
})
