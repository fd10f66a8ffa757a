package structure

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/dynamo"
	"github.com/san-kum/stellarsim/internal/integrators"
	"github.com/san-kum/stellarsim/internal/physics"
)

// Uniform density used for the enclosed mass of the central sphere.
const centralDensity = 1.6e5

// Params describes one structure integration.
type Params struct {
	Mass               float64 // total mass, kg
	CoreLuminosity     float64 // W at r0
	CentralTemperature float64 // K at r0
	Composition        astro.Composition

	// Integrator names a registered stepper; empty selects the default.
	Integrator string
	// RelTol, AbsTol and MaxSteps override the defaults when positive.
	RelTol     float64
	AbsTol     float64
	MaxSteps   int
	// Overrides sets structure parameters (x, y, z, gamma) by name.
	Overrides  map[string]float64

	Logger *zap.Logger
}

// DefaultParams seeds a run for a star of massSolar solar masses with the
// main-sequence luminosity and a solar-like central temperature.
func DefaultParams(massSolar float64, comp astro.Composition) Params {
	m := massSolar * astro.MSun
	return Params{
		Mass:               m,
		CoreLuminosity:     physics.MainSequenceLuminosity(m),
		CentralTemperature: 1.5e7,
		Composition:        comp,
	}
}

// InitialState returns r0 and the central boundary state (M, P, L, T).
func InitialState(p Params) (float64, dynamo.State) {
	r0 := astro.RCenter
	m0 := 4.0 / 3.0 * math.Pi * r0 * r0 * r0 * centralDensity
	rEst := physics.MainSequenceRadius(p.Mass)
	pc := 0.5 * astro.G * p.Mass * p.Mass / (rEst * rEst * rEst * rEst)
	return r0, dynamo.State{m0, pc, p.CoreLuminosity, p.CentralTemperature}
}

// Integrate solves the structure equations outward from the centre until
// the pressure falls through the surface value. It never panics; every
// failure, including a surface that is never reached, is a *Failed.
func Integrate(p Params) (sol Solution) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("structure integration panicked", zap.Any("panic", r))
			sol = &Failed{Message: fmt.Sprint(r)}
		}
	}()

	stepper, err := integrators.Get(p.Integrator)
	if err != nil {
		return &Failed{Message: err.Error()}
	}

	sys, err := newSystem(p)
	if err != nil {
		return &Failed{Message: err.Error()}
	}
	r0, x0 := InitialState(p)
	rEst := physics.MainSequenceRadius(p.Mass)

	opts := integrators.Options{
		RelTol:   astro.RTol,
		AbsTol:   astro.ATol,
		MaxStep:  rEst / 100,
		MaxSteps: p.MaxSteps,
	}
	if p.RelTol > 0 {
		opts.RelTol = p.RelTol
	}
	if p.AbsTol > 0 {
		opts.AbsTol = p.AbsTol
	}

	surface := integrators.Event{
		Name:      "surface",
		Func:      func(r float64, x dynamo.State) float64 { return x[1] - astro.PSurface },
		Direction: -1,
		Terminal:  true,
	}

	log.Debug("integrating structure",
		zap.String("integrator", stepper.Name()),
		zap.Float64("mass_solar", astro.SolarMass(p.Mass)),
		zap.Float64("central_pressure", x0[1]),
		zap.Float64("r_max", 10*rEst))

	res, err := integrators.Solve(sys, stepper, r0, 10*rEst, x0, opts, surface)
	if err != nil {
		log.Warn("structure integration failed", zap.Error(err))
		return &Failed{Message: err.Error()}
	}
	if res.Status != integrators.StatusEvent {
		log.Warn("surface not reached", zap.Int("steps", res.Steps))
		return &Failed{Message: fmt.Sprintf("surface pressure not reached within r = %.4g m", 10*rEst)}
	}

	rs, _ := res.Final()
	log.Info("structure converged",
		zap.Float64("radius_solar", astro.SolarRadius(rs)),
		zap.Int("steps", res.Steps),
		zap.Int("rejected", res.Rejected))

	return converged(res)
}

// converged flattens a solver result into a profile whose last row is the
// surface.
func converged(res *integrators.Result) *Converged {
	n := res.Len()
	prof := Profile{
		R: make([]float64, n),
		M: make([]float64, n),
		P: make([]float64, n),
		L: make([]float64, n),
		T: make([]float64, n),
	}
	for i, x := range res.X {
		prof.R[i] = res.T[i]
		prof.M[i], prof.P[i], prof.L[i], prof.T[i] = x[0], x[1], x[2], x[3]
	}

	rs, xs := res.Final()
	return &Converged{
		Radius:             rs,
		Mass:               xs[0],
		Luminosity:         xs[2],
		SurfaceTemperature: xs[3],
		Profile:            prof,
		Steps:              res.Steps,
		dense:              res.At,
	}
}

// newSystem builds the structure equations and applies the parameter
// overrides in name order.
func newSystem(p Params) (*physics.Structure, error) {
	sys := physics.NewStructure(p.Composition)
	if len(p.Overrides) == 0 {
		return sys, nil
	}

	var cfg dynamo.Configurable = sys
	names := make([]string, 0, len(p.Overrides))
	for name := range p.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cfg.SetParam(name, p.Overrides[name]); err != nil {
			return nil, err
		}
	}
	return sys, nil
}
