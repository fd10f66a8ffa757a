package structure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/dynamo"
	"github.com/san-kum/stellarsim/internal/integrators"
	"github.com/san-kum/stellarsim/internal/physics"
)

func TestInitialState(t *testing.T) {
	p := DefaultParams(1.0, astro.SolarComposition())
	r0, x0 := InitialState(p)

	assert.Equal(t, astro.RCenter, r0)
	require.Len(t, x0, 4)

	wantM0 := 4.0 / 3.0 * math.Pi * math.Pow(astro.RCenter, 3) * 1.6e5
	assert.InEpsilon(t, wantM0, x0[0], 1e-12)

	wantP0 := 0.5 * astro.G * astro.MSun * astro.MSun / math.Pow(astro.RSun, 4)
	assert.InEpsilon(t, wantP0, x0[1], 1e-12)

	assert.Equal(t, physics.MainSequenceLuminosity(astro.MSun), x0[2])
	assert.Equal(t, 1.5e7, x0[3])
}

// The discontinuous convective/radiative temperature gradient makes the
// solver chatter, so the default solar run exhausts its step budget.
func TestIntegrate_Sun(t *testing.T) {
	p := DefaultParams(1.0, astro.SolarComposition())
	p.Logger = zaptest.NewLogger(t)

	sol := Integrate(p)
	failed, ok := sol.(*Failed)
	require.True(t, ok, "expected *Failed, got %T", sol)
	assert.Contains(t, failed.Message, "step budget")
}

// decay drives P (x[1]) down exponentially while the other components grow
// linearly, so the surface event fires at a known radius.
type decay struct{}

func (decay) StateDim() int { return 4 }

func (decay) Derive(x dynamo.State, r float64) dynamo.State {
	return dynamo.State{1, -x[1], 2, -3}
}

func TestConverged_FromResult(t *testing.T) {
	stepper, err := integrators.Get("rk45")
	require.NoError(t, err)

	surface := integrators.Event{
		Name:      "surface",
		Func:      func(r float64, x dynamo.State) float64 { return x[1] - astro.PSurface },
		Direction: -1,
		Terminal:  true,
	}
	x0 := dynamo.State{0, 1e4 * astro.PSurface, 0, 1e4}
	res, err := integrators.Solve(decay{}, stepper, 0, 100, x0, integrators.Options{RelTol: 1e-9, AbsTol: 1e-12}, surface)
	require.NoError(t, err)
	require.Equal(t, integrators.StatusEvent, res.Status)

	c := converged(res)
	n := c.Profile.Len()
	require.Equal(t, res.Len(), n)
	require.Greater(t, n, 1)

	assert.Equal(t, c.Radius, c.Profile.R[n-1])
	assert.Equal(t, c.Mass, c.Profile.M[n-1])
	assert.Equal(t, c.Luminosity, c.Profile.L[n-1])
	assert.Equal(t, c.SurfaceTemperature, c.Profile.T[n-1])
	assert.Equal(t, res.Steps, c.Steps)
	assert.InDelta(t, math.Log(1e4), c.Radius, 1e-4)
	assert.InDelta(t, astro.PSurface, c.Profile.P[n-1], 1e-3*astro.PSurface)

	for i := 1; i < n; i++ {
		assert.Greater(t, c.Profile.R[i], c.Profile.R[i-1], "radius must increase")
	}

	mid := 0.5 * c.Radius
	x, ok := c.At(mid)
	require.True(t, ok)
	assert.Len(t, x, 4)
	assert.InEpsilon(t, 1e4*astro.PSurface*math.Exp(-mid), x[1], 1e-3)

	_, ok = c.At(2 * c.Radius)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
}

func TestNewSystem_Overrides(t *testing.T) {
	p := DefaultParams(1.0, astro.SolarComposition())
	p.Overrides = map[string]float64{"gamma": 1.4, "z": 0.01}

	sys, err := newSystem(p)
	require.NoError(t, err)
	assert.Equal(t, 1.4, sys.Gamma)
	assert.Equal(t, 0.01, sys.Comp.Z)
	assert.Equal(t, 1.4, sys.GetParams()["gamma"])
}

func TestIntegrate_UnknownOverride(t *testing.T) {
	p := DefaultParams(1.0, astro.SolarComposition())
	p.Overrides = map[string]float64{"kappa": 2}

	sol := Integrate(p)
	failed, ok := sol.(*Failed)
	require.True(t, ok, "expected *Failed, got %T", sol)
	assert.Contains(t, failed.Message, "unknown param: kappa")
}

func TestIntegrate_UnknownIntegrator(t *testing.T) {
	p := DefaultParams(1.0, astro.SolarComposition())
	p.Integrator = "leapfrog"

	sol := Integrate(p)
	failed, ok := sol.(*Failed)
	require.True(t, ok, "expected *Failed, got %T", sol)
	assert.Contains(t, failed.Message, "leapfrog")
	assert.Contains(t, failed.Error(), "structure:")
}

func TestIntegrate_StepBudgetIsFailure(t *testing.T) {
	p := DefaultParams(1.0, astro.SolarComposition())
	p.MaxSteps = 3

	sol := Integrate(p)
	failed, ok := sol.(*Failed)
	require.True(t, ok, "expected *Failed, got %T", sol)
	assert.Contains(t, failed.Message, "step budget")
}

func TestConverged_ZeroDense(t *testing.T) {
	var c Converged
	_, ok := c.At(1)
	assert.False(t, ok)
}
