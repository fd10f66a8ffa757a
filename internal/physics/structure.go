package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/dynamo"
)

// Numerical floors applied to the structure state before any power law is
// evaluated.
const (
	minEnclosedMass = 1e20 // kg
	minLuminosity   = 1e20 // W
)

// Structure is the coupled stellar structure system in radius r with state
// [M(r), P(r), L(r), T(r)].
type Structure struct {
	Comp  astro.Composition
	Gamma float64
}

func NewStructure(comp astro.Composition) *Structure {
	return &Structure{
		Comp:  comp,
		Gamma: astro.GammaAdiabatic,
	}
}

func (s *Structure) StateDim() int {
	return 4
}

// Local holds the microphysics evaluated at one radius.
type Local struct {
	R, M, P, L, T float64
	Mu            float64
	Rho           float64
	Kappa         float64
	Epsilon       float64
	Convective    bool
}

// Evaluate clamps the state to the numerical floors and computes the local
// microphysics.
func (s *Structure) Evaluate(x dynamo.State, r float64) Local {
	loc := Local{
		R: math.Max(r, astro.RCenter),
		M: math.Max(x[0], minEnclosedMass),
		P: math.Max(x[1], astro.PSurface),
		L: math.Max(x[2], minLuminosity),
		T: math.Max(x[3], astro.TSurfaceMin),
	}
	loc.Mu = s.Comp.MeanMolecularWeight()
	loc.Rho = DensityFromPressure(loc.P, loc.T, loc.Mu)
	loc.Kappa = TotalOpacity(loc.Rho, loc.T, s.Comp)
	loc.Epsilon = EnergyGenerationRate(loc.Rho, loc.T, s.Comp)
	loc.Convective = IsConvective(loc.P, loc.T, loc.L, loc.M, loc.R, loc.Rho, loc.Kappa, s.Gamma)
	return loc
}

func (s *Structure) Derive(x dynamo.State, r float64) dynamo.State {
	loc := s.Evaluate(x, r)
	r2 := loc.R * loc.R

	dM := 4 * math.Pi * r2 * loc.Rho
	dP := -astro.G * loc.M * loc.Rho / r2
	dL := 4 * math.Pi * r2 * loc.Rho * loc.Epsilon

	var dT float64
	switch {
	case loc.Convective:
		dT = -(loc.P * loc.T * AdiabaticGradient(s.Gamma)) / (loc.R * astro.G * loc.M * loc.Rho)
	case loc.L > 0 && loc.T > 0:
		dT = -(3 * loc.Kappa * loc.Rho * loc.L) / (16 * math.Pi * astro.ARad * astro.C * loc.T * loc.T * loc.T * r2)
	}

	return dynamo.State{dM, dP, dL, dT}
}

func (s *Structure) GetParams() map[string]float64 {
	return map[string]float64{
		"x":     s.Comp.X,
		"y":     s.Comp.Y,
		"z":     s.Comp.Z,
		"gamma": s.Gamma,
	}
}

func (s *Structure) SetParam(name string, value float64) error {
	switch name {
	case "x":
		s.Comp.X = value
	case "y":
		s.Comp.Y = value
	case "z":
		s.Comp.Z = value
	case "gamma":
		s.Gamma = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
