package structure

import "github.com/san-kum/stellarsim/internal/dynamo"

// Solution is the outcome of a structure integration: either *Converged or
// *Failed. The unexported method closes the set.
type Solution interface {
	solution()
}

// Profile is the radial run of the solution at every accepted step, ending
// at the surface.
type Profile struct {
	R []float64 `json:"r"`
	M []float64 `json:"M"`
	P []float64 `json:"P"`
	L []float64 `json:"L"`
	T []float64 `json:"T"`
}

func (p Profile) Len() int { return len(p.R) }

// Converged holds the surface values at the event radius.
type Converged struct {
	Radius             float64 // m
	Mass               float64 // kg
	Luminosity         float64 // W
	SurfaceTemperature float64 // K
	Profile            Profile
	Steps              int

	dense func(r float64) (dynamo.State, bool)
}

// At interpolates the state (M, P, L, T) at radius r between accepted
// steps. It reports false outside [r0, Radius].
func (c *Converged) At(r float64) (dynamo.State, bool) {
	if c.dense == nil {
		return nil, false
	}
	return c.dense(r)
}

// Failed carries a diagnostic message.
type Failed struct {
	Message string
}

func (f *Failed) Error() string { return "structure: " + f.Message }

func (*Converged) solution() {}
func (*Failed) solution()    {}
