package dynamo

import "math"

// State is a point in the phase space of a System.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sub returns s − other. Both must have the same length.
func (s State) Sub(other State) State {
	out := make(State, len(s))
	for i := range s {
		out[i] = s[i] - other[i]
	}
	return out
}

// AddScaled returns s + factor·other.
func (s State) AddScaled(factor float64, other State) State {
	out := make(State, len(s))
	for i := range s {
		out[i] = s[i] + factor*other[i]
	}
	return out
}

// System is a first-order ODE dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Configurable exposes named runtime parameters of a system.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
