package integrators

import "github.com/san-kum/stellarsim/internal/dynamo"

// Step is the outcome of one attempted step of an embedded method.
type Step struct {
	X   dynamo.State // solution at t+h
	F   dynamo.State // derivative at (t+h, X)
	Err dynamo.State // local error estimate
}

// Stepper attempts a single step of size h from (t, x), where f is the
// derivative at (t, x). Step-size control lives in Solve.
type Stepper interface {
	Name() string
	// ErrorOrder is the order of the embedded error estimate.
	ErrorOrder() int
	Attempt(sys dynamo.System, t float64, x, f dynamo.State, h float64) (Step, error)
}
