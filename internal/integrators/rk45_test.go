package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/stellarsim/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK45_Attempt(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	f := dyn.Derive(x, 0)

	st, err := integrator.Attempt(dyn, 0, x, f, 0.1)
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if !st.X.IsValid() || !st.F.IsValid() {
		t.Fatal("Attempt produced invalid state")
	}
	if math.Abs(st.X[0]-math.Cos(0.1)) > 1e-7 {
		t.Errorf("x(0.1) = %v, want %v", st.X[0], math.Cos(0.1))
	}
	if st.Err.Norm() > 1e-6 {
		t.Errorf("error estimate too large: %e", st.Err.Norm())
	}
}

func TestRK45_FSAL(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{0.3, -0.7}

	st, _ := integrator.Attempt(dyn, 0, x, dyn.Derive(x, 0), 0.05)
	want := dyn.Derive(st.X, 0.05)
	for i := range want {
		if st.F[i] != want[i] {
			t.Errorf("F[%d] = %v, want derivative at new state %v", i, st.F[i], want[i])
		}
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	res, err := Solve(dyn, NewRK45(), 0, 100, x0, Options{RelTol: 1e-10, AbsTol: 1e-12})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	_, x := res.Final()
	drift := math.Abs(dyn.Energy(x)-dyn.Energy(x0)) / dyn.Energy(x0)
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_ErrorShrinksWithStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	f := dyn.Derive(x, 0)

	big, _ := integrator.Attempt(dyn, 0, x, f, 0.2)
	small, _ := integrator.Attempt(dyn, 0, x, f, 0.1)
	if small.Err.Norm() >= big.Err.Norm() {
		t.Errorf("error estimate did not shrink: h=0.2 %e, h=0.1 %e", big.Err.Norm(), small.Err.Norm())
	}
}
