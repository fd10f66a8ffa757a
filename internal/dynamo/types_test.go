package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	axpy := a.AddScaled(0.5, b)
	if axpy[0] != 3 || axpy[1] != 4.5 || axpy[2] != 6 {
		t.Errorf("AddScaled failed: got %v", axpy)
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone shares backing array")
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrStepTooSmall}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("SimulationError does not unwrap to its cause")
	}
	expected := "step 150 (t=1.5): dynamo: adaptive step below minimum"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
