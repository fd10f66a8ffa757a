package integrators

import (
	"fmt"
	"sort"
)

// DefaultStepper is used when no stepper is named.
const DefaultStepper = "rosenbrock23"

var steppers = map[string]func() Stepper{
	"rosenbrock23": func() Stepper { return NewRosenbrock23() },
	"rk45":         func() Stepper { return NewRK45() },
}

// Get returns a fresh stepper by name. An empty name selects DefaultStepper.
func Get(name string) (Stepper, error) {
	if name == "" {
		name = DefaultStepper
	}
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// Names lists the registered steppers in sorted order.
func Names() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
