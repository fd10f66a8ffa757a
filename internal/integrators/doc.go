// Package integrators provides embedded Runge-Kutta style steppers and an
// adaptive driver with event location and dense output.
//
// Rosenbrock23 is the default because the stellar structure equations are
// stiff near the centre; RK45 is kept for smooth non-stiff problems.
package integrators
