// Package dynamo provides the ODE primitives shared by the physics models and
// the integrators.
//
// The package defines:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Configurable]: runtime parameter access for a system
//
// The independent variable is called t throughout, but systems are free to
// interpret it; the stellar structure equations integrate over radius.
//
// # Example
//
//	sys := physics.NewStructure(astro.SolarComposition())
//	dx := sys.Derive(dynamo.State{m, p, l, temp}, r)
package dynamo
