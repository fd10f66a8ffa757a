// Package structure integrates the stellar structure equations from a
// near-central boundary out to the photosphere, where the pressure falls to
// astro.PSurface. It is a verification path; evolution tracks use the
// scaling relations instead.
package structure
