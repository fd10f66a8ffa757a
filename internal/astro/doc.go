// Package astro holds physical and astronomical constants, unit conversions
// and the chemical composition value threaded through the physics models.
//
// All quantities are SI unless a function name says otherwise:
//
//	astro.SolarMass(2 * astro.MSun) // 2
//	astro.Years(astro.Year)         // 1
package astro
