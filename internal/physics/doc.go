// Package physics provides the stellar microphysics and the structure
// equations built from it.
//
// The leaf models are plain functions of local conditions:
//
//   - equation of state: [GasPressure], [RadiationPressure], [DensityFromPressure]
//   - opacity: [KramersOpacity], [ElectronScatteringOpacity], [TotalOpacity]
//   - nuclear burning: [PPChainRate], [CNOCycleRate], [TripleAlphaRate]
//   - energy transport: [RadiativeGradient], [AdiabaticGradient], [IsConvective]
//   - main-sequence scaling: [MainSequenceLuminosity], [MainSequenceRadius],
//     [EffectiveTemperature], [MainSequenceLifetime]
//
// [Structure] composes them into the four coupled structure equations and
// implements [dynamo.System] with radius as the independent variable. It
// also implements [dynamo.Configurable] for composition and adiabatic index.
//
// # Clamps
//
// Several functions clamp their inputs or outputs (density and opacity
// floors, the 1% gas-pressure floor, the Kramers temperature floor, the
// structure state floors). These keep the integrator's Jacobian finite and
// must not be removed.
package physics
