// Package evolution builds parametric evolution tracks: a main sequence
// driven by the scaling relations followed by mass-dependent
// post-main-sequence phases. Tracks are immutable once built and can be
// queried by index or age, saved and loaded as JSON.
//
//	b := evolution.NewBuilder(1.0, astro.SolarComposition())
//	b.MainSequence(100)
//	b.PostMainSequence(50)
//	track := b.Build()
//	m, _ := track.ModelAtAge(4.6e9 * astro.Year)
package evolution
