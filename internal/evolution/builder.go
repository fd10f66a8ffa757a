package evolution

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/physics"
)

const (
	DefaultMainSequenceSteps     = 100
	DefaultPostMainSequenceSteps = 50
)

// Initial-mass boundaries (solar masses) of the post-main-sequence branches.
const (
	LowMassLimit  = 0.5
	HighMassLimit = 8.0
	BlackHoleMass = 25.0
)

// Option configures a Builder.
type Option func(*Builder)

func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// Builder accumulates the phases of one track. It is not safe for
// concurrent use; Build hands out an immutable snapshot.
type Builder struct {
	massSolar float64
	mass      float64
	comp      astro.Composition
	models    []StellarModel
	log       *zap.Logger
}

// NewBuilder starts an empty track for a star of massSolar solar masses.
// Mass and composition are taken as given.
func NewBuilder(massSolar float64, comp astro.Composition, opts ...Option) *Builder {
	b := &Builder{
		massSolar: massSolar,
		mass:      massSolar * astro.MSun,
		comp:      comp,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MainSequence appends n models log-spaced in age from 0.001 to 1 main
// sequence lifetime and returns them. n <= 0 selects the default.
func (b *Builder) MainSequence(n int) []StellarModel {
	if n <= 0 {
		n = DefaultMainSequenceSteps
	}
	zams := ZAMS(b.mass, b.comp)
	tMS := physics.MainSequenceLifetime(b.mass)

	fractions := make([]float64, n)
	if n == 1 {
		fractions[0] = 1e-3
	} else {
		floats.LogSpan(fractions, 1e-3, 1)
	}

	out := make([]StellarModel, 0, n)
	for _, f := range fractions {
		l := zams.Luminosity * (1 + 0.5*f)
		r := zams.Radius * (1 + 0.1*f)
		x := b.comp.X * (1 - 0.5*f)
		out = append(out, StellarModel{
			Mass:       b.mass,
			Radius:     r,
			Luminosity: l,
			Teff:       physics.EffectiveTemperature(l, r),
			Age:        f * tMS,
			Phase:      MainSequence,
			Composition: astro.Composition{
				X: x,
				Y: b.comp.Y + 0.5*(b.comp.X-x),
				Z: b.comp.Z,
			},
		})
	}

	b.log.Debug("main sequence computed",
		zap.Float64("mass_solar", b.massSolar),
		zap.Int("models", n),
		zap.Float64("lifetime_yr", astro.Years(tMS)))

	b.models = append(b.models, out...)
	return out
}

// PostMainSequence appends the post-main-sequence phases selected by the
// initial mass and returns the models of the loop (the high-mass remnant is
// appended to the track but not returned). It computes the main sequence
// with defaults first when the track is still empty. n <= 0 selects the
// default.
func (b *Builder) PostMainSequence(n int) []StellarModel {
	if len(b.models) == 0 {
		b.MainSequence(DefaultMainSequenceSteps)
	}
	if n <= 0 {
		n = DefaultPostMainSequenceSteps
	}
	last := b.models[len(b.models)-1]
	tStart := last.Age
	tMS := physics.MainSequenceLifetime(b.mass)

	switch {
	case b.massSolar < LowMassLimit:
		b.log.Debug("low mass star stays on the main sequence", zap.Float64("mass_solar", b.massSolar))
		return nil
	case b.massSolar < HighMassLimit:
		tPost := 0.1 * tMS
		out := make([]StellarModel, 0, n)
		for _, dt := range span(n, tPost) {
			phase, l, r := intermediateStage(dt/tPost, last)
			out = append(out, StellarModel{
				Mass:        0.6 * b.mass,
				Radius:      r,
				Luminosity:  l,
				Teff:        physics.EffectiveTemperature(l, r),
				Age:         tStart + dt,
				Phase:       phase,
				Composition: astro.Composition{X: 0, Y: 0.98, Z: b.comp.Z},
			})
		}
		b.log.Debug("intermediate mass post main sequence", zap.Int("models", len(out)))
		b.models = append(b.models, out...)
		return out
	default:
		tPost := 0.01 * tMS
		out := make([]StellarModel, 0, n)
		for _, dt := range span(n, tPost) {
			phase, l, r := highMassStage(dt/tPost, last)
			out = append(out, StellarModel{
				Mass:        b.mass,
				Radius:      r,
				Luminosity:  l,
				Teff:        physics.EffectiveTemperature(l, r),
				Age:         tStart + dt,
				Phase:       phase,
				Composition: astro.Composition{X: 0, Y: 0, Z: 0.98},
			})
		}
		b.models = append(b.models, out...)

		remnant := Remnant(b.massSolar, b.mass, tStart+tPost)
		b.models = append(b.models, remnant)
		b.log.Debug("high mass post main sequence",
			zap.Int("models", len(out)),
			zap.Stringer("remnant", remnant.Phase))
		return out
	}
}

// Build returns an immutable snapshot of the models appended so far.
func (b *Builder) Build() *Track {
	return NewTrack(b.massSolar, b.comp, b.models)
}

// Remnant is the compact object left by a high-mass star.
func Remnant(massSolar, massKg, age float64) StellarModel {
	phase := NeutronStar
	if massSolar > BlackHoleMass {
		phase = BlackHole
	}
	return StellarModel{
		Mass:       0.3 * massKg,
		Radius:     10000,
		Luminosity: 1e20,
		Teff:       1e6,
		Age:        age,
		Phase:      phase,
	}
}

// intermediateStage maps progress through the post-main-sequence interval
// of a 0.5-8 solar mass star to its sub-phase, luminosity and radius,
// scaled from the last main-sequence model.
func intermediateStage(progress float64, base StellarModel) (Phase, float64, float64) {
	switch {
	case progress < 0.2:
		return Subgiant, base.Luminosity * (1 + 10*progress), base.Radius * (1 + 5*progress)
	case progress < 0.6:
		p := (progress - 0.2) / 0.4
		return RedGiant, base.Luminosity * (3 + 100*p), base.Radius * (5 + 50*p)
	case progress < 0.75:
		return HorizontalBranch, base.Luminosity * 50, base.Radius * 10
	case progress < 0.95:
		p := (progress - 0.75) / 0.2
		return AsymptoticGiant, base.Luminosity * (50 + 1000*p), base.Radius * (10 + 200*p)
	default:
		return WhiteDwarf, base.Luminosity * 0.001, 0.01 * astro.RSun
	}
}

// highMassStage is intermediateStage for stars of 8 solar masses and up.
func highMassStage(progress float64, base StellarModel) (Phase, float64, float64) {
	if progress < 0.9 {
		return RedGiant, base.Luminosity * (10 + 1000*progress), base.Radius * (10 + 100*progress)
	}
	return Supernova, base.Luminosity * 1e6, base.Radius * 1000
}

// span returns n evenly spaced offsets from 0 to end inclusive.
func span(n int, end float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	return floats.Span(out, 0, end)
}
