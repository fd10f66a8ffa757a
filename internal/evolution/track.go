package evolution

import (
	"math"
	"sort"

	"github.com/san-kum/stellarsim/internal/astro"
)

// Track is a finished evolution track ordered by non-decreasing age. It is
// never mutated after construction and is safe to share between goroutines.
type Track struct {
	initialMass float64 // solar masses
	comp        astro.Composition
	models      []StellarModel
	ages        []float64
}

// NewTrack copies models into a new track.
func NewTrack(massSolar float64, comp astro.Composition, models []StellarModel) *Track {
	t := &Track{
		initialMass: massSolar,
		comp:        comp,
		models:      make([]StellarModel, len(models)),
		ages:        make([]float64, len(models)),
	}
	copy(t.models, models)
	for i, m := range models {
		t.ages[i] = m.Age
	}
	return t
}

// Compute runs the main sequence and post-main-sequence phases with the
// given step counts and builds the track.
func Compute(massSolar float64, comp astro.Composition, steps Steps, opts ...Option) *Track {
	b := NewBuilder(massSolar, comp, opts...)
	b.MainSequence(steps.MainSequence)
	b.PostMainSequence(steps.PostMainSequence)
	return b.Build()
}

func (t *Track) Len() int { return len(t.models) }

func (t *Track) InitialMass() float64 { return t.initialMass }

func (t *Track) Composition() astro.Composition { return t.comp }

// At returns the i-th model. It panics when i is out of range.
func (t *Track) At(i int) StellarModel { return t.models[i] }

func (t *Track) Models() []StellarModel {
	out := make([]StellarModel, len(t.models))
	copy(out, t.models)
	return out
}

// Ages returns the model ages in seconds.
func (t *Track) Ages() []float64 {
	out := make([]float64, len(t.ages))
	copy(out, t.ages)
	return out
}

// Last returns the final model.
func (t *Track) Last() (StellarModel, bool) {
	if len(t.models) == 0 {
		return StellarModel{}, false
	}
	return t.models[len(t.models)-1], true
}

// HRTrack returns log10 Teff and log10 L/L☉ for every model.
func (t *Track) HRTrack() (logT, logL []float64) {
	logT = make([]float64, len(t.models))
	logL = make([]float64, len(t.models))
	for i, m := range t.models {
		logT[i] = astro.LogT(m.Teff)
		logL[i] = math.Log10(astro.SolarLuminosity(m.Luminosity))
	}
	return logT, logL
}

// ModelAtAge returns the model at age (seconds). Ages outside the track
// return the first or last model. Inside, mass, radius, luminosity and
// temperature are interpolated linearly between the bracketing models;
// phase and composition come from the earlier one. It reports false only
// for an empty track.
func (t *Track) ModelAtAge(age float64) (StellarModel, bool) {
	n := len(t.models)
	if n == 0 {
		return StellarModel{}, false
	}
	if age <= t.ages[0] {
		return t.models[0], true
	}
	if age >= t.ages[n-1] {
		return t.models[n-1], true
	}

	// ages[i-1] < age <= ages[i], so the bracket has non-zero width even
	// where phases share a boundary age.
	i := sort.SearchFloat64s(t.ages, age)
	t0, t1 := t.ages[i-1], t.ages[i]
	m0, m1 := t.models[i-1], t.models[i]
	f := (age - t0) / (t1 - t0)

	return StellarModel{
		Mass:        lerp(m0.Mass, m1.Mass, f),
		Radius:      lerp(m0.Radius, m1.Radius, f),
		Luminosity:  lerp(m0.Luminosity, m1.Luminosity, f),
		Teff:        lerp(m0.Teff, m1.Teff, f),
		Age:         age,
		Phase:       m0.Phase,
		Composition: m0.Composition,
	}, true
}

// IndexAtFraction maps a position in [0, 1] to floor(f·(N−1)). Out of
// range fractions are clamped.
func (t *Track) IndexAtFraction(f float64) int {
	n := len(t.models)
	if n == 0 {
		return 0
	}
	if !(f > 0) {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return int(math.Floor(f * float64(n-1)))
}

// PhaseSpans returns, for each phase present, the age interval from its
// first to its last model in track order.
func (t *Track) PhaseSpans() []PhaseSpan {
	var spans []PhaseSpan
	for _, m := range t.models {
		if k := len(spans) - 1; k >= 0 && spans[k].Phase == m.Phase {
			spans[k].End = m.Age
			spans[k].Models++
			continue
		}
		spans = append(spans, PhaseSpan{Phase: m.Phase, Start: m.Age, End: m.Age, Models: 1})
	}
	return spans
}

// PhaseSpan is a run of consecutive models sharing a phase.
type PhaseSpan struct {
	Phase      Phase
	Start, End float64 // s
	Models     int
}

func (s PhaseSpan) Duration() float64 { return s.End - s.Start }

func lerp(a, b, f float64) float64 { return a + f*(b-a) }
