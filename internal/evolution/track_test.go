package evolution

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/stellarsim/internal/astro"
)

func TestTrack_ModelAtAgeEndpoints(t *testing.T) {
	track := Compute(1.0, astro.SolarComposition(), DefaultSteps())
	models := track.Models()
	ages := track.Ages()

	first, ok := track.ModelAtAge(ages[0])
	require.True(t, ok)
	if diff := cmp.Diff(models[0], first); diff != "" {
		t.Errorf("first model mismatch (-want +got):\n%s", diff)
	}

	last, _ := track.ModelAtAge(ages[len(ages)-1])
	if diff := cmp.Diff(models[len(models)-1], last); diff != "" {
		t.Errorf("last model mismatch (-want +got):\n%s", diff)
	}

	before, _ := track.ModelAtAge(0)
	assert.Equal(t, models[0], before)
	after, _ := track.ModelAtAge(ages[len(ages)-1] * 10)
	assert.Equal(t, models[len(models)-1], after)
}

func TestTrack_ModelAtAgeMidpoints(t *testing.T) {
	for _, mass := range []float64{1.0, 12.0} {
		track := Compute(mass, astro.SolarComposition(), DefaultSteps())
		models := track.Models()
		ages := track.Ages()

		for i := 0; i+1 < len(ages); i++ {
			t0, t1 := ages[i], ages[i+1]
			if t1 == t0 {
				continue
			}
			m, ok := track.ModelAtAge(0.5 * (t0 + t1))
			require.True(t, ok)

			m0, m1 := models[i], models[i+1]
			assert.InEpsilon(t, 0.5*(m0.Mass+m1.Mass), m.Mass, 1e-9, "mass %v index %d", mass, i)
			assert.InEpsilon(t, 0.5*(m0.Radius+m1.Radius), m.Radius, 1e-9)
			assert.InEpsilon(t, 0.5*(m0.Luminosity+m1.Luminosity), m.Luminosity, 1e-9)
			assert.Equal(t, m0.Phase, m.Phase)
			assert.Equal(t, m0.Composition, m.Composition)
		}
	}
}

func TestTrack_ModelAtAgeLowerBracket(t *testing.T) {
	track := NewTrack(1, astro.SolarComposition(), []StellarModel{
		{Mass: 1, Radius: 1, Luminosity: 1, Teff: 1000, Age: 0, Phase: MainSequence, Composition: astro.Composition{X: 0.7}},
		{Mass: 3, Radius: 5, Luminosity: 9, Teff: 3000, Age: 10, Phase: RedGiant, Composition: astro.Composition{X: 0}},
		{Mass: 3, Radius: 5, Luminosity: 9, Teff: 3000, Age: 10, Phase: WhiteDwarf},
	})

	m, ok := track.ModelAtAge(2.5)
	require.True(t, ok)
	assert.InDelta(t, 1.5, m.Mass, 1e-12)
	assert.InDelta(t, 2, m.Radius, 1e-12)
	assert.InDelta(t, 3, m.Luminosity, 1e-12)
	assert.InDelta(t, 1500, m.Teff, 1e-9)
	assert.Equal(t, 2.5, m.Age)
	assert.Equal(t, MainSequence, m.Phase)
	assert.Equal(t, 0.7, m.Composition.X)

	end, _ := track.ModelAtAge(10)
	assert.Equal(t, WhiteDwarf, end.Phase)
}

func TestTrack_Empty(t *testing.T) {
	track := NewTrack(1, astro.SolarComposition(), nil)
	_, ok := track.ModelAtAge(1)
	assert.False(t, ok)
	_, ok = track.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, track.IndexAtFraction(0.5))
}

func TestTrack_IndexAtFraction(t *testing.T) {
	track := Compute(1.0, astro.SolarComposition(), DefaultSteps())
	require.Equal(t, 150, track.Len())

	tests := []struct {
		f    float64
		want int
	}{
		{0, 0},
		{0.5, 74},
		{0.999, 148},
		{1, 149},
		{-0.5, 0},
		{1.5, 149},
		{math.NaN(), 0},
		{math.Inf(1), 149},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, track.IndexAtFraction(tt.f), "fraction %v", tt.f)
	}
}

func TestTrack_Immutable(t *testing.T) {
	track := Compute(1.0, astro.SolarComposition(), DefaultSteps())
	models := track.Models()
	ages := track.Ages()

	models[0].Mass = -1
	ages[0] = -1

	assert.NotEqual(t, -1.0, track.At(0).Mass)
	assert.NotEqual(t, -1.0, track.Ages()[0])
}

func TestTrack_HRTrack(t *testing.T) {
	track := NewTrack(1, astro.SolarComposition(), []StellarModel{ZAMS(astro.MSun, astro.SolarComposition())})
	logT, logL := track.HRTrack()
	require.Len(t, logT, 1)
	require.Len(t, logL, 1)

	assert.InDelta(t, math.Log10(5772), logT[0], 1e-3)
	assert.InDelta(t, 0, logL[0], 1e-12)
}

func TestTrack_PhaseSpans(t *testing.T) {
	track := Compute(1.0, astro.SolarComposition(), DefaultSteps())
	spans := track.PhaseSpans()
	require.NotEmpty(t, spans)

	assert.Equal(t, MainSequence, spans[0].Phase)
	assert.Equal(t, 100, spans[0].Models)
	assert.Equal(t, WhiteDwarf, spans[len(spans)-1].Phase)

	total := 0
	for _, s := range spans {
		total += s.Models
		assert.GreaterOrEqual(t, s.Duration(), 0.0)
	}
	assert.Equal(t, track.Len(), total)
}
