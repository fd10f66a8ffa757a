package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/evolution"
)

func TestSummarize_Sun(t *testing.T) {
	track := evolution.Compute(1.0, astro.SolarComposition(), evolution.DefaultSteps())
	results := Summarize(track)

	got := map[string]float64{}
	for _, r := range results {
		got[r.Name] = r.Value
	}

	tests := []struct {
		name string
		want float64
		tol  float64
	}{
		{"final_mass_msun", 0.6, 1e-12},
		{"main_sequence_gyr", 10 * (1 - 1e-3), 1e-6},
	}

	for _, tt := range tests {
		v, ok := got[tt.name]
		if !ok {
			t.Errorf("metric %s missing", tt.name)
			continue
		}
		if math.Abs(v-tt.want) > tt.tol*math.Max(1, math.Abs(tt.want)) {
			t.Errorf("%s = %v, want %v", tt.name, v, tt.want)
		}
	}

	if r := got["max_radius_rsun"]; r < 1.1*100 || r > 1.1*210 {
		t.Errorf("max radius %v outside the AGB range", r)
	}
	if got["teff_min_k"] >= got["teff_max_k"] {
		t.Errorf("teff range inverted: %v .. %v", got["teff_min_k"], got["teff_max_k"])
	}
	if got["peak_luminosity_lsun"] <= 1.5 {
		t.Errorf("peak luminosity %v should exceed the main-sequence turnoff", got["peak_luminosity_lsun"])
	}
}

func TestExtremum_Reset(t *testing.T) {
	m := NewTeffMin()
	if m.Value() != 0 {
		t.Error("expected zero before any sample")
	}

	m.Observe(evolution.StellarModel{Teff: 5000})
	m.Observe(evolution.StellarModel{Teff: 3000})
	m.Observe(evolution.StellarModel{Teff: 9000})
	if m.Value() != 3000 {
		t.Errorf("teff min = %v, want 3000", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPhaseDuration(t *testing.T) {
	p := NewPhaseDuration(evolution.RedGiant)
	if p.Name() != "red_giant_gyr" {
		t.Errorf("name = %s", p.Name())
	}

	p.Observe(evolution.StellarModel{Phase: evolution.MainSequence, Age: 0})
	p.Observe(evolution.StellarModel{Phase: evolution.RedGiant, Age: 1e9 * astro.Year})
	p.Observe(evolution.StellarModel{Phase: evolution.RedGiant, Age: 3e9 * astro.Year})
	if math.Abs(p.Value()-2) > 1e-12 {
		t.Errorf("duration = %v, want 2", p.Value())
	}
}
