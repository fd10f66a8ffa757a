package metrics

import "github.com/san-kum/stellarsim/internal/evolution"

// Metric accumulates one summary value over the models of a track.
type Metric interface {
	Name() string
	Observe(m evolution.StellarModel)
	Value() float64
	Reset()
}

type Result struct {
	Name  string
	Value float64
}

// Standard returns a fresh set of the summary metrics printed for a track.
func Standard() []Metric {
	return []Metric{
		NewPeakLuminosity(),
		NewMaxRadius(),
		NewTeffMin(),
		NewTeffMax(),
		NewFinalMass(),
		NewPhaseDuration(evolution.MainSequence),
	}
}

// Summarize resets each metric, feeds it every model of the track in order
// and collects the values.
func Summarize(track *evolution.Track, ms ...Metric) []Result {
	if len(ms) == 0 {
		ms = Standard()
	}
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < track.Len(); i++ {
		model := track.At(i)
		for _, m := range ms {
			m.Observe(model)
		}
	}
	out := make([]Result, len(ms))
	for i, m := range ms {
		out[i] = Result{Name: m.Name(), Value: m.Value()}
	}
	return out
}
