package evolution

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/stellarsim/internal/astro"
)

// Steps sets the sample counts of each phase. Zero values select defaults.
type Steps struct {
	MainSequence     int `json:"ms_steps" yaml:"ms_steps" mapstructure:"ms_steps"`
	PostMainSequence int `json:"post_ms_steps" yaml:"post_ms_steps" mapstructure:"post_ms_steps"`
}

func DefaultSteps() Steps {
	return Steps{
		MainSequence:     DefaultMainSequenceSteps,
		PostMainSequence: DefaultPostMainSequenceSteps,
	}
}

// ComputeMany computes one track per mass concurrently. Results are in the
// order of masses. Cancelling ctx stops tracks that have not started yet;
// a running track always completes.
func ComputeMany(ctx context.Context, masses []float64, comp astro.Composition, steps Steps, opts ...Option) ([]*Track, error) {
	tracks := make([]*Track, len(masses))
	g, ctx := errgroup.WithContext(ctx)

	for i, m := range masses {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tracks[i] = Compute(m, comp, steps, opts...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tracks, nil
}
