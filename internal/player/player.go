// Package player drives playback over an evolution track: an initial-mass
// control, a time-position control, play/pause with wrap-around and a reset.
package player

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/config"
	"github.com/san-kum/stellarsim/internal/evolution"
)

// Observer is notified whenever the current model changes.
type Observer interface {
	OnModel(index int, m evolution.StellarModel)
}

type Player struct {
	mass    float64
	comp    astro.Composition
	steps   evolution.Steps
	track   *evolution.Track
	index   int
	playing bool

	observers []Observer
	log       *zap.Logger
}

type Option func(*Player)

func WithLogger(l *zap.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// New computes the track for mass (clamped to the control range) and
// positions playback on the first model.
func New(mass float64, comp astro.Composition, steps evolution.Steps, opts ...Option) *Player {
	p := &Player{comp: comp, steps: steps, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.load(mass)
	return p
}

// FromTrack plays back an existing track without recomputing it.
func FromTrack(track *evolution.Track, opts ...Option) *Player {
	p := &Player{
		mass:  track.InitialMass(),
		comp:  track.Composition(),
		steps: evolution.DefaultSteps(),
		track: track,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ClampMass(m float64) float64 {
	if math.IsNaN(m) {
		return config.DefaultMass
	}
	return math.Max(config.MinMass, math.Min(config.MaxMass, m))
}

func (p *Player) load(mass float64) {
	p.mass = ClampMass(mass)
	p.track = evolution.Compute(p.mass, p.comp, p.steps, evolution.WithLogger(p.log))
	p.index = 0
	p.log.Debug("track loaded", zap.Float64("mass_msun", p.mass), zap.Int("models", p.track.Len()))
	p.notify()
}

func (p *Player) AddObserver(o Observer) { p.observers = append(p.observers, o) }

func (p *Player) notify() {
	if p.track.Len() == 0 {
		return
	}
	m := p.track.At(p.index)
	for _, o := range p.observers {
		o.OnModel(p.index, m)
	}
}

// SetInitialMass recomputes the track and rewinds to the first model.
func (p *Player) SetInitialMass(mass float64) {
	p.load(mass)
}

// SetTimePosition jumps to floor(f·(N−1)).
func (p *Player) SetTimePosition(f float64) {
	p.index = p.track.IndexAtFraction(f)
	p.notify()
}

func (p *Player) Play()         { p.playing = true }
func (p *Player) Pause()        { p.playing = false }
func (p *Player) Toggle()       { p.playing = !p.playing }
func (p *Player) Playing() bool { return p.playing }
func (p *Player) Mass() float64 { return p.mass }
func (p *Player) Index() int    { return p.index }
func (p *Player) Len() int      { return p.track.Len() }

func (p *Player) Track() *evolution.Track { return p.track }

// Tick advances one model while playing, wrapping to the start after the
// last one. It reports whether the position changed.
func (p *Player) Tick() bool {
	if !p.playing || p.track.Len() == 0 {
		return false
	}
	p.index++
	if p.index >= p.track.Len() {
		p.index = 0
	}
	p.notify()
	return true
}

// Step moves by delta models regardless of the play state, clamped to the
// track.
func (p *Player) Step(delta int) {
	n := p.track.Len()
	if n == 0 {
		return
	}
	p.index = max(0, min(n-1, p.index+delta))
	p.notify()
}

func (p *Player) Reset() {
	p.index = 0
	p.notify()
}

// Current returns the model under the playhead.
func (p *Player) Current() (evolution.StellarModel, bool) {
	if p.track.Len() == 0 {
		return evolution.StellarModel{}, false
	}
	return p.track.At(p.index), true
}

// Fraction is the playhead position in [0, 1].
func (p *Player) Fraction() float64 {
	n := p.track.Len()
	if n < 2 {
		return 0
	}
	return float64(p.index) / float64(n-1)
}

// Export writes the current track as a persisted document.
func (p *Player) Export(path string) error {
	return p.track.SaveFile(path)
}
