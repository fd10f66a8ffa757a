package integrators

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/stellarsim/internal/dynamo"
)

const (
	DefaultMaxSteps = 100000

	safety    = 0.9
	minFactor = 0.2
	maxFactor = 10.0
)

// Options control the adaptive driver. Zero values select defaults.
type Options struct {
	RelTol    float64
	AbsTol    float64
	MaxStep   float64 // 0 means unbounded
	FirstStep float64 // 0 means automatic
	MaxSteps  int
}

func (o Options) withDefaults() Options {
	if o.RelTol <= 0 {
		o.RelTol = 1e-3
	}
	if o.AbsTol <= 0 {
		o.AbsTol = 1e-6
	}
	if o.MaxStep <= 0 {
		o.MaxStep = math.Inf(1)
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	return o
}

// Event is a scalar function of the solution whose zero crossing is
// located during integration.
type Event struct {
	Name string
	Func func(t float64, x dynamo.State) float64
	// Direction restricts crossings: -1 fires only when Func goes from
	// positive to non-positive, +1 only on the way up, 0 on either.
	Direction int
	// Terminal stops the integration at the first crossing.
	Terminal bool
}

func (e Event) crossed(gOld, gNew float64) bool {
	switch {
	case e.Direction < 0:
		return gOld > 0 && gNew <= 0
	case e.Direction > 0:
		return gOld < 0 && gNew >= 0
	default:
		return (gOld > 0 && gNew <= 0) || (gOld < 0 && gNew >= 0)
	}
}

// EventHit records one located crossing.
type EventHit struct {
	Index int
	Name  string
	T     float64
	X     dynamo.State
}

type Status int

const (
	// StatusCompleted means the end of the span was reached.
	StatusCompleted Status = iota
	// StatusEvent means a terminal event stopped the integration.
	StatusEvent
)

func (s Status) String() string {
	if s == StatusEvent {
		return "event"
	}
	return "completed"
}

// Result holds every accepted point. The last point is the event location
// when Status is StatusEvent.
type Result struct {
	T      []float64
	X      []dynamo.State
	F      []dynamo.State
	Status Status
	Events []EventHit

	Steps       int
	Rejected    int
	Evaluations int
}

func (r *Result) Len() int { return len(r.T) }

// Final returns the last accepted time and state.
func (r *Result) Final() (float64, dynamo.State) {
	n := len(r.T)
	if n == 0 {
		return 0, nil
	}
	return r.T[n-1], r.X[n-1]
}

// At evaluates the cubic Hermite dense output at t. It reports false
// outside the integrated span.
func (r *Result) At(t float64) (dynamo.State, bool) {
	n := len(r.T)
	if n == 0 || t < r.T[0] || t > r.T[n-1] {
		return nil, false
	}
	if n == 1 {
		return r.X[0].Clone(), true
	}
	i := 0
	for i < n-2 && r.T[i+1] < t {
		i++
	}
	return hermite(r.T[i], r.X[i], r.F[i], r.T[i+1], r.X[i+1], r.F[i+1], t), true
}

func hermite(t0 float64, x0, f0 dynamo.State, t1 float64, x1, f1 dynamo.State, t float64) dynamo.State {
	h := t1 - t0
	if h == 0 {
		return x1.Clone()
	}
	s := (t - t0) / h
	s2, s3 := s*s, s*s*s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	out := make(dynamo.State, len(x0))
	for i := range out {
		out[i] = h00*x0[i] + h10*h*f0[i] + h01*x1[i] + h11*h*f1[i]
	}
	return out
}

type countingSystem struct {
	dynamo.System
	n int
}

func (c *countingSystem) Derive(x dynamo.State, t float64) dynamo.State {
	c.n++
	return c.System.Derive(x, t)
}

// Solve integrates sys from (t0, x0) towards t1 with adaptive step-size
// control. On failure the partial result is returned together with a
// *dynamo.SimulationError.
func Solve(sys dynamo.System, stepper Stepper, t0, t1 float64, x0 dynamo.State, opts Options, events ...Event) (*Result, error) {
	if len(x0) != sys.StateDim() {
		return nil, dynamo.ErrDimensionMismatch
	}
	if !(t1 > t0) {
		return nil, fmt.Errorf("integrators: span end %g must exceed start %g", t1, t0)
	}
	opts = opts.withDefaults()
	cs := &countingSystem{System: sys}

	x := x0.Clone()
	t := t0
	f := cs.Derive(x, t)
	res := &Result{T: []float64{t}, X: []dynamo.State{x}, F: []dynamo.State{f}}
	fail := func(err error) (*Result, error) {
		res.Evaluations = cs.n
		return res, &dynamo.SimulationError{Step: res.Steps, Time: t, State: x.Clone(), Wrapped: err}
	}
	if !x.IsValid() || !f.IsValid() {
		return fail(dynamo.ErrInvalidState)
	}

	gOld := make([]float64, len(events))
	for i, ev := range events {
		gOld[i] = ev.Func(t, x)
	}

	exponent := -1.0 / float64(stepper.ErrorOrder()+1)
	h := opts.FirstStep
	if h <= 0 {
		h = initialStep(cs, stepper.ErrorOrder(), t, x, f, t1-t0, opts)
	}
	h = math.Min(h, opts.MaxStep)

	for {
		if res.Steps >= opts.MaxSteps {
			return fail(dynamo.ErrStepBudget)
		}
		minStep := 10 * (math.Nextafter(t, math.Inf(1)) - t)
		if h > t1-t {
			h = t1 - t
		}

		var st Step
		rejected := false
		for {
			if h < minStep {
				return fail(dynamo.ErrStepTooSmall)
			}
			var err error
			st, err = stepper.Attempt(cs, t, x, f, h)
			if err != nil {
				if !errors.Is(err, dynamo.ErrSingular) {
					return fail(err)
				}
				res.Rejected++
				rejected = true
				h *= minFactor
				continue
			}
			if !st.X.IsValid() || !st.F.IsValid() || !st.Err.IsValid() {
				res.Rejected++
				rejected = true
				h *= minFactor
				continue
			}
			errNorm := scaledNorm(st.Err, x, st.X, opts)
			if errNorm <= 1 {
				factor := maxFactor
				if errNorm > 0 {
					factor = math.Min(maxFactor, safety*math.Pow(errNorm, exponent))
				}
				if rejected {
					factor = math.Min(1, factor)
				}
				tNew := t + h
				if h >= t1-t {
					tNew = t1
				}
				hNext := h * factor
				res.Steps++

				hit, stop := locateEvents(events, gOld, t, x, f, tNew, st.X, st.F)
				for i, ev := range events {
					gOld[i] = ev.Func(tNew, st.X)
				}
				res.Events = append(res.Events, hit...)
				if stop != nil {
					fe := cs.Derive(stop.X, stop.T)
					res.T = append(res.T, stop.T)
					res.X = append(res.X, stop.X)
					res.F = append(res.F, fe)
					res.Status = StatusEvent
					res.Evaluations = cs.n
					return res, nil
				}

				t, x, f = tNew, st.X, st.F
				res.T = append(res.T, t)
				res.X = append(res.X, x)
				res.F = append(res.F, f)
				if t >= t1 {
					res.Status = StatusCompleted
					res.Evaluations = cs.n
					return res, nil
				}
				h = math.Min(hNext, opts.MaxStep)
				break
			}
			res.Rejected++
			rejected = true
			h *= math.Max(minFactor, safety*math.Pow(errNorm, exponent))
		}
	}
}

// locateEvents finds crossings inside (t0, t1] on the Hermite interpolant
// of the step. Non-terminal crossings are all returned; the earliest
// terminal crossing, if any, is returned as stop.
func locateEvents(events []Event, gOld []float64, t0 float64, x0, f0 dynamo.State, t1 float64, x1, f1 dynamo.State) (hits []EventHit, stop *EventHit) {
	for i, ev := range events {
		gNew := ev.Func(t1, x1)
		if !ev.crossed(gOld[i], gNew) {
			continue
		}
		te := bisectEvent(ev, t0, t1, func(t float64) dynamo.State {
			return hermite(t0, x0, f0, t1, x1, f1, t)
		})
		hit := EventHit{Index: i, Name: ev.Name, T: te, X: hermite(t0, x0, f0, t1, x1, f1, te)}
		if ev.Terminal {
			if stop == nil || te < stop.T {
				h := hit
				stop = &h
			}
			continue
		}
		hits = append(hits, hit)
	}
	if stop != nil {
		kept := hits[:0]
		for _, h := range hits {
			if h.T <= stop.T {
				kept = append(kept, h)
			}
		}
		hits = append(kept, *stop)
	}
	return hits, stop
}

// bisectEvent narrows [lo, hi] keeping the crossing bracketed and returns
// the upper end, where the crossing condition holds.
func bisectEvent(ev Event, lo, hi float64, interp func(float64) dynamo.State) float64 {
	gLo := ev.Func(lo, interp(lo))
	for iter := 0; iter < 200; iter++ {
		mid := lo + 0.5*(hi-lo)
		if mid <= lo || mid >= hi {
			break
		}
		gMid := ev.Func(mid, interp(mid))
		if ev.crossed(gLo, gMid) {
			hi = mid
		} else {
			lo, gLo = mid, gMid
		}
	}
	return hi
}

func scaledNorm(errEst, x, xNew dynamo.State, opts Options) float64 {
	sum := 0.0
	for i := range errEst {
		scale := opts.AbsTol + opts.RelTol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		r := errEst[i] / scale
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(errEst)))
}

func rms(v dynamo.State, scale dynamo.State) float64 {
	sum := 0.0
	for i := range v {
		r := v[i] / scale[i]
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(v)))
}

// initialStep follows the usual two-evaluation heuristic of Hairer, Nørsett
// and Wanner.
func initialStep(sys dynamo.System, order int, t0 float64, x0, f0 dynamo.State, span float64, opts Options) float64 {
	scale := make(dynamo.State, len(x0))
	for i := range scale {
		scale[i] = opts.AbsTol + math.Abs(x0[i])*opts.RelTol
	}
	d0 := rms(x0, scale)
	d1 := rms(f0, scale)
	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, span)

	f1 := sys.Derive(x0.AddScaled(h0, f0), t0+h0)
	d2 := rms(f1.Sub(f0), scale) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/float64(order+1))
	}
	h := math.Min(100*h0, math.Min(h1, span))
	if !(h > 0) || math.IsInf(h, 0) {
		h = math.Min(1e-6*span, span)
	}
	return h
}
