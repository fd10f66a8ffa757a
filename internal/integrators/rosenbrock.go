package integrators

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/stellarsim/internal/dynamo"
)

var (
	rosD   = 1.0 / (2.0 + math.Sqrt2)
	rosE32 = 6.0 + math.Sqrt2
)

var sqrtEps = math.Sqrt(2.220446049250313e-16)

// Rosenbrock23 is the L-stable linearly implicit 2(3) pair of Shampine and
// Reichelt. Each attempt forms W = I - h·d·J from a finite-difference
// Jacobian and solves three linear systems with one LU factorization.
type Rosenbrock23 struct{}

func NewRosenbrock23() *Rosenbrock23 {
	return &Rosenbrock23{}
}

func (r *Rosenbrock23) Name() string    { return "rosenbrock23" }
func (r *Rosenbrock23) ErrorOrder() int { return 2 }

func (r *Rosenbrock23) Attempt(sys dynamo.System, t float64, x, f0 dynamo.State, h float64) (Step, error) {
	n := len(x)
	jac := Jacobian(sys, t, x, f0)
	dfdt := timeDerivative(sys, t, x, f0)

	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -h * rosD * jac.At(i, j)
			if i == j {
				v += 1
			}
			w.Set(i, j, v)
		}
	}

	var lu mat.LU
	lu.Factorize(w)

	rhs := make(dynamo.State, n)
	for i := range rhs {
		rhs[i] = f0[i] + h*rosD*dfdt[i]
	}
	k1, err := luSolve(&lu, rhs)
	if err != nil {
		return Step{}, err
	}

	f1 := sys.Derive(x.AddScaled(0.5*h, k1), t+0.5*h)
	for i := range rhs {
		rhs[i] = f1[i] - k1[i]
	}
	k2, err := luSolve(&lu, rhs)
	if err != nil {
		return Step{}, err
	}
	for i := range k2 {
		k2[i] += k1[i]
	}

	xNew := x.AddScaled(h, k2)
	f2 := sys.Derive(xNew, t+h)

	for i := range rhs {
		rhs[i] = f2[i] - rosE32*(k2[i]-f1[i]) - 2*(k1[i]-f0[i]) + h*rosD*dfdt[i]
	}
	k3, err := luSolve(&lu, rhs)
	if err != nil {
		return Step{}, err
	}

	errEst := make(dynamo.State, n)
	for i := range errEst {
		errEst[i] = h / 6.0 * (k1[i] - 2*k2[i] + k3[i])
	}

	return Step{X: xNew, F: f2, Err: errEst}, nil
}

// Jacobian approximates ∂f/∂x by forward differences around (t, x), where
// f is the derivative already evaluated there.
func Jacobian(sys dynamo.System, t float64, x, f dynamo.State) *mat.Dense {
	n := len(x)
	jac := mat.NewDense(n, n, nil)
	xp := x.Clone()
	for j := 0; j < n; j++ {
		delta := sqrtEps * math.Max(math.Abs(x[j]), 1)
		xp[j] = x[j] + delta
		fp := sys.Derive(xp, t)
		for i := 0; i < n; i++ {
			jac.Set(i, j, (fp[i]-f[i])/delta)
		}
		xp[j] = x[j]
	}
	return jac
}

func timeDerivative(sys dynamo.System, t float64, x, f dynamo.State) dynamo.State {
	delta := sqrtEps * math.Max(math.Abs(t), 1)
	ft := sys.Derive(x, t+delta)
	out := make(dynamo.State, len(f))
	for i := range out {
		out[i] = (ft[i] - f[i]) / delta
	}
	return out
}

// luSolve accepts ill-conditioned but finite solutions; only a singular
// factorization is an error.
func luSolve(lu *mat.LU, rhs dynamo.State) (dynamo.State, error) {
	n := len(rhs)
	b := mat.NewVecDense(n, rhs.Clone())
	out := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(out, false, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) {
			return nil, dynamo.ErrSingular
		}
	}
	x := make(dynamo.State, n)
	for i := range x {
		x[i] = out.AtVec(i)
	}
	if !x.IsValid() {
		return nil, dynamo.ErrSingular
	}
	return x, nil
}
