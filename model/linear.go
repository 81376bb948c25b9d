package model

import (
	"fmt"

	filter "github.com/gaussfuse/go-fusion"
	fmatrix "github.com/gaussfuse/go-fusion/matrix"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Linear is an evolver for a linear, continuous-time, dynamical system
//
//	dx/dt = A*x
//
// propagated over dt with a forward Euler step, an approximation valid
// for small timesteps:
//
//	x' = (I + A*dt)*x
//	P' = P + (A*P + P*A')*dt + Q*dt
//
// where Q is the covariance of the process noise per unit time.
type Linear struct {
	// a is internal state matrix
	a *mat.Dense
	// q is process noise
	q filter.Noise
	// dim is the state dimension
	dim int
}

// NewLinear creates a Linear evolver with state matrix A and process
// noise q and returns it. A nil q means no process noise: the covariance
// then grows through A alone.
// It returns error if A is not square or if the q covariance dimension
// does not match A.
func NewLinear(A *mat.Dense, q filter.Noise) (*Linear, error) {
	rows, cols := A.Dims()
	if rows != cols {
		return nil, fmt.Errorf("invalid state matrix dimensions: [%d x %d]", rows, cols)
	}

	if q != nil && q.Cov().SymmetricDim() != rows {
		return nil, fmt.Errorf("invalid process noise dimension: %d != %d", q.Cov().SymmetricDim(), rows)
	}

	a := &mat.Dense{}
	a.CloneFrom(A)

	return &Linear{
		a:   a,
		q:   q,
		dim: rows,
	}, nil
}

// Evolve propagates x and cov over dt.
func (l *Linear) Evolve(x mat.Vector, cov mat.Symmetric, dt float64) (mat.Vector, mat.Symmetric) {
	eye, _ := matrix.NewDenseValIdentity(l.dim, 1.0)

	f := &mat.Dense{}
	f.Scale(dt, l.a)
	f.Add(eye, f)

	xNext := &mat.VecDense{}
	xNext.MulVec(f, x)

	// P' = P + (A*P + P*A')*dt + Q*dt
	ap := &mat.Dense{}
	ap.Mul(l.a, cov)

	pa := &mat.Dense{}
	pa.Mul(cov, l.a.T())

	grow := &mat.Dense{}
	grow.Add(ap, pa)
	grow.Scale(dt, grow)

	pNext := &mat.Dense{}
	pNext.Add(cov, grow)

	if l.q != nil {
		qd := &mat.Dense{}
		qd.Scale(dt, l.q.Cov())
		pNext.Add(pNext, qd)
	}

	return xNext, fmatrix.Symmetrize(pNext)
}

// Dim returns the state dimension of the model.
func (l *Linear) Dim() int {
	return l.dim
}
