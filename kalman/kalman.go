package kalman

import (
	"errors"
	"fmt"

	filter "github.com/gaussfuse/go-fusion"
	"github.com/gaussfuse/go-fusion/estimate"
	"github.com/gaussfuse/go-fusion/matrix"
	"gonum.org/v1/gonum/mat"
)

// ErrSingularCovariance is returned when the sum of the prior and the
// measurement covariance matrices is not invertible.
var ErrSingularCovariance = errors.New("singular covariance matrix")

// KF is a Kalman filter over an arbitrary number of state variables.
//
// The filter maintains a Gaussian belief about the state of a dynamical
// system as a mean vector together with its covariance matrix. The belief
// is pushed forward in time by the Evolver supplied at construction and
// corrected by fusing it with new measurements. Both the state estimate
// and its covariance are replaced wholesale on every operation: snapshots
// returned by State and Cov are never aliased by later updates.
//
// The error in all measurements and predictions is assumed to be Gaussian.
// In the real world this is often a good approximation, but rarely
// exactly right.
//
// KF is not safe for concurrent use.
type KF struct {
	// x is the current state estimate
	x *mat.VecDense
	// p is the covariance of the current state estimate
	p *mat.SymDense
	// e evolves the belief over elapsed time
	e filter.Evolver
	// dim is the state dimension, fixed at construction
	dim int
}

// New creates a new KF with initial condition init and evolver e and returns it.
// The initial state and covariance are copied; the evolver is owned by the
// filter for its whole lifetime.
// It returns error if either of the following conditions is met:
//   - the initial state and covariance dimensions do not agree
//   - a nil evolver is given
func New(init filter.InitCond, e filter.Evolver) (*KF, error) {
	if e == nil {
		return nil, fmt.Errorf("invalid evolver: %v", e)
	}

	dim := init.State().Len()
	if dim <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", dim)
	}

	if init.Cov().SymmetricDim() != dim {
		return nil, fmt.Errorf("invalid covariance dimensions: [%d x %d]", init.Cov().SymmetricDim(), init.Cov().SymmetricDim())
	}

	x := &mat.VecDense{}
	x.CloneFromVec(init.State())

	p := mat.NewSymDense(dim, nil)
	p.CopySym(init.Cov())

	return &KF{
		x:   x,
		p:   p,
		e:   e,
		dim: dim,
	}, nil
}

// AdvanceTime pushes the belief forward by elapsed time dt using the
// evolver supplied at construction. Any process noise growth of the
// covariance is the evolver's responsibility; dt is passed through
// unchanged, including zero and negative values.
// It returns error if the evolver returns state or covariance whose
// dimensions do not match the filter dimension.
func (k *KF) AdvanceTime(dt float64) error {
	x, p := k.e.Evolve(k.x, k.p, dt)

	if x == nil || x.Len() != k.dim {
		return fmt.Errorf("evolver returned invalid state: %v", x)
	}

	if p == nil || p.SymmetricDim() != k.dim {
		return fmt.Errorf("evolver returned invalid covariance: %v", p)
	}

	xNext := &mat.VecDense{}
	xNext.CloneFromVec(x)

	pNext := mat.NewSymDense(k.dim, nil)
	pNext.CopySym(p)

	k.x, k.p = xNext, pNext

	return nil
}

// ApplyMeasurement corrects the belief by fusing it with a new measurement
// z whose uncertainty is described by cov. It does not advance time: use
// AdvanceTime or Step for that.
// The update is all or nothing: on error the filter state is unchanged.
// It returns ErrSingularCovariance if the sum of the prior and the
// measurement covariance is not invertible.
func (k *KF) ApplyMeasurement(z mat.Vector, cov mat.Symmetric) error {
	if z == nil || z.Len() != k.dim {
		return fmt.Errorf("invalid measurement supplied: %v", z)
	}

	if cov == nil || cov.SymmetricDim() != k.dim {
		return fmt.Errorf("invalid measurement covariance supplied: %v", cov)
	}

	fused, err := Fuse(k.x, k.p, z, cov)
	if err != nil {
		return err
	}

	x := &mat.VecDense{}
	x.CloneFromVec(fused.Val())

	p := mat.NewSymDense(k.dim, nil)
	p.CopySym(fused.Cov())

	k.x, k.p = x, p

	return nil
}

// Step pushes the belief forward by dt and fuses the measurement z with
// covariance cov into it, in that order. It is exactly equivalent to
// calling AdvanceTime followed by ApplyMeasurement.
func (k *KF) Step(dt float64, z mat.Vector, cov mat.Symmetric) error {
	if err := k.AdvanceTime(dt); err != nil {
		return err
	}

	return k.ApplyMeasurement(z, cov)
}

// State returns a copy of the current state estimate.
func (k *KF) State() mat.Vector {
	x := &mat.VecDense{}
	x.CloneFromVec(k.x)

	return x
}

// Cov returns a copy of the covariance of the current state estimate.
func (k *KF) Cov() mat.Symmetric {
	cov := mat.NewSymDense(k.p.SymmetricDim(), nil)
	cov.CopySym(k.p)

	return cov
}

// Estimate returns the current belief as a filter estimate.
func (k *KF) Estimate() (filter.Estimate, error) {
	return estimate.NewBaseWithCov(k.x, k.p)
}

// Dim returns the state dimension of the filter.
func (k *KF) Dim() int {
	return k.dim
}

// Fuse combines two independent Gaussian estimates of the same quantity
// into one and returns it. Given estimates (x1, p1) and (x2, p2) it
// computes
//
//	S  = p1 + p2
//	x' = p2*inv(S)*x1 + p1*inv(S)*x2
//	p' = p1*inv(S)*p2
//
// assuming improper flat distributions for the prior and the marginal.
// Fuse is commutative in its two arguments and the fused covariance never
// exceeds either input in the Loewner order.
// It returns ErrSingularCovariance if S is not invertible.
func Fuse(x1 mat.Vector, p1 mat.Symmetric, x2 mat.Vector, p2 mat.Symmetric) (*estimate.Base, error) {
	if x1.Len() != x2.Len() {
		return nil, fmt.Errorf("invalid estimate dimensions: %d != %d", x1.Len(), x2.Len())
	}

	if p1.SymmetricDim() != x1.Len() || p2.SymmetricDim() != x2.Len() {
		return nil, fmt.Errorf("invalid covariance dimensions: [%d x %d], [%d x %d]",
			p1.SymmetricDim(), p1.SymmetricDim(), p2.SymmetricDim(), p2.SymmetricDim())
	}

	s := &mat.Dense{}
	s.Add(p1, p2)

	// gonum inverts via LU with partial pivoting; ill conditioned sums
	// are reported the same way as exactly singular ones
	sInv := &mat.Dense{}
	if err := sInv.Inverse(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularCovariance, err)
	}

	// x' = p2*inv(S)*x1 + p1*inv(S)*x2
	w1 := &mat.Dense{}
	w1.Mul(p2, sInv)
	w2 := &mat.Dense{}
	w2.Mul(p1, sInv)

	xNew := &mat.VecDense{}
	xNew.MulVec(w1, x1)

	xTmp := &mat.VecDense{}
	xTmp.MulVec(w2, x2)
	xNew.AddVec(xNew, xTmp)

	// p' = p1*inv(S)*p2, symmetric up to floating point roundoff
	pNew := &mat.Dense{}
	pNew.Mul(w2, p2)

	return estimate.NewBaseWithCov(xNew, matrix.Symmetrize(pNew))
}
