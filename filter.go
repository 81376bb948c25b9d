package filter

import "gonum.org/v1/gonum/mat"

// Filter is a recursive Gaussian state estimator.
type Filter interface {
	// AdvanceTime propagates the belief forward by dt
	AdvanceTime(dt float64) error
	// ApplyMeasurement fuses a new measurement into the belief
	ApplyMeasurement(z mat.Vector, cov mat.Symmetric) error
	// Step advances time by dt and fuses the measurement, in that order
	Step(dt float64, z mat.Vector, cov mat.Symmetric) error
	// State returns the current state estimate
	State() mat.Vector
	// Cov returns the covariance of the current state estimate
	Cov() mat.Symmetric
}

// Evolver models how the tracked system is believed to evolve over an
// elapsed time dt. The returned state and covariance fully replace the
// inputs; any process noise growth of the covariance happens here.
// Evolving twice by dt/2 need not equal evolving once by dt: that is a
// property of the model, not of the filter.
type Evolver interface {
	// Evolve propagates state and covariance over dt
	Evolve(x mat.Vector, cov mat.Symmetric, dt float64) (mat.Vector, mat.Symmetric)
}

// EvolverFunc is an adapter allowing plain functions to be used as Evolvers.
type EvolverFunc func(x mat.Vector, cov mat.Symmetric, dt float64) (mat.Vector, mat.Symmetric)

// Evolve calls f(x, cov, dt).
func (f EvolverFunc) Evolve(x mat.Vector, cov mat.Symmetric, dt float64) (mat.Vector, mat.Symmetric) {
	return f(x, cov, dt)
}

// InitCond is initial state condition of the filter
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Estimate is a state estimate together with its uncertainty
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Noise is dynamical system noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset()
}
