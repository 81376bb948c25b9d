package model

import (
	"gonum.org/v1/gonum/mat"
)

// InitCond implements filter.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it
func NewInitCond(state mat.Vector, cov mat.Symmetric) *InitCond {
	s := &mat.VecDense{}
	s.CloneFromVec(state)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	return &InitCond{
		state: s,
		cov:   c,
	}
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	state := mat.NewVecDense(c.state.Len(), nil)
	state.CloneFromVec(c.state)

	return state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}

// Static is an evolver which models a system that does not change over
// time: state and covariance are returned unchanged regardless of dt.
type Static struct{}

// NewStatic creates new Static evolver and returns it
func NewStatic() *Static {
	return &Static{}
}

// Evolve returns x and cov unchanged.
func (s *Static) Evolve(x mat.Vector, cov mat.Symmetric, dt float64) (mat.Vector, mat.Symmetric) {
	return x, cov
}
