package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(2, []float64{1.0, 3.0})
	cov := mat.NewSymDense(2, []float64{0.25, 0, 0, 0.25})

	ic := NewInitCond(state, cov)
	assert.NotNil(ic)

	assert.True(mat.Equal(state, ic.State()))
	assert.True(mat.Equal(cov, ic.Cov()))

	// the condition must be detached from the inputs
	state.SetVec(0, 100.0)
	assert.Equal(1.0, ic.State().AtVec(0))
}

func TestStatic(t *testing.T) {
	assert := assert.New(t)

	s := NewStatic()

	x := mat.NewVecDense(2, []float64{1.0, 3.0})
	cov := mat.NewSymDense(2, []float64{0.25, 0, 0, 0.25})

	for _, dt := range []float64{-1.0, 0.0, 0.1, 10.0} {
		xNext, covNext := s.Evolve(x, cov, dt)
		assert.True(mat.Equal(x, xNext))
		assert.True(mat.Equal(cov, covNext))
	}
}
