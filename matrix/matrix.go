package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// CovFromVariances returns a diagonal covariance matrix which has the
// entries of v on its diagonal and zeros elsewhere. It models variables
// which are completely independent of each other.
// It panics if v is nil.
func CovFromVariances(v mat.Vector) *mat.SymDense {
	n := v.Len()
	cov := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		cov.SetSym(i, i, v.AtVec(i))
	}

	return cov
}

// CovFromVariance returns an n x n diagonal covariance matrix with every
// diagonal entry set to variance. It models variables which are completely
// independent and identically variant.
// It panics if n is negative.
func CovFromVariance(n int, variance float64) *mat.SymDense {
	cov := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		cov.SetSym(i, i, variance)
	}

	return cov
}

// Symmetrize returns (m + m')/2 as a symmetric matrix. It is used to
// store products which are symmetric in exact arithmetic but accumulate
// small asymmetries in floating point.
// It panics if m is not square.
func Symmetrize(m mat.Matrix) *mat.SymDense {
	rows, cols := m.Dims()
	if rows != cols {
		panic("matrix: square matrix required")
	}

	s := mat.NewSymDense(rows, nil)
	for i := 0; i < rows; i++ {
		for j := i; j < rows; j++ {
			s.SetSym(i, j, (m.At(i, j)+m.At(j, i))/2)
		}
	}

	return s
}
