// covest estimates a measurement noise covariance matrix from recorded
// data. It reads a headerless CSV file where every row holds the actual
// state of the system followed by the measurement taken of it, and prints
// the population covariance matrix of the measurement error to stdout.
//
// The state dimension is fixed at build time.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// dim is the tracked state dimension: every CSV row must hold 2*dim values.
const dim = 3

func main() {
	log.SetFlags(0)
	log.SetPrefix("covest: ")

	if len(os.Args) < 2 {
		log.Fatal("missing file path argument")
	}

	errs, err := readErrors(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read measurement errors: %v", err)
	}

	cov, err := errorCovariance(errs)
	if err != nil {
		log.Fatalf("failed to estimate covariance: %v", err)
	}

	fmt.Printf("%v\n", mat.Formatted(cov, mat.Squeeze()))
}

// readErrors reads (actual, measurement) rows from the CSV file at path
// and returns the measurement errors stored in the rows of a matrix.
// It returns error if the file can't be read, a row does not hold 2*dim
// values or a value does not parse as a float.
func readErrors(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2 * dim

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no rows found in %s", path)
	}

	errs := mat.NewDense(len(records), dim, nil)
	row := make([]float64, 2*dim)
	for i, record := range records {
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", i+1, err)
			}
			row[j] = val
		}
		// measurement - actual
		floats.SubTo(errs.RawRowView(i), row[dim:], row[:dim])
	}

	return errs, nil
}

// errorCovariance returns the population covariance of the error rows:
// the second moment E*E'/n about zero, not about the sample mean, since
// measurement error is modelled as zero mean.
func errorCovariance(errs *mat.Dense) (*mat.SymDense, error) {
	rows, cols := errs.Dims()
	if rows == 0 || cols != dim {
		return nil, fmt.Errorf("invalid error matrix dimensions: [%d x %d]", rows, cols)
	}

	cov := mat.NewSymDense(dim, nil)
	cov.SymOuterK(1/float64(rows), errs.T())

	return cov, nil
}
