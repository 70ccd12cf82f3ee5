// Package polynomial fits one-dimensional polynomial curves by batch
// gradient descent.
//
// A polynomial of degree D is represented by its coefficient vector c of
// length D+1, where c[i] is the coefficient of x^i.
//
//   - Evaluate computes Σ c[i]·x^i.
//   - Fit adjusts c in place to minimise the mean squared error over a
//     sample set, for a fixed number of iterations.
//   - PolynomialRegression wraps seeding, fitting and prediction behind a
//     Fit/Predict/Score estimator API.
//
// Inputs should be normalised to a bounded range such as [0, 1] before
// fitting: with degree >= 2 and unscaled x the fixed learning rate makes
// the fit diverge. Divergence is not detected unless WithDivergenceCheck
// is passed.
//
// Example usage:
//
//	coefficients, _ := polynomial.SeedCoefficients(5, 1, 0.05)
//	err := polynomial.Fit(x, y, coefficients, 0.001, 100000,
//		polynomial.WithObserver(polynomial.ConsoleObserver(os.Stdout)))
//	if err != nil {
//		log.Fatal(err)
//	}
//	yHat, _ := polynomial.Evaluate(0.5, coefficients)
package polynomial

import (
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// Evaluate returns the value of the polynomial with the given coefficients
// at x. It fails with an invalid-argument error if coefficients is empty.
//
// Evaluate only reads its arguments and is safe for concurrent use.
func Evaluate(x float64, coefficients []float64) (float64, error) {
	if len(coefficients) == 0 {
		return 0, errors.NewValidationError("coefficients", "must contain at least one value", 0)
	}
	return evaluate(x, coefficients), nil
}

// evaluate accumulates c[i]·x^i with a running power.
func evaluate(x float64, coefficients []float64) float64 {
	var y float64
	pow := 1.0
	for _, c := range coefficients {
		y += c * pow
		pow *= x
	}
	return y
}

// Loss returns the mean squared error of the polynomial over the samples.
func Loss(x, y, coefficients []float64) (float64, error) {
	if err := validateSamples(x, y, coefficients); err != nil {
		return 0, err
	}
	return meanSquaredError(x, y, coefficients), nil
}

func meanSquaredError(x, y, coefficients []float64) float64 {
	var sum float64
	for i, xi := range x {
		e := y[i] - evaluate(xi, coefficients)
		sum += e * e
	}
	return sum / float64(len(x))
}

func validateSamples(x, y, coefficients []float64) error {
	if len(x) == 0 {
		return errors.NewValidationError("x", "must contain at least one sample", 0)
	}
	if len(y) != len(x) {
		return errors.NewDimensionError("polynomial.Fit", len(x), len(y), 0)
	}
	if len(coefficients) == 0 {
		return errors.NewValidationError("coefficients", "must contain at least one value", 0)
	}
	return nil
}
