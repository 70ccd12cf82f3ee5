package polynomial

import (
	"math"

	"github.com/YuminosukeSato/polyreg/core/parallel"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// sampleParallelThreshold is the grid size above which SampleCurve fans out
// across cores.
const sampleParallelThreshold = 4096

// Grid returns n evenly spaced points starting at start with step
// (end-start)/n. The end point itself is not included.
func Grid(start, end float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, errors.NewValidationError("points", "must be at least 1", n)
	}
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return nil, errors.NewValidationError("range", "bounds must be finite", [2]float64{start, end})
	}

	step := (end - start) / float64(n)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + step*float64(i)
	}
	return xs, nil
}

// SampleCurve evaluates the polynomial at every x. When toModel is non-nil
// each x is first mapped into the space the coefficients were fitted in,
// e.g. a scaler's forward transform; the returned values stay in model space.
func SampleCurve(xs, coefficients []float64, toModel func(float64) float64) ([]float64, error) {
	if len(coefficients) == 0 {
		return nil, errors.NewValidationError("coefficients", "must contain at least one value", 0)
	}

	ys := make([]float64, len(xs))
	parallel.ParallelizeWithThreshold(len(xs), sampleParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			x := xs[i]
			if toModel != nil {
				x = toModel(x)
			}
			ys[i] = evaluate(x, coefficients)
		}
	})
	return ys, nil
}
