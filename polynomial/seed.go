package polynomial

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// DefaultSeedSpread bounds the initial coefficients to [-0.05, 0.05].
const DefaultSeedSpread = 0.05

// SeedCoefficients returns degree+1 coefficients drawn uniformly from
// [-spread, spread]. The draw is fully determined by seed.
func SeedCoefficients(degree int, seed uint64, spread float64) ([]float64, error) {
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	if !(spread >= 0) || math.IsInf(spread, 1) {
		return nil, errors.NewValidationError("spread", "must be a non-negative finite number", spread)
	}

	coefficients := make([]float64, degree+1)
	if spread == 0 {
		return coefficients, nil
	}

	dist := distuv.Uniform{
		Min: -spread,
		Max: spread,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
	for i := range coefficients {
		coefficients[i] = dist.Rand()
	}
	return coefficients, nil
}
