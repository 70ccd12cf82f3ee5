package polynomial

import (
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// Option is a function that configures PolynomialRegression
type Option func(*PolynomialRegression)

// WithDegree sets the polynomial degree
func WithDegree(degree int) Option {
	return func(r *PolynomialRegression) {
		r.degree = degree
		r.initial = nil
	}
}

// WithLearningRate sets the gradient descent step size
func WithLearningRate(lr float64) Option {
	return func(r *PolynomialRegression) {
		r.learningRate = lr
	}
}

// WithIterations sets the number of gradient descent iterations
func WithIterations(n int) Option {
	return func(r *PolynomialRegression) {
		r.iterations = n
	}
}

// WithSeed sets the seed of the initial coefficient draw
func WithSeed(seed uint64) Option {
	return func(r *PolynomialRegression) {
		r.seed = seed
	}
}

// WithSeedSpread bounds the initial coefficients to [-spread, spread]
func WithSeedSpread(spread float64) Option {
	return func(r *PolynomialRegression) {
		r.seedSpread = spread
	}
}

// WithInitialCoefficients starts training from a copy of coefficients
// instead of a seeded draw. The degree becomes len(coefficients)-1.
func WithInitialCoefficients(coefficients []float64) Option {
	return func(r *PolynomialRegression) {
		r.initial = make([]float64, len(coefficients))
		copy(r.initial, coefficients)
		r.degree = len(coefficients) - 1
	}
}

// WithReportEvery sets the iteration interval of training progress reports
func WithReportEvery(every int) Option {
	return func(r *PolynomialRegression) {
		r.reportEvery = every
	}
}

// WithProgressObserver receives training progress reports in addition to the logger
func WithProgressObserver(observer Observer) Option {
	return func(r *PolynomialRegression) {
		r.observer = observer
	}
}

// WithDivergenceDetection makes Fit fail as soon as a coefficient becomes NaN or Inf
func WithDivergenceDetection(enabled bool) Option {
	return func(r *PolynomialRegression) {
		r.checkDivergence = enabled
	}
}

// WithLogger replaces the package logger
func WithLogger(logger log.Logger) Option {
	return func(r *PolynomialRegression) {
		r.logger = logger
	}
}
