package polynomial

import (
	"context"
	"math"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// DefaultReportEvery is the iteration interval at which the observer, if
// any, receives the current loss.
const DefaultReportEvery = 1000

type fitConfig struct {
	observer        Observer
	reportEvery     int
	checkDivergence bool
}

// FitOption configures a single Fit call. None of the options change the
// trained coefficients of a fit that completes.
type FitOption func(*fitConfig)

// WithObserver installs an observer that receives (iteration, loss) every
// reportEvery iterations. The loss is computed after that iteration's update.
func WithObserver(observer Observer) FitOption {
	return func(c *fitConfig) {
		c.observer = observer
	}
}

// WithReportInterval sets how often the observer is called.
func WithReportInterval(every int) FitOption {
	return func(c *fitConfig) {
		c.reportEvery = every
	}
}

// WithDivergenceCheck makes Fit stop with a *errors.NumericalInstabilityError
// as soon as a coefficient becomes NaN or Inf.
func WithDivergenceCheck() FitOption {
	return func(c *fitConfig) {
		c.checkDivergence = true
	}
}

// Fit runs batch gradient descent on the mean squared error of the
// polynomial over (x, y), updating coefficients in place for exactly
// iterations steps.
//
// Preconditions: len(x) == len(y) >= 1, len(coefficients) >= 1,
// learningRate > 0 and iterations >= 1. A violation returns an error
// matching errors.ErrInvalidArgument and leaves coefficients untouched.
//
// Numeric overflow is not an error: a learning rate too large for the data
// scale yields Inf or NaN coefficients.
func Fit(x, y, coefficients []float64, learningRate float64, iterations int, opts ...FitOption) error {
	return FitContext(context.Background(), x, y, coefficients, learningRate, iterations, opts...)
}

// FitContext is Fit with cancellation, checked once per iteration. When ctx
// is done the returned error wraps ctx.Err() and coefficients hold the
// values of the last completed iteration.
func FitContext(ctx context.Context, x, y, coefficients []float64, learningRate float64, iterations int, opts ...FitOption) error {
	cfg := fitConfig{reportEvery: DefaultReportEvery}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateFit(x, y, coefficients, learningRate, iterations, cfg); err != nil {
		return err
	}

	n := float64(len(x))
	gradients := make([]float64, len(coefficients))

	for iter := 0; iter < iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "polynomial fit stopped at iteration %d", iter)
		}

		for j := range gradients {
			gradients[j] = 0
		}

		for i, xi := range x {
			e := y[i] - evaluate(xi, coefficients)
			pow := 1.0
			for j := range gradients {
				gradients[j] += -2 * e * pow
				pow *= xi
			}
		}

		for j := range coefficients {
			gradients[j] /= n
			coefficients[j] -= learningRate * gradients[j]
		}

		if cfg.checkDivergence {
			if err := errors.CheckNumericalStability("gradient_update", coefficients, iter); err != nil {
				return err
			}
		}

		if cfg.observer != nil && iter%cfg.reportEvery == 0 {
			cfg.observer(iter, meanSquaredError(x, y, coefficients))
		}
	}

	return nil
}

func validateFit(x, y, coefficients []float64, learningRate float64, iterations int, cfg fitConfig) error {
	if err := validateSamples(x, y, coefficients); err != nil {
		return err
	}
	if !(learningRate > 0) || math.IsInf(learningRate, 1) {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", learningRate)
	}
	if iterations < 1 {
		return errors.NewValidationError("iterations", "must be at least 1", iterations)
	}
	if cfg.reportEvery < 1 {
		return errors.NewValidationError("report_every", "must be at least 1", cfg.reportEvery)
	}
	return nil
}
