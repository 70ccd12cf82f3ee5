package polynomial

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/metrics"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

const modelName = "PolynomialRegression"

// Defaults of NewPolynomialRegression.
const (
	DefaultDegree       = 5
	DefaultLearningRate = 0.001
	DefaultIterations   = 100000
)

var _ model.CurveModel = (*PolynomialRegression)(nil)

// PolynomialRegression is a one-dimensional polynomial regressor trained by
// batch gradient descent.
type PolynomialRegression struct {
	state *model.StateManager

	mu           sync.RWMutex
	coefficients []float64

	degree          int
	learningRate    float64
	iterations      int
	reportEvery     int
	seed            uint64
	seedSpread      float64
	initial         []float64
	observer        Observer
	checkDivergence bool

	id     string
	logger log.Logger
}

// NewPolynomialRegression creates an untrained model. Without options it
// fits a degree-5 polynomial for 100000 iterations at learning rate 0.001,
// starting from coefficients drawn from [-0.05, 0.05] with seed 0.
//
// Example:
//
//	pr := polynomial.NewPolynomialRegression(
//	    polynomial.WithDegree(3),
//	    polynomial.WithSeed(42),
//	)
//	err := pr.Fit(x, y)
//	yHat, err := pr.Predict([]float64{0.5})
func NewPolynomialRegression(opts ...Option) *PolynomialRegression {
	r := &PolynomialRegression{
		state:        model.NewStateManager(),
		degree:       DefaultDegree,
		learningRate: DefaultLearningRate,
		iterations:   DefaultIterations,
		reportEvery:  DefaultReportEvery,
		seedSpread:   DefaultSeedSpread,
		id:           uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = log.GetLoggerWithName("polynomial")
	}
	r.logger = r.logger.With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, r.id,
	)
	return r
}

// Fit trains the model on (x, y). x should already be normalised.
//
// Errors:
//   - errors.ErrInvalidArgument: length mismatch, empty samples, or an
//     invalid degree, learning rate, iteration count or report interval
//   - *errors.NumericalInstabilityError: divergence, only with
//     WithDivergenceDetection(true)
//
// On error the estimator is left unfitted, even if an earlier Fit succeeded.
func (r *PolynomialRegression) Fit(x, y []float64) error {
	return r.FitContext(context.Background(), x, y)
}

// FitContext is Fit with cancellation checked once per iteration.
func (r *PolynomialRegression) FitContext(ctx context.Context, x, y []float64) (err error) {
	defer errors.Recover(&err, "PolynomialRegression.Fit")

	coefficients, err := r.initialCoefficients()
	if err != nil {
		r.reset()
		r.logger.Error("Invalid configuration", err, log.ErrorCodeKey, log.ErrorInvalidArgument)
		return err
	}

	startTime := time.Now()
	r.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(x),
		log.DegreeKey, len(coefficients)-1,
		log.LearningRateKey, r.learningRate,
		log.IterationsKey, r.iterations,
		log.RandomSeedKey, r.seed,
	)

	opts := []FitOption{
		WithReportInterval(r.reportEvery),
		WithObserver(Observers(LogObserver(r.logger), r.observer)),
	}
	if r.checkDivergence {
		opts = append(opts, WithDivergenceCheck())
	}

	if err := FitContext(ctx, x, y, coefficients, r.learningRate, r.iterations, opts...); err != nil {
		r.reset()
		r.logger.Error("Training failed", err,
			log.OperationKey, log.OperationFit,
			log.ErrorCodeKey, fitErrorCode(err),
		)
		return err
	}

	if !errors.IsFinite(coefficients) {
		errors.Warn(errors.NewNumericalInstabilityWarning(modelName, r.iterations, r.learningRate, coefficients))
	}

	r.mu.Lock()
	r.coefficients = coefficients
	r.mu.Unlock()
	r.state.SetDimensions(len(coefficients)-1, len(x))
	r.state.SetFitted()

	r.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.LossKey, meanSquaredError(x, y, coefficients),
		log.CoefficientsKey, coefficients,
	)
	return nil
}

func fitErrorCode(err error) string {
	var numErr *errors.NumericalInstabilityError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return log.ErrorCancelled
	case errors.As(err, &numErr):
		return log.ErrorNumericalFailure
	default:
		return log.ErrorInvalidArgument
	}
}

// reset returns the estimator to the unfitted state.
func (r *PolynomialRegression) reset() {
	r.mu.Lock()
	r.coefficients = nil
	r.mu.Unlock()
	r.state.Reset()
}

func (r *PolynomialRegression) initialCoefficients() ([]float64, error) {
	if r.initial != nil {
		if len(r.initial) == 0 {
			return nil, errors.NewValidationError("coefficients", "must contain at least one value", 0)
		}
		return append([]float64(nil), r.initial...), nil
	}
	return SeedCoefficients(r.degree, r.seed, r.seedSpread)
}

// Predict evaluates the fitted polynomial at every x.
func (r *PolynomialRegression) Predict(x []float64) (_ []float64, err error) {
	defer errors.Recover(&err, "PolynomialRegression.Predict")
	if err := r.state.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	preds, err := SampleCurve(x, r.coefficients, nil)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(preds),
	)
	return preds, nil
}

// Score returns the coefficient of determination R² on (x, y).
func (r *PolynomialRegression) Score(x, y []float64) (_ float64, err error) {
	defer errors.Recover(&err, "PolynomialRegression.Score")
	if len(x) == 0 {
		return 0, errors.NewValidationError("x", "must contain at least one sample", 0)
	}
	if len(y) != len(x) {
		return 0, errors.NewDimensionError("PolynomialRegression.Score", len(x), len(y), 0)
	}

	preds, err := r.Predict(x)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2Score(
		mat.NewVecDense(len(y), append([]float64(nil), y...)),
		mat.NewVecDense(len(preds), preds),
	)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("Score computed", log.OperationKey, log.OperationScore, log.R2ScoreKey, score)
	return score, nil
}

// Coefficients returns a copy of the fitted coefficients, or nil before Fit.
func (r *PolynomialRegression) Coefficients() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.coefficients == nil {
		return nil
	}
	return append([]float64(nil), r.coefficients...)
}

// Degree returns the degree of the fitted polynomial, or the configured
// degree before Fit.
func (r *PolynomialRegression) Degree() int {
	if r.state.IsFitted() {
		degree, _ := r.state.GetDimensions()
		return degree
	}
	return r.degree
}

// IsFitted reports whether Fit has completed successfully.
func (r *PolynomialRegression) IsFitted() bool {
	return r.state.IsFitted()
}

// ID identifies this estimator in log records.
func (r *PolynomialRegression) ID() string {
	return r.id
}
