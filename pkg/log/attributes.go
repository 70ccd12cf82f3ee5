package log

// Standard attribute keys. They follow a dotted "category.name" scheme so
// records can be filtered by prefix.

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "PolynomialRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one estimator instance across its records.
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed: fit, predict, score, ...
	OperationKey = "ml.operation"

	// ComponentKey is the package emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: training, inference, preprocessing.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey = "data.samples"
	DegreeKey  = "model.degree"
	PointsKey  = "data.points"
)

// Training progress and results.
const (
	DurationMsKey   = "perf.duration_ms"
	LossKey         = "metrics.loss"
	R2ScoreKey      = "metrics.r2_score"
	IterationKey    = "training.iteration"
	IterationsKey   = "training.iterations"
	CoefficientsKey = "model.coefficients"
)

// Prediction output.
const (
	PredsKey = "preds.count"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters.
const (
	LearningRateKey = "hyperparams.learning_rate"
	ReportEveryKey  = "hyperparams.report_every"
	RandomSeedKey   = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationSample    = "sample"
	OperationRender    = "render"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
	PhaseVisualization = "visualization"

	ErrorNotFitted        = "NOT_FITTED"
	ErrorInvalidArgument  = "INVALID_ARGUMENT"
	ErrorNumericalFailure = "NUMERICAL_INSTABILITY"
	ErrorCancelled        = "CANCELLED"
)
