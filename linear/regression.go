// Package linear はデザイン行列に対する線形最小二乗法で多項式を閉形式で当てはめる
//
// 勾配降下法による polynomial.PolynomialRegression の比較基準として使う。
package linear

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/core/parallel"
	"github.com/YuminosukeSato/polyreg/metrics"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
	"github.com/YuminosukeSato/polyreg/polynomial"
)

const modelName = "LeastSquares"

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

var _ model.CurveModel = (*LeastSquares)(nil)

// LeastSquares は多項式の最小二乗モデル
type LeastSquares struct {
	state *model.StateManager

	mu           sync.RWMutex
	coefficients []float64

	degree int
	alpha  float64
	logger log.Logger
}

// NewLeastSquares は新しい最小二乗モデルを作成する。デフォルトの次数は5
func NewLeastSquares(opts ...Option) *LeastSquares {
	ls := &LeastSquares{
		state:  model.NewStateManager(),
		degree: polynomial.DefaultDegree,
	}
	for _, opt := range opts {
		opt(ls)
	}
	ls.logger = log.GetLoggerWithName("linear").With(log.ModelNameKey, modelName)
	return ls
}

// Vandermonde は x から n×(degree+1) のデザイン行列 [1, x, x², ...] を作る
func Vandermonde(x []float64, degree int) *mat.Dense {
	r, c := len(x), degree+1
	X := mat.NewDense(r, c, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pow := 1.0
			for j := 0; j < c; j++ {
				X.Set(i, j, pow)
				pow *= x[i]
			}
		}
	})
	return X
}

// Fit は正規方程式 (XᵀX + αI) w = Xᵀy を解いて係数を求める
func (ls *LeastSquares) Fit(x, y []float64) (err error) {
	defer errors.Recover(&err, "LeastSquares.Fit")

	if err := ls.validate(x, y); err != nil {
		return err
	}

	X := Vandermonde(x, ls.degree)
	yVec := mat.NewVecDense(len(y), append([]float64(nil), y...))

	var XTX mat.Dense
	XTX.Mul(X.T(), X)
	// 切片にはペナルティを課さない
	for j := 1; j <= ls.degree && ls.alpha > 0; j++ {
		XTX.Set(j, j, XTX.At(j, j)+ls.alpha)
	}

	var XTy mat.VecDense
	XTy.MulVec(X.T(), yVec)

	var w mat.VecDense
	if err := w.SolveVec(&XTX, &XTy); err != nil {
		ls.logger.Error("Training failed", err, log.OperationKey, log.OperationFit, log.ErrorCodeKey, log.ErrorNumericalFailure)
		return errors.NewModelError("LeastSquares.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	coefficients := make([]float64, ls.degree+1)
	for j := range coefficients {
		coefficients[j] = w.AtVec(j)
	}
	if !errors.IsFinite(coefficients) {
		return errors.NewNumericalInstabilityError("LeastSquares.Fit", coefficients, 0)
	}

	ls.mu.Lock()
	ls.coefficients = coefficients
	ls.mu.Unlock()
	ls.state.SetDimensions(ls.degree, len(x))
	ls.state.SetFitted()

	ls.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(x),
		log.DegreeKey, ls.degree,
		log.CoefficientsKey, coefficients,
	)
	return nil
}

func (ls *LeastSquares) validate(x, y []float64) error {
	if ls.degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", ls.degree)
	}
	if !(ls.alpha >= 0) || math.IsInf(ls.alpha, 1) {
		return errors.NewValidationError("alpha", "must be a non-negative finite number", ls.alpha)
	}
	if len(x) == 0 {
		return errors.NewModelError("LeastSquares.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != len(x) {
		return errors.NewDimensionError("LeastSquares.Fit", len(x), len(y), 0)
	}
	return nil
}

// Predict は入力データに対する予測を行う
func (ls *LeastSquares) Predict(x []float64) ([]float64, error) {
	if err := ls.state.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return polynomial.SampleCurve(x, ls.coefficients, nil)
}

// Score はモデルの決定係数（R²）を計算する
func (ls *LeastSquares) Score(x, y []float64) (float64, error) {
	if len(y) != len(x) {
		return 0, errors.NewDimensionError("LeastSquares.Score", len(x), len(y), 0)
	}
	yPred, err := ls.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(y) == 0 {
		return 0, errors.NewValueError("LeastSquares.Score", "empty vector")
	}
	return metrics.R2Score(
		mat.NewVecDense(len(y), append([]float64(nil), y...)),
		mat.NewVecDense(len(yPred), yPred),
	)
}

// Coefficients は学習された係数のコピーを返す
func (ls *LeastSquares) Coefficients() []float64 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	if ls.coefficients == nil {
		return nil
	}
	return append([]float64(nil), ls.coefficients...)
}

// Degree は多項式の次数を返す
func (ls *LeastSquares) Degree() int {
	return ls.degree
}
