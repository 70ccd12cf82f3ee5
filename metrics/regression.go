// Package metrics provides regression metrics used to judge a fitted curve.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// residuals は yTrue - yPred を返す
func residuals(op string, yTrue, yPred *mat.VecDense) (*mat.VecDense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	diff := mat.NewVecDense(n, nil)
	diff.SubVec(yTrue, yPred)
	return diff, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return mat.Dot(diff, diff) / float64(diff.Len()), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Norm(diff.RawVector().Data, 1) / float64(diff.Len()), nil
}

// R2Score は決定係数（R²）を計算する
// yTrue の分散が 0 の場合はエラーを返す
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	n := yTrue.Len()
	yMean := mat.Sum(yTrue) / float64(n)

	var tss float64
	for i := 0; i < n; i++ {
		d := yTrue.AtVec(i) - yMean
		tss += d * d
	}
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - mat.Dot(diff, diff)/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する（yTrue が 0 のサンプルは除外）
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	validCount := 0
	for i := 0; i < diff.Len(); i++ {
		yTrueVal := yTrue.AtVec(i)
		if yTrueVal == 0 {
			continue
		}
		sum += math.Abs(diff.AtVec(i)) / math.Abs(yTrueVal)
		validCount++
	}

	if validCount == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}
	return (sum / float64(validCount)) * 100, nil
}

// Report は回帰指標のまとめ
type Report struct {
	MSE  float64
	RMSE float64
	MAE  float64
	// R2 は yTrue に分散がない場合 NaN
	R2 float64
	// MAPE は yTrue がすべて 0 の場合 NaN
	MAPE float64
}

// Summarize は一次元スライスから全ての回帰指標を計算する
func Summarize(yTrue, yPred []float64) (Report, error) {
	if len(yTrue) == 0 {
		return Report{}, errors.NewValueError("Summarize", "empty vector")
	}
	if len(yPred) != len(yTrue) {
		return Report{}, errors.NewDimensionError("Summarize", len(yTrue), len(yPred), 0)
	}

	t := mat.NewVecDense(len(yTrue), append([]float64(nil), yTrue...))
	p := mat.NewVecDense(len(yPred), append([]float64(nil), yPred...))

	var r Report
	var err error
	if r.MSE, err = MSE(t, p); err != nil {
		return Report{}, err
	}
	r.RMSE = math.Sqrt(r.MSE)
	if r.MAE, err = MAE(t, p); err != nil {
		return Report{}, err
	}
	if r.R2, err = R2Score(t, p); err != nil {
		r.R2 = math.NaN()
	}
	if r.MAPE, err = MAPE(t, p); err != nil {
		r.MAPE = math.NaN()
	}
	return r, nil
}
