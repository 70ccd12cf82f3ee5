package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/polynomial"
)

func TestLeastSquares_Linear(t *testing.T) {
	// y = 2x + 1
	ls := NewLeastSquares(WithDegree(1))
	require.NoError(t, ls.Fit([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7}))

	assert.InDeltaSlice(t, []float64{1, 2}, ls.Coefficients(), 1e-9)
	assert.Equal(t, 1, ls.Degree())

	pred, err := ls.Predict([]float64{5, 6})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{11, 13}, pred, 1e-9)

	score, err := ls.Score([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestLeastSquares_Quadratic(t *testing.T) {
	x, y := createBenchmarkData(200)
	ls := NewLeastSquares(WithDegree(2))
	require.NoError(t, ls.Fit(x, y))

	assert.InDeltaSlice(t, []float64{1, 2, -3}, ls.Coefficients(), 0.15)
}

func TestLeastSquares_MatchesGradientDescent(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 2, 4, 6}

	ls := NewLeastSquares(WithDegree(1))
	require.NoError(t, ls.Fit(x, y))

	coefficients := []float64{0, 0}
	require.NoError(t, polynomial.Fit(x, y, coefficients, 0.01, 10000))

	assert.InDeltaSlice(t, ls.Coefficients(), coefficients, 1e-2)
}

func TestLeastSquares_LowerBoundForGradientDescent(t *testing.T) {
	// 正規化済みの成績データ (x: 1..10 → [0,1], y / 100)
	x := make([]float64, 10)
	for i := range x {
		x[i] = float64(i) / 9
	}
	y := []float64{0.75, 0.85, 0.90, 0.95, 0.88, 0.90, 0.86, 0.89, 0.90, 0.86}

	ls := NewLeastSquares(WithDegree(5))
	require.NoError(t, ls.Fit(x, y))
	lsLoss, err := polynomial.Loss(x, y, ls.Coefficients())
	require.NoError(t, err)

	seed, err := polynomial.SeedCoefficients(5, 1, polynomial.DefaultSeedSpread)
	require.NoError(t, err)
	require.NoError(t, polynomial.Fit(x, y, seed, 0.001, 20000))
	gdLoss, err := polynomial.Loss(x, y, seed)
	require.NoError(t, err)

	assert.LessOrEqual(t, lsLoss, gdLoss+1e-12)
}

func TestLeastSquares_Ridge(t *testing.T) {
	x, y := createBenchmarkData(50)

	plain := NewLeastSquares(WithDegree(3))
	require.NoError(t, plain.Fit(x, y))
	ridge := NewLeastSquares(WithDegree(3), WithRidge(10))
	require.NoError(t, ridge.Fit(x, y))

	norm := func(c []float64) float64 {
		var s float64
		for _, v := range c[1:] {
			s += v * v
		}
		return s
	}
	assert.Less(t, norm(ridge.Coefficients()), norm(plain.Coefficients()))
}

func TestLeastSquares_Errors(t *testing.T) {
	ls := NewLeastSquares(WithDegree(1))

	_, err := ls.Predict([]float64{1})
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	err = ls.Fit(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	err = ls.Fit([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	err = NewLeastSquares(WithDegree(-1)).Fit([]float64{1}, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	err = NewLeastSquares(WithRidge(-1)).Fit([]float64{1}, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	// 標本数が係数より少ないと正規方程式は特異になる
	err = NewLeastSquares(WithDegree(3)).Fit([]float64{1, 2}, []float64{1, 2})
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))
	assert.False(t, ls.state.IsFitted())
}

func TestVandermonde(t *testing.T) {
	X := Vandermonde([]float64{2, 3}, 2)
	r, c := X.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{1, 2, 4}, X.RawRowView(0))
	assert.Equal(t, []float64{1, 3, 9}, X.RawRowView(1))

	// 並列経路でも逐次と同じ値になる
	x, _ := createBenchmarkData(parallelThreshold * 3)
	big := Vandermonde(x, 3)
	for i := range x {
		assert.Equal(t, x[i]*x[i]*x[i], big.At(i, 3))
	}
}
