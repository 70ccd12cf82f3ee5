package polynomial

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// 正規化済みの成績データ
var (
	gradesX = []float64{0, 0.25, 0.5, 0.75, 1.0}
	gradesY = []float64{0.75, 0.85, 0.90, 0.95, 0.88}
)

func TestFit_LinearData(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 2, 4, 6}
	coefficients := []float64{0, 0}

	require.NoError(t, Fit(x, y, coefficients, 0.01, 10000))

	loss, err := Loss(x, y, coefficients)
	require.NoError(t, err)
	assert.Less(t, loss, 1e-4)
	assert.InDelta(t, 0.0, coefficients[0], 1e-2)
	assert.InDelta(t, 2.0, coefficients[1], 1e-2)
}

func TestFit_LossNonIncreasing(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 2, 4, 6}
	coefficients := []float64{0, 0}

	var losses []float64
	err := Fit(x, y, coefficients, 0.01, 3000,
		WithReportInterval(100),
		WithObserver(func(_ int, loss float64) { losses = append(losses, loss) }),
	)
	require.NoError(t, err)
	require.Len(t, losses, 30)

	for i := 1; i < len(losses); i++ {
		assert.LessOrEqual(t, losses[i], losses[i-1], "report %d", i)
	}
}

func TestFit_GradesDegreeFive(t *testing.T) {
	coefficients, err := SeedCoefficients(5, 1, DefaultSeedSpread)
	require.NoError(t, err)

	zeroLoss, err := Loss(gradesX, gradesY, make([]float64, 6))
	require.NoError(t, err)

	require.NoError(t, Fit(gradesX, gradesY, coefficients, 0.001, 100000))

	loss, err := Loss(gradesX, gradesY, coefficients)
	require.NoError(t, err)
	assert.Less(t, loss, zeroLoss)
	assert.True(t, errors.IsFinite(coefficients))
	assert.Len(t, coefficients, 6)
}

func TestFit_Deterministic(t *testing.T) {
	seed, err := SeedCoefficients(3, 7, DefaultSeedSpread)
	require.NoError(t, err)

	a := append([]float64(nil), seed...)
	b := append([]float64(nil), seed...)
	require.NoError(t, Fit(gradesX, gradesY, a, 0.01, 2000))
	require.NoError(t, Fit(gradesX, gradesY, b, 0.01, 2000))

	assert.Equal(t, a, b)
}

func TestFit_PreconditionsLeaveCoefficientsUntouched(t *testing.T) {
	tests := []struct {
		name         string
		x, y         []float64
		coefficients []float64
		lr           float64
		iterations   int
		opts         []FitOption
	}{
		{"length mismatch", []float64{0, 1, 2}, []float64{0, 1}, []float64{0.1, 0.2}, 0.01, 10, nil},
		{"empty samples", nil, nil, []float64{0.1, 0.2}, 0.01, 10, nil},
		{"empty coefficients", []float64{0, 1}, []float64{0, 1}, []float64{}, 0.01, 10, nil},
		{"zero learning rate", []float64{0, 1}, []float64{0, 1}, []float64{0.1, 0.2}, 0, 10, nil},
		{"negative learning rate", []float64{0, 1}, []float64{0, 1}, []float64{0.1, 0.2}, -0.5, 10, nil},
		{"NaN learning rate", []float64{0, 1}, []float64{0, 1}, []float64{0.1, 0.2}, math.NaN(), 10, nil},
		{"Inf learning rate", []float64{0, 1}, []float64{0, 1}, []float64{0.1, 0.2}, math.Inf(1), 10, nil},
		{"zero iterations", []float64{0, 1}, []float64{0, 1}, []float64{0.1, 0.2}, 0.01, 0, nil},
		{"zero report interval", []float64{0, 1}, []float64{0, 1}, []float64{0.1, 0.2}, 0.01, 10, []FitOption{WithReportInterval(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := make([]float64, len(tt.coefficients))
			copy(before, tt.coefficients)

			err := Fit(tt.x, tt.y, tt.coefficients, tt.lr, tt.iterations, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument), "got %v", err)
			assert.Equal(t, before, tt.coefficients)
		})
	}
}

func TestFit_LengthMismatchIsDimensionError(t *testing.T) {
	err := Fit([]float64{0, 1, 2}, []float64{0, 1}, []float64{0}, 0.01, 1)

	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)
}

func TestFit_ObserverCadence(t *testing.T) {
	var iterations []int
	observer := func(iteration int, _ float64) { iterations = append(iterations, iteration) }

	coefficients := []float64{0, 0}
	require.NoError(t, Fit(gradesX, gradesY, coefficients, 0.01, 2500, WithObserver(observer)))
	assert.Equal(t, []int{0, 1000, 2000}, iterations)

	iterations = nil
	require.NoError(t, Fit(gradesX, gradesY, coefficients, 0.01, 7, WithObserver(observer), WithReportInterval(3)))
	assert.Equal(t, []int{0, 3, 6}, iterations)
}

func TestFit_ObserverSeesPostUpdateLoss(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 2, 4, 6}
	coefficients := []float64{0, 0}

	var reported float64
	require.NoError(t, Fit(x, y, coefficients, 0.01, 1,
		WithObserver(func(_ int, loss float64) { reported = loss })))

	want, err := Loss(x, y, coefficients)
	require.NoError(t, err)
	assert.Equal(t, want, reported)
}

func TestFit_ObserverDoesNotChangeResult(t *testing.T) {
	a := []float64{0.01, -0.02, 0.03}
	b := append([]float64(nil), a...)

	require.NoError(t, Fit(gradesX, gradesY, a, 0.01, 3000))
	require.NoError(t, Fit(gradesX, gradesY, b, 0.01, 3000,
		WithObserver(func(int, float64) {}), WithReportInterval(1)))

	assert.Equal(t, a, b)
}

func TestFitContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coefficients := []float64{0.1, 0.2}
	err := FitContext(ctx, gradesX, gradesY, coefficients, 0.01, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []float64{0.1, 0.2}, coefficients)
}

func TestFitContext_CancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coefficients := []float64{0, 0}
	err := FitContext(ctx, gradesX, gradesY, coefficients, 0.01, 10000,
		WithReportInterval(10),
		WithObserver(func(iteration int, _ float64) {
			if iteration == 50 {
				cancel()
			}
		}),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "iteration 51")
}

func TestFit_Divergence(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{75, 85, 90, 95, 88}

	t.Run("unchecked", func(t *testing.T) {
		coefficients := []float64{0, 0, 0, 0}
		require.NoError(t, Fit(x, y, coefficients, 1.0, 1000))
		assert.False(t, errors.IsFinite(coefficients))
	})

	t.Run("checked", func(t *testing.T) {
		coefficients := []float64{0, 0, 0, 0}
		err := Fit(x, y, coefficients, 1.0, 1000, WithDivergenceCheck())
		require.Error(t, err)

		var numErr *errors.NumericalInstabilityError
		require.True(t, errors.As(err, &numErr))
		assert.Equal(t, "gradient_update", numErr.Operation)
		assert.Less(t, numErr.Iteration, 1000)
	})
}

func BenchmarkFit(b *testing.B) {
	seed, _ := SeedCoefficients(5, 1, DefaultSeedSpread)
	coefficients := make([]float64, len(seed))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(coefficients, seed)
		_ = Fit(gradesX, gradesY, coefficients, 0.001, 1000)
	}
}
