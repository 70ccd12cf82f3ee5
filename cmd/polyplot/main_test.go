package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

func resetLogging(t *testing.T) {
	t.Cleanup(func() {
		errors.SetZerologWarnFunc(nil)
		log.SetProvider(log.NewProvider(os.Stderr, log.LevelInfo, log.FormatConsole))
	})
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Quiet = true
	return cfg
}

func TestFitAndSample_Grades(t *testing.T) {
	resetLogging(t)
	log.SetProvider(log.NewProvider(&bytes.Buffer{}, log.LevelError, log.FormatJSON))

	samples := dataset.Grades()
	res, err := fitAndSample(context.Background(), quietConfig(), samples, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, res.CurveX, 100)
	require.Len(t, res.CurveY, 100)
	assert.Equal(t, 1.0, res.CurveX[0])
	assert.InDelta(t, 1+0.14*99, res.CurveX[99], 1e-9)
	assert.Len(t, res.Coefficients, 6)

	var variance float64
	mean := 87.4
	for _, y := range samples.Y {
		variance += (y - mean) * (y - mean)
	}
	variance /= float64(samples.Len())

	assert.Less(t, res.Report.MSE, variance)
	assert.Greater(t, res.Report.R2, 0.3)
	// 予測曲線は学習範囲内では成績の範囲に収まる
	for i, x := range res.CurveX {
		if x <= 10 {
			assert.InDelta(t, 85, res.CurveY[i], 15, "x=%v", x)
		}
	}
}

func TestFitAndSample_ProgressLines(t *testing.T) {
	resetLogging(t)
	log.SetProvider(log.NewProvider(&bytes.Buffer{}, log.LevelError, log.FormatJSON))

	cfg := DefaultConfig()
	cfg.Iterations = 2500
	cfg.Normalize = NormalizeStandard

	var progress bytes.Buffer
	_, err := fitAndSample(context.Background(), cfg, dataset.Grades(), &progress)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(progress.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Iteration 0, Loss: "))
	assert.True(t, strings.HasPrefix(lines[1], "Iteration 1000, Loss: "))
	assert.True(t, strings.HasPrefix(lines[2], "Iteration 2000, Loss: "))
}

func TestFitAndSample_Cancelled(t *testing.T) {
	resetLogging(t)
	log.SetProvider(log.NewProvider(&bytes.Buffer{}, log.LevelError, log.FormatJSON))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fitAndSample(ctx, quietConfig(), dataset.Grades(), &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_WritesChart(t *testing.T) {
	resetLogging(t)

	dir := t.TempDir()
	data := filepath.Join(dir, "grades.csv")
	require.NoError(t, os.WriteFile(data, []byte("test,grade\n1,75\n2,85\n3,90\n4,95\n5,88\n"), 0o600))
	out := filepath.Join(dir, "chart.svg")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-data", data,
		"-iterations", "3000",
		"-lr", "0.01",
		"-out", out,
		"-log-level", "error",
		"-log-format", "json",
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Iteration 0, Loss: ")
	assert.Contains(t, stdout.String(), "Coefficients: [")
	assert.Contains(t, stdout.String(), "R2: ")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRun_MissingData(t *testing.T) {
	resetLogging(t)

	err := run(context.Background(), []string{
		"-data", filepath.Join(t.TempDir(), "missing.csv"),
		"-log-level", "error",
	}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRun_InvalidLogLevel(t *testing.T) {
	resetLogging(t)

	err := run(context.Background(), []string{"-log-level", "loud"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestFormatCoefficients(t *testing.T) {
	assert.Equal(t, "[0.5 -1.25e-07 3]", formatCoefficients([]float64{0.5, -1.25e-7, 3}))
	assert.Equal(t, "[]", formatCoefficients(nil))
}

func TestFitAndSample_Baseline(t *testing.T) {
	resetLogging(t)
	log.SetProvider(log.NewProvider(&bytes.Buffer{}, log.LevelError, log.FormatJSON))

	cfg := quietConfig()
	cfg.Iterations = 5000
	cfg.Baseline = true

	res, err := fitAndSample(context.Background(), cfg, dataset.Grades(), &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, res.Baseline)
	assert.LessOrEqual(t, res.Baseline.MSE, res.Report.MSE+1e-9)

	var out bytes.Buffer
	printReport(&out, res)
	assert.Contains(t, out.String(), "Least squares  MSE: ")
}
