// Command polyplot fits a polynomial to a set of (x, y) samples by gradient
// descent and plots the samples together with the fitted curve.
//
// Usage:
//
//	polyplot [flags]
//
// Without -data it fits the built-in grades dataset. Training progress is
// printed as "Iteration <n>, Loss: <value>" lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/polyreg/chart"
	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/dataset"
	"github.com/YuminosukeSato/polyreg/linear"
	"github.com/YuminosukeSato/polyreg/metrics"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
	"github.com/YuminosukeSato/polyreg/polynomial"
	"github.com/YuminosukeSato/polyreg/preprocessing"
	"github.com/YuminosukeSato/polyreg/viewer/term"
	"github.com/YuminosukeSato/polyreg/viewer/window"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.GetLoggerWithName("cli").Error("polyplot failed", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if err := log.SetupLoggerWithWriter(stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	samples, err := loadSamples(cfg.DataPath)
	if err != nil {
		return err
	}

	res, err := fitAndSample(ctx, cfg, samples, stdout)
	if err != nil {
		return err
	}
	printReport(stdout, res)
	return present(cfg, res)
}

func loadSamples(path string) (dataset.Samples, error) {
	if path == "" {
		return dataset.Grades(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return dataset.Samples{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return dataset.LoadCSV(f)
}

// result is a fitted curve in display units.
type result struct {
	Samples      dataset.Samples
	CurveX       []float64
	CurveY       []float64
	Coefficients []float64
	Report       metrics.Report
	// Baseline is set when the least-squares comparison ran.
	Baseline *metrics.Report
}

func newXScaler(mode string) model.Transformer {
	if mode == NormalizeStandard {
		return preprocessing.NewStandardScalerDefault()
	}
	return preprocessing.NewMinMaxScalerDefault()
}

func fitAndSample(ctx context.Context, cfg Config, samples dataset.Samples, progress io.Writer) (*result, error) {
	if err := samples.Validate(); err != nil {
		return nil, err
	}

	xScaler := newXScaler(cfg.Normalize)
	yScaler := preprocessing.NewConstantScaler(cfg.YScale)
	if err := xScaler.FitSlice(samples.X); err != nil {
		return nil, err
	}
	if err := yScaler.FitSlice(samples.Y); err != nil {
		return nil, err
	}
	x, err := xScaler.TransformSlice(samples.X)
	if err != nil {
		return nil, err
	}
	y, err := yScaler.TransformSlice(samples.Y)
	if err != nil {
		return nil, err
	}

	opts := []polynomial.Option{
		polynomial.WithDegree(cfg.Degree),
		polynomial.WithLearningRate(cfg.LearningRate),
		polynomial.WithIterations(cfg.Iterations),
		polynomial.WithSeed(cfg.Seed),
		polynomial.WithReportEvery(cfg.ReportEvery),
		polynomial.WithDivergenceDetection(cfg.DivergeCheck),
	}
	if !cfg.Quiet {
		opts = append(opts, polynomial.WithProgressObserver(polynomial.ConsoleObserver(progress)))
	}
	pr := polynomial.NewPolynomialRegression(opts...)
	if err := pr.FitContext(ctx, x, y); err != nil {
		return nil, err
	}

	minX, maxX := samples.Bounds()
	curveX, err := polynomial.Grid(minX, maxX+cfg.Margin, cfg.Points)
	if err != nil {
		return nil, err
	}
	modelX, err := xScaler.TransformSlice(curveX)
	if err != nil {
		return nil, err
	}
	modelY, err := pr.Predict(modelX)
	if err != nil {
		return nil, err
	}
	curveY, err := yScaler.InverseTransformSlice(modelY)
	if err != nil {
		return nil, err
	}

	fitted, err := pr.Predict(x)
	if err != nil {
		return nil, err
	}
	if fitted, err = yScaler.InverseTransformSlice(fitted); err != nil {
		return nil, err
	}
	report, err := metrics.Summarize(samples.Y, fitted)
	if err != nil {
		return nil, err
	}

	res := &result{
		Samples:      samples,
		CurveX:       curveX,
		CurveY:       curveY,
		Coefficients: pr.Coefficients(),
		Report:       report,
	}
	if cfg.Baseline {
		res.Baseline = baseline(cfg.Degree, x, samples.Y, yScaler)
	}
	return res, nil
}

// baseline fits the closed-form least-squares polynomial on the same
// normalised data. A failure is logged and skipped.
func baseline(degree int, x, yTrue []float64, yScaler model.Transformer) *metrics.Report {
	logger := log.GetLoggerWithName("cli")

	y, err := yScaler.TransformSlice(yTrue)
	if err != nil {
		logger.Warn("Baseline skipped", log.ErrAttrKey, err.Error())
		return nil
	}
	ls := linear.NewLeastSquares(linear.WithDegree(degree))
	if err := ls.Fit(x, y); err != nil {
		logger.Warn("Baseline skipped", log.ErrAttrKey, err.Error())
		return nil
	}
	preds, err := ls.Predict(x)
	if err == nil {
		preds, err = yScaler.InverseTransformSlice(preds)
	}
	if err != nil {
		logger.Warn("Baseline skipped", log.ErrAttrKey, err.Error())
		return nil
	}
	report, err := metrics.Summarize(yTrue, preds)
	if err != nil {
		logger.Warn("Baseline skipped", log.ErrAttrKey, err.Error())
		return nil
	}
	return &report
}

func printReport(w io.Writer, res *result) {
	fmt.Fprintf(w, "Coefficients: %s\n", formatCoefficients(res.Coefficients))
	fmt.Fprintf(w, "MSE: %.4f  RMSE: %.4f  MAE: %.4f  R2: %.4f  MAPE: %.2f%%\n",
		res.Report.MSE, res.Report.RMSE, res.Report.MAE, res.Report.R2, res.Report.MAPE)
	if b := res.Baseline; b != nil {
		fmt.Fprintf(w, "Least squares  MSE: %.4f  RMSE: %.4f  MAE: %.4f  R2: %.4f  MAPE: %.2f%%\n",
			b.MSE, b.RMSE, b.MAE, b.R2, b.MAPE)
	}
}

func formatCoefficients(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func present(cfg Config, res *result) error {
	newChart := func() (*chart.Chart, error) {
		curve, err := chart.XYs(res.CurveX, res.CurveY)
		if err != nil {
			return nil, err
		}
		return chart.New(chart.DefaultLabels, res.Samples, curve)
	}

	if cfg.Out != "" {
		c, err := newChart()
		if err != nil {
			return err
		}
		if err := c.Save(cfg.Out, 8*vg.Inch, 6*vg.Inch); err != nil {
			return err
		}
	}

	switch cfg.View {
	case ViewWindow:
		c, err := newChart()
		if err != nil {
			return err
		}
		return window.Run(window.DefaultConfig, c.Render)
	case ViewTerm:
		return term.Run(term.View{
			Title:   chart.DefaultLabels.Title,
			Samples: res.Samples.Y,
			Curve:   res.CurveY,
			Summary: fmt.Sprintf("degree %d\nR2 %.4f\nMSE %.4f", len(res.Coefficients)-1, res.Report.R2, res.Report.MSE),
		})
	}
	return nil
}
