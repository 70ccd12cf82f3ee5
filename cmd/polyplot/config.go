package main

import (
	"flag"
	"io"
	"math"
	"strings"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/polynomial"
)

// Viewer modes.
const (
	ViewNone   = "none"
	ViewWindow = "window"
	ViewTerm   = "term"
)

// Normalisation modes for x.
const (
	NormalizeMinMax   = "minmax"
	NormalizeStandard = "standard"
)

// Config holds the command-line settings of polyplot.
type Config struct {
	DataPath     string
	Degree       int
	LearningRate float64
	Iterations   int
	Seed         uint64
	ReportEvery  int
	YScale       float64
	Normalize    string
	Points       int
	Margin       float64
	Out          string
	View         string
	LogLevel     string
	LogFormat    string
	DivergeCheck bool
	Baseline     bool
	Quiet        bool
}

// DefaultConfig reproduces the grades demo.
func DefaultConfig() Config {
	return Config{
		Degree:       polynomial.DefaultDegree,
		LearningRate: polynomial.DefaultLearningRate,
		Iterations:   polynomial.DefaultIterations,
		Seed:         1,
		ReportEvery:  polynomial.DefaultReportEvery,
		YScale:       100,
		Normalize:    NormalizeMinMax,
		Points:       100,
		Margin:       5,
		View:         ViewNone,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

func parseFlags(args []string, output io.Writer) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("polyplot", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "CSV file with x,y columns (default: built-in grades)")
	fs.IntVar(&cfg.Degree, "degree", cfg.Degree, "polynomial degree")
	fs.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "gradient descent learning rate")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "gradient descent iterations")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the initial coefficients")
	fs.IntVar(&cfg.ReportEvery, "report-every", cfg.ReportEvery, "print the loss every n iterations")
	fs.Float64Var(&cfg.YScale, "y-scale", cfg.YScale, "divide y by this factor before fitting")
	fs.StringVar(&cfg.Normalize, "normalize", cfg.Normalize, "x normalisation: minmax or standard")
	fs.IntVar(&cfg.Points, "points", cfg.Points, "number of points on the predicted curve")
	fs.Float64Var(&cfg.Margin, "margin", cfg.Margin, "extend the curve this far past the largest x")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "write the chart to this file (png, svg, pdf, ...)")
	fs.StringVar(&cfg.View, "view", cfg.View, "viewer: none, window or term")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console, json or slog")
	fs.BoolVar(&cfg.DivergeCheck, "diverge-check", cfg.DivergeCheck, "fail as soon as the coefficients stop being finite")
	fs.BoolVar(&cfg.Baseline, "baseline", cfg.Baseline, "also report the closed-form least-squares fit")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "do not print training progress")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	if fs.NArg() > 0 {
		return Config{}, errors.NewValidationError("args", "unexpected positional arguments", strings.Join(fs.Args(), " "))
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that the libraries would otherwise reject
// late, after data has been loaded.
func (c Config) Validate() error {
	switch {
	case c.Degree < 0:
		return errors.NewValidationError("degree", "must be non-negative", c.Degree)
	case !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 1):
		return errors.NewValidationError("lr", "must be a positive finite number", c.LearningRate)
	case c.Iterations < 1:
		return errors.NewValidationError("iterations", "must be at least 1", c.Iterations)
	case c.ReportEvery < 1:
		return errors.NewValidationError("report-every", "must be at least 1", c.ReportEvery)
	case c.YScale == 0 || math.IsNaN(c.YScale) || math.IsInf(c.YScale, 0):
		return errors.NewValidationError("y-scale", "must be a non-zero finite number", c.YScale)
	case c.Points < 1:
		return errors.NewValidationError("points", "must be at least 1", c.Points)
	case math.IsNaN(c.Margin) || math.IsInf(c.Margin, 0):
		return errors.NewValidationError("margin", "must be finite", c.Margin)
	}

	switch c.Normalize {
	case NormalizeMinMax, NormalizeStandard:
	default:
		return errors.NewValidationError("normalize", "must be minmax or standard", c.Normalize)
	}
	switch c.View {
	case ViewNone, ViewWindow, ViewTerm:
	default:
		return errors.NewValidationError("view", "must be none, window or term", c.View)
	}
	return nil
}
