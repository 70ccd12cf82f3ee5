// Package chart draws fitted curves and their samples with gonum/plot.
package chart

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// Legend entries.
const (
	SamplesLabel = "Actual Grades"
	CurveLabel   = "Prediction"
)

// DPI used to convert pixel sizes into plot lengths.
const DPI = 96

// Labels names the chart and its axes.
type Labels struct {
	Title string
	X     string
	Y     string
}

// DefaultLabels are used by the grades demo.
var DefaultLabels = Labels{
	Title: "Polynomial Regression",
	X:     "Test",
	Y:     "Grade",
}

var (
	sampleColor = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	curveColor  = color.RGBA{R: 38, G: 139, B: 210, A: 255}
)

// Chart is a scatter of samples overlaid with a fitted curve.
type Chart struct {
	plot   *plot.Plot
	logger log.Logger
}

// XYs pairs x and y into plotter points.
func XYs(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("chart.XYs", len(x), len(y), 0)
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

// New builds a chart. Samples are drawn as points and the curve as a line
// through its points in order.
func New(labels Labels, samples, curve plotter.XYer) (*Chart, error) {
	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.X
	p.Y.Label.Text = labels.Y
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(samples)
	if err != nil {
		return nil, errors.Wrap(err, "create sample scatter")
	}
	scatter.GlyphStyle.Color = sampleColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, errors.Wrap(err, "create prediction line")
	}
	line.Color = curveColor
	line.Width = vg.Points(2)
	line.Dashes = []vg.Length{}

	p.Add(scatter, line)
	p.Legend.Add(SamplesLabel, scatter)
	p.Legend.Add(CurveLabel, line)
	p.Legend.Top = true

	return &Chart{
		plot:   p,
		logger: log.GetLoggerWithName("chart"),
	}, nil
}

// Plot exposes the underlying plot for further styling.
func (c *Chart) Plot() *plot.Plot {
	return c.plot
}

// Save writes the chart to path. The format is taken from the extension:
// png, jpg, jpeg, tif, tiff, svg, pdf or eps.
func (c *Chart) Save(path string, width, height vg.Length) error {
	if !isSupported(formatOf(path)) {
		return errors.NewValidationError("out", "unsupported chart format", filepath.Ext(path))
	}
	if err := c.plot.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "save chart to %s", path)
	}
	c.logger.Info("Chart saved",
		log.OperationKey, log.OperationRender,
		log.PhaseKey, log.PhaseVisualization,
		"path", path,
	)
	return nil
}

// Encode writes the chart to w in the given format.
func (c *Chart) Encode(w io.Writer, width, height vg.Length, format string) error {
	format = strings.ToLower(format)
	if !isSupported(format) {
		return errors.NewValidationError("format", "unsupported chart format", format)
	}
	wt, err := c.plot.WriterTo(width, height, format)
	if err != nil {
		return errors.Wrap(err, "encode chart")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "write chart")
	}
	return nil
}

// Render rasterises the chart to a width×height pixel image.
func (c *Chart) Render(width, height int) (image.Image, error) {
	if width < 1 || height < 1 {
		return nil, errors.NewValidationError("size", "width and height must be positive", [2]int{width, height})
	}
	canvas := vgimg.NewWith(
		vgimg.UseWH(Pixels(width), Pixels(height)),
		vgimg.UseDPI(DPI),
	)
	c.plot.Draw(draw.New(canvas))

	c.logger.Debug("Chart rendered",
		log.OperationKey, log.OperationRender,
		log.PhaseKey, log.PhaseVisualization,
		"width", width,
		"height", height,
	)
	return canvas.Image(), nil
}

// Pixels converts a pixel count at DPI into a plot length.
func Pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / DPI
}

func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func isSupported(format string) bool {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps":
		return true
	}
	return false
}
