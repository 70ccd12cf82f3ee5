// Package term draws a fitted curve and its samples in the terminal.
package term

import (
	"fmt"
	"math"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
	"github.com/YuminosukeSato/polyreg/pkg/log"
)

// View is what Run shows.
type View struct {
	Title   string
	Samples []float64 // sample y values in x order
	Curve   []float64 // curve y values on an evenly spaced grid
	Summary string
}

// Run takes over the terminal until q or Ctrl-C is pressed.
func Run(v View) error {
	if len(v.Samples) == 0 || len(v.Curve) == 0 {
		return errors.NewValidationError("view", "samples and curve must not be empty", [2]int{len(v.Samples), len(v.Curve)})
	}

	if err := ui.Init(); err != nil {
		return errors.Wrap(err, "termui init")
	}
	defer ui.Close()

	logger := log.GetLoggerWithName("term")
	samples, curve, floor := Series(v.Samples, v.Curve)
	maxVal := math.Max(maxOf(samples), maxOf(curve))

	curvePlot := widgets.NewPlot()
	curvePlot.Title = fmt.Sprintf("Prediction (y - %g)", floor)
	curvePlot.Data = [][]float64{curve}
	curvePlot.MaxVal = maxVal
	curvePlot.PlotType = widgets.LineChart
	curvePlot.Marker = widgets.MarkerBraille
	curvePlot.LineColors = []ui.Color{ui.ColorCyan}
	curvePlot.AxesColor = ui.ColorWhite

	samplePlot := widgets.NewPlot()
	samplePlot.Title = fmt.Sprintf("Actual Grades (y - %g)", floor)
	samplePlot.Data = [][]float64{samples}
	samplePlot.MaxVal = maxVal
	samplePlot.PlotType = widgets.ScatterPlot
	samplePlot.Marker = widgets.MarkerDot
	samplePlot.LineColors = []ui.Color{ui.ColorRed}
	samplePlot.AxesColor = ui.ColorWhite

	summary := widgets.NewParagraph()
	summary.Title = v.Title
	summary.Text = v.Summary + "\n\npress q to quit"

	grid := ui.NewGrid()
	layout := func() {
		w, h := ui.TerminalDimensions()
		grid.SetRect(0, 0, w, h)
		curvePlot.HorizontalScale = HorizontalScale(w*2/3, len(curve))
		samplePlot.HorizontalScale = HorizontalScale(w*2/3, len(samples))
		ui.Clear()
		ui.Render(grid)
	}
	grid.Set(
		ui.NewRow(1.0,
			ui.NewCol(2.0/3, ui.NewRow(0.5, curvePlot), ui.NewRow(0.5, samplePlot)),
			ui.NewCol(1.0/3, summary),
		),
	)
	layout()
	logger.Debug("Terminal view opened", log.PhaseKey, log.PhaseVisualization)

	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			logger.Debug("Terminal view closed", log.PhaseKey, log.PhaseVisualization)
			return nil
		case "<Resize>":
			layout()
		}
	}
	return nil
}

// Series shifts samples and curve down by a common floor so the plots use
// their full height, since termui always draws from zero. Non-finite and
// negative results become zero.
func Series(samples, curve []float64) (shiftedSamples, shiftedCurve []float64, floor float64) {
	floor = math.Inf(1)
	for _, values := range [][]float64{samples, curve} {
		for _, v := range values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) && v < floor {
				floor = v
			}
		}
	}
	if math.IsInf(floor, 1) {
		floor = 0
	}
	floor = math.Floor(floor)

	shift := func(values []float64) []float64 {
		out := make([]float64, len(values))
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < floor {
				continue
			}
			out[i] = v - floor
		}
		return out
	}
	return shift(samples), shift(curve), floor
}

// HorizontalScale returns the column step that spreads n points over width
// cells, at least 1.
func HorizontalScale(width, n int) int {
	if n < 2 {
		return 1
	}
	// braille cells leave room for the y axis labels
	scale := (width - 8) / n
	if scale < 1 {
		return 1
	}
	return scale
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
