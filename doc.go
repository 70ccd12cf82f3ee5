// Package polyreg fits one-dimensional polynomial curves to sample data by
// batch gradient descent and plots the result.
//
// # Packages
//
//   - polynomial: Evaluate, Fit and the PolynomialRegression estimator
//   - linear: closed-form least-squares polynomial fit, used as a baseline
//   - preprocessing: MinMaxScaler, StandardScaler and ConstantScaler
//   - metrics: MSE, RMSE, MAE, R² and MAPE
//   - dataset: the built-in grades data and a CSV loader
//   - chart: gonum/plot charts of samples and fitted curves
//   - viewer/window, viewer/term: desktop and terminal viewers
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/polyreg/polynomial"
//	)
//
//	func main() {
//	    x := []float64{0, 0.25, 0.5, 0.75, 1.0}
//	    y := []float64{0.75, 0.85, 0.90, 0.95, 0.88}
//
//	    pr := polynomial.NewPolynomialRegression(polynomial.WithSeed(1))
//	    if err := pr.Fit(x, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    preds, err := pr.Predict([]float64{1.25})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(preds[0])
//	}
//
// Inputs should be normalised before fitting. With degree 2 or more and raw
// inputs such as 1..10 the default learning rate makes the fit diverge.
//
// # Command
//
// cmd/polyplot runs the whole pipeline from the command line:
//
//	polyplot -out grades.png
//	polyplot -view window
//	polyplot -data scores.csv -degree 3 -view term
package polyreg
