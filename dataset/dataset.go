// Package dataset provides sample sets for curve fitting: the built-in
// grades data and a CSV loader.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// Samples is a paired set of observations. X[i] pairs with Y[i].
type Samples struct {
	X []float64
	Y []float64
}

// Len returns the number of pairs.
func (s Samples) Len() int {
	return len(s.X)
}

// XY implements plotter.XYer.
func (s Samples) XY(i int) (float64, float64) {
	return s.X[i], s.Y[i]
}

// Bounds returns the smallest and largest x.
func (s Samples) Bounds() (minX, maxX float64) {
	return floats.Min(s.X), floats.Max(s.X)
}

// Validate checks that the set is non-empty and paired.
func (s Samples) Validate() error {
	if len(s.X) == 0 {
		return errors.NewValidationError("samples", "must contain at least one pair", 0)
	}
	if len(s.Y) != len(s.X) {
		return errors.NewDimensionError("dataset.Samples", len(s.X), len(s.Y), 0)
	}
	return nil
}

// Grades returns ten test scores indexed by sitting number 1 through 10.
func Grades() Samples {
	return Samples{
		X: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Y: []float64{75, 85, 90, 95, 88, 90, 86, 89, 90, 86},
	}
}

// LoadCSV reads samples from two numeric columns (x, y). A first row that
// does not parse as numbers is treated as a header. Blank lines are skipped
// and extra columns are ignored.
func LoadCSV(r io.Reader) (Samples, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var s Samples
	for first := true; ; first = false {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError は行番号を含む
			return Samples{}, errors.Wrap(err, "read csv")
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return Samples{}, errors.NewValueError("dataset.LoadCSV",
				fmt.Sprintf("line %d has fewer than 2 columns", line))
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if errX != nil || errY != nil {
			if first {
				continue
			}
			return Samples{}, errors.NewValueError("dataset.LoadCSV",
				fmt.Sprintf("line %d is not numeric: %s", line, strings.Join(record[:2], ",")))
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}

	if err := s.Validate(); err != nil {
		return Samples{}, errors.Wrap(err, "load csv")
	}
	return s, nil
}
