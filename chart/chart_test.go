package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

func newTestChart(t *testing.T) *Chart {
	t.Helper()

	samples, err := XYs([]float64{1, 2, 3, 4}, []float64{75, 85, 90, 95})
	require.NoError(t, err)
	curve, err := XYs([]float64{1, 2, 3, 4, 5}, []float64{76, 84, 91, 93, 94})
	require.NoError(t, err)

	c, err := New(DefaultLabels, samples, curve)
	require.NoError(t, err)
	return c
}

func TestXYs(t *testing.T) {
	pts, err := XYs([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	require.Equal(t, 2, pts.Len())
	x, y := pts.XY(1)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 4.0, y)

	_, err = XYs([]float64{1}, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestNew(t *testing.T) {
	c := newTestChart(t)
	assert.Equal(t, "Polynomial Regression", c.Plot().Title.Text)
	assert.Equal(t, "Test", c.Plot().X.Label.Text)
	assert.Equal(t, "Grade", c.Plot().Y.Label.Text)
}

func TestNew_RejectsNonFinite(t *testing.T) {
	samples, _ := XYs([]float64{1}, []float64{1})
	bad, _ := XYs([]float64{1}, []float64{math.NaN()})

	_, err := New(DefaultLabels, samples, bad)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	img, err := newTestChart(t).Render(320, 240)
	require.NoError(t, err)

	b := img.Bounds()
	assert.InDelta(t, 320, b.Dx(), 1)
	assert.InDelta(t, 240, b.Dy(), 1)

	_, err = newTestChart(t).Render(0, 240)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	c := newTestChart(t)

	for _, name := range []string{"chart.png", "chart.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, c.Save(path, 4*vg.Inch, 3*vg.Inch))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	err := c.Save(filepath.Join(dir, "chart.bmp"), 4*vg.Inch, 3*vg.Inch)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestChart(t).Encode(&buf, 4*vg.Inch, 3*vg.Inch, "PNG"))
	assert.Equal(t, []byte("\x89PNG"), buf.Bytes()[:4])

	err := newTestChart(t).Encode(&buf, 4*vg.Inch, 3*vg.Inch, "gif")
	assert.Error(t, err)
}

func TestPixels(t *testing.T) {
	assert.Equal(t, vg.Inch, Pixels(DPI))
}
