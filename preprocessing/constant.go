package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// ConstantScaler は固定の係数で割るスケーラー
// 成績 (0-100) を 0-1 付近に収める用途を想定している
type ConstantScaler struct {
	state *model.StateManager

	// Factor は Transform で割る値
	Factor float64
}

// NewConstantScaler は Factor で割る ConstantScaler を作成する
func NewConstantScaler(factor float64) *ConstantScaler {
	return &ConstantScaler{
		state:  model.NewStateManager(),
		Factor: factor,
	}
}

// FitSlice は Factor を検証する。値そのものは学習に使わない
func (c *ConstantScaler) FitSlice(values []float64) error {
	if c.Factor == 0 || math.IsNaN(c.Factor) || math.IsInf(c.Factor, 0) {
		return errors.NewValidationError("factor", "must be a non-zero finite number", c.Factor)
	}
	c.state.SetDimensions(1, len(values))
	c.state.SetFitted()
	return nil
}

// FitTransformSlice は FitSlice と TransformSlice を続けて実行する
func (c *ConstantScaler) FitTransformSlice(values []float64) ([]float64, error) {
	if err := c.FitSlice(values); err != nil {
		return nil, err
	}
	return c.TransformSlice(values)
}

// TransformSlice は values / Factor を返す
func (c *ConstantScaler) TransformSlice(values []float64) ([]float64, error) {
	if err := c.state.RequireFitted("ConstantScaler", "Transform"); err != nil {
		return nil, err
	}
	out := append([]float64{}, values...)
	floats.Scale(1/c.Factor, out)
	return out, nil
}

// InverseTransformSlice は values * Factor を返す
func (c *ConstantScaler) InverseTransformSlice(values []float64) ([]float64, error) {
	if err := c.state.RequireFitted("ConstantScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	out := append([]float64{}, values...)
	floats.Scale(c.Factor, out)
	return out, nil
}

// IsFitted は学習済みかどうかを返す
func (c *ConstantScaler) IsFitted() bool {
	return c.state.IsFitted()
}

func (c *ConstantScaler) String() string {
	return fmt.Sprintf("ConstantScaler(factor=%g)", c.Factor)
}
