// Package preprocessing はサンプルの正規化を行うスケーラーを提供する
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polyreg/core/model"
	"github.com/YuminosukeSato/polyreg/pkg/errors"
)

// 範囲がこれより小さい特徴量は定数とみなす
const constantFeatureTolerance = 1e-8

var (
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
	_ model.Transformer = (*ConstantScaler)(nil)
)

// StandardScaler はデータを平均0、標準偏差1に変換する
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差 (母標準偏差)
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithMean は平均を引くかどうか
	WithMean bool

	// WithStd は標準偏差で割るかどうか
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	xScaled, err := scaler.FitTransformSlice(x)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault は平均・標準偏差の両方を使うStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データ (n_samples × n_features) から平均と標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)

		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1.0
		if s.WithStd && std >= constantFeatureTolerance {
			s.Scale[j] = std
		}
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform は (X - Mean) / Scale を返す
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.checkInput(X, "Transform"); err != nil {
		return nil, err
	}
	return applyColumns(X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.checkInput(X, "InverseTransform"); err != nil {
		return nil, err
	}
	return applyColumns(X, func(j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}), nil
}

// FitSlice は一次元データで学習する
func (s *StandardScaler) FitSlice(values []float64) error {
	return s.Fit(columnOf(values))
}

// FitTransformSlice は一次元データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransformSlice(values []float64) ([]float64, error) {
	if err := s.FitSlice(values); err != nil {
		return nil, err
	}
	return s.TransformSlice(values)
}

// TransformSlice は一次元データを変換する
func (s *StandardScaler) TransformSlice(values []float64) ([]float64, error) {
	return transformSlice(s.state, "StandardScaler", "Transform", values, s.Transform)
}

// InverseTransformSlice は一次元データを元のスケールに戻す
func (s *StandardScaler) InverseTransformSlice(values []float64) ([]float64, error) {
	return transformSlice(s.state, "StandardScaler", "InverseTransform", values, s.InverseTransform)
}

// IsFitted は学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

func (s *StandardScaler) checkInput(X mat.Matrix, method string) error {
	if err := s.state.RequireFitted("StandardScaler", method); err != nil {
		return err
	}
	if _, c := X.Dims(); c != s.NFeatures {
		return errors.NewDimensionError("StandardScaler."+method, s.NFeatures, c, 1)
	}
	return nil
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}

// MinMaxScaler はデータを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	state *model.StateManager

	// Scale は各特徴量の幅 (max - min)。定数特徴量では1
	Scale []float64

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// NFeatures は特徴量の数
	NFeatures int

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	xScaled, err := scaler.FitTransformSlice(x)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault は[0,1]範囲のMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから各特徴量の最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if !(m.FeatureRange[1] > m.FeatureRange[0]) {
		return errors.NewValidationError("feature_range", "max must be greater than min", m.FeatureRange)
	}

	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		m.DataMin[j] = floats.Min(col)
		m.DataMax[j] = floats.Max(col)

		m.Scale[j] = m.DataMax[j] - m.DataMin[j]
		if math.Abs(m.Scale[j]) < constantFeatureTolerance {
			m.Scale[j] = 1.0
		}
	}

	m.state.SetDimensions(c, r)
	m.state.SetFitted()
	return nil
}

// Transform は (X - DataMin) / Scale を FeatureRange に写す
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.checkInput(X, "Transform"); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return applyColumns(X, func(j int, v float64) float64 {
		return (v-m.DataMin[j])/m.Scale[j]*width + m.FeatureRange[0]
	}), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.checkInput(X, "InverseTransform"); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return applyColumns(X, func(j int, v float64) float64 {
		return (v-m.FeatureRange[0])/width*m.Scale[j] + m.DataMin[j]
	}), nil
}

// FitSlice は一次元データで学習する
func (m *MinMaxScaler) FitSlice(values []float64) error {
	return m.Fit(columnOf(values))
}

// FitTransformSlice は一次元データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransformSlice(values []float64) ([]float64, error) {
	if err := m.FitSlice(values); err != nil {
		return nil, err
	}
	return m.TransformSlice(values)
}

// TransformSlice は一次元データを変換する。学習範囲外の値は範囲外に写る
func (m *MinMaxScaler) TransformSlice(values []float64) ([]float64, error) {
	return transformSlice(m.state, "MinMaxScaler", "Transform", values, m.Transform)
}

// InverseTransformSlice は一次元データを元の範囲に戻す
func (m *MinMaxScaler) InverseTransformSlice(values []float64) ([]float64, error) {
	return transformSlice(m.state, "MinMaxScaler", "InverseTransform", values, m.InverseTransform)
}

// IsFitted は学習済みかどうかを返す
func (m *MinMaxScaler) IsFitted() bool {
	return m.state.IsFitted()
}

func (m *MinMaxScaler) checkInput(X mat.Matrix, method string) error {
	if err := m.state.RequireFitted("MinMaxScaler", method); err != nil {
		return err
	}
	if _, c := X.Dims(); c != m.NFeatures {
		return errors.NewDimensionError("MinMaxScaler."+method, m.NFeatures, c, 1)
	}
	return nil
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures)
}

// columnOf は values をコピーして n×1 の行列にする
func columnOf(values []float64) mat.Matrix {
	if len(values) == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(len(values), 1, append([]float64(nil), values...))
}

// transformSlice は values を n×1 行列として fn に通す
func transformSlice(state *model.StateManager, name, method string, values []float64, fn func(mat.Matrix) (mat.Matrix, error)) ([]float64, error) {
	if len(values) == 0 {
		if err := state.RequireFitted(name, method); err != nil {
			return nil, err
		}
		return []float64{}, nil
	}
	X, err := fn(columnOf(values))
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, X), nil
}

func applyColumns(X mat.Matrix, fn func(j int, v float64) float64) *mat.Dense {
	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(_, j int, v float64) float64 {
		return fn(j, v)
	}, X)
	return result
}
