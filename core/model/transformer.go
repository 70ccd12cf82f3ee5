package model

// Transformer は一次元データを変換するインターフェース
// 多項式回帰の入力 (x) と目的変数 (y) の正規化に使う
type Transformer interface {
	// FitSlice は変換に必要なパラメータを学習する
	FitSlice(values []float64) error

	// TransformSlice はデータを変換する
	TransformSlice(values []float64) ([]float64, error)

	// InverseTransformSlice は変換を元に戻す
	InverseTransformSlice(values []float64) ([]float64, error)
}
