package model

// Fitter は一次元の訓練データで学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データ (x, y) で学習させる
	Fit(x, y []float64) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は各入力値に対する予測値を返す
	Predict(x []float64) ([]float64, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	// Score は予測の決定係数 R² を返す
	Score(x, y []float64) (float64, error)
}

// Regressor は回帰モデルのインターフェース
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// CurveModel は係数ベクトルで表される曲線モデルのインターフェース
type CurveModel interface {
	Regressor
	// Coefficients は学習済み係数のコピーを返す (index i が x^i の係数)
	Coefficients() []float64
	// Degree は多項式の次数を返す
	Degree() int
}
