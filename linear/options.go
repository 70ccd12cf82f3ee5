package linear

// Option is a function that configures LeastSquares
type Option func(*LeastSquares)

// WithDegree sets the polynomial degree
func WithDegree(degree int) Option {
	return func(ls *LeastSquares) {
		ls.degree = degree
	}
}

// WithRidge adds alpha·I to the normal equations. The intercept is not
// penalised.
func WithRidge(alpha float64) Option {
	return func(ls *LeastSquares) {
		ls.alpha = alpha
	}
}
