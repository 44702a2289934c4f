package analytics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"scp-dashboard/internal/models"
)

// ErrInsufficientData marks a regression input that is underdetermined or
// singular: fewer than two orders, or a predictor with no variance.
var ErrInsufficientData = errors.New("insufficient data for regression")

var predictorNames = []string{"Shipping Time", "Defect Rate", "Lead Time"}

var predictorFields = []string{FieldShippingTime, FieldDefectRate, FieldLeadTime}

// Regress fits profit as a linear function of shipping time, defect rate
// and lead time over the filtered set via ordinary least squares, and
// reports the coefficients, intercept, R², and each predictor's Pearson
// correlation with profit. The largest-magnitude coefficient names the
// key driver.
func Regress(orders []models.Order) (models.RegressionInsight, error) {
	n := len(orders)
	if n < 2 {
		return models.RegressionInsight{}, ErrInsufficientData
	}

	y := make([]float64, n)
	cols := make([][]float64, len(predictorFields))
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	for i, o := range orders {
		y[i] = o.Profit
		for j, field := range predictorFields {
			cols[j][i] = fieldValue(o, field)
		}
	}

	for _, col := range cols {
		if stat.Variance(col, nil) == 0 {
			return models.RegressionInsight{}, ErrInsufficientData
		}
	}

	// Design matrix with an intercept column.
	x := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range cols {
			x.Set(i, j+1, col[i])
		}
	}
	yVec := mat.NewVecDense(n, y)

	var beta mat.VecDense
	if err := beta.SolveVec(x, yVec); err != nil {
		return models.RegressionInsight{}, ErrInsufficientData
	}

	insight := models.RegressionInsight{
		Intercept:  beta.AtVec(0),
		Predictors: make([]models.RegressionPredictor, len(cols)),
	}
	for j, col := range cols {
		insight.Predictors[j] = models.RegressionPredictor{
			Name:        predictorNames[j],
			Coefficient: beta.AtVec(j + 1),
			Correlation: stat.Correlation(col, y, nil),
		}
	}

	insight.RSquared = rSquared(x, yVec, &beta)
	insight.KeyDriver = keyDriver(insight.Predictors)
	return insight, nil
}

func rSquared(x *mat.Dense, y *mat.VecDense, beta *mat.VecDense) float64 {
	n := y.Len()
	var fitted mat.VecDense
	fitted.MulVec(x, beta)

	mean := stat.Mean(y.RawVector().Data, nil)
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		ssRes += r * r
		d := y.AtVec(i) - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func keyDriver(predictors []models.RegressionPredictor) string {
	best := predictors[0]
	for _, p := range predictors[1:] {
		if math.Abs(p.Coefficient) > math.Abs(best.Coefficient) {
			best = p
		}
	}
	return best.Name
}
