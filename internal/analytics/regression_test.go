package analytics

import (
	"errors"
	"math"
	"testing"

	"scp-dashboard/internal/models"
)

// regressionOrders generates an exact linear relationship:
// profit = 10 + 2*shipping - 3*defect + 0.5*lead.
func regressionOrders(n int) []models.Order {
	orders := make([]models.Order, n)
	for i := range orders {
		ship := float64(i%7 + 1)
		defect := float64((i*3)%5) + 0.5
		lead := float64((i*5)%11 + 2)
		orders[i] = models.Order{
			ShippingTime: ship,
			DefectRate:   defect,
			LeadTime:     lead,
			Profit:       10 + 2*ship - 3*defect + 0.5*lead,
		}
	}
	return orders
}

func TestRegressRecoversCoefficients(t *testing.T) {
	insight, err := Regress(regressionOrders(50))
	if err != nil {
		t.Fatalf("Regress() error: %v", err)
	}

	if math.Abs(insight.Intercept-10) > 1e-6 {
		t.Errorf("intercept = %v, want 10", insight.Intercept)
	}
	want := map[string]float64{
		"Shipping Time": 2,
		"Defect Rate":   -3,
		"Lead Time":     0.5,
	}
	for _, p := range insight.Predictors {
		if math.Abs(p.Coefficient-want[p.Name]) > 1e-6 {
			t.Errorf("%s coefficient = %v, want %v", p.Name, p.Coefficient, want[p.Name])
		}
		if p.Correlation < -1 || p.Correlation > 1 {
			t.Errorf("%s correlation = %v, outside [-1,1]", p.Name, p.Correlation)
		}
	}

	// Noiseless data fits perfectly.
	if math.Abs(insight.RSquared-1) > 1e-6 {
		t.Errorf("r² = %v, want 1", insight.RSquared)
	}
	if insight.KeyDriver != "Defect Rate" {
		t.Errorf("key driver = %q, want Defect Rate (|−3| largest)", insight.KeyDriver)
	}
}

func TestRegressTooFewOrders(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, err := Regress(regressionOrders(n))
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("n=%d: err = %v, want ErrInsufficientData", n, err)
		}
	}
}

func TestRegressConstantPredictor(t *testing.T) {
	orders := []models.Order{
		{ShippingTime: 3, DefectRate: 1, LeadTime: 5, Profit: 10},
		{ShippingTime: 3, DefectRate: 2, LeadTime: 6, Profit: 20},
		{ShippingTime: 3, DefectRate: 3, LeadTime: 7, Profit: 30},
	}
	_, err := Regress(orders)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("constant predictor: err = %v, want ErrInsufficientData", err)
	}
}

func TestRegressConstantProfit(t *testing.T) {
	orders := regressionOrders(10)
	for i := range orders {
		orders[i].Profit = 42
	}
	insight, err := Regress(orders)
	if err != nil {
		t.Fatalf("Regress() error: %v", err)
	}
	// Zero total variance in y: r² reports 0 rather than dividing by it.
	if insight.RSquared != 0 {
		t.Errorf("r² = %v, want 0 for constant profit", insight.RSquared)
	}
}
