package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scp-dashboard/internal/analytics"
	apperrors "scp-dashboard/internal/errors"
	"scp-dashboard/internal/store"
)

const factCSV = `order_date,supplier_name,cluster_label,transportation_modes,product_type,location,shipping_times,costs,shipping_costs,manufacturing_costs,revenue_generated,profit,order_quantity,defect_rates,lead_times,inspection_results
2024-01-02,Acme,Premium,Air,haircare,Mumbai,2,100,30,50,1000,400,10,1.0,5,Pass
2024-01-05,Acme,Premium,Road,skincare,Delhi,4,200,60,80,500,100,20,2.0,7,Fail
2024-01-10,Bolt,Budget,Air,haircare,Mumbai,6,300,90,120,2000,900,30,3.0,10,Pass
2024-01-20,Crux,Budget,Sea,cosmetics,Chennai,8,400,120,160,0,-50,40,4.0,12,Pending
`

const clusterCSV = `supplier_name,cluster_label
Acme,Premium
Bolt,Budget
Crux,Budget
`

const forecastCSV = `date,actual,forecast,lower_95,upper_95
2024-01-07,500,480,400,560
2024-01-14,600,590,500,680
2024-01-21,0,610,510,710
`

const featuresCSV = `cluster_label,supplier_count,avg_lead_time,avg_defect_rate,avg_cost
Premium,1,6.0,1.5,150
Budget,2,11.0,3.5,350
`

func newTestDashboard(t *testing.T) *Dashboard {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		store.FactFile:            factCSV,
		store.ClusterFile:         clusterCSV,
		store.ForecastFile:        forecastCSV,
		store.ClusterFeaturesFile: featuresCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(store.New(dir, time.Minute, logger), logger)
}

func TestRenderFullPass(t *testing.T) {
	d := newTestDashboard(t)
	data, err := d.Render(context.Background(), analytics.FilterSpec{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if data.KPIs.TotalOrders != 4 {
		t.Errorf("total orders = %d, want 4", data.KPIs.TotalOrders)
	}
	if len(data.WeeklyTrends) != 3 {
		t.Errorf("weekly trends = %d, want 3", len(data.WeeklyTrends))
	}
	if len(data.SupplierTable) != 3 {
		t.Errorf("supplier table = %d, want 3", len(data.SupplierTable))
	}
	if len(data.ClusterFeatures) != 2 {
		t.Errorf("cluster features = %d, want 2 (served verbatim)", len(data.ClusterFeatures))
	}
	if len(data.Forecast.Points) != 3 {
		t.Errorf("forecast points = %d, want 3", len(data.Forecast.Points))
	}
	if data.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should carry the snapshot load time")
	}
}

func TestRenderEmptySelection(t *testing.T) {
	d := newTestDashboard(t)
	_, err := d.Render(context.Background(), analytics.FilterSpec{Supplier: "Nobody"})
	if err == nil {
		t.Fatal("empty selection should fail the pass")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeEmptySelection {
		t.Errorf("err = %v, want EMPTY_SELECTION", err)
	}
}

func TestRenderRegressionFallback(t *testing.T) {
	d := newTestDashboard(t)
	// A single-supplier slice with one order cannot support the fit; the
	// pass still succeeds with the panel marked unavailable.
	data, err := d.Render(context.Background(), analytics.FilterSpec{Supplier: "Bolt"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if data.Regression.Available {
		t.Error("regression should be unavailable for one order")
	}
	if data.Regression.Reason != "insufficient data" {
		t.Errorf("reason = %q", data.Regression.Reason)
	}
	if data.Regression.Insight != nil {
		t.Error("unavailable result should carry no insight")
	}
}

func TestForecastIndependentOfFilters(t *testing.T) {
	d := newTestDashboard(t)
	view, err := d.Forecast(context.Background())
	if err != nil {
		t.Fatalf("Forecast() error: %v", err)
	}
	if len(view.Points) != 3 || len(view.Actual) != 2 {
		t.Errorf("forecast = %d points / %d actual, want 3/2", len(view.Points), len(view.Actual))
	}
}

func TestOptionsFromBaseSet(t *testing.T) {
	d := newTestDashboard(t)
	opts, err := d.Options(context.Background())
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	if len(opts.Suppliers) != 3 || len(opts.Clusters) != 2 {
		t.Errorf("options = %+v", opts)
	}
}

func TestKPIsDeltasAgainstBase(t *testing.T) {
	d := newTestDashboard(t)
	kpis, err := d.KPIs(context.Background(), analytics.FilterSpec{Supplier: "Acme"})
	if err != nil {
		t.Fatalf("KPIs() error: %v", err)
	}
	// Acme mean shipping 3 against the unfiltered mean 5.
	if kpis.ShippingTimeDelta != -2 {
		t.Errorf("shipping delta = %v, want -2", kpis.ShippingTimeDelta)
	}
}

func TestStatsPassThrough(t *testing.T) {
	d := newTestDashboard(t)
	if _, err := d.Options(context.Background()); err != nil {
		t.Fatal(err)
	}
	stats := d.Stats()
	if stats["loaded"] != true {
		t.Errorf("stats = %+v, want loaded true", stats)
	}
}
