package services

import (
	"context"
	"log/slog"
	"time"

	"scp-dashboard/internal/analytics"
	"scp-dashboard/internal/errors"
	"scp-dashboard/internal/models"
	"scp-dashboard/internal/store"
)

// Dashboard runs the render pipeline: snapshot → filter → aggregate.
// Every method is one synchronous pass; the store's TTL cache keeps
// repeated passes from re-reading the extracts.
type Dashboard struct {
	store  *store.Store
	logger *slog.Logger
}

func New(st *store.Store, logger *slog.Logger) *Dashboard {
	return &Dashboard{store: st, logger: logger}
}

// DashboardData is one full render pass, every panel computed from the
// same filtered view.
type DashboardData struct {
	KPIs            models.KPISummary         `json:"kpis"`
	WeeklyTrends    []models.WeeklyTrend      `json:"weekly_trends"`
	Insights        models.TrendInsights      `json:"insights"`
	Distributions   models.Distributions      `json:"distributions"`
	SupplierFinance []models.SupplierFinance  `json:"supplier_finance"`
	ProductVolumes  []models.ProductVolume    `json:"product_volumes"`
	CostBreakdown   []models.CostBreakdown    `json:"cost_breakdown"`
	Quality         []models.QualityMetric    `json:"quality"`
	Performance     []models.PerformanceScore `json:"performance"`
	ClusterProfiles []models.ClusterProfile   `json:"cluster_profiles"`
	ClusterFeatures []models.ClusterFeature   `json:"cluster_features"`
	Regression      models.RegressionResult   `json:"regression"`
	SupplierTable   []models.SupplierRow      `json:"supplier_table"`
	Forecast        models.ForecastView       `json:"forecast"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// filtered returns the filtered view alongside the unfiltered base.
// A zero-record view is EmptySelection; callers never aggregate it.
func (d *Dashboard) filtered(ctx context.Context, f analytics.FilterSpec) (filtered, base []models.Order, err error) {
	snap, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	filtered = analytics.Apply(snap.Orders, f)
	if len(filtered) == 0 {
		return nil, nil, errors.EmptySelection()
	}
	return filtered, snap.Orders, nil
}

// Render computes the complete dashboard for one filter state.
func (d *Dashboard) Render(ctx context.Context, f analytics.FilterSpec) (*DashboardData, error) {
	snap, err := d.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	filtered := analytics.Apply(snap.Orders, f)
	if len(filtered) == 0 {
		return nil, errors.EmptySelection()
	}

	trends := analytics.WeeklyTrends(filtered)
	data := &DashboardData{
		KPIs:            analytics.Summary(filtered, snap.Orders),
		WeeklyTrends:    trends,
		Insights:        analytics.Insights(trends),
		Distributions:   analytics.Distribute(filtered),
		SupplierFinance: analytics.SupplierFinances(filtered),
		ProductVolumes:  analytics.ProductVolumes(filtered),
		CostBreakdown:   analytics.CostBreakdowns(filtered),
		Quality:         analytics.QualityMetrics(filtered),
		Performance:     analytics.PerformanceScores(filtered),
		ClusterProfiles: analytics.ClusterProfiles(filtered),
		ClusterFeatures: snap.ClusterFeatures,
		Regression:      d.regression(filtered),
		SupplierTable:   analytics.SupplierTable(filtered),
		Forecast:        analytics.ForecastWindowView(snap.Forecast),
		GeneratedAt:     snap.LoadedAt,
	}
	return data, nil
}

// regression recovers a degenerate fit locally instead of failing the
// render pass.
func (d *Dashboard) regression(filtered []models.Order) models.RegressionResult {
	insight, err := analytics.Regress(filtered)
	if err != nil {
		d.logger.Warn("regression skipped", "error", err, "orders", len(filtered))
		return models.RegressionResult{Available: false, Reason: "insufficient data"}
	}
	return models.RegressionResult{Available: true, Insight: &insight}
}

func (d *Dashboard) KPIs(ctx context.Context, f analytics.FilterSpec) (models.KPISummary, error) {
	filtered, base, err := d.filtered(ctx, f)
	if err != nil {
		return models.KPISummary{}, err
	}
	return analytics.Summary(filtered, base), nil
}

func (d *Dashboard) WeeklyTrends(ctx context.Context, f analytics.FilterSpec) ([]models.WeeklyTrend, models.TrendInsights, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, models.TrendInsights{}, err
	}
	trends := analytics.WeeklyTrends(filtered)
	return trends, analytics.Insights(trends), nil
}

func (d *Dashboard) Distributions(ctx context.Context, f analytics.FilterSpec) (models.Distributions, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return models.Distributions{}, err
	}
	return analytics.Distribute(filtered), nil
}

func (d *Dashboard) SupplierFinance(ctx context.Context, f analytics.FilterSpec) ([]models.SupplierFinance, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.SupplierFinances(filtered), nil
}

func (d *Dashboard) ProductVolumes(ctx context.Context, f analytics.FilterSpec) ([]models.ProductVolume, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.ProductVolumes(filtered), nil
}

func (d *Dashboard) CostBreakdown(ctx context.Context, f analytics.FilterSpec) ([]models.CostBreakdown, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.CostBreakdowns(filtered), nil
}

func (d *Dashboard) Quality(ctx context.Context, f analytics.FilterSpec) ([]models.QualityMetric, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.QualityMetrics(filtered), nil
}

func (d *Dashboard) Performance(ctx context.Context, f analytics.FilterSpec) ([]models.PerformanceScore, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.PerformanceScores(filtered), nil
}

func (d *Dashboard) ClusterProfiles(ctx context.Context, f analytics.FilterSpec) ([]models.ClusterProfile, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.ClusterProfiles(filtered), nil
}

func (d *Dashboard) Regression(ctx context.Context, f analytics.FilterSpec) (models.RegressionResult, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return models.RegressionResult{}, err
	}
	return d.regression(filtered), nil
}

func (d *Dashboard) SupplierTable(ctx context.Context, f analytics.FilterSpec) ([]models.SupplierRow, error) {
	filtered, _, err := d.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.SupplierTable(filtered), nil
}

// Forecast is filter-independent: the extract is precomputed upstream.
func (d *Dashboard) Forecast(ctx context.Context) (models.ForecastView, error) {
	snap, err := d.store.Snapshot(ctx)
	if err != nil {
		return models.ForecastView{}, err
	}
	return analytics.ForecastWindowView(snap.Forecast), nil
}

// Options derives the sidebar bounds and choices from the unfiltered set.
func (d *Dashboard) Options(ctx context.Context) (models.FilterOptions, error) {
	snap, err := d.store.Snapshot(ctx)
	if err != nil {
		return models.FilterOptions{}, err
	}
	return analytics.Options(snap.Orders), nil
}

// Stats exposes cache state for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	return d.store.Stats()
}
