package models

// Output shapes produced by the aggregation layer for the presentation
// adapter. All values are already rounded/derived; handlers serialise them
// as-is.

type KPISummary struct {
	AvgShippingTime   float64 `json:"avg_shipping_time"`
	MinShippingTime   float64 `json:"min_shipping_time"`
	MaxShippingTime   float64 `json:"max_shipping_time"`
	ShippingTimeDelta float64 `json:"shipping_time_delta"`

	AvgCost   float64 `json:"avg_cost"`
	TotalCost float64 `json:"total_cost"`
	CostDelta float64 `json:"cost_delta"`

	TotalRevenue      float64 `json:"total_revenue"`
	AvgRevenue        float64 `json:"avg_revenue"`
	RevenueShareDelta float64 `json:"revenue_share_delta"`

	TotalProfit  float64 `json:"total_profit"`
	ProfitMargin float64 `json:"profit_margin"`

	TotalOrders   int     `json:"total_orders"`
	AvgDefectRate float64 `json:"avg_defect_rate"`

	ActiveSuppliers int    `json:"active_suppliers"`
	BestSupplier    string `json:"best_supplier"`

	AvgLeadTime   float64 `json:"avg_lead_time"`
	LeadTimeDelta float64 `json:"lead_time_delta"`

	OnTimeOrders int     `json:"on_time_orders"`
	OnTimeRate   float64 `json:"on_time_rate"`

	PassedOrders int     `json:"passed_orders"`
	PassRate     float64 `json:"pass_rate"`
}

type WeeklyTrend struct {
	Week            string  `json:"week"`
	AvgShippingTime float64 `json:"avg_shipping_time"`
	AvgCost         float64 `json:"avg_cost"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	AvgDefectRate   float64 `json:"avg_defect_rate"`
}

// TrendInsights summarises the weekly trend for the side panel.
type TrendInsights struct {
	BestWeek        string  `json:"best_week"`
	BestWeekRevenue float64 `json:"best_week_revenue"`
	WorstDefectWeek string  `json:"worst_defect_week"`
	AvgWeeklyProfit float64 `json:"avg_weekly_profit"`
}

// DistributionSlice is one wedge of a donut chart.
type DistributionSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Distributions struct {
	Clusters       []DistributionSlice `json:"clusters"`
	TransportModes []DistributionSlice `json:"transport_modes"`
	Inspections    []DistributionSlice `json:"inspections"`
	TopLocations   []DistributionSlice `json:"top_locations"`
}

type SupplierFinance struct {
	SupplierName string  `json:"supplier_name"`
	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
	Cost         float64 `json:"cost"`
}

type ProductVolume struct {
	ProductType string  `json:"product_type"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type CostBreakdown struct {
	SupplierName      string  `json:"supplier_name"`
	TransportCost     float64 `json:"transport_cost"`
	ShippingCost      float64 `json:"shipping_cost"`
	ManufacturingCost float64 `json:"manufacturing_cost"`
}

type QualityMetric struct {
	SupplierName  string  `json:"supplier_name"`
	AvgDefectRate float64 `json:"avg_defect_rate"`
	PassRate      float64 `json:"pass_rate"`
}

// PerformanceScore holds the inverted-percentage composite per supplier.
// Each component is in [0,100]; a zero filtered maximum contributes 100.
type PerformanceScore struct {
	SupplierName string  `json:"supplier_name"`
	Efficiency   float64 `json:"efficiency"`
	Quality      float64 `json:"quality"`
	Cost         float64 `json:"cost"`
	Overall      float64 `json:"overall"`
}

// ClusterProfile is one cluster's summary row plus its five-axis radar
// values. Radar is a closed polygon: the first axis value is repeated last.
type ClusterProfile struct {
	ClusterLabel string    `json:"cluster_label"`
	Orders       int       `json:"orders"`
	AvgLeadTime  float64   `json:"avg_lead_time"`
	AvgDefect    float64   `json:"avg_defect"`
	AvgCost      float64   `json:"avg_cost"`
	AvgRevenue   float64   `json:"avg_revenue"`
	AvgProfit    float64   `json:"avg_profit"`
	RadarAxes    []string  `json:"radar_axes"`
	RadarValues  []float64 `json:"radar_values"`
}

type RegressionPredictor struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
	Correlation float64 `json:"correlation"`
}

type RegressionInsight struct {
	Intercept  float64               `json:"intercept"`
	RSquared   float64               `json:"r_squared"`
	Predictors []RegressionPredictor `json:"predictors"`
	KeyDriver  string                `json:"key_driver"`
}

// RegressionResult wraps the insight so a degenerate fit is reported as
// unavailable instead of crashing the panel.
type RegressionResult struct {
	Available bool               `json:"available"`
	Reason    string             `json:"reason,omitempty"`
	Insight   *RegressionInsight `json:"insight,omitempty"`
}

// SupplierRow is one line of the detail table, sorted descending by
// revenue. Margin is nil when revenue is exactly 0 (reported as N/A).
type SupplierRow struct {
	SupplierName    string   `json:"supplier_name"`
	Orders          int      `json:"orders"`
	AvgShippingTime float64  `json:"avg_shipping_time"`
	AvgCost         float64  `json:"avg_cost"`
	TotalCost       float64  `json:"total_cost"`
	AvgDefectRate   float64  `json:"avg_defect_rate"`
	AvgLeadTime     float64  `json:"avg_lead_time"`
	TotalRevenue    float64  `json:"total_revenue"`
	TotalProfit     float64  `json:"total_profit"`
	PassRate        float64  `json:"pass_rate"`
	Cluster         string   `json:"cluster"`
	Margin          *float64 `json:"margin"`
}

// FilterOptions feeds the sidebar controls: bounds from the data plus the
// distinct categorical values, each prefixed by "All" client-side.
type FilterOptions struct {
	MinDate        string   `json:"min_date"`
	MaxDate        string   `json:"max_date"`
	Suppliers      []string `json:"suppliers"`
	Clusters       []string `json:"clusters"`
	TransportModes []string `json:"transport_modes"`
}

// ForecastView is the trailing window of the forecast extract with the
// realised points split out for the actual series.
type ForecastView struct {
	Points []ForecastPoint `json:"points"`
	Actual []ForecastPoint `json:"actual"`
}
