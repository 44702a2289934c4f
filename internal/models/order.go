package models

import "time"

// Order is one row of the dashboard_ready fact table. Revenue, cost and
// profit are stored independently; no cross-field relation is enforced.
type Order struct {
	OrderDate         time.Time
	SupplierName      string
	ClusterLabel      string
	TransportMode     string
	ProductType       string
	Location          string
	ShippingTime      float64
	Cost              float64
	ShippingCost      float64
	ManufacturingCost float64
	Revenue           float64
	Profit            float64
	OrderQuantity     float64
	DefectRate        float64
	LeadTime          float64
	InspectionResult  string
}

// ClusterAssignment maps a supplier to its cluster label (many-to-one).
type ClusterAssignment struct {
	SupplierName string
	ClusterLabel string
}

// ClusterFeature holds per-cluster descriptors produced upstream. They are
// served as display context only, never re-derived here.
type ClusterFeature struct {
	ClusterLabel  string  `json:"cluster_label"`
	SupplierCount int     `json:"supplier_count"`
	AvgLeadTime   float64 `json:"avg_lead_time"`
	AvgDefectRate float64 `json:"avg_defect_rate"`
	AvgCost       float64 `json:"avg_cost"`
}

// ForecastPoint is one row of the ARIMA forecast extract, ordered by date.
// Actual is 0 when the period has not been realised yet.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Actual   float64   `json:"actual"`
	Forecast float64   `json:"forecast"`
	Lower95  float64   `json:"lower_95"`
	Upper95  float64   `json:"upper_95"`
}
