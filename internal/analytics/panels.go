package analytics

import (
	"fmt"
	"sort"

	"scp-dashboard/internal/models"
)

// Panel sizes from the dashboard layout.
const (
	topSuppliers   = 8
	topLocations   = 5
	topPerformers  = 5
	forecastWindow = 16
)

func supplierKey(o models.Order) string { return o.SupplierName }
func clusterKey(o models.Order) string  { return o.ClusterLabel }

func weekKey(o models.Order) string {
	year, week := o.OrderDate.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeeklyTrends groups the filtered orders by ISO week of the order date.
// Rows come back strictly chronological with no duplicate week keys.
func WeeklyTrends(orders []models.Order) []models.WeeklyTrend {
	rows := GroupBy(orders, weekKey,
		AggSpec{Field: FieldShippingTime, Reduce: ReduceMean, Name: "ship"},
		AggSpec{Field: FieldCost, Reduce: ReduceMean, Name: "cost"},
		AggSpec{Field: FieldRevenue, Reduce: ReduceSum, Name: "revenue"},
		AggSpec{Field: FieldProfit, Reduce: ReduceSum, Name: "profit"},
		AggSpec{Field: FieldDefectRate, Reduce: ReduceMean, Name: "defect"},
	)
	// "2024-W05" keys sort chronologically as strings.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	trends := make([]models.WeeklyTrend, len(rows))
	for i, r := range rows {
		trends[i] = models.WeeklyTrend{
			Week:            r.Key,
			AvgShippingTime: r.Values["ship"],
			AvgCost:         r.Values["cost"],
			TotalRevenue:    r.Values["revenue"],
			TotalProfit:     r.Values["profit"],
			AvgDefectRate:   r.Values["defect"],
		}
	}
	return trends
}

// Insights picks the best-revenue and worst-defect weeks out of the trend.
func Insights(trends []models.WeeklyTrend) models.TrendInsights {
	var out models.TrendInsights
	if len(trends) == 0 {
		return out
	}
	best, worst := trends[0], trends[0]
	var totalProfit float64
	for _, t := range trends {
		if t.TotalRevenue > best.TotalRevenue {
			best = t
		}
		if t.AvgDefectRate > worst.AvgDefectRate {
			worst = t
		}
		totalProfit += t.TotalProfit
	}
	out.BestWeek = best.Week
	out.BestWeekRevenue = best.TotalRevenue
	out.WorstDefectWeek = worst.Week
	out.AvgWeeklyProfit = totalProfit / float64(len(trends))
	return out
}

// countBy produces value counts sorted descending, ties in first-encounter
// order. limit <= 0 keeps all slices.
func countBy(orders []models.Order, key func(models.Order) string, limit int) []models.DistributionSlice {
	keys, buckets := bucketBy(orders, key)
	slices := make([]models.DistributionSlice, 0, len(keys))
	for _, k := range keys {
		slices = append(slices, models.DistributionSlice{Label: k, Count: len(buckets[k])})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Count > slices[j].Count })
	if limit > 0 && len(slices) > limit {
		slices = slices[:limit]
	}
	return slices
}

// Distribute builds the four donut-chart breakdowns.
func Distribute(orders []models.Order) models.Distributions {
	return models.Distributions{
		Clusters:       countBy(orders, clusterKey, 0),
		TransportModes: countBy(orders, func(o models.Order) string { return o.TransportMode }, 0),
		Inspections:    countBy(orders, func(o models.Order) string { return o.InspectionResult }, 0),
		TopLocations:   countBy(orders, func(o models.Order) string { return o.Location }, topLocations),
	}
}

// SupplierFinances returns the top 8 suppliers by total revenue with their
// profit and transport cost totals.
func SupplierFinances(orders []models.Order) []models.SupplierFinance {
	rows := GroupBy(orders, supplierKey,
		AggSpec{Field: FieldRevenue, Reduce: ReduceSum, Name: "revenue"},
		AggSpec{Field: FieldProfit, Reduce: ReduceSum, Name: "profit"},
		AggSpec{Field: FieldCost, Reduce: ReduceSum, Name: "cost"},
	)
	rows = TopN(rows, "revenue", topSuppliers)

	out := make([]models.SupplierFinance, len(rows))
	for i, r := range rows {
		out[i] = models.SupplierFinance{
			SupplierName: r.Key,
			Revenue:      r.Values["revenue"],
			Profit:       r.Values["profit"],
			Cost:         r.Values["cost"],
		}
	}
	return out
}

// ProductVolumes sums quantity and revenue per product type, descending by
// quantity.
func ProductVolumes(orders []models.Order) []models.ProductVolume {
	rows := GroupBy(orders, func(o models.Order) string { return o.ProductType },
		AggSpec{Field: FieldOrderQuantity, Reduce: ReduceSum, Name: "quantity"},
		AggSpec{Field: FieldRevenue, Reduce: ReduceSum, Name: "revenue"},
	)
	rows = TopN(rows, "quantity", 0)

	out := make([]models.ProductVolume, len(rows))
	for i, r := range rows {
		out[i] = models.ProductVolume{
			ProductType: r.Key,
			Quantity:    r.Values["quantity"],
			Revenue:     r.Values["revenue"],
		}
	}
	return out
}

// CostBreakdowns returns the top 8 suppliers by transport cost with the
// stacked cost components.
func CostBreakdowns(orders []models.Order) []models.CostBreakdown {
	rows := GroupBy(orders, supplierKey,
		AggSpec{Field: FieldCost, Reduce: ReduceSum, Name: "transport"},
		AggSpec{Field: FieldShippingCost, Reduce: ReduceSum, Name: "shipping"},
		AggSpec{Field: FieldManufacturingCost, Reduce: ReduceSum, Name: "manufacturing"},
	)
	rows = TopN(rows, "transport", topSuppliers)

	out := make([]models.CostBreakdown, len(rows))
	for i, r := range rows {
		out[i] = models.CostBreakdown{
			SupplierName:      r.Key,
			TransportCost:     r.Values["transport"],
			ShippingCost:      r.Values["shipping"],
			ManufacturingCost: r.Values["manufacturing"],
		}
	}
	return out
}

// QualityMetrics returns the top 8 suppliers by mean defect rate together
// with their inspection pass rates.
func QualityMetrics(orders []models.Order) []models.QualityMetric {
	keys, buckets := bucketBy(orders, supplierKey)
	metrics := make([]models.QualityMetric, 0, len(keys))
	for _, k := range keys {
		group := buckets[k]
		metrics = append(metrics, models.QualityMetric{
			SupplierName:  k,
			AvgDefectRate: meanField(group, FieldDefectRate),
			PassRate:      passRate(group),
		})
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].AvgDefectRate > metrics[j].AvgDefectRate
	})
	if len(metrics) > topSuppliers {
		metrics = metrics[:topSuppliers]
	}
	return metrics
}

func passRate(orders []models.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	passed := 0
	for _, o := range orders {
		if o.InspectionResult == inspectionPass {
			passed++
		}
	}
	return float64(passed) / float64(len(orders)) * 100
}

// invertedScore maps a supplier mean onto [0,100] where lower raw values
// score higher. A zero maximum contributes exactly 100 (no penalty).
func invertedScore(mean, max float64) float64 {
	if max == 0 {
		return 100
	}
	return 100 - mean/max*100
}

// directScore is the straight percentage-of-max used for the radar axes
// where higher raw values are better.
func directScore(mean, max float64) float64 {
	if max == 0 {
		return 0
	}
	return mean / max * 100
}

// PerformanceScores computes the composite supplier leaderboard (top 5 by
// overall score). Each component normalises the supplier mean against the
// filtered maximum.
func PerformanceScores(orders []models.Order) []models.PerformanceScore {
	maxShip := maxField(orders, FieldShippingTime)
	maxDefect := maxField(orders, FieldDefectRate)
	maxCost := maxField(orders, FieldCost)

	keys, buckets := bucketBy(orders, supplierKey)
	scores := make([]models.PerformanceScore, 0, len(keys))
	for _, k := range keys {
		group := buckets[k]
		s := models.PerformanceScore{
			SupplierName: k,
			Efficiency:   invertedScore(meanField(group, FieldShippingTime), maxShip),
			Quality:      invertedScore(meanField(group, FieldDefectRate), maxDefect),
			Cost:         invertedScore(meanField(group, FieldCost), maxCost),
		}
		s.Overall = (s.Efficiency + s.Quality + s.Cost) / 3
		scores = append(scores, s)
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Overall > scores[j].Overall })
	if len(scores) > topPerformers {
		scores = scores[:topPerformers]
	}
	return scores
}

var radarAxes = []string{"Lead Time", "Defect Rate", "Cost", "Revenue", "Profit"}

// ClusterProfiles summarises each cluster and derives its five-axis radar
// profile. Lead time, defect rate and cost are inverted (lower is better);
// revenue and profit are direct percentages of the filtered maximum. The
// polygon is closed by repeating the first axis value.
func ClusterProfiles(orders []models.Order) []models.ClusterProfile {
	maxLead := maxField(orders, FieldLeadTime)
	maxDefect := maxField(orders, FieldDefectRate)
	maxCost := maxField(orders, FieldCost)
	maxRevenue := maxField(orders, FieldRevenue)
	maxProfit := maxField(orders, FieldProfit)

	rows := GroupBy(orders, clusterKey,
		AggSpec{Field: FieldLeadTime, Reduce: ReduceMean, Name: "lead"},
		AggSpec{Field: FieldDefectRate, Reduce: ReduceMean, Name: "defect"},
		AggSpec{Field: FieldCost, Reduce: ReduceMean, Name: "cost"},
		AggSpec{Field: FieldRevenue, Reduce: ReduceMean, Name: "revenue"},
		AggSpec{Field: FieldProfit, Reduce: ReduceMean, Name: "profit"},
	)

	profiles := make([]models.ClusterProfile, len(rows))
	for i, r := range rows {
		values := []float64{
			invertedScore(r.Values["lead"], maxLead),
			invertedScore(r.Values["defect"], maxDefect),
			invertedScore(r.Values["cost"], maxCost),
			directScore(r.Values["revenue"], maxRevenue),
			directScore(r.Values["profit"], maxProfit),
		}
		values = append(values, values[0])

		axes := make([]string, 0, len(radarAxes)+1)
		axes = append(axes, radarAxes...)
		axes = append(axes, radarAxes[0])

		profiles[i] = models.ClusterProfile{
			ClusterLabel: r.Key,
			Orders:       r.Count,
			AvgLeadTime:  r.Values["lead"],
			AvgDefect:    r.Values["defect"],
			AvgCost:      r.Values["cost"],
			AvgRevenue:   r.Values["revenue"],
			AvgProfit:    r.Values["profit"],
			RadarAxes:    axes,
			RadarValues:  values,
		}
	}
	return profiles
}

// SupplierTable builds the ranked detail table, descending by total
// revenue. Margin is nil (N/A) when a supplier's revenue is exactly 0.
func SupplierTable(orders []models.Order) []models.SupplierRow {
	keys, buckets := bucketBy(orders, supplierKey)
	table := make([]models.SupplierRow, 0, len(keys))
	for _, k := range keys {
		group := buckets[k]
		row := models.SupplierRow{
			SupplierName:    k,
			Orders:          len(group),
			AvgShippingTime: round1(meanField(group, FieldShippingTime)),
			AvgCost:         round2(meanField(group, FieldCost)),
			TotalCost:       round0(sumField(group, FieldCost)),
			AvgDefectRate:   round2(meanField(group, FieldDefectRate)),
			AvgLeadTime:     round1(meanField(group, FieldLeadTime)),
			TotalRevenue:    round0(sumField(group, FieldRevenue)),
			TotalProfit:     round0(sumField(group, FieldProfit)),
			PassRate:        round1(passRate(group)),
			Cluster:         modalCluster(group),
		}
		if revenue := sumField(group, FieldRevenue); revenue > 0 {
			m := round1(sumField(group, FieldProfit) / revenue * 100)
			row.Margin = &m
		}
		table = append(table, row)
	}
	sort.SliceStable(table, func(i, j int) bool { return table[i].TotalRevenue > table[j].TotalRevenue })
	return table
}

// modalCluster returns the most frequent cluster label within a supplier's
// orders, first-encounter order breaking ties.
func modalCluster(orders []models.Order) string {
	if len(orders) == 0 {
		return "N/A"
	}
	keys, buckets := bucketBy(orders, clusterKey)
	best := keys[0]
	for _, k := range keys[1:] {
		if len(buckets[k]) > len(buckets[best]) {
			best = k
		}
	}
	return best
}

// ForecastWindowView trims the forecast to its trailing window and splits
// out the realised points (actual > 0) for the solid series.
func ForecastWindowView(points []models.ForecastPoint) models.ForecastView {
	recent := points
	if len(recent) > forecastWindow {
		recent = recent[len(recent)-forecastWindow:]
	}
	view := models.ForecastView{Points: recent}
	for _, p := range recent {
		if p.Actual > 0 {
			view.Actual = append(view.Actual, p)
		}
	}
	return view
}

// Options derives the sidebar filter bounds and choices from the base set.
func Options(orders []models.Order) models.FilterOptions {
	var opts models.FilterOptions
	if len(orders) == 0 {
		return opts
	}
	min, max := orders[0].OrderDate, orders[0].OrderDate
	for _, o := range orders {
		if o.OrderDate.Before(min) {
			min = o.OrderDate
		}
		if o.OrderDate.After(max) {
			max = o.OrderDate
		}
	}
	opts.MinDate = min.Format("2006-01-02")
	opts.MaxDate = max.Format("2006-01-02")
	opts.Suppliers = distinct(orders, supplierKey)
	opts.Clusters = distinct(orders, clusterKey)
	opts.TransportModes = distinct(orders, func(o models.Order) string { return o.TransportMode })
	return opts
}

func distinct(orders []models.Order, key func(models.Order) string) []string {
	keys, _ := bucketBy(orders, key)
	sort.Strings(keys)
	return keys
}
