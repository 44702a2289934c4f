package analytics

import (
	"scp-dashboard/internal/models"
)

const inspectionPass = "Pass"

// Summary computes the scalar KPI cards for a non-empty filtered set.
// Deltas compare against the unfiltered base set, so an identity filter
// yields all-zero deltas.
func Summary(filtered, base []models.Order) models.KPISummary {
	s := models.KPISummary{
		AvgShippingTime:   meanField(filtered, FieldShippingTime),
		MinShippingTime:   minField(filtered, FieldShippingTime),
		MaxShippingTime:   maxField(filtered, FieldShippingTime),
		ShippingTimeDelta: meanField(filtered, FieldShippingTime) - meanField(base, FieldShippingTime),

		AvgCost:   meanField(filtered, FieldCost),
		TotalCost: sumField(filtered, FieldCost),
		CostDelta: meanField(filtered, FieldCost) - meanField(base, FieldCost),

		TotalRevenue: sumField(filtered, FieldRevenue),
		AvgRevenue:   meanField(filtered, FieldRevenue),

		TotalProfit: sumField(filtered, FieldProfit),

		TotalOrders:   len(filtered),
		AvgDefectRate: meanField(filtered, FieldDefectRate),

		AvgLeadTime:   meanField(filtered, FieldLeadTime),
		LeadTimeDelta: meanField(filtered, FieldLeadTime) - meanField(base, FieldLeadTime),
	}

	if baseRevenue := sumField(base, FieldRevenue); baseRevenue > 0 {
		s.RevenueShareDelta = (s.TotalRevenue/baseRevenue - 1) * 100
	}
	if s.TotalRevenue > 0 {
		s.ProfitMargin = s.TotalProfit / s.TotalRevenue * 100
	}

	s.ActiveSuppliers, s.BestSupplier = supplierHighlights(filtered)

	// On-time proxy: orders at or below the filtered set's own median
	// shipping time. The threshold is the filtered median, not an SLA.
	median := medianField(filtered, FieldShippingTime)
	for _, o := range filtered {
		if o.ShippingTime <= median {
			s.OnTimeOrders++
		}
		if o.InspectionResult == inspectionPass {
			s.PassedOrders++
		}
	}
	s.OnTimeRate = float64(s.OnTimeOrders) / float64(len(filtered)) * 100
	s.PassRate = float64(s.PassedOrders) / float64(len(filtered)) * 100

	return s
}

// supplierHighlights returns the distinct supplier count and the supplier
// with the highest total profit, "N/A" when the set is empty.
func supplierHighlights(orders []models.Order) (int, string) {
	profits := GroupBy(orders, func(o models.Order) string { return o.SupplierName },
		AggSpec{Field: FieldProfit, Reduce: ReduceSum, Name: "profit"})
	if len(profits) == 0 {
		return 0, "N/A"
	}
	best := profits[0]
	for _, row := range profits[1:] {
		if row.Values["profit"] > best.Values["profit"] {
			best = row
		}
	}
	return len(profits), best.Key
}
