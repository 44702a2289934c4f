package analytics

import (
	"math"
	"sort"

	"scp-dashboard/internal/models"
)

// Numeric fact-table fields addressable by the aggregation specs. Names
// match the extract's column headers.
const (
	FieldShippingTime      = "shipping_times"
	FieldCost              = "costs"
	FieldShippingCost      = "shipping_costs"
	FieldManufacturingCost = "manufacturing_costs"
	FieldRevenue           = "revenue_generated"
	FieldProfit            = "profit"
	FieldOrderQuantity     = "order_quantity"
	FieldDefectRate        = "defect_rates"
	FieldLeadTime          = "lead_times"
)

func fieldValue(o models.Order, field string) float64 {
	switch field {
	case FieldShippingTime:
		return o.ShippingTime
	case FieldCost:
		return o.Cost
	case FieldShippingCost:
		return o.ShippingCost
	case FieldManufacturingCost:
		return o.ManufacturingCost
	case FieldRevenue:
		return o.Revenue
	case FieldProfit:
		return o.Profit
	case FieldOrderQuantity:
		return o.OrderQuantity
	case FieldDefectRate:
		return o.DefectRate
	case FieldLeadTime:
		return o.LeadTime
	}
	return 0
}

type Reducer string

const (
	ReduceSum  Reducer = "sum"
	ReduceMean Reducer = "mean"
	ReduceMin  Reducer = "min"
	ReduceMax  Reducer = "max"
)

// AggSpec names one reduction over a numeric field. A grouped aggregation
// is a list of specs executed by a single pass of GroupBy.
type AggSpec struct {
	Field  string
	Reduce Reducer
	Name   string
}

// GroupRow is one group's output: its key, row count, and one value per
// spec name.
type GroupRow struct {
	Key    string
	Count  int
	Values map[string]float64
}

// GroupBy buckets orders by key and applies every spec to each bucket.
// Groups come back in first-encounter order, which downstream sorts treat
// as the stable tie-break.
func GroupBy(orders []models.Order, key func(models.Order) string, specs ...AggSpec) []GroupRow {
	order, buckets := bucketBy(orders, key)

	rows := make([]GroupRow, 0, len(order))
	for _, k := range order {
		group := buckets[k]
		row := GroupRow{Key: k, Count: len(group), Values: make(map[string]float64, len(specs))}
		for _, spec := range specs {
			row.Values[spec.Name] = reduce(group, spec)
		}
		rows = append(rows, row)
	}
	return rows
}

// bucketBy splits orders into per-key slices, keys in first-encounter
// order.
func bucketBy(orders []models.Order, key func(models.Order) string) ([]string, map[string][]models.Order) {
	buckets := make(map[string][]models.Order)
	order := make([]string, 0)
	for _, o := range orders {
		k := key(o)
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], o)
	}
	return order, buckets
}

func reduce(group []models.Order, spec AggSpec) float64 {
	if len(group) == 0 {
		return 0
	}
	switch spec.Reduce {
	case ReduceMean:
		return sumField(group, spec.Field) / float64(len(group))
	case ReduceMin:
		m := math.Inf(1)
		for _, o := range group {
			m = math.Min(m, fieldValue(o, spec.Field))
		}
		return m
	case ReduceMax:
		m := math.Inf(-1)
		for _, o := range group {
			m = math.Max(m, fieldValue(o, spec.Field))
		}
		return m
	default:
		return sumField(group, spec.Field)
	}
}

func sumField(orders []models.Order, field string) float64 {
	var total float64
	for _, o := range orders {
		total += fieldValue(o, field)
	}
	return total
}

func meanField(orders []models.Order, field string) float64 {
	if len(orders) == 0 {
		return 0
	}
	return sumField(orders, field) / float64(len(orders))
}

func maxField(orders []models.Order, field string) float64 {
	if len(orders) == 0 {
		return 0
	}
	m := math.Inf(-1)
	for _, o := range orders {
		m = math.Max(m, fieldValue(o, field))
	}
	return m
}

func minField(orders []models.Order, field string) float64 {
	if len(orders) == 0 {
		return 0
	}
	m := math.Inf(1)
	for _, o := range orders {
		m = math.Min(m, fieldValue(o, field))
	}
	return m
}

// medianField is the interpolated median: the mean of the two middle
// values when the count is even.
func medianField(orders []models.Order, field string) float64 {
	if len(orders) == 0 {
		return 0
	}
	vals := make([]float64, len(orders))
	for i, o := range orders {
		vals[i] = fieldValue(o, field)
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// TopN sorts rows descending by the named value and keeps the first n.
// The sort is stable so ties keep their group order. n <= 0 keeps all.
func TopN(rows []GroupRow, name string, n int) []GroupRow {
	out := make([]GroupRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Values[name] > out[j].Values[name]
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round0(v float64) float64 { return math.Round(v) }
