package analytics

import (
	"fmt"
	"sort"
	"testing"

	"scp-dashboard/internal/models"
)

func TestWeeklyTrendsChronologicalNoDuplicates(t *testing.T) {
	// Orders deliberately out of date order, spanning three ISO weeks.
	orders := []models.Order{
		{OrderDate: day("2024-01-20"), Revenue: 100},
		{OrderDate: day("2024-01-02"), Revenue: 200},
		{OrderDate: day("2024-01-10"), Revenue: 300},
		{OrderDate: day("2024-01-03"), Revenue: 400},
	}
	trends := WeeklyTrends(orders)

	if len(trends) != 3 {
		t.Fatalf("got %d weeks, want 3", len(trends))
	}
	if !sort.SliceIsSorted(trends, func(i, j int) bool { return trends[i].Week < trends[j].Week }) {
		t.Error("weeks must be chronological")
	}
	seen := map[string]bool{}
	for _, tr := range trends {
		if seen[tr.Week] {
			t.Errorf("duplicate week key %q", tr.Week)
		}
		seen[tr.Week] = true
	}
	// Jan 2 and 3 of 2024 share ISO week 1.
	if trends[0].Week != "2024-W01" || trends[0].TotalRevenue != 600 {
		t.Errorf("first week = %q revenue %v, want 2024-W01 / 600", trends[0].Week, trends[0].TotalRevenue)
	}
}

func TestWeeklyTrendsYearBoundary(t *testing.T) {
	// 2024-12-30 belongs to ISO week 2025-W01.
	orders := []models.Order{
		{OrderDate: day("2024-12-23"), Revenue: 1},
		{OrderDate: day("2024-12-30"), Revenue: 2},
	}
	trends := WeeklyTrends(orders)
	if len(trends) != 2 {
		t.Fatalf("got %d weeks, want 2", len(trends))
	}
	if trends[1].Week != "2025-W01" {
		t.Errorf("boundary week = %q, want 2025-W01", trends[1].Week)
	}
}

func TestInsights(t *testing.T) {
	trends := []models.WeeklyTrend{
		{Week: "2024-W01", TotalRevenue: 100, TotalProfit: 10, AvgDefectRate: 1},
		{Week: "2024-W02", TotalRevenue: 300, TotalProfit: 30, AvgDefectRate: 5},
		{Week: "2024-W03", TotalRevenue: 200, TotalProfit: 20, AvgDefectRate: 3},
	}
	got := Insights(trends)

	if got.BestWeek != "2024-W02" || got.BestWeekRevenue != 300 {
		t.Errorf("best week = %q/%v, want 2024-W02/300", got.BestWeek, got.BestWeekRevenue)
	}
	if got.WorstDefectWeek != "2024-W02" {
		t.Errorf("worst defect week = %q, want 2024-W02", got.WorstDefectWeek)
	}
	if got.AvgWeeklyProfit != 20 {
		t.Errorf("avg weekly profit = %v, want 20", got.AvgWeeklyProfit)
	}
}

func TestInsightsEmpty(t *testing.T) {
	got := Insights(nil)
	if got.BestWeek != "" || got.AvgWeeklyProfit != 0 {
		t.Errorf("empty trend should yield zero insights, got %+v", got)
	}
}

func TestDistributeCountsAndLimit(t *testing.T) {
	d := Distribute(sampleOrders())

	if len(d.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(d.Clusters))
	}
	if d.Clusters[0].Count < d.Clusters[1].Count {
		t.Error("distribution slices must be descending by count")
	}
	if len(d.TransportModes) != 3 {
		t.Errorf("got %d transport modes, want 3", len(d.TransportModes))
	}
	if d.TransportModes[0].Label != "Air" || d.TransportModes[0].Count != 2 {
		t.Errorf("top transport = %+v, want Air/2", d.TransportModes[0])
	}
	if len(d.TopLocations) != 3 {
		t.Errorf("got %d locations, want 3", len(d.TopLocations))
	}
}

func TestDistributeLocationLimit(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 7; i++ {
		orders = append(orders, models.Order{Location: fmt.Sprintf("L%d", i)})
	}
	d := Distribute(orders)
	if len(d.TopLocations) != 5 {
		t.Errorf("got %d locations, want 5 (capped)", len(d.TopLocations))
	}
}

func TestSupplierFinancesTopByRevenue(t *testing.T) {
	got := SupplierFinances(sampleOrders())
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	if got[0].SupplierName != "Bolt" {
		t.Errorf("top supplier = %q, want Bolt", got[0].SupplierName)
	}
	if got[0].Revenue != 2000 || got[0].Profit != 900 {
		t.Errorf("Bolt = %+v, want revenue 2000 profit 900", got[0])
	}
}

func TestSupplierFinancesCap(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 12; i++ {
		orders = append(orders, models.Order{
			SupplierName: fmt.Sprintf("S%02d", i),
			Revenue:      float64(i),
		})
	}
	got := SupplierFinances(orders)
	if len(got) != 8 {
		t.Errorf("got %d rows, want 8 (capped)", len(got))
	}
	if got[0].SupplierName != "S11" {
		t.Errorf("top = %q, want S11", got[0].SupplierName)
	}
}

func TestProductVolumesDescendingQuantity(t *testing.T) {
	got := ProductVolumes(sampleOrders())
	if len(got) != 3 {
		t.Fatalf("got %d products, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Quantity > got[i-1].Quantity {
			t.Errorf("products not descending by quantity at %d", i)
		}
	}
	// haircare and cosmetics tie at 40; stable sort keeps haircare first.
	if got[0].ProductType != "haircare" || got[0].Quantity != 40 {
		t.Errorf("top product = %+v, want haircare/40", got[0])
	}
}

func TestCostBreakdownsComponents(t *testing.T) {
	got := CostBreakdowns(sampleOrders())
	if got[0].SupplierName != "Crux" {
		t.Errorf("top by transport cost = %q, want Crux", got[0].SupplierName)
	}
	if got[0].ShippingCost != 120 || got[0].ManufacturingCost != 160 {
		t.Errorf("Crux components = %+v", got[0])
	}
}

func TestQualityMetricsWorstFirst(t *testing.T) {
	got := QualityMetrics(sampleOrders())
	if got[0].SupplierName != "Crux" {
		t.Errorf("worst defect supplier = %q, want Crux", got[0].SupplierName)
	}
	if got[0].PassRate != 0 {
		t.Errorf("Crux pass rate = %v, want 0", got[0].PassRate)
	}
	acme := got[len(got)-1]
	if acme.SupplierName != "Acme" || acme.PassRate != 50 {
		t.Errorf("Acme = %+v, want pass rate 50", acme)
	}
}

func TestPerformanceScoresBounded(t *testing.T) {
	scores := PerformanceScores(sampleOrders())
	if len(scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(scores))
	}
	for _, s := range scores {
		for name, v := range map[string]float64{
			"efficiency": s.Efficiency, "quality": s.Quality,
			"cost": s.Cost, "overall": s.Overall,
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s %s = %v, outside [0,100]", s.SupplierName, name, v)
			}
		}
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Overall > scores[i-1].Overall {
			t.Errorf("scores not descending by overall at %d", i)
		}
	}
}

func TestPerformanceScoresZeroMax(t *testing.T) {
	// All raw metrics zero: every inverted component is exactly 100.
	orders := []models.Order{
		{SupplierName: "A"},
		{SupplierName: "B"},
	}
	scores := PerformanceScores(orders)
	for _, s := range scores {
		if s.Efficiency != 100 || s.Quality != 100 || s.Cost != 100 || s.Overall != 100 {
			t.Errorf("%s = %+v, want all components 100", s.SupplierName, s)
		}
	}
}

func TestPerformanceScoresCap(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 9; i++ {
		orders = append(orders, models.Order{
			SupplierName: fmt.Sprintf("S%d", i),
			ShippingTime: float64(i + 1),
		})
	}
	if got := PerformanceScores(orders); len(got) != 5 {
		t.Errorf("got %d scores, want 5 (capped)", len(got))
	}
}

func TestClusterProfilesClosedPolygon(t *testing.T) {
	profiles := ClusterProfiles(sampleOrders())
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	for _, p := range profiles {
		if len(p.RadarAxes) != 6 || len(p.RadarValues) != 6 {
			t.Fatalf("%s radar has %d axes / %d values, want 6/6",
				p.ClusterLabel, len(p.RadarAxes), len(p.RadarValues))
		}
		if p.RadarAxes[0] != p.RadarAxes[5] {
			t.Errorf("%s radar axes not closed: %q vs %q", p.ClusterLabel, p.RadarAxes[0], p.RadarAxes[5])
		}
		if p.RadarValues[0] != p.RadarValues[5] {
			t.Errorf("%s radar values not closed", p.ClusterLabel)
		}
		for i, v := range p.RadarValues {
			if v < 0 || v > 100 {
				t.Errorf("%s radar value %d = %v, outside [0,100]", p.ClusterLabel, i, v)
			}
		}
	}
}

func TestSupplierTableSortedAndMargins(t *testing.T) {
	table := SupplierTable(sampleOrders())
	if len(table) != 3 {
		t.Fatalf("got %d rows, want 3", len(table))
	}
	for i := 1; i < len(table); i++ {
		if table[i].TotalRevenue > table[i-1].TotalRevenue {
			t.Errorf("table not descending by revenue at %d", i)
		}
	}

	byName := map[string]models.SupplierRow{}
	for _, row := range table {
		byName[row.SupplierName] = row
	}

	bolt := byName["Bolt"]
	if bolt.Margin == nil {
		t.Fatal("Bolt margin should be set")
	}
	if *bolt.Margin != 45.0 {
		t.Errorf("Bolt margin = %v, want 45.0", *bolt.Margin)
	}

	// Crux has zero revenue: margin is N/A, never Inf or NaN.
	crux := byName["Crux"]
	if crux.Margin != nil {
		t.Errorf("Crux margin = %v, want nil for zero revenue", *crux.Margin)
	}
	if crux.Cluster != "Budget" {
		t.Errorf("Crux cluster = %q, want Budget", crux.Cluster)
	}
}

func TestSupplierTableModalCluster(t *testing.T) {
	orders := []models.Order{
		{SupplierName: "A", ClusterLabel: "X"},
		{SupplierName: "A", ClusterLabel: "Y"},
		{SupplierName: "A", ClusterLabel: "Y"},
	}
	table := SupplierTable(orders)
	if table[0].Cluster != "Y" {
		t.Errorf("modal cluster = %q, want Y", table[0].Cluster)
	}
}

func TestForecastWindowView(t *testing.T) {
	var points []models.ForecastPoint
	for i := 0; i < 20; i++ {
		p := models.ForecastPoint{
			Date:     day("2024-01-01").AddDate(0, 0, 7*i),
			Forecast: float64(i),
		}
		if i < 18 {
			p.Actual = float64(i + 1)
		}
		points = append(points, p)
	}
	view := ForecastWindowView(points)

	if len(view.Points) != 16 {
		t.Fatalf("got %d points, want trailing 16", len(view.Points))
	}
	if view.Points[0].Forecast != 4 {
		t.Errorf("window starts at forecast %v, want 4", view.Points[0].Forecast)
	}
	// Points 4..17 carry actuals; 18 and 19 are forecast-only.
	if len(view.Actual) != 14 {
		t.Errorf("got %d actual points, want 14", len(view.Actual))
	}
	for _, p := range view.Actual {
		if p.Actual <= 0 {
			t.Errorf("actual series includes non-realised point %v", p.Date)
		}
	}
}

func TestForecastWindowViewShortSeries(t *testing.T) {
	points := []models.ForecastPoint{{Forecast: 1}, {Forecast: 2}}
	view := ForecastWindowView(points)
	if len(view.Points) != 2 {
		t.Errorf("short series should pass through, got %d points", len(view.Points))
	}
}

func TestOptions(t *testing.T) {
	opts := Options(sampleOrders())

	if opts.MinDate != "2024-01-02" || opts.MaxDate != "2024-01-20" {
		t.Errorf("date bounds = %s..%s, want 2024-01-02..2024-01-20", opts.MinDate, opts.MaxDate)
	}
	if !sort.StringsAreSorted(opts.Suppliers) {
		t.Error("suppliers must be sorted")
	}
	if len(opts.Suppliers) != 3 || len(opts.Clusters) != 2 || len(opts.TransportModes) != 3 {
		t.Errorf("option counts = %d/%d/%d, want 3/2/3",
			len(opts.Suppliers), len(opts.Clusters), len(opts.TransportModes))
	}
}

func TestOptionsEmpty(t *testing.T) {
	opts := Options(nil)
	if opts.MinDate != "" || len(opts.Suppliers) != 0 {
		t.Errorf("empty set should yield zero options, got %+v", opts)
	}
}
