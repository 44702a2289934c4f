package export

import (
	"testing"

	"scp-dashboard/internal/models"
	"scp-dashboard/internal/services"
)

func testData() *services.DashboardData {
	margin := 45.0
	return &services.DashboardData{
		KPIs: models.KPISummary{
			TotalOrders:  4,
			TotalRevenue: 3500,
			BestSupplier: "Bolt",
		},
		SupplierTable: []models.SupplierRow{
			{SupplierName: "Bolt", Orders: 1, TotalRevenue: 2000, Cluster: "Budget", Margin: &margin},
			{SupplierName: "Crux", Orders: 1, TotalRevenue: 0, Cluster: "Budget"},
		},
		WeeklyTrends: []models.WeeklyTrend{
			{Week: "2024-W01", TotalRevenue: 1500},
			{Week: "2024-W02", TotalRevenue: 2000},
		},
	}
}

func TestWorkbookSheets(t *testing.T) {
	f, err := Workbook(testData())
	if err != nil {
		t.Fatalf("Workbook() error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{kpiSheet: false, supplierSheet: false, trendSheet: false}
	for _, s := range sheets {
		if s == "Sheet1" {
			t.Error("default sheet should be removed")
		}
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("sheet %q missing, got %v", name, sheets)
		}
	}
}

func TestWorkbookSupplierRows(t *testing.T) {
	f, err := Workbook(testData())
	if err != nil {
		t.Fatalf("Workbook() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(supplierSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 suppliers", len(rows))
	}
	if rows[1][0] != "Bolt" {
		t.Errorf("first supplier = %q, want Bolt", rows[1][0])
	}
	// Zero-revenue margin exports the N/A literal, not a number.
	last := rows[2]
	if last[len(last)-1] != "N/A" {
		t.Errorf("Crux margin = %q, want N/A", last[len(last)-1])
	}
}

func TestWorkbookKPIValues(t *testing.T) {
	f, err := Workbook(testData())
	if err != nil {
		t.Fatalf("Workbook() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(kpiSheet)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "Best Supplier" && row[1] == "Bolt" {
			found = true
		}
	}
	if !found {
		t.Error("KPI sheet should carry the best supplier row")
	}
}
