package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"scp-dashboard/internal/services"
)

const (
	kpiSheet      = "KPIs"
	supplierSheet = "Suppliers"
	trendSheet    = "Weekly Trend"
)

// Workbook renders one dashboard pass into an xlsx report with a KPI
// sheet, the ranked supplier table, and the weekly trend series.
func Workbook(data *services.DashboardData) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeKPIs(f, data); err != nil {
		return nil, err
	}
	if err := writeSuppliers(f, data); err != nil {
		return nil, err
	}
	if err := writeTrend(f, data); err != nil {
		return nil, err
	}

	// Replace the default sheet with the KPI sheet as the opener.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(kpiSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeKPIs(f *excelize.File, data *services.DashboardData) error {
	if _, err := f.NewSheet(kpiSheet); err != nil {
		return err
	}

	k := data.KPIs
	rows := [][]any{
		{"Metric", "Value"},
		{"Avg Shipping Time (d)", k.AvgShippingTime},
		{"Avg Transport Cost ($)", k.AvgCost},
		{"Total Revenue ($)", k.TotalRevenue},
		{"Total Profit ($)", k.TotalProfit},
		{"Profit Margin (%)", k.ProfitMargin},
		{"Total Orders", k.TotalOrders},
		{"Avg Defect Rate (%)", k.AvgDefectRate},
		{"Active Suppliers", k.ActiveSuppliers},
		{"Best Supplier", k.BestSupplier},
		{"Avg Lead Time (d)", k.AvgLeadTime},
		{"On-Time Rate (%)", k.OnTimeRate},
		{"Quality Pass Rate (%)", k.PassRate},
	}
	return writeRows(f, kpiSheet, rows)
}

func writeSuppliers(f *excelize.File, data *services.DashboardData) error {
	if _, err := f.NewSheet(supplierSheet); err != nil {
		return err
	}

	rows := [][]any{{
		"Supplier", "Orders", "Avg Ship (d)", "Avg Cost ($)", "Total Cost ($)",
		"Defect (%)", "Lead Time (d)", "Revenue ($)", "Profit ($)",
		"Pass Rate (%)", "Cluster", "Margin (%)",
	}}
	for _, s := range data.SupplierTable {
		margin := any("N/A")
		if s.Margin != nil {
			margin = *s.Margin
		}
		rows = append(rows, []any{
			s.SupplierName, s.Orders, s.AvgShippingTime, s.AvgCost, s.TotalCost,
			s.AvgDefectRate, s.AvgLeadTime, s.TotalRevenue, s.TotalProfit,
			s.PassRate, s.Cluster, margin,
		})
	}
	return writeRows(f, supplierSheet, rows)
}

func writeTrend(f *excelize.File, data *services.DashboardData) error {
	if _, err := f.NewSheet(trendSheet); err != nil {
		return err
	}

	rows := [][]any{{
		"Week", "Avg Shipping Time (d)", "Avg Cost ($)",
		"Total Revenue ($)", "Total Profit ($)", "Avg Defect (%)",
	}}
	for _, t := range data.WeeklyTrends {
		rows = append(rows, []any{
			t.Week, t.AvgShippingTime, t.AvgCost,
			t.TotalRevenue, t.TotalProfit, t.AvgDefectRate,
		})
	}
	return writeRows(f, trendSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
