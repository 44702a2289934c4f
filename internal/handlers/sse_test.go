package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scp-dashboard/internal/models"
)

func TestRenderSupplierTableMargins(t *testing.T) {
	margin := 45.0
	rows := []models.SupplierRow{
		{SupplierName: "Bolt", Orders: 1, TotalRevenue: 2000, Cluster: "Budget", Margin: &margin},
		{SupplierName: "Crux", Orders: 1, TotalRevenue: 0, Cluster: "Budget", Margin: nil},
	}

	html, err := renderSupplierTable(rows)
	if err != nil {
		t.Fatalf("renderSupplierTable() error: %v", err)
	}

	if !strings.Contains(html, `id="supplier-table-content"`) {
		t.Error("fragment must target the table container id")
	}
	if !strings.Contains(html, "45.0") {
		t.Error("set margin should render as a percentage")
	}
	if !strings.Contains(html, "N/A") {
		t.Error("nil margin should render as N/A")
	}
	if !strings.Contains(html, "Bolt") || !strings.Contains(html, "Crux") {
		t.Error("fragment should contain every supplier row")
	}
}

func TestHandleSupplierTableStreamsFragment(t *testing.T) {
	h := NewSSEHandlers(newTestDashboard(t), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/supplier-table", nil)
	w := httptest.NewRecorder()
	h.HandleSupplierTable(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "datastar-patch-elements") {
		t.Errorf("response is not a patch-elements event:\n%s", body)
	}
	if !strings.Contains(body, "supplier-table-content") {
		t.Error("event should carry the table fragment")
	}
	if !strings.Contains(body, "Acme") {
		t.Error("fragment should contain supplier rows")
	}
}

func TestHandleSupplierTableEmptySelection(t *testing.T) {
	h := NewSSEHandlers(newTestDashboard(t), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/supplier-table?supplier=Nobody", nil)
	w := httptest.NewRecorder()
	h.HandleSupplierTable(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "empty-selection") {
		t.Errorf("empty selection should patch the advisory fragment:\n%s", body)
	}
}

func TestHandleRefreshAllStreamsSignals(t *testing.T) {
	h := NewSSEHandlers(newTestDashboard(t), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all?cluster=Budget", nil)
	w := httptest.NewRecorder()
	h.HandleRefreshAll(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "datastar-patch-elements") {
		t.Error("refresh should patch the table fragment")
	}
	if !strings.Contains(body, "datastar-patch-signals") {
		t.Error("refresh should patch the chart signals")
	}
	if !strings.Contains(body, "weeklyTrends") {
		t.Error("signals should include the chart series")
	}
}
