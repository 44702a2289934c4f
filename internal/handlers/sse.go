package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"scp-dashboard/internal/errors"
	"scp-dashboard/internal/models"
	"scp-dashboard/internal/services"
)

var supplierTableTemplate = template.Must(template.New("supplierTable").Parse(`
<div id="supplier-table-content">
<table class="modern-table">
<thead><tr><th>Supplier</th><th>Orders</th><th>Avg Ship (d)</th><th>Avg Cost ($)</th><th>Defect (%)</th><th>Lead (d)</th><th>Revenue ($)</th><th>Profit ($)</th><th>Pass Rate (%)</th><th>Cluster</th><th>Margin (%)</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.SupplierName}}</td>
<td>{{.Orders}}</td>
<td>{{printf "%.1f" .AvgShippingTime}}</td>
<td>{{printf "%.2f" .AvgCost}}</td>
<td>{{printf "%.2f" .AvgDefectRate}}</td>
<td>{{printf "%.1f" .AvgLeadTime}}</td>
<td><strong>{{printf "%.0f" .TotalRevenue}}</strong></td>
<td>{{printf "%.0f" .TotalProfit}}</td>
<td>{{printf "%.1f" .PassRate}}</td>
<td><span class="category-badge">{{.Cluster}}</span></td>
<td>{{.Margin}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

// supplierRowView flattens a SupplierRow for the fragment template; the
// nil margin becomes the literal "N/A".
type supplierRowView struct {
	models.SupplierRow
	Margin string
}

func tableViews(rows []models.SupplierRow) []supplierRowView {
	views := make([]supplierRowView, len(rows))
	for i, row := range rows {
		views[i] = supplierRowView{SupplierRow: row, Margin: "N/A"}
		if row.Margin != nil {
			views[i].Margin = fmt.Sprintf("%.1f", *row.Margin)
		}
	}
	return views
}

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func renderSupplierTable(rows []models.SupplierRow) (string, error) {
	var buf strings.Builder
	err := supplierTableTemplate.Execute(&buf, tableViews(rows))
	return buf.String(), err
}

const emptySelectionFragment = `<div id="supplier-table-content" class="empty-selection">No data available for the selected filters. Expand the date range or reset a filter to All.</div>`

// HandleSupplierTable patches the detail-table fragment for the current
// filter state. An empty selection patches the advisory instead.
func (h *SSEHandlers) HandleSupplierTable(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := filterSpec(r)
	if err != nil {
		h.logger.Warn("bad filter on sse request", "error", err)
		return
	}

	rows, err := h.dashboard.SupplierTable(r.Context(), f)
	if err != nil {
		h.patchError(sse, err)
		return
	}

	html, err := renderSupplierTable(rows)
	if err != nil {
		h.logger.Error("render supplier table", "error", err)
		return
	}
	sse.PatchElements(html)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// HandleRefreshAll re-runs the full pipeline for the current filters and
// pushes every chart signal plus the table fragment in one stream.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := filterSpec(r)
	if err != nil {
		h.logger.Warn("bad filter on sse request", "error", err)
		return
	}

	data, err := h.dashboard.Render(r.Context(), f)
	if err != nil {
		h.patchError(sse, err)
		return
	}

	html, err := renderSupplierTable(data.SupplierTable)
	if err != nil {
		h.logger.Error("render supplier table", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"kpis":            data.KPIs,
		"weeklyTrends":    data.WeeklyTrends,
		"insights":        data.Insights,
		"distributions":   data.Distributions,
		"supplierFinance": data.SupplierFinance,
		"productVolumes":  data.ProductVolumes,
		"costBreakdown":   data.CostBreakdown,
		"quality":         data.Quality,
		"performance":     data.Performance,
		"clusterProfiles": data.ClusterProfiles,
		"regression":      data.Regression,
		"forecast":        data.Forecast,
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// patchError surfaces EmptySelection as an inline advisory; anything else
// is logged and the stream left untouched.
func (h *SSEHandlers) patchError(sse *datastar.ServerSentEventGenerator, err error) {
	if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.CodeEmptySelection {
		sse.PatchElements(emptySelectionFragment)
		return
	}
	h.logger.Error("sse render pass failed", "error", err)
}
