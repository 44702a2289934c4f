package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard is the single page shell. Panels load their data over the
// SSE endpoints; the filter bar re-triggers /sse/refresh-all on change.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardPage)
		return err
	})
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Supply Chain Performance Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body { background: linear-gradient(135deg, #1e3c72 0%, #2a5298 100%); color: #fff; font-family: system-ui, sans-serif; margin: 0; padding: 1rem 2rem; }
h1 { text-align: center; font-weight: 700; margin-bottom: .25rem; }
.subtitle { text-align: center; color: #b8d4f1; margin-bottom: 2rem; }
.filters { display: flex; gap: 1rem; justify-content: center; margin-bottom: 1.5rem; }
.filters select, .filters input { border-radius: 6px; border: none; padding: .4rem .6rem; }
.panel { background: rgba(42, 82, 152, 0.4); border-radius: 12px; padding: 1rem; margin-bottom: 1rem; }
.modern-table { width: 100%; border-collapse: collapse; font-size: 13px; }
.modern-table th, .modern-table td { padding: 6px 8px; text-align: left; border-bottom: 1px solid rgba(255,255,255,0.1); }
.category-badge { background: rgba(100,181,246,0.3); border-radius: 6px; padding: 2px 6px; }
.empty-selection { color: #ffb74d; padding: 1rem; }
</style>
</head>
<body data-signals="{kpis: {}, weeklyTrends: [], insights: {}, distributions: {}, supplierFinance: [], productVolumes: [], costBreakdown: [], quality: [], performance: [], clusterProfiles: [], regression: {}, forecast: {}}">
<h1>Supply Chain Performance Dashboard</h1>
<p class="subtitle">Operational efficiency, quality and profitability at a glance</p>

<div class="filters" id="filter-bar"
     data-signals="{from: '', to: '', supplier: 'All', cluster: 'All', transportMode: 'All'}"
     data-on-change="@get('/sse/refresh-all?from='+$from+'&to='+$to+'&supplier='+$supplier+'&cluster='+$cluster+'&transport_mode='+$transportMode)">
  <input type="date" data-bind-from>
  <input type="date" data-bind-to>
  <select data-bind-supplier id="supplier-select"><option>All</option></select>
  <select data-bind-cluster id="cluster-select"><option>All</option></select>
  <select data-bind-transport-mode id="transport-select"><option>All</option></select>
  <a href="/api/export" download>Export Report</a>
</div>

<div class="panel" id="kpi-cards" data-on-load="@get('/sse/refresh-all')">Loading KPIs…</div>
<div class="panel" id="trend-chart">Weekly trend</div>
<div class="panel" id="distribution-charts">Distributions</div>
<div class="panel" id="finance-chart">Revenue vs profit per supplier</div>
<div class="panel" id="performance-scores">Performance leaderboard</div>
<div class="panel" id="forecast-chart">Revenue forecast</div>
<div class="panel" id="cluster-radar">Cluster profiles</div>
<div class="panel" id="regression-insight">Profit drivers</div>
<div class="panel" id="supplier-table-content">Loading supplier table…</div>

</body>
</html>
`
