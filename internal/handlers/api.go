package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"scp-dashboard/internal/analytics"
	"scp-dashboard/internal/errors"
	"scp-dashboard/internal/observability"
	"scp-dashboard/internal/services"
)

const panelCacheControl = "public, max-age=300"

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// filterSpec reads the sidebar state from query parameters. Absent or
// "All" values leave the spec unconstrained.
func filterSpec(r *http.Request) (analytics.FilterSpec, error) {
	q := r.URL.Query()
	f := analytics.FilterSpec{
		Supplier:      q.Get("supplier"),
		Cluster:       q.Get("cluster"),
		TransportMode: q.Get("transport_mode"),
	}

	var err error
	if v := q.Get("from"); v != "" {
		if f.From, err = time.Parse("2006-01-02", v); err != nil {
			return f, errors.BadRequestWrap(err, "invalid from date, expected YYYY-MM-DD")
		}
	}
	if v := q.Get("to"); v != "" {
		if f.To, err = time.Parse("2006-01-02", v); err != nil {
			return f, errors.BadRequestWrap(err, "invalid to date, expected YYYY-MM-DD")
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, errors.BadRequest("to date precedes from date")
	}
	return f, nil
}

func (h *APIHandlers) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

// panel wraps the filter-parse / fetch / respond shape shared by every
// filtered endpoint.
func (h *APIHandlers) panel(w http.ResponseWriter, r *http.Request, fetch func(analytics.FilterSpec) (any, error)) {
	f, err := filterSpec(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	data, err := fetch(f)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": panelCacheControl})
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.Render(r.Context(), f)
	})
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.KPIs(r.Context(), f)
	})
}

func (h *APIHandlers) HandleWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		trends, insights, err := h.dashboard.WeeklyTrends(r.Context(), f)
		if err != nil {
			return nil, err
		}
		return map[string]any{"trends": trends, "insights": insights}, nil
	})
}

func (h *APIHandlers) HandleDistributions(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.Distributions(r.Context(), f)
	})
}

func (h *APIHandlers) HandleSupplierFinance(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.SupplierFinance(r.Context(), f)
	})
}

func (h *APIHandlers) HandleProductVolume(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.ProductVolumes(r.Context(), f)
	})
}

func (h *APIHandlers) HandleCostBreakdown(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.CostBreakdown(r.Context(), f)
	})
}

func (h *APIHandlers) HandleQuality(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.Quality(r.Context(), f)
	})
}

func (h *APIHandlers) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.Performance(r.Context(), f)
	})
}

func (h *APIHandlers) HandleClusterProfiles(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.ClusterProfiles(r.Context(), f)
	})
}

func (h *APIHandlers) HandleRegression(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.Regression(r.Context(), f)
	})
}

func (h *APIHandlers) HandleSupplierTable(w http.ResponseWriter, r *http.Request) {
	h.panel(w, r, func(f analytics.FilterSpec) (any, error) {
		return h.dashboard.SupplierTable(r.Context(), f)
	})
}

func (h *APIHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.Forecast(r.Context())
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": panelCacheControl})
}

func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.dashboard.Options(r.Context())
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	errors.WriteSuccessWithHeaders(w, opts, map[string]string{"Cache-Control": panelCacheControl})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
