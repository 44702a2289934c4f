package server

import (
	"log/slog"
	"net/http"

	"scp-dashboard/internal/handlers"
	"scp-dashboard/internal/services"
)

type Server struct {
	dashboard   *services.Dashboard
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(dashboard *services.Dashboard, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		dashboard:   dashboard,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(dashboard, logger),
		sseHandlers: handlers.NewSSEHandlers(dashboard, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard page
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/dashboard", s.apiHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /api/filters", s.apiHandlers.HandleFilterOptions)
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/weekly-trend", s.apiHandlers.HandleWeeklyTrend)
	s.mux.HandleFunc("GET /api/distributions", s.apiHandlers.HandleDistributions)
	s.mux.HandleFunc("GET /api/supplier-finance", s.apiHandlers.HandleSupplierFinance)
	s.mux.HandleFunc("GET /api/product-volume", s.apiHandlers.HandleProductVolume)
	s.mux.HandleFunc("GET /api/cost-breakdown", s.apiHandlers.HandleCostBreakdown)
	s.mux.HandleFunc("GET /api/quality", s.apiHandlers.HandleQuality)
	s.mux.HandleFunc("GET /api/performance", s.apiHandlers.HandlePerformance)
	s.mux.HandleFunc("GET /api/cluster-profiles", s.apiHandlers.HandleClusterProfiles)
	s.mux.HandleFunc("GET /api/regression", s.apiHandlers.HandleRegression)
	s.mux.HandleFunc("GET /api/supplier-table", s.apiHandlers.HandleSupplierTable)
	s.mux.HandleFunc("GET /api/forecast", s.apiHandlers.HandleForecast)
	s.mux.HandleFunc("GET /api/export", s.apiHandlers.HandleExport)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/supplier-table", s.sseHandlers.HandleSupplierTable)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
