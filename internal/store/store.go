package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scp-dashboard/internal/errors"
	"scp-dashboard/internal/models"
)

// The four upstream extracts. All must exist before any parsing starts.
const (
	FactFile            = "dashboard_ready.csv"
	ClusterFile         = "supplier_clusters.csv"
	ForecastFile        = "time_series_forecast_arima.csv"
	ClusterFeaturesFile = "supplier_cluster_features.csv"
)

const dateLayout = "2006-01-02"

// Snapshot is one immutable load of all four extracts. Filtering derives
// subsets from Orders; nothing mutates a snapshot after load.
type Snapshot struct {
	Orders          []models.Order
	Clusters        []models.ClusterAssignment
	Forecast        []models.ForecastPoint
	ClusterFeatures []models.ClusterFeature
	LoadedAt        time.Time
}

// Store loads the extracts and caches the snapshot for a freshness
// window. Now is injectable so tests can pin the clock.
type Store struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger

	Now func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
}

func New(dir string, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		ttl:    ttl,
		logger: logger,
		Now:    time.Now,
	}
}

// Snapshot returns the cached snapshot while it is younger than the TTL,
// otherwise reloads from disk.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil && s.Now().Sub(snap.LoadedAt) < s.ttl {
		return snap, nil
	}
	return s.Reload(ctx)
}

// Reload reads all four extracts unconditionally and replaces the cached
// snapshot. On any missing file it fails before reading anything, naming
// every absent extract.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	if missing := s.missingFiles(); len(missing) > 0 {
		return nil, errors.MissingInput(missing)
	}

	start := s.Now()
	snap := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := s.loadOrders(ctx)
		snap.Orders = orders
		return err
	})
	g.Go(func() error {
		clusters, err := s.loadClusters(ctx)
		snap.Clusters = clusters
		return err
	})
	g.Go(func() error {
		forecast, err := s.loadForecast(ctx)
		snap.Forecast = forecast
		return err
	})
	g.Go(func() error {
		features, err := s.loadClusterFeatures(ctx)
		snap.ClusterFeatures = features
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.LoadedAt = s.Now()

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("extracts loaded",
		"orders", len(snap.Orders),
		"clusters", len(snap.Clusters),
		"forecast_points", len(snap.Forecast),
		"duration", time.Since(start),
	)
	return snap, nil
}

// Stats reports cache state for the admin endpoint.
func (s *Store) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return map[string]any{"loaded": false}
	}
	return map[string]any{
		"loaded":          true,
		"loaded_at":       s.snapshot.LoadedAt,
		"age":             s.Now().Sub(s.snapshot.LoadedAt).String(),
		"ttl":             s.ttl.String(),
		"orders":          len(s.snapshot.Orders),
		"clusters":        len(s.snapshot.Clusters),
		"forecast_points": len(s.snapshot.Forecast),
	}
}

func (s *Store) missingFiles() []string {
	var missing []string
	for _, name := range []string{FactFile, ClusterFile, ForecastFile, ClusterFeaturesFile} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// table reads one CSV into a header index plus data rows, validating that
// every required column exists. Invalid columns fail here, never deeper
// in aggregation.
type table struct {
	file string
	cols map[string]int
	rows [][]string
}

func (s *Store) readTable(ctx context.Context, file string, required []string) (*table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(filepath.Join(s.dir, file))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = false
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", file)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", file, name)
		}
	}

	return &table{file: file, cols: cols, rows: records[1:]}, nil
}

func (t *table) str(row []string, col string) string {
	return row[t.cols[col]]
}

func (t *table) num(row []string, col string) (float64, error) {
	v, err := strconv.ParseFloat(t.str(row, col), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: column %q: %w", t.file, col, err)
	}
	return v, nil
}

func (t *table) date(row []string, col string) (time.Time, error) {
	v, err := time.Parse(dateLayout, t.str(row, col))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: column %q: %w", t.file, col, err)
	}
	return v, nil
}

var factColumns = []string{
	"order_date", "supplier_name", "cluster_label", "transportation_modes",
	"product_type", "location", "shipping_times", "costs", "shipping_costs",
	"manufacturing_costs", "revenue_generated", "profit", "order_quantity",
	"defect_rates", "lead_times", "inspection_results",
}

func (s *Store) loadOrders(ctx context.Context) ([]models.Order, error) {
	t, err := s.readTable(ctx, FactFile, factColumns)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(t.rows))
	for _, row := range t.rows {
		o := models.Order{
			SupplierName:     t.str(row, "supplier_name"),
			ClusterLabel:     t.str(row, "cluster_label"),
			TransportMode:    t.str(row, "transportation_modes"),
			ProductType:      t.str(row, "product_type"),
			Location:         t.str(row, "location"),
			InspectionResult: t.str(row, "inspection_results"),
		}
		if o.OrderDate, err = t.date(row, "order_date"); err != nil {
			return nil, err
		}
		numeric := []struct {
			col string
			dst *float64
		}{
			{"shipping_times", &o.ShippingTime},
			{"costs", &o.Cost},
			{"shipping_costs", &o.ShippingCost},
			{"manufacturing_costs", &o.ManufacturingCost},
			{"revenue_generated", &o.Revenue},
			{"profit", &o.Profit},
			{"order_quantity", &o.OrderQuantity},
			{"defect_rates", &o.DefectRate},
			{"lead_times", &o.LeadTime},
		}
		for _, n := range numeric {
			if *n.dst, err = t.num(row, n.col); err != nil {
				return nil, err
			}
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Store) loadClusters(ctx context.Context) ([]models.ClusterAssignment, error) {
	t, err := s.readTable(ctx, ClusterFile, []string{"supplier_name", "cluster_label"})
	if err != nil {
		return nil, err
	}

	clusters := make([]models.ClusterAssignment, 0, len(t.rows))
	for _, row := range t.rows {
		clusters = append(clusters, models.ClusterAssignment{
			SupplierName: t.str(row, "supplier_name"),
			ClusterLabel: t.str(row, "cluster_label"),
		})
	}
	return clusters, nil
}

func (s *Store) loadForecast(ctx context.Context) ([]models.ForecastPoint, error) {
	t, err := s.readTable(ctx, ForecastFile, []string{"date", "actual", "forecast", "lower_95", "upper_95"})
	if err != nil {
		return nil, err
	}

	points := make([]models.ForecastPoint, 0, len(t.rows))
	for _, row := range t.rows {
		var p models.ForecastPoint
		if p.Date, err = t.date(row, "date"); err != nil {
			return nil, err
		}
		for _, n := range []struct {
			col string
			dst *float64
		}{
			{"actual", &p.Actual},
			{"forecast", &p.Forecast},
			{"lower_95", &p.Lower95},
			{"upper_95", &p.Upper95},
		} {
			if *n.dst, err = t.num(row, n.col); err != nil {
				return nil, err
			}
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Store) loadClusterFeatures(ctx context.Context) ([]models.ClusterFeature, error) {
	t, err := s.readTable(ctx, ClusterFeaturesFile,
		[]string{"cluster_label", "supplier_count", "avg_lead_time", "avg_defect_rate", "avg_cost"})
	if err != nil {
		return nil, err
	}

	features := make([]models.ClusterFeature, 0, len(t.rows))
	for _, row := range t.rows {
		f := models.ClusterFeature{ClusterLabel: t.str(row, "cluster_label")}
		count, err := t.num(row, "supplier_count")
		if err != nil {
			return nil, err
		}
		f.SupplierCount = int(count)
		for _, n := range []struct {
			col string
			dst *float64
		}{
			{"avg_lead_time", &f.AvgLeadTime},
			{"avg_defect_rate", &f.AvgDefectRate},
			{"avg_cost", &f.AvgCost},
		} {
			if *n.dst, err = t.num(row, n.col); err != nil {
				return nil, err
			}
		}
		features = append(features, f)
	}
	return features, nil
}
