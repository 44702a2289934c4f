package analytics

import (
	"time"

	"scp-dashboard/internal/models"
)

// All is the categorical wildcard used by the sidebar selects.
const All = "All"

// FilterSpec describes one sidebar state. Zero times mean an unbounded
// date range; "All" (or empty) categorical values mean no constraint.
// Constraints compose with logical AND.
type FilterSpec struct {
	From          time.Time
	To            time.Time
	Supplier      string
	Cluster       string
	TransportMode string
}

func wildcard(v string) bool {
	return v == "" || v == All
}

// IsIdentity reports whether the spec constrains nothing, in which case
// Apply returns the base set unchanged.
func (f FilterSpec) IsIdentity() bool {
	return f.From.IsZero() && f.To.IsZero() &&
		wildcard(f.Supplier) && wildcard(f.Cluster) && wildcard(f.TransportMode)
}

func (f FilterSpec) matches(o models.Order) bool {
	if !f.From.IsZero() && o.OrderDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.OrderDate.After(f.To) {
		return false
	}
	if !wildcard(f.Supplier) && o.SupplierName != f.Supplier {
		return false
	}
	if !wildcard(f.Cluster) && o.ClusterLabel != f.Cluster {
		return false
	}
	if !wildcard(f.TransportMode) && o.TransportMode != f.TransportMode {
		return false
	}
	return true
}

// Apply returns the orders satisfying every constraint in a single pass.
// Both date bounds are inclusive. Record order and duplicates are
// preserved; the base slice is never mutated.
func Apply(orders []models.Order, f FilterSpec) []models.Order {
	if f.IsIdentity() {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if f.matches(o) {
			out = append(out, o)
		}
	}
	return out
}
