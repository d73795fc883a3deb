// Package directory holds the customer directory snapshot and the
// pure filtering over it.
package directory

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/lighthouse-ops/riskwatch/internal/lighthouse"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/lighthouse-ops/riskwatch/internal/risk"
	"github.com/sirupsen/logrus"
)

// Directory caches the latest fetched customer snapshot. The snapshot
// is replaced wholesale on each refresh; stream events never touch it.
type Directory struct {
	client *lighthouse.Client
	limit  int
	log    *logrus.Logger

	mu       sync.RWMutex
	snapshot []models.CustomerSummary
}

// New initializes a directory backed by the given client
func New(client *lighthouse.Client, limit int, log *logrus.Logger) *Directory {
	return &Directory{client: client, limit: limit, log: log}
}

// Refresh fetches a new snapshot and swaps it in. On failure the
// previous snapshot is kept and the error is surfaced to the caller
// so the view renders an explicit error state.
func (d *Directory) Refresh(ctx context.Context) error {
	customers, err := d.client.Customers(ctx, d.limit)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.snapshot = customers
	d.mu.Unlock()

	d.log.Infof("Directory snapshot refreshed: %d customers", len(customers))
	return nil
}

// Snapshot returns the current snapshot in fetch order
func (d *Directory) Snapshot() []models.CustomerSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Filter applies the search query and tier filter to a snapshot. The
// query matches case-insensitively against the name substring or the
// decimal id; tier "All" is the identity; both predicates are ANDed.
// The result preserves snapshot order and never triggers a refetch.
func Filter(items []models.CustomerSummary, query string, tier string) []models.CustomerSummary {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.CustomerSummary
	for _, c := range items {
		if query != "" {
			matchesName := strings.Contains(strings.ToLower(c.Name), query)
			matchesID := strings.Contains(strconv.FormatInt(c.CustomerID, 10), query)
			if !matchesName && !matchesID {
				continue
			}
		}
		if tier != risk.TierAll && tier != "" {
			if string(risk.Classify(c.RiskScore).Tier) != tier {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Stats are the dashboard headline figures. Interventions and
// LossPrevented are synthetic placeholders derived from the high-risk
// count, not real intervention history.
type Stats struct {
	TotalCustomers int     `json:"total_customers"`
	HighRisk       int     `json:"high_risk"`
	MediumRisk     int     `json:"medium_risk"`
	Interventions  int     `json:"interventions"`
	LossPrevented  float64 `json:"loss_prevented"`
}

// ComputeStats derives the headline figures from a snapshot
func ComputeStats(items []models.CustomerSummary) Stats {
	s := Stats{TotalCustomers: len(items)}
	for _, c := range items {
		switch risk.Classify(c.RiskScore).Tier {
		case risk.TierHigh:
			s.HighRisk++
		case risk.TierMedium:
			s.MediumRisk++
		}
	}
	// Synthetic estimates for the dashboard cards, not real history.
	s.Interventions = int(math.Round(float64(s.HighRisk) * 0.8))
	s.LossPrevented = float64(s.Interventions) * 15000
	return s
}
