package service

import (
	"context"

	"github.com/lighthouse-ops/riskwatch/internal/alerts"
	"github.com/lighthouse-ops/riskwatch/internal/detail"
	"github.com/lighthouse-ops/riskwatch/internal/directory"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/lighthouse-ops/riskwatch/internal/risk"
	"github.com/sirupsen/logrus"
)

// Connectivity reports whether the alert stream is live
type Connectivity interface {
	Connected() bool
}

// Service composes the directory, detail loader, and alert queue into
// the view-models the operator API serves
type Service struct {
	dir    *directory.Directory
	loader *detail.Loader
	queue  *alerts.Queue
	stream Connectivity
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(dir *directory.Directory, loader *detail.Loader, queue *alerts.Queue, stream Connectivity, log *logrus.Logger) *Service {
	return &Service{dir: dir, loader: loader, queue: queue, stream: stream, log: log}
}

// CustomerCard is one directory entry decorated with its assessment,
// so cards and the detail header always agree on the tier
type CustomerCard struct {
	models.CustomerSummary
	Assessment risk.Assessment `json:"assessment"`
}

// Dashboard returns the headline stats over the current snapshot
func (s *Service) Dashboard() directory.Stats {
	return directory.ComputeStats(s.dir.Snapshot())
}

// Customers filters the current snapshot and decorates each entry
func (s *Service) Customers(query, tier string) []CustomerCard {
	filtered := directory.Filter(s.dir.Snapshot(), query, tier)
	cards := make([]CustomerCard, 0, len(filtered))
	for _, c := range filtered {
		cards = append(cards, CustomerCard{
			CustomerSummary: c,
			Assessment:      risk.Classify(c.RiskScore),
		})
	}
	return cards
}

// Refresh refetches the directory snapshot
func (s *Service) Refresh(ctx context.Context) error {
	return s.dir.Refresh(ctx)
}

// CustomerDetail loads one customer's full derived view
func (s *Service) CustomerDetail(ctx context.Context, customerID int64) (*detail.View, error) {
	return s.loader.Load(ctx, customerID)
}

// Inbox is the alert inbox plus stream connectivity
type Inbox struct {
	Connected bool           `json:"connected"`
	Alerts    []alerts.Entry `json:"alerts"`
}

// Alerts returns the current inbox snapshot, newest first
func (s *Service) Alerts() Inbox {
	return Inbox{
		Connected: s.stream.Connected(),
		Alerts:    s.queue.Peek(),
	}
}

// DismissAlert removes an alert by sequence; unknown sequences are a no-op
func (s *Service) DismissAlert(seq uint64) {
	s.queue.Dismiss(seq)
	s.log.Debugf("Alert %d dismissed", seq)
}
