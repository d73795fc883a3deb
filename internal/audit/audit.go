// Package audit records accepted alerts to Postgres so the intake
// history outlives the bounded in-memory queue. Optional: without a
// DB_CONN the gateway runs with no audit trail.
package audit

import (
	"database/sql"
	"fmt"

	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Repository provides database operations for the alert log
type Repository struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB, log *logrus.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// RecordAlert inserts one accepted alert into the alert log
func (r *Repository) RecordAlert(ev models.AlertEvent) error {
	query := `
		INSERT INTO riskwatch.alert_log (customer_id, name, new_score, event_timestamp, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)`
	if _, err := r.db.Exec(query, ev.CustomerID, ev.Name, ev.NewScore, ev.Timestamp); err != nil {
		return fmt.Errorf("failed to record alert: %w", err)
	}
	return nil
}

// AlertAccepted implements the stream observer. Failures are logged
// and swallowed; the audit trail never interrupts alert intake.
func (r *Repository) AlertAccepted(ev models.AlertEvent) {
	if err := r.RecordAlert(ev); err != nil {
		r.log.Errorf("Audit write failed for customer %d: %v", ev.CustomerID, err)
	}
}
