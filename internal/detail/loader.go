// Package detail loads one customer's full record and derives the
// fields the detail view needs on top of it.
package detail

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/lighthouse-ops/riskwatch/internal/lighthouse"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/lighthouse-ops/riskwatch/internal/risk"
	"github.com/sirupsen/logrus"
)

const trendPoints = 10

// TrendPoint is one point of the synthetic score-trend series
type TrendPoint struct {
	Day   string  `json:"day"`
	Score float64 `json:"score"`
}

// View is the detail view-model: the fetched record plus derived
// fields. The trend series is fabricated from the current score and is
// a placeholder, not real history.
type View struct {
	Record                models.CustomerRecord `json:"record"`
	CurrentScore          int                   `json:"current_score"`
	Assessment            risk.Assessment       `json:"assessment"`
	Trend                 []TrendPoint          `json:"trend"`
	RiskFactors           []models.RiskFactor   `json:"risk_factors"`
	InterventionSuggested bool                  `json:"intervention_suggested"`
}

// Loader fetches customer records and derives the view fields
type Loader struct {
	client *lighthouse.Client
	log    *logrus.Logger
}

// NewLoader initializes a new detail loader
func NewLoader(client *lighthouse.Client, log *logrus.Logger) *Loader {
	return &Loader{client: client, log: log}
}

// Load fetches the record for the given customer and derives the view.
// An unknown id yields lighthouse.ErrNotFound; any other failure yields
// a transport error. No partial views are returned.
func (l *Loader) Load(ctx context.Context, customerID int64) (*View, error) {
	record, err := l.client.Customer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", customerID, err)
	}

	currentScore := 0.0
	if record.RiskScore != nil {
		currentScore = record.RiskScore.Score
	}
	assessment := risk.ClassifyScore(currentScore)

	// Factor ranking stays as received; the backend pre-sorts by impact.
	var factors []models.RiskFactor
	if record.RiskScore != nil {
		factors = record.RiskScore.RiskFactors
	}

	return &View{
		Record:                *record,
		CurrentScore:          int(math.Round(currentScore)),
		Assessment:            assessment,
		Trend:                 syntheticTrend(currentScore),
		RiskFactors:           factors,
		InterventionSuggested: assessment.Tier == risk.TierHigh,
	}, nil
}

// syntheticTrend fabricates a 30-day series around the current score.
// The jitter is random and clamped into [0,100] for display only; the
// backend keeps no score history, so this must never be presented as
// real historical data.
func syntheticTrend(currentScore float64) []TrendPoint {
	trend := make([]TrendPoint, trendPoints)
	for i := range trend {
		jittered := currentScore + rand.Float64()*20 - 10
		trend[i] = TrendPoint{
			Day:   fmt.Sprintf("Day %d", i*3),
			Score: math.Max(0, math.Min(100, jittered)),
		}
	}
	return trend
}
