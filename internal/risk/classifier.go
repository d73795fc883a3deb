// Package risk holds the single tier-classification rule. Every place
// that shows a tier (directory cards, detail header, filters) must go
// through Classify so the same score always yields the same tier.
package risk

// Tier is the discrete risk classification of a customer
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// TierAll is the identity value for tier filters, not a real tier
const TierAll = "All"

// Assessment is a tier plus its presentation metadata
type Assessment struct {
	Tier       Tier   `json:"tier"`
	Label      string `json:"label"`
	ColorClass string `json:"color_class"`
}

// Classify maps a possibly-missing score to an Assessment. A nil score
// is treated as 0. Input is not clamped; any numeric value resolves to
// exactly one tier.
func Classify(score *float64) Assessment {
	if score == nil {
		return ClassifyScore(0)
	}
	return ClassifyScore(*score)
}

// ClassifyScore maps a score to an Assessment: >70 High, >30 Medium,
// otherwise Low.
func ClassifyScore(score float64) Assessment {
	switch {
	case score > 70:
		return Assessment{Tier: TierHigh, Label: "HIGH RISK", ColorClass: "red"}
	case score > 30:
		return Assessment{Tier: TierMedium, Label: "MEDIUM RISK", ColorClass: "yellow"}
	default:
		return Assessment{Tier: TierLow, Label: "LOW RISK", ColorClass: "green"}
	}
}
