package models

import "encoding/json"

// RiskFactor is one model feature contribution, ranked by the backend
type RiskFactor struct {
	Feature string  `json:"feature"`
	Impact  float64 `json:"impact"`
}

// RiskFactors decodes defensively: the backend stores factors as JSON
// and some records carry them as an embedded JSON string instead of a
// structured array. Anything unparsable degrades to an empty list,
// never to a decode error.
type RiskFactors []RiskFactor

// UnmarshalJSON accepts a structured array, a JSON-encoded string, or
// null. Malformed input yields an empty list and no error.
func (f *RiskFactors) UnmarshalJSON(data []byte) error {
	*f = nil

	var factors []RiskFactor
	if err := json.Unmarshal(data, &factors); err == nil {
		*f = factors
		return nil
	}

	var embedded string
	if err := json.Unmarshal(data, &embedded); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(embedded), &factors); err != nil {
		return nil
	}
	*f = factors
	return nil
}

// ScoreRecord is the latest risk score of a customer. Factor ranking is
// preserved as received; the backend pre-sorts by impact.
type ScoreRecord struct {
	CustomerID  int64       `json:"customer_id"`
	Date        string      `json:"date"`
	Score       float64     `json:"score"`
	RiskFactors RiskFactors `json:"risk_factors"`
}
