package models

import (
	"bytes"
	"encoding/json"
)

// Truthy is a boolean-ish flag: the stream encodes it as a bool, but
// numbers and strings show up too, so anything non-zero/non-empty
// counts as true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Truthy(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*t = n != 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = s != "" && s != "false" && s != "0"
		return nil
	}
	*t = Truthy(!bytes.Equal(data, []byte("null")))
	return nil
}

// AlertEvent is one inbound message on the score-spike stream. Only
// events with a truthy Alert flag are surfaced to operators.
type AlertEvent struct {
	CustomerID int64   `json:"customer_id"`
	Name       string  `json:"name"`
	NewScore   float64 `json:"new_score"`
	Alert      Truthy  `json:"alert"`
	Timestamp  string  `json:"timestamp"`
}
