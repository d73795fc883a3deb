package models

// CustomerSummary is one row of the directory snapshot returned by
// GET /customers. It is a read-only snapshot: stream events never
// mutate it, the whole list is replaced on refetch.
type CustomerSummary struct {
	CustomerID int64    `json:"customer_id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Income     float64  `json:"income"`
	LoanAmount float64  `json:"loan_amount"`
	RiskScore  *float64 `json:"risk_score"`
}

// Profile is the immutable reference data of one customer
type Profile struct {
	CustomerID int64   `json:"customer_id"`
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Income     float64 `json:"income"`
	LoanAmount float64 `json:"loan_amount"`
	EMIAmount  float64 `json:"emi_amount"`
	JoinDate   string  `json:"join_date"`
}

// Transaction is a single customer transaction as returned by the backend
type Transaction struct {
	Date     string  `json:"date"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"` // "DEBIT" or "CREDIT"
}

// CustomerRecord is the full record returned by GET /customer/{id}.
// Transactions keep the server order (reverse-chronological).
type CustomerRecord struct {
	Profile      Profile       `json:"profile"`
	RiskScore    *ScoreRecord  `json:"risk_score"`
	Transactions []Transaction `json:"transactions"`
}
