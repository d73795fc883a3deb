package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/lighthouse-ops/riskwatch/internal/config"
	"github.com/lighthouse-ops/riskwatch/internal/lighthouse"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/sirupsen/logrus"
)

func score(v float64) *float64 { return &v }

func sampleCustomers() []models.CustomerSummary {
	return []models.CustomerSummary{
		{CustomerID: 42, Name: "Asha Verma", RiskScore: score(85)},
		{CustomerID: 7, Name: "Rohan 42 Industries", RiskScore: score(40)},
		{CustomerID: 142, Name: "Meera Iyer", RiskScore: score(12)},
		{CustomerID: 9, Name: "Dev Patel", RiskScore: nil},
	}
}

func TestFilterByQuery(t *testing.T) {
	got := Filter(sampleCustomers(), "42", "All")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches for %q, got %d", "42", len(got))
	}
	// Snapshot order preserved: 42, 7 (name contains "42"), 142.
	wantIDs := []int64{42, 7, 142}
	for i, want := range wantIDs {
		if got[i].CustomerID != want {
			t.Errorf("result %d: expected id %d, got %d", i, want, got[i].CustomerID)
		}
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	got := Filter(sampleCustomers(), "ASHA", "All")
	if len(got) != 1 || got[0].CustomerID != 42 {
		t.Fatalf("expected Asha Verma for query ASHA, got %+v", got)
	}
}

func TestFilterByTier(t *testing.T) {
	got := Filter(sampleCustomers(), "", "High")
	if len(got) != 1 || got[0].CustomerID != 42 {
		t.Fatalf("expected only the high-tier customer, got %+v", got)
	}

	// nil score classifies as Low.
	low := Filter(sampleCustomers(), "", "Low")
	if len(low) != 2 {
		t.Fatalf("expected 2 low-tier customers, got %d", len(low))
	}
}

func TestFilterPredicatesAnded(t *testing.T) {
	got := Filter(sampleCustomers(), "42", "Medium")
	if len(got) != 1 || got[0].CustomerID != 7 {
		t.Fatalf("expected only customer 7 for query=42 tier=Medium, got %+v", got)
	}
}

func TestFilterIdempotent(t *testing.T) {
	once := Filter(sampleCustomers(), "a", "All")
	twice := Filter(once, "a", "All")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent: %+v vs %+v", once, twice)
	}
}

func TestComputeStats(t *testing.T) {
	items := []models.CustomerSummary{
		{CustomerID: 1, RiskScore: score(90)},
		{CustomerID: 2, RiskScore: score(75)},
		{CustomerID: 3, RiskScore: score(71)},
		{CustomerID: 4, RiskScore: score(50)},
		{CustomerID: 5, RiskScore: score(10)},
	}
	s := ComputeStats(items)
	if s.TotalCustomers != 5 || s.HighRisk != 3 || s.MediumRisk != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	// round(3 * 0.8) = 2, 2 * 15000 = 30000
	if s.Interventions != 2 || s.LossPrevented != 30000 {
		t.Errorf("unexpected mocked figures: %+v", s)
	}
}

func newDirectory(t *testing.T, backend *httptest.Server) *Directory {
	t.Helper()
	log := logrus.New()
	cfg := &config.Config{APIURL: backend.URL}
	client := lighthouse.NewClient(cfg, log)
	return New(client, 100, log)
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	payload := `[{"customer_id":1,"name":"A","risk_score":85}]`
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("limit") != "100" {
			t.Errorf("expected limit=100, got %s", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(payload))
	}))
	defer backend.Close()

	d := newDirectory(t, backend)
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(d.Snapshot()) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(d.Snapshot()))
	}

	payload = `[{"customer_id":1,"name":"A","risk_score":90},{"customer_id":2,"name":"B","risk_score":20}]`
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	snap := d.Snapshot()
	if len(snap) != 2 || *snap[0].RiskScore != 90 {
		t.Fatalf("snapshot not replaced wholesale: %+v", snap)
	}
}

func TestRefreshErrorKeepsPrevious(t *testing.T) {
	fail := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"customer_id":1,"name":"A","risk_score":85}]`))
	}))
	defer backend.Close()

	d := newDirectory(t, backend)
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	fail = true
	err := d.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected error on failed refresh")
	}
	var fetchErr *lighthouse.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if len(d.Snapshot()) != 1 {
		t.Errorf("failed refresh must keep the previous snapshot")
	}
}
