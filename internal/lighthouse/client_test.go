package lighthouse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lighthouse-ops/riskwatch/internal/config"
	"github.com/sirupsen/logrus"
)

func newClient(t *testing.T, backend *httptest.Server) *Client {
	t.Helper()
	return NewClient(&config.Config{APIURL: backend.URL}, logrus.New())
}

func TestCustomersPassesLimit(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("expected limit=50, got %q", got)
		}
		w.Write([]byte(`[]`))
	}))
	defer backend.Close()

	if _, err := newClient(t, backend).Customers(context.Background(), 50); err != nil {
		t.Fatalf("customers: %v", err)
	}
}

func TestCustomerNotFound(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer backend.Close()

	_, err := newClient(t, backend).Customer(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchErrorCarriesStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	_, err := newClient(t, backend).Customers(context.Background(), 10)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", fetchErr.Status)
	}
}

func TestFetchErrorOnConnectionRefused(t *testing.T) {
	client := NewClient(&config.Config{APIURL: "http://127.0.0.1:1"}, logrus.New())
	_, err := client.Customers(context.Background(), 10)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError for refused connection, got %v", err)
	}
}
