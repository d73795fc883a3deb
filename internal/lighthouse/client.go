// Package lighthouse is the client for the external Lighthouse risk
// backend. The backend owns scoring and persistence; this gateway only
// consumes its REST endpoints and websocket stream.
package lighthouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lighthouse-ops/riskwatch/internal/config"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when the backend reports an unknown customer id
var ErrNotFound = errors.New("customer not found")

// FetchError is a transport or HTTP failure on a backend load. Callers
// surface it as an explicit error state, never as a silently-stale view.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client handles integration with the Lighthouse backend
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new backend client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.APIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Customers fetches the directory snapshot via GET /customers?limit=N
func (c *Client) Customers(ctx context.Context, limit int) ([]models.CustomerSummary, error) {
	url := fmt.Sprintf("%s/customers?limit=%d", c.baseURL, limit)

	var customers []models.CustomerSummary
	if err := c.getJSON(ctx, url, &customers); err != nil {
		return nil, err
	}

	c.log.Debugf("Fetched %d customers from %s", len(customers), url)
	return customers, nil
}

// Customer fetches one full record via GET /customer/{id}. An unknown
// id yields ErrNotFound.
func (c *Client) Customer(ctx context.Context, customerID int64) (*models.CustomerRecord, error) {
	url := fmt.Sprintf("%s/customer/%d", c.baseURL, customerID)

	var record models.CustomerRecord
	if err := c.getJSON(ctx, url, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
