package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lighthouse-ops/riskwatch/internal/lighthouse"
	"github.com/lighthouse-ops/riskwatch/internal/service"
)

// Handler serves the operator-facing JSON API
type Handler struct {
	svc *service.Service
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers all operator routes on the router
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	r.HandleFunc("/customers", h.Customers).Methods("GET")
	r.HandleFunc("/refresh", h.Refresh).Methods("POST")
	r.HandleFunc("/customer/{id:[0-9]+}", h.CustomerDetail).Methods("GET")
	r.HandleFunc("/alerts", h.Alerts).Methods("GET")
	r.HandleFunc("/alerts/{seq:[0-9]+}", h.DismissAlert).Methods("DELETE")
	r.HandleFunc("/health", h.Health).Methods("GET")
}

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dashboard())
}

// Customers handles GET /customers?q=&tier=
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	tier := r.URL.Query().Get("tier")
	writeJSON(w, http.StatusOK, h.svc.Customers(query, tier))
}

// Refresh handles POST /refresh, forcing a directory refetch
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "failed to refresh directory")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Dashboard())
}

// CustomerDetail handles GET /customer/{id}
func (h *Handler) CustomerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	view, err := h.svc.CustomerDetail(r.Context(), id)
	if errors.Is(err, lighthouse.ErrNotFound) {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to load customer")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Alerts handles GET /alerts
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Alerts())
}

// DismissAlert handles DELETE /alerts/{seq}. Dismissing an alert that
// was already evicted succeeds; the operation is a no-op.
func (h *Handler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.ParseUint(mux.Vars(r)["seq"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert sequence")
		return
	}
	h.svc.DismissAlert(seq)
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health, reporting stream connectivity
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"stream_connected": h.svc.Alerts().Connected,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
