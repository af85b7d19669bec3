package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// LedgerSizer reports the number of recorded sales
type LedgerSizer interface {
	Len() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	ledger LedgerSizer
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(ledger LedgerSizer, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		ledger: ledger,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	SalesRecords int       `json:"sales_records"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}
	if h.ledger != nil {
		response.SalesRecords = h.ledger.Len()
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
