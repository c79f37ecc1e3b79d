package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/ledger"
	"gamecafe/backend/services/coordinator/internal/session"
)

// BillingHandler exposes charge recording and revenue analytics.
type BillingHandler struct {
	ledger      *ledger.RevenueLedger
	coordinator *session.Coordinator
	logger      *zap.Logger
}

// NewBillingHandler builds the handler set.
func NewBillingHandler(revenue *ledger.RevenueLedger, coordinator *session.Coordinator, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{ledger: revenue, coordinator: coordinator, logger: logger}
}

// Process handles POST /api/billing/process: records a paid amount against
// a session and returns a transaction id.
func (h *BillingHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req BillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID <= 0 {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	var stationID int64
	var gameName string
	if s, ok := h.coordinator.Get(req.SessionID); ok {
		stationID = s.StationID
		gameName = s.GameName
	}

	h.ledger.Record(req.SessionID, stationID, gameName, req.Amount)
	transactionID := uuid.NewString()
	h.logger.Info("billing processed",
		zap.Int64("session_id", req.SessionID),
		zap.String("amount", req.Amount.String()),
		zap.String("transaction_id", transactionID),
		zap.String("payment_method", req.PaymentMethod),
	)

	writeJSON(w, http.StatusOK, BillingResponse{
		Success:       true,
		Amount:        req.Amount,
		TransactionID: transactionID,
		Message:       "Billing processed",
	})
}

// Analytics handles GET /api/billing/analytics and /api/billing/revenue.
// Optional startDate/endDate query params bound the revenue window.
func (h *BillingHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	writeJSON(w, http.StatusOK, RevenueInfo{
		TotalRevenue: h.ledger.TotalRevenue(from, to),
		DateRange:    dateRange(from, to),
		TopGames:     h.ledger.TopGames(10),
	})
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func dateRange(from, to *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", format(from), format(to))
}
