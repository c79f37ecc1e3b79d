package clients

import (
	"time"

	"github.com/shopspring/decimal"
)

// StationHeartbeatRequest reports identity, occupancy, and liveness.
type StationHeartbeatRequest struct {
	StationID        int64  `json:"station_id"`
	StationName      string `json:"station_name"`
	IPAddress        string `json:"ip_address"`
	Port             int    `json:"port"`
	CurrentSessionID int64  `json:"current_session_id"`
	IsAvailable      bool   `json:"is_available"`
}

// StationStatusResponse acknowledges registration and heartbeats.
type StationStatusResponse struct {
	Success    bool       `json:"success"`
	StationID  int64      `json:"station_id"`
	Message    string     `json:"message"`
	ServerTime *time.Time `json:"server_time,omitempty"`
}

// SessionSyncRequest pushes the station's session snapshot wholesale.
type SessionSyncRequest struct {
	SessionID       int64           `json:"session_id"`
	UserID          int64           `json:"user_id"`
	StationID       int64           `json:"station_id"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         *time.Time      `json:"end_time,omitempty"`
	GameName        string          `json:"game_name,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// SessionSyncResponse acknowledges a sync.
type SessionSyncResponse struct {
	Success   bool   `json:"success"`
	SessionID int64  `json:"session_id"`
	Message   string `json:"message"`
}

// LoginRequest authenticates a café customer at this kiosk.
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	StationID int64  `json:"station_id"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Success        bool            `json:"success"`
	UserID         int64           `json:"user_id"`
	Username       string          `json:"username"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	SessionToken   string          `json:"session_token"`
	Message        string          `json:"message"`
}

// BillingRequest records a payment for a session.
type BillingRequest struct {
	SessionID     int64           `json:"session_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// BillingResponse acknowledges a processed payment.
type BillingResponse struct {
	Success       bool            `json:"success"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Message       string          `json:"message"`
}
