package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"gamecafe/backend/services/coordinator/internal/models"
)

// StationHeartbeatRequest is sent by the agent for both registration and
// periodic heartbeats. StationID is ignored on registration.
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
	StationID  int64      `json:"station_id,omitempty"`
	Message    string     `json:"message"`
	ServerTime *time.Time `json:"server_time,omitempty"`
}

// StationInfo is the list/get projection of a station.
type StationInfo struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	IPAddress     string    `json:"ip_address"`
	Status        string    `json:"status"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

func stationInfo(s models.Station) StationInfo {
	return StationInfo{
		ID:            s.ID,
		Name:          s.Name,
		IPAddress:     s.IPAddress,
		Status:        s.Status,
		LastHeartbeat: s.LastHeartbeat,
	}
}

// SessionSyncRequest is the agent's wholesale session snapshot.
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

// SessionInfo is the list projection of a session.
type SessionInfo struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	StationID       int64           `json:"station_id"`
	GameName        string          `json:"game_name,omitempty"`
	Status          string          `json:"status"`
	DurationMinutes int             `json:"duration_minutes"`
	Cost            decimal.Decimal `json:"cost"`
}

func sessionInfo(s models.Session, now time.Time) SessionInfo {
	return SessionInfo{
		ID:              s.ID,
		UserID:          s.UserID,
		StationID:       s.StationID,
		GameName:        s.GameName,
		Status:          s.Status,
		DurationMinutes: s.DurationMinutes(now),
		Cost:            s.TotalCost,
	}
}

// StartSessionRequest opens a session on a station.
type StartSessionRequest struct {
	UserID    int64  `json:"user_id"`
	StationID int64  `json:"station_id"`
	GameName  string `json:"game_name,omitempty"`
}

// BillingRequest records a processed payment.
type BillingRequest struct {
	SessionID     int64           `json:"session_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// BillingResponse acknowledges a processed payment.
type BillingResponse struct {
	Success       bool            `json:"success"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Message       string          `json:"message"`
}

// RevenueInfo is the analytics response.
type RevenueInfo struct {
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	DateRange    string            `json:"date_range"`
	TopGames     []models.GameStat `json:"top_games"`
}

// LoginRequest authenticates a user at a kiosk.
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	StationID int64  `json:"station_id"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Success        bool            `json:"success"`
	UserID         int64           `json:"user_id,omitempty"`
	Username       string          `json:"username,omitempty"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	SessionToken   string          `json:"session_token,omitempty"`
	Message        string          `json:"message"`
}
