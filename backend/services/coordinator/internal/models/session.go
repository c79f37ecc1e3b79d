package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session status values. Paused is a declared state with no transition
// producing it; callers must not rely on ever observing it.
const (
	SessionActive    = "active"
	SessionPaused    = "paused"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session is one user's billable occupancy of one station. EndTime stays
// zero until the session reaches a terminal status.
type Session struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	StationID int64           `json:"station_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time,omitempty"`
	GameName  string          `json:"game_name,omitempty"`
	Status    string          `json:"status"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// Terminal reports whether the session has ended.
func (s Session) Terminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionCancelled
}

// DurationMinutes returns elapsed whole minutes between start and end, or
// between start and now for a running session.
func (s Session) DurationMinutes(now time.Time) int {
	end := s.EndTime
	if end.IsZero() {
		end = now
	}
	minutes := int(end.Sub(s.StartTime).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
