package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing model values.
const (
	BillingHourly    = "hourly"
	BillingPerMinute = "per_minute"
	BillingFlatRate  = "flat_rate"
)

// BillingRate is a pricing policy. A rate is immutable once a completed
// charge references it.
type BillingRate struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	BillingType     string          `json:"billing_type"`
	Rate            decimal.Decimal `json:"rate"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	StationID       int64           `json:"station_id,omitempty"`
	GameCategory    string          `json:"game_category,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Charge is an immutable ledger entry for a recorded session cost.
type Charge struct {
	SessionID  int64           `db:"session_id" json:"session_id"`
	StationID  int64           `db:"station_id" json:"station_id"`
	GameName   string          `db:"game_name" json:"game_name,omitempty"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	RecordedAt time.Time       `db:"recorded_at" json:"recorded_at"`
}

// GameStat is a per-game revenue aggregate.
type GameStat struct {
	GameName  string          `json:"game_name"`
	PlayCount int             `json:"play_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}
