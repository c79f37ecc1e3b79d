package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Station status values.
const (
	StationOffline     = "offline"
	StationAvailable   = "available"
	StationInUse       = "in_use"
	StationMaintenance = "maintenance"
)

// Station is the liveness record for one physical workstation. The id is
// assigned by the registry and never changes; CurrentSessionID is zero
// unless the station is in use.
type Station struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	IPAddress        string          `json:"ip_address"`
	Port             int             `json:"port"`
	Status           string          `json:"status"`
	LastHeartbeat    time.Time       `json:"last_heartbeat"`
	CurrentSessionID int64           `json:"current_session_id,omitempty"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	IsActive         bool            `json:"is_active"`
}

// IsAvailable reports whether the station can take a new session.
func (s Station) IsAvailable() bool {
	return s.Status == StationAvailable
}
