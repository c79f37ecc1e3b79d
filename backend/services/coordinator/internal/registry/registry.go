package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"gamecafe/backend/services/coordinator/internal/models"
)

// overridable in tests
var timeNow = func() time.Time { return time.Now().UTC() }

// StationRegistry owns every station record. All access goes through its
// methods; reads return copies, never the stored record.
type StationRegistry struct {
	mu       sync.RWMutex
	stations map[int64]*models.Station
	nextID   int64

	defaultHourlyRate decimal.Decimal
}

// NewStationRegistry returns an empty registry. The default hourly rate is
// stamped on newly registered stations.
func NewStationRegistry(defaultHourlyRate decimal.Decimal) *StationRegistry {
	return &StationRegistry{
		stations:          make(map[int64]*models.Station),
		nextID:            1,
		defaultHourlyRate: defaultHourlyRate,
	}
}

// Register allocates a new station record. Re-registering the same address
// is not deduplicated; every call produces a fresh id.
func (r *StationRegistry) Register(name, ipAddress string, port int) models.Station {
	r.mu.Lock()
	defer r.mu.Unlock()

	if port <= 0 {
		port = 5000
	}
	station := &models.Station{
		ID:            r.nextID,
		Name:          name,
		IPAddress:     ipAddress,
		Port:          port,
		Status:        models.StationAvailable,
		LastHeartbeat: timeNow(),
		HourlyRate:    r.defaultHourlyRate,
		IsActive:      true,
	}
	r.nextID++
	r.stations[station.ID] = station
	return *station
}

// Heartbeat refreshes liveness for a known station and flips its status
// between available and in-use based on reported occupancy. Returns false
// for an unknown id without creating anything.
func (r *StationRegistry) Heartbeat(stationID int64, occupied bool, currentSessionID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[stationID]
	if !ok {
		return false
	}

	if occupied {
		station.Status = models.StationInUse
		station.CurrentSessionID = currentSessionID
	} else {
		station.Status = models.StationAvailable
		station.CurrentSessionID = 0
	}
	station.LastHeartbeat = timeNow()
	return true
}

// SetStatus is the administrative override (e.g. maintenance). It does not
// refresh the heartbeat timestamp.
func (r *StationRegistry) SetStatus(stationID int64, status string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[stationID]
	if !ok {
		return false
	}
	station.Status = status
	if status != models.StationInUse {
		station.CurrentSessionID = 0
	}
	return true
}

// Get returns a copy of the station record.
func (r *StationRegistry) Get(stationID int64) (models.Station, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	station, ok := r.stations[stationID]
	if !ok {
		return models.Station{}, false
	}
	return *station, true
}

// List returns copies of all stations ordered by id.
func (r *StationRegistry) List() []models.Station {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Station, 0, len(r.stations))
	for _, station := range r.stations {
		result = append(result, *station)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
