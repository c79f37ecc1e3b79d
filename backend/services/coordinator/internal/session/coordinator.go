package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/billing"
	"gamecafe/backend/services/coordinator/internal/ledger"
	"gamecafe/backend/services/coordinator/internal/models"
)

// overridable in tests
var timeNow = func() time.Time { return time.Now().UTC() }

// Start failures.
var (
	ErrStationNotFound = errors.New("session: station not found")
	ErrStationOccupied = errors.New("session: station already has an active session")
)

// StationGetter is the registry view the coordinator needs.
type StationGetter interface {
	Get(stationID int64) (models.Station, bool)
}

// ActiveSessionCache mirrors active sessions into an external cache.
// Optional; failures are logged, never surfaced.
type ActiveSessionCache interface {
	Save(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, stationID int64) error
}

// ChargeArchiver persists completed charges for durable reporting.
// Optional; the in-memory ledger stays authoritative.
type ChargeArchiver interface {
	Insert(ctx context.Context, charge models.Charge) error
}

// Coordinator owns the session lifecycle and the station/server session
// sync. It is the only writer of session records.
type Coordinator struct {
	mu       sync.RWMutex
	sessions map[int64]*models.Session
	nextID   int64

	stations StationGetter
	rates    *billing.RateService
	ledger   *ledger.RevenueLedger
	cache    ActiveSessionCache
	archiver ChargeArchiver
	logger   *zap.Logger

	obsMu     sync.RWMutex
	observers []Observer
}

// NewCoordinator builds a coordinator. Cache and archiver may be nil.
func NewCoordinator(
	stations StationGetter,
	rates *billing.RateService,
	revenue *ledger.RevenueLedger,
	cache ActiveSessionCache,
	archiver ChargeArchiver,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		sessions: make(map[int64]*models.Session),
		nextID:   1,
		stations: stations,
		rates:    rates,
		ledger:   revenue,
		cache:    cache,
		archiver: archiver,
		logger:   logger,
	}
}

// Subscribe registers an observer for session start/end notifications.
func (c *Coordinator) Subscribe(observer Observer) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.observers = append(c.observers, observer)
}

func (c *Coordinator) notifyStarted(session models.Session) {
	c.obsMu.RLock()
	defer c.obsMu.RUnlock()
	for _, observer := range c.observers {
		observer.SessionStarted(session)
	}
}

func (c *Coordinator) notifyEnded(session models.Session) {
	c.obsMu.RLock()
	defer c.obsMu.RUnlock()
	for _, observer := range c.observers {
		observer.SessionEnded(session)
	}
}

// StartSession creates an active session on the given station. At most one
// active session may exist per station; a second start fails without
// mutating anything.
func (c *Coordinator) StartSession(ctx context.Context, userID, stationID int64, gameName string) (models.Session, error) {
	if _, ok := c.stations.Get(stationID); !ok {
		return models.Session{}, ErrStationNotFound
	}

	c.mu.Lock()
	for _, existing := range c.sessions {
		if existing.StationID == stationID && existing.Status == models.SessionActive {
			c.mu.Unlock()
			return models.Session{}, ErrStationOccupied
		}
	}

	session := &models.Session{
		ID:        c.nextID,
		UserID:    userID,
		StationID: stationID,
		GameName:  gameName,
		StartTime: timeNow(),
		Status:    models.SessionActive,
	}
	c.nextID++
	c.sessions[session.ID] = session
	snapshot := *session
	c.mu.Unlock()

	c.cacheSave(ctx, snapshot)
	c.notifyStarted(snapshot)
	return snapshot, nil
}

// EndSession completes an active session: stamps the end time, computes the
// final cost from the resolved rate, and records the charge. Ending an
// unknown or already terminal session is a no-op returning false.
func (c *Coordinator) EndSession(ctx context.Context, sessionID int64) bool {
	return c.finish(ctx, sessionID, models.SessionCompleted)
}

// CancelSession aborts an active session without recording a charge.
func (c *Coordinator) CancelSession(ctx context.Context, sessionID int64) bool {
	return c.finish(ctx, sessionID, models.SessionCancelled)
}

func (c *Coordinator) finish(ctx context.Context, sessionID int64, status string) bool {
	c.mu.Lock()
	session, ok := c.sessions[sessionID]
	if !ok || session.Status != models.SessionActive {
		c.mu.Unlock()
		return false
	}

	now := timeNow()
	session.EndTime = now
	session.Status = status

	if status == models.SessionCompleted {
		station, _ := c.stations.Get(session.StationID)
		rate := c.rates.Resolve(station, session.GameName)
		session.TotalCost = billing.SessionCost(*session, rate, now)
	}
	snapshot := *session
	c.mu.Unlock()

	if status == models.SessionCompleted {
		charge := c.ledger.Record(snapshot.ID, snapshot.StationID, snapshot.GameName, snapshot.TotalCost)
		c.archive(ctx, charge)
	}
	c.cacheDelete(ctx, snapshot.StationID)
	c.notifyEnded(snapshot)
	return true
}

// Get returns a copy of the session record.
func (c *Coordinator) Get(sessionID int64) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session, ok := c.sessions[sessionID]
	if !ok {
		return models.Session{}, false
	}
	return *session, true
}

// GetActive returns the active session on a station, if any.
func (c *Coordinator) GetActive(stationID int64) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, session := range c.sessions {
		if session.StationID == stationID && session.Status == models.SessionActive {
			return *session, true
		}
	}
	return models.Session{}, false
}

// List returns copies of all sessions ordered by id.
func (c *Coordinator) List() []models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(models.Session) bool { return true })
}

// ListActive returns all currently active sessions ordered by id.
func (c *Coordinator) ListActive() []models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(s models.Session) bool { return s.Status == models.SessionActive })
}

// ListByStation returns all sessions for one station ordered by id.
func (c *Coordinator) ListByStation(stationID int64) []models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(s models.Session) bool { return s.StationID == stationID })
}

// caller must hold at least a read lock
func (c *Coordinator) collect(keep func(models.Session) bool) []models.Session {
	result := make([]models.Session, 0, len(c.sessions))
	for _, session := range c.sessions {
		if keep(*session) {
			result = append(result, *session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SyncFromAgent upserts a full session record keyed by id, overwriting any
// local copy regardless of which is newer. Last write wins; the agent owns
// ordering within its own station.
func (c *Coordinator) SyncFromAgent(ctx context.Context, snapshot models.Session) bool {
	if snapshot.ID <= 0 {
		return false
	}

	if snapshot.Status == "" {
		if snapshot.EndTime.IsZero() {
			snapshot.Status = models.SessionActive
		} else {
			snapshot.Status = models.SessionCompleted
		}
	}

	c.mu.Lock()
	stored := snapshot
	c.sessions[snapshot.ID] = &stored
	if snapshot.ID >= c.nextID {
		c.nextID = snapshot.ID + 1
	}
	c.mu.Unlock()

	if snapshot.Status == models.SessionActive {
		c.cacheSave(ctx, snapshot)
	} else {
		c.cacheDelete(ctx, snapshot.StationID)
	}
	return true
}

func (c *Coordinator) cacheSave(ctx context.Context, session models.Session) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Save(ctx, session); err != nil {
		c.logger.Warn("failed to cache active session", zap.Int64("session_id", session.ID), zap.Error(err))
	}
}

func (c *Coordinator) cacheDelete(ctx context.Context, stationID int64) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, stationID); err != nil {
		c.logger.Warn("failed to drop active session cache", zap.Int64("station_id", stationID), zap.Error(err))
	}
}

func (c *Coordinator) archive(ctx context.Context, charge models.Charge) {
	if c.archiver == nil {
		return
	}
	if err := c.archiver.Insert(ctx, charge); err != nil {
		c.logger.Warn("failed to archive charge", zap.Int64("session_id", charge.SessionID), zap.Error(err))
	}
}
