package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gamecafe/backend/services/station-agent/internal/clients"
)

// overridable in tests
var timeNow = func() time.Time { return time.Now().UTC() }

// ErrSessionInProgress rejects a second local session.
var ErrSessionInProgress = errors.New("agent: a session is already in progress")

// LocalSession is the station-side view of the running session.
type LocalSession struct {
	ID        int64
	UserID    int64
	GameName  string
	StartTime time.Time
}

// Agent keeps this station registered with the coordinator, reports
// occupancy on a heartbeat ticker, and synchronizes the local session.
// Failed calls are reported and retried on the next tick; nothing here
// retries inline.
type Agent struct {
	client     *clients.CoordinatorClient
	logger     *zap.Logger
	name       string
	ipAddress  string
	port       int
	hourlyRate decimal.Decimal
	interval   time.Duration

	mu        sync.Mutex
	stationID int64
	session   *LocalSession
}

// New builds an agent.
func New(client *clients.CoordinatorClient, name, ipAddress string, port int, hourlyRate decimal.Decimal, interval time.Duration, logger *zap.Logger) *Agent {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Agent{
		client:     client,
		logger:     logger,
		name:       name,
		ipAddress:  ipAddress,
		port:       port,
		hourlyRate: hourlyRate,
		interval:   interval,
	}
}

// Run registers the station and heartbeats until ctx is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	a.tick(ctx)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

func (a *Agent) tick(ctx context.Context) {
	a.mu.Lock()
	registered := a.stationID != 0
	a.mu.Unlock()

	if !registered {
		a.register(ctx)
		return
	}
	a.heartbeat(ctx)
	a.syncRunning(ctx)
}

func (a *Agent) register(ctx context.Context) {
	resp := a.client.Register(ctx, clients.StationHeartbeatRequest{
		StationName: a.name,
		IPAddress:   a.ipAddress,
		Port:        a.port,
		IsAvailable: true,
	})
	if !resp.Success {
		a.logger.Warn("registration failed", zap.String("message", resp.Message))
		return
	}

	a.mu.Lock()
	a.stationID = resp.StationID
	a.mu.Unlock()
	a.logger.Info("station registered", zap.Int64("station_id", resp.StationID))
}

func (a *Agent) heartbeat(ctx context.Context) {
	a.mu.Lock()
	req := clients.StationHeartbeatRequest{
		StationID:   a.stationID,
		StationName: a.name,
		IPAddress:   a.ipAddress,
		Port:        a.port,
		IsAvailable: a.session == nil,
	}
	if a.session != nil {
		req.CurrentSessionID = a.session.ID
	}
	a.mu.Unlock()

	resp := a.client.Heartbeat(ctx, req)
	if !resp.Success {
		a.logger.Warn("heartbeat failed", zap.String("message", resp.Message))
	}
}

// syncRunning keeps the server copy of an active session fresh.
func (a *Agent) syncRunning(ctx context.Context) {
	a.mu.Lock()
	session := a.session
	stationID := a.stationID
	a.mu.Unlock()

	if session == nil {
		return
	}
	a.sync(ctx, stationID, *session, nil, decimal.Zero)
}

// StationID returns the id assigned by the coordinator, zero before
// registration succeeds.
func (a *Agent) StationID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stationID
}

// CurrentSession returns a copy of the running session, if any.
func (a *Agent) CurrentSession() (LocalSession, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return LocalSession{}, false
	}
	return *a.session, true
}

// StartSession opens a local session after a kiosk login and pushes it to
// the coordinator. The id is allocated locally so play can start even when
// the coordinator is unreachable.
func (a *Agent) StartSession(ctx context.Context, userID int64, gameName string) (LocalSession, error) {
	a.mu.Lock()
	if a.session != nil {
		a.mu.Unlock()
		return LocalSession{}, ErrSessionInProgress
	}
	session := &LocalSession{
		ID:        timeNow().UnixNano(),
		UserID:    userID,
		GameName:  gameName,
		StartTime: timeNow(),
	}
	a.session = session
	stationID := a.stationID
	snapshot := *session
	a.mu.Unlock()

	a.sync(ctx, stationID, snapshot, nil, decimal.Zero)
	return snapshot, nil
}

// EndSession closes the local session, computes the final hourly cost, and
// pushes the terminal snapshot. Returns the cost.
func (a *Agent) EndSession(ctx context.Context) (decimal.Decimal, error) {
	a.mu.Lock()
	if a.session == nil {
		a.mu.Unlock()
		return decimal.Zero, errors.New("agent: no session in progress")
	}
	snapshot := *a.session
	stationID := a.stationID
	a.session = nil
	a.mu.Unlock()

	end := timeNow()
	cost := a.hourlyCost(snapshot.StartTime, end)
	a.sync(ctx, stationID, snapshot, &end, cost)
	return cost, nil
}

func (a *Agent) sync(ctx context.Context, stationID int64, session LocalSession, end *time.Time, cost decimal.Decimal) {
	until := timeNow()
	if end != nil {
		until = *end
	}
	minutes := int(until.Sub(session.StartTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}

	resp := a.client.SyncSession(ctx, clients.SessionSyncRequest{
		SessionID:       session.ID,
		UserID:          session.UserID,
		StationID:       stationID,
		StartTime:       session.StartTime,
		EndTime:         end,
		GameName:        session.GameName,
		DurationMinutes: minutes,
		TotalCost:       cost,
	})
	if !resp.Success {
		a.logger.Warn("session sync failed",
			zap.Int64("session_id", session.ID),
			zap.String("message", resp.Message),
		)
	}
}

// hourlyCost bills every started hour in full, matching the coordinator.
func (a *Agent) hourlyCost(start, end time.Time) decimal.Decimal {
	minutes := int(end.Sub(start).Minutes())
	if minutes <= 0 {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Ceil()
	return hours.Mul(a.hourlyRate)
}
