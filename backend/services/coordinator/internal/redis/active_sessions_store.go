package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gamecafe/backend/services/coordinator/internal/models"
)

// Store caches the active session per station for quick kiosk lookups.
// The in-memory coordinator stays authoritative; this is acceleration only.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns a redis-backed active session cache.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(stationID int64) string {
	return fmt.Sprintf("sessions:active:%d", stationID)
}

// Save caches the session under its station key.
func (s *Store) Save(ctx context.Context, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.StationID), data, s.ttl).Err()
}

// Get returns the cached active session for a station.
func (s *Store) Get(ctx context.Context, stationID int64) (*models.Session, error) {
	result, err := s.client.Get(ctx, s.key(stationID)).Result()
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete drops the cached session for a station.
func (s *Store) Delete(ctx context.Context, stationID int64) error {
	return s.client.Del(ctx, s.key(stationID)).Err()
}
