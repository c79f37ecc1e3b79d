package billing

import (
	"strings"
	"sync"

	"gamecafe/backend/services/coordinator/internal/models"
)

// RateService resolves the pricing policy for a session. Resolution order:
// active station-scoped rate, then active game-category rate, then the
// station's own hourly rate as a fallback.
type RateService struct {
	mu     sync.RWMutex
	rates  []models.BillingRate
	nextID int64
}

// NewRateService returns a service with no configured rates; resolution
// then always falls back to the station's hourly rate.
func NewRateService() *RateService {
	return &RateService{nextID: 1}
}

// Add registers a pricing policy and returns it with an assigned id.
func (s *RateService) Add(rate models.BillingRate) models.BillingRate {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate.ID = s.nextID
	s.nextID++
	s.rates = append(s.rates, rate)
	return rate
}

// Resolve picks the billing rate for a session on the given station.
func (s *RateService) Resolve(station models.Station, gameCategory string) models.BillingRate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rate := range s.rates {
		if rate.IsActive && rate.StationID == station.ID {
			return rate
		}
	}
	if gameCategory != "" {
		for _, rate := range s.rates {
			if rate.IsActive && rate.GameCategory != "" && strings.EqualFold(rate.GameCategory, gameCategory) {
				return rate
			}
		}
	}
	return models.BillingRate{
		Name:        "station-hourly",
		BillingType: models.BillingHourly,
		Rate:        station.HourlyRate,
		StationID:   station.ID,
		IsActive:    true,
	}
}
