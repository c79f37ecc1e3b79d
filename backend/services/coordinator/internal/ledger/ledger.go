package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"gamecafe/backend/services/coordinator/internal/models"
)

// overridable in tests
var timeNow = func() time.Time { return time.Now().UTC() }

// RevenueLedger is the append-only record of completed charges. Entries are
// never mutated after insertion.
type RevenueLedger struct {
	mu      sync.RWMutex
	entries []models.Charge
}

// NewRevenueLedger returns an empty ledger.
func NewRevenueLedger() *RevenueLedger {
	return &RevenueLedger{}
}

// Record appends a charge. The game name is carried so revenue can be
// grouped per title later.
func (l *RevenueLedger) Record(sessionID, stationID int64, gameName string, amount decimal.Decimal) models.Charge {
	l.mu.Lock()
	defer l.mu.Unlock()

	charge := models.Charge{
		SessionID:  sessionID,
		StationID:  stationID,
		GameName:   gameName,
		Amount:     amount,
		RecordedAt: timeNow(),
	}
	l.entries = append(l.entries, charge)
	return charge
}

// TotalRevenue sums charges recorded inside the optional [from, to] window.
// Nil bounds are open.
func (l *RevenueLedger) TotalRevenue(from, to *time.Time) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, charge := range l.entries {
		if inRange(charge.RecordedAt, from, to) {
			total = total.Add(charge.Amount)
		}
	}
	return total
}

// StationRevenue sums charges for one station inside the optional window.
func (l *RevenueLedger) StationRevenue(stationID int64, from, to *time.Time) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, charge := range l.entries {
		if charge.StationID == stationID && inRange(charge.RecordedAt, from, to) {
			total = total.Add(charge.Amount)
		}
	}
	return total
}

// TopGames aggregates play count and revenue per game, ordered by revenue
// descending. Charges without a game name are skipped.
func (l *RevenueLedger) TopGames(limit int) []models.GameStat {
	l.mu.RLock()
	defer l.mu.RUnlock()

	byGame := make(map[string]*models.GameStat)
	for _, charge := range l.entries {
		if charge.GameName == "" {
			continue
		}
		stat, ok := byGame[charge.GameName]
		if !ok {
			stat = &models.GameStat{GameName: charge.GameName, Revenue: decimal.Zero}
			byGame[charge.GameName] = stat
		}
		stat.PlayCount++
		stat.Revenue = stat.Revenue.Add(charge.Amount)
	}

	stats := make([]models.GameStat, 0, len(byGame))
	for _, stat := range byGame {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].GameName < stats[j].GameName
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// Entries returns a copy of all recorded charges.
func (l *RevenueLedger) Entries() []models.Charge {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]models.Charge, len(l.entries))
	copy(result, l.entries)
	return result
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
