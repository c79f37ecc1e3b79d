package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"gamecafe/backend/services/coordinator/internal/models"
)

func TestResolveFallsBackToStationHourlyRate(t *testing.T) {
	svc := NewRateService()
	station := models.Station{ID: 3, HourlyRate: decimal.RequireFromString("6.00")}

	rate := svc.Resolve(station, "")
	if rate.BillingType != models.BillingHourly {
		t.Fatalf("expected hourly fallback, got %s", rate.BillingType)
	}
	if !rate.Rate.Equal(station.HourlyRate) {
		t.Fatalf("fallback rate = %s, want %s", rate.Rate, station.HourlyRate)
	}
}

func TestResolvePrefersStationScopedRate(t *testing.T) {
	svc := NewRateService()
	station := models.Station{ID: 3, HourlyRate: decimal.RequireFromString("6.00")}

	svc.Add(models.BillingRate{
		Name:         "fps-night",
		BillingType:  models.BillingPerMinute,
		Rate:         decimal.RequireFromString("0.20"),
		GameCategory: "FPS",
		IsActive:     true,
	})
	scoped := svc.Add(models.BillingRate{
		Name:        "vip-bay",
		BillingType: models.BillingFlatRate,
		Rate:        decimal.RequireFromString("25.00"),
		StationID:   3,
		IsActive:    true,
	})

	rate := svc.Resolve(station, "FPS")
	if rate.ID != scoped.ID {
		t.Fatalf("expected station-scoped rate %d, got %d (%s)", scoped.ID, rate.ID, rate.Name)
	}
}

func TestResolveUsesCategoryWhenNoStationRate(t *testing.T) {
	svc := NewRateService()
	station := models.Station{ID: 9, HourlyRate: decimal.RequireFromString("6.00")}

	category := svc.Add(models.BillingRate{
		Name:         "fps-night",
		BillingType:  models.BillingPerMinute,
		Rate:         decimal.RequireFromString("0.20"),
		GameCategory: "FPS",
		IsActive:     true,
	})
	svc.Add(models.BillingRate{
		Name:        "inactive-bay",
		BillingType: models.BillingFlatRate,
		Rate:        decimal.RequireFromString("99.00"),
		StationID:   9,
		IsActive:    false,
	})

	rate := svc.Resolve(station, "fps")
	if rate.ID != category.ID {
		t.Fatalf("expected category rate %d, got %d (%s)", category.ID, rate.ID, rate.Name)
	}
}
