package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gamecafe/backend/services/coordinator/internal/models"
)

func TestHourlyCostRoundsStartedHoursUp(t *testing.T) {
	rate := decimal.RequireFromString("5.00")

	cases := []struct {
		name    string
		minutes int
		want    string
	}{
		{"zero minutes", 0, "0"},
		{"negative clamps to zero", -5, "0"},
		{"one minute bills a full hour", 1, "5.00"},
		{"exactly one hour", 60, "5.00"},
		{"one minute past the hour", 61, "10.00"},
		{"two full hours", 120, "10.00"},
		{"just under three hours", 179, "15.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HourlyCost(rate, tc.minutes)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("HourlyCost(%s, %d) = %s, want %s", rate, tc.minutes, got, tc.want)
			}
		})
	}
}

func TestPerMinuteCostIsExact(t *testing.T) {
	rate := decimal.RequireFromString("0.15")

	got := PerMinuteCost(rate, 47)
	want := decimal.RequireFromString("7.05")
	if !got.Equal(want) {
		t.Fatalf("PerMinuteCost(%s, 47) = %s, want %s", rate, got, want)
	}

	if !PerMinuteCost(rate, 0).IsZero() {
		t.Fatalf("expected zero cost for zero minutes")
	}
}

func TestSessionCostDispatch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := models.Session{
		StartTime: now.Add(-61 * time.Minute),
		Status:    models.SessionActive,
	}

	hourly := models.BillingRate{BillingType: models.BillingHourly, Rate: decimal.RequireFromString("4.00")}
	if got := SessionCost(session, hourly, now); !got.Equal(decimal.RequireFromString("8.00")) {
		t.Fatalf("hourly session cost = %s, want 8.00", got)
	}

	perMinute := models.BillingRate{BillingType: models.BillingPerMinute, Rate: decimal.RequireFromString("0.10")}
	if got := SessionCost(session, perMinute, now); !got.Equal(decimal.RequireFromString("6.10")) {
		t.Fatalf("per-minute session cost = %s, want 6.10", got)
	}

	flat := models.BillingRate{BillingType: models.BillingFlatRate, Rate: decimal.RequireFromString("12.50")}
	if got := SessionCost(session, flat, now); !got.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("flat session cost = %s, want 12.50", got)
	}

	unknown := models.BillingRate{BillingType: "weekly", Rate: decimal.RequireFromString("99.00")}
	if got := SessionCost(session, unknown, now); !got.IsZero() {
		t.Fatalf("unknown billing type cost = %s, want 0", got)
	}
}

func TestFlatRateIgnoresDuration(t *testing.T) {
	flat := models.BillingRate{BillingType: models.BillingFlatRate, Rate: decimal.RequireFromString("20.00")}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, minutes := range []int{0, 1, 600} {
		session := models.Session{StartTime: now.Add(-time.Duration(minutes) * time.Minute)}
		if got := SessionCost(session, flat, now); !got.Equal(flat.Rate) {
			t.Fatalf("flat rate with %d minutes = %s, want %s", minutes, got, flat.Rate)
		}
	}
}
