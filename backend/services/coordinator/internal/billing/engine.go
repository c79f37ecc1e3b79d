package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"gamecafe/backend/services/coordinator/internal/models"
)

var sixty = decimal.NewFromInt(60)

// HourlyCost bills every started hour in full: ceil(minutes/60) * rate.
// Zero minutes costs nothing.
func HourlyCost(hourlyRate decimal.Decimal, minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(minutes)).Div(sixty).Ceil()
	return hours.Mul(hourlyRate)
}

// PerMinuteCost is linear: minutes * rate, exact.
func PerMinuteCost(ratePerMinute decimal.Decimal, minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return ratePerMinute.Mul(decimal.NewFromInt(int64(minutes)))
}

// SessionCost dispatches on the rate's billing type. A flat rate ignores
// duration; an unrecognized type yields zero rather than an error.
func SessionCost(session models.Session, rate models.BillingRate, now time.Time) decimal.Decimal {
	minutes := session.DurationMinutes(now)
	switch rate.BillingType {
	case models.BillingHourly:
		return HourlyCost(rate.Rate, minutes)
	case models.BillingPerMinute:
		return PerMinuteCost(rate.Rate, minutes)
	case models.BillingFlatRate:
		return rate.Rate
	default:
		return decimal.Zero
	}
}
