package availability

import (
	"context"
	"errors"
	"math"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

var ErrInvalidPeriod = errors.New("availability: period must span at least one day")

// Summary aggregates occupancy and revenue for a resource over a period.
type Summary struct {
	ResourceID       resource.ResourceID
	PeriodStart      time.Time
	PeriodEnd        time.Time
	BookedNights     int
	OccupancyRate    int
	Revenue          money.Money
	Commission       money.Money
	ReservationCount int
}

// Aggregator derives occupancy and revenue from the reservation store.
// CommissionRate is a configuration value, not a core invariant.
type Aggregator struct {
	Reservations   reservation.Repository
	Resources      resource.Registry
	CommissionRate float64
}

// Summarize counts booked nights, occupancy rate and revenue over CONFIRMED
// and COMPLETED reservations intersecting [periodStart, periodEnd). Nights
// are clipped at the period boundaries, so a reservation spanning a period
// edge contributes only its in-period nights. The call has no side effects
// and is idempotent for a fixed store state.
func (a Aggregator) Summarize(ctx context.Context, resourceID resource.ResourceID, periodStart, periodEnd time.Time) (Summary, error) {
	period := interval.Interval{Start: periodStart.UTC(), End: periodEnd.UTC()}
	daysInPeriod := period.Nights()
	if daysInPeriod <= 0 {
		return Summary{}, ErrInvalidPeriod
	}
	if _, err := a.Resources.ByID(ctx, resourceID); err != nil {
		return Summary{}, err
	}
	all, err := a.Reservations.ForResource(ctx, resourceID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{ResourceID: resourceID, PeriodStart: period.Start, PeriodEnd: period.End}
	for _, r := range all {
		if r.Status != reservation.StatusConfirmed && r.Status != reservation.StatusCompleted {
			continue
		}
		clipped, ok := r.Span.Clip(period)
		if !ok {
			continue
		}
		summary.BookedNights += clipped.Nights()
		summary.ReservationCount++
		if summary.Revenue.Currency == "" {
			summary.Revenue = r.Amount
			continue
		}
		total, err := summary.Revenue.Add(r.Amount)
		if err != nil {
			return Summary{}, err
		}
		summary.Revenue = total
	}

	summary.OccupancyRate = int(math.Round(float64(summary.BookedNights) / float64(daysInPeriod) * 100))
	summary.Commission = summary.Revenue.ApplyRate(a.CommissionRate)
	return summary, nil
}
