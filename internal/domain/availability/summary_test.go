package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

func fixtureWithAmount(id string, span interval.Interval, status reservation.Status, amount int64) *reservation.Reservation {
	r := fixtureReservation(id, "P1", span, status)
	r.Amount = money.Must(amount, "USD")
	return r
}

func TestSummarize_ClipsNightsAtPeriodBoundaries(t *testing.T) {
	agg := Aggregator{
		Reservations: &stubReservations{items: []*reservation.Reservation{
			// 5 in-period nights.
			fixtureWithAmount("res-1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusConfirmed, 50000),
			// Spans the period edge: only the 3 March nights count.
			fixtureWithAmount("res-2", interval.Must(day(2024, 3, 29), day(2024, 4, 3)), reservation.StatusConfirmed, 25000),
		}},
		Resources:      registryWith("P1"),
		CommissionRate: 0.10,
	}

	summary, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, 8, summary.BookedNights)
	assert.Equal(t, 2, summary.ReservationCount)
	assert.Equal(t, int64(75000), summary.Revenue.Amount)
	assert.Equal(t, int64(7500), summary.Commission.Amount)
	// 8 nights over a 31-day window rounds to 26%.
	assert.Equal(t, 26, summary.OccupancyRate)
}

func TestSummarize_ScenarioAfterConflictAndBackToBack(t *testing.T) {
	agg := Aggregator{
		Reservations: &stubReservations{items: []*reservation.Reservation{
			fixtureWithAmount("res-1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusConfirmed, 50000),
			fixtureWithAmount("res-2", interval.Must(day(2024, 3, 15), day(2024, 3, 18)), reservation.StatusConfirmed, 30000),
		}},
		Resources: registryWith("P1"),
	}

	summary, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, 8, summary.BookedNights, "5 + 3 nights")
	assert.Equal(t, int64(80000), summary.Revenue.Amount)
}

func TestSummarize_OnlyConfirmedAndCompletedCount(t *testing.T) {
	span := interval.Must(day(2024, 3, 10), day(2024, 3, 12))
	agg := Aggregator{
		Reservations: &stubReservations{items: []*reservation.Reservation{
			fixtureWithAmount("res-1", span, reservation.StatusRequested, 10000),
			fixtureWithAmount("res-2", interval.Must(day(2024, 3, 12), day(2024, 3, 14)), reservation.StatusCancelled, 10000),
			fixtureWithAmount("res-3", interval.Must(day(2024, 3, 14), day(2024, 3, 16)), reservation.StatusCompleted, 20000),
		}},
		Resources: registryWith("P1"),
	}

	summary, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.BookedNights)
	assert.Equal(t, 1, summary.ReservationCount)
	assert.Equal(t, int64(20000), summary.Revenue.Amount)
}

func TestSummarize_Idempotent(t *testing.T) {
	agg := Aggregator{
		Reservations: &stubReservations{items: []*reservation.Reservation{
			fixtureWithAmount("res-1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusConfirmed, 50000),
		}},
		Resources:      registryWith("P1"),
		CommissionRate: 0.15,
	}

	first, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 4, 1))
	require.NoError(t, err)
	second, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummarize_InvalidPeriod(t *testing.T) {
	agg := Aggregator{Reservations: &stubReservations{}, Resources: registryWith("P1")}

	_, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = agg.Summarize(context.Background(), "P1", day(2024, 3, 2), day(2024, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestSummarize_EmptyStore(t *testing.T) {
	agg := Aggregator{Reservations: &stubReservations{}, Resources: registryWith("P1"), CommissionRate: 0.1}

	summary, err := agg.Summarize(context.Background(), "P1", day(2024, 3, 1), day(2024, 4, 1))
	require.NoError(t, err)
	assert.Zero(t, summary.BookedNights)
	assert.Zero(t, summary.OccupancyRate)
	assert.Zero(t, summary.ReservationCount)
	assert.True(t, summary.Revenue.IsZero())
}
