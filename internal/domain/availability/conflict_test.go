package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

func newDetector(reservations *stubReservations, blocks *stubBlocks) Detector {
	return Detector{
		Reservations: reservations,
		Blocks:       blocks,
		Resources:    registryWith("P1"),
	}
}

func TestIsFree_DetectsReservationOverlap(t *testing.T) {
	detector := newDetector(&stubReservations{items: []*reservation.Reservation{
		fixtureReservation("res-1", "P1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusConfirmed),
	}}, &stubBlocks{})

	free, err := detector.IsFree(context.Background(), "P1", interval.Must(day(2024, 3, 12), day(2024, 3, 18)), "")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = detector.IsFree(context.Background(), "P1", interval.Must(day(2024, 3, 15), day(2024, 3, 18)), "")
	require.NoError(t, err)
	assert.True(t, free, "back-to-back reservation must not conflict")
}

func TestIsFree_TerminalStatusesFreeTheInterval(t *testing.T) {
	span := interval.Must(day(2024, 3, 10), day(2024, 3, 15))
	for _, status := range []reservation.Status{
		reservation.StatusCancelled,
		reservation.StatusDeclined,
		reservation.StatusCompleted,
		reservation.StatusNoShow,
	} {
		detector := newDetector(&stubReservations{items: []*reservation.Reservation{
			fixtureReservation("res-1", "P1", span, status),
		}}, &stubBlocks{})

		free, err := detector.IsFree(context.Background(), "P1", span, "")
		require.NoError(t, err)
		assert.True(t, free, "status %s should not hold the interval", status)
	}
}

func TestIsFree_BlockedPeriodConflicts(t *testing.T) {
	detector := newDetector(&stubReservations{}, &stubBlocks{items: []*reservation.BlockedPeriod{
		{ID: "blk-1", ResourceID: "P1", Span: interval.Must(day(2024, 3, 20), day(2024, 3, 25)), Reason: "maintenance"},
	}})

	free, err := detector.IsFree(context.Background(), "P1", interval.Must(day(2024, 3, 22), day(2024, 3, 23)), "")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsFree_ExcludeSkipsOwnReservation(t *testing.T) {
	span := interval.Must(day(2024, 3, 10), day(2024, 3, 15))
	detector := newDetector(&stubReservations{items: []*reservation.Reservation{
		fixtureReservation("res-1", "P1", span, reservation.StatusConfirmed),
	}}, &stubBlocks{})

	free, err := detector.IsFree(context.Background(), "P1", span, "res-1")
	require.NoError(t, err)
	assert.True(t, free, "revalidating an update must ignore the reservation itself")
}

func TestCheck_ReportsConflictDetails(t *testing.T) {
	detector := newDetector(&stubReservations{items: []*reservation.Reservation{
		fixtureReservation("res-1", "P1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusRequested),
	}}, &stubBlocks{items: []*reservation.BlockedPeriod{
		{ID: "blk-1", ResourceID: "P1", Span: interval.Must(day(2024, 3, 16), day(2024, 3, 20)), Reason: "maintenance"},
	}})

	details, err := detector.Check(context.Background(), "P1", interval.Must(day(2024, 3, 12), day(2024, 3, 18)), "")
	require.NoError(t, err)
	require.Len(t, details.Conflicts, 2)
	assert.Equal(t, ConflictReservation, details.Conflicts[0].Kind)
	assert.Equal(t, "res-1", details.Conflicts[0].Reference)
	assert.Equal(t, ConflictBlock, details.Conflicts[1].Kind)
	assert.False(t, details.Free())
}

func TestCheck_UnknownResource(t *testing.T) {
	detector := newDetector(&stubReservations{}, &stubBlocks{})
	_, err := detector.Check(context.Background(), "missing", interval.Must(day(2024, 3, 1), day(2024, 3, 2)), "")
	assert.ErrorIs(t, err, resource.ErrResourceNotFound)
}

func TestCheck_InvalidInterval(t *testing.T) {
	detector := newDetector(&stubReservations{}, &stubBlocks{})
	_, err := detector.Check(context.Background(), "P1", interval.Interval{Start: day(2024, 3, 10), End: day(2024, 3, 10)}, "")
	assert.ErrorIs(t, err, interval.ErrInvalidInterval)
}
