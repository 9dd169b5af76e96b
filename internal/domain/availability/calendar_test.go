package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/interval"
)

func newProjector(reservations *stubReservations, blocks *stubBlocks, now time.Time) Projector {
	return Projector{
		Reservations: reservations,
		Blocks:       blocks,
		Resources:    registryWith("P1"),
		Now:          func() time.Time { return now },
	}
}

func TestRenderMonth_Always42Cells(t *testing.T) {
	p := newProjector(&stubReservations{}, &stubBlocks{}, day(2024, 1, 1))

	months := []struct {
		year  int
		month time.Month
	}{
		{2024, time.February},  // leap February, starts Thursday
		{2024, time.March},     // 31 days, starts Friday
		{2024, time.September}, // starts Sunday
		{2026, time.February},  // non-leap, starts Sunday, fits 28+14
		{2024, time.June},      // starts Saturday, spills into 6th week
	}
	for _, m := range months {
		grid, err := p.RenderMonth(context.Background(), "P1", m.year, m.month)
		require.NoError(t, err)
		assert.Len(t, grid, CalendarGridSize, "%d-%s", m.year, m.month)
	}
}

func TestRenderMonth_GridStartsOnSunday(t *testing.T) {
	p := newProjector(&stubReservations{}, &stubBlocks{}, day(2024, 1, 1))

	grid, err := p.RenderMonth(context.Background(), "P1", 2024, time.March)
	require.NoError(t, err)

	// 2024-03-01 is a Friday; the grid starts the preceding Sunday, Feb 25.
	assert.Equal(t, day(2024, 2, 25), grid[0].Date)
	assert.Equal(t, time.Sunday, grid[0].Date.Weekday())
	assert.False(t, grid[0].InCurrentMonth)

	// Cell index 5 is March 1st.
	assert.Equal(t, day(2024, 3, 1), grid[5].Date)
	assert.True(t, grid[5].InCurrentMonth)
}

func TestRenderMonth_StatusPrecedence(t *testing.T) {
	reserved := fixtureReservation("res-1", "P1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusConfirmed)
	block := &reservation.BlockedPeriod{
		ID:         "blk-1",
		ResourceID: "P1",
		Span:       interval.Must(day(2024, 3, 14), day(2024, 3, 18)),
		Reason:     "deep clean",
	}
	p := newProjector(
		&stubReservations{items: []*reservation.Reservation{reserved}},
		&stubBlocks{items: []*reservation.BlockedPeriod{block}},
		day(2024, 3, 1),
	)

	grid, err := p.RenderMonth(context.Background(), "P1", 2024, time.March)
	require.NoError(t, err)

	byDate := make(map[string]CalendarDay)
	for _, cell := range grid {
		byDate[cell.Date.Format("2006-01-02")] = cell
	}

	assert.Equal(t, DayReserved, byDate["2024-03-10"].Status)
	assert.Equal(t, reservation.ReservationID("res-1"), byDate["2024-03-10"].ReservationID)
	// Reservation wins over the overlapping block on the 14th.
	assert.Equal(t, DayReserved, byDate["2024-03-14"].Status)
	// Checkout day is free of the reservation but inside the block.
	assert.Equal(t, DayBlocked, byDate["2024-03-15"].Status)
	assert.Equal(t, "deep clean", byDate["2024-03-15"].BlockReason)
	assert.Equal(t, DayBlocked, byDate["2024-03-17"].Status)
	assert.Equal(t, DayFree, byDate["2024-03-18"].Status)
}

func TestRenderMonth_PastDaysNeverAvailable(t *testing.T) {
	now := day(2024, 3, 20)
	p := newProjector(&stubReservations{}, &stubBlocks{}, now)

	grid, err := p.RenderMonth(context.Background(), "P1", 2024, time.March)
	require.NoError(t, err)

	for _, cell := range grid {
		if !cell.Date.After(now) {
			assert.False(t, cell.Available, "day %s is not in the future", cell.Date.Format("2006-01-02"))
		} else if cell.Status == DayFree {
			assert.True(t, cell.Available)
		}
	}
}

func TestRenderMonth_TerminalReservationsInvisible(t *testing.T) {
	cancelled := fixtureReservation("res-1", "P1", interval.Must(day(2024, 3, 10), day(2024, 3, 15)), reservation.StatusCancelled)
	p := newProjector(&stubReservations{items: []*reservation.Reservation{cancelled}}, &stubBlocks{}, day(2024, 3, 1))

	grid, err := p.RenderMonth(context.Background(), "P1", 2024, time.March)
	require.NoError(t, err)
	for _, cell := range grid {
		assert.NotEqual(t, DayReserved, cell.Status)
	}
}
