package availability

import (
	"context"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

// CalendarGridSize is the fixed number of cells in a rendered month: six
// full weeks, so the grid shape never depends on how the month starts.
const CalendarGridSize = 42

type DayStatus string

const (
	DayFree     DayStatus = "free"
	DayReserved DayStatus = "reserved"
	DayBlocked  DayStatus = "blocked"
)

// CalendarDay is one cell of a rendered month grid. It is derived on every
// query and never mutated directly.
type CalendarDay struct {
	Date           time.Time
	InCurrentMonth bool
	Available      bool
	Status         DayStatus
	ReservationID  reservation.ReservationID
	BlockReason    string
}

// Projector builds day grids from the store's current contents. Reads are
// not transactional; a reservation committing mid-render may or may not
// appear.
type Projector struct {
	Reservations reservation.Repository
	Blocks       reservation.BlockRepository
	Resources    resource.Registry
	Now          func() time.Time
}

// RenderMonth returns exactly CalendarGridSize cells starting from the
// Sunday on or before the first of the month. Cells outside the month keep
// correct status but are flagged InCurrentMonth = false. Past days are
// never available regardless of reservation state.
func (p Projector) RenderMonth(ctx context.Context, resourceID resource.ResourceID, year int, month time.Month) ([]CalendarDay, error) {
	if _, err := p.Resources.ByID(ctx, resourceID); err != nil {
		return nil, err
	}
	active, err := p.Reservations.ActiveForResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	blocks, err := p.Blocks.ListForResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return buildGrid(year, month, p.now(), active, blocks), nil
}

func (p Projector) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

func buildGrid(year int, month time.Month, now time.Time, active []*reservation.Reservation, blocks []*reservation.BlockedPeriod) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	today := dateOf(now)

	grid := make([]CalendarDay, 0, CalendarGridSize)
	for i := 0; i < CalendarGridSize; i++ {
		date := gridStart.AddDate(0, 0, i)
		day := CalendarDay{
			Date:           date,
			InCurrentMonth: date.Month() == month && date.Year() == year,
			Status:         DayFree,
		}
		daySpan := interval.Interval{Start: date, End: date.AddDate(0, 0, 1)}
		for _, r := range active {
			if r.Span.Overlaps(daySpan) {
				day.Status = DayReserved
				day.ReservationID = r.ID
				break
			}
		}
		if day.Status == DayFree {
			for _, b := range blocks {
				if b.Span.Overlaps(daySpan) {
					day.Status = DayBlocked
					day.BlockReason = b.Reason
					break
				}
			}
		}
		day.Available = day.Status == DayFree && date.After(today)
		grid = append(grid, day)
	}
	return grid
}
