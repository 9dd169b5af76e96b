package availability

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainresource "stayhub/internal/domain/resource"
)

const getCalendarKey = "availability.calendar"

var ErrInvalidMonth = errors.New("availability: month must be between 1 and 12")

type GetCalendarQuery struct {
	ResourceID string
	Year       int
	Month      int
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	if q.Month < 1 || q.Month > 12 {
		return dto.Calendar{}, ErrInvalidMonth
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Calendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	projector := domainavailability.Projector{
		Reservations: unit.Reservations(),
		Blocks:       unit.Blocks(),
		Resources:    unit.Resources(),
		Now:          h.Now,
	}
	month := time.Month(q.Month)
	days, err := projector.RenderMonth(execCtx, domainresource.ResourceID(q.ResourceID), q.Year, month)
	if err != nil {
		return dto.Calendar{}, err
	}
	return dto.MapCalendar(q.ResourceID, q.Year, month, days), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
