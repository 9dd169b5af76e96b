package availability

import (
	"context"
	"time"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

const checkAvailabilityKey = "availability.check"

type CheckAvailabilityQuery struct {
	ResourceID string
	Start      time.Time
	End        time.Time
	// ExcludeReservationID lets a caller revalidate a date change on an
	// existing reservation without colliding with itself.
	ExcludeReservationID string
}

func (q CheckAvailabilityQuery) Key() string { return checkAvailabilityKey }

type CheckAvailabilityHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *CheckAvailabilityHandler) Handle(ctx context.Context, q CheckAvailabilityQuery) (dto.AvailabilityCheck, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.AvailabilityCheck{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	span, err := interval.New(q.Start, q.End)
	if err != nil {
		return dto.AvailabilityCheck{}, err
	}
	detector := domainavailability.Detector{
		Reservations: unit.Reservations(),
		Blocks:       unit.Blocks(),
		Resources:    unit.Resources(),
	}
	details, err := detector.Check(
		execCtx,
		domainresource.ResourceID(q.ResourceID),
		span,
		domainreservation.ReservationID(q.ExcludeReservationID),
	)
	if err != nil {
		return dto.AvailabilityCheck{}, err
	}
	return dto.MapAvailabilityCheck(details), nil
}

var _ queries.Handler[CheckAvailabilityQuery, dto.AvailabilityCheck] = (*CheckAvailabilityHandler)(nil)
