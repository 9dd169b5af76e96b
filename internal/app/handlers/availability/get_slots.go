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

const getSlotsKey = "availability.slots"

var ErrInvalidRange = errors.New("availability: range end must not precede start")

type GetSlotsQuery struct {
	ResourceID string
	From       time.Time
	To         time.Time
	// Template defaults to weekday business hours when no windows are set.
	Template domainavailability.WeeklyTemplate
}

func (q GetSlotsQuery) Key() string { return getSlotsKey }

type GetSlotsHandler struct {
	UoWFactory uow.UoWFactory
	// SlotDuration overrides the template duration when the template leaves
	// it unset. Zero falls through to the domain default.
	SlotDuration time.Duration
}

// DefaultTemplate is the schedule used when the caller supplies no windows:
// Monday through Friday, 09:00 to 17:00 UTC.
func DefaultTemplate() domainavailability.WeeklyTemplate {
	hours := []domainavailability.Window{{Start: "09:00", End: "17:00"}}
	return domainavailability.WeeklyTemplate{
		Windows: map[time.Weekday][]domainavailability.Window{
			time.Monday:    hours,
			time.Tuesday:   hours,
			time.Wednesday: hours,
			time.Thursday:  hours,
			time.Friday:    hours,
		},
	}
}

func (h *GetSlotsHandler) Handle(ctx context.Context, q GetSlotsQuery) (dto.SlotCollection, error) {
	if q.To.Before(q.From) {
		return dto.SlotCollection{}, ErrInvalidRange
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.SlotCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	tpl := q.Template
	if len(tpl.Windows) == 0 {
		tpl.Windows = DefaultTemplate().Windows
	}
	if tpl.SlotDuration <= 0 {
		tpl.SlotDuration = h.SlotDuration
	}

	svc := domainavailability.SlotService{
		Reservations: unit.Reservations(),
		Blocks:       unit.Blocks(),
		Resources:    unit.Resources(),
	}
	slots, err := svc.Generate(execCtx, domainresource.ResourceID(q.ResourceID), q.From, q.To, tpl)
	if err != nil {
		return dto.SlotCollection{}, err
	}
	return dto.MapSlots(slots), nil
}

var _ queries.Handler[GetSlotsQuery, dto.SlotCollection] = (*GetSlotsHandler)(nil)
