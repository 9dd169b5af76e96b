package availability

import (
	"context"
	"time"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainavailability "stayhub/internal/domain/availability"
	domainresource "stayhub/internal/domain/resource"
)

const getSummaryKey = "availability.summary"

type GetSummaryQuery struct {
	ResourceID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func (q GetSummaryQuery) Key() string { return getSummaryKey }

type GetSummaryHandler struct {
	UoWFactory     uow.UoWFactory
	CommissionRate float64
}

func (h *GetSummaryHandler) Handle(ctx context.Context, q GetSummaryQuery) (dto.Summary, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Summary{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	aggregator := domainavailability.Aggregator{
		Reservations:   unit.Reservations(),
		Resources:      unit.Resources(),
		CommissionRate: h.CommissionRate,
	}
	summary, err := aggregator.Summarize(execCtx, domainresource.ResourceID(q.ResourceID), q.PeriodStart, q.PeriodEnd)
	if err != nil {
		return dto.Summary{}, err
	}
	return dto.MapSummary(summary), nil
}

var _ queries.Handler[GetSummaryQuery, dto.Summary] = (*GetSummaryHandler)(nil)
