package booking

import (
	"context"
	"errors"
	"sort"
	"strings"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
)

const listRequesterReservationsKey = "reservation.list_by_requester"

type ListRequesterReservationsQuery struct {
	RequesterID string
	Status      string
}

func (q ListRequesterReservationsQuery) Key() string { return listRequesterReservationsKey }

type ListRequesterReservationsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListRequesterReservationsHandler) Handle(ctx context.Context, q ListRequesterReservationsQuery) (dto.ReservationCollection, error) {
	requesterID := strings.TrimSpace(q.RequesterID)
	if requesterID == "" {
		return dto.ReservationCollection{}, errors.New("requester id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	items, err := unit.Reservations().ListByRequester(execCtx, requesterID)
	if err != nil {
		return dto.ReservationCollection{}, err
	}

	statusFilter := strings.ToUpper(strings.TrimSpace(q.Status))
	filtered := items[:0:0]
	for _, r := range items {
		if statusFilter != "" && string(r.Status) != statusFilter {
			continue
		}
		filtered = append(filtered, r)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return dto.MapReservations(filtered), nil
}

var _ queries.Handler[ListRequesterReservationsQuery, dto.ReservationCollection] = (*ListRequesterReservationsHandler)(nil)
