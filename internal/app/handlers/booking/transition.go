package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	"stayhub/internal/app/outbox"
	"stayhub/internal/app/uow"
	domainreservation "stayhub/internal/domain/reservation"
)

const transitionReservationKey = "reservation.transition"

type TransitionReservationCommand struct {
	ReservationID string
	TargetStatus  string
	Reason        string
}

func (c TransitionReservationCommand) Key() string { return transitionReservationKey }

type TransitionReservationHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
}

// Handle applies a single lifecycle transition. Entering a terminal status
// releases the interval, so the conflict detector treats it as free for the
// next candidate as soon as the unit of work commits.
func (h *TransitionReservationHandler) Handle(ctx context.Context, cmd TransitionReservationCommand) (*dto.Reservation, error) {
	id := strings.TrimSpace(cmd.ReservationID)
	if id == "" {
		return nil, errors.New("booking: reservation id is required")
	}
	target, err := domainreservation.ParseStatus(strings.ToUpper(strings.TrimSpace(cmd.TargetStatus)))
	if err != nil {
		return nil, err
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}

	res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(id))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := res.Transition(target, cmd.Reason, now); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, res); err != nil {
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("reservation transitioned", "reservation_id", res.ID, "resource_id", res.ResourceID, "status", res.Status)
	}

	mapped := dto.MapReservation(res)
	return &mapped, nil
}

func (h *TransitionReservationHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[TransitionReservationCommand, *dto.Reservation] = (*TransitionReservationHandler)(nil)
