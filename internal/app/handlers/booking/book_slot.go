package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/middleware"
	"stayhub/internal/app/outbox"
	"stayhub/internal/app/uow"
	"stayhub/internal/domain/availability"
	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

const bookSlotKey = "reservation.book_slot"

// BookSlotCommand claims a single generated slot on a minute-granularity
// resource. Viewing slots are instant-book: the reservation lands CONFIRMED.
type BookSlotCommand struct {
	CommandID       string
	ResourceID      string
	RequesterID     string
	Start           time.Time
	End             time.Time
	Amount          int64
	Currency        string
	IdempotencyKeyV string
}

func (c BookSlotCommand) Key() string { return bookSlotKey }

func (c BookSlotCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c BookSlotCommand) ResultPrototype() any { return &BookSlotResult{} }

type BookSlotResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}

type BookSlotHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
}

func (h *BookSlotHandler) Handle(ctx context.Context, cmd BookSlotCommand) (*BookSlotResult, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}

	span, err := interval.New(cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := domainreservation.ValidateFutureStart(span, now); err != nil {
		return nil, err
	}
	amount, err := money.New(cmd.Amount, cmd.Currency)
	if err != nil {
		return nil, err
	}

	resourceID := domainresource.ResourceID(cmd.ResourceID)
	detector := availability.Detector{
		Reservations: unit.Reservations(),
		Blocks:       unit.Blocks(),
		Resources:    unit.Resources(),
	}
	free, err := detector.IsFree(ctx, resourceID, span, "")
	if err != nil {
		return nil, err
	}
	if !free {
		rejected := domainreservation.OverbookingPrevented{ResourceID: resourceID, Span: span, At: now}
		_ = outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []events.DomainEvent{rejected})
		return nil, fmt.Errorf("slot %s..%s: %w", span.Start.Format(time.RFC3339), span.End.Format(time.RFC3339), availability.ErrSlotUnavailable)
	}

	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:          domainreservation.ReservationID(cmd.CommandID),
		ResourceID:  resourceID,
		RequesterID: cmd.RequesterID,
		Span:        span,
		Amount:      amount,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	if err := res.Confirm(now); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Create(ctx, res); err != nil {
		if errors.Is(err, domainreservation.ErrConflict) {
			return nil, fmt.Errorf("slot claim lost race: %w", availability.ErrSlotUnavailable)
		}
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	return &BookSlotResult{ReservationID: string(res.ID), Status: string(res.Status)}, nil
}

func (h *BookSlotHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[BookSlotCommand, *BookSlotResult] = (*BookSlotHandler)(nil)
var _ middleware.IdempotentCommand = (*BookSlotCommand)(nil)
