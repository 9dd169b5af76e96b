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

const requestReservationKey = "reservation.request"

type RequestReservationCommand struct {
	CommandID       string
	ResourceID      string
	RequesterID     string
	Start           time.Time
	End             time.Time
	Amount          int64
	Currency        string
	IdempotencyKeyV string
}

func (c RequestReservationCommand) Key() string { return requestReservationKey }

func (c RequestReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestReservationCommand) ResultPrototype() any { return &RequestReservationResult{} }

type RequestReservationResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}

var ErrUnitOfWorkRequired = errors.New("booking: unit of work required")

type RequestReservationHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

// Handle validates the candidate span, checks it against active holds, and
// persists the reservation. The repository's Create re-verifies the overlap
// inside the same unit of work, so the check and the write commit as one
// atomic step.
func (h *RequestReservationHandler) Handle(ctx context.Context, cmd RequestReservationCommand) (*RequestReservationResult, error) {
	unit, managedCtx, commit, rollback, err := h.resolveUnit(ctx)
	if err != nil {
		return nil, err
	}
	ctx = managedCtx
	if rollback != nil {
		defer rollback()
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
	details, err := detector.Check(ctx, resourceID, span, "")
	if err != nil {
		return nil, err
	}
	if !details.Free() {
		rejected := domainreservation.OverbookingPrevented{ResourceID: resourceID, Span: span, At: now}
		_ = outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []events.DomainEvent{rejected})
		return nil, fmt.Errorf("booking %s: %w", cmd.ResourceID, domainreservation.ErrConflict)
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
	if err := unit.Reservations().Create(ctx, res); err != nil {
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if commit != nil {
		if err := commit(); err != nil {
			return nil, err
		}
	}
	return &RequestReservationResult{ReservationID: string(res.ID), Status: string(res.Status)}, nil
}

// resolveUnit reuses a transaction begun by the middleware chain or manages
// its own for direct invocations.
func (h *RequestReservationHandler) resolveUnit(ctx context.Context) (uow.UnitOfWork, context.Context, func() error, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, nil, nil, nil
	}
	if h.UoWFactory == nil {
		return nil, ctx, nil, nil, ErrUnitOfWorkRequired
	}
	unit, err := h.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, ctx, nil, nil, err
	}
	execCtx := ctx
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	execCtx = uow.ContextWithUnitOfWork(execCtx, unit)
	committed := false
	commit := func() error {
		if err := unit.Commit(execCtx); err != nil {
			return err
		}
		committed = true
		return nil
	}
	rollback := func() {
		if !committed {
			_ = unit.Rollback(execCtx)
		}
	}
	return unit, execCtx, commit, rollback, nil
}

func (h *RequestReservationHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RequestReservationCommand, *RequestReservationResult] = (*RequestReservationHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestReservationCommand)(nil)
