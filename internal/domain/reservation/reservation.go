package reservation

import (
	"errors"
	"time"

	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

var (
	ErrIllegalTransition   = errors.New("reservation: illegal status transition")
	ErrNotYetElapsed       = errors.New("reservation: interval has not elapsed yet")
	ErrReservationNotFound = errors.New("reservation: not found")
	ErrRequesterRequired   = errors.New("reservation: requester id required")
	ErrUnknownStatus       = errors.New("reservation: unknown status")
)

type ReservationID string

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// Active reports whether the status holds its interval against other
// candidates. Only REQUESTED and CONFIRMED reservations count toward
// conflict checks.
func (s Status) Active() bool {
	return s == StatusRequested || s == StatusConfirmed
}

// Terminal reports whether the status ends the lifecycle. Entering a
// terminal status releases the reserved interval.
func (s Status) Terminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusRequested, StatusConfirmed, StatusDeclined, StatusCancelled, StatusCompleted, StatusNoShow:
		return Status(raw), nil
	}
	return "", ErrUnknownStatus
}

// Reservation is a claimed interval on a resource with a lifecycle status.
// Reservations are never physically deleted; cancellation is a status
// change so audit history and historical aggregates stay intact.
type Reservation struct {
	ID          ReservationID
	ResourceID  resource.ResourceID
	RequesterID string
	Span        interval.Interval
	Status      Status
	Amount      money.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type CreateParams struct {
	ID          ReservationID
	ResourceID  resource.ResourceID
	RequesterID string
	Span        interval.Interval
	Amount      money.Money
	CreatedAt   time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if params.RequesterID == "" {
		return nil, ErrRequesterRequired
	}
	if err := params.Span.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:          params.ID,
		ResourceID:  params.ResourceID,
		RequesterID: params.RequesterID,
		Span:        params.Span,
		Status:      StatusRequested,
		Amount:      params.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.Record(Requested{ReservationID: r.ID, ResourceID: r.ResourceID, RequesterID: r.RequesterID, Span: r.Span, Amount: r.Amount, At: now})
	return r, nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.Status != StatusRequested {
		return ErrIllegalTransition
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(Confirmed{ReservationID: r.ID, ResourceID: r.ResourceID, Span: r.Span, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Decline(reason string, now time.Time) error {
	if r.Status != StatusRequested {
		return ErrIllegalTransition
	}
	r.Status = StatusDeclined
	r.UpdatedAt = now.UTC()
	r.Record(Declined{ReservationID: r.ID, ResourceID: r.ResourceID, Reason: reason, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.Status != StatusRequested && r.Status != StatusConfirmed {
		return ErrIllegalTransition
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.Record(Cancelled{ReservationID: r.ID, ResourceID: r.ResourceID, Span: r.Span, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Complete marks a confirmed stay or viewing as fully elapsed. It is only
// valid once now has reached the end of the reserved interval.
func (r *Reservation) Complete(now time.Time) error {
	if r.Status != StatusConfirmed {
		return ErrIllegalTransition
	}
	if now.UTC().Before(r.Span.End) {
		return ErrNotYetElapsed
	}
	r.Status = StatusCompleted
	r.UpdatedAt = now.UTC()
	r.Record(Completed{ReservationID: r.ID, ResourceID: r.ResourceID, Span: r.Span, Amount: r.Amount, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) MarkNoShow(now time.Time) error {
	if r.Status != StatusConfirmed {
		return ErrIllegalTransition
	}
	r.Status = StatusNoShow
	r.UpdatedAt = now.UTC()
	r.Record(NoShowRecorded{ReservationID: r.ID, ResourceID: r.ResourceID, At: r.UpdatedAt})
	return nil
}

// Transition dispatches to the matching lifecycle method. It backs the
// transport-agnostic "transition reservation" operation.
func (r *Reservation) Transition(target Status, reason string, now time.Time) error {
	switch target {
	case StatusConfirmed:
		return r.Confirm(now)
	case StatusDeclined:
		return r.Decline(reason, now)
	case StatusCancelled:
		return r.Cancel(reason, now)
	case StatusCompleted:
		return r.Complete(now)
	case StatusNoShow:
		return r.MarkNoShow(now)
	case StatusRequested:
		return ErrIllegalTransition
	}
	return ErrUnknownStatus
}
