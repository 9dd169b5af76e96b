package reservation

import (
	"time"

	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

type Requested struct {
	ReservationID ReservationID
	ResourceID    resource.ResourceID
	RequesterID   string
	Span          interval.Interval
	Amount        money.Money
	At            time.Time
}

func (e Requested) EventName() string     { return "reservation.requested" }
func (e Requested) AggregateID() string   { return string(e.ReservationID) }
func (e Requested) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	ReservationID ReservationID
	ResourceID    resource.ResourceID
	Span          interval.Interval
	At            time.Time
}

func (e Confirmed) EventName() string     { return "reservation.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.ReservationID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Declined struct {
	ReservationID ReservationID
	ResourceID    resource.ResourceID
	Reason        string
	At            time.Time
}

func (e Declined) EventName() string     { return "reservation.declined" }
func (e Declined) AggregateID() string   { return string(e.ReservationID) }
func (e Declined) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	ReservationID ReservationID
	ResourceID    resource.ResourceID
	Span          interval.Interval
	Reason        string
	At            time.Time
}

func (e Cancelled) EventName() string     { return "reservation.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.ReservationID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }

type Completed struct {
	ReservationID ReservationID
	ResourceID    resource.ResourceID
	Span          interval.Interval
	Amount        money.Money
	At            time.Time
}

func (e Completed) EventName() string     { return "reservation.completed" }
func (e Completed) AggregateID() string   { return string(e.ReservationID) }
func (e Completed) OccurredAt() time.Time { return e.At }

type NoShowRecorded struct {
	ReservationID ReservationID
	ResourceID    resource.ResourceID
	At            time.Time
}

func (e NoShowRecorded) EventName() string     { return "reservation.no_show" }
func (e NoShowRecorded) AggregateID() string   { return string(e.ReservationID) }
func (e NoShowRecorded) OccurredAt() time.Time { return e.At }

// OverbookingPrevented is raised when a conflicting candidate is rejected.
// Callers observing it should re-query availability before retrying.
type OverbookingPrevented struct {
	ResourceID resource.ResourceID
	Span       interval.Interval
	At         time.Time
}

func (e OverbookingPrevented) EventName() string     { return "reservation.overbooking_prevented" }
func (e OverbookingPrevented) AggregateID() string   { return string(e.ResourceID) }
func (e OverbookingPrevented) OccurredAt() time.Time { return e.At }

type PeriodBlocked struct {
	BlockID    BlockID
	ResourceID resource.ResourceID
	Span       interval.Interval
	Reason     string
	At         time.Time
}

func (e PeriodBlocked) EventName() string     { return "calendar.blocked" }
func (e PeriodBlocked) AggregateID() string   { return string(e.ResourceID) }
func (e PeriodBlocked) OccurredAt() time.Time { return e.At }

type PeriodReleased struct {
	BlockID    BlockID
	ResourceID resource.ResourceID
	At         time.Time
}

func (e PeriodReleased) EventName() string     { return "calendar.released" }
func (e PeriodReleased) AggregateID() string   { return string(e.ResourceID) }
func (e PeriodReleased) OccurredAt() time.Time { return e.At }
