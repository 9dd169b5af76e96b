package dto

import (
	"time"

	"stayhub/internal/domain/reservation"
)

type Reservation struct {
	ID          string    `json:"id"`
	ResourceID  string    `json:"resource_id"`
	RequesterID string    `json:"requester_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MapReservation(r *reservation.Reservation) Reservation {
	if r == nil {
		return Reservation{}
	}
	return Reservation{
		ID:          string(r.ID),
		ResourceID:  string(r.ResourceID),
		RequesterID: r.RequesterID,
		Start:       r.Span.Start,
		End:         r.Span.End,
		Status:      string(r.Status),
		Amount:      r.Amount.Amount,
		Currency:    r.Amount.Currency,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ReservationCollection struct {
	Items []Reservation `json:"items"`
}

func MapReservations(items []*reservation.Reservation) ReservationCollection {
	out := ReservationCollection{Items: make([]Reservation, 0, len(items))}
	for _, r := range items {
		out.Items = append(out.Items, MapReservation(r))
	}
	return out
}

type BlockedPeriod struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func MapBlockedPeriod(b *reservation.BlockedPeriod) BlockedPeriod {
	if b == nil {
		return BlockedPeriod{}
	}
	return BlockedPeriod{
		ID:         string(b.ID),
		ResourceID: string(b.ResourceID),
		Start:      b.Span.Start,
		End:        b.Span.End,
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}
