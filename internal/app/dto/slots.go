package dto

import (
	"time"

	"stayhub/internal/domain/availability"
)

type Slot struct {
	ResourceID    string    `json:"resource_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Available     bool      `json:"available"`
	Booked        bool      `json:"booked"`
	ReservationID string    `json:"reservation_id,omitempty"`
}

type SlotCollection struct {
	Items []Slot `json:"items"`
}

func MapSlots(slots []availability.Slot) SlotCollection {
	out := SlotCollection{Items: make([]Slot, 0, len(slots))}
	for _, s := range slots {
		out.Items = append(out.Items, Slot{
			ResourceID:    string(s.ResourceID),
			Start:         s.Span.Start,
			End:           s.Span.End,
			Available:     s.Available,
			Booked:        s.Booked,
			ReservationID: string(s.ReservationID),
		})
	}
	return out
}
