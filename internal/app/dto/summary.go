package dto

import (
	"time"

	"stayhub/internal/domain/availability"
)

type Summary struct {
	ResourceID       string    `json:"resource_id"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	BookedNights     int       `json:"booked_nights"`
	OccupancyRate    int       `json:"occupancy_rate"`
	Revenue          int64     `json:"revenue"`
	Commission       int64     `json:"commission"`
	Currency         string    `json:"currency,omitempty"`
	ReservationCount int       `json:"reservation_count"`
}

func MapSummary(s availability.Summary) Summary {
	return Summary{
		ResourceID:       string(s.ResourceID),
		PeriodStart:      s.PeriodStart,
		PeriodEnd:        s.PeriodEnd,
		BookedNights:     s.BookedNights,
		OccupancyRate:    s.OccupancyRate,
		Revenue:          s.Revenue.Amount,
		Commission:       s.Commission.Amount,
		Currency:         s.Revenue.Currency,
		ReservationCount: s.ReservationCount,
	}
}
