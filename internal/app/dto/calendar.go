package dto

import (
	"time"

	"stayhub/internal/domain/availability"
)

type CalendarDay struct {
	Date           string `json:"date"`
	InCurrentMonth bool   `json:"in_current_month"`
	Available      bool   `json:"available"`
	Status         string `json:"status"`
	ReservationID  string `json:"reservation_id,omitempty"`
	BlockReason    string `json:"block_reason,omitempty"`
}

type Calendar struct {
	ResourceID string        `json:"resource_id"`
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Days       []CalendarDay `json:"days"`
}

func MapCalendar(resourceID string, year int, month time.Month, days []availability.CalendarDay) Calendar {
	out := Calendar{
		ResourceID: resourceID,
		Year:       year,
		Month:      int(month),
		Days:       make([]CalendarDay, 0, len(days)),
	}
	for _, d := range days {
		out.Days = append(out.Days, CalendarDay{
			Date:           d.Date.Format("2006-01-02"),
			InCurrentMonth: d.InCurrentMonth,
			Available:      d.Available,
			Status:         string(d.Status),
			ReservationID:  string(d.ReservationID),
			BlockReason:    d.BlockReason,
		})
	}
	return out
}
