package reservation

import (
	"errors"
	"time"

	"stayhub/internal/domain/shared/interval"
)

var ErrStartInPast = errors.New("reservation: start date is in the past")

// ValidateFutureStart rejects candidate spans whose start day has already
// passed. Comparison is at day precision so a same-day viewing stays legal.
func ValidateFutureStart(span interval.Interval, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startDay := time.Date(span.Start.Year(), span.Start.Month(), span.Start.Day(), 0, 0, 0, 0, time.UTC)
	if startDay.Before(today) {
		return ErrStartInPast
	}
	return nil
}
