package interval

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval: end must be after start")
)

// Interval represents a half-open time range [Start, End) in UTC.
// A checkout at instant T and a check-in at the same instant T do not
// overlap, so back-to-back reservations are legal.
type Interval struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start.UTC(), End: end.UTC()}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Must creates an Interval and panics on invalid bounds; useful in tests and fixtures.
func Must(start, end time.Time) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func (iv Interval) Validate() error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return ErrInvalidInterval
	}
	if !iv.End.After(iv.Start) {
		return ErrInvalidInterval
	}
	return nil
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ContainsTime reports whether t falls inside the interval; End itself is excluded.
func (iv Interval) ContainsTime(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(iv.Start) || t.After(iv.Start)) && t.Before(iv.End)
}

// Clip trims the interval to the bounds of other. The second return value is
// false when the two do not overlap at all.
func (iv Interval) Clip(other Interval) (Interval, bool) {
	if !iv.Overlaps(other) {
		return Interval{}, false
	}
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	return Interval{Start: start, End: end}, true
}

// Nights returns the number of whole days covered by the interval.
func (iv Interval) Nights() int {
	return int(iv.End.Sub(iv.Start).Hours() / 24)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
