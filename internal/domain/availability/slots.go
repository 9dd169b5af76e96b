package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

const DefaultSlotDuration = 60 * time.Minute

var (
	ErrSlotUnavailable = errors.New("availability: slot is no longer available")
	ErrInvalidWindow   = errors.New("availability: window end must be after start")
)

// Window is one working period inside a weekday, expressed as "HH:MM" wall
// clock times in UTC.
type Window struct {
	Start string
	End   string
}

// WeeklyTemplate maps weekdays to working windows. Days without windows emit
// no slots. SlotDuration falls back to DefaultSlotDuration when zero.
type WeeklyTemplate struct {
	Windows      map[time.Weekday][]Window
	SlotDuration time.Duration
}

func (t WeeklyTemplate) duration() time.Duration {
	if t.SlotDuration <= 0 {
		return DefaultSlotDuration
	}
	return t.SlotDuration
}

// Slot is a discrete bookable unit derived from a weekly template. Slots are
// recomputed on every read; only claimed slots have an independent identity
// through their ReservationID back-reference.
type Slot struct {
	ResourceID    resource.ResourceID
	Span          interval.Interval
	Available     bool
	Booked        bool
	ReservationID reservation.ReservationID
}

// SlotService expands templates against the current reservation state.
type SlotService struct {
	Reservations reservation.Repository
	Blocks       reservation.BlockRepository
	Resources    resource.Registry
}

// Generate expands every date in [from, to] against the template and marks
// each slot from the resource's active reservations and blocks. The result
// is a pure function of its inputs; nothing is persisted.
func (s SlotService) Generate(ctx context.Context, resourceID resource.ResourceID, from, to time.Time, tpl WeeklyTemplate) ([]Slot, error) {
	if _, err := s.Resources.ByID(ctx, resourceID); err != nil {
		return nil, err
	}
	active, err := s.Reservations.ActiveForResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.Blocks.ListForResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return ExpandTemplate(resourceID, from, to, tpl, active, blocks)
}

// ExpandTemplate is the stateless expansion used by Generate. It is exported
// so projections can be rebuilt from already-loaded reservation sets.
func ExpandTemplate(resourceID resource.ResourceID, from, to time.Time, tpl WeeklyTemplate, active []*reservation.Reservation, blocks []*reservation.BlockedPeriod) ([]Slot, error) {
	startDay := dateOf(from.UTC())
	endDay := dateOf(to.UTC())
	slotLen := tpl.duration()

	var out []Slot
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		windows := tpl.Windows[day.Weekday()]
		for _, w := range windows {
			winStart, winEnd, err := w.resolve(day)
			if err != nil {
				return nil, err
			}
			for cur := winStart; !cur.Add(slotLen).After(winEnd); cur = cur.Add(slotLen) {
				span := interval.Interval{Start: cur, End: cur.Add(slotLen)}
				out = append(out, markSlot(resourceID, span, active, blocks))
			}
		}
	}
	return out, nil
}

func markSlot(resourceID resource.ResourceID, span interval.Interval, active []*reservation.Reservation, blocks []*reservation.BlockedPeriod) Slot {
	slot := Slot{ResourceID: resourceID, Span: span, Available: true}
	for _, r := range active {
		if r.Span.Overlaps(span) {
			slot.Available = false
			slot.Booked = true
			slot.ReservationID = r.ID
			return slot
		}
	}
	for _, b := range blocks {
		if b.Span.Overlaps(span) {
			slot.Available = false
			return slot
		}
	}
	return slot
}

func (w Window) resolve(day time.Time) (time.Time, time.Time, error) {
	start, err := parseClock(w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseClock(w.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, time.UTC),
		time.Date(y, m, d, end.Hour(), end.Minute(), 0, 0, time.UTC), nil
}

func parseClock(raw string) (time.Time, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("availability: bad clock value %q: %w", raw, err)
	}
	return t, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
