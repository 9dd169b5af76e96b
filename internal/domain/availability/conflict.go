package availability

import (
	"context"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

// ConflictKind tags what is holding a contested interval.
type ConflictKind string

const (
	ConflictReservation ConflictKind = "RESERVATION"
	ConflictBlock       ConflictKind = "BLOCK"
)

type ConflictEntry struct {
	Kind      ConflictKind
	Reference string
	Span      interval.Interval
}

// ConflictDetails lists every active hold overlapping a candidate interval.
type ConflictDetails struct {
	ResourceID resource.ResourceID
	Candidate  interval.Interval
	Conflicts  []ConflictEntry
}

func (d ConflictDetails) Free() bool {
	return len(d.Conflicts) == 0
}

// Detector answers whether a candidate interval on a resource is free of
// active reservations and blocked periods. The detector is advisory: the
// serializing overlap check lives in Repository.Create, which re-verifies
// under the store's own transaction or lock.
type Detector struct {
	Reservations reservation.Repository
	Blocks       reservation.BlockRepository
	Resources    resource.Registry
}

// Check resolves the resource and collects every overlapping hold. A
// cancelled, declined, completed or no-show reservation frees its interval
// and never appears in the result.
func (d Detector) Check(ctx context.Context, resourceID resource.ResourceID, candidate interval.Interval, exclude reservation.ReservationID) (ConflictDetails, error) {
	details := ConflictDetails{ResourceID: resourceID, Candidate: candidate}
	if err := candidate.Validate(); err != nil {
		return details, err
	}
	if _, err := d.Resources.ByID(ctx, resourceID); err != nil {
		return details, err
	}

	active, err := d.Reservations.ActiveForResource(ctx, resourceID)
	if err != nil {
		return details, err
	}
	for _, r := range active {
		if exclude != "" && r.ID == exclude {
			continue
		}
		if r.Span.Overlaps(candidate) {
			details.Conflicts = append(details.Conflicts, ConflictEntry{
				Kind:      ConflictReservation,
				Reference: string(r.ID),
				Span:      r.Span,
			})
		}
	}

	blocks, err := d.Blocks.ListForResource(ctx, resourceID)
	if err != nil {
		return details, err
	}
	for _, b := range blocks {
		if b.Span.Overlaps(candidate) {
			details.Conflicts = append(details.Conflicts, ConflictEntry{
				Kind:      ConflictBlock,
				Reference: string(b.ID),
				Span:      b.Span,
			})
		}
	}
	return details, nil
}

// IsFree is the boolean form of Check, used when revalidating an update to
// an existing reservation via exclude.
func (d Detector) IsFree(ctx context.Context, resourceID resource.ResourceID, candidate interval.Interval, exclude reservation.ReservationID) (bool, error) {
	details, err := d.Check(ctx, resourceID, candidate, exclude)
	if err != nil {
		return false, err
	}
	return details.Free(), nil
}
