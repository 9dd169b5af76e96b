package reservation

import (
	"context"
	"errors"

	"stayhub/internal/domain/resource"
)

var (
	// ErrConflict signals expected contention: another active reservation or
	// block already holds part of the candidate interval. Callers should
	// re-query availability before retrying with a different interval.
	ErrConflict = errors.New("reservation: interval conflicts with an existing hold")
	// ErrConcurrentUpdate signals a lost optimistic-concurrency race on a
	// status save.
	ErrConcurrentUpdate = errors.New("reservation: concurrent update detected")
)

// Repository is the abstract reservation store consumed by the scheduling
// core. Create must evaluate the overlap check and commit the insert as a
// single atomic unit with respect to other writers on the same resource;
// a bare read-then-write pair reintroduces the double-booking race.
type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	// ActiveForResource returns reservations in a non-terminal status.
	ActiveForResource(ctx context.Context, id resource.ResourceID) ([]*Reservation, error)
	// ForResource returns every reservation regardless of status, for
	// occupancy and revenue aggregation.
	ForResource(ctx context.Context, id resource.ResourceID) ([]*Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Reservation, error)
	// Create persists a new reservation, failing with ErrConflict when any
	// active reservation or blocked period overlaps its span.
	Create(ctx context.Context, r *Reservation) error
	// Save persists a status change using the reservation's version for
	// optimistic concurrency.
	Save(ctx context.Context, r *Reservation) error
}

// BlockRepository stores owner-created manual holds.
type BlockRepository interface {
	ListForResource(ctx context.Context, id resource.ResourceID) ([]*BlockedPeriod, error)
	// Create fails with ErrConflict when the block overlaps an active
	// reservation or another block.
	Create(ctx context.Context, b *BlockedPeriod) error
	Delete(ctx context.Context, id resource.ResourceID, blockID BlockID) error
}
