package memory

import (
	"context"
	"sort"
	"sync"

	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/interval"
)

// ResourceRegistry is an in-memory resource directory seeded at startup.
type ResourceRegistry struct {
	mu    sync.RWMutex
	items map[domainresource.ResourceID]*domainresource.Resource
}

func NewResourceRegistry(seed ...*domainresource.Resource) *ResourceRegistry {
	r := &ResourceRegistry{items: make(map[domainresource.ResourceID]*domainresource.Resource)}
	for _, res := range seed {
		r.items[res.ID] = res
	}
	return r
}

func (r *ResourceRegistry) Add(res *domainresource.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[res.ID] = res
}

func (r *ResourceRegistry) ByID(ctx context.Context, id domainresource.ResourceID) (*domainresource.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainresource.ErrResourceNotFound
	}
	return res, nil
}

// Store holds reservations and blocked periods behind one mutex so the
// overlap check and the insert commit as a single atomic step. Splitting
// the two collections behind separate locks would reintroduce the
// check-then-act race that Create exists to close.
type Store struct {
	mu           sync.RWMutex
	reservations map[domainreservation.ReservationID]*domainreservation.Reservation
	blocks       map[domainresource.ResourceID]map[domainreservation.BlockID]*domainreservation.BlockedPeriod
}

func NewStore() *Store {
	return &Store{
		reservations: make(map[domainreservation.ReservationID]*domainreservation.Reservation),
		blocks:       make(map[domainresource.ResourceID]map[domainreservation.BlockID]*domainreservation.BlockedPeriod),
	}
}

// Reservations returns the reservation repository view of the store.
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// Blocks returns the blocked-period repository view of the store.
func (s *Store) Blocks() *BlockRepository {
	return &BlockRepository{store: s}
}

// ReservationRepository implements reservation.Repository over the shared store.
type ReservationRepository struct {
	store *Store
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, domainreservation.ErrReservationNotFound
	}
	return cloneReservation(res), nil
}

func (r *ReservationRepository) ActiveForResource(ctx context.Context, id domainresource.ResourceID) ([]*domainreservation.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.collect(id, true), nil
}

func (r *ReservationRepository) ForResource(ctx context.Context, id domainresource.ResourceID) ([]*domainreservation.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.collect(id, false), nil
}

func (r *ReservationRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domainreservation.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domainreservation.Reservation
	for _, res := range r.store.reservations {
		if res.RequesterID == requesterID {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Create re-runs the overlap check under the store lock before inserting.
// The advisory detector may have seen a stale snapshot; this check is the
// one that serializes concurrent claims on the same interval.
func (r *ReservationRepository) Create(ctx context.Context, res *domainreservation.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.hasOverlap(res.ResourceID, res.Span, res.ID) {
		return domainreservation.ErrConflict
	}
	stored := cloneReservation(res)
	stored.Version = 1
	r.store.reservations[stored.ID] = stored
	res.Version = stored.Version
	return nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.reservations[res.ID]
	if !ok {
		return domainreservation.ErrReservationNotFound
	}
	if existing.Version != res.Version {
		return domainreservation.ErrConcurrentUpdate
	}
	stored := cloneReservation(res)
	stored.Version = existing.Version + 1
	r.store.reservations[stored.ID] = stored
	res.Version = stored.Version
	return nil
}

// BlockRepository implements reservation.BlockRepository over the shared store.
type BlockRepository struct {
	store *Store
}

func (r *BlockRepository) ListForResource(ctx context.Context, id domainresource.ResourceID) ([]*domainreservation.BlockedPeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*domainreservation.BlockedPeriod
	for _, b := range r.store.blocks[id] {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start.Before(out[j].Span.Start) })
	return out, nil
}

func (r *BlockRepository) Create(ctx context.Context, b *domainreservation.BlockedPeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.hasOverlap(b.ResourceID, b.Span, "") {
		return domainreservation.ErrConflict
	}
	byID, ok := r.store.blocks[b.ResourceID]
	if !ok {
		byID = make(map[domainreservation.BlockID]*domainreservation.BlockedPeriod)
		r.store.blocks[b.ResourceID] = byID
	}
	copied := *b
	byID[b.ID] = &copied
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, id domainresource.ResourceID, blockID domainreservation.BlockID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byID := r.store.blocks[id]
	if _, ok := byID[blockID]; !ok {
		return domainreservation.ErrBlockNotFound
	}
	delete(byID, blockID)
	return nil
}

// hasOverlap must be called with the store lock held.
func (s *Store) hasOverlap(id domainresource.ResourceID, span interval.Interval, exclude domainreservation.ReservationID) bool {
	for _, res := range s.reservations {
		if res.ResourceID != id || !res.Status.Active() {
			continue
		}
		if exclude != "" && res.ID == exclude {
			continue
		}
		if res.Span.Overlaps(span) {
			return true
		}
	}
	for _, b := range s.blocks[id] {
		if b.Span.Overlaps(span) {
			return true
		}
	}
	return false
}

// collect must be called with the store lock held.
func (s *Store) collect(id domainresource.ResourceID, activeOnly bool) []*domainreservation.Reservation {
	var out []*domainreservation.Reservation
	for _, res := range s.reservations {
		if res.ResourceID != id {
			continue
		}
		if activeOnly && !res.Status.Active() {
			continue
		}
		out = append(out, cloneReservation(res))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start.Before(out[j].Span.Start) })
	return out
}

func cloneReservation(res *domainreservation.Reservation) *domainreservation.Reservation {
	copied := *res
	copied.EventRecorder = events.EventRecorder{}
	return &copied
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
var _ domainreservation.BlockRepository = (*BlockRepository)(nil)
var _ domainresource.Registry = (*ResourceRegistry)(nil)
