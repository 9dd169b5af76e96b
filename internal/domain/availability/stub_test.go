package availability

import (
	"context"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

type stubReservations struct {
	items []*reservation.Reservation
}

func (s *stubReservations) ByID(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	for _, r := range s.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, reservation.ErrReservationNotFound
}

func (s *stubReservations) ActiveForResource(ctx context.Context, id resource.ResourceID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, r := range s.items {
		if r.ResourceID == id && r.Status.Active() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReservations) ForResource(ctx context.Context, id resource.ResourceID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, r := range s.items {
		if r.ResourceID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReservations) ListByRequester(ctx context.Context, requesterID string) ([]*reservation.Reservation, error) {
	return nil, nil
}

func (s *stubReservations) Create(ctx context.Context, r *reservation.Reservation) error {
	s.items = append(s.items, r)
	return nil
}

func (s *stubReservations) Save(ctx context.Context, r *reservation.Reservation) error {
	return nil
}

type stubBlocks struct {
	items []*reservation.BlockedPeriod
}

func (s *stubBlocks) ListForResource(ctx context.Context, id resource.ResourceID) ([]*reservation.BlockedPeriod, error) {
	var out []*reservation.BlockedPeriod
	for _, b := range s.items {
		if b.ResourceID == id {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBlocks) Create(ctx context.Context, b *reservation.BlockedPeriod) error {
	s.items = append(s.items, b)
	return nil
}

func (s *stubBlocks) Delete(ctx context.Context, id resource.ResourceID, blockID reservation.BlockID) error {
	return nil
}

type stubRegistry struct {
	items map[resource.ResourceID]*resource.Resource
}

func (s *stubRegistry) ByID(ctx context.Context, id resource.ResourceID) (*resource.Resource, error) {
	if r, ok := s.items[id]; ok {
		return r, nil
	}
	return nil, resource.ErrResourceNotFound
}

func registryWith(ids ...resource.ResourceID) *stubRegistry {
	reg := &stubRegistry{items: make(map[resource.ResourceID]*resource.Resource)}
	for _, id := range ids {
		reg.items[id] = &resource.Resource{ID: id, Kind: resource.KindPropertyStay, OwnerID: "host-1", Granularity: resource.GranularityDay}
	}
	return reg
}

func fixtureReservation(id string, resourceID resource.ResourceID, span interval.Interval, status reservation.Status) *reservation.Reservation {
	return &reservation.Reservation{
		ID:          reservation.ReservationID(id),
		ResourceID:  resourceID,
		RequesterID: "guest-1",
		Span:        span,
		Status:      status,
		Amount:      money.Must(10000, "USD"),
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
