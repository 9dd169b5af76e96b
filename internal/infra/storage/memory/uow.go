package memory

import (
	"context"
	"errors"

	"stayhub/internal/app/uow"
	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	Store    *Store
	Registry domainresource.Registry
}

// Begin starts a lightweight transaction boundary. The store's own mutex
// provides the atomic conflict check; there is no multi-write isolation,
// which matches what the application ports require from this backend.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.Store == nil || f.Registry == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{store: f.Store, registry: f.Registry}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by the in-memory store.
type Unit struct {
	store    *Store
	registry domainresource.Registry
}

func (u *Unit) Reservations() domainreservation.Repository {
	return u.store.Reservations()
}

func (u *Unit) Blocks() domainreservation.BlockRepository {
	return u.store.Blocks()
}

func (u *Unit) Resources() domainresource.Registry {
	return u.registry
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}

var _ uow.UoWFactory = Factory{}
var _ uow.UnitOfWork = (*Unit)(nil)
