package uow

import (
	"context"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
)

// UnitOfWork coordinates the scheduling core's repositories inside a
// transaction boundary. Conflict checks and the subsequent write commit as
// one atomic unit when the backing store provides real transactions.
type UnitOfWork interface {
	Reservations() reservation.Repository
	Blocks() reservation.BlockRepository
	Resources() resource.Registry

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
