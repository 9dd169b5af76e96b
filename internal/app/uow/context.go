package uow

import (
	"context"
	"errors"
)

// ErrUnitOfWorkMissing means a handler that requires the Transaction
// middleware was dispatched without it.
var ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")

type ctxKey struct{}

// ContextWithUnitOfWork attaches unit to ctx so downstream handlers share the
// same transactional scope.
func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, ctxKey{}, unit)
}

// FromContext returns the unit of work placed by ContextWithUnitOfWork, if any.
func FromContext(ctx context.Context) (UnitOfWork, bool) {
	val := ctx.Value(ctxKey{})
	if val == nil {
		return nil, false
	}
	unit, ok := val.(UnitOfWork)
	return unit, ok
}
