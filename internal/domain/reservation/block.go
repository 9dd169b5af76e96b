package reservation

import (
	"errors"
	"time"

	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

var (
	ErrBlockNotFound  = errors.New("reservation: blocked period not found")
	ErrReasonRequired = errors.New("reservation: block reason required")
)

type BlockID string

// BlockedPeriod is an owner-created manual hold on a resource interval.
// It behaves like a reservation for conflict purposes but carries no
// requester or payment and never transitions status.
type BlockedPeriod struct {
	ID         BlockID
	ResourceID resource.ResourceID
	Span       interval.Interval
	Reason     string
	CreatedAt  time.Time
}

func NewBlockedPeriod(id BlockID, resourceID resource.ResourceID, span interval.Interval, reason string, now time.Time) (*BlockedPeriod, error) {
	if err := span.Validate(); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return &BlockedPeriod{
		ID:         id,
		ResourceID: resourceID,
		Span:       span,
		Reason:     reason,
		CreatedAt:  now.UTC(),
	}, nil
}
