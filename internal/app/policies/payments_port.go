package policies

import (
	"context"

	"stayhub/internal/domain/shared/money"
)

// Payments is the capture collaborator. The core never talks to the payment
// provider directly; it records amounts and leaves capture to the caller.
type Payments interface {
	Capture(ctx context.Context, reservationID string, amount money.Money) (captureRef string, err error)
	Release(ctx context.Context, captureRef string) error
}
