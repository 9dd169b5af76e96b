package policies

import "context"

// Notifier delivers transition notifications. Email/SMS/push delivery lives
// outside the scheduling core; callers observe state-machine results and
// invoke this port.
type Notifier interface {
	Send(ctx context.Context, recipient string, template string, data any) error
}
