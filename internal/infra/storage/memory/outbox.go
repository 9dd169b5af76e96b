package memory

import (
	"context"
	"sync"

	appoutbox "stayhub/internal/app/outbox"
)

// Outbox keeps event records in memory until flushed. A Publisher, when
// set, receives every record on Flush; without one Flush just drops them.
type Outbox struct {
	mu        sync.Mutex
	records   []appoutbox.EventRecord
	Publisher func(ctx context.Context, record appoutbox.EventRecord) error
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()

	if o.Publisher == nil {
		return nil
	}
	for _, record := range pending {
		if err := o.Publisher(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns a snapshot of unflushed records, used by tests and the
// readiness probe.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
