package resource

import (
	"context"
	"errors"
)

var ErrResourceNotFound = errors.New("resource: not found")

type ResourceID string

// Kind distinguishes the two bookable shapes in the marketplace.
type Kind string

const (
	KindPropertyStay Kind = "PROPERTY_STAY"
	KindAgentSlot    Kind = "AGENT_SLOT"
)

// Granularity controls how intervals on the resource are interpreted:
// whole days for stays, minute-level slots for agent viewings.
type Granularity string

const (
	GranularityDay    Granularity = "DAY"
	GranularityMinute Granularity = "MINUTE"
)

// Resource is a bookable entity. Resources are created and destroyed by the
// listing subsystem; the scheduling core only reads identity and granularity.
type Resource struct {
	ID          ResourceID
	Kind        Kind
	OwnerID     string
	Granularity Granularity
}

// Registry resolves resource identity for the scheduling core. The listing
// subsystem owns the authoritative data behind it.
type Registry interface {
	ByID(ctx context.Context, id ResourceID) (*Resource, error)
}
