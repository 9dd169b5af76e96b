package dto

import (
	"time"

	"stayhub/internal/domain/availability"
)

type ConflictEntry struct {
	Kind      string    `json:"kind"`
	Reference string    `json:"reference"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

type AvailabilityCheck struct {
	ResourceID string          `json:"resource_id"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Free       bool            `json:"free"`
	Conflicts  []ConflictEntry `json:"conflicts,omitempty"`
}

func MapAvailabilityCheck(details availability.ConflictDetails) AvailabilityCheck {
	out := AvailabilityCheck{
		ResourceID: string(details.ResourceID),
		Start:      details.Candidate.Start,
		End:        details.Candidate.End,
		Free:       details.Free(),
	}
	for _, c := range details.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictEntry{
			Kind:      string(c.Kind),
			Reference: c.Reference,
			Start:     c.Span.Start,
			End:       c.Span.End,
		})
	}
	return out
}
