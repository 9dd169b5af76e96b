package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"

	"stayhub/internal/app/policies"
)

// Listener consumes reservation lifecycle events off the broker and turns
// them into notifications. It runs in the same process today but only
// depends on the wire format, so it can be split out without code changes.
type Listener struct {
	Notifier policies.Notifier
	Logger   *slog.Logger
}

type cloudEvent struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func (l *Listener) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt cloudEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return fmt.Errorf("notify: decode event: %w", err)
	}
	template, ok := templateFor(evt.Type)
	if !ok {
		return nil
	}
	recipient, _ := evt.Data["RequesterID"].(string)
	if recipient == "" {
		return nil
	}
	if l.Notifier == nil {
		return nil
	}
	if err := l.Notifier.Send(ctx, recipient, template, evt.Data); err != nil {
		return fmt.Errorf("notify: send %s: %w", template, err)
	}
	if l.Logger != nil {
		l.Logger.Info("notification sent", "template", template, "event_id", evt.ID)
	}
	return nil
}

func templateFor(eventType string) (string, bool) {
	name := strings.TrimSuffix(eventType, ".v1")
	switch name {
	case "reservation.requested":
		return "reservation_requested", true
	case "reservation.confirmed":
		return "reservation_confirmed", true
	case "reservation.declined":
		return "reservation_declined", true
	case "reservation.cancelled":
		return "reservation_cancelled", true
	}
	return "", false
}

// LogNotifier writes notifications to the log. Real delivery channels plug
// in behind the same port.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Send(ctx context.Context, recipient string, template string, data any) error {
	if n.Logger != nil {
		n.Logger.Info("notify", "recipient", recipient, "template", template)
	}
	return nil
}

var _ policies.Notifier = LogNotifier{}
